package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/saadjs/fitcoach-cli/internal/api"
	"github.com/saadjs/fitcoach-cli/internal/fakebackend"
	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

func TestRefreshUserUpdatesCache(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}

	view, err := h.coach.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("refresh user: %v", err)
	}
	if view.Stale || view.User.Age != 30 {
		t.Fatalf("expected fresh user, got %+v", view)
	}
}

func TestRefreshUserFallsBackToCachedSnapshot(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	h.backend.FailRoute(fakebackend.RouteGetUser, http.StatusServiceUnavailable)

	view, err := h.coach.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("refresh user: %v", err)
	}
	if !view.Stale {
		t.Fatalf("expected stale view")
	}
	if !errors.Is(view.FetchErr, api.ErrRequestFailed) {
		t.Fatalf("expected fetch error to be kept, got %v", view.FetchErr)
	}
	if view.User == nil || view.User.ID != 1 {
		t.Fatalf("expected cached user 1, got %+v", view.User)
	}
}

func TestRefreshUserWithoutCacheFails(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if err := h.store.SetUserID(ctx, 99); err != nil {
		t.Fatalf("set user id: %v", err)
	}

	_, err := h.coach.RefreshUser(ctx)
	if code, ok := api.StatusCode(err); !ok || code != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
}

func TestUpdateProfileRespectsServerWindow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	age := 31

	_, err := h.coach.UpdateProfile(ctx, model.ProfileUpdate{Age: &age})
	if code, ok := api.StatusCode(err); !ok || code != http.StatusForbidden {
		t.Fatalf("expected 403 without subscription, got %v", err)
	}

	if _, err := h.coach.Subscribe(ctx, "card", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	u, err := h.coach.UpdateProfile(ctx, model.ProfileUpdate{Age: &age})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if u.Age != 31 {
		t.Fatalf("expected age 31, got %d", u.Age)
	}
	cached, ok := h.store.UserData(ctx)
	if !ok || cached.Age != 31 {
		t.Fatalf("expected cache to hold updated user, got %+v", cached)
	}

	elig, err := h.coach.ProfileStatus(ctx)
	if err != nil {
		t.Fatalf("profile status: %v", err)
	}
	if elig.State != service.ProfileUpdateLocked || elig.NextUpdateAt == nil {
		t.Fatalf("expected locked with next date, got %+v", elig)
	}

	_, err = h.coach.UpdateProfile(ctx, model.ProfileUpdate{Age: &age})
	if code, ok := api.StatusCode(err); !ok || code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside update window, got %v", err)
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Parallel()
	if err := service.ValidateProfileUpdate(model.ProfileUpdate{}); err == nil {
		t.Fatalf("expected empty update error")
	}
	bad := "robot"
	if err := service.ValidateProfileUpdate(model.ProfileUpdate{ActivityLevel: &bad}); err == nil {
		t.Fatalf("expected invalid activity level error")
	}
	for _, w := range []float64{0, math.NaN(), math.Inf(1)} {
		w := w
		if err := service.ValidateProfileUpdate(model.ProfileUpdate{Weight: &w}); err == nil {
			t.Fatalf("expected invalid weight error for %v", w)
		}
	}
	ok := "Female"
	if err := service.ValidateProfileUpdate(model.ProfileUpdate{Sex: &ok}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateProfileSendsNormalizedText(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if _, err := h.coach.Subscribe(ctx, "card", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sex, level := " Female ", "Very_Active"

	u, err := h.coach.UpdateProfile(ctx, model.ProfileUpdate{Sex: &sex, ActivityLevel: &level})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if u.Sex != "female" || u.ActivityLevel != "very_active" {
		t.Fatalf("expected normalized user fields, got sex=%q level=%q", u.Sex, u.ActivityLevel)
	}
	if sex != " Female " {
		t.Fatalf("caller's value was modified: %q", sex)
	}

	reqs := h.backend.Requests(fakebackend.RouteUpdateProfile)
	if len(reqs) != 1 {
		t.Fatalf("expected one update request, got %d", len(reqs))
	}
	var body map[string]any
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["sex"] != "female" || body["activityLevel"] != "very_active" {
		t.Fatalf("expected normalized request body, got %v", body)
	}
}
