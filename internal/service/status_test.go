package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/saadjs/fitcoach-cli/internal/api"
	"github.com/saadjs/fitcoach-cli/internal/fakebackend"
	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDescribeTrial(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		in    model.SubscriptionStatus
		state service.TrialState
		days  int
		title string
	}{
		{
			name:  "active subscription wins",
			in:    model.SubscriptionStatus{HasActiveSubscription: true, IsTrialExpired: true},
			state: service.TrialActive,
			title: "Subscription Active",
		},
		{
			name:  "expired",
			in:    model.SubscriptionStatus{IsTrialExpired: true, TrialEndsAt: timePtr(now.Add(-time.Hour))},
			state: service.TrialExpired,
			title: "Trial Expired",
		},
		{
			name:  "partial day rounds up",
			in:    model.SubscriptionStatus{TrialEndsAt: timePtr(now.Add(2*24*time.Hour + time.Hour))},
			state: service.TrialWarning,
			days:  3,
			title: "3 Days Left",
		},
		{
			name:  "plenty of trial left",
			in:    model.SubscriptionStatus{TrialEndsAt: timePtr(now.Add(7 * 24 * time.Hour))},
			state: service.TrialOpen,
			days:  7,
			title: "7 Days Remaining",
		},
		{
			name:  "past end without expired flag clamps to zero",
			in:    model.SubscriptionStatus{TrialEndsAt: timePtr(now.Add(-48 * time.Hour))},
			state: service.TrialWarning,
			days:  0,
			title: "0 Days Left",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := service.DescribeTrial(tc.in, now)
			if got.State != tc.state || got.DaysRemaining != tc.days || got.Title != tc.title {
				t.Fatalf("unexpected trial status: %+v", got)
			}
		})
	}
}

func TestDescribeProfileEligibility(t *testing.T) {
	t.Parallel()
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got := service.DescribeProfileEligibility(model.SubscriptionStatus{CanUpdateProfile: true})
	if got.State != service.ProfileSubscriptionRequired {
		t.Fatalf("expected subscription_required, got %s", got.State)
	}

	got = service.DescribeProfileEligibility(model.SubscriptionStatus{HasActiveSubscription: true, CanUpdateProfile: true})
	if got.State != service.ProfileUpdateAllowed || got.NextUpdateAt != nil {
		t.Fatalf("expected allowed with no next date, got %+v", got)
	}

	got = service.DescribeProfileEligibility(model.SubscriptionStatus{HasActiveSubscription: true, LastProfileUpdate: &last})
	if got.State != service.ProfileUpdateLocked {
		t.Fatalf("expected locked, got %s", got.State)
	}
	if want := last.Add(90 * 24 * time.Hour); got.NextUpdateAt == nil || !got.NextUpdateAt.Equal(want) {
		t.Fatalf("expected next update %s, got %v", want, got.NextUpdateAt)
	}
}

func TestLoadDashboardWithAbsentPlans(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.backend.AbsentAsNoContent = true
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}

	d, err := h.coach.LoadDashboard(ctx)
	if err != nil {
		t.Fatalf("load dashboard: %v", err)
	}
	if d.WorkoutPlan != nil || d.NutritionPlan != nil {
		t.Fatalf("expected no plans, got %+v", d)
	}
	if d.Trial.State != service.TrialOpen || d.Trial.DaysRemaining != 7 {
		t.Fatalf("expected fresh 7-day trial, got %+v", d.Trial)
	}
}

func TestFlowsRequireOnboarding(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.coach.LoadDashboard(ctx); !errors.Is(err, service.ErrNotOnboarded) {
		t.Fatalf("dashboard: expected ErrNotOnboarded, got %v", err)
	}
	if _, err := h.coach.ListProgress(ctx); !errors.Is(err, service.ErrNotOnboarded) {
		t.Fatalf("progress: expected ErrNotOnboarded, got %v", err)
	}
	if _, err := h.coach.Subscribe(ctx, "card", ""); !errors.Is(err, service.ErrNotOnboarded) {
		t.Fatalf("subscribe: expected ErrNotOnboarded, got %v", err)
	}
	if n := h.backend.Count(""); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestSubscribeActivatesAndUnlocksProfile(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}

	elig, err := h.coach.ProfileStatus(ctx)
	if err != nil {
		t.Fatalf("profile status: %v", err)
	}
	if elig.State != service.ProfileSubscriptionRequired {
		t.Fatalf("expected subscription_required before subscribing, got %s", elig.State)
	}

	if _, err := h.coach.Subscribe(ctx, "  ", ""); err == nil {
		t.Fatalf("expected payment method required error")
	}
	res, err := h.coach.Subscribe(ctx, "card", "monthly")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if string(res) == "" {
		t.Fatalf("expected subscription response body")
	}

	status, trial, err := h.coach.SubscriptionOverview(ctx)
	if err != nil {
		t.Fatalf("subscription overview: %v", err)
	}
	if !status.HasActiveSubscription || trial.State != service.TrialActive {
		t.Fatalf("expected active subscription, got %+v / %+v", status, trial)
	}
}

func TestSubscriptionOverviewPropagatesServerError(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.coach.Onboard(ctx, validOnboarding()); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	h.backend.FailRoute(fakebackend.RouteSubscription, http.StatusServiceUnavailable)

	_, _, err := h.coach.SubscriptionOverview(ctx)
	if code, ok := api.StatusCode(err); !ok || code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 status error, got %v", err)
	}
	if n := h.backend.Count(fakebackend.RouteSubscription); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}
