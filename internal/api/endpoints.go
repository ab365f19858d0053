package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

var ErrMissingUserID = errors.New("user id is required")

func userPath(userID, suffix string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", ErrMissingUserID
	}
	return "/api/users/" + url.PathEscape(id) + suffix, nil
}

func (c *Client) CreateUser(ctx context.Context, in model.OnboardingInput) (*model.User, error) {
	return doRequired[model.User](ctx, c, http.MethodPost, "/api/users", in)
}

func (c *Client) GetUser(ctx context.Context, userID string) (*model.User, error) {
	path, err := userPath(userID, "")
	if err != nil {
		return nil, err
	}
	return doRequired[model.User](ctx, c, http.MethodGet, path, nil)
}

// UpdateUserProfile sends the partial profile. The server decides whether the
// update window is open; a closed window surfaces as a *StatusError.
func (c *Client) UpdateUserProfile(ctx context.Context, userID string, in model.ProfileUpdate) (*model.User, error) {
	path, err := userPath(userID, "/profile")
	if err != nil {
		return nil, err
	}
	return doRequired[model.User](ctx, c, http.MethodPut, path, in)
}

func (c *Client) GetSubscriptionStatus(ctx context.Context, userID string) (*model.SubscriptionStatus, error) {
	path, err := userPath(userID, "/subscription")
	if err != nil {
		return nil, err
	}
	return doRequired[model.SubscriptionStatus](ctx, c, http.MethodGet, path, nil)
}

// CreateSubscription passes the server's result through untouched.
func (c *Client) CreateSubscription(ctx context.Context, in model.SubscriptionRequest) (json.RawMessage, error) {
	return c.Request(ctx, "/api/create-subscription", RequestOptions{Method: http.MethodPost, Body: in})
}

// GenerateWorkoutPlan asks the server for a new plan. Whether an existing
// plan is replaced is up to the server.
func (c *Client) GenerateWorkoutPlan(ctx context.Context, userID string) (*model.WorkoutPlan, error) {
	path, err := userPath(userID, "/workout-plan")
	if err != nil {
		return nil, err
	}
	return doRequired[model.WorkoutPlan](ctx, c, http.MethodPost, path, nil)
}

// GetWorkoutPlan returns nil, nil when no plan has been generated yet.
func (c *Client) GetWorkoutPlan(ctx context.Context, userID string) (*model.WorkoutPlan, error) {
	path, err := userPath(userID, "/workout-plan")
	if err != nil {
		return nil, err
	}
	return do[model.WorkoutPlan](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) GenerateNutritionPlan(ctx context.Context, userID string) (*model.NutritionPlan, error) {
	path, err := userPath(userID, "/nutrition-plan")
	if err != nil {
		return nil, err
	}
	return doRequired[model.NutritionPlan](ctx, c, http.MethodPost, path, nil)
}

// GetNutritionPlan returns nil, nil when no plan has been generated yet.
func (c *Client) GetNutritionPlan(ctx context.Context, userID string) (*model.NutritionPlan, error) {
	path, err := userPath(userID, "/nutrition-plan")
	if err != nil {
		return nil, err
	}
	return do[model.NutritionPlan](ctx, c, http.MethodGet, path, nil)
}

// GetProgressEntries keeps the server's ordering.
func (c *Client) GetProgressEntries(ctx context.Context, userID string) ([]model.ProgressEntry, error) {
	path, err := userPath(userID, "/progress")
	if err != nil {
		return nil, err
	}
	entries, err := do[[]model.ProgressEntry](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []model.ProgressEntry{}, nil
	}
	return *entries, nil
}

func (c *Client) CreateProgressEntry(ctx context.Context, userID string, in model.ProgressInput) (*model.ProgressEntry, error) {
	path, err := userPath(userID, "/progress")
	if err != nil {
		return nil, err
	}
	return doRequired[model.ProgressEntry](ctx, c, http.MethodPost, path, in)
}
