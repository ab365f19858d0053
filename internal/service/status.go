package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

const (
	// ProfileUpdateInterval mirrors the server's 3-month window. It is used
	// only to display the next eligible date.
	ProfileUpdateInterval = 3 * 30 * 24 * time.Hour

	trialWarningDays = 3
)

type TrialState string

const (
	TrialActive  TrialState = "active"
	TrialExpired TrialState = "expired"
	TrialWarning TrialState = "warning"
	TrialOpen    TrialState = "trial"
)

type TrialStatus struct {
	State         TrialState `json:"state"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	DaysRemaining int        `json:"days_remaining"`
}

// DescribeTrial turns server subscription flags into the banner shown on the
// dashboard and paywall.
func DescribeTrial(s model.SubscriptionStatus, now time.Time) TrialStatus {
	days := 0
	if s.TrialEndsAt != nil {
		left := s.TrialEndsAt.Sub(now).Hours() / 24
		days = int(math.Max(0, math.Ceil(left)))
	}
	switch {
	case s.HasActiveSubscription:
		return TrialStatus{State: TrialActive, Title: "Subscription Active", Message: "Enjoy unlimited access to personalized plans!", DaysRemaining: days}
	case s.IsTrialExpired:
		return TrialStatus{State: TrialExpired, Title: "Trial Expired", Message: "Subscribe to continue accessing your plans"}
	case days <= trialWarningDays:
		return TrialStatus{State: TrialWarning, Title: fmt.Sprintf("%d Days Left", days), Message: "Your trial ends soon. Subscribe to continue!", DaysRemaining: days}
	default:
		return TrialStatus{State: TrialOpen, Title: fmt.Sprintf("%d Days Remaining", days), Message: "Explore all features during your free trial", DaysRemaining: days}
	}
}

type ProfileEligibilityState string

const (
	ProfileSubscriptionRequired ProfileEligibilityState = "subscription_required"
	ProfileUpdateAllowed        ProfileEligibilityState = "allowed"
	ProfileUpdateLocked         ProfileEligibilityState = "locked"
)

type ProfileEligibility struct {
	State             ProfileEligibilityState `json:"state"`
	LastProfileUpdate *time.Time              `json:"last_profile_update,omitempty"`
	NextUpdateAt      *time.Time              `json:"next_update_at,omitempty"`
}

// DescribeProfileEligibility reports what the profile screen shows. The
// server remains the only enforcer of the update window.
func DescribeProfileEligibility(s model.SubscriptionStatus) ProfileEligibility {
	out := ProfileEligibility{LastProfileUpdate: s.LastProfileUpdate}
	if s.LastProfileUpdate != nil {
		next := s.LastProfileUpdate.Add(ProfileUpdateInterval)
		out.NextUpdateAt = &next
	}
	switch {
	case !s.HasActiveSubscription:
		out.State = ProfileSubscriptionRequired
	case s.CanUpdateProfile:
		out.State = ProfileUpdateAllowed
	default:
		out.State = ProfileUpdateLocked
	}
	return out
}

type Dashboard struct {
	UserID        string                   `json:"user_id"`
	Subscription  model.SubscriptionStatus `json:"subscription"`
	Trial         TrialStatus              `json:"trial"`
	WorkoutPlan   *model.WorkoutPlan       `json:"workout_plan,omitempty"`
	NutritionPlan *model.NutritionPlan     `json:"nutrition_plan,omitempty"`
}

// LoadDashboard fetches subscription state and both plans for the stored
// user. Absent plans are left nil.
func (c *Coach) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	status, err := c.Remote.GetSubscriptionStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load subscription status: %w", err)
	}
	workout, err := c.Remote.GetWorkoutPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workout plan: %w", err)
	}
	nutrition, err := c.Remote.GetNutritionPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load nutrition plan: %w", err)
	}
	return &Dashboard{
		UserID:        id,
		Subscription:  *status,
		Trial:         DescribeTrial(*status, c.now()),
		WorkoutPlan:   workout,
		NutritionPlan: nutrition,
	}, nil
}

// SubscriptionOverview is the subscription screen's data.
func (c *Coach) SubscriptionOverview(ctx context.Context) (*model.SubscriptionStatus, TrialStatus, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, TrialStatus{}, err
	}
	status, err := c.Remote.GetSubscriptionStatus(ctx, id)
	if err != nil {
		return nil, TrialStatus{}, fmt.Errorf("load subscription status: %w", err)
	}
	return status, DescribeTrial(*status, c.now()), nil
}
