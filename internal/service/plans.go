package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

type PlanKind string

const (
	PlanWorkout   PlanKind = "workout"
	PlanNutrition PlanKind = "nutrition"
)

func ParsePlanKind(raw string) (PlanKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "workout", "workouts", "exercise":
		return PlanWorkout, nil
	case "nutrition", "meal", "meals", "diet":
		return PlanNutrition, nil
	default:
		return "", fmt.Errorf("unknown plan kind %q (expected workout|nutrition)", raw)
	}
}

// Plans holds whichever plans exist; a nil field means not generated yet.
type Plans struct {
	Workout   *model.WorkoutPlan   `json:"workout_plan"`
	Nutrition *model.NutritionPlan `json:"nutrition_plan"`
}

// GeneratePlan asks the server for a new plan of the given kind. Calling it
// again may replace the previous plan; that is the server's decision.
func (c *Coach) GeneratePlan(ctx context.Context, kind PlanKind) (*Plans, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	out := &Plans{}
	switch kind {
	case PlanWorkout:
		out.Workout, err = c.Remote.GenerateWorkoutPlan(ctx, id)
	case PlanNutrition:
		out.Nutrition, err = c.Remote.GenerateNutritionPlan(ctx, id)
	default:
		return nil, fmt.Errorf("unknown plan kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s plan: %w", kind, err)
	}
	return out, nil
}

// LoadPlans fetches the requested kinds; an empty kind list loads both.
func (c *Coach) LoadPlans(ctx context.Context, kinds ...PlanKind) (*Plans, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		kinds = []PlanKind{PlanWorkout, PlanNutrition}
	}
	out := &Plans{}
	for _, kind := range kinds {
		switch kind {
		case PlanWorkout:
			out.Workout, err = c.Remote.GetWorkoutPlan(ctx, id)
		case PlanNutrition:
			out.Nutrition, err = c.Remote.GetNutritionPlan(ctx, id)
		default:
			return nil, fmt.Errorf("unknown plan kind %q", kind)
		}
		if err != nil {
			return nil, fmt.Errorf("load %s plan: %w", kind, err)
		}
	}
	return out, nil
}

// Subscribe submits a payment selection for the stored user and returns the
// server's result untouched.
func (c *Coach) Subscribe(ctx context.Context, paymentMethod, plan string) (json.RawMessage, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	res, err := c.Remote.CreateSubscription(ctx, model.SubscriptionRequest{
		UserID:        id,
		PaymentMethod: paymentMethod,
		Plan:          strings.TrimSpace(plan),
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return res, nil
}
