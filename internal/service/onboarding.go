package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

type OnboardingStep int

const (
	StepPersonalInfo OnboardingStep = iota
	StepExercisePreferences
	StepNutritionPreferences
	StepComplete
)

var stepNames = map[OnboardingStep]string{
	StepPersonalInfo:         "Personal Info",
	StepExercisePreferences:  "Exercise Preferences",
	StepNutritionPreferences: "Nutrition Preferences",
	StepComplete:             "Complete Setup",
}

func (s OnboardingStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step %d", int(s))
}

var (
	Sexes          = []string{"male", "female"}
	ActivityLevels = []string{"sedentary", "lightly_active", "moderately_active", "very_active", "extremely_active"}
	CookingTimes   = []string{"quick", "moderate", "extended"}
	BudgetRanges   = []string{"low", "medium", "high"}
)

// ValidateStep checks the required fields of one onboarding step.
func ValidateStep(step OnboardingStep, in model.OnboardingInput) error {
	missing := make([]string, 0)
	switch step {
	case StepPersonalInfo:
		if in.Age <= 0 {
			missing = append(missing, "age")
		}
		if strings.TrimSpace(in.Sex) == "" {
			missing = append(missing, "sex")
		}
		if !isFinite(in.Weight) {
			return fmt.Errorf("%s: weight must be a finite number", step)
		}
		if in.Weight <= 0 {
			missing = append(missing, "weight")
		}
		if in.HeightFeet <= 0 {
			missing = append(missing, "heightFeet")
		}
		if in.HeightInches < 0 || in.HeightInches > 11 {
			return fmt.Errorf("%s: heightInches must be between 0 and 11", step)
		}
	case StepExercisePreferences:
		if strings.TrimSpace(in.ActivityLevel) == "" {
			missing = append(missing, "activityLevel")
		}
		if in.WorkoutDuration <= 0 {
			missing = append(missing, "workoutDuration")
		}
		if in.WorkoutFrequency <= 0 {
			missing = append(missing, "workoutFrequency")
		}
	case StepNutritionPreferences:
		if in.MealsPerDay <= 0 {
			missing = append(missing, "mealsPerDay")
		}
		if strings.TrimSpace(in.CookingTime) == "" {
			missing = append(missing, "cookingTime")
		}
		if strings.TrimSpace(in.BudgetRange) == "" {
			missing = append(missing, "budgetRange")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required fields: %s", step, strings.Join(missing, ", "))
	}
	return validateChoices(step, in)
}

func validateChoices(step OnboardingStep, in model.OnboardingInput) error {
	check := func(field, value string, allowed []string) error {
		if value == "" || slices.Contains(allowed, value) {
			return nil
		}
		return fmt.Errorf("%s: invalid %s %q (expected one of %s)", step, field, value, strings.Join(allowed, "|"))
	}
	switch step {
	case StepPersonalInfo:
		return check("sex", in.Sex, Sexes)
	case StepExercisePreferences:
		if in.WorkoutFrequency > 7 {
			return fmt.Errorf("%s: workoutFrequency must be at most 7 days per week", step)
		}
		return check("activityLevel", in.ActivityLevel, ActivityLevels)
	case StepNutritionPreferences:
		if err := check("cookingTime", in.CookingTime, CookingTimes); err != nil {
			return err
		}
		return check("budgetRange", in.BudgetRange, BudgetRanges)
	}
	return nil
}

// ValidateOnboarding runs every step in order and stops at the first failure.
func ValidateOnboarding(in model.OnboardingInput) error {
	for step := StepPersonalInfo; step < StepComplete; step++ {
		if err := ValidateStep(step, in); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeOnboarding trims text fields and turns nil lists into empty ones
// so the request always carries arrays.
func NormalizeOnboarding(in model.OnboardingInput) model.OnboardingInput {
	in.Sex = strings.ToLower(strings.TrimSpace(in.Sex))
	in.ActivityLevel = strings.ToLower(strings.TrimSpace(in.ActivityLevel))
	in.CookingTime = strings.ToLower(strings.TrimSpace(in.CookingTime))
	in.BudgetRange = strings.ToLower(strings.TrimSpace(in.BudgetRange))
	for _, list := range []*[]string{
		&in.FitnessGoals, &in.HealthConditions, &in.ExercisePreferences,
		&in.EquipmentAccess, &in.DietaryRestrictions, &in.FoodAllergies,
	} {
		*list = cleanList(*list)
	}
	return in
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Onboard creates the user on the server and seeds the local session. The
// session is only written after the server accepted the user.
func (c *Coach) Onboard(ctx context.Context, in model.OnboardingInput) (*model.User, error) {
	in = NormalizeOnboarding(in)
	if err := ValidateOnboarding(in); err != nil {
		return nil, err
	}
	u, err := c.Remote.CreateUser(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := c.Session.SetUserID(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := c.Session.SetUserData(ctx, *u); err != nil {
		return nil, err
	}
	if err := c.Session.SetOnboardingComplete(ctx, true); err != nil {
		return nil, err
	}
	return u, nil
}
