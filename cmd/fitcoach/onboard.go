package fitcoach

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

var (
	obAge                 int
	obSex                 string
	obWeight              float64
	obWeightUnit          string
	obHeightFeet          int
	obHeightInches        int
	obGoals               []string
	obHealthConditions    []string
	obActivityLevel       string
	obExercisePreferences []string
	obEquipment           []string
	obWorkoutDuration     int
	obWorkoutFrequency    int
	obDietaryRestrictions []string
	obFoodAllergies       []string
	obMealsPerDay         int
	obCookingTime         string
	obBudgetRange         string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create your coaching profile and start the free trial",
	Long: "onboard sends your personal info, exercise preferences, and nutrition preferences " +
		"to the coaching service and stores the returned user on this device.",
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := service.ConvertWeight(obWeight, obWeightUnit, service.APIWeightUnit)
		if err != nil {
			return err
		}
		in := model.OnboardingInput{
			Age:                 obAge,
			Sex:                 obSex,
			Weight:              weight,
			HeightFeet:          obHeightFeet,
			HeightInches:        obHeightInches,
			FitnessGoals:        obGoals,
			HealthConditions:    obHealthConditions,
			ActivityLevel:       obActivityLevel,
			ExercisePreferences: obExercisePreferences,
			EquipmentAccess:     obEquipment,
			WorkoutDuration:     obWorkoutDuration,
			WorkoutFrequency:    obWorkoutFrequency,
			DietaryRestrictions: obDietaryRestrictions,
			FoodAllergies:       obFoodAllergies,
			MealsPerDay:         obMealsPerDay,
			CookingTime:         obCookingTime,
			BudgetRange:         obBudgetRange,
		}
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			if d.coach.StartupRoute(ctx) == service.RouteMain {
				d.logger.Info("replacing existing session with a new user")
			}
			u, err := d.coach.Onboard(ctx, in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Onboarded user %d. Your 7-day free trial has started.\n", u.ID)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: `fitcoach plan generate workout` and `fitcoach plan generate nutrition`")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)

	f := onboardCmd.Flags()
	f.IntVar(&obAge, "age", 0, "Age in years")
	f.StringVar(&obSex, "sex", "", "Sex ("+strings.Join(service.Sexes, "|")+")")
	f.Float64Var(&obWeight, "weight", 0, "Body weight")
	f.StringVar(&obWeightUnit, "weight-unit", "lb", "Unit of --weight (lb|kg)")
	f.IntVar(&obHeightFeet, "height-feet", 0, "Height, feet part")
	f.IntVar(&obHeightInches, "height-inches", 0, "Height, inches part (0-11)")
	f.StringSliceVar(&obGoals, "goals", nil, "Fitness goals (comma-separated)")
	f.StringSliceVar(&obHealthConditions, "health-conditions", nil, "Health conditions (comma-separated)")
	f.StringVar(&obActivityLevel, "activity-level", "", "Activity level ("+strings.Join(service.ActivityLevels, "|")+")")
	f.StringSliceVar(&obExercisePreferences, "exercise-preferences", nil, "Preferred exercise types (comma-separated)")
	f.StringSliceVar(&obEquipment, "equipment", nil, "Available equipment (comma-separated)")
	f.IntVar(&obWorkoutDuration, "workout-duration", 0, "Workout length in minutes")
	f.IntVar(&obWorkoutFrequency, "workout-frequency", 0, "Workouts per week")
	f.StringSliceVar(&obDietaryRestrictions, "dietary-restrictions", nil, "Dietary restrictions (comma-separated)")
	f.StringSliceVar(&obFoodAllergies, "allergies", nil, "Food allergies (comma-separated)")
	f.IntVar(&obMealsPerDay, "meals-per-day", 0, "Meals per day")
	f.StringVar(&obCookingTime, "cooking-time", "", "Cooking time ("+strings.Join(service.CookingTimes, "|")+")")
	f.StringVar(&obBudgetRange, "budget", "", "Food budget ("+strings.Join(service.BudgetRanges, "|")+")")
}
