package fitcoach

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate or show your AI workout and nutrition plans",
}

var planGenerateCmd = &cobra.Command{
	Use:       "generate <workout|nutrition>",
	Short:     "Generate a new plan (may replace the current one)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(service.PlanWorkout), string(service.PlanNutrition)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := service.ParsePlanKind(args[0])
		if err != nil {
			return err
		}
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			plans, err := d.coach.GeneratePlan(ctx, kind)
			if err != nil {
				return err
			}
			return printPlans(cmd, plans, kind)
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [workout|nutrition]",
	Short: "Show your current plans",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kinds []service.PlanKind
		if len(args) == 1 {
			kind, err := service.ParsePlanKind(args[0])
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			plans, err := d.coach.LoadPlans(ctx, kinds...)
			if err != nil {
				return err
			}
			return printPlans(cmd, plans, kinds...)
		})
	},
}

func printPlans(cmd *cobra.Command, plans *service.Plans, kinds ...service.PlanKind) error {
	if jsonOut {
		return printJSON(cmd, plans)
	}
	if len(kinds) == 0 {
		kinds = []service.PlanKind{service.PlanWorkout, service.PlanNutrition}
	}
	out := cmd.OutOrStdout()
	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(out)
		}
		switch kind {
		case service.PlanWorkout:
			printWorkoutPlan(out, plans.Workout)
		case service.PlanNutrition:
			printNutritionPlan(out, plans.Nutrition)
		}
	}
	return nil
}

func printWorkoutPlan(out io.Writer, p *model.WorkoutPlan) {
	if p == nil {
		fmt.Fprintln(out, "No workout plan yet. Run `fitcoach plan generate workout`.")
		return
	}
	fmt.Fprintf(out, "Workout plan %d\n", p.ID)
	for _, day := range p.PlanData.WeeklySchedule {
		header := day.Day
		if day.TotalDuration != "" {
			header += fmt.Sprintf(" (%s min)", day.TotalDuration)
		}
		fmt.Fprintf(out, "\n%s\n", header)
		for _, ex := range day.Exercises {
			fmt.Fprintf(out, "  - %s\t%s\n", ex.Name, exerciseDose(ex))
			if ex.Instructions != "" {
				fmt.Fprintf(out, "      %s\n", ex.Instructions)
			}
			if ex.Modifications != "" {
				fmt.Fprintf(out, "      Modification: %s\n", ex.Modifications)
			}
		}
	}
	if len(p.PlanData.Guidelines) > 0 {
		fmt.Fprintln(out, "\nGuidelines")
		for _, g := range p.PlanData.Guidelines {
			fmt.Fprintf(out, "  * %s\n", g)
		}
	}
}

func exerciseDose(ex model.Exercise) string {
	parts := make([]string, 0, 2)
	if ex.Sets != "" || ex.Reps != "" {
		parts = append(parts, fmt.Sprintf("%s x %s", orDash(string(ex.Sets)), orDash(string(ex.Reps))))
	}
	if ex.Duration != "" {
		parts = append(parts, string(ex.Duration))
	}
	return strings.Join(parts, ", ")
}

func printNutritionPlan(out io.Writer, p *model.NutritionPlan) {
	if p == nil {
		fmt.Fprintln(out, "No nutrition plan yet. Run `fitcoach plan generate nutrition`.")
		return
	}
	fmt.Fprintf(out, "Nutrition plan %d\n", p.ID)
	if p.PlanData.DailyCalories != 0 {
		fmt.Fprintf(out, "Daily calories\t%.0f\n", p.PlanData.DailyCalories.Float64())
	}
	if m := p.PlanData.Macronutrients; m != nil {
		fmt.Fprintf(out, "Macros\tP %.0fg  C %.0fg  F %.0fg\n", m.Protein.Float64(), m.Carbs.Float64(), m.Fat.Float64())
	}
	for _, day := range p.PlanData.MealPlan {
		fmt.Fprintf(out, "\n%s\n", day.Day)
		for _, meal := range day.Meals {
			line := fmt.Sprintf("  - %s\t%.0f kcal", meal.Name, meal.Calories.Float64())
			if meal.PrepTime != "" {
				line += fmt.Sprintf(", %s min prep", meal.PrepTime)
			}
			fmt.Fprintln(out, line)
			if len(meal.Ingredients) > 0 {
				fmt.Fprintf(out, "      Ingredients: %s\n", strings.Join(meal.Ingredients, ", "))
			}
			for i, step := range meal.Instructions {
				fmt.Fprintf(out, "      %d. %s\n", i+1, step)
			}
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd, planShowCmd)
}
