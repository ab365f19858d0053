package fitcoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"home"},
	Short:   "Show trial status and whether your plans are ready",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			dash, err := d.coach.LoadDashboard(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, dash)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", dash.Trial.Title, dash.Trial.Message)
			fmt.Fprintf(out, "Workout plan\t%s\n", readiness(dash.WorkoutPlan != nil, "workout"))
			fmt.Fprintf(out, "Nutrition plan\t%s\n", readiness(dash.NutritionPlan != nil, "nutrition"))
			return nil
		})
	},
}

func readiness(ready bool, kind string) string {
	if ready {
		return "ready (fitcoach plan show " + kind + ")"
	}
	return "not generated (fitcoach plan generate " + kind + ")"
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
