package fitcoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the user stored on this device",
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch and show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			view, err := d.coach.RefreshUser(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, view)
			}
			if view.Stale {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: showing cached profile, refresh failed: %v\n", view.FetchErr)
			}
			printUser(cmd, view.User)
			return nil
		})
	},
}

func printUser(cmd *cobra.Command, u *model.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID\t%d\n", u.ID)
	fmt.Fprintf(out, "Age\t%d\n", u.Age)
	fmt.Fprintf(out, "Sex\t%s\n", u.Sex)
	fmt.Fprintf(out, "Weight\t%s lb\n", u.Weight)
	fmt.Fprintf(out, "Height\t%d'%d\"\n", u.HeightFeet, u.HeightInches)
	fmt.Fprintf(out, "Activity\t%s\n", u.ActivityLevel)
	fmt.Fprintf(out, "Goals\t%s\n", joinOrDash(u.FitnessGoals))
	fmt.Fprintf(out, "Workouts\t%d x %d min per week\n", u.WorkoutFrequency, u.WorkoutDuration)
	fmt.Fprintf(out, "Equipment\t%s\n", joinOrDash(u.EquipmentAccess))
	fmt.Fprintf(out, "Meals\t%d per day\n", u.MealsPerDay)
	fmt.Fprintf(out, "Diet\t%s\n", joinOrDash(u.DietaryRestrictions))
	fmt.Fprintf(out, "Allergies\t%s\n", joinOrDash(u.FoodAllergies))
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userShowCmd)
}
