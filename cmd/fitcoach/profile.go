package fitcoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile (subscribers, once every 3 months)",
}

var (
	profAge           int
	profSex           string
	profWeight        float64
	profWeightUnit    string
	profActivityLevel string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update age, sex, weight, or activity level",
	RunE: func(cmd *cobra.Command, args []string) error {
		var in model.ProfileUpdate
		if cmd.Flags().Changed("age") {
			in.Age = &profAge
		}
		if cmd.Flags().Changed("sex") {
			in.Sex = &profSex
		}
		if cmd.Flags().Changed("weight") {
			w, err := service.ConvertWeight(profWeight, profWeightUnit, service.APIWeightUnit)
			if err != nil {
				return err
			}
			in.Weight = &w
		}
		if cmd.Flags().Changed("activity-level") {
			in.ActivityLevel = &profActivityLevel
		}
		if err := service.ValidateProfileUpdate(in); err != nil {
			return err
		}
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			u, err := d.coach.UpdateProfile(ctx, in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, u)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated. Regenerate your plans to reflect the changes.")
			return nil
		})
	},
}

var profileStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a profile update is currently allowed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			elig, err := d.coach.ProfileStatus(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, elig)
			}
			out := cmd.OutOrStdout()
			switch elig.State {
			case service.ProfileSubscriptionRequired:
				fmt.Fprintln(out, "Profile updates require an active subscription (fitcoach subscription create).")
			case service.ProfileUpdateAllowed:
				fmt.Fprintln(out, "You can update your profile now.")
			default:
				fmt.Fprintln(out, "Profile updates are limited to once every 3 months.")
			}
			if elig.LastProfileUpdate != nil {
				fmt.Fprintf(out, "Last update\t%s\n", elig.LastProfileUpdate.Local().Format("2006-01-02"))
			}
			if elig.State == service.ProfileUpdateLocked && elig.NextUpdateAt != nil {
				fmt.Fprintf(out, "Next update\t%s\n", elig.NextUpdateAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd, profileStatusCmd)

	profileUpdateCmd.Flags().IntVar(&profAge, "age", 0, "Age in years")
	profileUpdateCmd.Flags().StringVar(&profSex, "sex", "", "Sex (male|female)")
	profileUpdateCmd.Flags().Float64Var(&profWeight, "weight", 0, "Body weight")
	profileUpdateCmd.Flags().StringVar(&profWeightUnit, "weight-unit", "lb", "Unit of --weight (lb|kg)")
	profileUpdateCmd.Flags().StringVar(&profActivityLevel, "activity-level", "", "Activity level")
}
