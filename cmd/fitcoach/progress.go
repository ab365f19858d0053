package fitcoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track weight, body fat, and muscle mass over time",
}

var progressListUnit string

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List progress entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			entries, err := d.coach.ListProgress(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, entries)
			}
			unit := progressListUnit
			if unit == "" {
				unit = service.APIWeightUnit
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tBODY_FAT%\tMUSCLE\tNOTES")
			for _, e := range entries {
				if err := printProgressRow(cmd, e, unit); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func printProgressRow(cmd *cobra.Command, e model.ProgressEntry, unit string) error {
	w, err := service.ConvertWeight(e.Weight.Float64(), service.APIWeightUnit, unit)
	if err != nil {
		return err
	}
	bf, muscle, notes := "", "", ""
	if e.BodyFatPercentage != nil {
		bf = fmt.Sprintf("%.1f", e.BodyFatPercentage.Float64())
	}
	if e.MuscleMass != nil {
		m, err := service.ConvertWeight(e.MuscleMass.Float64(), service.APIWeightUnit, unit)
		if err != nil {
			return err
		}
		muscle = fmt.Sprintf("%.1f %s", m, unit)
	}
	if e.Notes != nil {
		notes = *e.Notes
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f %s\t%s\t%s\t%s\n", e.EntryDate.Local().Format("2006-01-02"), w, unit, bf, muscle, notes)
	return nil
}

var progressForm service.ProgressForm

var progressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a progress entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.BuildProgressInput(progressForm); err != nil {
			return err
		}
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			entry, err := d.coach.AddProgress(ctx, progressForm)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged progress entry %d (%s lb)\n", entry.ID, entry.Weight)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressListCmd, progressAddCmd)

	progressListCmd.Flags().StringVar(&progressListUnit, "unit", "lb", "Display unit (lb|kg)")

	f := progressAddCmd.Flags()
	f.StringVar(&progressForm.Weight, "weight", "", "Body weight (required)")
	f.StringVar(&progressForm.BodyFatPercentage, "body-fat", "", "Body fat percentage")
	f.StringVar(&progressForm.MuscleMass, "muscle-mass", "", "Muscle mass")
	f.StringVar(&progressForm.Notes, "notes", "", "Notes")
	f.StringVar(&progressForm.Unit, "unit", "lb", "Unit of --weight and --muscle-mass (lb|kg)")
}
