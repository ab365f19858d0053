package fitcoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/service"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the session stored on this device",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored session facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			entries, err := d.store.Entries(ctx)
			if err != nil {
				return err
			}
			route := d.coach.StartupRoute(ctx)
			if jsonOut {
				return printJSON(cmd, map[string]any{"route": route, "entries": entries})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\t%s\n", e.Key, e.Value, e.UpdatedAt)
			}
			if route == service.RouteOnboarding {
				fmt.Fprintln(out, "Not onboarded. Run `fitcoach onboard`.")
			}
			return nil
		})
	},
}

var sessionClearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"logout"},
	Short:   "Forget the user stored on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			if err := d.coach.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared session")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd, sessionClearCmd)
}
