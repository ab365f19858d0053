package fitcoach

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/app"
	"github.com/saadjs/fitcoach-cli/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fitcoach local configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value (keys: " + strings.Join(service.ConfigKeys, ", ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(ctx context.Context, s *service.Settings) error {
			if err := s.Set(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", strings.ToLower(strings.TrimSpace(args[0])))
			return nil
		})
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(ctx context.Context, s *service.Settings) error {
			if err := s.Unset(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", strings.ToLower(strings.TrimSpace(args[0])))
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show stored configuration and the effective API URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(ctx context.Context, s *service.Settings) error {
			if len(args) == 1 {
				v, ok, err := s.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("config %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			}
			entries, err := s.List(ctx)
			if err != nil {
				return err
			}
			stored := ""
			for _, e := range entries {
				if e.Key == service.ConfigAPIURL {
					stored = e.Value
				}
			}
			effective := app.ResolveAPIURL(apiURL, env.APIURL, stored)
			if jsonOut {
				return printJSON(cmd, map[string]any{"entries": entries, "effective_api_url": effective})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Key, e.Value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "effective api_url\t%s\n", effective)
			return nil
		})
	},
}

func withSettings(cmd *cobra.Command, run func(context.Context, *service.Settings) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(cmd.Context(), service.NewSettings(sqldb))
	})
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configUnsetCmd)
}
