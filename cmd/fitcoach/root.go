package fitcoach

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitcoach-cli/internal/app"
)

var (
	dbPath  string
	apiURL  string
	jsonOut bool
	verbose bool

	env app.Env
)

var rootCmd = &cobra.Command{
	Use:   "fitcoach",
	Short: "fitcoach is a terminal client for your AI fitness coach",
	Long: "fitcoach onboards you with the coaching service, keeps your session on this device, " +
		"and shows your workout plan, nutrition plan, subscription, and progress.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env = app.LoadEnv()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env "+app.EnvDBPath+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Coaching API base URL (env "+app.EnvAPIURL+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests at debug level")
}
