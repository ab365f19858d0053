package fitcoach

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/fitcoach-cli/internal/api"
	"github.com/saadjs/fitcoach-cli/internal/app"
	"github.com/saadjs/fitcoach-cli/internal/db"
	"github.com/saadjs/fitcoach-cli/internal/logging"
	"github.com/saadjs/fitcoach-cli/internal/service"
	"github.com/saadjs/fitcoach-cli/internal/session"
)

// deps is everything a command needs once the database is open.
type deps struct {
	logger *zap.Logger
	store  *session.Store
	coach  *service.Coach
}

func resolveDBPath() (string, error) {
	return app.ResolveDBPath(dbPath, env.DBPath)
}

func newLogger(cmd *cobra.Command) (*zap.Logger, func() error) {
	level := env.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Dev:    env.LogDev,
		Output: cmd.ErrOrStderr(),
		File:   env.LogFile,
	})
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// withRuntime opens the database and builds the client against the API URL
// chosen by flag, then environment, then stored config.
func withRuntime(cmd *cobra.Command, run func(context.Context, *deps) error) error {
	logger, closeLog := newLogger(cmd)
	defer func() { _ = closeLog() }()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return withDB(func(sqldb *sql.DB) error {
		settings := service.NewSettings(sqldb)
		stored, _, err := settings.Get(ctx, service.ConfigAPIURL)
		if err != nil {
			return err
		}
		baseURL := app.ResolveAPIURL(apiURL, env.APIURL, stored)
		client, err := api.New(baseURL, api.WithLogger(logger))
		if err != nil {
			return err
		}
		logger.Debug("runtime ready", zap.String("api_url", client.BaseURL()))
		store := session.New(sqldb, logger)
		rt := &deps{
			logger: logger,
			store:  store,
			coach:  service.NewCoach(client, store),
		}
		return explain(run(ctx, rt))
	})
}

// explain adds a next step to errors the user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrNotOnboarded):
		return fmt.Errorf("%w (run `fitcoach onboard`)", err)
	case errors.Is(err, api.ErrTransport):
		return fmt.Errorf("%w (is the API reachable? set --api-url or `fitcoach config set api_url <url>`)", err)
	}
	if code, ok := api.StatusCode(err); ok && code == http.StatusTooManyRequests {
		return fmt.Errorf("%w (see `fitcoach profile status` for the next allowed date)", err)
	}
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
