package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saadjs/fitcoach-cli/internal/db"
)

const ConfigAPIURL = "api_url"

// ConfigKeys lists the keys `config set` accepts.
var ConfigKeys = []string{ConfigAPIURL}

// Settings reads and writes the app_config table.
type Settings struct {
	db *sqlx.DB
}

func NewSettings(sqldb *sql.DB) *Settings {
	return &Settings{db: sqlx.NewDb(sqldb, db.DriverName)}
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", fmt.Errorf("config key is required")
	}
	if slices.Contains(ConfigKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown config key %q (expected one of %s)", key, strings.Join(ConfigKeys, "|"))
}

func validateConfigValue(key, value string) (string, error) {
	switch key {
	case ConfigAPIURL:
		value = strings.TrimRight(value, "/")
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, value)
		}
	}
	return value, nil
}

func (s *Settings) Set(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	value, err = validateConfigValue(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (s *Settings) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	var value string
	err = s.db.GetContext(ctx, &value, `SELECT value FROM app_config WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Settings) Unset(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("unset config %q: %w", key, err)
	}
	return nil
}

type ConfigEntry struct {
	Key       string `db:"key" json:"key"`
	Value     string `db:"value" json:"value"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

func (s *Settings) List(ctx context.Context) ([]ConfigEntry, error) {
	out := make([]ConfigEntry, 0)
	if err := s.db.SelectContext(ctx, &out, `SELECT key, value, updated_at FROM app_config ORDER BY key ASC`); err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	return out, nil
}
