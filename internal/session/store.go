// Package session persists the device's session facts: the current user id,
// the last fetched user snapshot, and whether onboarding finished.
//
// The facts are a cache. Callers should prefer a fresh fetch from the API and
// use the snapshot only until that fetch resolves. Reads never fail: a
// missing, corrupt, or unreadable value is reported as absent. Writes return
// their errors because there is no safe value to substitute.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/saadjs/fitcoach-cli/internal/db"
	"github.com/saadjs/fitcoach-cli/internal/logging"
	"github.com/saadjs/fitcoach-cli/internal/model"
)

const (
	KeyUserID             = "userId"
	KeyUserData           = "userData"
	KeyOnboardingComplete = "onboardingComplete"

	trueValue = "true"
)

var sessionKeys = []string{KeyUserID, KeyUserData, KeyOnboardingComplete}

type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// New wraps a database that already has migrations applied.
func New(sqldb *sql.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     sqlx.NewDb(sqldb, db.DriverName),
		logger: logging.OrNop(logger).Named("session"),
	}
}

// UserID returns the stored user id in its string form.
func (s *Store) UserID(ctx context.Context) (string, bool) {
	return s.get(ctx, KeyUserID)
}

func (s *Store) SetUserID(ctx context.Context, id int64) error {
	return s.set(ctx, KeyUserID, strconv.FormatInt(id, 10))
}

// UserData returns the cached user snapshot. An unparseable record reads as
// absent.
func (s *Store) UserData(ctx context.Context) (*model.User, bool) {
	raw, ok := s.get(ctx, KeyUserData)
	if !ok {
		return nil, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn("discarding corrupt user snapshot", zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (s *Store) SetUserData(ctx context.Context, u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}
	return s.set(ctx, KeyUserData, string(b))
}

// OnboardingComplete is true only when the stored text is exactly "true".
func (s *Store) OnboardingComplete(ctx context.Context) bool {
	v, ok := s.get(ctx, KeyOnboardingComplete)
	return ok && v == trueValue
}

func (s *Store) SetOnboardingComplete(ctx context.Context, complete bool) error {
	return s.set(ctx, KeyOnboardingComplete, strconv.FormatBool(complete))
}

// Clear removes every session key in one transaction.
func (s *Store) Clear(ctx context.Context) error {
	query, args, err := sqlx.In(`DELETE FROM session_kv WHERE key IN (?)`, sessionKeys)
	if err != nil {
		return fmt.Errorf("build clear session query: %w", err)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear session tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear session: %w", err)
	}
	return nil
}

type Entry struct {
	Key       string `db:"key" json:"key"`
	Value     string `db:"value" json:"value"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// Entries lists the raw stored session rows, ordered by key.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	query, args, err := sqlx.In(`SELECT key, value, updated_at FROM session_kv WHERE key IN (?) ORDER BY key ASC`, sessionKeys)
	if err != nil {
		return nil, fmt.Errorf("build list session query: %w", err)
	}
	out := make([]Entry, 0, len(sessionKeys))
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list session entries: %w", err)
	}
	return out, nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM session_kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("session read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO session_kv(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	return nil
}
