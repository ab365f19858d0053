package service_test

import (
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/fitcoach-cli/internal/api"
	"github.com/saadjs/fitcoach-cli/internal/db"
	"github.com/saadjs/fitcoach-cli/internal/fakebackend"
	"github.com/saadjs/fitcoach-cli/internal/service"
	"github.com/saadjs/fitcoach-cli/internal/session"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitcoach.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	return sqldb
}

type harness struct {
	coach   *service.Coach
	backend *fakebackend.Backend
	store   *session.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := fakebackend.New()
	backend.Now = func() time.Time { return fixedNow }
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store := session.New(newTestDB(t), nil)
	coach := service.NewCoach(client, store)
	coach.Now = func() time.Time { return fixedNow }
	return &harness{coach: coach, backend: backend, store: store}
}
