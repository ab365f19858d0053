package session_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/saadjs/fitcoach-cli/internal/db"
	"github.com/saadjs/fitcoach-cli/internal/model"
	"github.com/saadjs/fitcoach-cli/internal/session"
)

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
	return sqldb
}

func TestUserIDStoredAsString(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	if _, ok := s.UserID(ctx); ok {
		t.Fatalf("expected no user id before set")
	}
	if err := s.SetUserID(ctx, 42); err != nil {
		t.Fatalf("set user id: %v", err)
	}
	id, ok := s.UserID(ctx)
	if !ok || id != "42" {
		t.Fatalf("expected user id \"42\", got %q (ok=%v)", id, ok)
	}
	if err := s.SetUserID(ctx, 7); err != nil {
		t.Fatalf("overwrite user id: %v", err)
	}
	if id, _ := s.UserID(ctx); id != "7" {
		t.Fatalf("expected overwritten user id \"7\", got %q", id)
	}
}

func TestUserDataRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	want := model.User{
		ID:                  42,
		Age:                 30,
		Sex:                 "male",
		Weight:              180.5,
		HeightFeet:          5,
		HeightInches:        10,
		FitnessGoals:        []string{"Muscle Gain"},
		ActivityLevel:       "moderately_active",
		WorkoutDuration:     30,
		WorkoutFrequency:    3,
		DietaryRestrictions: []string{"Vegetarian"},
		MealsPerDay:         3,
		CookingTime:         "quick",
		BudgetRange:         "medium",
		CreatedAt:           &created,
	}
	if err := s.SetUserData(ctx, want); err != nil {
		t.Fatalf("set user data: %v", err)
	}
	got, ok := s.UserData(ctx)
	if !ok {
		t.Fatalf("expected cached user data")
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", *got, want)
	}
}

func TestUserDataRoundTripKeepsEmptyAndNilFields(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	cases := map[string]model.User{
		"empty lists": {
			ID:                  42,
			FitnessGoals:        []string{},
			HealthConditions:    []string{},
			ExercisePreferences: []string{},
			EquipmentAccess:     []string{},
			DietaryRestrictions: []string{},
			FoodAllergies:       []string{},
		},
		"nil lists and optionals": {ID: 43, Sex: "female", MealsPerDay: 4},
	}
	for name, want := range cases {
		if err := s.SetUserData(ctx, want); err != nil {
			t.Fatalf("%s: set user data: %v", name, err)
		}
		got, ok := s.UserData(ctx)
		if !ok {
			t.Fatalf("%s: expected cached user data", name)
		}
		if !reflect.DeepEqual(*got, want) {
			t.Fatalf("%s: round trip mismatch:\n got  %#v\n want %#v", name, *got, want)
		}
	}
}

func TestCorruptUserDataReadsAsAbsent(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	if _, err := sqldb.Exec(`INSERT INTO session_kv(key, value) VALUES(?, ?)`, session.KeyUserData, `{"id": 4`); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if u, ok := s.UserData(ctx); ok || u != nil {
		t.Fatalf("expected corrupt snapshot to read as absent, got %+v", u)
	}
}

func TestOnboardingFlag(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	if s.OnboardingComplete(ctx) {
		t.Fatalf("expected onboarding incomplete by default")
	}
	for i := 0; i < 2; i++ {
		if err := s.SetOnboardingComplete(ctx, true); err != nil {
			t.Fatalf("set onboarding complete: %v", err)
		}
		if !s.OnboardingComplete(ctx) {
			t.Fatalf("expected onboarding complete after set #%d", i+1)
		}
	}
	if err := s.SetOnboardingComplete(ctx, false); err != nil {
		t.Fatalf("reset onboarding: %v", err)
	}
	if s.OnboardingComplete(ctx) {
		t.Fatalf("expected onboarding incomplete after false")
	}
}

func TestOnboardingFlagOnlyAcceptsCanonicalTrue(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	for _, v := range []string{"TRUE", "1", "yes", " true"} {
		if _, err := sqldb.Exec(`INSERT OR REPLACE INTO session_kv(key, value) VALUES(?, ?)`, session.KeyOnboardingComplete, v); err != nil {
			t.Fatalf("seed flag %q: %v", v, err)
		}
		if s.OnboardingComplete(ctx) {
			t.Fatalf("expected %q to read as false", v)
		}
	}
}

func TestClearResetsAllKeys(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	if err := s.SetUserID(ctx, 42); err != nil {
		t.Fatalf("set user id: %v", err)
	}
	if err := s.SetUserData(ctx, model.User{ID: 42}); err != nil {
		t.Fatalf("set user data: %v", err)
	}
	if err := s.SetOnboardingComplete(ctx, true); err != nil {
		t.Fatalf("set onboarding: %v", err)
	}
	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 session entries, got %d", len(entries))
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	if _, ok := s.UserID(ctx); ok {
		t.Fatalf("expected user id absent after clear")
	}
	if _, ok := s.UserData(ctx); ok {
		t.Fatalf("expected user data absent after clear")
	}
	if s.OnboardingComplete(ctx) {
		t.Fatalf("expected onboarding false after clear")
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear empty session: %v", err)
	}
}

func TestClosedStorageDegradesReadsAndFailsWrites(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	ctx := context.Background()
	s := session.New(sqldb, nil)
	if err := s.SetUserID(ctx, 1); err != nil {
		t.Fatalf("set user id: %v", err)
	}
	_ = sqldb.Close()

	if _, ok := s.UserID(ctx); ok {
		t.Fatalf("expected read to degrade to absent")
	}
	if s.OnboardingComplete(ctx) {
		t.Fatalf("expected flag read to degrade to false")
	}
	if err := s.SetUserID(ctx, 2); err == nil {
		t.Fatalf("expected write on closed storage to fail")
	}
	if err := s.Clear(ctx); err == nil {
		t.Fatalf("expected clear on closed storage to fail")
	}
}

func TestConcurrentSetsLastWriteWins(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	ctx := context.Background()
	s := session.New(sqldb, nil)

	var wg sync.WaitGroup
	for i := int64(1); i <= 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := s.SetUserID(ctx, id); err != nil {
				t.Errorf("set user id %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	id, ok := s.UserID(ctx)
	if !ok || id == "" {
		t.Fatalf("expected one of the written ids, got %q", id)
	}
}
