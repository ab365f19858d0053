package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

// ErrNotOnboarded is returned by flows that need a stored user id when the
// device has none.
var ErrNotOnboarded = errors.New("no user on this device; run onboarding first")

// Remote is the slice of the API client the flows use.
type Remote interface {
	CreateUser(ctx context.Context, in model.OnboardingInput) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID string, in model.ProfileUpdate) (*model.User, error)
	GetSubscriptionStatus(ctx context.Context, userID string) (*model.SubscriptionStatus, error)
	CreateSubscription(ctx context.Context, in model.SubscriptionRequest) (json.RawMessage, error)
	GenerateWorkoutPlan(ctx context.Context, userID string) (*model.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, userID string) (*model.WorkoutPlan, error)
	GenerateNutritionPlan(ctx context.Context, userID string) (*model.NutritionPlan, error)
	GetNutritionPlan(ctx context.Context, userID string) (*model.NutritionPlan, error)
	GetProgressEntries(ctx context.Context, userID string) ([]model.ProgressEntry, error)
	CreateProgressEntry(ctx context.Context, userID string, in model.ProgressInput) (*model.ProgressEntry, error)
}

// Session is the slice of the session store the flows use.
type Session interface {
	UserID(ctx context.Context) (string, bool)
	SetUserID(ctx context.Context, id int64) error
	UserData(ctx context.Context) (*model.User, bool)
	SetUserData(ctx context.Context, u model.User) error
	OnboardingComplete(ctx context.Context) bool
	SetOnboardingComplete(ctx context.Context, complete bool) error
	Clear(ctx context.Context) error
}

// Coach composes the remote client and the local session the way each app
// screen does. It holds no state of its own.
type Coach struct {
	Remote  Remote
	Session Session
	Now     func() time.Time
}

func NewCoach(remote Remote, sess Session) *Coach {
	return &Coach{Remote: remote, Session: sess, Now: time.Now}
}

func (c *Coach) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// CurrentUserID reads the stored user id.
func (c *Coach) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := c.Session.UserID(ctx)
	if !ok || id == "" {
		return "", ErrNotOnboarded
	}
	return id, nil
}

type Route string

const (
	RouteOnboarding Route = "onboarding"
	RouteMain       Route = "main"
)

// StartupRoute decides where the app lands: onboarding is skipped only when
// the flag is set and a user id is stored.
func (c *Coach) StartupRoute(ctx context.Context) Route {
	if !c.Session.OnboardingComplete(ctx) {
		return RouteOnboarding
	}
	if _, ok := c.Session.UserID(ctx); !ok {
		return RouteOnboarding
	}
	return RouteMain
}

// Logout clears every session fact.
func (c *Coach) Logout(ctx context.Context) error {
	return c.Session.Clear(ctx)
}
