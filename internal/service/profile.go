package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

// UserView is a user record plus where it came from. Stale is set when the
// fresh fetch failed and the cached snapshot was returned instead.
type UserView struct {
	User     *model.User `json:"user"`
	Stale    bool        `json:"stale"`
	FetchErr error       `json:"-"`
}

// RefreshUser fetches the user and overwrites the cached snapshot. When the
// fetch fails and a snapshot exists, the snapshot is returned marked stale.
func (c *Coach) RefreshUser(ctx context.Context) (*UserView, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, fetchErr := c.Remote.GetUser(ctx, id)
	if fetchErr == nil {
		if err := c.Session.SetUserData(ctx, *u); err != nil {
			return nil, err
		}
		return &UserView{User: u}, nil
	}
	if cached, ok := c.Session.UserData(ctx); ok {
		return &UserView{User: cached, Stale: true, FetchErr: fetchErr}, nil
	}
	return nil, fmt.Errorf("fetch user %s: %w", id, fetchErr)
}

// ProfileStatus is the profile screen's update banner.
func (c *Coach) ProfileStatus(ctx context.Context) (ProfileEligibility, error) {
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return ProfileEligibility{}, err
	}
	status, err := c.Remote.GetSubscriptionStatus(ctx, id)
	if err != nil {
		return ProfileEligibility{}, fmt.Errorf("load subscription status: %w", err)
	}
	return DescribeProfileEligibility(*status), nil
}

// NormalizeProfileUpdate trims and lowercases the text fields into fresh
// values, leaving the caller's pointers untouched.
func NormalizeProfileUpdate(in model.ProfileUpdate) model.ProfileUpdate {
	if in.Sex != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Sex))
		in.Sex = &v
	}
	if in.ActivityLevel != nil {
		v := strings.ToLower(strings.TrimSpace(*in.ActivityLevel))
		in.ActivityLevel = &v
	}
	return in
}

func ValidateProfileUpdate(in model.ProfileUpdate) error {
	if in.IsEmpty() {
		return fmt.Errorf("set at least one profile field")
	}
	if in.Age != nil && *in.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if in.Weight != nil && (!isFinite(*in.Weight) || *in.Weight <= 0) {
		return fmt.Errorf("weight must be > 0")
	}
	if in.Sex != nil && !slices.Contains(Sexes, strings.ToLower(strings.TrimSpace(*in.Sex))) {
		return fmt.Errorf("invalid sex %q (expected one of %s)", *in.Sex, strings.Join(Sexes, "|"))
	}
	if in.ActivityLevel != nil && !slices.Contains(ActivityLevels, strings.ToLower(strings.TrimSpace(*in.ActivityLevel))) {
		return fmt.Errorf("invalid activity level %q (expected one of %s)", *in.ActivityLevel, strings.Join(ActivityLevels, "|"))
	}
	return nil
}

// UpdateProfile submits the partial profile. The update window is not checked
// locally; a closed window comes back from the server as an error. On
// success the cached snapshot is replaced.
func (c *Coach) UpdateProfile(ctx context.Context, in model.ProfileUpdate) (*model.User, error) {
	in = NormalizeProfileUpdate(in)
	if err := ValidateProfileUpdate(in); err != nil {
		return nil, err
	}
	id, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := c.Remote.UpdateUserProfile(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := c.Session.SetUserData(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}
