package app

import (
	"context"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/forms"
)

// ShowProfile fetches and renders the signed-in user's profile.
func (a *App) ShowProfile(ctx context.Context) (backend.User, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return backend.User{}, err
	}
	user, err := forms.LoadProfile(ctx, deps)
	if err != nil {
		return backend.User{}, err
	}
	out, err := a.views.Profile(user)
	if err != nil {
		return user, err
	}
	return user, a.print(out)
}

// EditProfile runs the profile form pre-filled with the current values and
// returns the updated profile.
func (a *App) EditProfile(ctx context.Context) (backend.User, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return backend.User{}, err
	}
	user, err := forms.LoadProfile(ctx, deps)
	if err != nil {
		return backend.User{}, err
	}
	updated := user
	f, err := forms.NewProfile(deps, user, func(u backend.User) { updated = u })
	if err != nil {
		return backend.User{}, err
	}
	defer f.Close()
	if err := a.runner.Run(ctx, f); err != nil {
		return backend.User{}, err
	}
	return updated, nil
}
