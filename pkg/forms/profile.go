package forms

import (
	"context"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/schema"
)

// LoadProfile fetches the profile, notifying the user on failure.
func LoadProfile(ctx context.Context, deps Deps) (backend.User, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return backend.User{}, err
	}
	user, err := deps.authed().Profile(ctx)
	if err != nil {
		deps.notify(form.LevelError, "profile.loadFailed")
		return backend.User{}, deps.guard(ctx, err)
	}
	return user, nil
}

// NewProfile builds the profile editor pre-filled from user. Only fields the
// user filled in are sent. onDone receives the updated profile.
func NewProfile(deps Deps, user backend.User, onDone func(backend.User)) (*form.Engine, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	s, err := deps.schema(schema.Profile)
	if err != nil {
		return nil, err
	}
	client := deps.authed()

	var updated backend.User
	submit := form.SubmitterFunc(func(ctx context.Context, values map[string]any) (form.Outcome, error) {
		var err error
		updated, err = client.UpdateProfile(ctx, upload(s, values, true))
		if err != nil {
			return form.Outcome{}, deps.guard(ctx, describe(s, err))
		}
		return form.Outcome{}, nil
	})

	engine, err := form.New(s, deps.options(
		form.WithSubmitter(submit),
		form.OnSuccess(func(form.Outcome) {
			if onDone != nil {
				onDone(updated)
			}
		}),
	)...)
	if err != nil {
		return nil, err
	}
	engine.Prefill(user.Values())
	return engine, nil
}
