package app

import (
	"context"

	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/forms"
	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/renderers/tui"
	"github.com/goliatone/go-firform/pkg/session"
)

// Register runs the registration form.
func (a *App) Register(ctx context.Context) error {
	f, err := forms.NewRegistration(a.deps, nil)
	if err != nil {
		return err
	}
	defer f.Close()
	return a.runner.Run(ctx, f)
}

// Login runs the sign-in form, showing the captcha challenge before its
// input, and returns the stored session.
func (a *App) Login(ctx context.Context) (session.Session, error) {
	l, err := forms.NewLogin(a.deps, nil)
	if err != nil {
		return session.Session{}, err
	}
	defer l.Close()
	l.Open(ctx)

	runner := a.runner.With(tui.WithBanner(func(field model.Field) string {
		if field.Name != "captcha" {
			return ""
		}
		if text := l.Captcha(); text != "" {
			return "Captcha: " + text
		}
		return ""
	}))
	if err := runner.Run(ctx, l); err != nil {
		return session.Session{}, err
	}
	return l.Session(), nil
}

// Logout forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.notify(form.LevelSuccess, "session.loggedOut")
	return nil
}
