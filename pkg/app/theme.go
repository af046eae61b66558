package app

import (
	"context"

	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/theme"
)

// SetTheme persists the terminal theme variant.
func (a *App) SetTheme(ctx context.Context, variant string) (string, error) {
	v, err := theme.Parse(variant)
	if err != nil {
		return "", err
	}
	if err := a.sessions.SetTheme(ctx, v); err != nil {
		return "", err
	}
	a.notify(form.LevelInfo, "theme.changed", v)
	return v, nil
}

// Theme returns the persisted variant, light when unset.
func (a *App) Theme(ctx context.Context) (string, error) {
	v, err := a.sessions.Theme(ctx)
	if err != nil {
		return "", err
	}
	return theme.Normalize(v), nil
}
