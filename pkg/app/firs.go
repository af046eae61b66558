package app

import (
	"context"

	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/forms"
)

// NewFIR runs the FIR intake form and returns the stored record.
func (a *App) NewFIR(ctx context.Context) (fir.Record, error) {
	return a.runFIR(ctx, "")
}

// EditFIR pre-fills the form from the stored record and updates it.
func (a *App) EditFIR(ctx context.Context, id fir.ID) (fir.Record, error) {
	return a.runFIR(ctx, id)
}

func (a *App) runFIR(ctx context.Context, id fir.ID) (fir.Record, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return fir.Record{}, err
	}
	var saved fir.Record
	f, err := forms.NewFIR(ctx, deps, id, func(r fir.Record) { saved = r })
	if err != nil {
		return fir.Record{}, err
	}
	defer f.Close()
	if err := a.runner.Run(ctx, f); err != nil {
		return fir.Record{}, err
	}
	return saved, nil
}
