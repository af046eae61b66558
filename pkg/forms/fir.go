package forms

import (
	"context"

	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/schema"
)

const (
	metadataUpdateKey       = "updateKey"
	metadataFetchFailureKey = "fetchFailureKey"
)

// NewFIR builds the FIR intake form. With a non-empty id the stored record is
// fetched and pre-filled, and submitting updates it; otherwise submitting
// creates a new record. onDone receives the stored record.
func NewFIR(ctx context.Context, deps Deps, id fir.ID, onDone func(fir.Record)) (*form.Engine, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	s, err := deps.schema(schema.FIR)
	if err != nil {
		return nil, err
	}
	client := deps.authed()

	var prefill fir.Record
	if id != "" {
		prefill, err = client.GetFIR(ctx, id)
		if err != nil {
			deps.notify(form.LevelError, s.Metadata[metadataFetchFailureKey])
			return nil, deps.guard(ctx, err)
		}
	}

	var saved fir.Record
	submit := form.SubmitterFunc(func(ctx context.Context, values map[string]any) (form.Outcome, error) {
		record := fir.FromValues(values)
		var err error
		if id == "" {
			saved, err = client.CreateFIR(ctx, record)
		} else {
			saved, err = client.UpdateFIR(ctx, id, record)
		}
		if err != nil {
			return form.Outcome{}, deps.guard(ctx, describe(s, err))
		}
		return form.Outcome{Payload: map[string]any{"id": string(saved.ID)}}, nil
	})

	opts := deps.options(
		form.WithSubmitter(submit),
		form.OnSuccess(func(form.Outcome) {
			if onDone != nil {
				onDone(saved)
			}
		}),
	)
	if id != "" {
		opts = append(opts, form.WithSuccessKey(s.Metadata[metadataUpdateKey]))
	}

	engine, err := form.New(s, opts...)
	if err != nil {
		return nil, err
	}
	if id != "" {
		engine.Prefill(prefill.Values())
	}
	return engine, nil
}
