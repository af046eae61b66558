package forms

import (
	"context"

	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/schema"
)

// NewRegistration builds the sign-up form. onDone runs after the account is
// created, typically opening the login form.
func NewRegistration(deps Deps, onDone func()) (*form.Engine, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	s, err := deps.schema(schema.Registration)
	if err != nil {
		return nil, err
	}

	submit := form.SubmitterFunc(func(ctx context.Context, values map[string]any) (form.Outcome, error) {
		up := upload(s, values, false, "confirmPassword")
		if err := deps.Client.Register(ctx, up); err != nil {
			return form.Outcome{}, describe(s, err)
		}
		return form.Outcome{}, nil
	})

	return form.New(s, deps.options(
		form.WithSubmitter(submit),
		form.OnSuccess(func(form.Outcome) {
			if onDone != nil {
				onDone()
			}
		}),
	)...)
}
