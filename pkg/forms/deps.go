// Package forms wires the schema-driven form engine to the backend for each
// screen: registration, login, FIR intake and profile editing.
package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/render"
	"github.com/goliatone/go-firform/pkg/schema"
	"github.com/goliatone/go-firform/pkg/session"
	"github.com/goliatone/go-firform/pkg/validation"
)

// Deps are the collaborators every form needs.
type Deps struct {
	Client     *backend.Client
	Sessions   session.Store
	Session    session.Session
	Schemas    *schema.Store
	Notifier   form.Notifier
	Translator i18n.Translator
	Locale     string
	Logger     *zap.Logger
	Now        func() time.Time
}

func (d Deps) withDefaults() (Deps, error) {
	if d.Client == nil {
		return d, errors.New("forms: backend client is required")
	}
	if d.Sessions == nil {
		d.Sessions = session.NewMemory()
	}
	if d.Schemas == nil {
		store, err := schema.Default()
		if err != nil {
			return d, err
		}
		d.Schemas = store
	}
	if d.Notifier == nil {
		d.Notifier = form.NotifierFunc(func(form.Level, string) {})
	}
	if d.Translator == nil {
		catalog, err := i18n.Default()
		if err != nil {
			return d, err
		}
		d.Translator = catalog
	}
	if d.Locale == "" {
		d.Locale = i18n.BaseLocale
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d, nil
}

func (d Deps) schema(id string) (model.FormSchema, error) {
	s, ok := d.Schemas.Schema(id)
	if !ok {
		return model.FormSchema{}, fmt.Errorf("forms: schema %q not found", id)
	}
	return s, nil
}

func (d Deps) options(extra ...form.Option) []form.Option {
	opts := []form.Option{
		form.WithNotifier(d.Notifier),
		form.WithTranslator(d.Translator, d.Locale),
		form.WithLogger(d.Logger),
		form.WithClock(d.Now),
	}
	return append(opts, extra...)
}

func (d Deps) authed() *backend.Client {
	return d.Client.WithToken(d.Session.Token)
}

func (d Deps) notify(level form.Level, key string, args ...any) {
	d.Notifier.Notify(level, i18n.Resolve(d.Translator, d.Locale, key, i18n.MissingKey, args...))
}

// guard clears the stored session when err means the token was rejected.
func (d Deps) guard(ctx context.Context, err error) error {
	if err != nil && errors.Is(err, backend.ErrUnauthorized) {
		if clearErr := d.Sessions.Clear(ctx); clearErr != nil {
			d.Logger.Warn("clear session", zap.Error(clearErr))
		}
	}
	return err
}

// fieldError carries a backend field error resolved against the form schema.
type fieldError struct {
	err error
	msg string
}

func (e *fieldError) Error() string       { return e.err.Error() }
func (e *fieldError) UserMessage() string { return e.msg }
func (e *fieldError) Unwrap() error       { return e.err }

// describe gives a rejected submission without a top-level message the
// first field-level message the backend sent, in schema order.
func describe(s model.FormSchema, err error) error {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "" || len(apiErr.Fields) == 0 {
		return err
	}
	if msg := render.MapErrorPayload(s, apiErr.Fields).Message(s); msg != "" {
		return &fieldError{err: err, msg: msg}
	}
	return err
}

// upload builds the multipart body for values. Password fields are sent as
// typed; everything else is trimmed.
func upload(s model.FormSchema, values map[string]any, skipEmpty bool, exclude ...string) backend.Upload {
	up := backend.UploadFromValues(values, skipEmpty, exclude...)
	for _, field := range s.Fields {
		if _, ok := up.Fields[field.Name]; ok && field.Secret() {
			up.Fields[field.Name] = validation.Raw(values[field.Name])
		}
	}
	return up
}
