package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/validation"
)

// Engine owns the state of one form instance: field values, the set of
// touched fields and the field error mapping. It gates submission on the
// compiled rule table of its schema.
//
// All methods are safe for concurrent use. The mutex is never held while the
// submitter runs, so Close can discard an in-flight submission.
type Engine struct {
	mu sync.Mutex

	schema model.FormSchema
	rules  *validation.RuleSet

	values  map[string]any
	touched map[string]struct{}
	errors  map[string]string
	env     map[string]string

	submitting bool
	closed     bool
	cancel     context.CancelFunc

	submitter  Submitter
	notifier   Notifier
	now        func() time.Time
	logger     *zap.Logger
	translator i18n.Translator
	locale     string
	successKey string
	failureKey string
	invalidKey string
	onSuccess  func(Outcome)
	onFailure  func(error)
}

// New compiles schema and returns an empty form.
func New(schema model.FormSchema, opts ...Option) (*Engine, error) {
	rules, err := validation.Compile(schema)
	if err != nil {
		return nil, fmt.Errorf("form: compile %s: %w", schema.ID, err)
	}

	e := &Engine{
		schema:     schema,
		rules:      rules,
		values:     make(map[string]any),
		touched:    make(map[string]struct{}),
		errors:     make(map[string]string),
		env:        make(map[string]string),
		notifier:   nopNotifier{},
		now:        time.Now,
		logger:     zap.NewNop(),
		successKey: schema.Metadata[metadataSuccessKey],
		failureKey: schema.Metadata[metadataFailureKey],
		invalidKey: defaultInvalidKey,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.translator == nil {
		if catalog, err := i18n.Default(); err == nil {
			e.translator = catalog
		}
	}
	e.logger = e.logger.With(zap.String("form", schema.ID))
	return e, nil
}

// Schema returns the schema the form was built from.
func (e *Engine) Schema() model.FormSchema {
	return e.schema
}

// SetField stores value for name. Any error recorded for name is cleared
// without re-running its rules; validation happens on TouchField or Submit.
func (e *Engine) SetField(name string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	field, err := e.fieldLocked(name)
	if err != nil {
		return err
	}
	if field.Type == model.FieldTypeSet {
		value = append([]string(nil), validation.Set(value)...)
	}
	e.values[name] = value
	delete(e.errors, name)
	return nil
}

// ToggleOption adds option to a checkbox-group field, or removes it when
// already selected.
func (e *Engine) ToggleOption(name, option string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	field, err := e.fieldLocked(name)
	if err != nil {
		return err
	}
	if field.Type != model.FieldTypeSet {
		return fmt.Errorf("%w: %s", ErrNotToggle, name)
	}
	if !hasOption(field.Options, option) {
		return fmt.Errorf("%w: %s does not offer %q", ErrUnknownOption, name, option)
	}
	e.values[name] = validation.Toggle(validation.Set(e.values[name]), option)
	delete(e.errors, name)
	return nil
}

// TouchField marks name as touched and re-validates it, along with any touched
// field whose rules read it. Boolean and checkbox-group fields are only marked.
func (e *Engine) TouchField(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	field, err := e.fieldLocked(name)
	if err != nil {
		return err
	}
	e.touched[name] = struct{}{}
	if !field.Interactive() {
		return nil
	}

	snap := e.snapshotLocked()
	e.recordLocked(name, e.rules.Check(name, snap))
	for _, dependent := range e.rules.Dependents(name) {
		if _, ok := e.touched[dependent]; ok {
			e.recordLocked(dependent, e.rules.Check(dependent, snap))
		}
	}
	return nil
}

// ValidateAll runs every rule regardless of touched state, replaces the error
// mapping and reports whether it is empty.
func (e *Engine) ValidateAll() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateAllLocked().Valid
}

func (e *Engine) validateAllLocked() validation.Result {
	result := e.rules.CheckAll(e.snapshotLocked())
	e.errors = result.Map()
	return result
}

// Submit touches every field and validates the form. An invalid form produces
// one aggregate notification and ErrInvalid without reaching the submitter.
// A valid form is handed to the submitter; the outcome drives the success or
// failure notification and hooks. State is kept on failure so the user can
// retry, and discarded on success.
func (e *Engine) Submit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.submitting {
		e.mu.Unlock()
		return ErrSubmitting
	}
	for _, name := range e.rules.Fields() {
		e.touched[name] = struct{}{}
	}
	result := e.validateAllLocked()
	if !result.Valid {
		e.mu.Unlock()
		e.logger.Debug("submit blocked by validation", zap.Int("issues", len(result.Issues)))
		e.notify(LevelError, e.translate(e.invalidKey))
		return fmt.Errorf("%w: %d field(s) failed validation", ErrInvalid, len(result.Issues))
	}
	if e.submitter == nil {
		e.mu.Unlock()
		return ErrNoSubmitter
	}

	callCtx, cancel := context.WithCancel(ctx)
	e.submitting = true
	e.cancel = cancel
	values := cloneValues(e.values)
	submitter := e.submitter
	e.mu.Unlock()

	e.logger.Debug("submitting")
	outcome, err := submitter.Submit(callCtx, values)
	cancel()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.logger.Debug("discarding submission result of closed form", zap.Error(err))
		return ErrClosed
	}
	e.submitting = false
	e.cancel = nil
	if err == nil {
		e.discardLocked()
	}
	e.mu.Unlock()

	if err != nil {
		message := userMessage(err)
		if message == "" {
			message = e.translate(e.failureKey)
		}
		e.logger.Info("submission rejected", zap.Error(err))
		e.notify(LevelError, message)
		if e.onFailure != nil {
			e.onFailure(err)
		}
		return fmt.Errorf("form: submit %s: %w", e.schema.ID, err)
	}

	e.notify(LevelSuccess, e.translate(e.successKey))
	if e.onSuccess != nil {
		e.onSuccess(outcome)
	}
	return nil
}

// Close tears the form down. A submission still in flight is cancelled and
// its result discarded.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.discardLocked()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.submitting = false
}

func (e *Engine) discardLocked() {
	e.closed = true
	e.values = make(map[string]any)
	e.touched = make(map[string]struct{})
	e.errors = make(map[string]string)
}

// Prefill loads stored values, e.g. a fetched record in edit mode. Values are
// assumed valid: no rules run and existing errors for those fields are dropped.
// Unknown keys are ignored.
func (e *Engine) Prefill(values map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for name, value := range values {
		field, ok := e.rules.Field(name)
		if !ok {
			e.logger.Debug("prefill ignored unknown field", zap.String("field", name))
			continue
		}
		if field.Type == model.FieldTypeSet {
			value = append([]string(nil), validation.Set(value)...)
		}
		e.values[name] = value
		delete(e.errors, name)
	}
}

// Reset clears values, touched fields and errors.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.values = make(map[string]any)
	e.touched = make(map[string]struct{})
	e.errors = make(map[string]string)
}

// SetEnv records an environment fact rules may read, such as the expected
// captcha text. An empty value removes the key.
func (e *Engine) SetEnv(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if value == "" {
		delete(e.env, key)
		return
	}
	e.env[key] = value
}

// Value returns the stored value of name.
func (e *Engine) Value(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.values[name]
}

// Values returns a copy of the form state.
func (e *Engine) Values() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneValues(e.values)
}

// Errors returns a copy of the error mapping.
func (e *Engine) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// VisibleError returns the error of name only once the field was touched.
func (e *Engine) VisibleError(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.touched[name]; !ok {
		return ""
	}
	return e.errors[name]
}

// Valid reports whether name is touched and has no error.
func (e *Engine) Valid(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, touched := e.touched[name]
	_, failed := e.errors[name]
	return touched && !failed
}

// Touched reports whether name has been touched.
func (e *Engine) Touched(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.touched[name]
	return ok
}

// Submitting reports whether a submission is in flight.
func (e *Engine) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// Closed reports whether the form was closed or completed.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Snapshot returns the input the rules currently see.
func (e *Engine) Snapshot() validation.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() validation.Snapshot {
	env := make(map[string]string, len(e.env))
	for k, v := range e.env {
		env[k] = v
	}
	return validation.Snapshot{
		Values: cloneValues(e.values),
		Env:    env,
		Now:    e.now(),
	}
}

func (e *Engine) fieldLocked(name string) (model.Field, error) {
	if e.closed {
		return model.Field{}, ErrClosed
	}
	field, ok := e.rules.Field(name)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return field, nil
}

func (e *Engine) recordLocked(name, message string) {
	if message == "" {
		delete(e.errors, name)
		return
	}
	e.errors[name] = message
}

func (e *Engine) translate(key string) string {
	return i18n.Resolve(e.translator, e.locale, key, nil)
}

func (e *Engine) notify(level Level, message string) {
	if message == "" {
		return
	}
	e.notifier.Notify(level, message)
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if set, ok := v.([]string); ok {
			v = append([]string(nil), set...)
		}
		out[k] = v
	}
	return out
}

func hasOption(options []string, option string) bool {
	for _, candidate := range options {
		if candidate == option {
			return true
		}
	}
	return false
}
