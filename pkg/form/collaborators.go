package form

import "context"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier surfaces one user-visible message.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(level Level, message string)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(level Level, message string) {
	if fn != nil {
		fn(level, message)
	}
}

// Outcome is what a successful submission returns, e.g. an auth token or the
// id of a created record.
type Outcome struct {
	Payload map[string]any
}

// String returns Payload[key] when it is a string.
func (o Outcome) String(key string) string {
	if o.Payload == nil {
		return ""
	}
	s, _ := o.Payload[key].(string)
	return s
}

// Submitter performs the network request for a validated form.
type Submitter interface {
	Submit(ctx context.Context, values map[string]any) (Outcome, error)
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, values map[string]any) (Outcome, error)

// Submit implements Submitter.
func (fn SubmitterFunc) Submit(ctx context.Context, values map[string]any) (Outcome, error) {
	return fn(ctx, values)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
