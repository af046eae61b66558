package form

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/pkg/i18n"
)

const (
	metadataSuccessKey = "successKey"
	metadataFailureKey = "failureKey"
	defaultInvalidKey  = "form.invalid"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSubmitter sets the submission collaborator.
func WithSubmitter(submitter Submitter) Option {
	return func(e *Engine) {
		e.submitter = submitter
	}
}

// WithNotifier routes notifications to notifier.
func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) {
		if notifier != nil {
			e.notifier = notifier
		}
	}
}

// WithClock overrides the clock rules see through the snapshot.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTranslator resolves notification keys for locale.
func WithTranslator(t i18n.Translator, locale string) Option {
	return func(e *Engine) {
		e.translator = t
		e.locale = locale
	}
}

// WithSuccessKey overrides the schema's success message key.
func WithSuccessKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.successKey = key
		}
	}
}

// WithFailureKey overrides the schema's fallback failure message key.
func WithFailureKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.failureKey = key
		}
	}
}

// OnSuccess registers a hook run after a successful submission, typically
// navigation.
func OnSuccess(fn func(Outcome)) Option {
	return func(e *Engine) {
		e.onSuccess = fn
	}
}

// OnFailure registers a hook run after a rejected submission.
func OnFailure(fn func(error)) Option {
	return func(e *Engine) {
		e.onFailure = fn
	}
}

// WithEnv seeds environment facts rules may read.
func WithEnv(env map[string]string) Option {
	return func(e *Engine) {
		for k, v := range env {
			e.env[k] = v
		}
	}
}
