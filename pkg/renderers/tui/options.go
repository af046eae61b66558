package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/theme"
)

const defaultAttempts = 3

// Banner returns text shown before a field is prompted, or "".
type Banner func(field model.Field) string

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.out = out
	}
}

// WithStyles applies terminal styles to messages.
func WithStyles(styles theme.Styles) Option {
	return func(r *Runner) {
		r.styles = styles
	}
}

// WithAttempts caps how often one field is re-prompted while invalid before
// the runner moves on. Submit still blocks on the remaining error.
func WithAttempts(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithBanner prints extra text before fields, e.g. the captcha challenge.
func WithBanner(fn Banner) Option {
	return func(r *Runner) {
		r.banner = fn
	}
}

// WithFileOpener overrides how file paths become FileRefs.
func WithFileOpener(fn func(path string) (model.FileRef, error)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.openFile = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfirmSubmit asks before every submission.
func WithConfirmSubmit(confirm bool) Option {
	return func(r *Runner) {
		r.confirmSubmit = confirm
	}
}
