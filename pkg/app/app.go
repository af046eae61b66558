// Package app composes the FIR client screens: account, dashboard, FIR
// intake, reports, profile and theme.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/forms"
	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/renderers/tui"
	"github.com/goliatone/go-firform/pkg/report"
	"github.com/goliatone/go-firform/pkg/schema"
	"github.com/goliatone/go-firform/pkg/session"
	"github.com/goliatone/go-firform/pkg/theme"
	"github.com/goliatone/go-firform/pkg/views"
)

// ErrLoginRequired is returned by screens that need a signed-in user.
var ErrLoginRequired = errors.New("app: login required")

// Config carries the collaborators of an App. Client, Sessions and Runner
// are required.
type Config struct {
	Client     *backend.Client
	Sessions   session.Store
	Runner     *tui.Runner
	Views      *views.Views
	Schemas    *schema.Store
	Styles     theme.Styles
	Out        io.Writer
	Translator i18n.Translator
	Locale     string
	Report     report.Options
	ExportDir  string
	Logger     *zap.Logger
	Now        func() time.Time
}

// App runs screens against the backend.
type App struct {
	deps      forms.Deps
	sessions  session.Store
	runner    *tui.Runner
	views     *views.Views
	styles    theme.Styles
	out       io.Writer
	report    report.Options
	exportDir string
	logger    *zap.Logger
	now       func() time.Time
}

// New validates cfg and fills defaults.
func New(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, errors.New("app: backend client is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("app: session store is required")
	}
	if cfg.Runner == nil {
		return nil, errors.New("app: prompt runner is required")
	}
	if cfg.Translator == nil {
		catalog, err := i18n.Default()
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		cfg.Translator = catalog
	}
	if cfg.Locale == "" {
		cfg.Locale = i18n.BaseLocale
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	cfg.Report = report.NewOptions(func(o *report.Options) {
		given := cfg.Report
		if given.PageSize > 0 {
			o.PageSize = given.PageSize
		}
		if given.Location != nil {
			o.Location = given.Location
		}
		if given.XLSXFile != "" || given.PDFFile != "" {
			o.XLSXFile, o.PDFFile = given.XLSXFile, given.PDFFile
		}
	}, report.WithClock(cfg.Now))
	if cfg.Views == nil {
		v, err := views.New(cfg.Translator, cfg.Locale, cfg.Report.Location)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		cfg.Views = v
	}

	return &App{
		deps: forms.Deps{
			Client:     cfg.Client,
			Sessions:   cfg.Sessions,
			Schemas:    cfg.Schemas,
			Notifier:   cfg.Runner.Notifier(),
			Translator: cfg.Translator,
			Locale:     cfg.Locale,
			Logger:     cfg.Logger,
			Now:        cfg.Now,
		},
		sessions:  cfg.Sessions,
		runner:    cfg.Runner,
		views:     cfg.Views,
		styles:    cfg.Styles,
		out:       cfg.Out,
		report:    cfg.Report,
		exportDir: cfg.ExportDir,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}, nil
}

// requireSession loads the stored session and returns deps bound to it.
func (a *App) requireSession(ctx context.Context) (forms.Deps, error) {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return forms.Deps{}, fmt.Errorf("app: load session: %w", err)
	}
	if !sess.LoggedIn(a.now()) {
		a.notify(form.LevelError, "session.loginRequired")
		return forms.Deps{}, ErrLoginRequired
	}
	deps := a.deps
	deps.Session = sess
	return deps, nil
}

// guard clears the session when the backend rejected the token.
func (a *App) guard(ctx context.Context, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		if clearErr := a.sessions.Clear(ctx); clearErr != nil {
			a.logger.Warn("clear session", zap.Error(clearErr))
		}
		a.notify(form.LevelError, "session.loginRequired")
	}
	return err
}

func (a *App) translate(key string, args ...any) string {
	return i18n.Resolve(a.deps.Translator, a.deps.Locale, key, i18n.MissingKey, args...)
}

func (a *App) notify(level form.Level, key string, args ...any) {
	a.deps.Notifier.Notify(level, a.translate(key, args...))
}

func (a *App) print(s string) error {
	_, err := io.WriteString(a.out, s)
	return err
}
