// Command fir-cli is a terminal client for the FIR backend: account
// registration and sign-in, FIR intake, reports and exports.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/app"
	"github.com/goliatone/go-firform/pkg/config"
	"github.com/goliatone/go-firform/pkg/renderers/tui"
	"github.com/goliatone/go-firform/pkg/report"
	"github.com/goliatone/go-firform/pkg/session"
	"github.com/goliatone/go-firform/pkg/theme"
)

var (
	// Global flags
	verbose bool
	cfg     config.Config

	logger      *zap.Logger
	sessions    session.Store
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "fir-cli",
	Short: "File and manage First Information Reports",
	Long: `fir-cli talks to the FIR backend from the terminal.

Sign in with 'fir-cli login', then file reports with 'fir-cli fir new' and
browse them with 'fir-cli report list'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return setup(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if sessions != nil {
			if err := sessions.Close(); err != nil {
				logger.Warn("close session store", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	loaded, err := config.Load()
	if err != nil {
		config.Exitf("fir-cli: %v", err)
	}
	cfg = loaded

	rootCmd.PersistentFlags().StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "backend base URL (FIR_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionDB, "session-db", cfg.SessionDB, "session database path (FIR_SESSION_DB)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	registerCommands(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrCancelled) {
			os.Exit(130)
		}
		config.Exitf("fir-cli: %v", err)
	}
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zap.ParseAtomicLevel(strings.TrimSpace(level)); err == nil {
		zc.Level = lvl
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// setup opens the session store and builds the app for one command.
func setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := session.OpenSQLite(cfg.SessionDB)
	if err != nil {
		return err
	}
	sessions = store

	variant := cfg.Theme
	if saved, err := store.Theme(ctx); err == nil && saved != "" {
		variant = saved
	}
	styles, err := theme.Load(variant)
	if err != nil {
		logger.Warn("unknown theme, using light", zap.String("theme", variant))
		styles = theme.Plain()
	}

	bc, err := backend.New(cfg.APIBaseURL, backend.WithLogger(logger))
	if err != nil {
		return err
	}
	runner, err := tui.New(
		tui.WithOutput(os.Stdout),
		tui.WithStyles(styles),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	application, err = app.New(app.Config{
		Client:     bc,
		Sessions:   store,
		Runner:     runner,
		Styles:     styles,
		Out:        os.Stdout,
		Locale:     cfg.Locale,
		Report:     report.Options{PageSize: cfg.PageSize},
		ExportDir:  cfg.ExportDir,
		Logger:     logger,
	})
	return err
}
