// Package config loads client settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the client settings. Flags on the CLI override these values.
type Config struct {
	APIBaseURL string `env:"FIR_API_BASE_URL" envDefault:"http://localhost:8080"`
	SessionDB  string `env:"FIR_SESSION_DB"`
	Theme      string `env:"FIR_THEME" envDefault:"light"`
	LogLevel   string `env:"FIR_LOG_LEVEL" envDefault:"info"`
	PageSize   int    `env:"FIR_PAGE_SIZE" envDefault:"10"`
	ExportDir  string `env:"FIR_EXPORT_DIR" envDefault:"."`
	Locale     string `env:"FIR_LOCALE" envDefault:"en-US"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.SessionDB == "" {
		cfg.SessionDB = DefaultSessionDB()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

// DefaultSessionDB returns $HOME/.firform/session.db, or a relative path when
// the home directory is unknown.
func DefaultSessionDB() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".firform", "session.db")
	}
	return filepath.Join(home, ".firform", "session.db")
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
