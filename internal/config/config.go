package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from ROSARY_* environment variables.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath string `env:"ROSARY_DB"`

	// MaxSessions bounds the number of stored sessions.
	MaxSessions int `env:"ROSARY_MAX_SESSIONS" envDefault:"1000"`

	// Locale forces a catalog locale. Empty means detect from LANG.
	Locale string `env:"ROSARY_LOCALE"`

	// LogFile receives JSON log lines. Empty means the XDG state default.
	LogFile  string `env:"ROSARY_LOG_FILE"`
	LogLevel string `env:"ROSARY_LOG_LEVEL" envDefault:"info"`

	// RefreshInterval is how often elapsed timers redraw.
	RefreshInterval time.Duration `env:"ROSARY_REFRESH_INTERVAL" envDefault:"15s"`

	// NotifyDuration is how long a notification stays on screen.
	NotifyDuration time.Duration `env:"ROSARY_NOTIFY_DURATION" envDefault:"3s"`

	Brand  string `env:"ROSARY_BRAND" envDefault:"Rosary"`
	AppURL string `env:"ROSARY_APP_URL" envDefault:"https://github.com/abhisek/rosary"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks bounds.
func (c Config) Validate() error {
	var errs []error
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("ROSARY_MAX_SESSIONS must be at least 1, got %d", c.MaxSessions))
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("ROSARY_REFRESH_INTERVAL must be positive, got %s", c.RefreshInterval))
	}
	if c.NotifyDuration <= 0 {
		errs = append(errs, fmt.Errorf("ROSARY_NOTIFY_DURATION must be positive, got %s", c.NotifyDuration))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("ROSARY_LOG_LEVEL: unknown level %q", s)
	}
}

// LogPath returns LogFile or $XDG_STATE_HOME/rosary/rosary.log.
func (c Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "rosary", "rosary.log"), nil
}
