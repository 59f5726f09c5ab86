package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Execution modes accepted by the CLI and the app.
const (
	ModeSeries = "series"
	ModePipe   = "pipe"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TasksPath string // directory of .hcl task manifests
	Mode      string // "series" or "pipe"
	TaskNames []string
	Input     string // raw input; JSON is decoded, anything else passes as a string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	DefaultTimeout  time.Duration // per-invocation timeout, zero disables it
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TasksPath == "" {
		return nil, errors.New("TasksPath is a required configuration field and cannot be empty")
	}
	switch cfg.Mode {
	case ModeSeries, ModePipe:
	case "":
		cfg.Mode = ModeSeries
	default:
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, ModeSeries, ModePipe)
	}
	return &cfg, nil
}

// newLogger builds the app's isolated logger from the config's level and
// format. The CLI has already validated both strings; anything unparseable
// here degrades to info-level JSON rather than failing startup.
func (c *Config) newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
