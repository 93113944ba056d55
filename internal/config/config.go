// Package config defines the scanner configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns a Config holding the defaults.
// - Load layers defaults, an optional YAML file, a .env file and NGPLUS_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"

	"github.com/okian/ngplus/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile is the append-only trace file mirrored with the console.
	// Empty disables it.
	LogFile string `koanf:"log_file"`

	// SaveDir overrides the resolved save directory when set.
	SaveDir string `koanf:"save_dir"`

	// StopOnFirstMatch ends the scan at the first eligible save.
	StopOnFirstMatch bool `koanf:"stop_on_first_match"`

	// PauseOnExit waits for a key press before exiting.
	PauseOnExit bool `koanf:"pause_on_exit"`

	// MetricsFile receives a Prometheus textfile after the scan. Empty disables it.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFile:          "./NGPlusLog.txt",
		SaveDir:          "",
		StopOnFirstMatch: false,
		PauseOnExit:      false,
		MetricsFile:      "",
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MetricsFile != "" && c.MetricsFile == c.LogFile {
		return fmt.Errorf("%w: metrics_file must differ from log_file", ErrInvalidConfig)
	}
	return nil
}
