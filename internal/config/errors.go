package config

import "errors"

// Sentinel errors returned by Load and Validate. Either one aborts the run
// before any save is scanned.
var (
	// ErrInvalidConfig marks a value that was read but cannot be used,
	// such as an unknown log level.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a .env, YAML or environment source that could not be read.
	ErrLoadConfig = errors.New("load config failed")
)
