package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrInvalidValue is returned when a field has a value outside its
	// allowed set.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrWatcherClosed is returned when operations are attempted on a
	// closed watcher.
	ErrWatcherClosed = errors.New("config watcher is closed")
)
