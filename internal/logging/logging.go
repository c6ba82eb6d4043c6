// Package logging configures the host's root zerolog logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/plugbus/internal/config"
)

// New builds a logger from the logging config, writing to w.
// Unknown level names fall back to info.
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
