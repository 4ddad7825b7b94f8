// Package logging provides zerolog-based structured logging helpers.
//
// Loggers travel through context.Context so every pipeline stage can log
// with consistent component/operation fields without package-level state.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit ("trace".."panic"). Invalid or
	// empty values fall back to "info".
	Level string

	// Format selects the output encoding: "console" for human-readable
	// output, anything else for JSON.
	Format string

	// Output is the destination writer. Defaults to os.Stderr when nil.
	Output io.Writer
}

// NewLogger builds a zerolog.Logger from cfg.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ComponentLogger returns a child logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext stores the logger in ctx for retrieval with FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was stored. Safe to call with a nil context.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		disabled := zerolog.Nop()
		return &disabled
	}
	return zerolog.Ctx(ctx)
}
