// Package logging builds the zerolog logger shared by the store, backends and commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/config"
)

// New returns a logger writing to out in the configured format. Every event
// carries a session id so the lines of one run can be told apart in a shared log.
func New(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = out
	if cfg.Format != "json" {
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = out
			cw.TimeFormat = time.Kitchen
		})
	}

	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("session", uuid.New().String()).
		Logger()
}

// Open is New with the output taken from cfg.File, falling back to stderr. The
// returned closer must be called on shutdown.
func Open(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return New(cfg, os.Stderr), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), err
	}
	return New(cfg, f), f, nil
}

// ParseLevel maps a config level name to a zerolog level. Unknown names map to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
