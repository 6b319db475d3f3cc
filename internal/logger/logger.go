// Package logger configures the zerolog logger shared by the application.
// The TUI owns the terminal, so output normally goes to a log file.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing JSON lines to out at the given level.
// If out is nil, os.Stderr is used. Unknown levels fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "cocktailgrip").
		Logger()
}

// NewConsole creates a human readable logger, used by tests and -debug runs
func NewConsole(out io.Writer, level string) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	return New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}, level)
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a config level name to a zerolog level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
