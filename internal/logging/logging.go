// Package logging builds the application loggers.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger to stderr at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewNop returns a logger that discards everything. Useful in tests and
// when a TUI owns the terminal.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
