// Package logging builds the process-wide slog logger from configuration.
package logging

import (
	"io"
	"log/slog"

	"github.com/p-n-ai/cs-notes/internal/platform/config"
)

// New returns a JSON or text logger writing to w at the configured level.
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
