package logger

import (
	"io"
	"log/slog"
	"os"
)

func New(env string) *slog.Logger { return NewWithWriter(env, os.Stdout) }

// NewWithWriter: JSON at info in prod, text at debug everywhere else.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h).With("service", "learnhub")
}

// Discard is for tests and tools that need a logger but no output.
func Discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
