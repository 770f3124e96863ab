// Package logger builds the slog.Logger used for diagnostics. User-facing
// output is written by the commands themselves; the logger only carries
// request/step traces and is quiet unless --verbose is set.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a text slog.Logger writing to w. verbose lowers the level to Debug.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs the logger as the slog default. A nil writer means os.Stderr.
func SetupDefault(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := Setup(w, verbose)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops everything. Used as the zero value
// by components constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
