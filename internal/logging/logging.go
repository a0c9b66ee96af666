// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
)

type Options struct {
	Debug bool
	// File, when set, receives the log instead of stderr. Full-screen
	// drivers own the terminal, so they always log to a file.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a tint logger writing to w. Colour is used only for stderr.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr,
	}))
}

// Setup installs the default logger. The returned closer releases the log
// file, if one was opened.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		w, closer = f, f
	}

	logger := New(w, opts.Debug)
	slog.SetDefault(logger)
	return logger, closer, nil
}
