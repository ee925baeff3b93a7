// Package logging builds the loggers used by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// FileName returns the per-run log file name for a start time
func FileName(start time.Time) string {
	return "wordgrid-" + start.Format("02-01-2006_15-04-05") + ".log"
}

// Options configures the server logger
type Options struct {
	Level slog.Level
	// Dir, when set, also receives a log file named by FileName
	Dir   string
	Start time.Time
}

// New creates the JSON server logger writing to w, and to a log file when
// opts.Dir is set. The returned close func releases the file.
func New(w io.Writer, opts Options) (*slog.Logger, func() error, error) {
	closeFn := func() error { return nil }

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		start := opts.Start
		if start.IsZero() {
			start = time.Now()
		}
		file, err := os.OpenFile(filepath.Join(opts.Dir, FileName(start)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(w, file)
		closeFn = file.Close
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
	}))
	return logger, closeFn, nil
}

// NewCLI creates a human-readable logger for the command line
func NewCLI(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "wordgrid",
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
		Formatter:       log.TextFormatter,
	})
	return slog.New(handler)
}
