// Package cli implements the scenetree command-line interface.
//
// This package provides commands for printing and exporting the scene graph
// of glTF documents, outlining other hierarchies through the same traversal
// engine, serving a read-only HTTP view and exploring documents in an
// interactive terminal UI. The CLI is built using cobra and logs through
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - scenetree [file]: Explore a document interactively, or print its
//     outline with --dump-tree
//   - stats: Print document statistics
//   - export: Write the outline as text, JSON, DOT, SVG, PDF or PNG
//   - outline: Flatten a JSON forest
//   - fs: Outline a directory
//   - serve: Serve a document over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// SCENETREE_LOG_LEVEL environment variable (debug, info, warn, error) sets
// the level when -v is not given. Loggers are passed through context.Context
// to allow structured progress tracking.
//
// # Configuration
//
// Preferences are read from config.toml in the XDG config directories
// (for example ~/.config/scenetree/config.toml) or from --config.
package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// envLogLevel names the environment variable that sets the default log level.
const envLogLevel = "SCENETREE_LOG_LEVEL"

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// resolveLevel picks the log level: debug when verbose, else the level named
// by SCENETREE_LOG_LEVEL, else info. Unknown names fall back to info.
func resolveLevel(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	if s := strings.TrimSpace(os.Getenv(envLogLevel)); s != "" {
		if level, err := log.ParseLevel(strings.ToLower(s)); err == nil {
			return level
		}
	}
	return log.InfoLevel
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Wrote car.svg (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
