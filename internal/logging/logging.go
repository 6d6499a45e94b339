// Package logging provides a shared, structured logger for the logicalroot
// application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// LOGICALROOT_LOG_LEVEL environment variable (debug, info, warn, error) or
// later through SetLevel (the --log-level flag). If unset, the default level
// is INFO.
//
// Usage:
//
//	log := logging.New("session")      // creates a logger tagged with component="session"
//	log.Info("document created", "nodes", 1)
//	log.Error("export failed", "error", err)
//
// The terminal UI owns stdout and the alternate screen, so log output goes
// to the file named by LOGICALROOT_LOG_FILE when it is set and to stderr
// otherwise.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger

	// level is shared by the handler so SetLevel can adjust verbosity after
	// component loggers have been handed out.
	level = new(slog.LevelVar)
)

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every log entry
// produced by the returned logger, making it easy to filter logs by subsystem
// (e.g. "app", "session", "assistant").
//
// If component is empty, the base logger is returned without any additional
// attributes.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		level.Set(ParseLevel(os.Getenv("LOGICALROOT_LOG_LEVEL")))
		baseLogger = slog.New(slog.NewTextHandler(output(os.Getenv("LOGICALROOT_LOG_FILE")), &slog.HandlerOptions{
			Level: level,
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// SetLevel changes the level of every logger returned by New.
func SetLevel(value string) {
	level.Set(ParseLevel(value))
}

// ParseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func output(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}
