// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the application's logging system. It creates a structured
// JSON logger at the configured level, sets it as the process default, and
// returns it for constructor injection.
//
// An unknown level falls back to info with a warning.
func Setup(logLevel string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", logLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	log := slog.New(handler)

	// Set as default so package-level slog functions use the same handler.
	slog.SetDefault(log)

	return log, nil
}
