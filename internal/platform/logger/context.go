package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type to avoid collisions with other packages'
// context values.
type contextKey struct{}

// WithLogger returns a new context carrying the given logger. Transports use
// this to thread request-scoped loggers (e.g. with correlation IDs) down to
// the store layer.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger carried by the context, or the process
// default logger when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger carried by the context, falling
// back to the provided component logger rather than the process default.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
