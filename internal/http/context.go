package http

import (
	"context"
	"log/slog"

	"github.com/example/campus-registry/internal/logging"
)

type personIDKey struct{}

// ContextWithPersonID stores a path-derived person id on the context.
func ContextWithPersonID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, personIDKey{}, id)
}

// PersonIDFromContext extracts a person id stored by the router.
func PersonIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(personIDKey{}).(int64)
	return id, ok
}

// ContextWithLogger attaches a request-scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a request-scoped logger when one is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
