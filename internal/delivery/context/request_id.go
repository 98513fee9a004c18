// Package context carries request-scoped values (request id, logger) across
// delivery, usecase and outbound backend calls.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// RequestIDOrNew returns the request ID stored in ctx or a fresh UUID.
func RequestIDOrNew(ctx context.Context) string {
	if id := RequestID(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLoggerOrDefault extracts the request-scoped logger from ctx, falling back to fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// Scoped tags ctx with requestID (generated when empty) and a logger carrying
// it plus attrs. It returns the new context and the request ID used.
func Scoped(ctx context.Context, base *slog.Logger, requestID string, attrs ...any) (context.Context, string) {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := base.With(slog.String("request_id", requestID)).With(attrs...)
	ctx = WithRequestID(ctx, requestID)

	return WithLogger(ctx, logger), requestID
}
