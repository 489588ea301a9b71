package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
	userIDKey
	roleKey
)

// WithContext attaches a request-scoped logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, tagged with the trace and
// span IDs of the active span. Without one it returns a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return logger
}

// WithRequestID records the request ID on ctx and on its logger, if any
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return enrich(ctx, zap.String("request_id", requestID))
}

// WithUser records the authenticated caller on ctx and on its logger, if any
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, roleKey, role)
	return enrich(ctx, zap.String("user_id", userID), zap.String("role", role))
}

func enrich(ctx context.Context, fields ...zap.Field) context.Context {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return WithContext(ctx, logger.With(fields...))
	}
	return ctx
}

// RequestID returns the request ID stored on ctx
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// UserID returns the caller's user ID stored on ctx
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// Role returns the caller's role stored on ctx
func Role(ctx context.Context) string {
	v, _ := ctx.Value(roleKey).(string)
	return v
}
