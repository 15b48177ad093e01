package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type ctxKey struct{}

// NewLogger returns a JSON slog logger tagged with the service name.
func NewLogger(service string, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	})
	return slog.New(handler).With(slog.String("service", service))
}

// ParseLevel maps LOG_LEVEL style strings to slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// WithRequestID attaches a request identifier to the logger context.
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	if requestID == "" {
		return logger
	}
	return logger.With(slog.String("requestId", requestID))
}

// IntoContext stores a logger for downstream handlers.
func IntoContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or fallback when none was stored.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
