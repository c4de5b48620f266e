// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package logging provides structured logging functionality for the bundle enricher service.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"os"

	slogotel "github.com/remychantenay/slog-otel"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/env"
)

type contextKey string

const (
	requestLoggerKey contextKey = "request_logger"
	requestIDKey     contextKey = "request_id"
)

// NewRequestID generates a 16-character request ID
func NewRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes) // crypto/rand.Read only fails on system issues
	return hex.EncodeToString(bytes)
}

// NewLogger creates a logger with container-optimized defaults (JSON, Info level).
// LOG_FORMAT and LOG_LEVEL are read from the environment; a true debug argument
// forces debug level and enables AddSource.
func NewLogger(debug ...bool) *slog.Logger {
	logger := newLogger(os.Stdout,
		env.GetString("LOG_FORMAT", constants.DefaultLogFormat),
		env.GetString("LOG_LEVEL", constants.DefaultLogLevel),
		len(debug) > 0 && debug[0])
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, format, level string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	// trace_id and span_id are copied from the context when a span is active
	return slog.New(slogotel.OtelHandler{Next: handler})
}

// ParseLevel converts a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID creates context with request_id and enhanced logger
func WithRequestID(ctx context.Context, baseLogger *slog.Logger) (context.Context, *slog.Logger) {
	requestID := NewRequestID()

	enhancedLogger := baseLogger.With("request_id", requestID)

	ctx = context.WithValue(ctx, requestIDKey, requestID)
	ctx = context.WithValue(ctx, requestLoggerKey, enhancedLogger)

	return ctx, enhancedLogger
}

// FromContext extracts the enhanced logger from context
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

// GetRequestID extracts request_id from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithComponent adds component field to logger
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithBundle adds the bundle identity fields used across enrichment logs
func WithBundle(logger *slog.Logger, orgID int64, bundleType string) *slog.Logger {
	return logger.With(
		slog.Int64("org_id", orgID),
		slog.String("bundle_type", bundleType))
}

// LogError logs an error with structured context
func LogError(logger *slog.Logger, msg string, err error, fields ...any) {
	attrs := []any{"error", err.Error()}
	attrs = append(attrs, fields...)
	logger.Error(msg, attrs...)
}
