package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	identityIDKey contextKey = "identity_id"
	tenantIDKey   contextKey = "tenant_id"
)

// WithRequestID attaches a request id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithIdentityID attaches the caller's external identity id to the context.
func WithIdentityID(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, identityIDKey, identityID)
}

// WithTenantID attaches the resolved tenant id to the context.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetIdentityID(ctx context.Context) string {
	if identityID, ok := ctx.Value(identityIDKey).(string); ok {
		return identityID
	}
	return ""
}

// FromContext builds a logger pre-populated with request_id, identity_id and
// tenant_id when present in the context.
func FromContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()

	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if identityID := GetIdentityID(ctx); identityID != "" {
		fields = append(fields, "identity_id", identityID)
	}

	if tenantID, ok := ctx.Value(tenantIDKey).(string); ok && tenantID != "" {
		fields = append(fields, "tenant_id", tenantID)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs an error with the error object attached.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	fields := append([]any{"error", err.Error()}, args...)
	FromContext(ctx).Error(msg, fields...)
}
