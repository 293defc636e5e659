// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values (request id, logger and caller
// claims) through [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/truyenmoi/internal/platform/sec"
)

// Unexported struct keys cannot collide with keys from other packages.
type (
	requestIDKey struct{}
	loggerKey    struct{}
	claimsKey    struct{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey{})
	return id
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, loggerKey{}); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches verified token claims.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetAuthUser returns the caller's claims; anonymous requests yield nil.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := value[*sec.AuthClaims](ctx, claimsKey{})
	return claims
}

// UserID returns the caller's user id, or nil when anonymous. Handlers pass
// it to services as an explicit argument.
func UserID(ctx context.Context) *string {
	claims := GetAuthUser(ctx)
	if claims == nil || claims.UserID == "" {
		return nil
	}
	id := claims.UserID
	return &id
}
