// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries request-scoped values through [context.Context].

The middleware chain stores the correlation ID and a logger pre-filled with
request attributes; handlers and [respond] read them back. Keys are unexported
struct types, so no other package can read or overwrite them.
*/
package ctxutil

import (
	"context"
	"log/slog"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
)

// WithRequestID returns a copy of ctx carrying the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the correlation ID of ctx, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the request logger of ctx, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
