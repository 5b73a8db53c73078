// Package middleware provides HTTP middleware applied ahead of the resource
// handlers.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fieldstone/contacts-api/internal/api/shared"
	"github.com/fieldstone/contacts-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID to the request context and stashes a
// trace-scoped logger so downstream code logs with the same correlation ID.
// Apply it first in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
