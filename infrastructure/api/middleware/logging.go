// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/wooldanji/console/internal/log"
)

// Logging returns a middleware that logs HTTP requests. Server errors log at
// error level and client errors at warn.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			ctx := log.WithRequestID(r.Context(), requestID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				level := slog.LevelInfo
				switch {
				case ww.Status() >= http.StatusInternalServerError:
					level = slog.LevelError
				case ww.Status() >= http.StatusBadRequest:
					level = slog.LevelWarn
				}
				logger.Log(ctx, level, "request completed",
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"remote_addr", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
