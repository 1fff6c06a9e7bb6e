package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wooldanji/console/internal/log"
)

// CorrelationIDHeader carries the correlation ID on requests and responses.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID adds a correlation ID to the request context and the
// response headers. The client's X-Correlation-ID wins, then chi's request
// ID, then a fresh UUID.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = middleware.GetReqID(r.Context())
		}
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(CorrelationIDHeader, correlationID)

		ctx := log.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCorrelationID retrieves the correlation ID from the context.
func GetCorrelationID(ctx context.Context) string {
	return log.CorrelationID(ctx)
}
