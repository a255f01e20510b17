// Package middleware provides HTTP middleware for AgentHub.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/agenthub/agenthub/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID is HTTP middleware that propagates the X-Request-ID header,
// minting a UUID when the client did not send one. The ID travels in the
// request context and is echoed on the response so clients can correlate
// log lines with their calls.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
