// Package middleware provides the HTTP middleware chain of the API server.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// maxInboundIDLength bounds request IDs accepted from clients.
const maxInboundIDLength = 128

// RequestID tags each request with an ID, reusing a sane inbound
// X-Request-ID so the chat UI can correlate its own logs. The ID is set on
// the response header and in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
