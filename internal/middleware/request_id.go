package middleware

import (
	"net/http"

	reqcontext "github.com/prajwalbharadwajbm/referralhub/internal/context"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware adds request IDs to incoming requests
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Middleware returns the HTTP middleware function for request IDs
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Keep the upstream ID if a proxy already assigned one
		ctx := reqcontext.NewRequestContext(r.Context(), r.Header.Get(RequestIDHeader), r.RemoteAddr)

		w.Header().Set(RequestIDHeader, reqcontext.GetRequestID(ctx))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
