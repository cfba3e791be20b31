package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDMiddleware stamps every request with a UUID. The ID is echoed in
// the response headers and in error envelopes so a client-reported failure
// can be found in the access logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// TimeoutMiddleware wraps an HTTP handler and adds a request-scoped timeout.
// The deadline covers the whole request, including store round trips and any
// translation service call.
func TimeoutMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)

		// The defer call is crucial. It ensures that resources associated with
		// the context are released when the handler returns, preventing leaks.
		defer cancel()

		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}
