package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/tabeth/reelreviews/models"
)

type contextKey string

const (
	contextKeySubject   contextKey = "subject"
	contextKeyRequestID contextKey = "requestID"
)

// subjectFromContext returns the verified token subject placed in the request
// context by AuthMiddleware.
func subjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(contextKeySubject).(string)
	return subject, ok && subject != ""
}

// AuthMiddleware handles token authentication for mutating routes. A request
// without an Authorization header is unauthorized; a request whose token is
// malformed, expired or otherwise unverifiable is forbidden. Both are
// rejected here, before any handler touches the store.
func (app *App) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.sendErrorResponse(w, r, models.ErrTypeMissingAuthToken, "Request is missing Authentication Token", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.sendErrorResponse(w, r, models.ErrTypeInvalidAuthToken, "Invalid Authentication Token format", http.StatusForbidden)
			return
		}

		claims, err := app.Verifier.Verify(r.Context(), parts[1])
		if err != nil {
			app.sendErrorResponse(w, r, models.ErrTypeInvalidAuthToken, "Invalid Authentication Token", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySubject, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
