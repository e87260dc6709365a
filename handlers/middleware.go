package handlers

import (
	"context"
	"net/http"

	"taskboard/utils"
)

// Gate resolves a bearer credential to a stable user identity. Requests
// that fail here never reach the task handlers.
type Gate interface {
	Resolve(ctx context.Context, token string) (string, error)
}

type contextKey string

const userIDKey contextKey = "userID"

// RequireUser rejects requests without a resolvable bearer token and
// stashes the resolved user id in the request context.
func RequireUser(gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := utils.BearerToken(r)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "missing credentials")
				return
			}

			userID, err := gate.Resolve(r.Context(), token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the identity the gate attached to this request.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
