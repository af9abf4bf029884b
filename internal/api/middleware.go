package api

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticate verifies the bearer token and stores the account ID in
// the request context. Missing, malformed, or expired tokens yield 401.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondMessage(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			respondMessage(w, http.StatusUnauthorized, "Authorization header must be a bearer token")
			return
		}

		userID, err := h.tokens.Verify(tokenString)
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID extracts the authenticated account ID set by Authenticate
func userID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}
