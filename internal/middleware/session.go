package middleware

import (
	"context"
	"net/http"
	"strings"

	"codeswitch-review/internal/session"
)

type contextKey string

const reviewerKey contextKey = "reviewer"

// SessionMiddleware extracts the reviewer identity from the session
// token. The token carries a self-chosen name, nothing more: this is not
// authentication, it only keeps one session's requests consistent.
type SessionMiddleware struct {
	sessions *session.Service
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions *session.Service) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Require validates the session token and adds the reviewer to the context
func (m *SessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing session token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.sessions.Validate(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired session token")
			return
		}

		ctx := context.WithValue(r.Context(), reviewerKey, claims.Reviewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetReviewer retrieves the normalized reviewer name from the request context
func GetReviewer(r *http.Request) (string, bool) {
	reviewer, ok := r.Context().Value(reviewerKey).(string)
	return reviewer, ok && reviewer != ""
}

// respondWithError writes a JSON error body
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
