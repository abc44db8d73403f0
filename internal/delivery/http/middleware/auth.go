package middleware

import (
	"context"
	"net/http"
	"strings"

	h "guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

type contextKey string

const sessionSubjectKey contextKey = "sessionSubject"

// SetSessionSubject returns a context with the session subject set. Used by auth middleware.
func SetSessionSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, sessionSubjectKey, subject)
}

// SessionSubjectFromContext returns the authenticated session subject from the context, if present.
func SessionSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(sessionSubjectKey).(string)
	return subject, ok
}

// RequireSession returns a wrapper that validates the Bearer session token and
// sets the session subject in the request context. Every review-surface route
// is gated by it. If the token is missing or invalid, it responds with 401 and
// does not call next.
func RequireSession(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired session")
				return
			}
			r = r.WithContext(SetSessionSubject(r.Context(), subject))
			next(w, r)
		}
	}
}
