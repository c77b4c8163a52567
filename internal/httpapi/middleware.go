package httpapi

import (
	"context"
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "payme_session"

type contextKey string

const userKey contextKey = "user"

// requireUser resolves the session cookie and injects the user into
// the request context. Anything under /api except /api/auth/register
// and /api/auth/login runs behind it.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		u, err := h.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// currentUser returns the authenticated user placed by requireUser.
func currentUser(r *http.Request) core.User {
	u, _ := r.Context().Value(userKey).(core.User)
	return u
}
