package httpapi

import (
	"context"
	"net/http"

	"github.com/andriiBychkovskiy/proshop/internal/auth"
	"github.com/andriiBychkovskiy/proshop/internal/user"
)

// TokenVerifier checks a session token and returns the user id inside it.
type TokenVerifier interface {
	Verify(tokenStr string) (string, error)
}

// PrincipalLoader resolves a user id into the full account record, so the
// principal carries the current name and admin flag rather than stale claims.
type PrincipalLoader interface {
	GetProfile(ctx context.Context, userID string) (*user.User, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
	users  PrincipalLoader
}

func NewAuthMiddleware(tokens TokenVerifier, users PrincipalLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Authenticate attaches a principal to the request context when a valid
// session cookie is present. It never rejects; the Require* middlewares do.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.users.GetProfile(r.Context(), userID)
		if err != nil || u == nil {
			next.ServeHTTP(w, r)
			return
		}

		p := auth.Principal{UserID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "not authorized, no token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFrom(r.Context())
		if !ok || !p.IsAdmin {
			writeError(w, http.StatusUnauthorized, "not authorized as admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// principal fetches the principal placed by Authenticate. Handlers behind
// RequireAuth can rely on it being present.
func principal(r *http.Request) auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}
