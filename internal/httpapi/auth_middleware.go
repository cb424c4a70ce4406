package httpapi

import (
	"context"
	"net/http"

	"confportal/internal/auth"
	"confportal/internal/domain"
)

const (
	currentUserKey ctxKey = iota + 100
	sessionTokenKey
)

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(currentUserKey).(domain.User)
	return u, ok
}

// CurrentSessionToken returns the opaque session token for the request.
func CurrentSessionToken(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(sessionTokenKey).(string)
	return t, ok
}

type sessionResolver interface {
	GetUserForSession(ctx context.Context, token string) (domain.User, error)
}

// RequireAuth resolves the session cookie to a user and rejects requests
// without a valid session. Expired sessions are treated as absent.
func RequireAuth(resolver sessionResolver, codec auth.CookieCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "must log in")
				return
			}
			token, ok := codec.DecodeToken(cookie.Value)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "must log in")
				return
			}
			user, err := resolver.GetUserForSession(r.Context(), token)
			if err != nil {
				WriteDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), currentUserKey, user)
			ctx = context.WithValue(ctx, sessionTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
