package middleware

import (
	"context"
	"net/http"

	"github.com/umbra/uploader/internal/identity"
	"github.com/umbra/uploader/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// userKey is the context key for the authenticated user.
const userKey contextKey = "user"

// RequireUser returns middleware that resolves the Bearer token against the
// static user table and injects the matched user into the request context.
// A missing or unknown token rejects the request before any storage access.
func RequireUser(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := resolver.ResolveToken(r.Header.Get("Authorization"))
			if err != nil {
				response.Unauthorized(w, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom extracts the authenticated user placed in the context by RequireUser.
func UserFrom(ctx context.Context) (*identity.User, bool) {
	u, ok := ctx.Value(userKey).(*identity.User)
	return u, ok
}
