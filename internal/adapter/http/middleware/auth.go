package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/gobudget/internal/infrastructure/auth"
)

// UserIDHeader carries the owner id when bearer authentication is disabled.
const UserIDHeader = "X-User-ID"

type contextKey string

const ownerContextKey contextKey = "owner"

// WithOwner returns a copy of ctx carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// OwnerFromContext extracts the authenticated owner id.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerContextKey).(string)
	return owner, ok && owner != ""
}

// Authenticate resolves the owner of every request. With a JWT manager a
// valid bearer token is required; without one the X-User-ID header is
// trusted, which is meant for local setups behind a gateway.
func Authenticate(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var owner string

			if jwtManager == nil {
				owner = strings.TrimSpace(r.Header.Get(UserIDHeader))
				if owner == "" {
					writeUnauthorized(w, "missing "+UserIDHeader+" header")
					return
				}
			} else {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					writeUnauthorized(w, "missing authorization header")
					return
				}

				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					writeUnauthorized(w, "invalid authorization header format")
					return
				}

				claims, err := jwtManager.Verify(parts[1])
				if err != nil {
					if errors.Is(err, auth.ErrExpiredToken) {
						writeUnauthorized(w, "token expired")
						return
					}
					writeUnauthorized(w, "invalid token")
					return
				}
				owner = claims.OwnerID()
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}
