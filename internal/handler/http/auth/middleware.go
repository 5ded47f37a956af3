package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"vnnews/internal/domain/entity"
	"vnnews/internal/handler/http/respond"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// FromContext returns the claims attached by Require, or nil when the
// request did not pass through the auth middleware.
func FromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(ctxClaims).(*Claims); ok {
		return c
	}
	return nil
}

// WithClaims attaches claims to the context. Exported for handler tests.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

// Require returns middleware that enforces JWT authentication and role
// membership for protected endpoints.
//
// Authorization logic:
//  1. Extract and validate the JWT from the Authorization header.
//     Missing or invalid tokens return 401 for all methods, GET included.
//  2. Check the token role against the allowed set. An empty set means
//     any authenticated user. Admin is always allowed.
//  3. Attach the decoded claims to the request context.
func Require(roles ...entity.Role) func(http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(r.Header.Get("Authorization"), secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			if !roleAllowed(claims.Role, roles) {
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerClaims(authz string, secret []byte) (*Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errors.New("missing bearer token")
	}
	return ValidateToken(strings.TrimPrefix(authz, prefix), secret)
}

func roleAllowed(role entity.Role, allowed []entity.Role) bool {
	if role == entity.RoleAdmin {
		return true
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
