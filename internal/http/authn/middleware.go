// Package authn extracts the caller's identity from a bearer token. Full
// session and role management lives outside this service; the ledger only
// needs to know who to attribute entries to.
package authn

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as recorded on ledger entries.
type Identity struct {
	UID  string
	Name string
	Role string
}

type ctxKey struct{}

// Middleware validates the Authorization bearer token and stores the
// caller's identity in the request context. With an empty secret the
// middleware is a pass-through and requests run anonymously.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			identity, err := parseToken(token, secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), ctxKey{}, identity),
			))
		})
	}
}

func parseToken(token, secret string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("unexpected claims type")
	}

	identity := Identity{}

	if sub, ok := claims["sub"].(string); ok {
		identity.UID = sub
	}

	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}

	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}

	return identity, nil
}

// FromContext returns the caller's identity, zero-valued for anonymous
// requests.
func FromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(ctxKey{}).(Identity)
	return identity
}
