package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type ctxKey int

const claimsKey ctxKey = 1

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

type TokenParser interface {
	ParseAndValidate(tokenStr string) (*Claims, error)
}

// RevocationFunc decides whether an otherwise-valid credential is accepted
// for this call. It is deliberately separate from the verification step so
// the policy can change without touching token parsing.
type RevocationFunc func(*Claims) bool

var ErrRevoked = errors.New("auth: token revoked")

// AdminOnly is the deployed revocation policy: any credential whose isAdmin
// flag is unset is treated as revoked, so only administrators reach
// non-exempt endpoints. Non-admin users are uniformly rejected, including
// for their own profile; that behavior is reproduced on purpose.
func AdminOnly(c *Claims) bool {
	return !c.IsAdmin
}

// Gate is the single chokepoint every request passes through. Exempt
// (path, method) pairs skip all checks and carry no claims; everything else
// needs a bearer token that verifies and survives the revocation predicate.
// On success the parsed claims are attached to the request context.
func Gate(parser TokenParser, exempt *Exemptions, revoked RevocationFunc) func(http.Handler) http.Handler {
	if revoked == nil {
		revoked = AdminOnly
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt != nil && exempt.Exempt(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			claims, err := parser.ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			if revoked(claims) {
				unauthorized(w, ErrRevoked.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// MustClaims extracts claims or fails, for handlers that require them.
func MustClaims(r *http.Request) (*Claims, error) {
	if c, ok := FromContext(r.Context()); ok {
		return c, nil
	}
	return nil, errors.New("no claims")
}
