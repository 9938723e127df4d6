// Package http provides the HTTP handlers and middleware of the auth context.
package http

import (
	"context"
	"strings"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// claimsKey is a context key type for storing the claims of an authenticated request.
type claimsKey struct{}

// WithClaims stores the verified token claims in the context.
// This is called by AuthenticationMiddleware after successful token validation.
func WithClaims(ctx context.Context, claims *authDomain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the verified token claims from the context.
// Returns (claims, true) if present, or (nil, false) if the request was not authenticated.
func GetClaims(ctx context.Context) (*authDomain.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.TokenClaims)
	return claims, ok && claims != nil
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header. The scheme is
// matched case-insensitively.
func bearerToken(authHeader string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	return token, token != ""
}
