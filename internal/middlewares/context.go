package middlewares

import (
	"context"

	"github.com/sbilibin2017/stocktrack-api/internal/jwt"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var claimsKey = contextKey{}

// SetClaims stores verified token claims in the context.
func SetClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims retrieves the verified token claims from the context.
// Returns nil when the request did not pass the auth middleware.
func GetClaims(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}
