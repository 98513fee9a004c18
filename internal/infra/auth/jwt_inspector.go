// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain/service"
)

// jwtInspector reads registered claims from bearer tokens issued by the backend.
// The client holds no signing key, so signatures are not verified here; the
// backend remains the authority on token validity.
type jwtInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector is the constructor for jwtInspector.
func NewJWTInspector() service.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim. Opaque (non-JWT) tokens and tokens without
// exp report false.
func (i *jwtInspector) ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
