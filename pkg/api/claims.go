package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the API embeds in its session tokens.
type Claims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Claims decodes the token payload without verifying its signature; the key
// lives on the server. Use it for display and expiry checks only.
func (r LoginResponse) Claims() (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.JWT, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token is past its expiry at now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}
