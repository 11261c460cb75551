// Package token peeks inside bearer tokens issued by the LightShop backend.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector implements domain.TokenInspector by parsing the JWT without
// verifying its signature. The client holds no signing key; the server
// remains the authority, this is for expiry display only.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates an Inspector.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim as a unix timestamp.
func (i *Inspector) ExpiresAt(token string) (int64, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, fmt.Errorf("token has no expiry claim")
	}
	return exp.Unix(), nil
}
