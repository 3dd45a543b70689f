package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims quillterm inspects locally.
// The server remains authoritative for identity; this is only used to
// warn about an expired token before the first request.
type Claims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

// PeekClaims parses the token without verifying its signature. Verification
// belongs to the backend; the client has no signing key.
func PeekClaims(token string) (Claims, error) {
	parser := jwt.NewParser()

	var mc jwt.MapClaims
	if _, _, err := parser.ParseUnverified(token, &mc); err != nil {
		return Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	out := Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		out.Subject = sub
	}
	if u, ok := mc["username"].(string); ok {
		out.Username = u
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// Expired reports whether the token carries an expiry in the past.
// Tokens without an exp claim are never considered expired locally.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
