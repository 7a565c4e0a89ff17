package roles

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the unverified claims pulled out of a bearer token.
// They are a display hint only: the signature is never checked here,
// so nothing derived from them may gate an action client-side.
type TokenClaims struct {
	Subject string
	Role    Role
}

// DecodeToken extracts the subject and role claims from the payload
// segment of a JWT without verifying its signature. A malformed token
// (wrong segment count, bad base64, bad JSON) yields ok=false; it never
// returns an error because the caller always has a fallback.
func DecodeToken(token string) (TokenClaims, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, false
	}

	var out TokenClaims
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = Role(role)
	}
	return out, true
}
