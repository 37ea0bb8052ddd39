package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from an access token without verifying
// the signature. The client holds no signing keys; expiry is used only for
// diagnostics, never to decide whether a token is valid - the backend's 401
// remains the authority.
func TokenExpiry(rawToken string) (time.Time, bool) {
	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
