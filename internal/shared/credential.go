package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialExpired reports whether token is a JWT whose exp claim has
// passed. The signature is not checked here; the backend owns that. Opaque
// tokens never expire client-side.
func CredentialExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
