package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT credential without verifying
// its signature. ok is false for opaque credentials and tokens without exp.
func TokenExpiry(credential string) (exp time.Time, ok bool) {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	nd, err := token.Claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}

// Expired reports whether credential carries an exp claim at or before now.
func Expired(credential string, now time.Time) bool {
	exp, ok := TokenExpiry(credential)
	return ok && !now.Before(exp)
}
