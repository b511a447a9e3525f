package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// overridable in tests
var nowFunc = time.Now

// tokenExpired does a local, unverified expiry check on the configured bearer
// token so an obviously dead token fails fast instead of burning a round trip
// on a guaranteed 401. Opaque (non-JWT) tokens skip the check; the backend is
// the only party that actually verifies anything.
func (c *Client) tokenExpired() bool {
	if c.token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(nowFunc())
}
