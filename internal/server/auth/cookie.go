package auth

import (
	"time"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on successful login.
const CookieName = "s_id"

// sessionClaims wraps the opaque session token in a signed envelope so the
// cookie value is tamper-evident. The token itself stays opaque; all
// authority still comes from the sessions table lookup.
type sessionClaims struct {
	jwt.RegisteredClaims
	Token string `json:"tok"`
}

// SealSessionCookie signs the opaque session token into a cookie value.
// The envelope expiry mirrors the session TTL; the authoritative expiry
// check happens at session lookup.
func SealSessionCookie(token string, secret []byte, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Token: token,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// OpenSessionCookie verifies the cookie value's signature and returns the
// embedded session token. Any parse or signature failure maps to
// ErrInvalidCookie; the caller treats that the same as a missing cookie.
func OpenSessionCookie(value string, secret []byte) (string, error) {
	claims := &sessionClaims{}

	parsed, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", common.ErrInvalidCookie
	}
	if !parsed.Valid || claims.Token == "" {
		return "", common.ErrInvalidCookie
	}

	return claims.Token, nil
}
