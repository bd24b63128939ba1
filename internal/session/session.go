// Package session provides the token → userID session contract behind the
// connect.sid cookie. The server-side record lives in Redis (production)
// or in process memory (dev/tests); the cookie value itself is an
// HS256-signed token wrapping the session id, so values cannot be forged
// or guessed.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName matches the cookie the original frontend already expects.
const CookieName = "connect.sid"

// ErrNotFound is returned when a session id has no record, either because
// it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Store maps opaque session ids to user ids. Lifetime is bounded by the
// TTL given at creation and by explicit Delete (logout).
type Store interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	GetUserID(ctx context.Context, sid string) (int64, error)
	Delete(ctx context.Context, sid string) error
}

// SignToken wraps a session id in a signed token for cookie transport.
func SignToken(sid, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a cookie value and extracts the session id. Any
// failure (bad signature, expiry, malformed claim) is reported the same
// way, so a tampered cookie is indistinguishable from a missing session.
func ParseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid session claim")
	}
	return sid, nil
}
