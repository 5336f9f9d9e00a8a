// Package token issues and verifies the bearer tokens of the HTTP surface.
// A token carries only the user id and issue time; role and active state are
// re-read from the account store on every request so deactivation takes
// effect immediately.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	secret    []byte
	expiresIn time.Duration
}

func NewManager(secret string, expiresIn time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiresIn: expiresIn}
}

func (m *Manager) Issue(userID uint64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the user id and the
// issue time.
func (m *Manager) Verify(tokenString string) (uint64, time.Time, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, time.Time{}, apperr.Unauthorized("your token has expired, please log in again")
		}
		return 0, time.Time{}, apperr.Unauthorized("invalid token, please log in again")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, time.Time{}, apperr.Unauthorized("invalid token, please log in again")
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	return userID, issuedAt, nil
}
