// Package authn issues and validates the bearer tokens that gate
// every engine call except login, and provides the role-based gin
// middleware the HTTP edge wraps its routes in. Authentication itself
// is intentionally minimal, per spec.md §1's "authentication beyond a
// pre-shared staff identifier" Non-goal: a staff_id plus password
// checked against the staff directory, then a signed session token.
package authn

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mpcs-reservation/internal/staffdir"
)

// ErrInvalidToken and ErrTokenExpired are returned by Validate.
var (
	ErrInvalidToken = errors.New("authn: invalid token")
	ErrTokenExpired = errors.New("authn: token expired")
)

// Claims is the payload carried in every session token.
type Claims struct {
	StaffID string        `json:"staff_id"`
	Role    staffdir.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. ttl is the session lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new session token for the given staff member.
func (i *Issuer) Issue(staffID string, role staffdir.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses and verifies a session token.
func (i *Issuer) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
