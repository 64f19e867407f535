// Package auth issues and verifies admin tokens for the moderation API.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guestbook-api/internal/config"
)

const adminRole = "admin"

var (
	// ErrInvalidKey is returned when the admin key does not match
	ErrInvalidKey = errors.New("invalid admin key")
	// ErrInvalidToken is returned for malformed, expired or foreign tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrDisabled is returned when no admin key is configured
	ErrDisabled = errors.New("admin login disabled")
)

// Claims are the JWT claims carried by admin tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token is an issued admin token
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Issuer exchanges the admin key for signed tokens and verifies them
type Issuer struct {
	adminKey []byte
	secret   []byte
	ttl      time.Duration
	issuer   string
	now      func() time.Time
}

// NewIssuer creates an Issuer from configuration
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		adminKey: []byte(cfg.AdminKey),
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.TokenTTL,
		issuer:   cfg.Issuer,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Enabled reports whether an admin key is configured
func (i *Issuer) Enabled() bool {
	return len(i.adminKey) > 0
}

// Login checks key and returns a signed admin token
func (i *Issuer) Login(key string) (*Token, error) {
	if !i.Enabled() {
		return nil, ErrDisabled
	}
	if subtle.ConstantTimeCompare([]byte(key), i.adminKey) != 1 {
		return nil, ErrInvalidKey
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   adminRole,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

// Verify parses and validates an admin token
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	if !i.Enabled() {
		return nil, ErrDisabled
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != adminRole {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}

	return claims, nil
}
