// Package jwt issues and verifies the bearer tokens guarding the status API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"ZramManager/internal/pkg/config"

	gojwt "github.com/golang-jwt/jwt/v4"
)

// DefaultTTL applies when api.auth.jwt_expiration is unset
const DefaultTTL = 24 * time.Hour

// Reason classifies a rejected token
type Reason string

const (
	ReasonExpired   Reason = "expired"
	ReasonMalformed Reason = "malformed"
	ReasonRejected  Reason = "rejected"
)

// TokenError is returned by Verify for every token that is not accepted
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

var (
	errWrongIssuer = errors.New("unexpected issuer")
	errMissingUser = errors.New("missing username")
)

// Claims carries the operator name. Issuer is always the app name of the daemon that signed it.
type Claims struct {
	Username string `json:"username"`
	gojwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens for one daemon instance
type Issuer struct {
	name   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(name, secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{name: name, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssuerFromConfig builds the issuer for cfg.AppName from the api.auth section
func IssuerFromConfig(cfg *config.Config) *Issuer {
	ttl := time.Duration(cfg.API.Auth.JWTExpiration) * time.Second
	return NewIssuer(cfg.AppName, cfg.API.Auth.JWTSecret, ttl)
}

// TTL is the lifetime given to every issued token
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for username
func (i *Issuer) Issue(username string) (string, error) {
	now := i.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    i.name,
			Subject:   username,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token signed by this issuer. Any failure is a *TokenError.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := gojwt.ParseWithClaims(raw, claims, func(t *gojwt.Token) (interface{}, error) {
		if t.Method != gojwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return nil, &TokenError{Reason: ReasonExpired, Err: err}
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return nil, &TokenError{Reason: ReasonMalformed, Err: err}
	case err != nil:
		return nil, &TokenError{Reason: ReasonRejected, Err: err}
	}

	if !claims.VerifyIssuer(i.name, true) {
		return nil, &TokenError{Reason: ReasonRejected, Err: errWrongIssuer}
	}
	if claims.Username == "" {
		return nil, &TokenError{Reason: ReasonRejected, Err: errMissingUser}
	}
	return claims, nil
}
