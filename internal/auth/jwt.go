// Package auth guards write routes with HS256 bearer tokens.
//
// Tokens carry a subject (who the token was issued to), an issuer, an
// expiry and a unique id. There is no user store: anyone holding a token
// signed with the configured secret may write.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// MinSecretLen is the shortest accepted signing secret.
const MinSecretLen = 32

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret []byte
	issuer string
}

// Claims is the validated content of a token.
type Claims struct {
	Subject   string
	ID        string
	ExpiresAt time.Time
}

// NewTokenService creates a TokenService. Generate with
// `openssl rand -hex 32` or similar.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("auth: JWT secret must be at least %d characters", MinSecretLen)
	}
	if issuer == "" {
		return nil, errors.New("auth: issuer must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Generate signs a token for subject that expires after ttl. Each token gets
// a fresh xid as its jti so individual tokens can be told apart in logs.
func (s *TokenService) Generate(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("auth: subject must not be empty")
	}
	now := time.Now()

	c := jwt.RegisteredClaims{
		ID:        xid.New().String(),
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string.
//
// Only HS256 is accepted, which rules out "none" and key-confusion tricks.
// The issuer must match and an expiry is required.
func (s *TokenService) Validate(tokenStr string) (Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&rc,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errors.New("auth: token expired")
		}
		return Claims{}, fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid {
		return Claims{}, errors.New("auth: invalid token")
	}
	if rc.Subject == "" {
		return Claims{}, errors.New("auth: token has no subject")
	}

	return Claims{
		Subject:   rc.Subject,
		ID:        rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}
