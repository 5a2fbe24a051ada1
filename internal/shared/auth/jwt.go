package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification.
var ErrInvalidToken = errors.New("invalid token")

const defaultTTL = 24 * time.Hour

// Claims represents the identity contained in a token.
type Claims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Signer signs and verifies HS256 tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner constructs a Signer. An empty secret falls back to a fixed
// dev secret; production deployments must configure JWT_SECRET.
func NewSigner(secret string) *Signer {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		trimmed = "dev-secret"
	}
	return &Signer{secret: []byte(trimmed), ttl: defaultTTL}
}

// Sign issues a token for the given user identity.
func (s *Signer) Sign(userID, username, role string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and returns its claims.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
