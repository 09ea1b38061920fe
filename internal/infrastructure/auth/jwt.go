package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/bankrec/internal/domain"
)

// Issuer is stamped on every token and required on verification.
const Issuer = "bankrec"

const clockSkew = 30 * time.Second

// Claims carries the caller identity. Tokens come from the identity
// provider in production and from `bankrec token issue` elsewhere.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Name   string      `json:"name,omitempty"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// User returns the caller described by the claims.
func (c *Claims) User() *domain.User {
	return &domain.User{ID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// Option configures a JWTManager.
type Option func(*JWTManager)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.now = now }
}

// JWTManager signs and verifies HS256 bearer tokens.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
	parser        *jwt.Parser
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string, tokenDuration time.Duration, opts ...Option) *JWTManager {
	m := &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(m.now),
	)
	return m
}

// Generate signs a token for user valid for the manager's token duration.
func (m *JWTManager) Generate(user *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// Verify parses tokenString and returns its claims. Expired tokens map to
// domain.ErrExpiredToken, everything else to domain.ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrExpiredToken
	case err != nil:
		return nil, domain.ErrInvalidToken
	}

	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
