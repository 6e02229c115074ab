// Package session carries the reviewer identity for one front-end
// session. The username is free text and is not verified against
// anything: the token exists so every request in a session agrees on the
// same normalized identity, not to authenticate anyone.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"codeswitch-review/internal/config"
	"codeswitch-review/internal/service"
)

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrEmptyUsername = errors.New("username is empty")
)

// Claims are the JWT claims of a reviewer session token.
type Claims struct {
	Reviewer string `json:"reviewer"`
	jwt.RegisteredClaims
}

// Service mints and validates reviewer session tokens.
type Service struct {
	secret     []byte
	expiration time.Duration
}

// NewService creates a new session service
func NewService(cfg *config.SessionConfig) *Service {
	return &Service{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
	}
}

// Start normalizes the chosen username and returns it together with a
// signed session token carrying it.
func (s *Service) Start(username string) (reviewer, token string, err error) {
	reviewer = service.NormalizeReviewer(username)
	if reviewer == "" {
		return "", "", ErrEmptyUsername
	}

	now := time.Now()
	claims := Claims{
		Reviewer: reviewer,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return reviewer, token, nil
}

// Validate parses a session token and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Reviewer == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
