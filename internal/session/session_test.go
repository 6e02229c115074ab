package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"codeswitch-review/internal/config"
)

func testService() *Service {
	return NewService(&config.SessionConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
	})
}

func TestStartAndValidate(t *testing.T) {
	svc := testService()

	reviewer, token, err := svc.Start("  Alice  ")
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if reviewer != "alice" {
		t.Errorf("Expected normalized reviewer alice, got %q", reviewer)
	}
	if token == "" {
		t.Fatal("Token should not be empty")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Reviewer != "alice" {
		t.Errorf("Expected reviewer alice in claims, got %q", claims.Reviewer)
	}
	if claims.ID == "" {
		t.Error("Token should carry a unique id")
	}
}

func TestStartEmptyUsername(t *testing.T) {
	svc := testService()

	for _, username := range []string{"", "   ", "\t\n"} {
		_, _, err := svc.Start(username)
		if !errors.Is(err, ErrEmptyUsername) {
			t.Errorf("Username %q: expected ErrEmptyUsername, got %v", username, err)
		}
	}
}

func TestValidateWrongSecret(t *testing.T) {
	svc := testService()
	_, token, err := svc.Start("alice")
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	other := NewService(&config.SessionConfig{
		Secret:     "different-secret",
		Expiration: time.Hour,
	})
	if _, err := other.Validate(token); err == nil {
		t.Error("Token signed with another secret should not validate")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService(&config.SessionConfig{
		Secret:     "test-secret",
		Expiration: -time.Hour,
	})
	_, token, err := svc.Start("alice")
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("Expired token should not validate")
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := testService()
	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Error("Garbage should not validate")
	}
}

func TestValidateRejectsEmptyReviewerClaim(t *testing.T) {
	svc := testService()

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("Token without a reviewer should not validate")
	}
}
