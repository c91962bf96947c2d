package utils

import (
	"testing"
	"time"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	userID := "7b0d12a3-8cc2-4f1e-9c6d-0b7f3a9e5d21"

	tok, err := NewAccessToken(secret, userID, 60)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if tok.Token == "" {
		t.Fatalf("empty token string")
	}
	if !tok.Exp.After(time.Now().UTC()) {
		t.Fatalf("expiry not in the future: %v", tok.Exp)
	}

	got, err := ParseUserID(secret, tok.Token)
	if err != nil {
		t.Fatalf("ParseUserID error: %v", err)
	}
	if got != userID {
		t.Fatalf("userID mismatch: got %q want %q", got, userID)
	}
}

func TestParseUserID_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("right-secret", "u-1", 60)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	_, err = ParseUserID("wrong-secret", tok.Token)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseUserID_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("secret", "u-1", -1)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	_, err = ParseUserID("secret", tok.Token)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseUserID_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseUserID("k", "not.a.jwt")
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
