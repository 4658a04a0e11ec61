package utils

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	access, err := NewAccessToken("secret", 42, 30)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if access.Token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(access.Exp); until < 29*time.Minute || until > 31*time.Minute {
		t.Fatalf("expiry off: %v", access.Exp)
	}

	uid, err := ParseAccessToken("secret", access.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("uid = %d, want 42", uid)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	t.Parallel()

	access, err := NewAccessToken("secret", 42, 30)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken("other", access.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	t.Parallel()

	access, err := NewAccessToken("secret", 42, -5)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken("secret", access.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseAccessToken("secret", "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestNewAPIKeyUnique(t *testing.T) {
	t.Parallel()

	a, b := NewAPIKey(), NewAPIKey()
	if a == "" || a == b {
		t.Fatalf("keys not unique: %q %q", a, b)
	}
}
