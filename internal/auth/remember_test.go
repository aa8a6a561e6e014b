package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRememberToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := NewRememberToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewRememberToken() error = %v", err)
	}

	userID, err := VerifyRememberToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyRememberToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestVerifyRememberToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewRememberToken(42, []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("NewRememberToken() error = %v", err)
	}

	if _, err := VerifyRememberToken(token, []byte("secret-b")); !errors.Is(err, ErrInvalidRememberToken) {
		t.Errorf("error = %v, want ErrInvalidRememberToken", err)
	}
}

func TestVerifyRememberToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := NewRememberToken(42, secret, -time.Minute)
	if err != nil {
		t.Fatalf("NewRememberToken() error = %v", err)
	}

	if _, err := VerifyRememberToken(token, secret); !errors.Is(err, ErrInvalidRememberToken) {
		t.Errorf("error = %v, want ErrInvalidRememberToken", err)
	}
}

func TestVerifyRememberToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := VerifyRememberToken("not.a.token", []byte("s")); !errors.Is(err, ErrInvalidRememberToken) {
		t.Errorf("error = %v, want ErrInvalidRememberToken", err)
	}
}

func TestNewSessionToken(t *testing.T) {
	t.Parallel()

	t1, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}
	if len(t1) != sessionTokenLen*2 {
		t.Errorf("token length = %d, want %d hex chars", len(t1), sessionTokenLen*2)
	}
	if strings.ToLower(t1) != t1 {
		t.Errorf("token %q is not lowercase hex", t1)
	}

	t2, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}
	if t1 == t2 {
		t.Error("two generated tokens should differ")
	}
}
