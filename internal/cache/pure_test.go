package cache

import (
	"testing"
)

func TestSessionKey(t *testing.T) {
	t.Parallel()

	if got := sessionKey("abc123"); got != "session:abc123" {
		t.Errorf("sessionKey() = %q, want session:abc123", got)
	}
}

func TestUserSessionsKey(t *testing.T) {
	t.Parallel()

	if got := userSessionsKey(42); got != "sessions:user:42" {
		t.Errorf("userSessionsKey() = %q, want sessions:user:42", got)
	}
}

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	if hashIP(ip) != hashIP(ip) {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6 localhost", "::1"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// hashIP uses first 8 bytes of SHA256, encoded as 16 hex chars
			if hash := hashIP(tt.ip); len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
		})
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	if hashIP("10.0.0.1") == hashIP("10.0.0.2") {
		t.Error("different IPs should produce different hashes")
	}
}
