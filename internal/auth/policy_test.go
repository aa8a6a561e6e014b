package auth

import "testing"

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all lowercase", "abcdefgh", false},
		{"no symbol", "Abcdefg1", false},
		{"meets policy", "Abcdefg1!", true},
		{"too short", "Ab1!", false},
		{"empty", "", false},
		{"no digit", "Abcdefgh!", false},
		{"no upper", "abcdefg1!", false},
		{"no lower", "ABCDEFG1!", false},
		{"exactly eight", "Abcdef1!", true},
		{"symbol backslash", "Abcdefg1\\", true},
		{"symbol tilde", "Abcdefg1~", true},
		{"space is not a symbol", "Abcdefg1 ", false},
		{"long passphrase", "Correct-Horse-Battery-Staple-99", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidPassword(tt.password); got != tt.want {
				t.Errorf("ValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidPassword_EverySymbolCounts(t *testing.T) {
	t.Parallel()

	for _, s := range passwordSymbols {
		p := "Abcdefg1" + string(s)
		if !ValidPassword(p) {
			t.Errorf("ValidPassword(%q) = false, want true", p)
		}
	}
}
