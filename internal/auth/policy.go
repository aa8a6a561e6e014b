package auth

// passwordSymbols is the fixed symbol set accepted by the password policy.
const passwordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 8

// ValidPassword reports whether the candidate password satisfies the policy:
// length >= 8 and at least one lowercase letter, one uppercase letter, one
// digit, and one symbol from the fixed set. The scan is a single pass; each
// class check is an independent flag and any character may satisfy several.
// Only ASCII letter/digit classes are considered.
func ValidPassword(p string) bool {
	if len(p) < minPasswordLen {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
		for _, s := range passwordSymbols {
			if c == s {
				hasSymbol = true
				break
			}
		}
	}

	return hasLower && hasUpper && hasDigit && hasSymbol
}
