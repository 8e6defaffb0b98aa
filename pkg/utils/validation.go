package utils

import "unicode"

// PasswordPolicyMessage describes the enforced password policy
const PasswordPolicyMessage = "Password must be at least 8 characters and contain at least one uppercase letter, one lowercase letter, and one number"

// IsValidPassword reports whether a password satisfies the policy: at
// least 8 characters with one uppercase letter, one lowercase letter, and
// one digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
