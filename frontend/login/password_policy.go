package login

import (
	"errors"
	"unicode"
)

var ErrWeakPassword = errors.New("password should be at least 12 characters and mix upper, lower, digit and symbol")

// CheckPasswordStrength reports whether the configured password is weak. The
// server still starts with a weak password; the result is only logged.
func CheckPasswordStrength(password string) error {
	if len([]rune(password)) < 12 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
