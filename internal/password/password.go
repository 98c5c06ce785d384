// Package password implements the password complexity policy for admin
// registration.
package password

import (
	"unicode"

	apperrors "moneta/internal/errors"
)

// Validate checks a password against the complexity policy: at least one
// uppercase letter, one digit, and one symbol (a character that is neither a
// word character nor whitespace). There is no lowercase requirement.
// Returns ErrWeakPassword if the policy is not satisfied.
func Validate(password string) error {
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case isSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// isSymbol reports whether r is a non-word, non-space character, mirroring
// the regex class [^\w\s].
func isSymbol(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return true
}
