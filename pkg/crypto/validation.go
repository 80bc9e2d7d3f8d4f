package crypto

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// PasswordRequirements describes the password policy enforced by ValidatePassword.
	PasswordRequirements = "Password must be 6 to 72 characters and contain both letters and numbers"

	minPasswordChars = 6
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	unsafeInputChar = regexp.MustCompile(`[<>"'%;()&+]`)
)

// ValidateEmail reports whether email (after trimming) is a plausible address.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidatePassword requires at least 6 characters, at most 72 bytes, and at
// least one letter and one digit.
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordChars || len(password) > maxPasswordBytes {
		return false
	}
	return letterPattern.MatchString(password) && digitPattern.MatchString(password)
}

// SanitizeInput strips characters commonly used for markup or injection from free text.
func SanitizeInput(input string) string {
	return unsafeInputChar.ReplaceAllString(input, "")
}
