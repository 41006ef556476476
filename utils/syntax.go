package utils

import "regexp"

// emailRegex is the format gate: local part of [a-zA-Z0-9._%+-], an @, a
// domain of letters/digits/dots/hyphens, and a top-level label of at least
// two letters. No Unicode or IDN support and no length limits.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmailFormat reports whether the input looks like an email address.
func ValidEmailFormat(email string) bool {
	return emailRegex.MatchString(email)
}
