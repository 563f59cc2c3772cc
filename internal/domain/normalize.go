package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail prepares an email address for storage and comparison:
// surrounding whitespace is trimmed and the address is lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email is a single bare address
// ("user@example.com", no display name).
func IsValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

// NormalizeName trims surrounding whitespace and compresses internal runs of
// spaces into one.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
