// internal/app/system/normalize/normalize.go

// Package normalize cleans user-supplied identity fields before they are
// stored or compared.
package normalize

import (
	"regexp"
	"strings"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses internal whitespace runs and trims the result.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone strips spaces and hyphens from a phone number.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// malaysianMobile matches local mobile numbers with optional +6 country
// prefix, e.g. 0123456789, +60123456789, 011-23456789.
var malaysianMobile = regexp.MustCompile(`^(\+?6?01)[0-46-9][0-9]{7,8}$`)

// ValidMalaysianPhone reports whether s (after Phone normalization) is a
// plausible Malaysian mobile number.
func ValidMalaysianPhone(s string) bool {
	return malaysianMobile.MatchString(Phone(s))
}
