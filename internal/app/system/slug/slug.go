// internal/app/system/slug/slug.go

// Package slug derives URL-safe identifiers from club display names.
package slug

import (
	"strconv"
	"strings"
)

// Make lowercases name, collapses every run of non-alphanumeric characters
// to a single hyphen, and trims leading/trailing hyphens.
//
//	"KL Badminton Club!!" → "kl-badminton-club"
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// WithSuffix returns the slug for name disambiguated with a numeric suffix.
// A counter of 0 returns the bare slug.
func WithSuffix(name string, counter int) string {
	s := Make(name)
	if counter == 0 {
		return s
	}
	return s + "-" + strconv.Itoa(counter)
}
