// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied text fields (club
// descriptions, invitation messages) before they are persisted.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Plain removes all HTML from s and trims surrounding whitespace.
func Plain(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
