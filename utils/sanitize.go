package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips every tag and attribute from s and returns the remaining
// text with entities still escaped. Decoding entities here would turn
// "&lt;script&gt;" back into a live tag, so escaped stays escaped.
func Sanitize(s string) string {
	return strictPolicy.Sanitize(s)
}

// SanitizeTrim drops surrounding whitespace before stripping markup, used
// for description-like fields.
func SanitizeTrim(s string) string {
	return Sanitize(strings.TrimSpace(s))
}
