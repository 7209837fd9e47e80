package extract

import (
	"regexp"
	"strings"
)

var (
	reEmphasis   = regexp.MustCompile(`\*+`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Normalize cleans a raw rule capture: source documents flag computed
// totals with asterisk runs, and captured values regularly carry embedded
// newlines and padding. Strips emphasis markers, collapses any whitespace
// run to a single space, trims the ends. Pure, total, idempotent.
func Normalize(s string) string {
	s = reEmphasis.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
