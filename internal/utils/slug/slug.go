// Package slug derives URL-safe identifiers from article and category titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// Unicode letters and digits stay so Vietnamese titles keep their
	// diacritics in the slug.
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	hyphens = regexp.MustCompile(`[-\s]+`)
)

// Make converts a title into a slug: lowercase, non-word characters
// stripped, whitespace and hyphen runs collapsed to a single hyphen,
// leading and trailing hyphens trimmed.
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonWord.ReplaceAllString(s, "")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
