// Package slug derives URL-safe community identifiers from display names.
// A slug is computed once at creation time and never recomputed, even if the
// community is later renamed.
package slug

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Make normalizes a community name into its slug: lowercased, every run of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func Make(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
