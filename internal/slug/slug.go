// Package slug derives URL-safe path tokens from human-readable names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize converts s into a slug containing only [a-z0-9] and interior
// hyphens. The steps are fixed because generated file names depend on them:
//
//  1. locale-independent lowercasing
//  2. NFD decomposition
//  3. removal of combining marks
//  4. each run of characters outside [a-z0-9] becomes one hyphen
//  5. one leading and one trailing hyphen are trimmed
//
// The result is empty when s has no ASCII letters or digits after stripping
// diacritics; callers decide whether that is acceptable.
func Normalize(s string) string {
	// transformers carry state, so each call builds its own chain.
	t := transform.Chain(cases.Lower(language.Und), norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable on invalid UTF-8 handling bugs in x/text; fall back
		// to the plain mapping so Normalize stays total.
		folded = strings.ToLower(s)
	}
	out := nonAlphanumeric.ReplaceAllString(folded, "-")
	out = strings.TrimPrefix(out, "-")
	return strings.TrimSuffix(out, "-")
}

// Join concatenates slugs with a hyphen, the form used for section+topic pages.
func Join(parts ...string) string {
	return strings.Join(parts, "-")
}
