package iso3166

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markStripper decomposes accented characters (NFD) and drops the
// resulting combining marks, leaving the base letters: "ç" -> "c".
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize prepares free-text input for comparison: trims surrounding
// whitespace, uppercases, strips diacritics, and removes every character
// that is not an ASCII letter or whitespace.
//
//	Normalize("Curaçao")  == "CURACAO"
//	Normalize(" Co. Wicklow ") == "CO WICKLOW"
//
// Normalize is pure and idempotent. Two inputs that differ only in case,
// accents, or punctuation normalize identically.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = strings.ToUpper(s)
	if stripped, _, err := transform.String(markStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	// Dropped characters can leave whitespace at the edges; trim again
	// so Normalize(Normalize(s)) == Normalize(s).
	return strings.TrimSpace(b.String())
}

// trailingParenRe matches a trailing parenthetical qualifier such as
// the " (the)" in "Gambia (the)".
var trailingParenRe = regexp.MustCompile(`\s*\([\w\s.]+\)$`)

// stripParenthetical removes a trailing parenthetical qualifier from a
// formal name, yielding the informal variant. Text without a trailing
// parenthetical is returned unchanged (minus surrounding whitespace).
func stripParenthetical(s string) string {
	return strings.TrimSpace(trailingParenRe.ReplaceAllString(s, ""))
}
