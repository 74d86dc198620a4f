// Package match implements the text canonicalization and word-boundary
// term matching used by the profile scorer and the dedup store.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9]+`)
	nonLetterRe  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases the text, decomposes accented characters and
// replaces every combining diacritic mark with a space, so "é" and "e"
// occupy the same visual slot without fusing adjacent words.
func Normalize(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return ' '
		}
		return r
	}, decomposed)
}

// ToWordSpace normalizes and then collapses every run of
// non-alphanumeric characters into a single space. The result is used
// only for matching, never surfaced to users.
func ToWordSpace(s string) string {
	collapsed := nonWordRe.ReplaceAllString(Normalize(s), " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(collapsed, " "))
}

// NormalizeSubject is the script-preserving variant used for subject
// deduplication: it strips case, diacritics and punctuation but keeps
// letters and digits of any script.
func NormalizeSubject(s string) string {
	collapsed := nonLetterRe.ReplaceAllString(Normalize(s), " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(collapsed, " "))
}

// HasTerm reports whether term occurs in haystack at word boundaries.
// Both sides are normalized first; an empty term never matches. Terms
// with internal spaces match as whole phrases, tolerating collapsed
// separators between the words.
func HasTerm(haystack, term string) bool {
	h := ToWordSpace(haystack)
	t := ToWordSpace(term)
	if t == "" {
		return false
	}

	// The normalized term contains only [a-z0-9 ], so no quoting is
	// required beyond rewriting spaces.
	pat := `\b` + whitespaceRe.ReplaceAllString(t, `\s+`) + `\b`

	re, err := regexp.Compile(pat)
	if err != nil {
		return false
	}
	return re.MatchString(h)
}

// HitAny reports whether at least one of the terms matches.
func HitAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if HasTerm(haystack, t) {
			return true
		}
	}
	return false
}

// HitAll reports whether every term matches. It is vacuously true for
// an empty term set.
func HitAll(haystack string, terms []string) bool {
	for _, t := range terms {
		if !HasTerm(haystack, t) {
			return false
		}
	}
	return true
}
