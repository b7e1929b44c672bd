// CLAUDE:SUMMARY Canonical text normalization (NFKC, lowercase, punctuation to space, whitespace collapse) shared by indexing and querying.
package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// punctuation is replaced by a space before whitespace is collapsed.
const punctuation = ".,;:!/?\\|@#$%^&*_+=~`<>-"

func isBracketOrQuote(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '"', '\'':
		return true
	}
	return unicode.In(r, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf)
}

func fold(r rune) rune {
	if isBracketOrQuote(r) || strings.ContainsRune(punctuation, r) {
		return ' '
	}
	return unicode.ToLower(r)
}

// Normalize canonicalizes a term for the alias index: NFKC, lowercase,
// brackets/quotes and punctuation to space, whitespace collapsed and trimmed.
// Normalize(Normalize(s)) == Normalize(s).
//
// Composition happens outside any shared transform.Chain: chains keep
// internal buffers and the index is queried from many goroutines.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.Map(fold, s)
	if !norm.NFKC.IsNormalString(s) {
		s = norm.NFKC.String(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized string on whitespace, keeping tokens of at
// least two runes.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// isNoise reports aliases that must never trigger a match on their own:
// shorter than two runes or made only of digits and spaces.
func isNoise(normalized string) bool {
	if utf8.RuneCountInString(normalized) < 2 {
		return true
	}
	for _, r := range normalized {
		if !unicode.IsDigit(r) && r != ' ' {
			return false
		}
	}
	return true
}
