// CLAUDE:SUMMARY Script-aware word-boundary substring matching, bounded fuzzy fallback, caption scoring and stable ranking.
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/autolex/pkg/script"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchKind orders match quality. Higher is better.
type MatchKind uint8

const (
	MatchNone MatchKind = iota
	MatchFuzzy
	MatchSubstring
	MatchPrefix
	MatchExact
)

func (k MatchKind) String() string {
	switch k {
	case MatchFuzzy:
		return "fuzzy"
	case MatchSubstring:
		return "substring"
	case MatchPrefix:
		return "prefix"
	case MatchExact:
		return "exact"
	default:
		return "none"
	}
}

// Score is the best match of an alias set against one caption.
// Length is the rune length of the normalized alias that produced it.
type Score struct {
	Kind   MatchKind
	Length int
	Alias  string
}

// Matched reports whether any alias matched.
func (s Score) Matched() bool { return s.Kind != MatchNone }

// Exact reports a whole-caption or leading match.
func (s Score) Exact() bool { return s.Kind >= MatchPrefix }

// Compare returns -1, 0 or +1 as s ranks below, equal to or above o.
// Scores order by matched, then exact (whole-caption or leading), then
// alias length. Kind breaks the remaining ties.
func (s Score) Compare(o Score) int {
	switch {
	case s.Matched() != o.Matched():
		return boolCompare(s.Matched())
	case s.Exact() != o.Exact():
		return boolCompare(s.Exact())
	case s.Length != o.Length:
		if s.Length > o.Length {
			return 1
		}
		return -1
	case s.Kind != o.Kind:
		if s.Kind > o.Kind {
			return 1
		}
		return -1
	}
	return 0
}

func boolCompare(won bool) int {
	if won {
		return 1
	}
	return -1
}

// Matches reports whether caption matches any alias.
func Matches(caption string, aliases []string) bool {
	return ScoreCaption(caption, aliases).Matched()
}

// ScoreCaption returns the best match of aliases in caption.
func ScoreCaption(caption string, aliases []string) Score {
	text := Normalize(caption)
	if text == "" {
		return Score{}
	}
	var tokens []string
	var best Score
	for _, raw := range aliases {
		alias := Normalize(raw)
		if isNoise(alias) {
			continue
		}
		s := Score{Kind: substringKind(text, alias), Length: utf8.RuneCountInString(alias), Alias: alias}
		if s.Kind == MatchNone {
			if tokens == nil {
				tokens = strings.Fields(text)
			}
			if fuzzyMatch(tokens, alias) {
				s.Kind = MatchFuzzy
			}
		}
		if s.Kind != MatchNone && s.Compare(best) > 0 {
			best = s
		}
	}
	return best
}

// substringKind finds the best boundary-valid occurrence of alias in text.
func substringKind(text, alias string) MatchKind {
	if text == alias {
		return MatchExact
	}
	first, _ := utf8.DecodeRuneInString(alias)
	cls := script.Of(first)
	kind := MatchNone
	for from := 0; from <= len(text)-len(alias); {
		i := strings.Index(text[from:], alias)
		if i < 0 {
			break
		}
		i += from
		if atBoundary(text, i, len(alias), cls) {
			if i == 0 {
				return MatchPrefix
			}
			kind = MatchSubstring
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return kind
}

// atBoundary reports whether text[i:i+n] stands on its own. A neighbour
// is acceptable when it is missing, not a word rune, or written in another
// script than the alias. Thai and Lao aliases accept any neighbour since
// those scripts do not separate words with spaces.
func atBoundary(text string, i, n int, cls script.Class) bool {
	if !cls.Delimited() {
		return true
	}
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		if script.IsWord(r) && script.Of(r) == cls {
			return false
		}
	}
	if end := i + n; end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if script.IsWord(r) && script.Of(r) == cls {
			return false
		}
	}
	return true
}

// fuzzyBudget is the edit distance allowed for an alias of n runes.
func fuzzyBudget(n int) int {
	switch {
	case n < 3:
		return 0
	case n < 6:
		return 1
	default:
		return 2
	}
}

// fuzzyMatch compares alias against every window of caption tokens holding
// as many words as the alias.
func fuzzyMatch(tokens []string, alias string) bool {
	n := utf8.RuneCountInString(alias)
	budget := fuzzyBudget(n)
	if budget == 0 {
		return false
	}
	words := strings.Count(alias, " ") + 1
	for i := 0; i+words <= len(tokens); i++ {
		cand := tokens[i]
		if words > 1 {
			cand = strings.Join(tokens[i:i+words], " ")
		}
		diff := utf8.RuneCountInString(cand) - n
		if diff > budget || -diff > budget {
			continue
		}
		if fuzzy.LevenshteinDistance(alias, cand) <= budget {
			return true
		}
	}
	return false
}

// Candidate is a listing to rank.
type Candidate struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// Ranked is a matched candidate with its score.
type Ranked struct {
	Candidate
	Score Score `json:"-"`
}

// Rank scores candidates against aliases and returns the matching ones,
// best first. Equal scores keep input order.
func Rank(candidates []Candidate, aliases []string) []Ranked {
	var out []Ranked
	for _, c := range candidates {
		s := ScoreCaption(c.Caption, aliases)
		if s.Matched() {
			out = append(out, Ranked{Candidate: c, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Compare(out[j].Score) > 0
	})
	return out
}
