// CLAUDE:SUMMARY Code-point range classifier for the scripts that matter to vehicle search terms (Latin, Thai, Lao).
package script

import "unicode"

// Class is a coarse script class.
type Class uint8

const (
	Other Class = iota
	Latin
	Thai
	Lao
)

func (c Class) String() string {
	switch c {
	case Latin:
		return "latin"
	case Thai:
		return "thai"
	case Lao:
		return "lao"
	default:
		return "other"
	}
}

// Of classifies a single rune. Digits and punctuation are Other.
func Of(r rune) Class {
	switch {
	case r >= 0x0E00 && r <= 0x0E7F:
		return Thai
	case r >= 0x0E80 && r <= 0x0EFF:
		return Lao
	case unicode.Is(unicode.Latin, r):
		return Latin
	default:
		return Other
	}
}

// OfString returns the class of the first rune that is not Other.
func OfString(s string) Class {
	for _, r := range s {
		if c := Of(r); c != Other {
			return c
		}
	}
	return Other
}

// IsWord reports whether r is part of a word (letter, digit or combining mark).
// Thai and Lao vowel signs are marks, so they count.
func IsWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Delimited reports whether words of this class are separated by whitespace.
func (c Class) Delimited() bool {
	return c != Thai && c != Lao
}
