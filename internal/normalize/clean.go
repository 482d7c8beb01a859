package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanName lowercases a raw product name, strips accents, drops
// punctuation that carries no meaning and collapses whitespace. Hyphens
// inside words and decimal separators inside numbers are preserved.
func CleanName(s string) string {
	lowered, _, _ := transform.String(stripAccents, strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(lowered))
	runesIn := []rune(lowered)
	for i, r := range runesIn {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		case (r == '.' || r == ','):
			// keep separators that sit between two digits (e.g. 2.5)
			if i > 0 && i < len(runesIn)-1 && unicode.IsDigit(runesIn[i-1]) && unicode.IsDigit(runesIn[i+1]) {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a cleaned name into tokens.
func Tokenize(s string) []string {
	return strings.Fields(s)
}
