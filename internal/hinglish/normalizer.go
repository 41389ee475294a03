package hinglish

import (
	"strings"
	"unicode"
)

// Normalize prepares a raw utterance for dictionary matching: lowercases,
// strips punctuation, and collapses runs of whitespace to single spaces.
// An empty utterance normalizes to the empty string.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Punctuation becomes a space so "roti,dal" still splits cleanly.
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
