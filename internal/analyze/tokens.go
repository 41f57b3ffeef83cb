package analyze

import (
	"strings"
	"unicode"
)

// HasAlpha reports whether the token contains at least one letter.
// Punctuation-only and purely numeric tokens are structural noise, not
// content signals.
func HasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// LowerAlphaTokens lowercases tagged word tokens and drops those without a
// letter. Order is preserved.
func LowerAlphaTokens(tagged []TaggedWord) []string {
	out := make([]string, 0, len(tagged))
	for _, tw := range tagged {
		if HasAlpha(tw.Text) {
			out = append(out, strings.ToLower(tw.Text))
		}
	}
	return out
}
