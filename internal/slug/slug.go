// Package slug converts human display text into canonical identifier tokens.
package slug

import (
	"strings"
	"unicode"
)

// Make converts text into its canonical slug: lowercase, letters and digits
// kept, every other run of characters collapsed into a single underscore.
// Returns "" when the text contains no usable characters.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pending := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
