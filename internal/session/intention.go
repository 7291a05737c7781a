package session

import (
	"strings"
	"unicode"
)

// MaxIntentionLength is the maximum number of characters kept from an intention.
const MaxIntentionLength = 100

// SanitizeIntention strips control characters and markup brackets, collapses
// runs of whitespace and truncates the result to MaxIntentionLength runes.
func SanitizeIntention(s string) string {
	var b strings.Builder
	space := false
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if n >= MaxIntentionLength {
			break
		}
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r), r == '<', r == '>':
			continue
		}
		if space && b.Len() > 0 {
			b.WriteRune(' ')
			n++
			if n >= MaxIntentionLength {
				break
			}
		}
		space = false
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}
