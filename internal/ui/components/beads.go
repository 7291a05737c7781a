package components

import (
	"strings"

	"github.com/abhisek/rosary/internal/ui/theme"
)

const (
	// Beads 1..6 form the pendant: crucifix, one large and three small
	// beads, then the bead before the first decade.
	pendantBeads = 6
	decadeBeads  = 11 // one large bead followed by ten small ones
)

// Beads draws the strand the current bead belongs to, marking beads
// already prayed. Bead numbering follows devotion.Page.Rosary.
type Beads struct {
	Current int
}

// Decade returns the 1-based decade of the current bead, or 0 on the pendant.
func (b Beads) Decade() int {
	if b.Current <= pendantBeads {
		return 0
	}
	return (b.Current-pendantBeads-1)/decadeBeads + 1
}

// View renders the strand, or "" when the page has no bead.
func (b Beads) View() string {
	if b.Current <= 0 {
		return ""
	}

	var first, count int
	if d := b.Decade(); d == 0 {
		first, count = 1, pendantBeads
	} else {
		first, count = pendantBeads+1+(d-1)*decadeBeads, decadeBeads
	}

	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := first + i
		large := i == 0 || (first == 1 && (i == 1 || i == pendantBeads-1))
		glyph := "●"
		if first == 1 && i == 0 {
			glyph = "✝"
		} else if large {
			glyph = "◉"
		}
		switch {
		case n < b.Current:
			parts = append(parts, beadDone(glyph))
		case n == b.Current:
			parts = append(parts, beadCurrent(glyph))
		default:
			parts = append(parts, beadTodo(glyph))
		}
	}
	return strings.Join(parts, " ")
}

func beadDone(g string) string    { return theme.BeadDone.Render(g) }
func beadCurrent(g string) string { return theme.BeadCurrent.Render(g) }
func beadTodo(g string) string    { return theme.BeadTodo.Render(g) }
