package devotion

import "strconv"

// Sequence sizes.
const (
	ChapletPages = 67
	RosaryPages  = 88

	groups      = 5  // decades per devotion
	groupLength = 10 // repetitions per decade

	// firstGroupBead is the bead of the first decade's large bead. Every
	// later decade starts groupLength+1 beads further on.
	firstGroupBead = 7
)

// Generate builds the complete page sequence for a session. It is pure:
// the same session always yields the same pages.
func Generate(s Session) Pages {
	if s.Kind == DivineMercy {
		return generateChaplet(s)
	}
	return generateRosary(s)
}

// groupBead returns the large bead of the g-th decade (1-based).
func groupBead(g int) int {
	return firstGroupBead + (g-1)*(groupLength+1)
}

// builder appends pages in order, so keys stay contiguous from p_1.
type builder struct {
	pages []Page
}

func newBuilder(size int) *builder {
	return &builder{pages: make([]Page, 0, size)}
}

func (b *builder) add(p Page) {
	b.pages = append(b.pages, p)
}

// pray appends a prayer page.
func (b *builder) pray(title, subtitle string, bead int, stanzas ...Stanza) {
	b.add(Page{
		Type:     TypePrayer,
		Title:    title,
		Subtitle: subtitle,
		Prayer:   stanzas,
		Rosary:   bead,
	})
}

func (b *builder) done() Pages {
	return Pages{list: b.pages}
}

func ordinal(n int) string {
	return strconv.Itoa(n)
}

var (
	signOfTheCross = Stanza{Response: praySign}
	ourFather      = Stanza{Call: prayOurFatherV, Response: prayOurFatherR}
	hailMary       = Stanza{Call: prayHailMaryV, Response: prayHailMaryR}
	creed          = Stanza{Title: prayCreedT, Response: prayCreedR}
	doxology       = Stanza{Call: prayDoxologyV, Response: prayDoxologyR}
	fatimaPrayer   = Stanza{Title: prayFatimaT, Response: prayFatimaR}
)
