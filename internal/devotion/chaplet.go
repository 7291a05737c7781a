package devotion

const (
	openingInvocations = 3 // "for the sake" invocations before the first decade
	holyGodRepetitions = 3

	// The chaplet's first decade announces the Eternal Father on bead 6,
	// one short of its large bead.
	chapletFirstFatherBead = 6
)

var (
	eternalFather = Stanza{Response: prayEternalFatherR}
	forTheSake    = Stanza{Call: prayForTheV, Response: prayForTheR}
	holyGod       = Stanza{Response: prayHolyGodR}
)

func generateChaplet(s Session) Pages {
	b := newBuilder(ChapletPages)
	title := KeyDivineMercy

	b.add(Page{
		Type:      TypeIntro,
		Subtype:   SubtypeBig,
		Title:     title,
		Subtitle:  KeyDivineMercyFull,
		Picture:   PictureDivineMercy,
		Timestamp: s.StartMillis(),
		Intention: s.Intention,
		AltNext:   NextBegin,
	})

	// Crucifix.
	b.pray(title, "", 1, signOfTheCross)
	b.pray(title, "", 1, ourFather)
	b.pray(title, "", 1, hailMary)
	b.pray(title, "", 1, creed)

	bead := 2
	b.pray(title, "", bead, eternalFather)
	for n := 1; n <= openingInvocations; n++ {
		bead++
		b.pray(title, ordinal(n), bead, forTheSake)
	}

	for g := 1; g <= groups; g++ {
		bead = groupBead(g)
		fatherBead := bead
		if g == 1 {
			fatherBead = chapletFirstFatherBead
		}
		b.pray(title, "", fatherBead, eternalFather)
		for n := 1; n <= groupLength; n++ {
			bead++
			b.pray(title, ordinal(n), bead, forTheSake)
		}
	}

	closingBead := firstGroupBead
	trisagion := make([]Stanza, holyGodRepetitions)
	for i := range trisagion {
		trisagion[i] = holyGod
	}
	b.pray(title, "", closingBead, trisagion...)
	b.pray(title, "", closingBead, Stanza{Title: prayLetUsPray, Response: "PRAY.LUP3"})

	b.add(Page{
		Type:    TypePrayer,
		Title:   KeyConcluding,
		Prayer:  []Stanza{signOfTheCross},
		AltNext: NextFinish,
		Rosary:  1,
	})
	return b.done()
}
