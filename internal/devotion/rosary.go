package devotion

import "fmt"

const (
	openingHailMarys = 3 // for faith, hope and charity

	// After the fifth decade the bead cursor returns to the centre medal.
	rosaryReturnBead = 7
)

var (
	comeHolySpirit = Stanza{Call: "PRAY.COME_HOLY_V", Response: "PRAY.COME_HOLY_R"}
	sendForth      = Stanza{Call: "PRAY.SEND_FORTH_V", Response: "PRAY.SEND_FORTH_R"}
	thouOLord      = Stanza{Call: "PRAY.THOU_O_V", Response: "PRAY.THOU_O_R"}
	inclineUnto    = Stanza{Call: "PRAY.INCLINE_UNTO_V", Response: "PRAY.INCLINE_UNTO_R"}
	hailHolyQueen  = Stanza{Title: "PRAY.HAIL_HOLY_T", Response: "PRAY.HAIL_HOLY_R"}
	prayForUs      = Stanza{Call: "PRAY.PRAY_FOR_V", Response: "PRAY.PRAY_FOR_R"}
)

func generateRosary(s Session) Pages {
	b := newBuilder(RosaryPages)
	set := SelectMysterySet(s.StartOrEpoch())
	title := set.NameKey()
	ts := s.StartMillis()

	b.add(Page{
		Type:      TypeIntro,
		Subtype:   SubtypeBig,
		Title:     KeyRosary,
		Subtitle:  title,
		Picture:   set.Picture(),
		Timestamp: ts,
		Intention: s.Intention,
		AltNext:   NextBegin,
	})

	// Crucifix and the opening prayers on the first large bead.
	b.pray(title, "", 1, signOfTheCross)
	b.pray(title, "", 2, comeHolySpirit, sendForth)
	b.pray(title, "", 2, Stanza{Title: prayLetUsPray, Response: "PRAY.LUP1"})
	b.pray(title, "", 2, thouOLord, inclineUnto)
	b.pray(title, "", 2, doxology)
	b.pray(title, "", 2, creed)
	b.pray(title, "", 2, ourFather)

	bead := 2
	for n := 1; n <= openingHailMarys; n++ {
		bead++
		b.pray(title, ordinal(n), bead, hailMary)
	}
	bead++
	b.pray(title, "", bead, doxology)
	b.pray(title, "", bead, fatimaPrayer)

	for g := 1; g <= groups; g++ {
		offset := g - 1
		mystery := set.MysteryKey(offset)
		b.add(Page{
			Type:        TypeIntro,
			Subtype:     SubtypeSmall,
			Title:       title,
			Subtitle:    mystery,
			Description: set.DescriptionKey(offset),
			Picture:     set.MysteryPicture(offset),
			Timestamp:   ts,
			AltNext:     NextContinue,
			ExtraSub:    fmt.Sprintf("%d.", g),
		})

		bead = groupBead(g)
		b.pray(mystery, "", bead, ourFather)
		for n := 1; n <= groupLength; n++ {
			bead++
			b.pray(mystery, ordinal(n), bead, hailMary)
		}

		// The closing prayers sit on the next decade's large bead.
		bead++
		if g == groups {
			bead = rosaryReturnBead
		}
		b.pray(mystery, "", bead, doxology)
		b.pray(mystery, "", bead, fatimaPrayer)
	}

	b.pray(title, "", rosaryReturnBead, hailHolyQueen, prayForUs)
	b.pray(title, "", rosaryReturnBead, hailHolyQueenVersicles()...)
	b.pray(KeyLitany, "", rosaryReturnBead, litanyOfLoreto()...)
	b.pray(KeyLitany, "", rosaryReturnBead, prayForUs, Stanza{Title: prayLetUsPray, Response: litanyPrefix + "LUP"})

	b.add(Page{
		Type:    TypePrayer,
		Title:   KeyConcluding,
		Prayer:  []Stanza{signOfTheCross},
		AltNext: NextFinish,
		Rosary:  1,
	})
	return b.done()
}

// hailHolyQueenVersicles returns the prayer after the Hail Holy Queen and
// its invocations. The first two ask for mercy, the rest for intercession.
func hailHolyQueenVersicles() []Stanza {
	out := []Stanza{{Title: prayLetUsPray, Response: "PRAY.LUP2"}}
	for n := 1; n <= hailHolyQueenInvocs; n++ {
		r := prayPrayForUs
		if n <= 2 {
			r = prayHaveMercy
		}
		out = append(out, Stanza{Call: fmt.Sprintf("PRAY.HH_SUBV_%d", n), Response: r})
	}
	return out
}

func litanyOfLoreto() []Stanza {
	lit := func(k string) string { return litanyPrefix + k }
	out := []Stanza{
		{Call: lit("V1"), Response: lit("V1")},
		{Call: lit("V2"), Response: lit("V2")},
		{Call: lit("V1"), Response: lit("V1")},
		{Call: lit("V3"), Response: lit("V4")},
	}
	for n := 5; n <= 8; n++ {
		out = append(out, Stanza{Call: lit(fmt.Sprintf("V%d", n)), Response: prayHaveMercy})
	}
	for n := 1; n <= litanyInvocations; n++ {
		out = append(out, Stanza{Call: lit(fmt.Sprintf("A%d", n)), Response: prayPrayForUs})
	}
	return append(out,
		Stanza{Call: lit("LAMB"), Response: lit("SPARE")},
		Stanza{Call: lit("LAMB"), Response: lit("GRACE")},
		Stanza{Call: lit("LAMB"), Response: prayHaveMercy},
	)
}
