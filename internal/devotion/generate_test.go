package devotion

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerate_Golden(t *testing.T) {
	tests := []struct {
		name    string
		session Session
	}{
		{
			name: "divine_mercy",
			session: Session{
				ID:        1,
				Kind:      DivineMercy,
				Start:     time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC),
				Intention: "for peace",
			},
		},
		{
			name: "rosary_luminous",
			session: Session{
				ID:        2,
				Kind:      Rosary,
				Start:     time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC),
				Intention: "for my family",
			},
		},
		{
			name: "rosary_sorrowful",
			session: Session{
				ID:    3,
				Kind:  Rosary,
				Start: time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	g := newGolden(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.AssertJson(t, tt.name, Generate(tt.session))
		})
	}
}

func TestGenerate_Lengths(t *testing.T) {
	start := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		at := start.AddDate(0, 0, i)
		assert.Equal(t, RosaryPages, Generate(Session{Kind: Rosary, Start: at}).Len(), at.Weekday().String())
		assert.Equal(t, ChapletPages, Generate(Session{Kind: DivineMercy, Start: at}).Len(), at.Weekday().String())
	}
}

func TestGenerate_Invariants(t *testing.T) {
	sessions := map[string]Session{
		"chaplet": {Kind: DivineMercy, Start: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), Intention: "x"},
		"rosary":  {Kind: Rosary, Start: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), Intention: "x"},
	}
	for name, s := range sessions {
		t.Run(name, func(t *testing.T) {
			pages := Generate(s)
			keys := pages.Keys()
			for i, k := range keys {
				assert.Equal(t, "p_"+strconv.Itoa(i+1), k)

				p, ok := pages.Get(k)
				require.True(t, ok)

				if i == len(keys)-1 {
					assert.Equal(t, NextFinish, p.AltNext, "last page finishes")
				} else {
					assert.NotEqual(t, NextFinish, p.AltNext, "%s must not finish", k)
				}
				if p.IsIntro() {
					assert.Zero(t, p.Rosary, "%s is an intro page", k)
				} else {
					assert.NotZero(t, p.Rosary, "%s has no bead", k)
					assert.NotEmpty(t, p.Prayer, "%s has no prayer", k)
				}
				if i == 0 {
					assert.Equal(t, "x", p.Intention)
				} else {
					assert.Empty(t, p.Intention, "%s carries the intention", k)
				}
			}
		})
	}
}

func TestGenerate_ChapletBeads(t *testing.T) {
	pages := Generate(Session{Kind: DivineMercy, Start: time.Unix(1700000000, 0)})

	bead := func(n int) int {
		t.Helper()
		p, ok := pages.At(n)
		require.True(t, ok)
		return p.Rosary
	}

	// Eternal Father pages of each decade.
	assert.Equal(t, 6, bead(10))
	assert.Equal(t, 18, bead(21))
	assert.Equal(t, 29, bead(32))
	assert.Equal(t, 40, bead(43))
	assert.Equal(t, 51, bead(54))

	// First decade skips bead 7.
	assert.Equal(t, 8, bead(11))
	assert.Equal(t, 17, bead(20))
	assert.Equal(t, 61, bead(64))

	p, _ := pages.At(65)
	assert.Len(t, p.Prayer, 3)
	assert.Equal(t, 7, p.Rosary)
}

func TestGenerate_RosaryStructure(t *testing.T) {
	// Thursday: Luminous.
	pages := Generate(Session{Kind: Rosary, Start: time.Date(2024, 5, 16, 7, 0, 0, 0, time.UTC)})

	for g := 1; g <= 5; g++ {
		introAt := 14 * g
		intro, ok := pages.At(introAt)
		require.True(t, ok)
		assert.Equal(t, TypeIntro, intro.Type)
		assert.Equal(t, SubtypeSmall, intro.Subtype)
		assert.Equal(t, Luminous.MysteryKey(g-1), intro.Subtitle)
		assert.Equal(t, strconv.Itoa(g)+".", intro.ExtraSub)
		assert.Equal(t, NextContinue, intro.AltNext)

		for n := 1; n <= 10; n++ {
			hm, _ := pages.At(introAt + 1 + n)
			assert.Equal(t, strconv.Itoa(n), hm.Subtitle)
			assert.Equal(t, Luminous.MysteryKey(g-1), hm.Title)
		}

		fatima, _ := pages.At(introAt + 13)
		want := groupBead(g) + 11
		if g == 5 {
			want = 7
		}
		assert.Equal(t, want, fatima.Rosary, "group %d closing bead", g)
	}

	litany, _ := pages.At(86)
	assert.Equal(t, KeyLitany, litany.Title)
	assert.Len(t, litany.Prayer, 4+4+50+3)
}

func TestGenerate_MissingStartFallsBackToEpoch(t *testing.T) {
	pages := Generate(Session{Kind: Rosary})
	first, ok := pages.At(1)
	require.True(t, ok)

	want := SelectMysterySet(time.UnixMilli(0))
	assert.Equal(t, want.NameKey(), first.Subtitle)
	assert.Zero(t, first.Timestamp)
}

func TestGenerate_Deterministic(t *testing.T) {
	s := Session{Kind: Rosary, Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Intention: "a"}
	a, err := json.Marshal(Generate(s))
	require.NoError(t, err)
	b, err := json.Marshal(Generate(s))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPagesLookup(t *testing.T) {
	pages := Generate(Session{Kind: DivineMercy})

	_, ok := pages.Get("p_0")
	assert.False(t, ok)
	_, ok = pages.Get("p_68")
	assert.False(t, ok)
	_, ok = pages.Get("page_1")
	assert.False(t, ok)

	last, ok := pages.Last()
	require.True(t, ok)
	assert.True(t, last.IsFinish())
	assert.Equal(t, KeyConcluding, last.Title)

	m := pages.Map()
	assert.Len(t, m, ChapletPages)
	assert.Equal(t, last, m["p_67"])

	n, ok := ParseKey(Key(42))
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestKind(t *testing.T) {
	k, err := ParseKind("dm")
	require.NoError(t, err)
	assert.Equal(t, DivineMercy, k)
	assert.True(t, k.IsDM())

	k, err = ParseKind("Rosary")
	require.NoError(t, err)
	assert.Equal(t, Rosary, k)

	_, err = ParseKind("novena")
	assert.Error(t, err)

	assert.Equal(t, DivineMercy, KindFromDM(true))
	assert.Equal(t, KeyRosary, Rosary.TitleKey())
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	stop := start.Add(17 * time.Minute)

	s := Session{Start: start}
	assert.False(t, s.Finished())
	assert.Zero(t, s.Duration())

	s.Stop = &stop
	assert.True(t, s.Finished())
	assert.Equal(t, 17*time.Minute, s.Duration())

	s.Kind = DivineMercy
	assert.Equal(t, KeyDivineMercy, s.TitleKey())
	s.Kind = Rosary
	assert.Equal(t, Joyful.NameKey(), s.TitleKey())
}
