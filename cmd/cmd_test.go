package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROSARY_DB", "")
	t.Setenv("ROSARY_LOCALE", "")
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPagesJSON(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{"divine-mercy", devotion.ChapletPages},
		{"rosary", devotion.RosaryPages},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out, err := execute(t, "pages", "--kind", tt.kind, "--date", "2024-05-16", "--intention", "for peace", "--json")
			require.NoError(t, err)

			var pages map[string]devotion.Page
			require.NoError(t, json.Unmarshal([]byte(out), &pages))
			assert.Len(t, pages, tt.want)

			first := pages["p_1"]
			assert.Equal(t, devotion.TypeIntro, first.Type)
			assert.Equal(t, "for peace", first.Intention)
			start := time.Date(2024, 5, 16, 12, 0, 0, 0, time.Local)
			assert.Equal(t, start.UnixMilli(), first.Timestamp)
			assert.Equal(t, devotion.NextFinish, pages[devotion.Key(tt.want)].AltNext)
		})
	}
}

func TestPagesJSONIsOrdered(t *testing.T) {
	out, err := execute(t, "pages", "--kind", "dm", "--json")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, `"p_2"`), strings.Index(out, `"p_10"`))
}

func TestPagesText(t *testing.T) {
	out, err := execute(t, "pages", "--kind", "dm", "--locale", "en")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[2], "p_1")
	assert.Contains(t, lines[2], "Divine Mercy: Chaplet of the Divine Mercy")
	assert.Contains(t, lines[2], "Begin")
	assert.Contains(t, out, "Finish")
	assert.Equal(t, "67 pages", lines[len(lines)-1])
}

func TestPagesRejectsBadInput(t *testing.T) {
	_, err := execute(t, "pages", "--kind", "novena")
	assert.ErrorContains(t, err, "unknown devotion")

	_, err = execute(t, "pages", "--date", "16/05/2024")
	assert.ErrorContains(t, err, "invalid date")
}

func TestMystery(t *testing.T) {
	out, err := execute(t, "mystery", "--date", "2024-05-16", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Thursday 2024-05-16: Luminous Mysteries")
	assert.Contains(t, out, "1. The Baptism of the Lord")
	assert.Contains(t, out, "2. The Wedding at Cana")
	assert.Contains(t, out, "\n5. ")
}

func TestMysteryLatin(t *testing.T) {
	out, err := execute(t, "mystery", "--date", "2024-05-16", "--locale", "la")
	require.NoError(t, err)
	assert.Contains(t, out, "Mysteria Luminosa")
}

func seedHistory(t *testing.T, dbPath string) int64 {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	start := time.Date(2024, 5, 16, 10, 0, 0, 0, time.Local)
	id, err := st.SessionRepo().Create(ctx, devotion.Session{Kind: devotion.Rosary, Start: start, Intention: "for my family"})
	require.NoError(t, err)
	require.NoError(t, st.SessionRepo().Finish(ctx, id, start.Add(15*time.Minute)))

	// Unfinished sessions are not listed.
	_, err = st.SessionRepo().Create(ctx, devotion.Session{Kind: devotion.DivineMercy, Start: start.Add(time.Hour)})
	require.NoError(t, err)
	return id
}

func TestHistoryList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rosary.db")
	id := seedHistory(t, dbPath)

	out, err := execute(t, "history", "--db", dbPath, "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Luminous Mysteries")
	assert.Contains(t, out, "15:00")
	assert.Contains(t, out, "for my family")
	assert.Contains(t, out, "2024-05-16 10:00")
	assert.NotContains(t, out, "Divine Mercy")
	assert.Equal(t, int64(1), id)
}

func TestHistoryEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rosary.db")
	out, err := execute(t, "history", "--db", dbPath, "--locale", "en")
	require.NoError(t, err)
	assert.Equal(t, "No finished prayers yet.\n", out)
}

func TestHistoryDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rosary.db")
	id := seedHistory(t, dbPath)

	out, err := execute(t, "history", "delete", "1", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "Deleted session 1.\n", out)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.SessionRepo().Get(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHistoryDeleteErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rosary.db")

	_, err := execute(t, "history", "delete", "99", "--db", dbPath)
	assert.ErrorContains(t, err, "session 99 not found")

	_, err = execute(t, "history", "delete", "abc", "--db", dbPath)
	assert.ErrorContains(t, err, "invalid ID")

	_, err = execute(t, "history", "delete", "--db", dbPath)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rosary (devel)\n", out)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := parseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseDate("2024-05-18", now)
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, got.Weekday())
	assert.Equal(t, 12, got.Hour())
}
