package session

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// flakySessions fails selected operations of an underlying repo.
type flakySessions struct {
	store.SessionRepo
	createErr error
	finishErr error
	deleteErr error
}

func (f *flakySessions) Create(ctx context.Context, s devotion.Session) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.SessionRepo.Create(ctx, s)
}

func (f *flakySessions) Finish(ctx context.Context, id int64, stop time.Time) error {
	if f.finishErr != nil {
		return f.finishErr
	}
	return f.SessionRepo.Finish(ctx, id, stop)
}

func (f *flakySessions) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.SessionRepo.Delete(ctx, id)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// thursday is a Luminous day. Stored start times load back in local time,
// so the fixture is local too.
var thursday = time.Date(2024, 5, 16, 12, 0, 0, 0, time.Local)

func newTestManager(t *testing.T, st *store.Store) (*Manager, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: thursday}
	return NewManager(st.SessionRepo(), st.SettingsRepo(), WithClock(clk)), clk
}

func setting(t *testing.T, st *store.Store, key string) string {
	t.Helper()
	v, _, err := st.SettingsRepo().Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func unfinished(t *testing.T, st *store.Store) int {
	t.Helper()
	all, err := st.SessionRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	n := 0
	for _, s := range all {
		if !s.Finished() {
			n++
		}
	}
	return n
}

func TestManager_SubmitStartsOnFirstPage(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	assert.Equal(t, PhaseIdle, m.Restore(ctx))
	m.Begin(ctx)
	require.Equal(t, PhaseIntending, m.Phase())

	s, err := m.Submit(ctx, "  for   my\tfamily ")
	require.NoError(t, err)
	assert.Equal(t, "for my family", s.Intention)
	assert.Equal(t, devotion.Rosary, s.Kind)
	assert.Positive(t, s.ID)

	assert.Equal(t, PhaseActive, m.Phase())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, devotion.RosaryPages, m.Pages().Len())
	assert.Equal(t, "1", setting(t, st, SettingIndex))
	assert.Equal(t, "1", setting(t, st, SettingSessionID))

	p, ok := m.Page()
	require.True(t, ok)
	assert.Equal(t, "for my family", p.Intention)
	assert.Equal(t, devotion.Luminous.NameKey(), p.Subtitle)
}

// recordingSettings logs the order of writes.
type recordingSettings struct {
	store.SettingsRepo
	writes []string
}

func (r *recordingSettings) Set(ctx context.Context, key, value string) error {
	r.writes = append(r.writes, key+"="+value)
	return r.SettingsRepo.Set(ctx, key, value)
}

func TestManager_SubmitWritesSessionIDBeforeIndex(t *testing.T) {
	st := openTestStore(t)
	settings := &recordingSettings{SettingsRepo: st.SettingsRepo()}
	m := NewManager(st.SessionRepo(), settings, WithClock(&fakeClock{now: thursday}))
	ctx := context.Background()

	m.Begin(ctx)
	settings.writes = nil
	s, err := m.Submit(ctx, "")
	require.NoError(t, err)

	id := strconv.FormatInt(s.ID, 10)
	assert.Equal(t, []string{
		SettingSessionID + "=" + id,
		SettingIndex + "=0",
		SettingIndex + "=1",
	}, settings.writes)
}

func TestManager_SubmitRequiresIntending(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)

	_, err := m.Submit(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrNotIntending))
}

func TestManager_SubmitFailureKeepsDialog(t *testing.T) {
	st := openTestStore(t)
	repo := &flakySessions{SessionRepo: st.SessionRepo(), createErr: errors.New("disk full")}
	m := NewManager(repo, st.SettingsRepo(), WithClock(&fakeClock{now: thursday}))
	ctx := context.Background()

	m.Begin(ctx)
	_, err := m.Submit(ctx, "x")
	require.Error(t, err)
	assert.Equal(t, PhaseIntending, m.Phase())
	_, ok := m.Session()
	assert.False(t, ok)

	repo.createErr = nil
	_, err = m.Submit(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, m.Phase())
}

func TestManager_CancelReturnsIdle(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Begin(ctx)
	m.Cancel()
	assert.Equal(t, PhaseIdle, m.Phase())
}

func TestManager_NextAndBack(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	assert.ErrorIs(t, m.Next(ctx), ErrNoActiveSession)

	m.Begin(ctx)
	_, err := m.Submit(ctx, "")
	require.NoError(t, err)

	assert.ErrorIs(t, m.Back(ctx), ErrFirstPage)
	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.Next(ctx))
	assert.Equal(t, 3, m.Index())
	assert.Equal(t, "3", setting(t, st, SettingIndex))

	require.NoError(t, m.Back(ctx))
	assert.Equal(t, 2, m.Index())
	assert.Equal(t, "2", setting(t, st, SettingIndex))
}

func TestManager_FinishOnLastPageIsImmediate(t *testing.T) {
	st := openTestStore(t)
	m, clk := newTestManager(t, st)
	ctx := context.Background()

	m.ToggleKind(ctx)
	m.Begin(ctx)
	s, err := m.Submit(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, devotion.DivineMercy, s.Kind)

	for m.Index() < devotion.ChapletPages {
		require.NoError(t, m.Next(ctx))
	}
	assert.ErrorIs(t, m.Next(ctx), ErrLastPage)

	clk.Advance(20 * time.Minute)
	c, err := m.RequestFinish(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, PhaseFinished, m.Phase())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "0", setting(t, st, SettingIndex))

	last, ok := m.LastFinished()
	require.True(t, ok)
	assert.Equal(t, 20*time.Minute, last.Duration())

	finished, err := st.SessionRepo().ListFinished(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, s.ID, finished[0].ID)
	assert.Equal(t, clk.Now().UnixMilli(), finished[0].Stop.UnixMilli())
}

func TestManager_EarlyFinishNeedsConfirmation(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Begin(ctx)
	_, err := m.Submit(ctx, "")
	require.NoError(t, err)
	require.NoError(t, m.Next(ctx))

	c, err := m.RequestFinish(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, PromptSure, c.Prompt)

	require.NoError(t, c.Resolve(ctx, false))
	assert.Equal(t, PhaseActive, m.Phase())
	assert.Equal(t, 2, m.Index())
	assert.ErrorIs(t, c.Resolve(ctx, true), ErrAlreadyResolved)
	assert.Equal(t, PhaseActive, m.Phase())

	c, err = m.RequestFinish(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Resolve(ctx, true))
	assert.Equal(t, PhaseFinished, m.Phase())
	_, ok := m.Session()
	assert.False(t, ok)
}

func TestManager_StaleConfirmation(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Begin(ctx)
	_, err := m.Submit(ctx, "")
	require.NoError(t, err)

	c, err := m.RequestFinish(ctx)
	require.NoError(t, err)

	// Starting over abandons the session the confirmation was for.
	m.Begin(ctx)
	_, err = m.Submit(ctx, "")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Resolve(ctx, true), ErrNoActiveSession)
	assert.Equal(t, PhaseActive, m.Phase())
}

func TestManager_FinishSurvivesStoreFailure(t *testing.T) {
	st := openTestStore(t)
	repo := &flakySessions{SessionRepo: st.SessionRepo()}
	m := NewManager(repo, st.SettingsRepo(), WithClock(&fakeClock{now: thursday}))
	ctx := context.Background()

	m.Begin(ctx)
	_, err := m.Submit(ctx, "")
	require.NoError(t, err)

	repo.finishErr = errors.New("locked")
	c, err := m.RequestFinish(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Resolve(ctx, true))
	assert.Equal(t, PhaseFinished, m.Phase())
}

func TestManager_BeginAbandonsActive(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Begin(ctx)
	first, err := m.Submit(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, unfinished(t, st))

	m.Begin(ctx)
	assert.Equal(t, PhaseIntending, m.Phase())
	assert.Equal(t, 0, unfinished(t, st))
	assert.Equal(t, "0", setting(t, st, SettingIndex))

	second, err := m.Submit(ctx, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, unfinished(t, st))
}

func TestManager_RestoreResumes(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Begin(ctx)
	s, err := m.Submit(ctx, "for peace")
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Next(ctx))
	}
	want, _ := m.Page()

	relaunched, _ := newTestManager(t, st)
	assert.Equal(t, PhaseActive, relaunched.Restore(ctx))
	assert.Equal(t, 5, relaunched.Index())
	assert.Equal(t, m.Pages(), relaunched.Pages())

	got, ok := relaunched.Page()
	require.True(t, ok)
	assert.Equal(t, want, got)

	resumed, ok := relaunched.Session()
	require.True(t, ok)
	assert.Equal(t, s.ID, resumed.ID)
	assert.Equal(t, "for peace", resumed.Intention)
}

func TestManager_RestoreDropsStaleUnfinished(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	stale, err := st.SessionRepo().Create(ctx, devotion.Session{Start: thursday})
	require.NoError(t, err)
	current, err := st.SessionRepo().Create(ctx, devotion.Session{Start: thursday.Add(time.Hour)})
	require.NoError(t, err)
	require.NoError(t, st.SettingsRepo().Set(ctx, SettingSessionID, strconv.FormatInt(current, 10)))
	require.NoError(t, st.SettingsRepo().Set(ctx, SettingIndex, "3"))

	m, _ := newTestManager(t, st)
	assert.Equal(t, PhaseActive, m.Restore(ctx))
	assert.Equal(t, 1, unfinished(t, st))

	s, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, current, s.ID)
	_, err = st.SessionRepo().Get(ctx, stale)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestManager_RestoreWithoutIndexAbandons(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.SessionRepo().Create(ctx, devotion.Session{Start: thursday})
	require.NoError(t, err)

	m, _ := newTestManager(t, st)
	assert.Equal(t, PhaseIdle, m.Restore(ctx))
	assert.Equal(t, 0, unfinished(t, st))
}

func TestManager_RestoreFinishedIsIdle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.SessionRepo().Create(ctx, devotion.Session{Start: thursday})
	require.NoError(t, err)
	require.NoError(t, st.SessionRepo().Finish(ctx, id, thursday.Add(time.Minute)))
	require.NoError(t, st.SettingsRepo().Set(ctx, SettingIndex, "5"))

	m, _ := newTestManager(t, st)
	assert.Equal(t, PhaseIdle, m.Restore(ctx))

	n, err := st.SessionRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestManager_RestoreClampsIndex(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.SessionRepo().Create(ctx, devotion.Session{Kind: devotion.DivineMercy, Start: thursday})
	require.NoError(t, err)
	require.NoError(t, st.SettingsRepo().Set(ctx, SettingSessionID, "1"))
	require.NoError(t, st.SettingsRepo().Set(ctx, SettingIndex, "500"))
	assert.Equal(t, int64(1), id)

	m, _ := newTestManager(t, st)
	assert.Equal(t, PhaseActive, m.Restore(ctx))
	assert.Equal(t, devotion.ChapletPages, m.Index())
}

func TestManager_ToggleKindPersists(t *testing.T) {
	st := openTestStore(t)
	m, _ := newTestManager(t, st)
	ctx := context.Background()

	m.Restore(ctx)
	assert.Equal(t, devotion.Rosary, m.Kind())
	assert.Equal(t, devotion.DivineMercy, m.ToggleKind(ctx))
	assert.Equal(t, "YES", setting(t, st, SettingDM))

	relaunched, _ := newTestManager(t, st)
	relaunched.Restore(ctx)
	assert.Equal(t, devotion.DivineMercy, relaunched.Kind())

	assert.Equal(t, devotion.Rosary, relaunched.ToggleKind(ctx))
	assert.Equal(t, "NO", setting(t, st, SettingDM))
}

func TestHistory(t *testing.T) {
	st := openTestStore(t)
	repo := &flakySessions{SessionRepo: st.SessionRepo()}
	h := NewHistory(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := repo.Create(ctx, devotion.Session{Start: thursday.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
		if i != 1 {
			require.NoError(t, repo.Finish(ctx, id, thursday.Add(time.Duration(i)*time.Hour+time.Minute)))
		}
	}

	list, err := h.ListFinished(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)

	repo.deleteErr = errors.New("busy")
	assert.False(t, h.Remove(ctx, list[0].ID))

	repo.deleteErr = nil
	removed := list[0].ID
	assert.True(t, h.Remove(ctx, removed))
	list, err = h.ListFinished(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.False(t, h.Remove(ctx, removed))
	assert.False(t, h.Remove(ctx, 999))
}

func TestHistory_RemoveOnEmptyStore(t *testing.T) {
	st := openTestStore(t)
	h := NewHistory(st.SessionRepo(), nil)
	assert.False(t, h.Remove(context.Background(), 999))
}
