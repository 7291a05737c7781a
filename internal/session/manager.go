package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/store"
)

// Manager drives one devotion session at a time through
// Idle → Intending → Active → Finished, persisting progress so an
// interrupted session resumes on the same page.
//
// Writes other than session creation are best effort: a failed write is
// logged and the in-memory transition still happens.
type Manager struct {
	mu sync.Mutex

	sessions store.SessionRepo
	settings store.SettingsRepo
	prefs    *Preferences
	clock    Clock
	logger   *slog.Logger

	phase   Phase
	kind    devotion.Kind
	current *devotion.Session
	pages   devotion.Pages
	index   int

	// last is the most recently finished session.
	last *devotion.Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the wall clock.
func WithClock(c Clock) ManagerOption {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an idle manager.
func NewManager(sessions store.SessionRepo, settings store.SettingsRepo, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: sessions,
		settings: settings,
		clock:    SystemClock{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.prefs = NewPreferences(settings, m.logger)
	return m
}

// Preferences returns the settings accessor shared with the manager.
func (m *Manager) Preferences() *Preferences {
	return m.prefs
}

// Restore loads the preferred devotion and resumes the persisted session
// when it is still unfinished and past its first page. Otherwise every
// unfinished session is discarded and the manager is idle.
func (m *Manager) Restore(ctx context.Context) Phase {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kind = m.prefs.Kind(ctx)

	s, ok := m.resumable(ctx)
	if !ok {
		m.abandonLocked(ctx)
		m.phase = PhaseIdle
		return m.phase
	}

	idx, _ := m.readIndex(ctx)
	pages := devotion.Generate(s)
	if idx < 1 {
		m.abandonLocked(ctx)
		m.phase = PhaseIdle
		return m.phase
	}
	if idx > pages.Len() {
		idx = pages.Len()
	}

	m.dropOthersLocked(ctx, s.ID)
	m.current = &s
	m.pages = pages
	m.index = idx
	m.phase = PhaseActive
	m.logger.Info("session restored", "session_id", s.ID, "index", idx)
	return m.phase
}

// resumable finds the unfinished session named by the session_id setting,
// falling back to the most recent session.
func (m *Manager) resumable(ctx context.Context) (devotion.Session, bool) {
	if v, ok := m.prefs.get(ctx, SettingSessionID); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			s, err := m.sessions.Get(ctx, id)
			switch {
			case err == nil:
				return s, !s.Finished()
			case !errors.Is(err, store.ErrNotFound):
				m.logger.Warn("load session failed", "session_id", id, "error", err)
				return devotion.Session{}, false
			}
		}
	}
	latest, err := m.sessions.List(ctx, store.QueryOpts{Limit: 1})
	if err != nil {
		m.logger.Warn("load latest session failed", "error", err)
		return devotion.Session{}, false
	}
	if len(latest) == 0 || latest[0].Finished() {
		return devotion.Session{}, false
	}
	return latest[0], true
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Kind returns the devotion used for the next session.
func (m *Manager) Kind() devotion.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kind
}

// ToggleKind switches the preferred devotion and persists it. A session
// already in progress keeps its own devotion.
func (m *Manager) ToggleKind(ctx context.Context) devotion.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.kind == devotion.DivineMercy {
		m.kind = devotion.Rosary
	} else {
		m.kind = devotion.DivineMercy
	}
	m.prefs.SetKind(ctx, m.kind)
	return m.kind
}

// Begin discards any unfinished session and opens the intention dialog.
func (m *Manager) Begin(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseIntending {
		return
	}
	m.abandonLocked(ctx)
	m.phase = PhaseIntending
}

// Cancel closes the intention dialog without starting a session.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseIntending {
		m.phase = PhaseIdle
	}
}

// Submit saves a new session with the given intention and moves to its
// first page. When the session cannot be saved the dialog stays open and
// the error is returned.
func (m *Manager) Submit(ctx context.Context, intention string) (devotion.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseIntending {
		return devotion.Session{}, ErrNotIntending
	}

	s := devotion.Session{
		Kind:      m.kind,
		Start:     m.clock.Now(),
		Intention: SanitizeIntention(intention),
	}
	id, err := m.sessions.Create(ctx, s)
	if err != nil {
		m.logger.Error("create session failed", "error", err)
		return devotion.Session{}, fmt.Errorf("start session: %w", err)
	}
	s.ID = id

	m.current = &s
	m.pages = devotion.Generate(s)
	m.index = 0
	m.phase = PhaseActive
	m.prefs.set(ctx, SettingSessionID, strconv.FormatInt(id, 10))
	m.writeIndex(ctx)
	m.logger.Info("session started", "session_id", id, "kind", s.Kind.String())

	m.index = 1
	m.writeIndex(ctx)
	return s, nil
}

// Next advances to the following page.
func (m *Manager) Next(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseActive {
		return ErrNoActiveSession
	}
	if m.index >= m.pages.Len() {
		return ErrLastPage
	}
	m.index++
	m.writeIndex(ctx)
	return nil
}

// Back returns to the previous page.
func (m *Manager) Back(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseActive {
		return ErrNoActiveSession
	}
	if m.index <= 1 {
		return ErrFirstPage
	}
	m.index--
	m.writeIndex(ctx)
	return nil
}

// RequestFinish completes the session. On the final page it finishes at
// once and returns nil. Anywhere else it returns a Confirmation that
// finishes when accepted.
func (m *Manager) RequestFinish(ctx context.Context) (*Confirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseActive || m.current == nil {
		return nil, ErrNoActiveSession
	}

	if p, ok := m.pages.At(m.index); ok && p.IsFinish() {
		m.finishLocked(ctx)
		return nil, nil
	}

	id := m.current.ID
	return NewConfirmation(PromptSure, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.phase != PhaseActive || m.current == nil || m.current.ID != id {
			return ErrNoActiveSession
		}
		m.finishLocked(ctx)
		return nil
	}), nil
}

func (m *Manager) finishLocked(ctx context.Context) {
	stop := m.clock.Now()
	s := *m.current
	s.Stop = &stop

	if err := m.sessions.Finish(ctx, s.ID, stop); err != nil {
		m.logger.Warn("finish session failed", "session_id", s.ID, "error", err)
	}
	if _, err := m.sessions.DeleteUnfinished(ctx); err != nil {
		m.logger.Warn("clear unfinished sessions failed", "error", err)
	}

	m.index = 0
	m.writeIndex(ctx)
	m.current = nil
	m.pages = devotion.Pages{}
	m.last = &s
	m.phase = PhaseFinished
	m.logger.Info("session finished", "session_id", s.ID, "duration", s.Duration().String())
}

// abandonLocked deletes unfinished sessions and drops the in-memory one.
func (m *Manager) abandonLocked(ctx context.Context) {
	n, err := m.sessions.DeleteUnfinished(ctx)
	if err != nil {
		m.logger.Warn("clear unfinished sessions failed", "error", err)
	} else if n > 0 {
		m.logger.Info("abandoned unfinished sessions", "count", n)
	}
	wasActive := m.current != nil
	m.current = nil
	m.pages = devotion.Pages{}
	if m.index != 0 || wasActive {
		m.index = 0
		m.writeIndex(ctx)
	}
	if wasActive {
		m.phase = PhaseAbandoned
	}
}

// dropOthersLocked deletes every unfinished session except keep, leaving at
// most one unfinished row. Failures are logged.
func (m *Manager) dropOthersLocked(ctx context.Context, keep int64) {
	all, err := m.sessions.List(ctx, store.QueryOpts{})
	if err != nil {
		m.logger.Warn("load sessions failed", "error", err)
		return
	}
	for _, s := range all {
		if s.Finished() || s.ID == keep {
			continue
		}
		if err := m.sessions.Delete(ctx, s.ID); err != nil {
			m.logger.Warn("delete stale session failed", "session_id", s.ID, "error", err)
			continue
		}
		m.logger.Info("dropped stale unfinished session", "session_id", s.ID)
	}
}

// Session returns the session in progress.
func (m *Manager) Session() (devotion.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return devotion.Session{}, false
	}
	return *m.current, true
}

// LastFinished returns the most recently finished session.
func (m *Manager) LastFinished() (devotion.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return devotion.Session{}, false
	}
	return *m.last, true
}

// Index returns the 1-based page position, or 0 with no active session.
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Pages returns the page sequence of the active session.
func (m *Manager) Pages() devotion.Pages {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pages
}

// Page returns the current page.
func (m *Manager) Page() (devotion.Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseActive {
		return devotion.Page{}, false
	}
	return m.pages.At(m.index)
}

func (m *Manager) readIndex(ctx context.Context) (int, bool) {
	v, ok := m.prefs.get(ctx, SettingIndex)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		m.logger.Warn("invalid stored index", "value", v)
		return 0, false
	}
	return n, true
}

func (m *Manager) writeIndex(ctx context.Context) {
	m.prefs.set(ctx, SettingIndex, strconv.Itoa(m.index))
}
