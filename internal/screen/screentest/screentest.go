// Package screentest builds screen dependencies backed by a temporary
// store for screen tests.
package screentest

import (
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rosary/internal/i18n"
	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/store"
)

// Clock is a settable session.Clock.
type Clock struct {
	Time time.Time
}

func (c *Clock) Now() time.Time { return c.Time }

// Env is a test environment for screens.
type Env struct {
	Deps  *screen.Deps
	Store *store.Store
	Clock *Clock
	// Notes receives everything published on Deps.Notify.
	Notes <-chan notify.Notification
}

// New opens a temporary store and wires a manager, history and bus to it.
// The clock starts on Thursday 2024-05-16 at noon local time.
func New(t *testing.T) *Env {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "screen.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clk := &Clock{Time: time.Date(2024, 5, 16, 12, 0, 0, 0, time.Local)}
	bus := notify.NewBus(time.Second)
	notes, cancel := bus.Subscribe(16)
	t.Cleanup(cancel)

	deps := &screen.Deps{
		Manager: session.NewManager(st.SessionRepo(), st.SettingsRepo(), session.WithClock(clk)),
		History: session.NewHistory(st.SessionRepo(), nil),
		Bundle:  i18n.Default(),
		Notify:  bus,
		Brand:   "Rosary",
		AppURL:  "https://example.com/rosary",
		Version: "v1.2.0",
		Refresh: time.Second,
	}
	deps.SetLocale(i18n.BaseLocale)
	return &Env{Deps: deps, Store: st, Clock: clk, Notes: notes}
}

// Note returns the next published notification, failing the test when
// none is pending.
func (e *Env) Note(t *testing.T) notify.Notification {
	t.Helper()
	select {
	case n := <-e.Notes:
		return n
	default:
		t.Fatal("expected a notification")
		return notify.Notification{}
	}
}

// NoNote fails the test when a notification is pending.
func (e *Env) NoNote(t *testing.T) {
	t.Helper()
	select {
	case n := <-e.Notes:
		t.Fatalf("unexpected notification %q", n.Message)
	default:
	}
}

// Key builds a key press for a named key or a single character.
func Key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// Type feeds each rune of s to update as a key press.
func Type(s string, update func(tea.Msg)) {
	for _, r := range s {
		update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// Run executes cmd and returns its message, expanding batches one level.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	}
	return []tea.Msg{msg}
}
