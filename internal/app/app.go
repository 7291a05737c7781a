package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/screens/home"
	"github.com/abhisek/rosary/internal/screens/prayer"
	"github.com/abhisek/rosary/internal/screens/welcome"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/ui/components"
	"github.com/abhisek/rosary/internal/ui/layout"
)

// noteMsg delivers a notification from the bus.
type noteMsg notify.Notification

// dismissMsg hides the toast it was scheduled for, if still shown.
type dismissMsg struct {
	id uuid.UUID
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *screen.Deps
	notes  <-chan notify.Notification
	toast  *notify.Notification
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack: the welcome screen when due,
// otherwise home, with the prayer screen on top when a session resumes.
func newAppModel(deps *screen.Deps, notes <-chan notify.Notification) AppModel {
	homeFactory := func() screen.Screen { return home.New(deps) }

	var r *router.Router
	var start tea.Cmd
	switch {
	case deps.Manager.Preferences().ShouldWelcome(context.Background(), deps.Version):
		r = router.New(welcome.New(deps, homeFactory))
		start = r.Active().Init()
	case deps.Manager.Phase() == session.PhaseActive:
		r = router.New(homeFactory())
		start = r.Push(prayer.New(deps))
	default:
		r = router.New(homeFactory())
		start = r.Active().Init()
	}

	return AppModel{
		router: r,
		deps:   deps,
		notes:  notes,
		start:  start,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.start, waitForNote(m.notes))
}

// waitForNote blocks on the bus subscription. It returns nil once the
// subscription is closed.
func waitForNote(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noteMsg(n)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case noteMsg:
		n := notify.Notification(msg)
		m.toast = &n
		next := waitForNote(m.notes)
		if n.Sticky {
			return m, next
		}
		return m, tea.Batch(next, tea.Tick(n.Duration, func(time.Time) tea.Msg {
			return dismissMsg{id: n.ID}
		}))

	case dismissMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.toast != nil && m.toast.Sticky {
			m.toast = nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render lays out header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.deps.T("TOO_SMALL",
			"width", strconv.Itoa(layout.MinWidth),
			"height", strconv.Itoa(layout.MinHeight)), m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	kind := m.deps.Manager.Kind()
	header := layout.RenderHeader(m.deps.Brand, title, m.deps.T(kind.TitleKey()), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: m.deps.T("BACK")},
			{Key: "Ctrl+C", Description: m.deps.T("QUIT")},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: m.deps.T("QUIT")},
		}
	}

	toast := ""
	if m.toast != nil {
		toast = components.Toast(*m.toast)
	}
	footer := layout.RenderFooter(footerHints, toast, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program. The caller restores the manager
// before calling Run.
func Run(deps *screen.Deps) error {
	notes, cancel := deps.Notify.Subscribe(8)
	defer cancel()

	p := tea.NewProgram(newAppModel(deps, notes))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
