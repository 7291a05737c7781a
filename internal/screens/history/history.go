package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/ui/components"
	"github.com/abhisek/rosary/internal/ui/layout"
	"github.com/abhisek/rosary/internal/ui/theme"
)

// listLimit caps how many sessions the screen loads.
const listLimit = 200

type historyLoadedMsg struct {
	Sessions []devotion.Session
	Err      error
}

// HistoryScreen lists finished sessions, most recent first.
type HistoryScreen struct {
	deps     *screen.Deps
	sessions []devotion.Session
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps *screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int64]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.deps.History.ListFinished(context.Background(), listLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.deps.T("HISTORY")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.deps.T("INTENTION")},
		{Key: "d", Description: s.deps.T("DELETE")},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: s.deps.T("BACK")},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.sessions) {
				id := s.sessions[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		case "d", "delete":
			s.deleteSelected()
		}
	}
	return s, nil
}

// deleteSelected removes the highlighted session. The row stays when the
// store refuses.
func (s *HistoryScreen) deleteSelected() {
	if s.selected >= len(s.sessions) {
		return
	}
	sess := s.sessions[s.selected]
	if !s.deps.History.Remove(context.Background(), sess.ID) {
		s.deps.Notify.Error(s.deps.T("SESS_NDEL"))
		return
	}
	s.deps.Notify.Success(s.deps.T("SESS_DEL"))
	s.sessions = append(s.sessions[:s.selected], s.sessions[s.selected+1:]...)
	delete(s.expanded, sess.ID)
	if s.selected >= len(s.sessions) && s.selected > 0 {
		s.selected--
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.deps.T("LOADING"))
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + s.deps.T("NO_HISTORY"))
	}

	now := s.deps.Manager.Now()
	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		timer := s.deps.T("TIMER",
			"duration", components.FormatDuration(sess.Duration()),
			"timestamp", humanize.RelTime(sess.Start, now, "ago", "from now"))
		line := fmt.Sprintf("%s%-24s  %s", prefix, s.deps.T(sess.TitleKey()), timer)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[sess.ID] {
			detail := "    " + sess.Start.Format("Mon Jan 2, 2006 15:04")
			if sess.Intention != "" {
				detail += "  " + s.deps.T("INTENTION_2", "intention", sess.Intention)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
