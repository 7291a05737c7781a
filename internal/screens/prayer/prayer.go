package prayer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/ui/components"
	"github.com/abhisek/rosary/internal/ui/layout"
	"github.com/abhisek/rosary/internal/ui/theme"
)

// tickMsg redraws the elapsed time. gen ties a tick to the screen instance
// that scheduled it, so a reopened screen does not inherit a second timer.
type tickMsg struct {
	gen uint64
}

var generations atomic.Uint64

// PrayerScreen walks the active session one page at a time.
type PrayerScreen struct {
	deps    *screen.Deps
	gen     uint64
	offset  int
	maxOff  int
	pending *session.Confirmation
	confirm components.Confirm
}

var _ screen.Screen = (*PrayerScreen)(nil)
var _ screen.KeyHintProvider = (*PrayerScreen)(nil)
var _ screen.EscapeHandler = (*PrayerScreen)(nil)

// New creates a prayer screen for the manager's active session.
func New(deps *screen.Deps) *PrayerScreen {
	return &PrayerScreen{deps: deps, gen: generations.Add(1)}
}

func (s *PrayerScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *PrayerScreen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.deps.Refresh, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *PrayerScreen) Title() string {
	sess, ok := s.deps.Manager.Session()
	if !ok {
		return ""
	}
	return s.deps.T(sess.TitleKey())
}

// HandlesEscape keeps esc inside an open confirmation dialog.
func (s *PrayerScreen) HandlesEscape() bool {
	return s.pending != nil
}

func (s *PrayerScreen) KeyHints() []layout.KeyHint {
	if s.pending != nil {
		return []layout.KeyHint{
			{Key: "y", Description: s.deps.T("YES")},
			{Key: "n", Description: s.deps.T("NO")},
		}
	}
	return []layout.KeyHint{
		{Key: "←", Description: s.deps.T("BACK")},
		{Key: "→", Description: s.nextLabel()},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "f", Description: s.deps.T("FINISH")},
		{Key: "Esc", Description: s.deps.T("QUIT")},
	}
}

func (s *PrayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != s.gen || s.deps.Manager.Phase() != session.PhaseActive {
			return s, nil
		}
		return s, s.tick()

	case components.ConfirmResultMsg:
		return s, s.resolve(ctx, msg.Yes)

	case tea.KeyMsg:
		if s.pending != nil {
			var cmd tea.Cmd
			s.confirm, cmd = s.confirm.Update(msg)
			return s, cmd
		}
		switch msg.String() {
		case "right", "l", "enter", "space":
			if page, ok := s.deps.Manager.Page(); ok && page.IsFinish() {
				return s, s.requestFinish(ctx)
			}
			if err := s.deps.Manager.Next(ctx); err == nil {
				s.offset = 0
			}
		case "left", "h":
			if err := s.deps.Manager.Back(ctx); err == nil {
				s.offset = 0
			}
		case "f":
			return s, s.requestFinish(ctx)
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < s.maxOff {
				s.offset++
			}
		}
	}
	return s, nil
}

// requestFinish finishes at once on the last page and otherwise opens the
// confirmation dialog.
func (s *PrayerScreen) requestFinish(ctx context.Context) tea.Cmd {
	c, err := s.deps.Manager.RequestFinish(ctx)
	if err != nil {
		return nil
	}
	if c == nil {
		return s.finished()
	}
	s.pending = c
	s.confirm = components.NewConfirm(s.deps.T("CONFIRMATION"), s.deps.T(c.Prompt), s.deps.T("YES"), s.deps.T("NO"))
	return nil
}

func (s *PrayerScreen) resolve(ctx context.Context, yes bool) tea.Cmd {
	c := s.pending
	s.pending = nil
	if c == nil {
		return nil
	}
	err := c.Resolve(ctx, yes)
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		return func() tea.Msg { return router.PopScreenMsg{} }
	case err != nil, !yes:
		return nil
	}
	return s.finished()
}

func (s *PrayerScreen) finished() tea.Cmd {
	s.deps.Notify.Success(s.deps.T("CONGRATS"))
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *PrayerScreen) nextLabel() string {
	if page, ok := s.deps.Manager.Page(); ok && page.AltNext != "" {
		return s.deps.T(page.AltNext)
	}
	return s.deps.T("NEXT")
}

func (s *PrayerScreen) View(width, height int) string {
	page, ok := s.deps.Manager.Page()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(s.deps.T("LOADING")))
	}
	if s.pending != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View(width))
	}

	textWidth := width - 8
	if textWidth > 72 {
		textWidth = 72
	}
	if textWidth < 20 {
		textWidth = 20
	}

	var body []string
	if page.IsIntro() {
		body = s.renderIntro(page, textWidth)
	} else {
		body = s.renderPrayer(page, textWidth)
	}

	footer := s.renderFooter(page)
	lines := strings.Split(strings.Join(body, "\n"), "\n")

	visible := height - lipgloss.Height(footer) - 1
	if visible < 1 {
		visible = 1
	}
	s.maxOff = len(lines) - visible
	if s.maxOff < 0 {
		s.maxOff = 0
	}
	if s.offset > s.maxOff {
		s.offset = s.maxOff
	}
	end := s.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	shown := strings.Join(lines[s.offset:end], "\n")

	content := lipgloss.NewStyle().Width(textWidth).Render(shown)
	top := lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Bottom,
		lipgloss.NewStyle().Height(visible).Render(top)+"\n"+lipgloss.PlaceHorizontal(width, lipgloss.Center, footer))
}

func (s *PrayerScreen) renderIntro(page devotion.Page, w int) []string {
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)
	title := theme.Title
	if page.Subtype == devotion.SubtypeBig {
		title = title.Foreground(theme.Accent)
	}

	out := []string{"", center.Render(title.Render(s.deps.T(page.Title)))}
	if page.Subtitle != "" {
		out = append(out, center.Render(theme.Subtitle.Render(s.deps.T(page.Subtitle))))
	}
	if page.Description != "" {
		out = append(out, "", center.Foreground(theme.Text).Render(s.deps.T(page.Description)))
	}
	if page.Intention != "" {
		out = append(out, "", center.Render(theme.Hint.Render(s.deps.T("INTENTION_2", "intention", page.Intention))))
	}
	if page.Timestamp != 0 {
		elapsed := s.deps.Manager.Now().Sub(time.UnixMilli(page.Timestamp))
		out = append(out, "", center.Render(theme.Hint.Render(
			s.deps.T("ELAPSED", "duration", components.FormatDuration(elapsed)))))
	}
	return out
}

func (s *PrayerScreen) renderPrayer(page devotion.Page, w int) []string {
	wrap := lipgloss.NewStyle().Width(w)

	out := []string{theme.StanzaTitle.Render(s.deps.T(page.Title))}
	if page.Subtitle != "" {
		out = append(out, theme.Hint.Render(s.deps.T(page.Subtitle)))
	}
	if beads := (components.Beads{Current: page.Rosary}).View(); beads != "" {
		out = append(out, "", beads)
	}
	for _, st := range page.Prayer {
		out = append(out, "")
		if st.Title != "" {
			out = append(out, theme.StanzaTitle.Render(s.deps.T(st.Title)))
		}
		if st.Call != "" {
			out = append(out, wrap.Inherit(theme.Call).Render("℣. "+s.deps.T(st.Call)))
			out = append(out, wrap.Inherit(theme.Response).Render("℟. "+s.deps.T(st.Response)))
			continue
		}
		out = append(out, wrap.Inherit(theme.Response).Render(s.deps.T(st.Response)))
	}
	return out
}

func (s *PrayerScreen) renderFooter(page devotion.Page) string {
	mgr := s.deps.Manager
	pos := s.deps.T("PAGE",
		"current", strconv.Itoa(mgr.Index()),
		"total", strconv.Itoa(mgr.Pages().Len()))
	next := theme.ButtonActive.Render(s.nextLabel() + " →")
	if page.IsFinish() {
		next = theme.ButtonActive.Background(theme.Accent).Render(s.nextLabel() + " ✓")
	}
	return theme.Hint.Render(pos) + "   " + next
}
