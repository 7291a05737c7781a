package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/screens/history"
	"github.com/abhisek/rosary/internal/screens/intention"
	"github.com/abhisek/rosary/internal/screens/prayer"
	"github.com/abhisek/rosary/internal/screens/promises"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/ui/components"
	"github.com/abhisek/rosary/internal/ui/layout"
	"github.com/abhisek/rosary/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Focuser = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

// items builds the menu from current state; labels depend on the
// selected devotion, the locale and whether a session can be resumed.
func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	mgr := d.Manager

	start := components.MenuItem{Label: d.T("START"), Action: h.start}
	if mgr.Phase() == session.PhaseActive {
		start.Label = d.T("RESUME")
		start.Hint = d.T("PAGE",
			"current", strconv.Itoa(mgr.Index()),
			"total", strconv.Itoa(mgr.Pages().Len()))
	}

	other := devotion.DivineMercy
	if mgr.Kind() == devotion.DivineMercy {
		other = devotion.Rosary
	}

	return []components.MenuItem{
		start,
		{Label: d.T("MENU.MODE", "prayer", d.T(other.TitleKey())), Action: h.toggleKind},
		{Label: d.T("HISTORY"), Action: push(func() screen.Screen { return history.New(d) })},
		{Label: d.T("PROM_SHORT"), Action: push(func() screen.Screen { return promises.New(d) }),
			Disabled: mgr.Kind() == devotion.DivineMercy},
		{Label: d.T("LANG"), Hint: d.T("LOCALE_NAME"), Action: h.cycleLocale},
		{Label: d.T("SHARE"), Action: h.share},
		{Label: d.T("QUIT"), Action: func() tea.Cmd { return tea.Quit }},
	}
}

func push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := factory()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// start resumes the active session or opens the intention dialog for a
// new one.
func (h *HomeScreen) start() tea.Cmd {
	mgr := h.deps.Manager
	if mgr.Phase() == session.PhaseActive {
		return push(func() screen.Screen { return prayer.New(h.deps) })()
	}
	mgr.Begin(context.Background())
	return push(func() screen.Screen { return intention.New(h.deps) })()
}

func (h *HomeScreen) toggleKind() tea.Cmd {
	kind := h.deps.Manager.ToggleKind(context.Background())
	h.deps.Notify.Success(h.deps.T("MODE_CHANGED_BODY", "prayer", h.deps.T(kind.TitleKey())))
	h.refresh()
	return nil
}

func (h *HomeScreen) cycleLocale() tea.Cmd {
	h.deps.CycleLocale(context.Background())
	h.refresh()
	return nil
}

// share shows the link until dismissed so it can be copied.
func (h *HomeScreen) share() tea.Cmd {
	h.deps.Notify.Publish(notify.Notification{
		Level:   notify.Success,
		Message: h.deps.T("SHARE_DESC", "url", h.deps.AppURL),
		Sticky:  true,
	})
	return nil
}

func (h *HomeScreen) refresh() {
	h.menu.SetItems(h.items())
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Focus rebuilds the menu when returning from another screen.
func (h *HomeScreen) Focus() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: h.deps.T("QUIT")},
	}
}

func (h *HomeScreen) View(width, height int) string {
	d := h.deps
	kind := d.Manager.Kind()

	var sections []string
	sections = append(sections, theme.Title.Render(d.T(kind.TitleKey())))
	if kind == devotion.Rosary {
		set := devotion.SelectMysterySet(d.Manager.Now())
		sections = append(sections, theme.Subtitle.Render(d.T(set.NameKey())))
	} else {
		sections = append(sections, theme.Subtitle.Render(d.T(devotion.KeyDivineMercyFull)))
	}
	if last, ok := d.Manager.LastFinished(); ok {
		sections = append(sections, theme.Hint.Render(d.T("TIMER",
			"duration", components.FormatDuration(last.Duration()),
			"timestamp", last.Start.Format("15:04"))))
	}
	sections = append(sections, "", h.menu.View())

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return h.deps.T("MENU.APP")
}
