package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/ui/theme"
)

const crossArt = `    ╻
  ━━╋━━
    ┃
    ┃
    ┃`

// WelcomeScreen greets the user after install or upgrade and then hands
// over to the home screen.
type WelcomeScreen struct {
	deps         *screen.Deps
	homeFactory  func() screen.Screen
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(deps *screen.Deps, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		deps:        deps,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return w, w.transition()
	}
	return w, nil
}

// transition records the running version so the greeting is not shown
// again until the next upgrade.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	w.deps.Manager.Preferences().MarkWelcomed(context.Background(), w.deps.Version)
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	textWidth := width - 8
	if textWidth > 60 {
		textWidth = 60
	}
	para := lipgloss.NewStyle().Width(textWidth).Align(lipgloss.Center).Foreground(theme.Text)

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(crossArt),
		"",
		theme.Title.Render(w.deps.T("WELCOME", "brand", w.deps.Brand, "version", w.deps.Version)),
		"",
		para.Render(w.deps.T("WC.P1")),
		"",
		para.Render(w.deps.T("WC.P2")),
		"",
		theme.Hint.Render(w.deps.T("CONTINUE") + " ⏎"),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
