package promises

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/ui/layout"
	"github.com/abhisek/rosary/internal/ui/theme"
)

// Count is the number of promises in the catalog (PROM.P1..P15).
const Count = 15

// Key returns the catalog key of the n-th promise.
func Key(n int) string {
	return fmt.Sprintf("PROM.P%d", n)
}

// PromisesScreen lists the promises made to those who pray the Rosary.
type PromisesScreen struct {
	deps   *screen.Deps
	offset int
	maxOff int
}

var _ screen.Screen = (*PromisesScreen)(nil)
var _ screen.KeyHintProvider = (*PromisesScreen)(nil)

func New(deps *screen.Deps) *PromisesScreen {
	return &PromisesScreen{deps: deps}
}

func (s *PromisesScreen) Init() tea.Cmd { return nil }

func (s *PromisesScreen) Title() string { return s.deps.T("PROM_SHORT") }

func (s *PromisesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: s.deps.T("BACK")},
	}
}

func (s *PromisesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
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

func (s *PromisesScreen) View(width, height int) string {
	w := min(width-8, 72)
	item := lipgloss.NewStyle().Width(w).Foreground(theme.Text)

	blocks := []string{theme.StanzaTitle.Width(w).Render(s.deps.T("PROM_FULL"))}
	for n := 1; n <= Count; n++ {
		num := theme.Response.Render(fmt.Sprintf("%2d. ", n))
		text := item.Width(w - lipgloss.Width(num)).Render(s.deps.T(Key(n)))
		blocks = append(blocks, "", lipgloss.JoinHorizontal(lipgloss.Top, num, text))
	}
	lines := strings.Split(strings.Join(blocks, "\n"), "\n")

	s.maxOff = max(len(lines)-height, 0)
	s.offset = min(s.offset, s.maxOff)
	end := min(s.offset+height, len(lines))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(w).Render(strings.Join(lines[s.offset:end], "\n")))
}
