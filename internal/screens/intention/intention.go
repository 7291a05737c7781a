package intention

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/router"
	"github.com/abhisek/rosary/internal/screen"
	"github.com/abhisek/rosary/internal/screens/prayer"
	"github.com/abhisek/rosary/internal/session"
	"github.com/abhisek/rosary/internal/ui/components"
	"github.com/abhisek/rosary/internal/ui/layout"
	"github.com/abhisek/rosary/internal/ui/theme"
)

const (
	buttonCancel = iota
	buttonSkip
	buttonSave
)

// IntentionScreen asks what the prayer is offered for and starts the
// session. The manager must already be in the intending phase.
type IntentionScreen struct {
	deps    *screen.Deps
	input   components.TextInput
	buttons components.ButtonRow
}

var _ screen.Screen = (*IntentionScreen)(nil)
var _ screen.KeyHintProvider = (*IntentionScreen)(nil)
var _ screen.EscapeHandler = (*IntentionScreen)(nil)

// New creates the intention dialog.
func New(deps *screen.Deps) *IntentionScreen {
	s := &IntentionScreen{
		deps:  deps,
		input: components.NewTextInput(deps.T("INTENTION_PLACEHOLDER"), session.MaxIntentionLength),
	}
	s.buttons = components.NewButtonRow(buttonSave,
		components.Button{Label: deps.T("CANCEL"), OnPress: s.cancel},
		components.Button{Label: deps.T("SKIP"), OnPress: func() tea.Cmd { return s.submit("") }},
		components.Button{Label: deps.T("SAVE"), OnPress: func() tea.Cmd { return s.submit(s.input.Value()) }},
	)
	return s
}

func (s *IntentionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *IntentionScreen) Title() string {
	return s.deps.T("INTENTION")
}

// HandlesEscape reports true: esc cancels the dialog and leaves the
// manager idle.
func (s *IntentionScreen) HandlesEscape() bool {
	return true
}

func (s *IntentionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.buttons.Buttons[s.buttons.Focused].Label},
		{Key: "Tab", Description: "Switch"},
		{Key: "Esc", Description: s.deps.T("CANCEL")},
	}
}

func (s *IntentionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, s.cancel()
		case "tab", "shift+tab", "enter":
			var cmd tea.Cmd
			s.buttons, cmd = s.buttons.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *IntentionScreen) cancel() tea.Cmd {
	s.deps.Manager.Cancel()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// submit starts the session. On failure the dialog stays open so the
// user can retry.
func (s *IntentionScreen) submit(intention string) tea.Cmd {
	if _, err := s.deps.Manager.Submit(context.Background(), intention); err != nil {
		s.deps.Notify.Error(s.deps.T("NEW_SESS_ERR"))
		return nil
	}
	next := prayer.New(s.deps)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *IntentionScreen) View(width, height int) string {
	kind := s.deps.Manager.Kind()
	body := theme.StanzaTitle.Render(s.deps.T(kind.TitleKey())) + "\n\n" +
		theme.Body.Render(s.deps.T("INTENTION")) + "\n" +
		s.input.View() + "\n\n" +
		s.buttons.View()

	card := theme.Card.Width(min(width-4, 64)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
