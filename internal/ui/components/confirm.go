package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rosary/internal/ui/theme"
)

// ConfirmResultMsg reports the user's answer to a Confirm dialog.
type ConfirmResultMsg struct {
	Yes bool
}

// Confirm is a yes/no dialog. y and n answer directly; the button row
// answers on enter. esc counts as no.
type Confirm struct {
	Title   string
	Prompt  string
	buttons ButtonRow
}

// NewConfirm creates a dialog with "no" focused.
func NewConfirm(title, prompt, yes, no string) Confirm {
	answer := func(v bool) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return ConfirmResultMsg{Yes: v} }
		}
	}
	return Confirm{
		Title:  title,
		Prompt: prompt,
		buttons: NewButtonRow(1,
			Button{Label: yes, OnPress: answer(true)},
			Button{Label: no, OnPress: answer(false)},
		),
	}
}

// Update handles key events.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "y":
			return c, func() tea.Msg { return ConfirmResultMsg{Yes: true} }
		case "n", "esc":
			return c, func() tea.Msg { return ConfirmResultMsg{Yes: false} }
		}
	}
	var cmd tea.Cmd
	c.buttons, cmd = c.buttons.Update(msg)
	return c, cmd
}

// View renders the dialog card.
func (c Confirm) View(width int) string {
	w := width - 8
	if w > 50 {
		w = 50
	}
	body := theme.StanzaTitle.Render(c.Title) + "\n\n" +
		lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(c.Prompt) + "\n\n" +
		c.buttons.View()
	return theme.Card.Render(body)
}
