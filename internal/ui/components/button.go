package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rosary/internal/ui/theme"
)

// Button is a labelled action in a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal set of buttons with one focused.
// left/right (or tab) move focus, enter presses.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the given button focused.
func NewButtonRow(focused int, buttons ...Button) ButtonRow {
	if focused < 0 || focused >= len(buttons) {
		focused = 0
	}
	return ButtonRow{Buttons: buttons, Focused: focused}
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "shift+tab":
		r.Focused = (r.Focused + len(r.Buttons) - 1) % len(r.Buttons)
	case "right", "tab":
		r.Focused = (r.Focused + 1) % len(r.Buttons)
	case "enter":
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts = append(parts, theme.ButtonActive.Render(b.Label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(b.Label))
		}
	}
	return strings.Join(parts, "  ")
}
