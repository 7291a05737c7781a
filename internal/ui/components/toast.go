package components

import (
	"github.com/abhisek/rosary/internal/notify"
	"github.com/abhisek/rosary/internal/ui/theme"
)

// Toast renders a notification for the footer.
func Toast(n notify.Notification) string {
	if n.Level == notify.Error {
		return theme.ToastError.Render("✗ " + n.Message)
	}
	return theme.ToastSuccess.Render("✓ " + n.Message)
}
