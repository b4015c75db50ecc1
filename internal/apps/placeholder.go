package apps

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/theme"
)

// placeholder stands in for an app ID with no registered manifest, so a
// pinned app that was uninstalled still opens something instead of failing.
type placeholder struct {
	appID string
}

func newPlaceholder(appID string) *placeholder {
	return &placeholder{appID: appID}
}

func (p *placeholder) Render(width, height int, focused bool) string {
	title := lipgloss.NewStyle().
		Foreground(theme.NotificationWarning()).
		Bold(true).
		Render("App not found")

	body := lipgloss.NewStyle().
		Foreground(theme.WelcomeText()).
		Render(fmt.Sprintf("No app is registered as %q.", p.appID))

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
