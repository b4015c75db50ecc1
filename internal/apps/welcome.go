package apps

import (
	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/theme"
)

const welcomeArt = `██████╗ ███████╗███████╗██╗  ██╗ ██████╗ ███████╗
██╔══██╗██╔════╝██╔════╝██║ ██╔╝██╔═══██╗██╔════╝
██║  ██║█████╗  ███████╗█████╔╝ ██║   ██║███████╗
██║  ██║██╔══╝  ╚════██║██╔═██╗ ██║   ██║╚════██║
██████╔╝███████╗███████║██║  ██╗╚██████╔╝███████║
╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

// welcome is the landing app opened when the shell starts empty.
type welcome struct{}

func newWelcome() *welcome {
	return &welcome{}
}

func (w *welcome) Render(width, height int, focused bool) string {
	title := lipgloss.NewStyle().
		Foreground(theme.WelcomeTitle()).
		Bold(true).
		Render(welcomeArt)

	subtitle := lipgloss.NewStyle().
		Foreground(theme.WelcomeSubtitle()).
		Render("Desktop Shell")

	hint := lipgloss.NewStyle().
		Foreground(theme.WelcomeText()).
		Render("Press 'n' to open a window, '?' for help")

	hint2 := lipgloss.NewStyle().
		Foreground(theme.WelcomeHighlight()).
		Render("Drag title bars to move, edges to resize")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		subtitle,
		"",
		hint,
		hint2,
	)

	// The ASCII art does not fit small windows; fall back to plain text.
	if width < lipgloss.Width(welcomeArt)+2 || height < 12 {
		content = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.WelcomeTitle()).Bold(true).Render("deskos"),
			"",
			hint,
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
