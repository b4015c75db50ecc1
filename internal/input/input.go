// Package input routes keyboard and mouse events into the desktop model.
// It is registered as the app package's input handler at startup.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/app"
)

// HandleInput dispatches an input message to the matching handler.
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return d, nil
	}
	return d, nil
}
