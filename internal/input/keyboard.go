package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/app"
	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
)

// handleKeyPress routes a key through the overlays, then the current mode.
func handleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	key := msg.String()

	if d.ShowQuitConfirm {
		return handleQuitConfirmKey(key, d)
	}

	if d.RenameActive {
		return handleRenameKey(key, d)
	}

	if d.ShowHelp {
		switch key {
		case "?", "esc", "q":
			d.ShowHelp = false
		}
		return d, nil
	}

	if d.Mode == app.AppMode {
		return handleAppModeKey(key, d)
	}
	return handleDesktopModeKey(key, d)
}

func handleQuitConfirmKey(key string, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "right", "tab", "h", "l":
		d.QuitConfirmSelection = 1 - d.QuitConfirmSelection
	case "enter":
		if d.QuitConfirmSelection == 0 {
			return d, tea.Quit
		}
		d.ShowQuitConfirm = false
	case "esc", "n":
		d.ShowQuitConfirm = false
	case "y":
		return d, tea.Quit
	}
	return d, nil
}

// handleRenameKey edits the rename buffer. Single-rune keys are text;
// everything else is a control key.
func handleRenameKey(key string, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		d.CommitRename()
	case "esc":
		d.CancelRename()
	case "backspace":
		if r := []rune(d.RenameBuffer); len(r) > 0 {
			d.RenameBuffer = string(r[:len(r)-1])
		}
	case "space":
		d.RenameBuffer += " "
	default:
		if r := []rune(key); len(r) == 1 {
			d.RenameBuffer += key
		}
	}
	return d, nil
}

// handleAppModeKey forwards keys to the focused component. Only the leave
// chord is intercepted, so apps can use every other key.
func handleAppModeKey(key string, d *app.Desktop) (tea.Model, tea.Cmd) {
	if d.Keybinds.ActionFor(key) == config.ActionLeaveAppMode || key == "esc" {
		d.Mode = app.DesktopMode
		return d, nil
	}

	w := d.State.ActiveWindow()
	if w == nil {
		d.Mode = app.DesktopMode
		return d, nil
	}
	if handler, ok := d.Component(w.ID).(apps.KeyHandler); ok {
		handler.HandleKey(key)
	}
	return d, nil
}

func handleDesktopModeKey(key string, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch d.Keybinds.ActionFor(key) {
	case config.ActionNewWindow:
		d.OpenApp(d.Config.Shell.DefaultAppID)

	case config.ActionCloseWindow:
		d.CloseActiveWindow()

	case config.ActionRenameWindow:
		d.StartRename()

	case config.ActionNextWindow:
		d.CycleFocus(true)

	case config.ActionPrevWindow:
		d.CycleFocus(false)

	case config.ActionMinimizeWindow:
		if w := d.State.ActiveWindow(); w != nil {
			d.MinimizeWindow(w.ID)
		}

	case config.ActionMaximizeWindow:
		d.MaximizeActiveWindow()

	case config.ActionFullscreen:
		if w := d.State.ActiveWindow(); w != nil {
			d.State.ToggleFullscreen(w.ID)
		}

	case config.ActionTileToggle:
		d.ToggleTiling()

	case config.ActionStageManager:
		d.State.ToggleStageManager()
		if d.State.StageManager {
			d.Notify(apps.LogInfo, "stage manager on")
		} else {
			d.Notify(apps.LogInfo, "stage manager off")
		}

	case config.ActionToggleDock:
		d.State.SetShowDock(!d.State.ShowDock)

	case config.ActionEnterAppMode:
		if d.State.ActiveWindow() != nil {
			d.Mode = app.AppMode
		}

	case config.ActionToggleHelp:
		d.ShowHelp = true

	case config.ActionToggleLogs:
		d.OpenApp("logs")

	case config.ActionQuit:
		d.ShowQuitConfirm = true
		d.QuitConfirmSelection = 1
	}

	return d, nil
}
