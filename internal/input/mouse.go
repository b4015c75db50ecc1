package input

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/app"
	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/gesture"
	"github.com/deskos/deskos/internal/shell"
)

// handleMouseClick focuses, hits chrome targets, and starts gestures.
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	if d.ShowQuitConfirm || d.ShowHelp || d.RenameActive {
		return d, nil
	}

	if d.InDockZone(y) {
		if item, ok := d.DockItemAt(x, y); ok {
			switch item.Kind {
			case app.DockLauncher:
				d.OpenApp(item.AppID)
			case app.DockMinimized:
				d.RestoreWindow(item.WindowID)
			}
		}
		return d, nil
	}

	if w, closeHit, ok := d.StageThumbnailAt(x, y); ok {
		if closeHit {
			// Close from the strip without pulling the window on stage.
			d.CloseWindow(w.ID)
		} else {
			d.State.FocusWindow(w.ID)
		}
		return d, nil
	}

	if y < config.TopBarHeight {
		return d, nil
	}

	w := windowAt(d, x, y)
	if w == nil {
		return d, nil
	}

	// Focus lands before anything else so the click gets instant feedback.
	d.State.FocusWindow(w.ID)
	if d.Mode == app.AppMode {
		d.Mode = app.DesktopMode
	}

	if mouse.Button != tea.MouseLeft {
		return d, nil
	}

	if hitTitleButton(d, w, x, y) {
		return d, nil
	}

	if dir, ok := resizeDirectionAt(w, x, y); ok && w.CanResize() {
		if d.Gestures.StartResize(d.State, w.ID, dir, x, y) {
			d.InteractionMode = true
			return d, app.SlowTickCmd()
		}
		return d, nil
	}

	if y == w.Y {
		if w.ID == d.LastClickWindowID && time.Since(d.LastClickTime) < config.DoubleClickInterval {
			d.LastClickTime = time.Time{}
			d.MaximizeActiveWindow()
			return d, nil
		}
		d.LastClickWindowID = w.ID
		d.LastClickTime = time.Now()

		if w.CanDrag() && d.Gestures.StartDrag(d.State, w.ID, x, y) {
			d.InteractionMode = true
			return d, app.SlowTickCmd()
		}
	}
	return d, nil
}

// hitTitleButton handles the close, maximize, and minimize buttons on the
// title row. Zones are measured from the window's right edge, matching the
// rendered button cluster.
func hitTitleButton(d *app.Desktop, w *shell.Window, x, y int) bool {
	if y != w.Y {
		return false
	}
	right := w.X + w.Width

	// close, rightmost
	if x >= right-5 && x <= right-3 {
		d.CloseWindow(w.ID)
		return true
	}

	// maximize, middle; hidden while tiled
	if !w.Tiled && x >= right-8 && x <= right-6 {
		d.MaximizeActiveWindow()
		return true
	}

	minLeft := right - 11
	if w.Tiled {
		minLeft = right - 8
	}
	if x >= minLeft && x <= minLeft+2 {
		d.MinimizeWindow(w.ID)
		return true
	}

	// App-supplied controls sit in their own pill left of the window
	// buttons, one border cell apart.
	if tc, ok := d.Component(w.ID).(apps.TitleBarController); ok {
		controls := tc.TitleControls()
		pillStart := minLeft - 3*len(controls) - 4
		for i, ctl := range controls {
			left := pillStart + 1 + 3*i
			if x >= left && x <= left+2 {
				if h, ok := d.Component(w.ID).(apps.KeyHandler); ok {
					h.HandleKey(ctl.Key)
				}
				return true
			}
		}
	}
	return false
}

// resizeDirectionAt maps a border cell to a resize direction. Corners win
// over edges so a click on a corner cell grabs both axes.
func resizeDirectionAt(w *shell.Window, x, y int) (gesture.Direction, bool) {
	left := x == w.X
	right := x == w.X+w.Width-1
	top := y == w.Y
	bottom := y == w.Y+w.Height-1

	switch {
	case top && left:
		return gesture.NorthWest, true
	case top && right:
		return gesture.NorthEast, true
	case bottom && left:
		return gesture.SouthWest, true
	case bottom && right:
		return gesture.SouthEast, true
	case left:
		return gesture.West, true
	case right:
		return gesture.East, true
	case bottom:
		return gesture.South, true
	}
	// The top edge is the title row; dragging wins there.
	return 0, false
}

// handleMouseMotion feeds gestures and drives the hover-reveal surfaces.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y
	d.MouseX, d.MouseY = x, y

	if d.Gestures.Active() {
		d.Gestures.Motion(d.State, x, y)
		return d, nil
	}

	var cmds []tea.Cmd

	if d.Config.Shell.DockAutoHide {
		if d.InDockZone(y) {
			d.CancelDockHide()
			d.State.SetShowDock(true)
		} else if d.State.ShowDock {
			cmds = append(cmds, d.ScheduleDockHide())
		}
	}

	if d.State.StageManager {
		if x < config.StageTriggerZone {
			d.CancelStripHide()
			d.State.SetShowStageThumbnails(true)
		} else if d.State.ShowStageThumbnails && x >= config.StageStripColumns {
			cmds = append(cmds, d.ScheduleStripHide())
		}
	}

	if len(cmds) > 0 {
		return d, tea.Batch(cmds...)
	}
	return d, nil
}

// handleMouseRelease ends the active gesture, committing its frame.
func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	if d.Gestures.Active() {
		d.Gestures.Commit(d.State)
		d.InteractionMode = false
	}
	return d, nil
}

// windowAt returns the topmost visible window containing the point. In
// stage-manager mode only the staged window is on the desktop surface.
func windowAt(d *app.Desktop, x, y int) *shell.Window {
	var top *shell.Window
	for _, w := range d.State.Windows {
		if !w.Visible() {
			continue
		}
		if d.State.StageManager && w.ID != d.State.ActiveID {
			continue
		}
		// A fullscreen window is rendered over the whole viewport, so it
		// catches every click regardless of its stored frame.
		if !w.Fullscreen && !w.Contains(x, y) {
			continue
		}
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	return top
}
