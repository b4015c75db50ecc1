// Package app is the composition layer: it owns the shell state, the app
// components behind each window, and the bubbletea model that drives them.
package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/ssh"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/gesture"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/shell"
	"github.com/deskos/deskos/internal/ui"
)

// Mode is the input routing mode. Desktop mode sends keys to the shell;
// app mode forwards them to the focused window's component.
type Mode int

const (
	// DesktopMode routes keys to window-management shortcuts.
	DesktopMode Mode = iota
	// AppMode forwards keys to the focused app.
	AppMode
)

// Notification is a transient message shown in the corner of the screen.
type Notification struct {
	Text    string
	Level   apps.LogLevel
	Created time.Time
}

// Desktop is the bubbletea model for one shell session. Everything hangs
// off it: canonical window state, in-flight gestures, animations, and the
// component instance behind every window.
type Desktop struct {
	State      *shell.State
	Gestures   *gesture.Controller
	Registry   *apps.Registry
	Components map[string]apps.Component

	Config   *config.Config
	Keybinds *config.KeybindRegistry
	Logs     *apps.LogBuffer

	Mode   Mode
	Width  int
	Height int

	// Pointer position from the last motion event, for hover tracking.
	MouseX int
	MouseY int

	ShowHelp             bool
	ShowQuitConfirm      bool
	QuitConfirmSelection int // 0 = quit, 1 = stay

	// Rename prompt for the active window.
	RenameActive bool
	RenameBuffer string
	renameTarget string

	// Double-click detection on window title rows.
	LastClickTime     time.Time
	LastClickWindowID string

	// Cached dock status cell, resampled on the sysmon interval.
	statusText    string
	statusSampled time.Time

	Notifications []Notification
	Animations    ui.AnimationSet

	// InteractionMode drops the frame rate while a gesture is in flight.
	InteractionMode bool

	// Debounce generations for the auto-hidden dock and thumbnail strip. A
	// stale timer message carries an old generation and is ignored.
	DockHideGen  int
	StripHideGen int

	// SSH session backing this desktop, nil when running locally.
	SSHSession ssh.Session
}

// NewDesktop creates a desktop for a viewport of the given size.
func NewDesktop(width, height int, cfg *config.Config, registry *apps.Registry, logs *apps.LogBuffer) *Desktop {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logs == nil {
		logs = apps.NewLogBuffer()
	}
	if registry == nil {
		registry = apps.Builtins(logs)
	}

	state := shell.NewState(width, height, registry)
	state.StageManager = cfg.Shell.StageManager
	state.ShowDock = !cfg.Shell.DockAutoHide

	return &Desktop{
		State:      state,
		Gestures:   gesture.NewController(),
		Registry:   registry,
		Components: make(map[string]apps.Component),
		Config:     cfg,
		Keybinds:   config.NewKeybindRegistry(cfg.Keybindings),
		Logs:       logs,
		Width:      width,
		Height:     height,
	}
}

// OpenApp opens a window for the app and instantiates its component. For
// singleton apps this may return an existing window's ID.
func (d *Desktop) OpenApp(appID string) string {
	before := make(map[string]layout.Rect)
	if d.State.AnyTiled() {
		before = d.snapshotRects()
	}

	id := d.State.OpenWindow(appID)
	if _, ok := d.Components[id]; !ok {
		d.Components[id] = d.Registry.New(appID)
		d.LogInfo("opened %s", appID)
	}
	d.animateMovedWindows(before)
	return id
}

// CloseWindow closes the window and releases its component.
func (d *Desktop) CloseWindow(id string) {
	w := d.State.Window(id)
	if w == nil {
		return
	}
	appID := w.AppID

	before := d.snapshotRects()
	delete(before, id)

	d.State.CloseWindow(id)
	d.Animations.Drop(id)
	delete(d.Components, id)
	d.LogInfo("closed %s", appID)

	if len(d.State.Windows) == 0 {
		d.Mode = DesktopMode
	}
	d.animateMovedWindows(before)
}

// CloseActiveWindow closes the focused window.
func (d *Desktop) CloseActiveWindow() {
	if w := d.State.ActiveWindow(); w != nil {
		d.CloseWindow(w.ID)
	}
}

// Component returns the app component behind a window, or nil.
func (d *Desktop) Component(windowID string) apps.Component {
	return d.Components[windowID]
}

// CycleFocus moves focus through the visible windows in stacking order.
// Forward focuses the window just under the active one, so repeated cycling
// walks the whole stack.
func (d *Desktop) CycleFocus(forward bool) {
	order := d.State.ByZDescending()
	if len(order) < 2 {
		return
	}
	if forward {
		d.State.FocusWindow(order[len(order)-1].ID)
	} else {
		d.State.FocusWindow(order[1].ID)
	}
}

// MinimizeWindow minimizes with a fly-to-dock animation.
func (d *Desktop) MinimizeWindow(id string) {
	w := d.State.Window(id)
	if w == nil || w.Minimized {
		return
	}
	from := rectOf(w)

	before := d.snapshotRects()
	delete(before, id)

	d.State.MinimizeWindow(id)

	slot := d.dockSlotRect(id)
	d.Animations.Add(ui.NewAnimation(id, ui.AnimationMinimize, from, slot))
	d.animateMovedWindows(before)
}

// RestoreWindow restores from the dock with the reverse animation.
func (d *Desktop) RestoreWindow(id string) {
	w := d.State.Window(id)
	if w == nil || !w.Minimized {
		return
	}
	slot := d.dockSlotRect(id)

	before := d.snapshotRects()

	d.State.RestoreWindow(id)
	d.Animations.Add(ui.NewAnimation(id, ui.AnimationRestore, slot, rectOf(w)))
	d.animateMovedWindows(before)
}

// ToggleTiling tiles every window, or untiles everything when the desktop
// is already fully tiled.
func (d *Desktop) ToggleTiling() {
	before := d.snapshotRects()
	if d.State.AllTiled() {
		d.State.UntileAll()
		d.Notify(apps.LogInfo, "tiling off")
	} else {
		d.State.TileAllWindows()
		d.Notify(apps.LogInfo, "tiling on")
	}
	d.animateMovedWindows(before)
}

// MaximizeActiveWindow toggles maximization on the focused window.
func (d *Desktop) MaximizeActiveWindow() {
	w := d.State.ActiveWindow()
	if w == nil {
		return
	}
	before := d.snapshotRects()
	d.State.MaximizeWindow(w.ID)
	d.animateMovedWindows(before)
}

// StartRename opens the rename prompt seeded with the active window's title.
func (d *Desktop) StartRename() {
	w := d.State.ActiveWindow()
	if w == nil {
		return
	}
	d.RenameActive = true
	d.RenameBuffer = w.Title
	d.renameTarget = w.ID
}

// CommitRename applies the buffered title and closes the prompt. An empty
// buffer keeps the old title.
func (d *Desktop) CommitRename() {
	if w := d.State.Window(d.renameTarget); w != nil && d.RenameBuffer != "" {
		w.Title = d.RenameBuffer
	}
	d.CancelRename()
}

// CancelRename closes the prompt without applying.
func (d *Desktop) CancelRename() {
	d.RenameActive = false
	d.RenameBuffer = ""
	d.renameTarget = ""
}

// Notify shows a transient corner notification and mirrors it to the log.
func (d *Desktop) Notify(level apps.LogLevel, format string, args ...any) {
	d.Logs.Append(level, format, args...)
	d.Notifications = append(d.Notifications, Notification{
		Text:    fmt.Sprintf(format, args...),
		Level:   level,
		Created: time.Now(),
	})
}

// LogInfo appends to the shell log without raising a notification.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Logs.Append(apps.LogInfo, format, args...)
}

// LogError appends an error to the shell log.
func (d *Desktop) LogError(format string, args ...any) {
	d.Logs.Append(apps.LogError, format, args...)
}

// expireNotifications drops notifications older than their display window.
func (d *Desktop) expireNotifications(now time.Time) {
	kept := d.Notifications[:0]
	for _, n := range d.Notifications {
		if now.Sub(n.Created) < config.NotificationDuration {
			kept = append(kept, n)
		}
	}
	d.Notifications = kept
}

// snapshotRects records the frame of every visible window, keyed by ID.
func (d *Desktop) snapshotRects() map[string]layout.Rect {
	out := make(map[string]layout.Rect)
	for _, w := range d.State.VisibleWindows() {
		out[w.ID] = rectOf(w)
	}
	return out
}

// animateMovedWindows starts snap animations for every window whose frame
// changed since the snapshot. Layout changes from tiling, closing, and
// resizing all funnel through here.
func (d *Desktop) animateMovedWindows(before map[string]layout.Rect) {
	for _, w := range d.State.VisibleWindows() {
		old, ok := before[w.ID]
		if !ok {
			continue
		}
		now := rectOf(w)
		if old != now {
			d.Animations.Add(ui.NewAnimation(w.ID, ui.AnimationSnap, old, now))
		}
	}
}

// dockSlotRect approximates the dock position a minimized window flies to.
func (d *Desktop) dockSlotRect(id string) layout.Rect {
	x := d.Width / 2
	for _, item := range d.dockItems() {
		if item.WindowID == id {
			x = item.X + item.Width/2
			break
		}
	}
	return layout.Rect{X: x, Y: d.Height - 1, Width: 5, Height: 2}
}

// tickComponents forwards the frame clock to every visible component that
// wants it.
func (d *Desktop) tickComponents(now time.Time) {
	for _, w := range d.State.VisibleWindows() {
		if ticker, ok := d.Components[w.ID].(apps.Ticker); ok {
			ticker.Tick(now)
		}
	}
}

func rectOf(w *shell.Window) layout.Rect {
	return layout.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Init starts the frame clock.
func (d *Desktop) Init() tea.Cmd {
	if d.Config.Shell.DefaultAppID != "" && len(d.State.Windows) == 0 {
		d.OpenApp(d.Config.Shell.DefaultAppID)
	}
	return TickCmd()
}
