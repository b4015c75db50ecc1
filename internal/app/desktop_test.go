package app

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
)

func newTestDesktop() *Desktop {
	return NewDesktop(160, 50, nil, nil, nil)
}

func TestOpenAppCreatesComponent(t *testing.T) {
	d := newTestDesktop()

	id := d.OpenApp("clock")
	if id == "" {
		t.Fatal("no window opened")
	}
	if d.Component(id) == nil {
		t.Error("no component behind the window")
	}
}

func TestSingletonAppReusesWindow(t *testing.T) {
	d := newTestDesktop()

	first := d.OpenApp("welcome")
	second := d.OpenApp("welcome")

	if first != second {
		t.Errorf("singleton app opened twice: %s and %s", first, second)
	}
	if len(d.State.Windows) != 1 {
		t.Errorf("window count = %d, want 1", len(d.State.Windows))
	}
}

func TestCloseWindowCleansUp(t *testing.T) {
	d := newTestDesktop()
	id := d.OpenApp("clock")
	d.Mode = AppMode

	d.CloseWindow(id)

	if d.State.Window(id) != nil {
		t.Error("window survived close")
	}
	if d.Component(id) != nil {
		t.Error("component survived close")
	}
	if d.Mode != DesktopMode {
		t.Error("app mode survived with no windows left")
	}
}

func TestCycleFocusWalksTheStack(t *testing.T) {
	d := newTestDesktop()
	a := d.OpenApp("clock")
	b := d.OpenApp("clock")
	c := d.OpenApp("clock")

	if d.State.ActiveID != c {
		t.Fatalf("active = %s, want %s", d.State.ActiveID, c)
	}

	seen := map[string]bool{c: true}
	d.CycleFocus(true)
	seen[d.State.ActiveID] = true
	d.CycleFocus(true)
	seen[d.State.ActiveID] = true

	for _, id := range []string{a, b, c} {
		if !seen[id] {
			t.Errorf("cycling never reached %s", id)
		}
	}

	// Backward cycling undoes a forward step.
	d.CycleFocus(true)
	mid := d.State.ActiveID
	d.CycleFocus(false)
	d.CycleFocus(true)
	if d.State.ActiveID != mid {
		t.Error("backward then forward did not return to the same window")
	}
}

func TestToggleTilingRoundTrip(t *testing.T) {
	d := newTestDesktop()
	d.OpenApp("clock")
	d.OpenApp("clock")

	d.ToggleTiling()
	if !d.State.AllTiled() {
		t.Fatal("first toggle did not tile")
	}

	d.ToggleTiling()
	if d.State.AnyTiled() {
		t.Error("second toggle did not untile")
	}
}

func TestMinimizeStartsAnimation(t *testing.T) {
	d := newTestDesktop()
	id := d.OpenApp("clock")

	d.MinimizeWindow(id)

	if !d.State.Window(id).Minimized {
		t.Fatal("window not minimized")
	}
	if _, ok := d.Animations.Lookup(id); !ok {
		t.Error("no animation for the minimized window")
	}
}

func TestNotificationsExpire(t *testing.T) {
	d := newTestDesktop()
	d.Notify(apps.LogInfo, "hello")

	if len(d.Notifications) != 1 {
		t.Fatalf("notification count = %d, want 1", len(d.Notifications))
	}

	d.expireNotifications(time.Now().Add(config.NotificationDuration + time.Second))
	if len(d.Notifications) != 0 {
		t.Error("notification outlived its duration")
	}
}

func TestDockItemsGeometry(t *testing.T) {
	d := newTestDesktop()
	id := d.OpenApp("clock")
	d.MinimizeWindow(id)

	items := d.dockItems()
	if len(items) != len(d.Config.Shell.PinnedApps)+1 {
		t.Fatalf("item count = %d, want %d", len(items), len(d.Config.Shell.PinnedApps)+1)
	}

	// Items are laid out left to right without overlap.
	for i := 1; i < len(items); i++ {
		if items[i].X < items[i-1].X+items[i-1].Width {
			t.Errorf("item %d overlaps item %d", i, i-1)
		}
	}

	last := items[len(items)-1]
	if last.Kind != DockMinimized || last.WindowID != id {
		t.Error("minimized window missing from the dock")
	}
}

func TestDockLabelTruncatesWideTitles(t *testing.T) {
	d := newTestDesktop()
	id := d.OpenApp("clock")
	d.State.Window(id).Title = "ステータスモニター日本語"
	d.MinimizeWindow(id)

	items := d.dockItems()
	last := items[len(items)-1]
	if last.Kind != DockMinimized {
		t.Fatal("minimized window missing from the dock")
	}
	if !utf8.ValidString(last.Label) {
		t.Errorf("dock label is not valid UTF-8: %q", last.Label)
	}
	if w := lipgloss.Width(last.Label); w > 16 {
		t.Errorf("label width = %d, want at most 16", w)
	}
}

func TestDockItemAt(t *testing.T) {
	d := newTestDesktop()
	items := d.dockItems()
	if len(items) == 0 {
		t.Fatal("empty dock")
	}

	row := d.Height - 1
	first := items[0]

	item, ok := d.DockItemAt(first.X+1, row)
	if !ok || item.AppID != first.AppID {
		t.Error("click inside the first item missed")
	}

	if _, ok := d.DockItemAt(first.X+1, row-5); ok {
		t.Error("click far above the dock hit an item")
	}

	d.State.SetShowDock(false)
	if _, ok := d.DockItemAt(first.X+1, row); ok {
		t.Error("hidden dock still clickable")
	}
}

func TestStaleDockHideTimerIgnored(t *testing.T) {
	d := newTestDesktop()
	d.Config.Shell.DockAutoHide = true
	d.State.SetShowDock(true)

	d.ScheduleDockHide()
	stale := d.DockHideGen
	d.CancelDockHide()

	d.Update(HideDockMsg{Gen: stale})
	if !d.State.ShowDock {
		t.Error("stale timer hid the dock")
	}

	d.ScheduleDockHide()
	d.Update(HideDockMsg{Gen: d.DockHideGen})
	if d.State.ShowDock {
		t.Error("current timer did not hide the dock")
	}
}

func TestConfigReloadSwapsKeybinds(t *testing.T) {
	d := newTestDesktop()

	cfg := config.DefaultConfig()
	cfg.Keybindings[config.ActionNewWindow] = []string{"o"}

	d.Update(ConfigReloadedMsg{Config: cfg})

	if d.Keybinds.ActionFor("o") != config.ActionNewWindow {
		t.Error("reloaded binding not active")
	}
	if len(d.Notifications) == 0 || !strings.Contains(d.Notifications[0].Text, "config reloaded") {
		t.Error("no reload notification")
	}
}

func TestFullscreenWindowCoversChrome(t *testing.T) {
	d := newTestDesktop()
	id := d.OpenApp("clock")
	d.State.ToggleFullscreen(id)
	d.State.SetShowDock(true)

	layers := d.windowLayers(time.Now())
	if len(layers) != 1 {
		t.Fatalf("layer count = %d, want 1", len(layers))
	}

	l := layers[0]
	if l.GetX() != 0 || l.GetY() != 0 {
		t.Errorf("fullscreen layer at (%d,%d), want the viewport origin", l.GetX(), l.GetY())
	}
	z := l.GetZ()
	if z <= config.ZIndexTopBar || z <= config.ZIndexDock || z <= config.ZIndexStageStrip {
		t.Errorf("fullscreen z = %d, must be above the chrome bars", z)
	}
	if z >= config.ZIndexNotification {
		t.Errorf("fullscreen z = %d, notifications and overlays must stay above it", z)
	}
}

func TestResizeRetilesWindows(t *testing.T) {
	d := newTestDesktop()
	d.OpenApp("clock")
	d.OpenApp("clock")
	d.ToggleTiling()

	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if d.Width != 120 || d.Height != 40 {
		t.Fatalf("size = %dx%d, want 120x40", d.Width, d.Height)
	}
	for _, w := range d.State.Windows {
		if w.X+w.Width > 120 {
			t.Errorf("window %s extends past the new width", w.ID)
		}
	}
}
