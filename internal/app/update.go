package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
)

// TickerMsg is the frame clock. Exported so the input package can emit it.
type TickerMsg time.Time

// HideDockMsg fires when the dock auto-hide debounce elapses. The
// generation lets a re-hover invalidate timers already in flight.
type HideDockMsg struct {
	Gen int
}

// HideStripMsg fires when the thumbnail-strip debounce elapses.
type HideStripMsg struct {
	Gen int
}

// ConfigReloadedMsg carries a freshly parsed config from the file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// InputHandler handles keyboard and mouse messages. Registered by the input
// package at startup to avoid a circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler. Must be called before the
// update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd schedules the next frame at the normal rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// SlowTickCmd schedules the next frame at the reduced interaction rate, so
// mouse events are never starved by rendering during a drag.
func SlowTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// ScheduleDockHide arms the dock auto-hide debounce and returns the command
// carrying its generation.
func (d *Desktop) ScheduleDockHide() tea.Cmd {
	d.DockHideGen++
	gen := d.DockHideGen
	return tea.Tick(d.hideDebounce(), func(time.Time) tea.Msg {
		return HideDockMsg{Gen: gen}
	})
}

// CancelDockHide invalidates any armed dock-hide timer.
func (d *Desktop) CancelDockHide() {
	d.DockHideGen++
}

// ScheduleStripHide arms the thumbnail-strip debounce.
func (d *Desktop) ScheduleStripHide() tea.Cmd {
	d.StripHideGen++
	gen := d.StripHideGen
	return tea.Tick(d.hideDebounce(), func(time.Time) tea.Msg {
		return HideStripMsg{Gen: gen}
	})
}

// CancelStripHide invalidates any armed strip-hide timer.
func (d *Desktop) CancelStripHide() {
	d.StripHideGen++
}

func (d *Desktop) hideDebounce() time.Duration {
	if d.Config != nil && d.Config.Shell.HideDebounceMS > 0 {
		return time.Duration(d.Config.Shell.HideDebounceMS) * time.Millisecond
	}
	return config.HideDebounce
}

// Update handles all incoming messages.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		now := time.Time(msg)

		d.Animations.Advance(now)
		d.tickComponents(now)
		d.expireNotifications(now)

		if d.InteractionMode {
			return d, SlowTickCmd()
		}
		return d, TickCmd()

	case HideDockMsg:
		if msg.Gen == d.DockHideGen && d.Config.Shell.DockAutoHide {
			d.State.SetShowDock(false)
		}
		return d, nil

	case HideStripMsg:
		if msg.Gen == d.StripHideGen {
			d.State.SetShowStageThumbnails(false)
		}
		return d, nil

	case ConfigReloadedMsg:
		d.applyConfig(msg.Config)
		return d, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if inputHandler != nil {
			return inputHandler(msg, d)
		}
		return d, nil

	case tea.WindowSizeMsg:
		d.Width = msg.Width
		d.Height = msg.Height

		before := d.snapshotRects()
		d.State.Resize(msg.Width, msg.Height)
		d.animateMovedWindows(before)
		return d, nil
	}

	return d, nil
}

// applyConfig swaps in a hot-reloaded configuration. Keybindings take
// effect immediately; appearance changes land on the next frame.
func (d *Desktop) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	d.Config = cfg
	d.Keybinds = config.NewKeybindRegistry(cfg.Keybindings)
	cfg.Apply()

	if !cfg.Shell.DockAutoHide {
		d.State.SetShowDock(true)
	}
	d.Notify(apps.LogInfo, "config reloaded")
}
