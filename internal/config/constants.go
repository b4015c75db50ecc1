// Package config holds shell constants, the user configuration file, and the
// keybinding registry.
package config

import "time"

// Window geometry bounds. Sizes are in terminal cells; a window smaller than
// this cannot show its chrome and at least one content row.
const (
	MinWindowWidth  = 20
	MinWindowHeight = 6
)

// Shell chrome heights.
const (
	TopBarHeight = 1
	DockHeight   = 2
)

// Stage manager layout.
const (
	StageThumbnailWidth = 18
	StageStripColumns   = 22 // thumbnail width + strip padding
	StageTriggerZone    = 2  // hover columns at the left edge that reveal the strip
)

// HideDebounce is how long the thumbnail strip and the auto-hidden dock stay
// visible after the pointer leaves them. Re-entering before it fires cancels
// the hide.
const HideDebounce = 1300 * time.Millisecond

// DoubleClickInterval is the longest gap between two title-bar clicks that
// still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// Frame rates for the tick loop. The interaction rate is lower so mouse
// events are never starved by rendering.
const (
	NormalFPS      = 60
	InteractionFPS = 30
)

// Animation timing.
const (
	DefaultAnimationDuration = 150 * time.Millisecond
	FastAnimationDuration    = 100 * time.Millisecond
)

// AnimationsEnabled is a process-wide switch, settable from config.
var AnimationsEnabled = true

// GetAnimationDuration returns the standard animation duration, or zero when
// animations are disabled so transitions complete on the next frame.
func GetAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return DefaultAnimationDuration
}

// NotificationDuration is how long transient notifications stay on screen.
const NotificationDuration = 2 * time.Second

// MaxLogMessages bounds the in-shell log ring buffer.
const MaxLogMessages = 500

// ZIndexAnimating is the stacking order given to windows mid-animation so
// they render above everything they fly over.
const ZIndexAnimating = 1 << 20

// Stacking order for shell chrome. Windows use compacted indices starting at
// zero, so chrome starts well above them. A fullscreen window covers the
// chrome bars; only notifications and modal overlays draw over it.
const (
	ZIndexStageStrip   = ZIndexAnimating + 10
	ZIndexDock         = ZIndexAnimating + 20
	ZIndexTopBar       = ZIndexAnimating + 30
	ZIndexFullscreen   = ZIndexAnimating + 35
	ZIndexNotification = ZIndexAnimating + 40
	ZIndexHelp         = ZIndexAnimating + 50
	ZIndexRename       = ZIndexAnimating + 55
	ZIndexQuitConfirm  = ZIndexAnimating + 60
)

// SysmonSampleInterval is how often the system monitor refreshes its
// readings.
const SysmonSampleInterval = 500 * time.Millisecond
