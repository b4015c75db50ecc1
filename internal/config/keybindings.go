package config

import (
	"sort"
	"strings"
)

// KeybindRegistry maps action names to the key chords that trigger them, and
// back. Built once from config at startup; lookups happen on every keypress.
type KeybindRegistry struct {
	byAction map[string][]string
	byKey    map[string]string
}

// Shell actions. Keybindings in the config file are keyed by these names.
const (
	ActionNewWindow      = "new_window"
	ActionCloseWindow    = "close_window"
	ActionRenameWindow   = "rename_window"
	ActionNextWindow     = "next_window"
	ActionPrevWindow     = "prev_window"
	ActionMinimizeWindow = "minimize_window"
	ActionMaximizeWindow = "maximize_window"
	ActionFullscreen     = "toggle_fullscreen"
	ActionTileToggle     = "toggle_tiling"
	ActionStageManager   = "toggle_stage_manager"
	ActionToggleDock     = "toggle_dock"
	ActionEnterAppMode   = "enter_app_mode"
	ActionLeaveAppMode   = "leave_app_mode"
	ActionToggleHelp     = "toggle_help"
	ActionToggleLogs     = "toggle_logs"
	ActionQuit           = "quit"
)

func defaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionNewWindow:      {"n"},
		ActionCloseWindow:    {"x", "q"},
		ActionRenameWindow:   {"r"},
		ActionNextWindow:     {"tab", "j"},
		ActionPrevWindow:     {"shift+tab", "k"},
		ActionMinimizeWindow: {"m"},
		ActionMaximizeWindow: {"space", "f"},
		ActionFullscreen:     {"shift+f"},
		ActionTileToggle:     {"t"},
		ActionStageManager:   {"s"},
		ActionToggleDock:     {"d"},
		ActionEnterAppMode:   {"enter", "i"},
		ActionLeaveAppMode:   {"ctrl+b"},
		ActionToggleHelp:     {"?"},
		ActionToggleLogs:     {"l"},
		ActionQuit:           {"ctrl+q"},
	}
}

// NewKeybindRegistry builds a registry from the action→keys table. Later
// bindings win when two actions claim the same key.
func NewKeybindRegistry(bindings map[string][]string) *KeybindRegistry {
	r := &KeybindRegistry{
		byAction: make(map[string][]string, len(bindings)),
		byKey:    make(map[string]string),
	}

	// Deterministic iteration so duplicate-key resolution is stable.
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		keys := bindings[action]
		r.byAction[action] = keys
		for _, key := range keys {
			r.byKey[normalizeKey(key)] = action
		}
	}
	return r
}

// ActionFor resolves a pressed key to an action name, or "".
func (r *KeybindRegistry) ActionFor(key string) string {
	return r.byKey[normalizeKey(key)]
}

// KeysFor returns the chords bound to an action, for help rendering.
func (r *KeybindRegistry) KeysFor(action string) []string {
	return r.byAction[action]
}

// KeysForDisplay returns the chords joined for display, e.g. "space / f".
func (r *KeybindRegistry) KeysForDisplay(action string) string {
	return strings.Join(r.byAction[action], " / ")
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
