package config_test

import (
	"testing"

	"github.com/deskos/deskos/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Appearance.BorderStyle == "" {
		t.Error("Expected default border style to be set")
	}

	if len(cfg.Shell.PinnedApps) == 0 {
		t.Error("Expected default pinned apps")
	}

	if cfg.Shell.DefaultAppID == "" {
		t.Error("Expected a default app")
	}

	if cfg.Shell.HideDebounceMS <= 0 {
		t.Errorf("Expected positive hide debounce, got %d", cfg.Shell.HideDebounceMS)
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	requiredActions := []string{
		config.ActionNewWindow,
		config.ActionCloseWindow,
		config.ActionNextWindow,
		config.ActionMaximizeWindow,
		config.ActionTileToggle,
		config.ActionStageManager,
	}

	for _, action := range requiredActions {
		keys, ok := cfg.Keybindings[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key", action)
		}
	}
}

func TestKeybindRegistryLookup(t *testing.T) {
	registry := config.NewKeybindRegistry(map[string][]string{
		config.ActionMaximizeWindow: {"space", "f"},
		config.ActionCloseWindow:    {"x"},
	})

	tests := []struct {
		key    string
		action string
	}{
		{"space", config.ActionMaximizeWindow},
		{"f", config.ActionMaximizeWindow},
		{"F", config.ActionMaximizeWindow}, // case-insensitive
		{" x ", config.ActionCloseWindow},  // whitespace-tolerant
		{"z", ""},
	}

	for _, tt := range tests {
		if got := registry.ActionFor(tt.key); got != tt.action {
			t.Errorf("ActionFor(%q) = %q, want %q", tt.key, got, tt.action)
		}
	}
}

func TestKeybindRegistryDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(map[string][]string{
		config.ActionMaximizeWindow: {"space", "f"},
	})

	if got := registry.KeysForDisplay(config.ActionMaximizeWindow); got != "space / f" {
		t.Errorf("KeysForDisplay = %q", got)
	}
	if got := registry.KeysForDisplay("missing"); got != "" {
		t.Errorf("KeysForDisplay for missing action = %q, want empty", got)
	}
}

func TestKeybindRegistryCustomBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings[config.ActionQuit] = []string{"ctrl+c"}

	registry := config.NewKeybindRegistry(cfg.Keybindings)
	if registry.ActionFor("ctrl+c") != config.ActionQuit {
		t.Error("custom binding lost")
	}
}
