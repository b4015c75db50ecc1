package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the user-facing configuration file, stored as TOML under the XDG
// config home.
type Config struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Shell       ShellConfig         `toml:"shell"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// AppearanceConfig controls theming and chrome.
type AppearanceConfig struct {
	Theme             string `toml:"theme"`
	BorderStyle       string `toml:"border_style"` // "rounded" or "normal"
	AnimationsEnabled bool   `toml:"animations_enabled"`
	ShowStatusBar     bool   `toml:"show_status_bar"`
}

// ShellConfig controls window-manager behavior.
type ShellConfig struct {
	DockAutoHide   bool     `toml:"dock_auto_hide"`
	StageManager   bool     `toml:"stage_manager"` // start in stage-manager mode
	PinnedApps     []string `toml:"pinned_apps"`   // dock launcher order
	DefaultAppID   string   `toml:"default_app"`   // opened when the shell starts empty
	HideDebounceMS int      `toml:"hide_debounce_ms"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			Theme:             "",
			BorderStyle:       "rounded",
			AnimationsEnabled: true,
			ShowStatusBar:     true,
		},
		Shell: ShellConfig{
			DockAutoHide:   false,
			StageManager:   false,
			PinnedApps:     []string{"welcome", "clock", "sysmon", "logs"},
			DefaultAppID:   "welcome",
			HideDebounceMS: int(HideDebounce.Milliseconds()),
		},
		Keybindings: defaultKeybindings(),
	}
}

// Path returns the location of the config file, creating parent directories
// as needed.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("deskos", "config.toml"))
}

// Load reads the config file, filling in defaults for anything unset. A
// missing file is not an error; the defaults are returned unchanged.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := Path()
	if err != nil {
		return cfg, fmt.Errorf("resolving config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config as TOML.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Apply pushes file-level settings into the process-wide switches.
func (c *Config) Apply() {
	AnimationsEnabled = c.Appearance.AnimationsEnabled
	SetBorderStyle(c.Appearance.BorderStyle)
}

// normalize repairs values a hand-edited file may have broken.
func (c *Config) normalize() {
	if c.Appearance.BorderStyle != "rounded" && c.Appearance.BorderStyle != "normal" {
		c.Appearance.BorderStyle = "rounded"
	}
	if c.Shell.HideDebounceMS <= 0 {
		c.Shell.HideDebounceMS = int(HideDebounce.Milliseconds())
	}
	if c.Keybindings == nil {
		c.Keybindings = defaultKeybindings()
	} else {
		// Unmentioned actions keep their default chords.
		for action, keys := range defaultKeybindings() {
			if _, ok := c.Keybindings[action]; !ok {
				c.Keybindings[action] = keys
			}
		}
	}
}
