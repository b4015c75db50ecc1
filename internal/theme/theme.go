// Package theme provides color themes and styling for the desktop shell.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at startup. An empty name disables theming and the shell
// falls back to its built-in palette.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}

	return nil
}

// IDs returns the identifiers of every registered theme.
func IDs() []string {
	tint.NewDefaultRegistry()
	return tint.TintIDs()
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, or nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Desktop background fill.
func DesktopBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#16161e")
	}
	return t.Bg
}

func DesktopFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Window border colors. Desktop mode and app mode use different accents so
// the active input target is visible at a glance.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FAAAAA")
	}
	return t.Red
}

func BorderFocusedDesktop() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func BorderFocusedApp() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// Title bar button colors.
func ButtonFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Black
}

func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff5f57")
	}
	return t.BrightRed
}

func ButtonMinimize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#febc2e")
	}
	return t.BrightYellow
}

func ButtonMaximize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#28c840")
	}
	return t.BrightGreen
}

// Top bar colors.
func TopBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func TopBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func TopBarModeDesktop() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func TopBarModeApp() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

// Dock styling colors.
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func DockHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

func DockDimmed() color.Color {
	return lipgloss.Color("#808090")
}

func DockAccent() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func DockSeparator() color.Color {
	return lipgloss.Color("#303040")
}

// Stage-manager thumbnail strip colors.
func StageStripBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

func StageStripBorder() color.Color {
	return lipgloss.Color("8")
}

func StageStripActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func StageStripTitle() color.Color {
	return lipgloss.Color("7")
}

// Welcome app colors.
func WelcomeTitle() color.Color {
	return lipgloss.Color("14")
}

func WelcomeSubtitle() color.Color {
	return lipgloss.Color("11")
}

func WelcomeText() color.Color {
	return lipgloss.Color("7")
}

func WelcomeHighlight() color.Color {
	return lipgloss.Color("6")
}

// System monitor app colors.
func SysmonTitle() color.Color {
	return lipgloss.Color("14")
}

func SysmonLabel() color.Color {
	return lipgloss.Color("11")
}

func SysmonValue() color.Color {
	return lipgloss.Color("10")
}

func SysmonGraph() color.Color {
	return lipgloss.Color("13")
}

func SysmonBarFilled() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("10")
	}
	return t.BrightGreen
}

func SysmonBarEmpty() color.Color {
	return lipgloss.Color("8")
}

// Log viewer app colors.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

func LogViewerDebug() color.Color {
	return lipgloss.Color("12")
}

// Help overlay colors.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpKeyBadgeBg() color.Color {
	return lipgloss.Color("0")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// Notification colors.
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0000ee")
	}
	return t.Blue
}

func NotificationBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

func NotificationFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// CLI table colors for the theme listing command.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
