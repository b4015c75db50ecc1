package app

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/theme"
)

type helpEntry struct {
	action string
	desc   string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{
		title: "Windows",
		entries: []helpEntry{
			{config.ActionNewWindow, "open a new window"},
			{config.ActionCloseWindow, "close the focused window"},
			{config.ActionRenameWindow, "rename the focused window"},
			{config.ActionNextWindow, "focus next window"},
			{config.ActionPrevWindow, "focus previous window"},
			{config.ActionMinimizeWindow, "minimize to the dock"},
			{config.ActionMaximizeWindow, "toggle maximize"},
			{config.ActionFullscreen, "toggle fullscreen"},
		},
	},
	{
		title: "Layout",
		entries: []helpEntry{
			{config.ActionTileToggle, "toggle grid tiling"},
			{config.ActionStageManager, "toggle stage manager"},
			{config.ActionToggleDock, "show or hide the dock"},
		},
	},
	{
		title: "Modes",
		entries: []helpEntry{
			{config.ActionEnterAppMode, "type into the focused app"},
			{config.ActionLeaveAppMode, "back to desktop shortcuts"},
			{config.ActionToggleHelp, "toggle this help"},
			{config.ActionToggleLogs, "open the log viewer"},
			{config.ActionQuit, "quit"},
		},
	},
}

// renderHelp draws the keybinding reference overlay from the live registry,
// so remapped keys show their configured chords.
func (d *Desktop) renderHelp() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Background(theme.HelpKeyBadgeBg()).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())
	titleStyle := lipgloss.NewStyle().Foreground(theme.HelpBorder()).Bold(true)

	keyWidth := 0
	for _, section := range helpSections {
		for _, e := range section.entries {
			if w := lipgloss.Width(d.Keybinds.KeysForDisplay(e.action)); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var blocks []string
	for _, section := range helpSections {
		lines := []string{titleStyle.Render(section.title)}
		for _, e := range section.entries {
			keys := d.Keybinds.KeysForDisplay(e.action)
			pad := strings.Repeat(" ", max(keyWidth-lipgloss.Width(keys), 0))
			lines = append(lines, keyStyle.Render(keys)+pad+"  "+descStyle.Render(e.desc))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	body := strings.Join(blocks, "\n\n")
	return lipgloss.NewStyle().
		Border(config.Border()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(body)
}
