package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/pool"
	"github.com/deskos/deskos/internal/theme"
)

// DockItemKind distinguishes app launchers from minimized-window pills.
type DockItemKind int

const (
	// DockLauncher opens (or refocuses) an app.
	DockLauncher DockItemKind = iota
	// DockMinimized restores a docked window.
	DockMinimized
)

// DockItem is one clickable cell in the dock. The same geometry feeds both
// rendering and hit testing so the two can never drift apart.
type DockItem struct {
	Kind     DockItemKind
	AppID    string
	WindowID string
	Label    string
	X        int
	Width    int
}

// dockItems lays out the dock contents: pinned launchers on the left half,
// minimized windows after the separator, centered as a group.
func (d *Desktop) dockItems() []DockItem {
	var items []DockItem

	for _, appID := range d.Config.Shell.PinnedApps {
		m := d.Registry.Resolve(appID)
		label := fmt.Sprintf(" %s %s ", m.Icon, m.Title)
		items = append(items, DockItem{
			Kind:  DockLauncher,
			AppID: appID,
			Label: label,
			Width: lipgloss.Width(label),
		})
	}

	minimized := d.State.MinimizedWindows()
	for i, w := range minimized {
		name := ansi.Truncate(w.Title, 12, "…")
		label := fmt.Sprintf(" %d:%s ", i+1, name)
		items = append(items, DockItem{
			Kind:     DockMinimized,
			AppID:    w.AppID,
			WindowID: w.ID,
			Label:    label,
			Width:    lipgloss.Width(label),
		})
	}

	// Center the whole row, one space between items, a gap of three around
	// the launcher/minimized boundary.
	total := 0
	for i := range items {
		if i > 0 {
			total++
		}
		total += items[i].Width
	}
	if len(minimized) > 0 && len(items) > len(minimized) {
		total += 2
	}

	x := max((d.Width-total)/2, 0)
	launchers := len(items) - len(minimized)
	for i := range items {
		if i > 0 {
			x++
		}
		if i == launchers && launchers > 0 {
			x += 2
		}
		items[i].X = x
		x += items[i].Width
	}
	return items
}

// DockItemAt returns the dock item under a screen cell, if any. The dock
// occupies the bottom rows; only the content row is clickable.
func (d *Desktop) DockItemAt(x, y int) (DockItem, bool) {
	if !d.State.ShowDock || y != d.Height-1 {
		return DockItem{}, false
	}
	for _, item := range d.dockItems() {
		if x >= item.X && x < item.X+item.Width {
			return item, true
		}
	}
	return DockItem{}, false
}

// InDockZone reports whether a screen cell falls inside the reserved dock
// rows.
func (d *Desktop) InDockZone(y int) bool {
	return y >= d.Height-config.DockHeight
}

// dockStatus returns the status cell shown at the right end of the dock's
// separator row: CPU and RAM readings plus the clock. Samples are throttled
// on the same interval as the system monitor's.
func (d *Desktop) dockStatus() string {
	now := time.Now()
	if now.Sub(d.statusSampled) >= config.SysmonSampleInterval {
		d.statusSampled = now
		parts := make([]string, 0, 2)
		if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
			parts = append(parts, fmt.Sprintf("CPU %.0f%%", pct[0]))
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			parts = append(parts, fmt.Sprintf("RAM %.0f%%", vm.UsedPercent))
		}
		d.statusText = strings.Join(parts, "  ")
	}

	status := now.Format("15:04")
	if d.statusText != "" {
		status = d.statusText + "  " + status
	}
	return status
}

// renderDock draws the dock: a separator line with the status cell and the
// item row.
func (d *Desktop) renderDock() string {
	sepStyle := lipgloss.NewStyle().Foreground(theme.DockSeparator())

	status := d.dockStatus()
	sepWidth := d.Width - lipgloss.Width(status) - 3
	var separator string
	if sepWidth > 0 {
		separator = sepStyle.Render(strings.Repeat("─", sepWidth)+" ") +
			lipgloss.NewStyle().Foreground(theme.DockDimmed()).Render(status) +
			sepStyle.Render(" ─")
	} else {
		separator = sepStyle.Render(strings.Repeat("─", max(d.Width, 0)))
	}

	items := d.dockItems()

	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	cursor := 0
	for _, item := range items {
		if item.X > cursor {
			b.WriteString(strings.Repeat(" ", item.X-cursor))
			cursor = item.X
		}

		style := lipgloss.NewStyle().Foreground(theme.DockFg()).Background(theme.DockBg())
		switch item.Kind {
		case DockLauncher:
			if d.State.ActiveWindow() != nil && d.State.ActiveWindow().AppID == item.AppID {
				style = style.Foreground(theme.DockHighlight())
			}
		case DockMinimized:
			style = style.Foreground(theme.DockAccent())
		}
		if item.X <= d.MouseX && d.MouseX < item.X+item.Width && d.MouseY == d.Height-1 {
			style = style.Bold(true).Foreground(theme.DockHighlight())
		}

		b.WriteString(style.Render(item.Label))
		cursor += item.Width
	}
	if cursor < d.Width {
		b.WriteString(strings.Repeat(" ", d.Width-cursor))
	}

	line := lipgloss.NewStyle().Background(theme.DockBg()).Render(b.String())
	return separator + "\n" + line
}
