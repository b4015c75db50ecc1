package apps

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/theme"
)

const cpuHistoryLen = 10

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sysmon shows live CPU, memory, and load readings. Samples are taken on
// the frame clock, throttled so gopsutil is not hit sixty times a second.
type sysmon struct {
	lastSample time.Time

	cpuPercent float64
	cpuHistory []float64
	memory     *mem.VirtualMemoryStat
	loadAvg    *load.AvgStat

	hostname string
	platform string
	uptime   time.Duration
}

func newSysmon() *sysmon {
	s := &sysmon{}
	if info, err := host.Info(); err == nil {
		s.hostname = info.Hostname
		s.platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	}
	s.sample(time.Now())
	return s
}

func (s *sysmon) Tick(now time.Time) {
	if now.Sub(s.lastSample) < config.SysmonSampleInterval {
		return
	}
	s.sample(now)
}

func (s *sysmon) sample(now time.Time) {
	s.lastSample = now

	// Zero interval means "since my previous call", which never blocks.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.cpuPercent = percents[0]
		s.cpuHistory = append(s.cpuHistory, percents[0])
		if len(s.cpuHistory) > cpuHistoryLen {
			s.cpuHistory = s.cpuHistory[1:]
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.memory = vm
	}
	if avg, err := load.Avg(); err == nil {
		s.loadAvg = avg
	}
	if up, err := host.Uptime(); err == nil {
		s.uptime = time.Duration(up) * time.Second
	}
}

func (s *sysmon) Render(width, height int, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.SysmonLabel())
	valueStyle := lipgloss.NewStyle().Foreground(theme.SysmonValue())
	graphStyle := lipgloss.NewStyle().Foreground(theme.SysmonGraph())

	barWidth := width - 18
	if barWidth > 30 {
		barWidth = 30
	}
	if barWidth < 5 {
		barWidth = 5
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.SysmonTitle()).Bold(true).Render(s.hostname),
		lipgloss.NewStyle().Foreground(theme.SysmonLabel()).Render(s.platform),
		"",
	}

	lines = append(lines, fmt.Sprintf("%s %s %s",
		labelStyle.Render("cpu "),
		renderBar(s.cpuPercent, barWidth),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", s.cpuPercent))))

	if len(s.cpuHistory) > 1 {
		lines = append(lines, fmt.Sprintf("     %s", graphStyle.Render(sparkline(s.cpuHistory))))
	}

	if s.memory != nil {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			labelStyle.Render("mem "),
			renderBar(s.memory.UsedPercent, barWidth),
			valueStyle.Render(fmt.Sprintf("%5.1f%%", s.memory.UsedPercent))))
		lines = append(lines, fmt.Sprintf("     %s / %s",
			valueStyle.Render(formatBytes(s.memory.Used)),
			labelStyle.Render(formatBytes(s.memory.Total))))
	}

	lines = append(lines, "")
	if s.loadAvg != nil {
		lines = append(lines, fmt.Sprintf("%s %s",
			labelStyle.Render("load"),
			valueStyle.Render(fmt.Sprintf("%.2f %.2f %.2f", s.loadAvg.Load1, s.loadAvg.Load5, s.loadAvg.Load15))))
	}
	if s.uptime > 0 {
		lines = append(lines, fmt.Sprintf("%s %s",
			labelStyle.Render("up  "),
			valueStyle.Render(formatUptime(s.uptime))))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(theme.SysmonBarFilled())
	emptyStyle := lipgloss.NewStyle().Foreground(theme.SysmonBarEmpty())
	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}

func sparkline(samples []float64) string {
	var b strings.Builder
	for _, v := range samples {
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
