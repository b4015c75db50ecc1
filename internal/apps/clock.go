package apps

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/theme"
)

// clock shows the wall-clock time, updated on the shell's frame clock.
type clock struct {
	now      time.Time
	twelveHr bool
}

func newClock() *clock {
	return &clock{now: time.Now()}
}

func (c *clock) Tick(now time.Time) {
	c.now = now
}

func (c *clock) HandleKey(key string) bool {
	if key == "t" {
		c.twelveHr = !c.twelveHr
		return true
	}
	return false
}

func (c *clock) TitleControls() []TitleControl {
	return []TitleControl{{Glyph: "◷", Key: "t"}}
}

func (c *clock) Render(width, height int, focused bool) string {
	timeStyle := lipgloss.NewStyle().
		Foreground(theme.WelcomeTitle()).
		Bold(true)

	dateStyle := lipgloss.NewStyle().
		Foreground(theme.WelcomeText())

	format := "15:04:05"
	if c.twelveHr {
		format = "3:04:05 PM"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeStyle.Render(c.now.Format(format)),
		dateStyle.Render(c.now.Format("Mon, Jan 2 2006")),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
