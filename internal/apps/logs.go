package apps

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/theme"
)

// LogLevel classifies a log entry for coloring.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DBG"
	case LogInfo:
		return "INF"
	case LogWarn:
		return "WRN"
	case LogError:
		return "ERR"
	}
	return "???"
}

// LogEntry is one line in the shell log.
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// LogBuffer is a bounded ring of shell log entries. Writes can come from
// any goroutine; the log viewer reads a snapshot each frame.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogBuffer returns an empty buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{}
}

// Append adds an entry, evicting the oldest past the cap.
func (b *LogBuffer) Append(level LogLevel, format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(b.entries) > config.MaxLogMessages {
		b.entries = b.entries[len(b.entries)-config.MaxLogMessages:]
	}
}

// Tail returns up to n most recent entries, oldest first.
func (b *LogBuffer) Tail(n int) []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]LogEntry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Len returns the number of retained entries.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear drops every retained entry.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// logViewer renders the tail of the shared log buffer.
type logViewer struct {
	buffer *LogBuffer
}

func newLogViewer(buffer *LogBuffer) *logViewer {
	if buffer == nil {
		buffer = NewLogBuffer()
	}
	return &logViewer{buffer: buffer}
}

func (v *logViewer) HandleKey(key string) bool {
	if key == "c" {
		v.buffer.Clear()
		return true
	}
	return false
}

func (v *logViewer) TitleControls() []TitleControl {
	return []TitleControl{{Glyph: "⊘", Key: "c"}}
}

func levelColor(l LogLevel) color.Color {
	switch l {
	case LogError:
		return theme.LogViewerError()
	case LogWarn:
		return theme.LogViewerWarn()
	case LogDebug:
		return theme.LogViewerDebug()
	default:
		return theme.LogViewerInfo()
	}
}

func (v *logViewer) Render(width, height int, focused bool) string {
	timeStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	entries := v.buffer.Tail(height)
	if len(entries) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("no log entries")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		levelStyle := lipgloss.NewStyle().Foreground(levelColor(e.Level)).Bold(true)
		line := fmt.Sprintf("%s %s %s",
			timeStyle.Render(e.Time.Format("15:04:05")),
			levelStyle.Render(e.Level.String()),
			e.Message)
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
	}

	return strings.Join(lines, "\n")
}
