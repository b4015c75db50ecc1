// Package apps hosts the application registry and the built-in apps. A
// window owns exactly one app component; the shell treats the component's
// rendered content as opaque and never reaches into it.
package apps

import (
	"fmt"
	"sort"
	"time"

	"github.com/deskos/deskos/internal/shell"
)

// Component is the content of a window. Render is called every frame with
// the window's inner dimensions.
type Component interface {
	Render(width, height int, focused bool) string
}

// KeyHandler is implemented by components that accept keyboard input while
// the shell is in app mode. HandleKey returns true when the key was
// consumed.
type KeyHandler interface {
	HandleKey(key string) bool
}

// Ticker is implemented by components that update on the shell's frame
// clock, such as the clock and system monitor.
type Ticker interface {
	Tick(now time.Time)
}

// TitleControl is an app-supplied title-bar button. Clicking it delivers
// Key to the component exactly as a keypress in app mode would.
type TitleControl struct {
	Glyph string // single-cell glyph shown in the title bar
	Key   string
}

// TitleBarController is implemented by components that add their own
// buttons to the window title bar, next to the shell's window buttons.
type TitleBarController interface {
	TitleControls() []TitleControl
}

// Manifest describes an installable app.
type Manifest struct {
	ID        string
	Title     string
	Icon      string
	Singleton bool
	New       func() Component
}

// Registry maps app IDs to manifests. It implements shell.AppDirectory so
// the window store can look up titles and singleton flags without importing
// this package.
type Registry struct {
	order []string
	byID  map[string]Manifest
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Manifest)}
}

// Register adds a manifest. Registering the same ID twice is a programming
// error and is reported rather than silently overwritten.
func (r *Registry) Register(m Manifest) error {
	if m.ID == "" {
		return fmt.Errorf("app manifest has no ID")
	}
	if m.New == nil {
		return fmt.Errorf("app %q has no constructor", m.ID)
	}
	if _, ok := r.byID[m.ID]; ok {
		return fmt.Errorf("app %q already registered", m.ID)
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

// Lookup returns the manifest for an app ID.
func (r *Registry) Lookup(id string) (Manifest, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Resolve returns the manifest for an app ID, falling back to a placeholder
// manifest for unknown IDs so a stale config entry still opens a window.
func (r *Registry) Resolve(id string) Manifest {
	if m, ok := r.byID[id]; ok {
		return m
	}
	return Manifest{
		ID:    id,
		Title: id,
		Icon:  "?",
		New:   func() Component { return newPlaceholder(id) },
	}
}

// New instantiates the component for an app ID.
func (r *Registry) New(id string) Component {
	return r.Resolve(id).New()
}

// Manifests returns all registered manifests in registration order.
func (r *Registry) Manifests() []Manifest {
	out := make([]Manifest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns the registered app IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	return ids
}

// Info implements shell.AppDirectory.
func (r *Registry) Info(appID string) shell.AppInfo {
	m := r.Resolve(appID)
	return shell.AppInfo{Title: m.Title, Singleton: m.Singleton}
}

// Builtins returns a registry preloaded with the stock apps. The log viewer
// shares the given buffer with the shell's logger.
func Builtins(logs *LogBuffer) *Registry {
	r := NewRegistry()
	for _, m := range []Manifest{
		{ID: "welcome", Title: "Welcome", Icon: "~", Singleton: true, New: func() Component { return newWelcome() }},
		{ID: "clock", Title: "Clock", Icon: "@", Singleton: false, New: func() Component { return newClock() }},
		{ID: "sysmon", Title: "System Monitor", Icon: "%", Singleton: true, New: func() Component { return newSysmon() }},
		{ID: "logs", Title: "Logs", Icon: "=", Singleton: true, New: func() Component { return newLogViewer(logs) }},
	} {
		// Built-in IDs are unique by construction.
		_ = r.Register(m)
	}
	return r
}
