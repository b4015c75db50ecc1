// Package shell holds the authoritative state of the desktop: every open
// window, the focus chain, and the global composition modes (stage manager,
// dock and thumbnail visibility). All transitions are synchronous and pure;
// rendering and input live elsewhere and observe this state.
package shell

// Window is one managed surface: geometry, stacking order, and lifecycle
// flags for a single open application instance. The shell never looks inside
// the app it hosts; AppID is only a key into the component registry.
type Window struct {
	ID    string
	AppID string
	Title string

	X      int
	Y      int
	Width  int
	Height int
	Z      int

	Minimized  bool
	Maximized  bool
	Tiled      bool
	Fullscreen bool

	// Geometry to restore when leaving the maximized state.
	PreMaxX      int
	PreMaxY      int
	PreMaxWidth  int
	PreMaxHeight int

	// Geometry to restore when leaving the dock.
	PreMinX      int
	PreMinY      int
	PreMinWidth  int
	PreMinHeight int

	// MinimizeOrder is the unix-nano timestamp of the minimize, used to keep
	// dock entries in a stable order.
	MinimizeOrder int64
}

// Visible reports whether the window takes part in desktop composition:
// minimized windows live only in the dock.
func (w *Window) Visible() bool {
	return !w.Minimized
}

// Floating reports whether the window is positioned by its own stored
// geometry rather than by the tiler or a viewport-covering mode.
func (w *Window) Floating() bool {
	return !w.Tiled && !w.Maximized && !w.Fullscreen
}

// CanResize reports whether direct-manipulation resize handles are active.
// Tiled, maximized and fullscreen windows have externally owned geometry.
func (w *Window) CanResize() bool {
	return !w.Maximized && !w.Tiled && !w.Fullscreen
}

// CanDrag reports whether title-bar dragging is allowed. Dragging a tiled
// window is permitted (it untiles on gesture start); fullscreen and
// maximized windows are pinned.
func (w *Window) CanDrag() bool {
	return !w.Maximized && !w.Fullscreen
}

// Contains reports whether the viewport cell (x, y) lies inside the window.
func (w *Window) Contains(x, y int) bool {
	return x >= w.X && x < w.X+w.Width && y >= w.Y && y < w.Y+w.Height
}
