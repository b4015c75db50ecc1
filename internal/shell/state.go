package shell

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/layout"
)

// AppInfo is what the shell needs to know about an app to open a window for
// it: a display title and whether the app is single-instance. Everything
// else about the app is opaque to the shell.
type AppInfo struct {
	Title     string
	Singleton bool
}

// AppDirectory resolves an app ID to its open policy. The component registry
// implements this; a nil directory falls back to multi-instance windows
// titled by their app ID.
type AppDirectory interface {
	Info(appID string) AppInfo
}

// State is the canonical shell state. One instance exists per session; it is
// owned by the composition layer and mutated only through its methods.
// Unknown window IDs are always silent no-ops: input events race window
// closure and must never crash the shell.
type State struct {
	Windows  []*Window
	ActiveID string

	StageManager        bool
	ShowDock            bool
	ShowStageThumbnails bool

	Viewport layout.Viewport
	Apps     AppDirectory

	nextZ int
}

// NewState creates an empty shell for a viewport of the given size.
func NewState(width, height int, apps AppDirectory) *State {
	return &State{
		Viewport: layout.Viewport{
			Width:        width,
			Height:       height,
			TopMargin:    config.TopBarHeight,
			BottomMargin: config.DockHeight,
		},
		Apps:     apps,
		ShowDock: true,
	}
}

// Resize updates the viewport and repairs any geometry that depended on it:
// tiled layouts are recomputed and the stage-managed window is re-centered.
func (s *State) Resize(width, height int) {
	s.Viewport.Width = width
	s.Viewport.Height = height
	if s.anyTiled() {
		s.retile()
	}
	if s.StageManager {
		s.CenterActiveWindow()
	}
}

// Window returns the window with the given ID, or nil.
func (s *State) Window(id string) *Window {
	for _, w := range s.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ActiveWindow returns the focused window, or nil when nothing is focused.
func (s *State) ActiveWindow() *Window {
	if s.ActiveID == "" {
		return nil
	}
	return s.Window(s.ActiveID)
}

// VisibleWindows returns all non-minimized windows in insertion order.
func (s *State) VisibleWindows() []*Window {
	var out []*Window
	for _, w := range s.Windows {
		if w.Visible() {
			out = append(out, w)
		}
	}
	return out
}

// MinimizedWindows returns docked windows ordered by the time they were
// minimized.
func (s *State) MinimizedWindows() []*Window {
	var out []*Window
	for _, w := range s.Windows {
		if w.Minimized {
			out = append(out, w)
		}
	}
	slices.SortStableFunc(out, func(a, b *Window) int {
		return int(a.MinimizeOrder - b.MinimizeOrder)
	})
	return out
}

// ByZDescending returns the visible windows ordered top-most first.
func (s *State) ByZDescending() []*Window {
	out := s.VisibleWindows()
	slices.SortStableFunc(out, func(a, b *Window) int {
		return b.Z - a.Z
	})
	return out
}

// OpenWindow creates a window for the given app and focuses it. For
// singleton apps an existing window is restored and refocused instead of
// duplicated; the returned ID is stable either way.
func (s *State) OpenWindow(appID string) string {
	info := AppInfo{Title: appID}
	if s.Apps != nil {
		info = s.Apps.Info(appID)
	}

	if info.Singleton {
		for _, w := range s.Windows {
			if w.AppID == appID {
				if w.Minimized {
					s.RestoreWindow(w.ID)
				} else {
					s.FocusWindow(w.ID)
				}
				return w.ID
			}
		}
	}

	w := &Window{
		ID:    uuid.New().String(),
		AppID: appID,
		Title: info.Title,
	}
	s.placeNewWindow(w)
	s.Windows = append(s.Windows, w)
	s.FocusWindow(w.ID)

	if s.anyTiled() {
		w.Tiled = true
		s.retile()
	}
	if s.StageManager {
		s.CenterActiveWindow()
	}
	return w.ID
}

// placeNewWindow assigns the default centered geometry with a small cascade
// offset so consecutive windows don't stack perfectly.
func (s *State) placeNewWindow(w *Window) {
	vp := s.Viewport
	width := vp.Width / 2
	height := vp.UsableHeight() / 2
	width, height = layout.ClampSize(width, height, vp, config.MinWindowWidth, config.MinWindowHeight)

	r := layout.Center(width, height, vp)
	offset := (len(s.Windows) % 5) * 2
	w.X, w.Y = layout.ClampPosition(r.X+offset, r.Y+offset/2, height, vp)
	w.Width, w.Height = width, height
}

// CloseWindow removes the window and repairs the focus chain: the most
// recently focused remaining window becomes active. Tiled siblings are
// re-tiled so the grid stays gap-free.
func (s *State) CloseWindow(id string) {
	idx := -1
	for i, w := range s.Windows {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	wasTiled := s.Windows[idx].Tiled
	s.Windows = slices.Delete(s.Windows, idx, idx+1)

	if s.ActiveID == id {
		s.ActiveID = ""
		if top := s.topVisible(); top != nil {
			s.FocusWindow(top.ID)
		}
	}

	if wasTiled || s.anyTiled() {
		s.retile()
	}
	if s.StageManager {
		s.promoteStageWindow()
	}
}

// FocusWindow makes the window active and raises it above every other
// visible window. Focusing the already-active window, a minimized window, or
// an unknown ID does nothing.
func (s *State) FocusWindow(id string) {
	w := s.Window(id)
	if w == nil || w.Minimized {
		return
	}
	if s.ActiveID == id && w.Z == s.nextZ-1 {
		return
	}

	s.ActiveID = id
	s.nextZ++
	w.Z = s.nextZ
	s.compactZ()

	if s.StageManager {
		s.CenterActiveWindow()
	}
}

// compactZ renumbers z-indices to 0..n-1 preserving order, so values stay
// small over arbitrarily long sessions.
func (s *State) compactZ() {
	ordered := make([]*Window, len(s.Windows))
	copy(ordered, s.Windows)
	slices.SortStableFunc(ordered, func(a, b *Window) int {
		return a.Z - b.Z
	})
	for i, w := range ordered {
		w.Z = i
	}
	s.nextZ = len(ordered)
}

// topVisible returns the visible window with the highest z, or nil.
func (s *State) topVisible() *Window {
	var top *Window
	for _, w := range s.Windows {
		if !w.Visible() {
			continue
		}
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	return top
}

// MinimizeWindow sends the window to the dock, remembers its geometry, and
// hands focus to the next visible window.
func (s *State) MinimizeWindow(id string) {
	w := s.Window(id)
	if w == nil || w.Minimized {
		return
	}

	w.PreMinX, w.PreMinY = w.X, w.Y
	w.PreMinWidth, w.PreMinHeight = w.Width, w.Height
	w.Minimized = true
	w.MinimizeOrder = time.Now().UnixNano()

	if s.ActiveID == id {
		s.ActiveID = ""
		if top := s.topVisible(); top != nil {
			s.FocusWindow(top.ID)
		}
	}

	if s.anyTiled() {
		s.retile()
	}
	if s.StageManager {
		s.promoteStageWindow()
	}
}

// RestoreWindow brings a minimized window back to its pre-minimize geometry
// and focuses it.
func (s *State) RestoreWindow(id string) {
	w := s.Window(id)
	if w == nil || !w.Minimized {
		return
	}

	w.Minimized = false
	w.X, w.Y = w.PreMinX, w.PreMinY
	w.Width, w.Height = w.PreMinWidth, w.PreMinHeight
	s.FocusWindow(id)

	if s.anyTiled() {
		w.Tiled = true
		s.retile()
	}
}

// MaximizeWindow toggles the maximized state. Maximizing records the current
// geometry and unties the window; restoring returns it to the exact recorded
// position and size.
func (s *State) MaximizeWindow(id string) {
	w := s.Window(id)
	if w == nil || w.Minimized {
		return
	}

	if w.Maximized {
		w.Maximized = false
		w.X, w.Y = w.PreMaxX, w.PreMaxY
		w.Width, w.Height = w.PreMaxWidth, w.PreMaxHeight
		return
	}

	wasTiled := w.Tiled
	w.Tiled = false

	w.PreMaxX, w.PreMaxY = w.X, w.Y
	w.PreMaxWidth, w.PreMaxHeight = w.Width, w.Height
	w.Maximized = true

	vp := s.Viewport
	w.X, w.Y = 0, vp.TopMargin
	w.Width, w.Height = vp.Width, vp.UsableHeight()

	s.FocusWindow(id)
	if wasTiled && s.anyTiled() {
		s.retile()
	}
}

// ToggleFullscreen flips edge-to-edge presentation for the window. The
// stored geometry is untouched underneath; the renderer derives the
// viewport-covering rectangle from the flag.
func (s *State) ToggleFullscreen(id string) {
	w := s.Window(id)
	if w == nil || w.Minimized {
		return
	}
	w.Fullscreen = !w.Fullscreen
	if w.Fullscreen {
		s.FocusWindow(id)
	}
}

// TileWindow adds the window to the tiled set and recomputes the grid.
func (s *State) TileWindow(id string) {
	w := s.Window(id)
	if w == nil || w.Minimized || w.Tiled {
		return
	}
	w.Tiled = true
	w.Maximized = false
	w.Fullscreen = false
	s.retile()
}

// UntileWindow removes the window from the tiled set; the remaining tiled
// windows redistribute over the freed space.
func (s *State) UntileWindow(id string) {
	w := s.Window(id)
	if w == nil || !w.Tiled {
		return
	}
	w.Tiled = false
	s.retile()
}

// TileAllWindows marks every visible, non-maximized, non-fullscreen window
// as tiled and computes the grid partition.
func (s *State) TileAllWindows() {
	for _, w := range s.VisibleWindows() {
		if w.Maximized || w.Fullscreen {
			continue
		}
		w.Tiled = true
	}
	s.retile()
}

// retile recomputes the grid over the windows currently in the tiled set.
// Cells are filled in stacking order, most recently focused first, so the
// layout is stable under repeated toggling. The recompute is always total;
// there is no incremental path that could drift.
func (s *State) retile() {
	var tiled []*Window
	for _, w := range s.ByZDescending() {
		if !w.Tiled || w.Maximized || w.Fullscreen {
			continue
		}
		tiled = append(tiled, w)
	}
	if len(tiled) == 0 {
		return
	}

	rects := layout.Tile(len(tiled), s.Viewport)
	for i, w := range tiled {
		w.X, w.Y = rects[i].X, rects[i].Y
		w.Width, w.Height = rects[i].Width, rects[i].Height
	}
}

// AllTiled reports whether every visible, tileable window is currently
// tiled. Call sites use it to give the tile shortcut toggle semantics.
func (s *State) AllTiled() bool {
	any := false
	for _, w := range s.VisibleWindows() {
		if w.Maximized || w.Fullscreen {
			continue
		}
		if !w.Tiled {
			return false
		}
		any = true
	}
	return any
}

// UntileAll clears the tiled flag everywhere, leaving windows at their
// current (grid) geometry as free-floating windows.
func (s *State) UntileAll() {
	for _, w := range s.Windows {
		w.Tiled = false
	}
}

// AnyTiled reports whether any visible window is tiled.
func (s *State) AnyTiled() bool { return s.anyTiled() }

func (s *State) anyTiled() bool {
	for _, w := range s.Windows {
		if w.Tiled && w.Visible() {
			return true
		}
	}
	return false
}

// UpdateWindowPosition commits a window's position, typically once at the
// end of a drag gesture. The position is clamped so the title bar stays
// reachable between the top bar and the dock.
func (s *State) UpdateWindowPosition(id string, x, y int) {
	w := s.Window(id)
	if w == nil {
		return
	}
	w.X, w.Y = layout.ClampPosition(x, y, w.Height, s.Viewport)
}

// UpdateWindowSize commits a window's full frame in one transition so a
// resize from a left or top handle never renders an intermediate state with
// a stale origin.
func (s *State) UpdateWindowSize(id string, x, y, width, height int) {
	w := s.Window(id)
	if w == nil {
		return
	}
	width, height = layout.ClampSize(width, height, s.Viewport, config.MinWindowWidth, config.MinWindowHeight)
	w.Width, w.Height = width, height
	w.X, w.Y = layout.ClampPosition(x, y, height, s.Viewport)
}

// ToggleStageManager switches between free-desktop and stage-manager
// composition. Entering the mode promotes the active window (or the topmost
// visible one) to the centered slot.
func (s *State) ToggleStageManager() {
	s.StageManager = !s.StageManager
	if !s.StageManager {
		s.ShowStageThumbnails = false
		return
	}
	s.promoteStageWindow()
}

// promoteStageWindow guarantees the stage invariant: whenever any window is
// visible, exactly one is active and centered.
func (s *State) promoteStageWindow() {
	if !s.StageManager {
		return
	}
	if s.ActiveWindow() == nil || !s.ActiveWindow().Visible() {
		if top := s.topVisible(); top != nil {
			s.FocusWindow(top.ID)
			return // FocusWindow re-centers in stage mode
		}
		s.ActiveID = ""
		return
	}
	s.CenterActiveWindow()
}

// CenterActiveWindow recomputes the centered rectangle for the active window
// from its current size. Called on focus change and viewport resize while
// stage manager is on.
func (s *State) CenterActiveWindow() {
	w := s.ActiveWindow()
	if w == nil || w.Minimized || w.Fullscreen {
		return
	}
	r := layout.Center(w.Width, w.Height, s.Viewport)
	w.X, w.Y = r.X, r.Y
	w.Width, w.Height = r.Width, r.Height
}

// StageThumbnails returns the visible, non-active windows shown in the
// stage-manager strip, topmost first.
func (s *State) StageThumbnails() []*Window {
	if !s.StageManager {
		return nil
	}
	var out []*Window
	for _, w := range s.ByZDescending() {
		if w.ID == s.ActiveID {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SetShowDock sets the dock visibility flag. Transient: driven by hover and
// debounce timers, never persisted.
func (s *State) SetShowDock(show bool) { s.ShowDock = show }

// SetShowStageThumbnails sets the thumbnail-strip visibility flag.
func (s *State) SetShowStageThumbnails(show bool) { s.ShowStageThumbnails = show }
