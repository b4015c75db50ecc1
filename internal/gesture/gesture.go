// Package gesture tracks in-flight drag and resize interactions. While a
// gesture is active the controller owns a scratch frame that follows the
// pointer; the window store only sees the final geometry, written once when
// the pointer is released.
package gesture

import (
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/shell"
)

// Direction is the window edge or corner a resize gesture grabs.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// String returns the compass abbreviation, matching the cursor hints.
func (d Direction) String() string {
	switch d {
	case North:
		return "n"
	case South:
		return "s"
	case East:
		return "e"
	case West:
		return "w"
	case NorthEast:
		return "ne"
	case NorthWest:
		return "nw"
	case SouthEast:
		return "se"
	case SouthWest:
		return "sw"
	}
	return "?"
}

// effects describes how a direction maps pointer deltas onto the frame.
// Edges marked "moves" anchor the opposite edge, so growing from the north
// or west shifts the origin.
type effects struct {
	adjustsWidth  bool
	adjustsHeight bool
	movesX        bool
	movesY        bool
}

var directionEffects = map[Direction]effects{
	North:     {adjustsHeight: true, movesY: true},
	South:     {adjustsHeight: true},
	East:      {adjustsWidth: true},
	West:      {adjustsWidth: true, movesX: true},
	NorthEast: {adjustsWidth: true, adjustsHeight: true, movesY: true},
	NorthWest: {adjustsWidth: true, adjustsHeight: true, movesX: true, movesY: true},
	SouthEast: {adjustsWidth: true, adjustsHeight: true},
	SouthWest: {adjustsWidth: true, adjustsHeight: true, movesX: true},
}

// Frame is the transient geometry of the window under the pointer. It lives
// only for the duration of a gesture.
type Frame struct {
	X, Y          int
	Width, Height int
}

type phase int

const (
	idle phase = iota
	dragging
	resizing
)

// Controller is the drag/resize state machine. At most one gesture is active
// at a time; starting a new one implicitly commits the old.
type Controller struct {
	phase     phase
	windowID  string
	direction Direction

	// Pointer position when the gesture began. Every motion event is a
	// total delta from here, so clamping never accumulates drift.
	startX, startY int

	// Geometry when the gesture began, the anchor for resize clamping.
	start Frame

	frame Frame
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Active reports whether a gesture is in flight.
func (c *Controller) Active() bool { return c.phase != idle }

// Dragging reports whether the active gesture is a drag.
func (c *Controller) Dragging() bool { return c.phase == dragging }

// Resizing reports whether the active gesture is a resize.
func (c *Controller) Resizing() bool { return c.phase == resizing }

// WindowID returns the window being manipulated, or "".
func (c *Controller) WindowID() string {
	if c.phase == idle {
		return ""
	}
	return c.windowID
}

// Frame returns the transient geometry. Only meaningful while Active.
func (c *Controller) Frame() Frame { return c.frame }

// ResizeDirection returns the grabbed edge of an active resize.
func (c *Controller) ResizeDirection() Direction { return c.direction }

// StartDrag begins moving a window from pointer position (px, py). A tiled
// window pops out of its slot the moment the drag starts; maximized and
// fullscreen windows refuse to move.
func (c *Controller) StartDrag(state *shell.State, id string, px, py int) bool {
	w := state.Window(id)
	if w == nil || !w.CanDrag() {
		return false
	}
	c.Commit(state)

	if w.Tiled {
		state.UntileWindow(id)
	}
	state.FocusWindow(id)

	c.phase = dragging
	c.windowID = id
	c.startX, c.startY = px, py
	c.start = Frame{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
	c.frame = c.start
	return true
}

// StartResize begins resizing a window from the given edge or corner.
// Maximized, tiled, and fullscreen windows refuse to resize.
func (c *Controller) StartResize(state *shell.State, id string, dir Direction, px, py int) bool {
	w := state.Window(id)
	if w == nil || !w.CanResize() {
		return false
	}
	c.Commit(state)

	state.FocusWindow(id)

	c.phase = resizing
	c.windowID = id
	c.direction = dir
	c.startX, c.startY = px, py
	c.start = Frame{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
	c.frame = c.start
	return true
}

// Motion feeds a pointer position into the active gesture, updating the
// transient frame. No-op while idle.
func (c *Controller) Motion(state *shell.State, px, py int) {
	if c.phase == idle {
		return
	}

	dx := px - c.startX
	dy := py - c.startY

	switch c.phase {
	case dragging:
		x, y := layout.ClampPosition(c.start.X+dx, c.start.Y+dy, c.start.Height, state.Viewport)
		c.frame.X, c.frame.Y = x, y
	case resizing:
		c.applyResize(dx, dy)
	}
}

// applyResize rebuilds the frame from the start geometry plus the total
// pointer delta. The opposite edge stays put: when a west or north resize
// hits the minimum size, the origin stops moving with it. Rebuilding from
// the start keeps the frame tracking the pointer across a clamp instead of
// drifting with it.
func (c *Controller) applyResize(dx, dy int) {
	eff := directionEffects[c.direction]
	c.frame = c.start

	if eff.adjustsWidth {
		if eff.movesX {
			right := c.start.X + c.start.Width
			width := c.start.Width - dx
			if width < config.MinWindowWidth {
				width = config.MinWindowWidth
			}
			c.frame.Width = width
			c.frame.X = right - width
		} else {
			width := c.start.Width + dx
			if width < config.MinWindowWidth {
				width = config.MinWindowWidth
			}
			c.frame.Width = width
		}
	}

	if eff.adjustsHeight {
		if eff.movesY {
			bottom := c.start.Y + c.start.Height
			height := c.start.Height - dy
			if height < config.MinWindowHeight {
				height = config.MinWindowHeight
			}
			c.frame.Height = height
			c.frame.Y = bottom - height
		} else {
			height := c.start.Height + dy
			if height < config.MinWindowHeight {
				height = config.MinWindowHeight
			}
			c.frame.Height = height
		}
	}
}

// Commit ends the active gesture and writes the final frame into the window
// store in a single transition. Safe to call while idle.
func (c *Controller) Commit(state *shell.State) {
	if c.phase == idle {
		return
	}

	id := c.windowID
	frame := c.frame
	wasDrag := c.phase == dragging

	c.phase = idle
	c.windowID = ""

	if state.Window(id) == nil {
		// The window closed mid-gesture; nothing to write back.
		return
	}

	if wasDrag {
		state.UpdateWindowPosition(id, frame.X, frame.Y)
	} else {
		state.UpdateWindowSize(id, frame.X, frame.Y, frame.Width, frame.Height)
	}
}

// Cancel ends the gesture the same way a release does. Losing pointer
// capture must not leave the frame and the store disagreeing, so the frame
// is committed rather than discarded.
func (c *Controller) Cancel(state *shell.State) {
	c.Commit(state)
}
