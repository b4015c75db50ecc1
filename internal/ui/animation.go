// Package ui holds presentation helpers shared by the renderer: window
// transition animations and the rendering geometry they produce.
package ui

import (
	"math"
	"time"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/layout"
)

// AnimationKind identifies the transition being animated.
type AnimationKind int

const (
	// AnimationMinimize flies a window down into its dock slot.
	AnimationMinimize AnimationKind = iota
	// AnimationRestore flies a window from the dock back to its frame.
	AnimationRestore
	// AnimationSnap glides a window to a tiling slot or centered frame.
	AnimationSnap
)

// Animation tweens a window's rendered frame between two rects. The window
// store is not touched; only the renderer sees the interpolated geometry.
type Animation struct {
	WindowID  string
	Kind      AnimationKind
	StartTime time.Time
	Duration  time.Duration
	From      layout.Rect
	To        layout.Rect
	Progress  float64
	Done      bool
}

// NewAnimation starts a transition for a window. Snap animations run at the
// faster duration so tiling feels immediate.
func NewAnimation(windowID string, kind AnimationKind, from, to layout.Rect) *Animation {
	duration := config.GetAnimationDuration()
	if kind == AnimationSnap && config.AnimationsEnabled {
		duration = config.FastAnimationDuration
	}
	return &Animation{
		WindowID:  windowID,
		Kind:      kind,
		StartTime: time.Now(),
		Duration:  duration,
		From:      from,
		To:        to,
	}
}

// Advance moves the animation to the given instant and returns the frame to
// render. A zero-duration animation completes immediately.
func (a *Animation) Advance(now time.Time) layout.Rect {
	if a.Duration <= 0 {
		a.Progress = 1
		a.Done = true
		return a.To
	}

	t := float64(now.Sub(a.StartTime)) / float64(a.Duration)
	if t >= 1 {
		a.Progress = 1
		a.Done = true
		return a.To
	}
	if t < 0 {
		t = 0
	}
	a.Progress = easeInOutCubic(t)
	return a.FrameAt(now)
}

// FrameAt computes the interpolated frame for an instant without altering
// the animation's bookkeeping. The renderer uses it between ticks.
func (a *Animation) FrameAt(now time.Time) layout.Rect {
	if a.Duration <= 0 {
		return a.To
	}
	t := float64(now.Sub(a.StartTime)) / float64(a.Duration)
	if t >= 1 {
		return a.To
	}
	if t < 0 {
		t = 0
	}
	p := easeInOutCubic(t)
	return layout.Rect{
		X:      lerp(a.From.X, a.To.X, p),
		Y:      lerp(a.From.Y, a.To.Y, p),
		Width:  lerp(a.From.Width, a.To.Width, p),
		Height: lerp(a.From.Height, a.To.Height, p),
	}
}

// AnimationSet tracks in-flight animations, at most one per window.
type AnimationSet struct {
	active []*Animation
}

// Add starts tracking an animation, replacing any existing one for the same
// window. Nil animations are ignored.
func (s *AnimationSet) Add(a *Animation) {
	if a == nil {
		return
	}
	for i, existing := range s.active {
		if existing.WindowID == a.WindowID {
			s.active[i] = a
			return
		}
	}
	s.active = append(s.active, a)
}

// Lookup returns the animation for a window, if one is running.
func (s *AnimationSet) Lookup(windowID string) (*Animation, bool) {
	for _, a := range s.active {
		if a.WindowID == windowID {
			return a, true
		}
	}
	return nil, false
}

// Any reports whether any animation is in flight.
func (s *AnimationSet) Any() bool {
	return len(s.active) > 0
}

// Advance steps every animation to now and returns the ones that finished
// this frame, removing them from the set. Callers finalize window state for
// the returned animations.
func (s *AnimationSet) Advance(now time.Time) []*Animation {
	var done []*Animation
	remaining := s.active[:0]
	for _, a := range s.active {
		a.Advance(now)
		if a.Done {
			done = append(done, a)
		} else {
			remaining = append(remaining, a)
		}
	}
	s.active = remaining
	return done
}

// Drop removes a window's animation without finishing it, for windows that
// close mid-flight.
func (s *AnimationSet) Drop(windowID string) {
	for i, a := range s.active {
		if a.WindowID == windowID {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

func lerp(start, end int, progress float64) int {
	return start + int(math.Round(float64(end-start)*progress))
}
