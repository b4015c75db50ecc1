package ui

import (
	"testing"
	"time"

	"github.com/deskos/deskos/internal/layout"
)

func TestAnimationEndpoints(t *testing.T) {
	from := layout.Rect{X: 0, Y: 0, Width: 40, Height: 12}
	to := layout.Rect{X: 100, Y: 50, Width: 20, Height: 6}

	a := &Animation{
		WindowID:  "w1",
		Kind:      AnimationSnap,
		StartTime: time.Unix(0, 0),
		Duration:  100 * time.Millisecond,
		From:      from,
		To:        to,
	}

	if got := a.Advance(time.Unix(0, 0)); got != from {
		t.Errorf("at t=0 got %+v, want %+v", got, from)
	}
	if got := a.Advance(time.Unix(0, int64(200*time.Millisecond))); got != to {
		t.Errorf("past the end got %+v, want %+v", got, to)
	}
	if !a.Done {
		t.Error("animation not marked done at the end")
	}
}

func TestAnimationMidpoint(t *testing.T) {
	a := &Animation{
		StartTime: time.Unix(0, 0),
		Duration:  100 * time.Millisecond,
		From:      layout.Rect{X: 0, Y: 0, Width: 10, Height: 10},
		To:        layout.Rect{X: 100, Y: 100, Width: 10, Height: 10},
	}

	got := a.Advance(time.Unix(0, int64(50*time.Millisecond)))
	// Cubic easing is exactly 0.5 at the midpoint.
	if got.X != 50 || got.Y != 50 {
		t.Errorf("midpoint = (%d,%d), want (50,50)", got.X, got.Y)
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	to := layout.Rect{X: 5, Y: 5, Width: 20, Height: 6}
	a := &Animation{Duration: 0, To: to}

	if got := a.Advance(time.Now()); got != to {
		t.Errorf("got %+v, want %+v", got, to)
	}
	if !a.Done {
		t.Error("zero-duration animation not done")
	}
}

func TestEaseInOutCubicShape(t *testing.T) {
	if got := easeInOutCubic(0); got != 0 {
		t.Errorf("ease(0) = %v", got)
	}
	if got := easeInOutCubic(1); got != 1 {
		t.Errorf("ease(1) = %v", got)
	}
	if got := easeInOutCubic(0.5); got != 0.5 {
		t.Errorf("ease(0.5) = %v", got)
	}
	// Slow start: first quarter covers well under a quarter of the range.
	if got := easeInOutCubic(0.25); got >= 0.25 {
		t.Errorf("ease(0.25) = %v, want < 0.25", got)
	}
}

func TestAnimationSetReplacesPerWindow(t *testing.T) {
	var s AnimationSet

	s.Add(&Animation{WindowID: "a", Duration: time.Second})
	s.Add(&Animation{WindowID: "b", Duration: time.Second})
	second := &Animation{WindowID: "a", Kind: AnimationRestore, Duration: time.Second}
	s.Add(second)

	got, ok := s.Lookup("a")
	if !ok || got != second {
		t.Error("second animation for the same window did not replace the first")
	}
	if !s.Any() {
		t.Error("set reports empty")
	}
}

func TestAnimationSetAdvanceRemovesFinished(t *testing.T) {
	var s AnimationSet
	s.Add(&Animation{WindowID: "done", StartTime: time.Unix(0, 0), Duration: time.Millisecond})
	s.Add(&Animation{WindowID: "running", StartTime: time.Now(), Duration: time.Hour})

	finished := s.Advance(time.Now())
	if len(finished) != 1 || finished[0].WindowID != "done" {
		t.Fatalf("finished = %v", finished)
	}
	if _, ok := s.Lookup("done"); ok {
		t.Error("finished animation still tracked")
	}
	if _, ok := s.Lookup("running"); !ok {
		t.Error("running animation dropped")
	}
}

func TestAnimationSetDrop(t *testing.T) {
	var s AnimationSet
	s.Add(&Animation{WindowID: "a", Duration: time.Hour, StartTime: time.Now()})
	s.Drop("a")
	if s.Any() {
		t.Error("dropped animation still tracked")
	}
}
