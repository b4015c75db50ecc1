package gesture_test

import (
	"testing"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/gesture"
	"github.com/deskos/deskos/internal/shell"
)

type stubApps struct{}

func (stubApps) Info(appID string) shell.AppInfo {
	return shell.AppInfo{Title: appID}
}

func newState(t *testing.T) *shell.State {
	t.Helper()
	return shell.NewState(200, 60, stubApps{})
}

func openAt(t *testing.T, s *shell.State, x, y, w, h int) string {
	t.Helper()
	id := s.OpenWindow("welcome")
	win := s.Window(id)
	if win == nil {
		t.Fatal("OpenWindow returned no window")
	}
	win.X, win.Y, win.Width, win.Height = x, y, w, h
	return id
}

func TestDragCommitsOnceOnRelease(t *testing.T) {
	s := newState(t)
	id := openAt(t, s, 100, 20, 40, 12)
	c := gesture.NewController()

	if !c.StartDrag(s, id, 110, 21) {
		t.Fatal("StartDrag refused a floating window")
	}

	// Several motion events; the store must not see any of them.
	c.Motion(s, 130, 21)
	c.Motion(s, 150, 15)
	c.Motion(s, 160, 13)

	win := s.Window(id)
	if win.X != 100 || win.Y != 20 {
		t.Errorf("store updated mid-gesture: got (%d,%d), want (100,20)", win.X, win.Y)
	}

	frame := c.Frame()
	if frame.X != 150 || frame.Y != 12 {
		t.Errorf("frame = (%d,%d), want (150,12)", frame.X, frame.Y)
	}

	c.Commit(s)
	if c.Active() {
		t.Error("controller still active after commit")
	}
	if win.X != 150 || win.Y != 12 {
		t.Errorf("committed position = (%d,%d), want (150,12)", win.X, win.Y)
	}

	// A second commit must be a no-op.
	win.X = 42
	c.Commit(s)
	if win.X != 42 {
		t.Error("idle commit wrote to the store")
	}
}

func TestDragUntilesAtGestureStart(t *testing.T) {
	s := newState(t)
	a := openAt(t, s, 10, 5, 40, 12)
	openAt(t, s, 60, 5, 40, 12)
	s.TileAllWindows()

	if !s.Window(a).Tiled {
		t.Fatal("window not tiled after TileAllWindows")
	}

	c := gesture.NewController()
	if !c.StartDrag(s, a, 12, 6) {
		t.Fatal("StartDrag refused a tiled window")
	}
	if s.Window(a).Tiled {
		t.Error("window still tiled after drag start")
	}
}

func TestDragRefusesMaximizedAndFullscreen(t *testing.T) {
	s := newState(t)
	id := openAt(t, s, 10, 5, 40, 12)
	c := gesture.NewController()

	s.MaximizeWindow(id)
	if c.StartDrag(s, id, 12, 6) {
		t.Error("StartDrag accepted a maximized window")
	}
	s.MaximizeWindow(id)

	s.ToggleFullscreen(id)
	if c.StartDrag(s, id, 12, 6) {
		t.Error("StartDrag accepted a fullscreen window")
	}
}

func TestResizeNorthWestMovesOriginAndGrows(t *testing.T) {
	s := shell.NewState(800, 600, stubApps{})
	id := openAt(t, s, 200, 200, 400, 300)
	c := gesture.NewController()

	if !c.StartResize(s, id, gesture.NorthWest, 200, 200) {
		t.Fatal("StartResize refused a floating window")
	}
	c.Motion(s, 170, 190)
	c.Commit(s)

	win := s.Window(id)
	got := [4]int{win.X, win.Y, win.Width, win.Height}
	want := [4]int{170, 190, 430, 310}
	if got != want {
		t.Errorf("after nw resize got %v, want %v", got, want)
	}
}

func TestResizeClampsToMinimumWithoutMovingAnchor(t *testing.T) {
	tests := []struct {
		name string
		dir  gesture.Direction
		dx   int
		dy   int
	}{
		{"west collapse", gesture.West, 500, 0},
		{"north collapse", gesture.North, 0, 500},
		{"northwest collapse", gesture.NorthWest, 500, 500},
		{"east collapse", gesture.East, -500, 0},
		{"south collapse", gesture.South, 0, -500},
		{"southeast collapse", gesture.SouthEast, -500, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := shell.NewState(800, 600, stubApps{})
			id := openAt(t, s, 100, 100, 60, 20)
			win := s.Window(id)
			right := win.X + win.Width
			bottom := win.Y + win.Height

			c := gesture.NewController()
			if !c.StartResize(s, id, tt.dir, 100, 100) {
				t.Fatal("StartResize refused")
			}
			c.Motion(s, 100+tt.dx, 100+tt.dy)
			c.Commit(s)

			if win.Width < config.MinWindowWidth || win.Height < config.MinWindowHeight {
				t.Errorf("window collapsed below minimum: %dx%d", win.Width, win.Height)
			}

			switch tt.dir {
			case gesture.West, gesture.NorthWest:
				if win.X+win.Width != right {
					t.Errorf("east anchor moved: right edge %d, want %d", win.X+win.Width, right)
				}
			case gesture.East, gesture.SouthEast:
				if win.X != 100 {
					t.Errorf("west anchor moved: x = %d, want 100", win.X)
				}
			}
			switch tt.dir {
			case gesture.North, gesture.NorthWest:
				if win.Y+win.Height != bottom {
					t.Errorf("south anchor moved: bottom edge %d, want %d", win.Y+win.Height, bottom)
				}
			case gesture.South, gesture.SouthEast:
				if win.Y != 100 {
					t.Errorf("north anchor moved: y = %d, want 100", win.Y)
				}
			}
		})
	}
}

func TestResizeTracksPointerAcrossClamp(t *testing.T) {
	s := shell.NewState(800, 600, stubApps{})
	id := openAt(t, s, 100, 100, 30, 20)

	c := gesture.NewController()
	if !c.StartResize(s, id, gesture.East, 130, 110) {
		t.Fatal("StartResize refused")
	}

	// Overshoot the minimum, then ease the pointer back while it is still
	// past where the clamp engaged. The edge must stay put.
	c.Motion(s, 30, 110)
	if f := c.Frame(); f.Width != config.MinWindowWidth {
		t.Fatalf("width = %d, want clamped %d", f.Width, config.MinWindowWidth)
	}
	c.Motion(s, 35, 110)
	if f := c.Frame(); f.Width != config.MinWindowWidth {
		t.Errorf("width grew with the pointer still past the clamp: %d", f.Width)
	}

	// Once the pointer crosses back into range the edge follows it again.
	c.Motion(s, 125, 110)
	c.Commit(s)
	if w := s.Window(id).Width; w != 25 {
		t.Errorf("committed width = %d, want 25", w)
	}
}

func TestDragTracksPointerAcrossViewportClamp(t *testing.T) {
	s := newState(t)
	id := openAt(t, s, 100, 20, 40, 12)

	c := gesture.NewController()
	if !c.StartDrag(s, id, 110, 26) {
		t.Fatal("StartDrag refused")
	}

	// Drag far above the top margin, then back down a little; the window
	// must not leave the margin until the pointer is back in range.
	c.Motion(s, 110, 0)
	if f := c.Frame(); f.Y != 1 {
		t.Fatalf("y = %d, want clamped to the top margin", f.Y)
	}
	c.Motion(s, 110, 5)
	if f := c.Frame(); f.Y != 1 {
		t.Errorf("window left the margin with the pointer still above it: y = %d", f.Y)
	}

	c.Motion(s, 110, 10)
	c.Commit(s)
	if y := s.Window(id).Y; y != 4 {
		t.Errorf("committed y = %d, want 4", y)
	}
}

func TestResizeEachDirectionAdjustsExpectedAxes(t *testing.T) {
	tests := []struct {
		dir    gesture.Direction
		dx, dy int
		wantW  int
		wantH  int
		wantX  int
		wantY  int
	}{
		{gesture.East, 10, 0, 50, 20, 100, 100},
		{gesture.West, -10, 0, 50, 20, 90, 100},
		{gesture.South, 0, 5, 40, 25, 100, 100},
		{gesture.North, 0, -5, 40, 25, 100, 95},
		{gesture.SouthEast, 10, 5, 50, 25, 100, 100},
		{gesture.SouthWest, -10, 5, 50, 25, 90, 100},
		{gesture.NorthEast, 10, -5, 50, 25, 100, 95},
		{gesture.NorthWest, -10, -5, 50, 25, 90, 95},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			s := shell.NewState(800, 600, stubApps{})
			id := openAt(t, s, 100, 100, 40, 20)

			c := gesture.NewController()
			if !c.StartResize(s, id, tt.dir, 0, 0) {
				t.Fatal("StartResize refused")
			}
			c.Motion(s, tt.dx, tt.dy)
			c.Commit(s)

			win := s.Window(id)
			got := [4]int{win.X, win.Y, win.Width, win.Height}
			want := [4]int{tt.wantX, tt.wantY, tt.wantW, tt.wantH}
			if got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestCancelCommitsLikeRelease(t *testing.T) {
	s := newState(t)
	id := openAt(t, s, 100, 20, 40, 12)

	c := gesture.NewController()
	c.StartDrag(s, id, 100, 20)
	c.Motion(s, 120, 25)
	c.Cancel(s)

	win := s.Window(id)
	if win.X != 120 || win.Y != 25 {
		t.Errorf("cancel discarded the frame: got (%d,%d), want (120,25)", win.X, win.Y)
	}
	if c.Active() {
		t.Error("controller still active after cancel")
	}
}

func TestCommitAfterWindowClosed(t *testing.T) {
	s := newState(t)
	id := openAt(t, s, 100, 20, 40, 12)

	c := gesture.NewController()
	c.StartDrag(s, id, 100, 20)
	c.Motion(s, 120, 25)
	s.CloseWindow(id)

	// Must not panic and must leave the controller idle.
	c.Commit(s)
	if c.Active() {
		t.Error("controller still active after committing a closed window")
	}
}

func TestStartingNewGestureCommitsOldOne(t *testing.T) {
	s := newState(t)
	a := openAt(t, s, 10, 5, 40, 12)
	b := openAt(t, s, 80, 5, 40, 12)

	c := gesture.NewController()
	c.StartDrag(s, a, 10, 5)
	c.Motion(s, 20, 8)
	c.StartDrag(s, b, 80, 5)

	winA := s.Window(a)
	if winA.X != 20 || winA.Y != 8 {
		t.Errorf("first gesture not committed: got (%d,%d), want (20,8)", winA.X, winA.Y)
	}
	if c.WindowID() != b {
		t.Errorf("active window = %q, want %q", c.WindowID(), b)
	}
}
