package layout

import "testing"

func TestGrid(t *testing.T) {
	tests := []struct {
		n    int
		rows int
		cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{6, 2, 3},
		{7, 3, 3},
		{9, 3, 3},
		{10, 3, 4},
	}

	for _, tt := range tests {
		rows, cols := Grid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("Grid(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
		if tt.n > 0 && rows*cols < tt.n {
			t.Errorf("Grid(%d) = %dx%d has fewer cells than windows", tt.n, rows, cols)
		}
	}
}

func TestTilePartition(t *testing.T) {
	vp := Viewport{Width: 120, Height: 40, TopMargin: 1, BottomMargin: 1}

	for n := 1; n <= 12; n++ {
		rects := Tile(n, vp)
		if len(rects) != n {
			t.Fatalf("Tile(%d) returned %d rects", n, len(rects))
		}

		// No overlaps.
		for i := range rects {
			for j := i + 1; j < len(rects); j++ {
				if rects[i].Overlaps(rects[j]) {
					t.Errorf("Tile(%d): rects %d and %d overlap: %+v %+v", n, i, j, rects[i], rects[j])
				}
			}
		}

		// All rects stay inside the usable area.
		for i, r := range rects {
			if r.X < Gutter || r.Y < vp.TopMargin+Gutter {
				t.Errorf("Tile(%d): rect %d outside margins: %+v", n, i, r)
			}
			if r.Right() > vp.Width-Gutter || r.Bottom() > vp.Height-vp.BottomMargin-Gutter {
				t.Errorf("Tile(%d): rect %d exceeds viewport: %+v", n, i, r)
			}
			if r.Width <= 0 || r.Height <= 0 {
				t.Errorf("Tile(%d): rect %d has empty size: %+v", n, i, r)
			}
		}

		// Full grids cover the usable area exactly: total cell count matches.
		rows, cols := Grid(n)
		if n == rows*cols {
			area := 0
			for _, r := range rects {
				area += r.Width * r.Height
			}
			want := (vp.Width - 2*Gutter) * (vp.UsableHeight() - 2*Gutter)
			if area != want {
				t.Errorf("Tile(%d): covered area %d, want %d", n, area, want)
			}
		}
	}
}

func TestTileThreeWindowsGivesTwoByTwo(t *testing.T) {
	vp := Viewport{Width: 100, Height: 42, TopMargin: 1, BottomMargin: 1}
	rects := Tile(3, vp)
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}

	// 2x2 grid: first two rects share a row, third starts a second row.
	if rects[0].Y != rects[1].Y {
		t.Errorf("rects 0 and 1 should share a row: %+v %+v", rects[0], rects[1])
	}
	if rects[2].Y <= rects[0].Y {
		t.Errorf("rect 2 should be on the second row: %+v", rects[2])
	}
	if rects[0].X != rects[2].X {
		t.Errorf("rects 0 and 2 should share a column: %+v %+v", rects[0], rects[2])
	}
}

func TestCenter(t *testing.T) {
	vp := Viewport{Width: 100, Height: 40, TopMargin: 1, BottomMargin: 1}

	r := Center(60, 20, vp)
	if r.Width != 60 || r.Height != 20 {
		t.Fatalf("Center changed size: %+v", r)
	}
	if r.X != 20 {
		t.Errorf("expected X=20, got %d", r.X)
	}
	// Usable height is 38, so (38-20)/2 = 9 below the top margin.
	if r.Y != 10 {
		t.Errorf("expected Y=10, got %d", r.Y)
	}

	// Oversized windows are clamped to the usable area.
	r = Center(200, 100, vp)
	if r.Width != 100 || r.Height != 38 {
		t.Errorf("oversized window not clamped: %+v", r)
	}
	if r.Y != vp.TopMargin {
		t.Errorf("clamped window should start at the top margin, got Y=%d", r.Y)
	}
}

func TestScaleToThumbnail(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		target      int
		wantW       int
		wantH       int
		wantUnscale bool
	}{
		{name: "wide window", w: 80, h: 24, target: 20, wantW: 20, wantH: 6},
		{name: "square window", w: 40, h: 40, target: 10, wantW: 10, wantH: 10},
		{name: "already small", w: 10, h: 5, target: 20, wantW: 10, wantH: 5, wantUnscale: true},
		{name: "tall sliver", w: 100, h: 3, target: 25, wantW: 25, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := ScaleToThumbnail(tt.w, tt.h, tt.target)
			if th.Width != tt.wantW || th.Height != tt.wantH {
				t.Errorf("ScaleToThumbnail(%d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.target, th.Width, th.Height, tt.wantW, tt.wantH)
			}
			if tt.wantUnscale && th.Scale != 1 {
				t.Errorf("expected scale 1 for small window, got %f", th.Scale)
			}
			if !tt.wantUnscale && th.Scale <= 0 {
				t.Errorf("scale must be positive, got %f", th.Scale)
			}
		})
	}
}

func TestClampPosition(t *testing.T) {
	vp := Viewport{Width: 100, Height: 40, TopMargin: 1, BottomMargin: 1}

	// Dragging above the status bar pins the title row below it.
	_, y := ClampPosition(10, -5, 10, vp)
	if y != 1 {
		t.Errorf("expected y pinned to top margin, got %d", y)
	}

	// Dragging into the dock area pushes the window back up.
	_, y = ClampPosition(10, 38, 10, vp)
	if y != 29 {
		t.Errorf("expected y=29, got %d", y)
	}

	// Horizontal overhang is allowed.
	x, _ := ClampPosition(-30, 5, 10, vp)
	if x != -30 {
		t.Errorf("x should be unconstrained, got %d", x)
	}
}
