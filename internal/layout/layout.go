// Package layout provides the pure geometry math for the desktop shell:
// grid tiling, stage-manager centering, and thumbnail scaling. Nothing in
// this package touches shell state; callers feed in sizes and apply the
// returned rectangles themselves.
package layout

import "math"

// Rect is a rectangle in screen cells, origin at the top-left of the viewport.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the exclusive right edge of the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge of the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether two rectangles share any cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Viewport describes the drawable region of the screen. TopMargin and
// BottomMargin reserve rows for shell chrome (status bar, dock); tiling and
// centering never place windows inside the margins.
type Viewport struct {
	Width        int
	Height       int
	TopMargin    int
	BottomMargin int
}

// UsableHeight returns the number of rows available to windows.
func (v Viewport) UsableHeight() int {
	return max(v.Height-v.TopMargin-v.BottomMargin, 0)
}

// Gutter is the spacing in cells between tiled windows and the viewport edge.
const Gutter = 1

// Grid returns the rows x cols partition used to tile n windows: the
// smallest near-square grid with cols = ceil(sqrt(n)).
func Grid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}

// Tile partitions the viewport into n non-overlapping rectangles, one per
// window, in row-major order. Cell sizes differ by at most one cell; the
// remainder is distributed to the leftmost columns and topmost rows so the
// union always covers the usable area exactly (minus the gutter).
func Tile(n int, vp Viewport) []Rect {
	if n <= 0 {
		return nil
	}

	rows, cols := Grid(n)
	usableW := vp.Width - 2*Gutter
	usableH := vp.UsableHeight() - 2*Gutter
	if usableW < cols || usableH < rows {
		// Degenerate viewport: stack everything at the origin rather than
		// producing zero-sized rectangles.
		rects := make([]Rect, n)
		for i := range rects {
			rects[i] = Rect{X: Gutter, Y: vp.TopMargin + Gutter, Width: max(usableW, 1), Height: max(usableH, 1)}
		}
		return rects
	}

	colW := usableW / cols
	rowH := usableH / rows
	extraW := usableW % cols
	extraH := usableH % rows

	// Precompute column x-offsets and widths.
	colX := make([]int, cols)
	widths := make([]int, cols)
	x := Gutter
	for c := range cols {
		w := colW
		if c < extraW {
			w++
		}
		colX[c] = x
		widths[c] = w
		x += w
	}

	rowY := make([]int, rows)
	heights := make([]int, rows)
	y := vp.TopMargin + Gutter
	for r := range rows {
		h := rowH
		if r < extraH {
			h++
		}
		rowY[r] = y
		heights[r] = h
		y += h
	}

	rects := make([]Rect, 0, n)
	for i := range n {
		r := i / cols
		c := i % cols
		rects = append(rects, Rect{
			X:      colX[c],
			Y:      rowY[r],
			Width:  widths[c],
			Height: heights[r],
		})
	}
	return rects
}

// Center returns the rectangle that centers a window of the given size
// within the viewport, honoring the margins. The size is clamped to fit.
func Center(width, height int, vp Viewport) Rect {
	usableH := vp.UsableHeight()
	width = min(width, vp.Width)
	height = min(height, usableH)

	return Rect{
		X:      (vp.Width - width) / 2,
		Y:      vp.TopMargin + (usableH-height)/2,
		Width:  width,
		Height: height,
	}
}

// Thumbnail holds the result of scaling a window down to a preview.
type Thumbnail struct {
	Scale  float64
	Width  int
	Height int
}

// ScaleToThumbnail computes the uniform scale factor that shrinks a window
// of the given size to targetWidth, preserving aspect ratio. Windows already
// narrower than the target are not scaled up.
func ScaleToThumbnail(width, height, targetWidth int) Thumbnail {
	if width <= 0 || height <= 0 || targetWidth <= 0 {
		return Thumbnail{Scale: 1}
	}
	if width <= targetWidth {
		return Thumbnail{Scale: 1, Width: width, Height: height}
	}
	scale := float64(targetWidth) / float64(width)
	return Thumbnail{
		Scale:  scale,
		Width:  targetWidth,
		Height: max(int(math.Round(float64(height)*scale)), 1),
	}
}

// ClampSize bounds a window size to the minimum window dimensions and the
// viewport extents.
func ClampSize(width, height int, vp Viewport, minWidth, minHeight int) (int, int) {
	width = max(width, minWidth)
	height = max(height, minHeight)
	width = min(width, vp.Width)
	height = min(height, vp.UsableHeight())
	return width, height
}

// ClampPosition keeps at least the title row of a window reachable: the
// window may hang off the left/right edges (x is unconstrained) but never
// above the top margin or under the dock.
func ClampPosition(x, y, height int, vp Viewport) (int, int) {
	if y < vp.TopMargin {
		y = vp.TopMargin
	}
	maxY := vp.Height - vp.BottomMargin - height
	if y > maxY {
		y = maxY
	}
	if y < vp.TopMargin {
		y = vp.TopMargin
	}
	return x, y
}
