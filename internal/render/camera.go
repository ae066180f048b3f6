package render

import (
	"hero-blaster/internal/world"
	"math"
)

// Camera maps playfield coordinates onto a grid of terminal cells.
// The whole playfield is always in view; it is scaled, never scrolled.
type Camera struct {
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera covering a viewW x viewH cell grid.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: max(viewW, 1), ViewHeight: max(viewH, 1)}
}

// CellSpan returns the half-open cell range [c0,c1) x [r0,r1) touched by a
// playfield rectangle. Any rectangle with positive area covers at least one
// cell. Ranges are clipped to the view and may be empty.
func (c *Camera) CellSpan(x, y, w, h float64) (c0, r0, c1, r1 int) {
	vw, vh := float64(c.ViewWidth), float64(c.ViewHeight)
	c0 = int(math.Floor(x * vw / world.Width))
	r0 = int(math.Floor(y * vh / world.Height))
	c1 = max(int(math.Ceil((x+w)*vw/world.Width)), c0+1)
	r1 = max(int(math.Ceil((y+h)*vh/world.Height)), r0+1)
	if w <= 0 || h <= 0 {
		c1, r1 = c0, r0
	}
	c0, c1 = clampSpan(c0, c1, c.ViewWidth)
	r0, r1 = clampSpan(r0, r1, c.ViewHeight)
	return
}

// WorldToScreen converts playfield (wx, wy) to a cell.
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy int, visible bool) {
	sx = int(math.Floor(wx * float64(c.ViewWidth) / world.Width))
	sy = int(math.Floor(wy * float64(c.ViewHeight) / world.Height))
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts cell (sx, sy) to the playfield point at its centre.
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	return (float64(sx) + 0.5) * world.Width / float64(c.ViewWidth),
		(float64(sy) + 0.5) * world.Height / float64(c.ViewHeight)
}

func clampSpan(lo, hi, n int) (int, int) {
	lo = max(lo, 0)
	hi = min(hi, n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
