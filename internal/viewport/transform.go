// Package viewport maps between the tree's world grid and the terminal canvas.
//
// A Transform is a pan offset plus a zoom scale. It knows nothing about tree
// contents; the canvas feeds it pointer, wheel and key input and asks it to
// project layout coordinates onto the screen.
package viewport

import "math"

// Zoom bounds shared by the zoom keys and modifier-wheel zoom.
const (
	ZoomStep     = 0.1
	MinScale     = 0.3
	MaxScale     = 2.0
	DefaultScale = 1.0
)

const cellEpsilon = 1e-9

// DefaultOffset is used by ResetView when the canvas size is not known yet.
var DefaultOffset = Point{X: 4, Y: 2}

// Point is a position in either world or screen cells.
type Point struct {
	X, Y float64
}

// Size is the canvas size in terminal cells.
type Size struct {
	Width, Height int
}

// Known reports whether both dimensions are positive.
func (s Size) Known() bool {
	return s.Width > 0 && s.Height > 0
}

// Transform is screen = offset + world*scale. Zoom is anchored at the world
// origin; there is no pivot correction around the pointer.
type Transform struct {
	Scale  float64
	Offset Point
}

// New returns an identity transform at the default offset.
func New() Transform {
	return Transform{Scale: DefaultScale, Offset: DefaultOffset}
}

// ZoomIn raises the scale by one step.
func (t *Transform) ZoomIn() {
	t.ZoomBy(ZoomStep)
}

// ZoomOut lowers the scale by one step.
func (t *Transform) ZoomOut() {
	t.ZoomBy(-ZoomStep)
}

// ZoomBy adjusts the scale by delta, rounded to hundredths and clamped to
// [MinScale, MaxScale].
func (t *Transform) ZoomBy(delta float64) {
	t.Scale = clampScale(math.Round((t.Scale+delta)*100) / 100)
}

// ResetView returns to 100% and places the origin near the left-centre of a
// canvas of the given size.
func (t *Transform) ResetView(size Size) {
	t.Scale = DefaultScale
	if !size.Known() {
		t.Offset = DefaultOffset
		return
	}
	t.Offset = Point{
		X: math.Round(float64(size.Width) / 4),
		Y: math.Round(float64(size.Height) / 2.5),
	}
}

// Pan moves the offset by (dx, dy) screen cells.
func (t *Transform) Pan(dx, dy float64) {
	t.Offset.X += dx
	t.Offset.Y += dy
}

// ToScreen projects a world point onto the canvas.
func (t Transform) ToScreen(p Point) Point {
	return Point{X: t.Offset.X + p.X*t.Scale, Y: t.Offset.Y + p.Y*t.Scale}
}

// ToWorld inverts ToScreen.
func (t Transform) ToWorld(p Point) Point {
	scale := t.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	return Point{X: (p.X - t.Offset.X) / scale, Y: (p.Y - t.Offset.Y) / scale}
}

// Cell returns the canvas cell a world point falls in. Rendering and
// pointer hit testing both go through it so they agree at every zoom level.
func (t Transform) Cell(p Point) (x, y int) {
	s := t.ToScreen(p)
	return int(math.Floor(s.X + cellEpsilon)), int(math.Floor(s.Y + cellEpsilon))
}

// Percent returns the zoom level as a whole percentage.
func (t Transform) Percent() int {
	return int(math.Round(t.Scale * 100))
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
