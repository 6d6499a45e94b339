package session

import (
	"math"

	"github.com/treykane/logicalroot/internal/tree"
	"github.com/treykane/logicalroot/internal/viewport"
)

// Transform returns the current viewport transform.
func (s *Session) Transform() viewport.Transform {
	return s.view
}

// CanvasSize returns the last size reported by SetCanvasSize.
func (s *Session) CanvasSize() viewport.Size {
	return s.size
}

// SetCanvasSize records the canvas dimensions used by ResetView.
func (s *Session) SetCanvasSize(size viewport.Size) {
	s.size = size
}

func (s *Session) ZoomIn()  { s.view.ZoomIn() }
func (s *Session) ZoomOut() { s.view.ZoomOut() }

// ResetView restores 100% zoom with the origin placed for the canvas size.
func (s *Session) ResetView() {
	s.view.ResetView(s.size)
}

// Pan shifts the canvas by screen cells.
func (s *Session) Pan(dx, dy float64) {
	s.view.Pan(dx, dy)
}

// Wheel applies a wheel event.
func (s *Session) Wheel(ev viewport.WheelEvent) {
	s.view.Wheel(ev)
}

// NodeAt maps a canvas cell to the node drawn there. Boxes are matched in
// projected cells rather than world units so that a box stays clickable on
// the row it is drawn on when zoomed out.
func (s *Session) NodeAt(screen viewport.Point) (tree.NodeID, bool) {
	if s.doc == nil {
		return "", false
	}
	cx, cy := int(math.Floor(screen.X)), int(math.Floor(screen.Y))
	for _, b := range s.layout.Boxes {
		x0, y := s.view.Cell(viewport.Point{X: float64(b.X), Y: float64(b.Y)})
		if cy != y {
			continue
		}
		x1, _ := s.view.Cell(viewport.Point{X: float64(b.X + b.W), Y: float64(b.Y)})
		if cx >= x0 && cx < max(x1, x0+1) {
			return b.ID, true
		}
	}
	return "", false
}

// CenterOn pans so that id sits at the canvas position ResetView would put
// the origin, keeping the current zoom.
func (s *Session) CenterOn(id tree.NodeID) bool {
	box, ok := s.layout.Box(id)
	if !ok {
		return false
	}
	anchor := viewport.New()
	anchor.ResetView(s.size)
	at := s.view.ToScreen(viewport.Point{X: float64(box.X), Y: float64(box.Y)})
	s.view.Pan(anchor.Offset.X-at.X, anchor.Offset.Y-at.Y)
	return true
}
