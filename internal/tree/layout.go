package tree

import "fmt"

// Metrics sizes the abstract world grid the layout is computed on. Units are
// terminal cells at 100% zoom.
type Metrics struct {
	NodeWidth int
	ColumnGap int
	RowHeight int
}

// DefaultMetrics matches the canvas defaults.
func DefaultMetrics() Metrics {
	return Metrics{NodeWidth: 28, ColumnGap: 6, RowHeight: 2}
}

// Box is a positioned node.
type Box struct {
	ID         NodeID
	Text       string
	Level      int
	Depth      int
	X, Y, W    int
	ChildCount int
	Collapsed  bool
	IsRoot     bool
}

// Marker stands in for the hidden children of a collapsed node.
type Marker struct {
	ParentID NodeID
	Count    int
	X, Y, W  int
}

// Label returns the marker text.
func (mk Marker) Label() string {
	return MarkerLabel(mk.Count)
}

// Edge connects a parent box to a child box or marker.
type Edge struct {
	From, To NodeID
	FromX    int
	FromY    int
	ToX      int
	ToY      int
	ToMarker bool
}

// Layout is the positioned render structure for one snapshot.
type Layout struct {
	Boxes   []Box
	Markers []Marker
	Edges   []Edge
	Width   int
	Height  int
	index   map[NodeID]int
}

// MarkerLabel formats the collapsed-branch placeholder text.
func MarkerLabel(count int) string {
	if count == 1 {
		return "1 branch hidden"
	}
	return fmt.Sprintf("%d branches hidden", count)
}

// ComputeLayout positions the visible rows of doc from its root.
//
// Columns follow depth. A node shares the line of its first visible child
// (or of its hidden-branch marker), and every other row starts a new line, so
// a parent sits level with the top of its branch.
func ComputeLayout(doc *Document, m Metrics) Layout {
	out := Layout{index: map[NodeID]int{}}
	if doc == nil {
		return out
	}
	if m.NodeWidth <= 0 {
		m = DefaultMetrics()
	}
	pitch := m.NodeWidth + m.ColumnGap

	line := -1
	prevDepth := -1
	prevWasNode := false
	for row := range doc.Walk(doc.RootID()) {
		if line < 0 || !(prevWasNode && row.Depth == prevDepth+1) {
			line++
		}
		prevDepth = row.Depth
		prevWasNode = row.Kind == RowNode

		x := row.Depth * pitch
		y := line * m.RowHeight
		switch row.Kind {
		case RowNode:
			out.index[row.Node.ID] = len(out.Boxes)
			out.Boxes = append(out.Boxes, Box{
				ID:         row.Node.ID,
				Text:       row.Node.Text,
				Level:      row.Node.Level,
				Depth:      row.Depth,
				X:          x,
				Y:          y,
				W:          m.NodeWidth,
				ChildCount: len(row.Node.Children),
				Collapsed:  !row.Node.Expanded && len(row.Node.Children) > 0,
				IsRoot:     row.Node.IsRoot(),
			})
			if parent := row.ParentID(); parent != "" {
				out.Edges = append(out.Edges, Edge{From: parent, To: row.Node.ID, ToX: x, ToY: y})
			}
		case RowHidden:
			label := MarkerLabel(row.Hidden)
			out.Markers = append(out.Markers, Marker{ParentID: row.Node.ID, Count: row.Hidden, X: x, Y: y, W: len(label) + 2})
			out.Edges = append(out.Edges, Edge{From: row.Node.ID, ToX: x, ToY: y, ToMarker: true})
		}
		out.Width = max(out.Width, x+m.NodeWidth)
	}
	out.Height = (line + 1) * m.RowHeight

	for i, e := range out.Edges {
		if from, ok := out.Box(e.From); ok {
			out.Edges[i].FromX = from.X + from.W
			out.Edges[i].FromY = from.Y
		}
	}
	return out
}

// Box returns the positioned box for id.
func (l Layout) Box(id NodeID) (Box, bool) {
	i, ok := l.index[id]
	if !ok {
		return Box{}, false
	}
	return l.Boxes[i], true
}

// HitTest returns the node whose box covers the world point (x, y). A box
// covers one line of its row pitch.
func (l Layout) HitTest(x, y float64) (NodeID, bool) {
	for _, b := range l.Boxes {
		if x >= float64(b.X) && x < float64(b.X+b.W) && y >= float64(b.Y) && y < float64(b.Y+1) {
			return b.ID, true
		}
	}
	return "", false
}
