package app

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/treykane/logicalroot/internal/tree"
	vport "github.com/treykane/logicalroot/internal/viewport"
)

// Connector direction bits. A cell's glyph is chosen from the union of the
// directions every edge through it needs.
const (
	edgeN uint8 = 1 << iota
	edgeS
	edgeW
	edgeE
)

var edgeGlyphs = map[uint8]rune{
	edgeE | edgeW:                 '─',
	edgeE:                         '─',
	edgeW:                         '─',
	edgeN | edgeS:                 '│',
	edgeN:                         '│',
	edgeS:                         '│',
	edgeS | edgeE:                 '╭',
	edgeN | edgeE:                 '╰',
	edgeS | edgeW:                 '╮',
	edgeN | edgeW:                 '╯',
	edgeN | edgeS | edgeE:         '├',
	edgeN | edgeS | edgeW:         '┤',
	edgeS | edgeE | edgeW:         '┬',
	edgeN | edgeE | edgeW:         '┴',
	edgeN | edgeS | edgeE | edgeW: '┼',
}

// wideTail marks the second cell of a double-width rune.
const wideTail rune = -1

// cellGrid is a fixed-size character canvas.
type cellGrid struct {
	w, h  int
	runes [][]rune
	class [][]cellClass
	edges [][]uint8
}

func newCellGrid(w, h int) *cellGrid {
	g := &cellGrid{w: w, h: h}
	g.runes = make([][]rune, h)
	g.class = make([][]cellClass, h)
	g.edges = make([][]uint8, h)
	for y := range h {
		g.runes[y] = make([]rune, w)
		g.class[y] = make([]cellClass, w)
		g.edges[y] = make([]uint8, w)
		for x := range w {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *cellGrid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *cellGrid) set(x, y int, r rune, c cellClass) {
	if !g.inside(x, y) {
		return
	}
	g.runes[y][x] = r
	g.class[y][x] = c
	g.edges[y][x] = 0
}

// text writes s from (x, y) and returns the number of cells used. Cells off
// the grid are skipped but still counted, so partly visible boxes keep their
// shape.
func (g *cellGrid) text(x, y int, s string, c cellClass) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.set(x+used, y, r, c)
		if w == 2 {
			g.set(x+used+1, y, wideTail, c)
		}
		used += w
	}
	return used
}

func (g *cellGrid) link(x, y int, bits uint8) {
	if !g.inside(x, y) || (g.class[y][x] != cellBlank && g.class[y][x] != cellEdge) {
		return
	}
	g.edges[y][x] |= bits
	g.class[y][x] = cellEdge
}

func (g *cellGrid) hline(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := max(x0, -1); x <= min(x1, g.w); x++ {
		var bits uint8
		if x > x0 {
			bits |= edgeW
		}
		if x < x1 {
			bits |= edgeE
		}
		g.link(x, y, bits)
	}
}

func (g *cellGrid) vline(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := max(y0, -1); y <= min(y1, g.h); y++ {
		var bits uint8
		if y > y0 {
			bits |= edgeN
		}
		if y < y1 {
			bits |= edgeS
		}
		g.link(x, y, bits)
	}
}

// lines renders the grid row by row, styling runs of equal class together.
func (g *cellGrid) lines() []string {
	out := make([]string, 0, g.h)
	for y := range g.h {
		var row, run strings.Builder
		cur := cellBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := cellStyles[cur]; ok {
				row.WriteString(style.Render(run.String()))
			} else {
				row.WriteString(run.String())
			}
			run.Reset()
		}
		for x := range g.w {
			c := g.class[y][x]
			if c != cur {
				flush()
				cur = c
			}
			r := g.runes[y][x]
			switch {
			case r == wideTail:
				continue
			case c == cellEdge:
				if glyph, ok := edgeGlyphs[g.edges[y][x]]; ok {
					r = glyph
				}
			}
			run.WriteRune(r)
		}
		flush()
		out = append(out, row.String())
	}
	return out
}

// renderCanvas draws the current layout through the viewport transform.
func (m *Model) renderCanvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	g := newCellGrid(width, height)
	s := m.session
	tr := s.Transform()
	lay := s.Layout()

	for _, e := range lay.Edges {
		drawEdge(g, tr, e)
	}

	selected, _ := s.Selected()
	editing, isEditing := s.Editing()
	for _, b := range lay.Boxes {
		class := cellNode
		switch {
		case isEditing && b.ID == editing:
			class = cellEditing
		case b.ID == selected:
			class = cellSelected
		case b.IsRoot:
			class = cellRoot
		}
		label := boxLabel(b)
		if isEditing && b.ID == editing {
			label = m.editLabel()
		}
		drawBox(g, tr, b, label, class)
	}
	for _, mk := range lay.Markers {
		x, y := tr.Cell(vport.Point{X: float64(mk.X), Y: float64(mk.Y)})
		g.text(x, y, "⋯ "+mk.Label(), cellMarker)
	}

	drawCanvasOverlay(g, tr.Percent())
	return strings.Join(g.lines(), "\n")
}

// drawEdge routes a parent→child connector: out of the parent's right end,
// down the midpoint column, into the child's level marker.
func drawEdge(g *cellGrid, tr vport.Transform, e tree.Edge) {
	fx, fy := tr.Cell(vport.Point{X: float64(e.FromX), Y: float64(e.FromY)})
	tx, ty := tr.Cell(vport.Point{X: float64(e.ToX), Y: float64(e.ToY)})
	tx = max(tx-1, fx)
	if fy == ty {
		g.hline(fx, tx, fy)
		return
	}
	mid := fx + max(1, (tx-fx)/2)
	if mid > tx {
		mid = tx
	}
	g.hline(fx, mid, fy)
	g.vline(mid, fy, ty)
	g.hline(mid, tx, ty)
}

// drawBox draws a one-row node: a level marker then the label padded to the
// box's projected width.
func drawBox(g *cellGrid, tr vport.Transform, b tree.Box, label string, class cellClass) {
	x0, y := tr.Cell(vport.Point{X: float64(b.X), Y: float64(b.Y)})
	x1, _ := tr.Cell(vport.Point{X: float64(b.X + b.W), Y: float64(b.Y)})
	w := max(MinBoxCells, x1-x0)

	g.set(x0, y, '▌', levelClass(b.Level))
	inner := w - 1
	body := " " + label
	if b.Collapsed {
		inner--
	}
	body = fitLabel(body, inner)
	used := g.text(x0+1, y, body, class)
	for x := x0 + 1 + used; x < x0+1+inner; x++ {
		g.set(x, y, ' ', class)
	}
	if b.Collapsed {
		g.set(x0+w-1, y, '▸', class)
	}
}

// boxLabel is the text shown for a box outside of editing.
func boxLabel(b tree.Box) string {
	return labelText(b.Text)
}

func labelText(text string) string {
	text = singleLine(text)
	if text == "" {
		return untitledLabel
	}
	return text
}

// editLabel shows the edit buffer with a cursor, scrolled so the cursor
// stays inside the box.
func (m *Model) editLabel() string {
	value := []rune(m.session.Buffer())
	pos := clamp(m.editInput.Position(), 0, len(value))
	label := string(value[:pos]) + "▏" + string(value[pos:])
	limit := m.boxTextCells()
	runes := []rune(label)
	dropped := false
	for pos > 1 && runewidth.StringWidth(string(runes)) > limit {
		runes = runes[1:]
		pos--
		dropped = true
	}
	if dropped {
		runes[0] = '…'
	}
	return string(runes)
}

// boxTextCells is the label room inside a box at the current zoom.
func (m *Model) boxTextCells() int {
	w := int(float64(m.session.Metrics().NodeWidth) * m.session.Transform().Scale)
	return max(MinBoxCells, w) - 2
}

// drawCanvasOverlay writes the pan hint and zoom readout on the last row.
func drawCanvasOverlay(g *cellGrid, percent int) {
	if g.h == 0 {
		return
	}
	y := g.h - 1
	zoom := fmt.Sprintf("Zoom: %d%%", percent)
	hint := "drag background to pan"
	zx := g.w - runewidth.StringWidth(zoom) - 1
	if zx > runewidth.StringWidth(hint)+2 {
		g.text(1, y, hint, cellOverlay)
	}
	if zx >= 0 {
		g.text(zx, y, zoom, cellOverlay)
	}
}

// markerAt returns the collapsed node whose hidden-branch marker is drawn at
// the given canvas cell.
func (m *Model) markerAt(cx, cy int) (tree.NodeID, bool) {
	tr := m.session.Transform()
	for _, mk := range m.session.Layout().Markers {
		x, y := tr.Cell(vport.Point{X: float64(mk.X), Y: float64(mk.Y)})
		w := runewidth.StringWidth("⋯ " + mk.Label())
		if cy == y && cx >= x && cx < x+w {
			return mk.ParentID, true
		}
	}
	return "", false
}
