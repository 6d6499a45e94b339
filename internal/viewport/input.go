package viewport

// Target classifies what sits under the pointer. Only the bare background
// starts a pan; nodes, buttons and text inputs keep their own click meaning.
type Target int

const (
	TargetBackground Target = iota
	TargetNode
	TargetControl
	TargetInput
)

func (t Target) String() string {
	switch t {
	case TargetBackground:
		return "background"
	case TargetNode:
		return "node"
	case TargetControl:
		return "control"
	case TargetInput:
		return "input"
	default:
		return "unknown"
	}
}

// CanPan reports whether a press on target may start a drag-pan.
func CanPan(target Target) bool {
	return target == TargetBackground
}

// WheelStep is how many cells one wheel notch pans.
const WheelStep = 3

// WheelEvent is one wheel notch. DX/DY follow the terminal's scroll
// direction: positive DY means scrolling down.
type WheelEvent struct {
	DX, DY       float64
	ZoomModifier bool
	Shift        bool
}

// Wheel applies a wheel notch: zoom when the zoom modifier is held, otherwise
// pan against the scroll direction. Shift turns vertical scrolling into
// horizontal panning.
func (t *Transform) Wheel(ev WheelEvent) {
	if ev.ZoomModifier {
		switch {
		case ev.DY > 0:
			t.ZoomOut()
		case ev.DY < 0:
			t.ZoomIn()
		}
		return
	}
	dx, dy := ev.DX, ev.DY
	if ev.Shift && dx == 0 {
		dx, dy = dy, 0
	}
	t.Pan(-dx*WheelStep, -dy*WheelStep)
}

// Drag tracks a click-and-drag pan gesture.
type Drag struct {
	active bool
	last   Point
}

// Begin starts a drag at the given screen point when target allows panning.
func (d *Drag) Begin(target Target, at Point) bool {
	if !CanPan(target) {
		d.active = false
		return false
	}
	d.active = true
	d.last = at
	return true
}

// Move returns the delta since the previous pointer position.
func (d *Drag) Move(at Point) (dx, dy float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	dx, dy = at.X-d.last.X, at.Y-d.last.Y
	d.last = at
	return dx, dy, true
}

// End finishes the gesture.
func (d *Drag) End() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
