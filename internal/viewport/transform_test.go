package viewport

import "testing"

func TestZoomOutClampsAtFloor(t *testing.T) {
	tr := New()
	for i := 0; i < 10; i++ {
		tr.ZoomOut()
	}
	if tr.Scale != MinScale {
		t.Fatalf("expected scale %.2f, got %v", MinScale, tr.Scale)
	}
}

func TestZoomInClampsAtCeiling(t *testing.T) {
	tr := New()
	for i := 0; i < 25; i++ {
		tr.ZoomIn()
	}
	if tr.Scale != MaxScale {
		t.Fatalf("expected scale %.2f, got %v", MaxScale, tr.Scale)
	}
}

func TestZoomStepsDoNotDrift(t *testing.T) {
	tr := New()
	for i := 0; i < 3; i++ {
		tr.ZoomIn()
	}
	if tr.Scale != 1.3 {
		t.Fatalf("expected 1.3, got %v", tr.Scale)
	}
	for i := 0; i < 3; i++ {
		tr.ZoomOut()
	}
	if tr.Scale != 1.0 || tr.Percent() != 100 {
		t.Fatalf("expected 1.0, got %v", tr.Scale)
	}
}

func TestResetView(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want Point
	}{
		{name: "known size", size: Size{Width: 120, Height: 40}, want: Point{X: 30, Y: 16}},
		{name: "unknown size", size: Size{}, want: DefaultOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{Scale: 1.7, Offset: Point{X: -80, Y: 12}}
			tr.ResetView(tt.size)
			if tr.Scale != DefaultScale || tr.Offset != tt.want {
				t.Fatalf("got scale %v offset %+v, want %+v", tr.Scale, tr.Offset, tt.want)
			}
		})
	}
}

func TestPanAndProjection(t *testing.T) {
	tr := Transform{Scale: 0.5, Offset: Point{X: 10, Y: 4}}
	tr.Pan(2, -1)

	world := Point{X: 20, Y: 8}
	screen := tr.ToScreen(world)
	if screen != (Point{X: 22, Y: 7}) {
		t.Fatalf("unexpected screen point %+v", screen)
	}
	if back := tr.ToWorld(screen); back != world {
		t.Fatalf("expected round trip to %+v, got %+v", world, back)
	}
}

func TestCellFloorsProjectedPoint(t *testing.T) {
	tr := Transform{Scale: 0.7, Offset: Point{X: 30, Y: 16}}
	x, y := tr.Cell(Point{X: 34, Y: 2})
	if x != 53 || y != 17 {
		t.Fatalf("Cell = (%d, %d), want (53, 17)", x, y)
	}
	tr = Transform{Scale: 0.3, Offset: Point{}}
	if x, _ := tr.Cell(Point{X: 10}); x != 3 {
		t.Fatalf("Cell at 0.3 = %d, want 3", x)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name       string
		ev         WheelEvent
		wantScale  float64
		wantOffset Point
	}{
		{name: "scroll down pans up", ev: WheelEvent{DY: 1}, wantScale: 1, wantOffset: Point{X: 0, Y: -WheelStep}},
		{name: "scroll right pans left", ev: WheelEvent{DX: 1}, wantScale: 1, wantOffset: Point{X: -WheelStep, Y: 0}},
		{name: "shift turns vertical into horizontal", ev: WheelEvent{DY: -1, Shift: true}, wantScale: 1, wantOffset: Point{X: WheelStep, Y: 0}},
		{name: "modifier scroll up zooms in", ev: WheelEvent{DY: -1, ZoomModifier: true}, wantScale: 1.1},
		{name: "modifier scroll down zooms out", ev: WheelEvent{DY: 1, ZoomModifier: true}, wantScale: 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{Scale: 1}
			tr.Wheel(tt.ev)
			if tr.Scale != tt.wantScale || tr.Offset != tt.wantOffset {
				t.Fatalf("got scale %v offset %+v", tr.Scale, tr.Offset)
			}
		})
	}
}

func TestWheelZoomUsesSameBounds(t *testing.T) {
	tr := Transform{Scale: MaxScale}
	tr.Wheel(WheelEvent{DY: -1, ZoomModifier: true})
	if tr.Scale != MaxScale {
		t.Fatalf("expected wheel zoom to clamp at %v, got %v", MaxScale, tr.Scale)
	}
}

func TestDragOnlyFromBackground(t *testing.T) {
	for _, target := range []Target{TargetNode, TargetControl, TargetInput} {
		var d Drag
		if d.Begin(target, Point{}) {
			t.Fatalf("expected %s press not to start a pan", target)
		}
		if _, _, ok := d.Move(Point{X: 5}); ok {
			t.Fatalf("expected no movement after %s press", target)
		}
	}

	var d Drag
	if !d.Begin(TargetBackground, Point{X: 10, Y: 10}) {
		t.Fatal("expected background press to start a pan")
	}
	dx, dy, ok := d.Move(Point{X: 13, Y: 8})
	if !ok || dx != 3 || dy != -2 {
		t.Fatalf("unexpected delta %v,%v ok=%v", dx, dy, ok)
	}
	dx, dy, _ = d.Move(Point{X: 14, Y: 8})
	if dx != 1 || dy != 0 {
		t.Fatalf("expected delta relative to the last position, got %v,%v", dx, dy)
	}
	d.End()
	if d.Active() {
		t.Fatal("expected drag to end")
	}
}
