package ebitenhost

import (
	"math"
	"testing"
	"time"

	"github.com/phanxgames/panzoom"
	"github.com/phanxgames/panzoom/svgdoc"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200">
  <rect x="0" y="0" width="200" height="200" fill="#88aa44"/>
</svg>`

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestHost(t *testing.T, cfg *panzoom.Config) *Host {
	t.Helper()
	doc, err := svgdoc.Parse([]byte(testSVG))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h := New(doc, cfg, Options{Width: 400, Height: 300})
	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }
	t.Cleanup(func() { h.Widget().Destroy() })
	return h
}

// drain applies every queued synthetic event.
func drain(h *Host) {
	for {
		in, ok := h.nextInjected()
		if !ok {
			return
		}
		h.apply(in)
	}
}

func TestHostIsContainer(t *testing.T) {
	h := newTestHost(t, nil)
	if h.Widget().Destroyed() {
		t.Fatal("widget destroyed with a document present")
	}
	if got := h.Size(); got != (panzoom.Size{Width: 400, Height: 300}) {
		t.Errorf("Size = %+v", got)
	}
	if h.Widget().Features().Fullscreen == nil {
		t.Error("desktop host should offer fullscreen")
	}
}

func TestHostWithoutDocument(t *testing.T) {
	h := New(nil, nil, Options{})
	if !h.Widget().Destroyed() {
		t.Error("widget without document should be destroyed")
	}
	h.apply(frameInput{leftPressed: true})
}

func TestDragPansGraphic(t *testing.T) {
	h := newTestHost(t, nil)
	h.InjectDrag(100, 100, 150, 130, 4)
	drain(h)
	if got := h.graphic.Transform(); !approxEqual(got.TranslateX, 50, 1e-9) || !approxEqual(got.TranslateY, 30, 1e-9) {
		t.Errorf("graphic transform = %+v, want translate (50,30)", got)
	}
}

func TestWheelZoomsAtCursor(t *testing.T) {
	h := newTestHost(t, nil)
	h.InjectWheel(100, 100, 1)
	drain(h)
	tr := h.Widget().Transform()
	if tr.Scale <= 1 {
		t.Fatalf("Scale = %v, want > 1 after scrolling up", tr.Scale)
	}
	cx, cy := tr.ContentPoint(100, 100)
	if !approxEqual(cx, 100, 1e-9) || !approxEqual(cy, 100, 1e-9) {
		t.Errorf("anchor moved to (%v,%v)", cx, cy)
	}
	h.InjectWheel(100, 100, -1)
	h.InjectWheel(100, 100, -1)
	drain(h)
	if s := h.Widget().Transform().Scale; s >= 1 {
		t.Errorf("Scale = %v, want < 1 after scrolling down", s)
	}
}

func TestDoubleClickResets(t *testing.T) {
	h := newTestHost(t, nil)
	h.InjectWheel(50, 50, 1)
	h.InjectDoubleClick(60, 60)
	drain(h)
	h.Widget().FinishTransition()
	if got := h.Widget().Transform(); got != panzoom.Identity {
		t.Errorf("Transform = %+v, want identity", got)
	}
}

func TestSlowClicksDoNotReset(t *testing.T) {
	h := newTestHost(t, nil)
	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }

	h.InjectWheel(50, 50, 1)
	h.InjectClick(60, 60)
	drain(h)
	clock = clock.Add(time.Second)
	h.InjectClick(60, 60)
	drain(h)
	if s := h.Widget().Transform().Scale; s == 1 {
		t.Error("clicks a second apart reset the view")
	}
}

func TestControlsClick(t *testing.T) {
	h := newTestHost(t, nil)
	layout := h.controlLayout()
	if len(layout) != 4 {
		t.Fatalf("buttons = %d, want 4", len(layout))
	}
	zoomIn := layout[1]
	if zoomIn.Action != panzoom.ControlZoomIn {
		t.Fatalf("first button = %v", zoomIn.Label)
	}
	h.InjectClick(zoomIn.Rect.X+1, zoomIn.Rect.Y+1)
	drain(h)
	if s := h.Widget().Transform().Scale; s <= 1 {
		t.Errorf("Scale = %v, want > 1", s)
	}
	if h.Widget().Features().Pan.Dragging() {
		t.Error("pressing a control started a drag")
	}
}

func TestLayoutControlsCorners(t *testing.T) {
	buttons := []panzoom.Button{{Label: "+"}, {Label: "-"}}
	tests := []struct {
		pos  panzoom.ControlsPosition
		x, y float64
	}{
		{panzoom.ControlsTopRight, 400 - cornerMargin - buttonSize, cornerMargin},
		{panzoom.ControlsTopLeft, cornerMargin, cornerMargin},
		{panzoom.ControlsBottomLeft, cornerMargin, 300 - cornerMargin - (2*buttonSize + buttonGap)},
		{panzoom.ControlsBottomRight, 400 - cornerMargin - buttonSize, 300 - cornerMargin - (2*buttonSize + buttonGap)},
	}
	for _, tt := range tests {
		got := layoutControls(buttons, tt.pos, 400, 300)
		if got[0].Rect.X != tt.x || got[0].Rect.Y != tt.y {
			t.Errorf("%s: first button at (%v,%v), want (%v,%v)", tt.pos, got[0].Rect.X, got[0].Rect.Y, tt.x, tt.y)
		}
		if got[1].Rect.Y != got[0].Rect.Y+buttonSize+buttonGap {
			t.Errorf("%s: buttons not stacked", tt.pos)
		}
	}
}

func TestKeysReachWidget(t *testing.T) {
	h := newTestHost(t, nil)
	h.InjectKey(panzoom.KeyArrowLeft)
	drain(h)
	if got := h.Widget().Transform().TranslateX; got != 20 {
		t.Errorf("TranslateX = %v, want 20", got)
	}
}

func TestTouchPinch(t *testing.T) {
	h := newTestHost(t, nil)
	h.apply(frameInput{touches: []panzoom.Vec2{{X: 150, Y: 150}, {X: 250, Y: 150}}})
	h.apply(frameInput{touches: []panzoom.Vec2{{X: 100, Y: 150}, {X: 300, Y: 150}}})
	if s := h.Widget().Transform().Scale; s <= 1 {
		t.Errorf("Scale = %v, want > 1", s)
	}
	h.apply(frameInput{})
	if h.Widget().Features().Touch.Pinching() {
		t.Error("pinch not ended")
	}
}

func TestReloadAndConfig(t *testing.T) {
	h := newTestHost(t, nil)
	old := h.Widget()
	old.ZoomIn()

	doc, err := svgdoc.Parse([]byte(testSVG))
	if err != nil {
		t.Fatal(err)
	}
	cfg := panzoom.DefaultConfig()
	cfg.MaxScale = 2
	h.SetConfig(cfg)
	h.Reload(doc)
	h.drainPending()

	if !old.Destroyed() {
		t.Error("previous widget not destroyed on reload")
	}
	if h.Widget() == old || h.Widget().Transform() != panzoom.Identity {
		t.Error("reload did not mount a fresh widget")
	}
	if h.Widget().Config().MaxScale != 2 {
		t.Errorf("MaxScale = %v, want 2", h.Widget().Config().MaxScale)
	}
}

func TestRasterFactor(t *testing.T) {
	tests := map[float64]float64{0.1: 1, 1: 1, 1.2: 2, 3: 3, 9: maxRasterFactor}
	for in, want := range tests {
		if got := rasterFactor(in); got != want {
			t.Errorf("rasterFactor(%v) = %v, want %v", in, got, want)
		}
	}
	w, h := rasterSize(panzoom.Rect{Width: 10000, Height: 5000}, 2)
	if w != maxRasterSide || h != maxRasterSide/2 {
		t.Errorf("rasterSize = %dx%d", w, h)
	}
}

func TestDrawGeoMMatchesTransform(t *testing.T) {
	tr := panzoom.Transform{Scale: 1.5, TranslateX: 30, TranslateY: -20}
	canvas := panzoom.Rect{Width: 200, Height: 100}
	// Raster at twice the canvas resolution.
	g := drawGeoM(tr, canvas, 400, 200)
	for _, px := range []panzoom.Vec2{{X: 0, Y: 0}, {X: 400, Y: 200}, {X: 100, Y: 50}} {
		x, y := g.Apply(px.X, px.Y)
		wantX, wantY := tr.ScreenPoint(px.X/2, px.Y/2)
		if !approxEqual(x, wantX, 1e-9) || !approxEqual(y, wantY, 1e-9) {
			t.Errorf("pixel %v -> (%v,%v), want (%v,%v)", px, x, y, wantX, wantY)
		}
	}
}

func TestDoubleTapUsesHostClock(t *testing.T) {
	h := newTestHost(t, nil)
	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }
	h.Widget().ZoomIn()

	tap := func() {
		h.apply(frameInput{touches: []panzoom.Vec2{{X: 100, Y: 100}}})
		h.apply(frameInput{})
	}
	tap()
	clock = clock.Add(time.Second)
	tap()
	if h.Widget().Transform().Scale == 1 {
		t.Fatal("taps a second apart reset the view")
	}
	clock = clock.Add(100 * time.Millisecond)
	tap()
	h.Widget().FinishTransition()
	if got := h.Widget().Transform(); got != panzoom.Identity {
		t.Errorf("Transform = %+v, want identity after a double tap", got)
	}
}

func TestFrameDelta(t *testing.T) {
	h := newTestHost(t, nil)
	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }

	if dt := h.frameDelta(); !approxEqual(float64(dt), 1.0/60, 1e-6) {
		t.Errorf("first dt = %v, want one nominal tick", dt)
	}
	clock = clock.Add(20 * time.Millisecond)
	if dt := h.frameDelta(); !approxEqual(float64(dt), 0.02, 1e-6) {
		t.Errorf("dt = %v, want 0.02", dt)
	}
	clock = clock.Add(5 * time.Second)
	if dt := h.frameDelta(); dt != maxFrameDelta {
		t.Errorf("stalled dt = %v, want %v", dt, maxFrameDelta)
	}
	clock = clock.Add(-time.Second)
	if dt := h.frameDelta(); dt != 0 {
		t.Errorf("dt after clock went back = %v, want 0", dt)
	}
}
