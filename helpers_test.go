package panzoom

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fakeGraphic is an in-memory graphic with configurable bounds sources.
type fakeGraphic struct {
	bbox      Rect
	bboxErr   error
	bboxPanic bool
	viewBox   *Rect
	attrs     map[string]string

	sets int
	last Transform
}

func (g *fakeGraphic) BBox() (Rect, error) {
	if g.bboxPanic {
		panic("getBBox is not a function")
	}
	if g.bboxErr != nil {
		return Rect{}, g.bboxErr
	}
	return g.bbox, nil
}

func (g *fakeGraphic) ViewBox() (Rect, bool) {
	if g.viewBox == nil {
		return Rect{}, false
	}
	return *g.viewBox, true
}

func (g *fakeGraphic) Attr(name string) (string, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

func (g *fakeGraphic) SetTransform(t Transform) {
	g.sets++
	g.last = t
}

// declared returns a graphic whose only size source is width/height.
func declared(w, h string) *fakeGraphic {
	return &fakeGraphic{
		bboxErr: ErrBBoxUnsupported,
		attrs:   map[string]string{"width": w, "height": h},
	}
}

type fakeContainer struct {
	size    Size
	graphic Graphic

	setups, teardowns int
}

func (c *fakeContainer) Size() Size       { return c.size }
func (c *fakeContainer) Graphic() Graphic { return c.graphic }
func (c *fakeContainer) Setup()           { c.setups++ }
func (c *fakeContainer) Teardown()        { c.teardowns++ }

// fakeFullscreen adds the fullscreen capability to fakeContainer.
type fakeFullscreen struct {
	fakeContainer
	enabled bool
	on      bool
	fail    bool
	calls   int
}

func (f *fakeFullscreen) FullscreenEnabled() bool { return f.enabled }
func (f *fakeFullscreen) IsFullscreen() bool      { return f.on }

func (f *fakeFullscreen) RequestFullscreen(done func(error)) {
	f.calls++
	if f.fail {
		done(errors.New("permission denied"))
		return
	}
	f.on = true
	done(nil)
}

func (f *fakeFullscreen) ExitFullscreen(done func(error)) {
	f.calls++
	f.on = false
	done(nil)
}

// newTestWidget returns an initialized widget over a 200x200 graphic in a
// 400x300 container.
func newTestWidget(t *testing.T, cfg *Config) (*Widget, *fakeGraphic) {
	t.Helper()
	g := declared("200", "200")
	w := New(&fakeContainer{size: Size{400, 300}, graphic: g}, cfg)
	w.Init()
	t.Cleanup(w.Destroy)
	return w, g
}

func testConfig() *Config {
	c := DefaultConfig()
	return &c
}

// counter counts notifications per event.
type counter map[EventType]int

func (c counter) watch(w *Widget, events ...EventType) {
	for _, e := range events {
		w.On(e, func(Transform) { c[e]++ })
	}
}
