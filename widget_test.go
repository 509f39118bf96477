package panzoom

import (
	"math"
	"testing"
	"time"
)

func TestNewWithoutGraphic(t *testing.T) {
	c := &fakeContainer{size: Size{400, 300}}
	w := New(c, nil)
	if !w.Destroyed() {
		t.Fatal("widget without graphic should be destroyed")
	}
	w.Init()
	w.ZoomIn()
	w.Reset()
	w.Destroy()
	if c.setups != 0 || c.teardowns != 0 {
		t.Errorf("setups=%d teardowns=%d, want 0 0", c.setups, c.teardowns)
	}
	if w.Transform() != Identity {
		t.Errorf("Transform = %+v, want identity", w.Transform())
	}

	if w := New(nil, nil); !w.Destroyed() {
		t.Error("nil container should yield a destroyed widget")
	}
}

func TestInitRendersAndSetsUp(t *testing.T) {
	g := declared("200", "200")
	c := &fakeContainer{size: Size{400, 300}, graphic: g}
	w := New(c, nil)
	w.Init()
	if c.setups != 1 {
		t.Errorf("setups = %d, want 1", c.setups)
	}
	if g.sets != 1 || g.last != Identity {
		t.Errorf("graphic sets=%d last=%+v, want 1 identity", g.sets, g.last)
	}
	w.Destroy()
	w.Destroy()
	if c.teardowns != 1 {
		t.Errorf("teardowns = %d, want 1", c.teardowns)
	}
}

func TestResetFromCorruptedState(t *testing.T) {
	states := []Transform{
		{Scale: 4, TranslateX: 120, TranslateY: -80},
		{Scale: math.NaN(), TranslateX: math.NaN(), TranslateY: math.NaN()},
		{Scale: math.Inf(1), TranslateX: math.Inf(-1), TranslateY: 3},
	}
	for _, s := range states {
		w, g := newTestWidget(t, nil)
		w.state = s
		w.displayed = s
		w.Reset()
		w.FinishTransition()
		if w.Transform() != Identity {
			t.Errorf("from %+v: Transform = %+v, want identity", s, w.Transform())
		}
		if g.last != Identity {
			t.Errorf("from %+v: graphic = %+v, want identity", s, g.last)
		}
	}
}

func TestResetAnimates(t *testing.T) {
	cfg := testConfig()
	cfg.TransitionDuration = 200 * time.Millisecond
	w, g := newTestWidget(t, cfg)
	w.ZoomAt(0, 0, 1)

	var resets int
	w.On(EventReset, func(tr Transform) {
		resets++
		if tr != Identity {
			t.Errorf("reset payload = %+v, want identity", tr)
		}
	})
	w.Reset()
	if resets != 1 {
		t.Errorf("reset events = %d, want 1", resets)
	}
	if !w.Animating() {
		t.Fatal("Reset should animate")
	}
	w.Update(0.1)
	if g.last.Scale <= 1 || g.last.Scale >= 2 {
		t.Errorf("midway scale = %v, want between 1 and 2", g.last.Scale)
	}
	w.Update(0.2)
	if w.Animating() {
		t.Error("transition still running after its duration")
	}
	if g.last != Identity {
		t.Errorf("graphic = %+v, want identity", g.last)
	}
}

func TestResetWithoutDurationIsImmediate(t *testing.T) {
	cfg := testConfig()
	cfg.TransitionDuration = 0
	w, g := newTestWidget(t, cfg)
	w.ZoomAt(0, 0, 1)
	w.Reset()
	if w.Animating() || g.last != Identity {
		t.Errorf("animating=%v graphic=%+v, want immediate identity", w.Animating(), g.last)
	}
}

func TestTransitionLastWriteWins(t *testing.T) {
	w, g := newTestWidget(t, nil)
	w.ZoomAt(0, 0, 3)
	w.Reset()
	w.Update(0.05)

	w.ZoomAt(0, 0, 1)
	if w.Animating() {
		t.Error("immediate apply should cancel the transition")
	}
	w.Update(1)
	if g.last != w.Transform() {
		t.Errorf("graphic = %+v, want %+v", g.last, w.Transform())
	}

	w.Reset()
	w.Update(0.05)
	w.Reset()
	if w.anim == nil {
		t.Fatal("second Reset should start a new transition")
	}
	w.Update(1)
	if g.last != Identity {
		t.Errorf("graphic = %+v, want identity", g.last)
	}
}

func TestDestroyDropsTransition(t *testing.T) {
	w, g := newTestWidget(t, nil)
	w.ZoomAt(0, 0, 2)
	w.Reset()
	w.Destroy()
	sets := g.sets
	w.Update(1)
	if g.sets != sets {
		t.Error("graphic written after Destroy")
	}
}

func TestDestroyedOperationsAreNoOps(t *testing.T) {
	w, g := newTestWidget(t, nil)
	w.ZoomAt(100, 100, 1)
	w.SetTranslate(30, 40)

	events := counter{}
	events.watch(w, EventZoom, EventPan, EventReset, EventArrow)
	w.Destroy()
	before := w.Transform()
	sets := g.sets

	w.ZoomIn()
	w.ZoomOut()
	w.ZoomAt(0, 0, 1)
	w.Reset()
	w.ConstrainPan()
	w.SetTranslate(1, 1)
	w.PanBy(5, 5)
	w.ApplyTransform()
	w.ApplyTransformWithTransition()
	w.Update(1)
	w.HandleWheel(0, 0, -100)
	w.HandlePointerDown(0, 0, MouseButtonLeft)
	w.HandlePointerMove(50, 50)
	w.HandleKey(KeyArrowUp)
	w.HandleTouchStart([]Vec2{{0, 0}, {10, 0}})
	w.HandleTouchMove([]Vec2{{0, 0}, {20, 0}})
	w.HandleDoubleClick()
	w.ToggleFullscreen()

	if w.Transform() != before {
		t.Errorf("Transform = %+v, want %+v", w.Transform(), before)
	}
	if len(events) != 0 {
		t.Errorf("events after Destroy: %v", events)
	}
	if g.sets != sets {
		t.Error("graphic written after Destroy")
	}
	if w.HandleContextMenu() {
		t.Error("context menu suppressed after Destroy")
	}
	if w.Controls() != nil || w.Indicator() != nil {
		t.Error("collaborators still reachable after Destroy")
	}
	if sub := w.On(EventZoom, func(Transform) {}); sub.reg != nil {
		t.Error("On after Destroy returned a live subscription")
	}
}

func TestLiveConfigEdits(t *testing.T) {
	w, _ := newTestWidget(t, nil)
	w.Config().MaxScale = 1.5
	w.ZoomAt(0, 0, 5)
	if s := w.Transform().Scale; s != 1.5 {
		t.Errorf("Scale = %v, want 1.5", s)
	}
}

func TestInvalidConfigStaysFinite(t *testing.T) {
	cfg := &Config{MinScale: math.NaN(), MaxScale: math.Inf(1), ZoomStep: math.NaN()}
	w, _ := newTestWidget(t, cfg)
	w.ZoomIn()
	w.ZoomAt(10, 10, math.NaN())
	w.SetTranslate(math.Inf(1), math.NaN())
	if !w.Transform().isFinite() {
		t.Errorf("Transform = %+v, want finite", w.Transform())
	}
}
