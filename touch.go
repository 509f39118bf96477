package panzoom

import (
	"math"
	"time"
)

const (
	// DoubleTapInterval is the longest gap between two taps that still
	// counts as a double tap.
	DoubleTapInterval = 300 * time.Millisecond
	// TapSlop is how far a finger may travel, in pixels, and still tap.
	TapSlop = 25.0
)

// tapTracker recognises two quick taps close together. A tap is a single
// touch that ends without travelling further than TapSlop and without
// becoming a pinch.
type tapTracker struct {
	candidate bool
	start     Vec2
	last      time.Time
	lastPos   Vec2
}

func (tt *tapTracker) begin(p Vec2) {
	tt.candidate = true
	tt.start = p
}

func (tt *tapTracker) moved(p Vec2) {
	if tt.candidate && touchDistance(tt.start, p) > TapSlop {
		tt.candidate = false
	}
}

// end reports whether the finished tap completes a double tap.
func (tt *tapTracker) end(now time.Time) bool {
	if !tt.candidate {
		return false
	}
	tt.candidate = false
	double := !tt.last.IsZero() &&
		now.Sub(tt.last) <= DoubleTapInterval &&
		touchDistance(tt.lastPos, tt.start) <= TapSlop
	if double {
		// A third tap starts a new pair.
		tt.last = time.Time{}
	} else {
		tt.last = now
		tt.lastPos = tt.start
	}
	return double
}

// PinchSession tracks the finger distance of a two-touch gesture.
type PinchSession struct {
	Active       bool
	LastDistance float64
}

// Touch maps one-finger drags to pans and two-finger pinches to zooms. Two
// quick taps reset the view through the double-click feature.
type Touch struct {
	w      *Widget
	active bool
	drag   DragSession
	pinch  PinchSession
	taps   tapTracker
}

func (t *Touch) init() { t.active = true }

func (t *Touch) teardown() {
	t.active = false
	t.reset()
	t.taps = tapTracker{}
}

func (t *Touch) reset() {
	t.drag.end()
	t.pinch = PinchSession{}
}

// Dragging reports whether a one-finger drag is in progress.
func (t *Touch) Dragging() bool { return t.drag.Active }

// Pinching reports whether a two-finger pinch is in progress.
func (t *Touch) Pinching() bool { return t.pinch.Active }

func (t *Touch) enabled() bool {
	return !t.w.destroyed && t.active && t.w.cfg.EnableTouch
}

func touchDistance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func touchCenter(a, b Vec2) Vec2 {
	return Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func (t *Touch) start(touches []Vec2) bool {
	if !t.enabled() {
		return false
	}
	switch len(touches) {
	case 1:
		t.pinch = PinchSession{}
		t.drag.begin(touches[0].X, touches[0].Y)
		t.taps.begin(touches[0])
		return true
	case 2:
		t.drag.end()
		t.taps.candidate = false
		t.pinch = PinchSession{Active: true, LastDistance: touchDistance(touches[0], touches[1])}
		return true
	}
	return false
}

func (t *Touch) move(touches []Vec2) bool {
	if !t.enabled() {
		return false
	}
	switch {
	case len(touches) == 1 && t.drag.Active:
		t.taps.moved(touches[0])
		dx, dy := t.drag.step(touches[0].X, touches[0].Y)
		t.w.PanBy(dx, dy)
		t.w.emit(EventPan)
		return true
	case len(touches) == 2 && t.pinch.Active:
		dist := touchDistance(touches[0], touches[1])
		last := t.pinch.LastDistance
		t.pinch.LastDistance = dist
		// A zero starting distance has no ratio; wait for the next move.
		if last <= 0 {
			return true
		}
		delta := (dist/last - 1) * t.w.state.Scale
		c := touchCenter(touches[0], touches[1])
		t.w.ZoomAt(c.X, c.Y, delta)
		return true
	}
	return false
}

func (t *Touch) end() bool {
	if !t.enabled() {
		return false
	}
	t.reset()
	if t.taps.end(t.w.now()) {
		t.w.HandleDoubleClick()
	}
	return true
}

// HandleTouchStart begins a drag (one touch) or a pinch (two touches).
// Positions are relative to the container.
func (w *Widget) HandleTouchStart(touches []Vec2) bool {
	if w.destroyed || w.features.Touch == nil {
		return false
	}
	return w.features.Touch.start(touches)
}

// HandleTouchMove continues the gesture started by HandleTouchStart.
func (w *Widget) HandleTouchMove(touches []Vec2) bool {
	if w.destroyed || w.features.Touch == nil {
		return false
	}
	return w.features.Touch.move(touches)
}

// HandleTouchEnd ends any drag or pinch. A tap that follows another within
// DoubleTapInterval and TapSlop resets the view like a double click.
func (w *Widget) HandleTouchEnd() bool {
	if w.destroyed || w.features.Touch == nil {
		return false
	}
	return w.features.Touch.end()
}
