package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/panzoom"
)

const (
	doubleClickThreshold = 500 * time.Millisecond
	doubleClickDistance  = 25 // px squared

	keyRepeatDelay    = 30 // ticks
	keyRepeatInterval = 4  // ticks
)

// frameInput is one frame's worth of input, read from ebiten or synthesized
// from the inject queue.
type frameInput struct {
	cursor       panzoom.Vec2
	leftPressed  bool
	leftReleased bool
	wheelY       float64 // ebiten convention: positive scrolls up
	touches      []panzoom.Vec2
	keys         []panzoom.Key
}

// readInput polls ebiten's input state.
func (h *Host) readInput() frameInput {
	mx, my := ebiten.CursorPosition()
	in := frameInput{
		cursor:       panzoom.Vec2{X: float64(mx), Y: float64(my)},
		leftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		leftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	_, in.wheelY = ebiten.Wheel()

	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		in.touches = append(in.touches, panzoom.Vec2{X: float64(x), Y: float64(y)})
	}

	h.keyBuf = inpututil.AppendJustPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		if pk := translateKey(k); pk != panzoom.KeyNone {
			in.keys = append(in.keys, pk)
		}
	}
	for _, k := range [...]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight} {
		if repeating(inpututil.KeyPressDuration(k)) {
			in.keys = append(in.keys, translateKey(k))
		}
	}
	return in
}

// repeating reports whether a key held for d ticks fires an auto-repeat.
// The initial press is reported by AppendJustPressedKeys.
func repeating(d int) bool {
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

func translateKey(k ebiten.Key) panzoom.Key {
	switch k {
	case ebiten.KeyNumpadAdd:
		return panzoom.KeyPlus
	case ebiten.KeyEqual:
		return panzoom.KeyEqual
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		return panzoom.KeyMinus
	case ebiten.KeyDigit0, ebiten.KeyNumpad0:
		return panzoom.KeyZero
	case ebiten.KeyArrowUp:
		return panzoom.KeyArrowUp
	case ebiten.KeyArrowDown:
		return panzoom.KeyArrowDown
	case ebiten.KeyArrowLeft:
		return panzoom.KeyArrowLeft
	case ebiten.KeyArrowRight:
		return panzoom.KeyArrowRight
	default:
		return panzoom.KeyNone
	}
}

// apply feeds one frame of input to the widget.
func (h *Host) apply(in frameInput) {
	w := h.widget
	if w == nil || w.Destroyed() {
		return
	}

	if in.wheelY != 0 {
		w.HandleWheel(in.cursor.X, in.cursor.Y, -in.wheelY)
	}

	if in.leftPressed {
		if b, ok := h.controlAt(in.cursor.X, in.cursor.Y); ok {
			w.Controls().Press(b.Action)
		} else {
			w.HandlePointerDown(in.cursor.X, in.cursor.Y, panzoom.MouseButtonLeft)
			if h.isDoubleClick(in.cursor) {
				w.HandleDoubleClick()
			}
		}
	} else if in.cursor != h.cursor {
		w.HandlePointerMove(in.cursor.X, in.cursor.Y)
	}
	h.cursor = in.cursor
	if in.leftReleased {
		w.HandlePointerUp()
	}

	h.applyTouches(in.touches)

	for _, k := range in.keys {
		w.HandleKey(k)
	}
}

func (h *Host) applyTouches(touches []panzoom.Vec2) {
	w := h.widget
	switch {
	case len(touches) != h.touchCount:
		if len(touches) == 0 {
			w.HandleTouchEnd()
		} else {
			w.HandleTouchStart(touches)
		}
	case len(touches) > 0:
		w.HandleTouchMove(touches)
	}
	h.touchCount = len(touches)
}

// isDoubleClick records a press at p and reports whether it completes a
// double click. Double taps are recognised by the widget's touch feature.
func (h *Host) isDoubleClick(p panzoom.Vec2) bool {
	now := h.now()
	dx, dy := p.X-h.lastClickPos.X, p.Y-h.lastClickPos.Y
	double := !h.lastClick.IsZero() &&
		now.Sub(h.lastClick) < doubleClickThreshold &&
		dx*dx+dy*dy < doubleClickDistance
	if double {
		// A third click starts a new pair.
		h.lastClick = time.Time{}
	} else {
		h.lastClick = now
		h.lastClickPos = p
	}
	return double
}
