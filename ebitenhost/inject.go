package ebitenhost

import "github.com/phanxgames/panzoom"

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
	synthKey
)

// syntheticEvent is one queued input event in container coordinates.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	wheelY float64
	key    panzoom.Key
}

// InjectPress queues a left-button press at (x, y). Queued events are
// consumed one per frame in place of real input.
func (h *Host) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move to (x, y).
func (h *Host) InjectMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a left-button release at (x, y).
func (h *Host) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectClick queues a press and a release at (x, y). Consumes two frames.
func (h *Host) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDoubleClick queues two clicks at (x, y).
func (h *Host) InjectDoubleClick(x, y float64) {
	h.InjectClick(x, y)
	h.InjectClick(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (h *Host) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel tick at (x, y). Positive dy scrolls up (zooms
// in), as ebiten reports it.
func (h *Host) InjectWheel(x, y, dy float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: synthWheel, x: x, y: y, wheelY: dy})
}

// InjectKey queues a key press.
func (h *Host) InjectKey(k panzoom.Key) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: synthKey, key: k})
}

// nextInjected pops one queued event and converts it into a frame of input.
func (h *Host) nextInjected() (frameInput, bool) {
	if len(h.injectQueue) == 0 {
		return frameInput{}, false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	// Keys leave the pointer where it was.
	in := frameInput{cursor: h.cursor}
	switch evt.kind {
	case synthPress:
		in.cursor = panzoom.Vec2{X: evt.x, Y: evt.y}
		in.leftPressed = true
	case synthMove:
		in.cursor = panzoom.Vec2{X: evt.x, Y: evt.y}
	case synthRelease:
		in.cursor = panzoom.Vec2{X: evt.x, Y: evt.y}
		in.leftReleased = true
	case synthWheel:
		in.cursor = panzoom.Vec2{X: evt.x, Y: evt.y}
		in.wheelY = evt.wheelY
	case synthKey:
		in.keys = []panzoom.Key{evt.key}
	}
	return in, true
}
