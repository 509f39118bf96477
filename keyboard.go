package panzoom

// Keyboard zooms with +/-, resets with 0 and nudges with the arrow keys.
type Keyboard struct {
	w      *Widget
	active bool
}

func (k *Keyboard) init()     { k.active = true }
func (k *Keyboard) teardown() { k.active = false }

func (k *Keyboard) handle(key Key) bool {
	w := k.w
	if w.destroyed || !k.active || !w.cfg.EnableKeyboard {
		return false
	}
	step := w.cfg.PanStep
	switch key {
	case KeyPlus, KeyEqual:
		w.ZoomIn()
	case KeyMinus:
		w.ZoomOut()
	case KeyZero:
		w.Reset()
	case KeyArrowUp:
		k.nudge(0, step)
	case KeyArrowDown:
		k.nudge(0, -step)
	case KeyArrowLeft:
		k.nudge(step, 0)
	case KeyArrowRight:
		k.nudge(-step, 0)
	default:
		return false
	}
	return true
}

func (k *Keyboard) nudge(dx, dy float64) {
	k.w.PanBy(dx, dy)
	k.w.emit(EventArrow)
}

// HandleKey handles a key press while the container has focus. It reports
// whether the key was consumed.
func (w *Widget) HandleKey(key Key) bool {
	if w.destroyed || w.features.Keyboard == nil {
		return false
	}
	return w.features.Keyboard.handle(key)
}
