package panzoom

// ZoomAt changes the scale by delta, clamped to [MinScale, MaxScale], keeping
// the content point under the container position (x, y) in place. It
// constrains the pan, renders immediately and emits EventZoom.
//
// Nothing happens when the clamped scale equals the current one, or when the
// configuration produces a scale that is not finite and positive.
func (w *Widget) ZoomAt(x, y, delta float64) {
	if w.destroyed {
		return
	}
	newScale := w.cfg.clampScale(w.state.Scale + delta)
	if newScale == w.state.Scale || !positive(newScale) {
		return
	}

	cx, cy := w.state.ContentPoint(x, y)
	w.state.Scale = newScale
	w.state.TranslateX = x - cx*newScale
	w.state.TranslateY = y - cy*newScale

	w.ConstrainPan()
	w.ApplyTransform()
	w.emit(EventZoom)
}

// ZoomIn zooms in by ZoomStep around the container centre.
func (w *Widget) ZoomIn() {
	if w.destroyed {
		return
	}
	size := w.containerSize()
	w.ZoomAt(size.Width/2, size.Height/2, w.cfg.ZoomStep)
}

// ZoomOut zooms out by ZoomStep around the container centre.
func (w *Widget) ZoomOut() {
	if w.destroyed {
		return
	}
	size := w.containerSize()
	w.ZoomAt(size.Width/2, size.Height/2, -w.cfg.ZoomStep)
}

// WheelZoom maps wheel ticks to ZoomAt at the pointer position.
type WheelZoom struct {
	w      *Widget
	active bool
}

func (z *WheelZoom) init()     { z.active = true }
func (z *WheelZoom) teardown() { z.active = false }

// WheelDelta returns the scale delta for one wheel tick. deltaY follows the
// DOM convention: positive is scrolling down (towards the user), which zooms
// out; negative zooms in; zero yields no zoom.
func WheelDelta(deltaY, zoomStep float64) float64 {
	switch {
	case deltaY > 0:
		return -zoomStep
	case deltaY < 0:
		return zoomStep
	default:
		return 0
	}
}

// handle processes one tick. It reports whether the event was consumed.
func (z *WheelZoom) handle(x, y, deltaY float64) bool {
	if z.w.destroyed || !z.active {
		return false
	}
	delta := WheelDelta(deltaY, z.w.cfg.ZoomStep)
	if delta == 0 {
		return false
	}
	z.w.ZoomAt(x, y, delta)
	return true
}

// HandleWheel handles a wheel tick at container position (x, y). deltaY uses
// the DOM sign convention (see WheelDelta). It reports whether the host
// should prevent the default scroll.
func (w *Widget) HandleWheel(x, y, deltaY float64) bool {
	if w.destroyed || w.features.Zoom == nil {
		return false
	}
	return w.features.Zoom.handle(x, y, deltaY)
}
