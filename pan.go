package panzoom

// DragSession tracks one press-move-release sequence.
type DragSession struct {
	Active       bool
	LastX, LastY float64
}

// begin starts a session at (x, y).
func (d *DragSession) begin(x, y float64) {
	d.Active = true
	d.LastX = x
	d.LastY = y
}

// step returns the delta since the previous position and records (x, y).
func (d *DragSession) step(x, y float64) (dx, dy float64) {
	dx = x - d.LastX
	dy = y - d.LastY
	d.LastX = x
	d.LastY = y
	return dx, dy
}

func (d *DragSession) end() {
	d.Active = false
}

// Pan moves the graphic with the primary mouse button.
type Pan struct {
	w       *Widget
	active  bool
	session DragSession
}

func (p *Pan) init() { p.active = true }

func (p *Pan) teardown() {
	p.active = false
	p.session.end()
}

// Dragging reports whether a drag is in progress.
func (p *Pan) Dragging() bool {
	return p.session.Active
}

func (p *Pan) down(x, y float64, button MouseButton) bool {
	if p.w.destroyed || !p.active || button != MouseButtonLeft {
		return false
	}
	p.session.begin(x, y)
	return true
}

func (p *Pan) move(x, y float64) bool {
	if p.w.destroyed || !p.active || !p.session.Active {
		return false
	}
	dx, dy := p.session.step(x, y)
	p.w.PanBy(dx, dy)
	p.w.emit(EventPan)
	return true
}

func (p *Pan) up() bool {
	if p.w.destroyed || !p.active || !p.session.Active {
		return false
	}
	p.session.end()
	return true
}

// HandlePointerDown starts a drag when button is the left button. It reports
// whether the event was consumed.
func (w *Widget) HandlePointerDown(x, y float64, button MouseButton) bool {
	if w.destroyed || w.features.Pan == nil {
		return false
	}
	return w.features.Pan.down(x, y, button)
}

// HandlePointerMove pans by the movement since the previous pointer event
// while a drag is active.
func (w *Widget) HandlePointerMove(x, y float64) bool {
	if w.destroyed || w.features.Pan == nil {
		return false
	}
	return w.features.Pan.move(x, y)
}

// HandlePointerUp ends the current drag.
func (w *Widget) HandlePointerUp() bool {
	if w.destroyed || w.features.Pan == nil {
		return false
	}
	return w.features.Pan.up()
}
