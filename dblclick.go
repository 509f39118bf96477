package panzoom

// DblclickReset resets the view on double click or double tap.
type DblclickReset struct {
	w      *Widget
	active bool
}

func (d *DblclickReset) init()     { d.active = true }
func (d *DblclickReset) teardown() { d.active = false }

// HandleDoubleClick resets the view.
func (w *Widget) HandleDoubleClick() bool {
	d := w.features.DblclickReset
	if w.destroyed || d == nil || !d.active {
		return false
	}
	w.Reset()
	return true
}
