package panzoom

// NoContextMenu suppresses the host's context menu over the container.
type NoContextMenu struct {
	w      *Widget
	active bool
}

func (n *NoContextMenu) init()     { n.active = true }
func (n *NoContextMenu) teardown() { n.active = false }

// HandleContextMenu reports whether the host should suppress its context
// menu.
func (w *Widget) HandleContextMenu() bool {
	n := w.features.NoContextMenu
	return !w.destroyed && n != nil && n.active
}
