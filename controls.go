package panzoom

// ControlAction identifies an on-screen control button.
type ControlAction uint8

const (
	ControlZoomIn ControlAction = iota
	ControlZoomOut
	ControlReset
	ControlFullscreen
)

// Button describes one control for the host to draw.
type Button struct {
	Action ControlAction
	Label  string
	Title  string
}

// controlButtons is in display order.
var controlButtons = [...]Button{
	{Action: ControlFullscreen, Label: "⛶", Title: "Toggle Fullscreen"},
	{Action: ControlZoomIn, Label: "+", Title: "Zoom In"},
	{Action: ControlZoomOut, Label: "−", Title: "Zoom Out"},
	{Action: ControlReset, Label: "⌂", Title: "Reset Zoom"},
}

// Controls is the on-screen button model. Hosts lay the buttons out at
// Position and call Press when one is activated.
type Controls struct {
	w       *Widget
	active  bool
	buttons []Button
}

func (c *Controls) init() {
	c.active = true
	c.buttons = c.buttons[:0]
	for _, b := range controlButtons {
		if b.Action == ControlFullscreen && c.w.features.Fullscreen == nil {
			continue
		}
		c.buttons = append(c.buttons, b)
	}
}

func (c *Controls) teardown() {
	c.active = false
	c.buttons = nil
}

// Buttons returns the buttons in display order. The fullscreen button is
// present only when fullscreen is available.
func (c *Controls) Buttons() []Button {
	return c.buttons
}

// Position returns the configured corner.
func (c *Controls) Position() ControlsPosition {
	return c.w.cfg.ControlsPosition
}

// Press performs the action of a button.
func (c *Controls) Press(action ControlAction) {
	w := c.w
	if w.destroyed || !c.active {
		return
	}
	switch action {
	case ControlZoomIn:
		w.ZoomIn()
	case ControlZoomOut:
		w.ZoomOut()
	case ControlReset:
		w.Reset()
	case ControlFullscreen:
		w.ToggleFullscreen()
	}
}

// Controls returns the control model, or nil when controls are off.
func (w *Widget) Controls() *Controls {
	return w.features.Controls
}
