package panzoom

import (
	"fmt"
	"math"
)

// ZoomIndicator is a badge showing the zoom percentage. It appears on every
// zoom or reset and hides IndicatorTimeout after the last one.
type ZoomIndicator struct {
	w         *Widget
	subs      []Subscription
	text      string
	visible   bool
	remaining float32
}

func (z *ZoomIndicator) init() {
	z.text = formatPercent(z.w.state.Scale)
	z.subs = append(z.subs,
		z.w.Observe(EventZoom, z.show),
		z.w.Observe(EventReset, z.show),
	)
}

func (z *ZoomIndicator) teardown() {
	for _, s := range z.subs {
		s.Remove()
	}
	z.subs = nil
	z.visible = false
}

func (z *ZoomIndicator) show(t Transform) {
	z.text = formatPercent(t.Scale)
	z.visible = true
	z.remaining = float32(z.w.cfg.IndicatorTimeout.Seconds())
}

func (z *ZoomIndicator) update(dt float32) {
	if !z.visible {
		return
	}
	z.remaining -= dt
	if z.remaining <= 0 {
		z.visible = false
	}
}

// Text returns the badge label, e.g. "150%".
func (z *ZoomIndicator) Text() string { return z.text }

// Visible reports whether the badge is showing.
func (z *ZoomIndicator) Visible() bool { return z.visible }

func formatPercent(scale float64) string {
	if !finite(scale) {
		return "–"
	}
	return fmt.Sprintf("%d%%", int(math.Round(scale*100)))
}

// Indicator returns the zoom indicator, or nil when it is off.
func (w *Widget) Indicator() *ZoomIndicator {
	return w.features.Indicator
}
