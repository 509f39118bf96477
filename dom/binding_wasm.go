//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/phanxgames/panzoom"
)

// listener is one registered DOM event handler.
type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Binding connects a widget to the DOM: event listeners, the controls box,
// the zoom badge and the animation-frame loop.
type Binding struct {
	widget    *panzoom.Widget
	container *container
	cfg       *panzoom.Config

	listeners []listener
	controls  js.Value
	badge     js.Value

	raf      js.Func
	running  bool
	lastTime float64
	noRAF    bool

	handle      js.Value
	methods     []js.Func
	methodNames []string
	offs        map[int]js.Func
	nextOff     int
}

// Attach creates a widget for the <svg> inside el. When el holds no <svg>
// the returned binding's widget is destroyed and nothing is attached.
func Attach(el js.Value, cfg panzoom.Config) *Binding {
	b := &Binding{cfg: &cfg}
	b.container = newContainer(el, b.cfg)
	b.widget = panzoom.New(b.container, b.cfg)
	if b.widget.Destroyed() {
		return b
	}
	b.widget.Init()
	b.listen()
	b.buildControls()
	b.buildBadge()
	return b
}

// Widget returns the bound widget.
func (b *Binding) Widget() *panzoom.Widget { return b.widget }

func (b *Binding) on(target js.Value, event string, passive bool, fn func(e js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	opts := map[string]any{"passive": passive}
	target.Call("addEventListener", event, f, opts)
	b.listeners = append(b.listeners, listener{target: target, event: event, fn: f})
}

// point returns the event's client position relative to the container.
func (b *Binding) point(e js.Value) (float64, float64) {
	ox, oy := b.container.origin()
	return e.Get("clientX").Float() - ox, e.Get("clientY").Float() - oy
}

func (b *Binding) touches(e js.Value) []panzoom.Vec2 {
	list := e.Get("touches")
	n := list.Length()
	out := make([]panzoom.Vec2, 0, n)
	for i := 0; i < n; i++ {
		x, y := b.point(list.Index(i))
		out = append(out, panzoom.Vec2{X: x, Y: y})
	}
	return out
}

func (b *Binding) listen() {
	w := b.widget
	el := b.container.el
	svg := b.container.graphic.el
	doc := js.Global().Get("document")

	consumed := func(e js.Value, ok bool) {
		if ok {
			e.Call("preventDefault")
			b.kick()
		}
	}

	b.on(el, "wheel", false, func(e js.Value) {
		x, y := b.point(e)
		consumed(e, w.HandleWheel(x, y, e.Get("deltaY").Float()))
	})
	b.on(svg, "mousedown", false, func(e js.Value) {
		x, y := b.point(e)
		if w.HandlePointerDown(x, y, mouseButton(e.Get("button").Int())) {
			e.Call("preventDefault")
			svg.Get("style").Set("cursor", "grabbing")
		}
	})
	b.on(doc, "mousemove", true, func(e js.Value) {
		x, y := b.point(e)
		w.HandlePointerMove(x, y)
	})
	b.on(doc, "mouseup", true, func(js.Value) {
		if w.HandlePointerUp() {
			svg.Get("style").Set("cursor", "grab")
		}
	})
	if w.Features().Touch != nil {
		b.on(svg, "touchstart", false, func(e js.Value) {
			consumed(e, w.HandleTouchStart(b.touches(e)))
		})
		b.on(svg, "touchmove", false, func(e js.Value) {
			consumed(e, w.HandleTouchMove(b.touches(e)))
		})
		// A double tap resets inside HandleTouchEnd; kick runs the transition.
		b.on(svg, "touchend", true, func(js.Value) {
			if w.HandleTouchEnd() {
				b.kick()
			}
		})
	}
	if w.Features().Keyboard != nil {
		b.on(el, "keydown", false, func(e js.Value) {
			consumed(e, w.HandleKey(panzoom.ParseKey(e.Get("key").String())))
		})
	}
	b.on(svg, "dblclick", false, func(js.Value) {
		if w.HandleDoubleClick() {
			b.kick()
		}
	})
	b.on(el, "contextmenu", false, func(e js.Value) {
		if w.HandleContextMenu() {
			e.Call("preventDefault")
		}
	})
}

// mouseButton maps MouseEvent.button. Back, forward and anything newer map
// to MouseButtonOther.
func mouseButton(n int) panzoom.MouseButton {
	switch n {
	case 0:
		return panzoom.MouseButtonLeft
	case 1:
		return panzoom.MouseButtonMiddle
	case 2:
		return panzoom.MouseButtonRight
	default:
		return panzoom.MouseButtonOther
	}
}

func (b *Binding) buildControls() {
	c := b.widget.Controls()
	if c == nil {
		return
	}
	doc := js.Global().Get("document")
	box := doc.Call("createElement", "div")
	box.Set("className", ControlsClass(c.Position()))
	for _, btn := range c.Buttons() {
		action := btn.Action
		el := doc.Call("createElement", "button")
		el.Set("textContent", btn.Label)
		el.Set("title", btn.Title)
		el.Call("setAttribute", "aria-label", btn.Title)
		el.Set("className", ClassButton)
		b.on(el, "click", false, func(e js.Value) {
			e.Call("preventDefault")
			e.Call("stopPropagation")
			c.Press(action)
			b.kick()
		})
		box.Call("appendChild", el)
	}
	b.container.el.Call("appendChild", box)
	b.controls = box
}

func (b *Binding) buildBadge() {
	ind := b.widget.Indicator()
	if ind == nil {
		return
	}
	badge := js.Global().Get("document").Call("createElement", "div")
	badge.Set("className", ClassIndicator)
	badge.Call("setAttribute", "aria-live", "polite")
	badge.Call("setAttribute", "aria-label", "Current zoom level")
	badge.Get("style").Set("opacity", "0")
	b.container.el.Call("appendChild", badge)
	b.badge = badge

	sync := func(panzoom.Transform) { b.syncBadge() }
	b.widget.Observe(panzoom.EventZoom, sync)
	b.widget.Observe(panzoom.EventReset, sync)
}

func (b *Binding) syncBadge() {
	ind := b.widget.Indicator()
	if ind == nil || !truthy(b.badge) {
		return
	}
	b.badge.Set("textContent", ind.Text())
	b.badge.Call("setAttribute", AttrZoomLevel, ind.Text())
	opacity := "0"
	if ind.Visible() {
		opacity = "1"
	}
	b.badge.Get("style").Set("opacity", opacity)
}

// busy reports whether time-based work remains.
func (b *Binding) busy() bool {
	ind := b.widget.Indicator()
	return b.widget.Animating() || (ind != nil && ind.Visible())
}

// kick starts the animation-frame loop if there is time-based work.
func (b *Binding) kick() {
	if b.widget.Destroyed() || b.running || !b.busy() {
		return
	}
	raf := js.Global().Get("requestAnimationFrame")
	if raf.Type() != js.TypeFunction {
		if !b.noRAF {
			b.noRAF = true
			panzoom.Logger().Warn("dom: requestAnimationFrame unavailable, transitions complete immediately")
		}
		b.widget.FinishTransition()
		return
	}
	if b.raf.IsUndefined() {
		b.raf = js.FuncOf(func(_ js.Value, args []js.Value) any {
			b.frame(args[0].Float())
			return nil
		})
	}
	b.running = true
	b.lastTime = 0
	raf.Invoke(b.raf)
}

func (b *Binding) frame(now float64) {
	if b.widget.Destroyed() {
		b.running = false
		return
	}
	if b.lastTime > 0 {
		b.widget.Update(float32((now - b.lastTime) / 1000))
		b.syncBadge()
	}
	b.lastTime = now
	if !b.busy() {
		b.running = false
		return
	}
	js.Global().Call("requestAnimationFrame", b.raf)
}

// Destroy tears down the widget, removes every listener and the elements
// Attach created. Safe to call twice.
func (b *Binding) Destroy() {
	if b.widget.Destroyed() && b.listeners == nil {
		return
	}
	b.widget.Destroy()
	for _, l := range b.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
	for _, el := range []js.Value{b.controls, b.badge} {
		if truthy(el) {
			el.Call("remove")
		}
	}
	b.controls, b.badge = js.Undefined(), js.Undefined()
	b.releaseHandle()
	// b.raf stays registered: a pending frame still calls it and stops there.
}
