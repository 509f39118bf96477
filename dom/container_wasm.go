//go:build js && wasm

package dom

import (
	"errors"
	"syscall/js"

	"github.com/phanxgames/panzoom"
)

// container adapts a DOM element holding an <svg> to panzoom.Container,
// panzoom.ContainerSetup and panzoom.Fullscreener.
type container struct {
	el      js.Value
	graphic *svgGraphic
	cfg     *panzoom.Config
}

func newContainer(el js.Value, cfg *panzoom.Config) *container {
	c := &container{el: el, cfg: cfg}
	if svg := el.Call("querySelector", "svg"); truthy(svg) {
		c.graphic = &svgGraphic{el: svg}
	}
	return c
}

func (c *container) Size() panzoom.Size {
	r := c.el.Call("getBoundingClientRect")
	return panzoom.Size{Width: r.Get("width").Float(), Height: r.Get("height").Float()}
}

func (c *container) Graphic() panzoom.Graphic {
	if c.graphic == nil {
		return nil
	}
	return c.graphic
}

// origin returns the container's top-left corner in client coordinates.
func (c *container) origin() (float64, float64) {
	r := c.el.Call("getBoundingClientRect")
	return r.Get("left").Float(), r.Get("top").Float()
}

func (c *container) Setup() {
	c.el.Get("classList").Call("add", ClassContainer)
	c.graphic.el.Get("classList").Call("add", ClassSVG)
	style := c.graphic.el.Get("style")
	style.Set("transformOrigin", "0 0")
	style.Set("cursor", "grab")
	if c.cfg.EnableKeyboard {
		c.el.Call("setAttribute", "tabindex", "0")
	}
}

func (c *container) Teardown() {
	c.el.Get("classList").Call("remove", ClassContainer)
	c.graphic.el.Get("classList").Call("remove", ClassSVG)
	c.el.Call("removeAttribute", "tabindex")
}

func (c *container) FullscreenEnabled() bool {
	return js.Global().Get("document").Get("fullscreenEnabled").Truthy()
}

func (c *container) IsFullscreen() bool {
	return truthy(js.Global().Get("document").Get("fullscreenElement"))
}

func (c *container) RequestFullscreen(done func(error)) {
	await(c.el.Call("requestFullscreen"), done)
}

func (c *container) ExitFullscreen(done func(error)) {
	await(js.Global().Get("document").Call("exitFullscreen"), done)
}

// await calls done once promise settles.
func await(promise js.Value, done func(error)) {
	if !truthy(promise) || promise.Get("then").Type() != js.TypeFunction {
		done(nil)
		return
	}
	var then, catch js.Func
	release := func() {
		then.Release()
		catch.Release()
	}
	then = js.FuncOf(func(js.Value, []js.Value) any {
		release()
		done(nil)
		return nil
	})
	catch = js.FuncOf(func(_ js.Value, args []js.Value) any {
		release()
		msg := "rejected"
		if len(args) > 0 && truthy(args[0]) {
			msg = args[0].Call("toString").String()
		}
		done(errors.New(msg))
		return nil
	})
	promise.Call("then", then, catch)
}

// svgGraphic adapts an <svg> element to panzoom.Graphic.
type svgGraphic struct {
	el js.Value
}

// BBox calls getBBox. It panics with a js.Error when the element is not
// rendered; panzoom recovers that.
func (g *svgGraphic) BBox() (panzoom.Rect, error) {
	if g.el.Get("getBBox").Type() != js.TypeFunction {
		return panzoom.Rect{}, panzoom.ErrBBoxUnsupported
	}
	return rect(g.el.Call("getBBox")), nil
}

func (g *svgGraphic) ViewBox() (panzoom.Rect, bool) {
	vb := g.el.Get("viewBox")
	if !truthy(vb) {
		return panzoom.Rect{}, false
	}
	base := vb.Get("baseVal")
	if !truthy(base) {
		return panzoom.Rect{}, false
	}
	return rect(base), true
}

func (g *svgGraphic) Attr(name string) (string, bool) {
	v := g.el.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (g *svgGraphic) SetTransform(t panzoom.Transform) {
	g.el.Get("style").Set("transform", TransformCSS(t))
}

func rect(v js.Value) panzoom.Rect {
	return panzoom.Rect{
		X:      v.Get("x").Float(),
		Y:      v.Get("y").Float(),
		Width:  v.Get("width").Float(),
		Height: v.Get("height").Float(),
	}
}

func truthy(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull() && v.Truthy()
}
