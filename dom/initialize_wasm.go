//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/phanxgames/panzoom"
)

// Initialize attaches a widget to every container selected by target: a CSS
// selector string, a single element, or an array of elements. Each container
// holding an <svg> is moved into a new wrapper div, which the widget is
// attached to. Containers already inside a wrapper are skipped.
func Initialize(target js.Value, cfg panzoom.Config) []*Binding {
	containers := resolve(target)
	if len(containers) == 0 {
		panzoom.Logger().Info("dom: no containers found to initialize")
		return nil
	}

	doc := js.Global().Get("document")
	var out []*Binding
	for i, c := range containers {
		if truthy(c.Call("closest", "."+ClassWrapper)) {
			continue
		}
		if !truthy(c.Call("querySelector", "svg")) {
			panzoom.Logger().Warn("dom: no <svg> found in container", "index", i+1)
			continue
		}
		b, err := wrap(doc, c, cfg)
		if err != nil {
			panzoom.Logger().Error("dom: failed to initialize container", "index", i+1, "err", err)
			continue
		}
		panzoom.Logger().Info("dom: initialized container", "index", i+1)
		out = append(out, b)
	}
	return out
}

func wrap(doc, c js.Value, cfg panzoom.Config) (b *Binding, err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()
	wrapper := doc.Call("createElement", "div")
	wrapper.Set("className", ClassWrapper)
	c.Get("parentNode").Call("insertBefore", wrapper, c)
	wrapper.Call("appendChild", c)

	b = Attach(wrapper, cfg)
	wrapper.Call("setAttribute", AttrInitialized, "true")
	wrapper.Set("svgZoomInstance", b.JSValue())
	return b, nil
}

// resolve turns a selector, element or array into a list of elements.
func resolve(target js.Value) []js.Value {
	var out []js.Value
	switch {
	case target.Type() == js.TypeString:
		list := js.Global().Get("document").Call("querySelectorAll", target.String())
		for i := 0; i < list.Length(); i++ {
			out = append(out, list.Index(i))
		}
	case js.Global().Get("Array").Call("isArray", target).Bool():
		for i := 0; i < target.Length(); i++ {
			out = append(out, target.Index(i))
		}
	case truthy(target) && target.Type() == js.TypeObject:
		out = append(out, target)
	}
	return out
}

// JSValue returns a JavaScript object exposing the widget: zoomIn, zoomOut,
// reset, toggleFullscreen, destroy, getTransform and on(event, fn), which
// returns an unsubscribe function. The object is built once per binding;
// after destroy its methods do nothing.
func (b *Binding) JSValue() js.Value {
	if !b.handle.IsUndefined() {
		return b.handle
	}
	obj := js.Global().Get("Object").New()
	w := b.widget
	method := func(name string, fn func(args []js.Value) any) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) any {
			return fn(args)
		})
		b.methods = append(b.methods, f)
		b.methodNames = append(b.methodNames, name)
		obj.Set(name, f)
	}
	method("zoomIn", func([]js.Value) any { w.ZoomIn(); b.kick(); return nil })
	method("zoomOut", func([]js.Value) any { w.ZoomOut(); b.kick(); return nil })
	method("reset", func([]js.Value) any { w.Reset(); b.kick(); return nil })
	method("toggleFullscreen", func([]js.Value) any { w.ToggleFullscreen(); return nil })
	method("destroy", func([]js.Value) any { b.Destroy(); return nil })
	method("getTransform", func([]js.Value) any { return transformValue(w.Transform()) })
	method("on", func(args []js.Value) any {
		if len(args) < 2 || args[1].Type() != js.TypeFunction {
			return nil
		}
		event, ok := panzoom.ParseEventType(args[0].String())
		if !ok {
			return nil
		}
		cb := args[1]
		sub := w.On(event, func(t panzoom.Transform) { cb.Invoke(transformValue(t)) })
		b.nextOff++
		id := b.nextOff
		off := js.FuncOf(func(js.Value, []js.Value) any {
			sub.Remove()
			if f, ok := b.offs[id]; ok {
				delete(b.offs, id)
				f.Release()
			}
			return nil
		})
		if b.offs == nil {
			b.offs = make(map[int]js.Func)
		}
		b.offs[id] = off
		return off
	})
	b.handle = obj
	return obj
}

// releaseHandle frees the Go callbacks behind the JavaScript handle and
// leaves inert functions in their place.
func (b *Binding) releaseHandle() {
	noop := js.Global().Get("Function").Get("prototype")
	for i, f := range b.methods {
		if !b.handle.IsUndefined() {
			b.handle.Set(b.methodNames[i], noop)
		}
		f.Release()
	}
	b.methods, b.methodNames = nil, nil
	for id, f := range b.offs {
		delete(b.offs, id)
		f.Release()
	}
}

func transformValue(t panzoom.Transform) js.Value {
	return js.ValueOf(map[string]any{
		"scale":      t.Scale,
		"translateX": t.TranslateX,
		"translateY": t.TranslateY,
	})
}
