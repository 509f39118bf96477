//go:build js && wasm

// Command panzoom-wasm exposes initializeSvgZoom to the page.
//
//	initializeSvgZoom(".zoomable", { maxScale: 8, transitionDuration: 150 })
//
// The second argument is optional. Set window.svgZoomDebug = true before
// loading to log at debug level.
package main

import (
	"log/slog"
	"syscall/js"

	"github.com/phanxgames/panzoom"
	"github.com/phanxgames/panzoom/dom"
)

func main() {
	level := slog.LevelInfo
	if js.Global().Get("svgZoomDebug").Truthy() {
		level = slog.LevelDebug
	}
	dom.InstallConsoleLogger(level)

	js.Global().Set("initializeSvgZoom", js.FuncOf(initialize))
	js.Global().Set("svgZoomWasmReady", js.ValueOf(true))
	if ready := js.Global().Get("onSvgZoomReady"); ready.Type() == js.TypeFunction {
		ready.Invoke()
	}

	select {}
}

func initialize(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		panzoom.Logger().Warn("initializeSvgZoom: missing target")
		return nil
	}
	var raw string
	if len(args) > 1 && args[1].Type() == js.TypeObject {
		raw = js.Global().Get("JSON").Call("stringify", args[1]).String()
	}
	cfg, err := dom.ParseOptions([]byte(raw))
	if err != nil {
		panzoom.Logger().Error("initializeSvgZoom: invalid options", "err", err)
		return nil
	}
	bindings := dom.Initialize(args[0], cfg)
	out := make([]any, len(bindings))
	for i, b := range bindings {
		out[i] = b.JSValue()
	}
	return js.ValueOf(out)
}
