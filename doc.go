// Package panzoom adds interactive zoom and pan to a vector graphic inside a
// container.
//
// The package owns the transform state (a uniform scale plus a translation),
// maps input onto it, keeps it within sane bounds relative to the
// container's visible area and the graphic's intrinsic size, and publishes
// notifications when it changes. It draws nothing itself: a host translates
// raw input into calls on a [Widget] and applies the resulting [Transform] to
// its graphic. Two hosts ship with the module: package ebitenhost for desktop
// windows and package dom for browsers (GOOS=js GOARCH=wasm).
//
// # Quick start
//
//	w := panzoom.New(container, nil) // nil uses DefaultConfig
//	w.Init()
//	defer w.Destroy()
//
//	// each input event:
//	if w.HandleWheel(x, y, deltaY) {
//		// suppress default scrolling
//	}
//
//	// each frame:
//	w.Update(dt)
//
// The container implements [Container]; its graphic implements [Graphic].
// Containers may additionally implement [ContainerSetup] and [Fullscreener].
//
// # Transform
//
// A content point (cx, cy) is displayed at
// (cx*Scale + TranslateX, cy*Scale + TranslateY). [Widget.ZoomAt] keeps the
// content point under the anchor fixed while the scale changes, clamped to
// [Config.MinScale, Config.MaxScale]. Every pan and zoom goes through
// [ConstrainPan], which keeps at least part of the content reachable.
//
// Content size is resolved by [ResolveBounds]: the rendered bounding box,
// then the declared viewBox, then width/height attributes, then 400x300.
//
// # Features
//
// Each input modality is a feature in [Features]: wheel zoom, mouse drag,
// touch drag and pinch, keyboard, double-click reset and context-menu
// suppression, plus the [Controls] button model, [ZoomIndicator] and
// [Fullscreen]. Slots for disabled or unavailable capabilities are nil.
//
// # Notifications
//
// [Widget.On] subscribes to [EventZoom], [EventPan], [EventReset] or
// [EventArrow]. Callbacks receive the resulting [Transform]. A panicking
// callback is logged and does not stop the others. [Widget.Observe]
// registers the same way but survives [Widget.Off]; the zoom badge uses it.
//
// # Transitions
//
// [Widget.Reset] animates to the identity transform over
// [Config.TransitionDuration]. The animation is advanced by [Widget.Update];
// a newer animated apply replaces a running one and Destroy drops it.
//
// # Logging
//
// The package logs through [Logger], which discards everything until
// [SetLogger] installs a [log/slog.Logger].
package panzoom
