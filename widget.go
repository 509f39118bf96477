package panzoom

import "time"

// Container is the element the widget lives in. Hosts (ebitenhost, dom)
// implement it; tests use fakes.
type Container interface {
	// Size returns the container's visible size. Pointer coordinates passed
	// to the widget are relative to the container's top-left corner.
	Size() Size
	// Graphic returns the graphic to transform, or nil when the container
	// holds none.
	Graphic() Graphic
}

// Graphic is the transformed content.
type Graphic interface {
	BoundsSource
	// SetTransform displays the graphic with t applied.
	SetTransform(t Transform)
}

// ContainerSetup is implemented by containers that need preparing when the
// widget initializes (CSS classes, focusability) and restoring on Destroy.
type ContainerSetup interface {
	Setup()
	Teardown()
}

// Widget owns the transform state of one graphic and the feature slots that
// map input onto it.
//
// A Widget is not safe for concurrent use. Hosts call it from their single
// event or update goroutine.
type Widget struct {
	container Container
	graphic   Graphic
	cfg       *Config

	state     Transform
	displayed Transform
	anim      *transition

	destroyed bool
	events    registry
	features  Features

	now func() time.Time
}

// New creates a widget for the graphic inside container. cfg is kept by
// pointer and read live; nil uses DefaultConfig.
//
// When container holds no graphic, New logs a warning and returns a widget
// that is already destroyed: every operation on it is a silent no-op.
//
// Call Init to set up the container, initialize features and render the
// initial transform.
func New(container Container, cfg *Config) *Widget {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	w := &Widget{
		container: container,
		cfg:       cfg,
		state:     Identity,
		displayed: Identity,
		now:       time.Now,
	}
	if container != nil {
		w.graphic = container.Graphic()
	}
	if w.graphic == nil {
		w.destroyed = true
		Logger().Warn("panzoom: no graphic found in container")
		return w
	}
	w.features = newFeatures(w)
	return w
}

// Init prepares the container, initializes every feature and renders the
// current transform. No-op on a destroyed widget.
func (w *Widget) Init() {
	if w.destroyed {
		return
	}
	if s, ok := w.container.(ContainerSetup); ok {
		s.Setup()
	}
	w.features.each(func(f feature) { f.init() })
	w.ApplyTransform()
}

// SetClock replaces the time source used for tap timing. Hosts that drive
// time themselves (scripted runs, tests) pass their own clock; nil restores
// time.Now.
func (w *Widget) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	w.now = now
}

// Config returns the live configuration.
func (w *Widget) Config() *Config {
	return w.cfg
}

// Features returns the widget's feature slots. Slots for capabilities that
// are disabled or unavailable are nil.
func (w *Widget) Features() *Features {
	return &w.features
}

// Destroyed reports whether Destroy was called (or construction failed).
func (w *Widget) Destroyed() bool {
	return w.destroyed
}

// Transform returns the current transform state. While a transition is
// running this is its target, not the animated value; see Displayed.
func (w *Widget) Transform() Transform {
	return w.state
}

// Displayed returns the transform last written to the graphic.
func (w *Widget) Displayed() Transform {
	return w.displayed
}

// Animating reports whether an animated apply is still in progress.
func (w *Widget) Animating() bool {
	return w.anim != nil
}

// ContentBounds resolves the graphic's intrinsic size. It is recomputed on
// every call.
func (w *Widget) ContentBounds() Size {
	return ResolveBounds(w.graphic)
}

// containerSize returns the container size, or zero when there is none.
func (w *Widget) containerSize() Size {
	if w.container == nil {
		return Size{}
	}
	return w.container.Size()
}

// SetTranslate sets the translation, constrains it and renders immediately.
// It emits no notification; input features emit their own.
func (w *Widget) SetTranslate(x, y float64) {
	if w.destroyed {
		return
	}
	w.state.TranslateX = x
	w.state.TranslateY = y
	w.ConstrainPan()
	w.ApplyTransform()
}

// PanBy moves the graphic by (dx, dy), constrains and renders immediately.
func (w *Widget) PanBy(dx, dy float64) {
	if w.destroyed {
		return
	}
	w.SetTranslate(w.state.TranslateX+dx, w.state.TranslateY+dy)
}

// ConstrainPan clamps the current translation against the content bounds
// and container size. See ConstrainPan (the function) for the policy.
func (w *Widget) ConstrainPan() {
	if w.destroyed {
		return
	}
	w.state = ConstrainPan(w.state, w.ContentBounds(), w.containerSize())
}

// Reset returns to scale 1 with no translation, animating over
// TransitionDuration, and emits EventReset.
func (w *Widget) Reset() {
	if w.destroyed {
		return
	}
	w.state = Identity
	w.ApplyTransformWithTransition()
	w.emit(EventReset)
}

// ApplyTransform writes the current state to the graphic immediately,
// cancelling any running transition.
func (w *Widget) ApplyTransform() {
	if w.destroyed {
		return
	}
	w.anim = nil
	w.render(w.state)
}

// ApplyTransformWithTransition animates the graphic from its displayed
// transform to the current state over TransitionDuration. Afterwards the
// widget is back in immediate mode. A second call before the first finishes
// replaces it, starting from wherever the first had reached.
func (w *Widget) ApplyTransformWithTransition() {
	if w.destroyed {
		return
	}
	d := w.cfg.TransitionDuration
	if d <= 0 || !w.displayed.isFinite() || !w.state.isFinite() {
		w.ApplyTransform()
		return
	}
	w.anim = newTransition(w.displayed, w.state, d)
	Logger().Debug("panzoom: transition started", "duration", d)
}

// Update advances time-based behavior by dt seconds: the animated apply and
// the zoom indicator's hide timer. Hosts call it once per frame.
func (w *Widget) Update(dt float32) {
	if w.destroyed {
		return
	}
	if w.anim != nil {
		t, done := w.anim.update(dt)
		if done {
			w.anim = nil
		}
		w.render(t)
	}
	if w.features.Indicator != nil {
		w.features.Indicator.update(dt)
	}
}

// FinishTransition completes a running transition immediately.
func (w *Widget) FinishTransition() {
	if w.destroyed || w.anim == nil {
		return
	}
	target := w.anim.target
	w.anim = nil
	w.render(target)
}

func (w *Widget) render(t Transform) {
	w.displayed = t
	w.graphic.SetTransform(t)
}

// Destroy tears down every feature, drops all subscribers and any running
// transition, and restores the container. The widget is inert afterwards.
// Calling Destroy more than once is safe.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.anim = nil
	w.features.each(func(f feature) { f.teardown() })
	w.features = Features{}
	w.events.clearAll()
	if s, ok := w.container.(ContainerSetup); ok {
		s.Teardown()
	}
}
