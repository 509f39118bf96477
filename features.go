package panzoom

// feature is implemented by every slot in Features.
type feature interface {
	init()
	teardown()
}

// Features holds one slot per capability. Slots are filled at construction
// from the configuration and the container's capabilities; a nil slot means
// the capability is off. Each feature keeps a back-reference to its widget.
type Features struct {
	Zoom          *WheelZoom
	Pan           *Pan
	Touch         *Touch
	Keyboard      *Keyboard
	DblclickReset *DblclickReset
	NoContextMenu *NoContextMenu
	Fullscreen    *Fullscreen
	Controls      *Controls
	Indicator     *ZoomIndicator
}

func newFeatures(w *Widget) Features {
	f := Features{
		Zoom:          &WheelZoom{w: w},
		Pan:           &Pan{w: w},
		DblclickReset: &DblclickReset{w: w},
		NoContextMenu: &NoContextMenu{w: w},
	}
	if w.cfg.EnableTouch {
		f.Touch = &Touch{w: w}
	}
	if w.cfg.EnableKeyboard {
		f.Keyboard = &Keyboard{w: w}
	}
	if fs, ok := w.container.(Fullscreener); ok && w.cfg.EnableFullscreen && fs.FullscreenEnabled() {
		f.Fullscreen = &Fullscreen{w: w, host: fs}
	}
	if w.cfg.ShowControls {
		f.Controls = &Controls{w: w}
	}
	if w.cfg.ShowZoomLevelIndicator {
		f.Indicator = &ZoomIndicator{w: w}
	}
	return f
}

// each calls fn for every non-nil slot in a fixed order. Fullscreen comes
// before Controls so the controls can see whether it exists.
func (f *Features) each(fn func(feature)) {
	if f.Zoom != nil {
		fn(f.Zoom)
	}
	if f.Pan != nil {
		fn(f.Pan)
	}
	if f.Touch != nil {
		fn(f.Touch)
	}
	if f.Keyboard != nil {
		fn(f.Keyboard)
	}
	if f.DblclickReset != nil {
		fn(f.DblclickReset)
	}
	if f.NoContextMenu != nil {
		fn(f.NoContextMenu)
	}
	if f.Fullscreen != nil {
		fn(f.Fullscreen)
	}
	if f.Controls != nil {
		fn(f.Controls)
	}
	if f.Indicator != nil {
		fn(f.Indicator)
	}
}
