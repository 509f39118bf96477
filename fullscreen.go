package panzoom

// Fullscreener is implemented by containers that can go fullscreen. Requests
// may complete asynchronously; done is called with the outcome.
type Fullscreener interface {
	FullscreenEnabled() bool
	IsFullscreen() bool
	RequestFullscreen(done func(error))
	ExitFullscreen(done func(error))
}

// Fullscreen toggles the container in and out of fullscreen.
type Fullscreen struct {
	w      *Widget
	host   Fullscreener
	active bool
}

func (f *Fullscreen) init()     { f.active = true }
func (f *Fullscreen) teardown() { f.active = false }

// Toggle enters fullscreen when the container is not fullscreen and exits
// otherwise. Failures are logged; there is no retry.
func (f *Fullscreen) Toggle() {
	if f.w.destroyed || !f.active {
		return
	}
	if f.host.IsFullscreen() {
		f.host.ExitFullscreen(func(err error) {
			if err != nil {
				Logger().Warn("panzoom: exit fullscreen failed", "err", err)
			}
		})
		return
	}
	f.host.RequestFullscreen(func(err error) {
		if err != nil {
			Logger().Warn("panzoom: fullscreen request failed", "err", err)
		}
	})
}

// ToggleFullscreen toggles fullscreen when the container supports it.
func (w *Widget) ToggleFullscreen() {
	if w.destroyed || w.features.Fullscreen == nil {
		return
	}
	w.features.Fullscreen.Toggle()
}
