// Package ebitenhost runs a panzoom widget in an Ebitengine window. It reads
// mouse, wheel, touch and keyboard input, draws an SVG document with the
// widget's transform, and draws the on-screen controls and zoom badge.
package ebitenhost

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/panzoom"
	"github.com/phanxgames/panzoom/svgdoc"
)

// Options configures a Host.
type Options struct {
	Width, Height int
	// Background fills the window behind the graphic. Nil uses a light grey.
	Background color.Color
	// ScreenshotDir receives PNGs queued with Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string
	// ExitWhenDone ends the game loop once an attached TestRunner finishes.
	ExitWhenDone bool
}

var defaultBackground = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}

// Host is an ebiten.Game hosting one widget. It implements
// panzoom.Container and panzoom.Fullscreener.
//
// Reload and SetConfig may be called from any goroutine; everything else
// runs on the game loop.
type Host struct {
	cfg     *panzoom.Config
	graphic *Graphic
	widget  *panzoom.Widget

	width, height int
	background    color.Color

	ScreenshotDir   string
	screenshotQueue []string
	injectQueue     []syntheticEvent
	runner          *TestRunner
	exitWhenDone    bool

	reloads chan *svgdoc.Document
	configs chan panzoom.Config

	cursor       panzoom.Vec2
	touchIDs     []ebiten.TouchID
	keyBuf       []ebiten.Key
	touchCount   int
	lastClick    time.Time
	lastClickPos panzoom.Vec2
	lastUpdate   time.Time
	now          func() time.Time

	overlay *overlay
}

// New creates a host showing doc. cfg is kept and read live; nil uses
// panzoom.DefaultConfig.
func New(doc *svgdoc.Document, cfg *panzoom.Config, opts Options) *Host {
	if cfg == nil {
		c := panzoom.DefaultConfig()
		cfg = &c
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Background == nil {
		opts.Background = defaultBackground
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	h := &Host{
		cfg:           cfg,
		width:         opts.Width,
		height:        opts.Height,
		background:    opts.Background,
		ScreenshotDir: opts.ScreenshotDir,
		exitWhenDone:  opts.ExitWhenDone,
		reloads:       make(chan *svgdoc.Document, 1),
		configs:       make(chan panzoom.Config, 1),
		now:           time.Now,
	}
	h.mount(doc)
	return h
}

// mount replaces the shown document, destroying the previous widget.
func (h *Host) mount(doc *svgdoc.Document) {
	if h.widget != nil {
		h.widget.Destroy()
	}
	h.graphic = nil
	if doc != nil {
		h.graphic = NewGraphic(doc)
	}
	h.widget = panzoom.New(h, h.cfg)
	h.widget.SetClock(func() time.Time { return h.now() })
	h.widget.Init()
}

// Widget returns the current widget. It changes after a reload.
func (h *Host) Widget() *panzoom.Widget { return h.widget }

// Size implements panzoom.Container.
func (h *Host) Size() panzoom.Size {
	return panzoom.Size{Width: float64(h.width), Height: float64(h.height)}
}

// Graphic implements panzoom.Container.
func (h *Host) Graphic() panzoom.Graphic {
	if h.graphic == nil {
		return nil
	}
	return h.graphic
}

// Reload swaps in a new document at the next frame. A pending reload that
// has not been picked up yet is replaced.
func (h *Host) Reload(doc *svgdoc.Document) {
	select {
	case <-h.reloads:
	default:
	}
	h.reloads <- doc
}

// SetConfig copies cfg into the live configuration at the next frame.
// Feature slots keep the set chosen when the document was mounted.
func (h *Host) SetConfig(cfg panzoom.Config) {
	select {
	case <-h.configs:
	default:
	}
	h.configs <- cfg
}

func (h *Host) drainPending() {
	select {
	case cfg := <-h.configs:
		*h.cfg = cfg
		panzoom.Logger().Info("ebitenhost: config reloaded")
	default:
	}
	select {
	case doc := <-h.reloads:
		h.mount(doc)
		panzoom.Logger().Info("ebitenhost: document reloaded")
	default:
	}
}

// FullscreenEnabled implements panzoom.Fullscreener.
func (h *Host) FullscreenEnabled() bool { return true }

// IsFullscreen implements panzoom.Fullscreener.
func (h *Host) IsFullscreen() bool { return ebiten.IsFullscreen() }

// RequestFullscreen implements panzoom.Fullscreener.
func (h *Host) RequestFullscreen(done func(error)) {
	ebiten.SetFullscreen(true)
	done(nil)
}

// ExitFullscreen implements panzoom.Fullscreener.
func (h *Host) ExitFullscreen(done func(error)) {
	ebiten.SetFullscreen(false)
	done(nil)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	h.drainPending()
	if h.runner != nil {
		h.runner.step(h)
		if h.exitWhenDone && h.runner.Done() && len(h.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	in, ok := h.nextInjected()
	if !ok {
		in = h.readInput()
	}
	h.apply(in)
	h.widget.Update(h.frameDelta())
	return nil
}

// maxFrameDelta caps one step so a stalled window does not skip a whole
// transition in a single frame.
const maxFrameDelta = 0.25

// frameDelta returns the seconds since the previous update, measured on the
// host clock. The first frame assumes one nominal tick.
func (h *Host) frameDelta() float32 {
	now := h.now()
	last := h.lastUpdate
	h.lastUpdate = now
	if last.IsZero() {
		return 1.0 / 60
	}
	dt := now.Sub(last).Seconds()
	switch {
	case dt < 0:
		return 0
	case dt > maxFrameDelta:
		return maxFrameDelta
	}
	return float32(dt)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.background)
	if h.graphic != nil {
		h.graphic.Draw(screen)
	}
	if h.overlay == nil {
		h.overlay = newOverlay()
	}
	h.overlay.drawControls(screen, h.controlLayout())
	if ind := h.widget.Indicator(); ind != nil && ind.Visible() {
		h.overlay.drawBadge(screen, ind.Text(), h.width, h.height)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The container follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.widget.ConstrainPan()
		h.widget.ApplyTransform()
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs h until the window closes.
func Run(h *Host, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
