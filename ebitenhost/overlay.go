package ebitenhost

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/panzoom"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	buttonSize   = 32.0
	buttonGap    = 4.0
	cornerMargin = 10.0
	badgeSize    = 14.0
	badgePadding = 6.0
)

var (
	buttonFill   = color.RGBA{0xff, 0xff, 0xff, 0xe6}
	buttonBorder = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	iconColor    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	badgeFill    = color.RGBA{0x00, 0x00, 0x00, 0xb3}
)

// placedButton is a control button with its screen rectangle.
type placedButton struct {
	panzoom.Button
	Rect panzoom.Rect
}

// layoutControls stacks buttons vertically in the corner named by pos of a
// width x height container.
func layoutControls(buttons []panzoom.Button, pos panzoom.ControlsPosition, width, height float64) []placedButton {
	n := float64(len(buttons))
	stack := n*buttonSize + (n-1)*buttonGap

	x := width - cornerMargin - buttonSize
	y := cornerMargin
	switch pos {
	case panzoom.ControlsTopLeft:
		x = cornerMargin
	case panzoom.ControlsBottomLeft:
		x = cornerMargin
		y = height - cornerMargin - stack
	case panzoom.ControlsBottomRight:
		y = height - cornerMargin - stack
	}

	out := make([]placedButton, len(buttons))
	for i, b := range buttons {
		out[i] = placedButton{
			Button: b,
			Rect:   panzoom.Rect{X: x, Y: y + float64(i)*(buttonSize+buttonGap), Width: buttonSize, Height: buttonSize},
		}
	}
	return out
}

// controlLayout returns the current control rectangles, or nil when the
// widget has no controls.
func (h *Host) controlLayout() []placedButton {
	c := h.widget.Controls()
	if c == nil {
		return nil
	}
	return layoutControls(c.Buttons(), c.Position(), float64(h.width), float64(h.height))
}

// controlAt returns the control under (x, y).
func (h *Host) controlAt(x, y float64) (panzoom.Button, bool) {
	for _, p := range h.controlLayout() {
		if p.Rect.Contains(x, y) {
			return p.Button, true
		}
	}
	return panzoom.Button{}, false
}

// overlay draws the controls and the zoom badge.
type overlay struct {
	face *text.GoTextFace
}

func newOverlay() *overlay {
	o := &overlay{}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panzoom.Logger().Warn("ebitenhost: font unavailable, badge disabled", "err", err)
		return o
	}
	o.face = &text.GoTextFace{Source: src, Size: badgeSize}
	return o
}

func (o *overlay) drawControls(dst *ebiten.Image, buttons []placedButton) {
	for _, b := range buttons {
		r := b.Rect
		x, y, s := float32(r.X), float32(r.Y), float32(r.Width)
		vector.DrawFilledRect(dst, x, y, s, s, buttonFill, true)
		vector.StrokeRect(dst, x, y, s, s, 1, buttonBorder, true)
		drawIcon(dst, b.Action, x+s/2, y+s/2, s*0.28)
	}
}

// drawIcon draws the glyph of a control centred on (cx, cy). The Go font has
// no house or fullscreen glyphs, so icons are stroked.
func drawIcon(dst *ebiten.Image, a panzoom.ControlAction, cx, cy, r float32) {
	const w = 2
	line := func(x0, y0, x1, y1 float32) {
		vector.StrokeLine(dst, cx+x0*r, cy+y0*r, cx+x1*r, cy+y1*r, w, iconColor, true)
	}
	switch a {
	case panzoom.ControlZoomIn:
		line(-1, 0, 1, 0)
		line(0, -1, 0, 1)
	case panzoom.ControlZoomOut:
		line(-1, 0, 1, 0)
	case panzoom.ControlReset:
		line(-1, 0, 0, -1)
		line(0, -1, 1, 0)
		line(-0.7, -0.3, -0.7, 1)
		line(0.7, -0.3, 0.7, 1)
		line(-0.7, 1, 0.7, 1)
	case panzoom.ControlFullscreen:
		for _, sx := range [2]float32{-1, 1} {
			for _, sy := range [2]float32{-1, 1} {
				line(sx, sy, sx*0.4, sy)
				line(sx, sy, sx, sy*0.4)
			}
		}
	}
}

// drawBadge draws label centred near the bottom of the container.
func (o *overlay) drawBadge(dst *ebiten.Image, label string, width, height int) {
	if o.face == nil {
		return
	}
	tw, th := text.Measure(label, o.face, 0)
	bw := float32(tw + 2*badgePadding)
	bh := float32(th + 2*badgePadding)
	bx := (float32(width) - bw) / 2
	by := float32(height) - float32(cornerMargin) - bh
	vector.DrawFilledRect(dst, bx, by, bw, bh, badgeFill, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(bx)+badgePadding, float64(by)+badgePadding)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, label, o.face, op)
}
