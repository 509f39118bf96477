package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/panzoom"
	"github.com/phanxgames/panzoom/svgdoc"
)

const (
	maxRasterFactor = 4
	maxRasterSide   = 4096
)

// Graphic is an SVG document drawn with the widget's transform. It
// implements panzoom.Graphic.
//
// The document is rasterized lazily at an integer multiple of its canvas
// size; the multiple follows the zoom level so magnified content stays sharp.
type Graphic struct {
	doc    *svgdoc.Document
	t      panzoom.Transform
	img    *ebiten.Image
	factor float64
}

// NewGraphic wraps doc.
func NewGraphic(doc *svgdoc.Document) *Graphic {
	return &Graphic{doc: doc, t: panzoom.Identity}
}

func (g *Graphic) BBox() (panzoom.Rect, error) { return g.doc.BBox() }
func (g *Graphic) ViewBox() (panzoom.Rect, bool) { return g.doc.ViewBox() }
func (g *Graphic) Attr(name string) (string, bool) { return g.doc.Attr(name) }
func (g *Graphic) SetTransform(t panzoom.Transform) { g.t = t }
func (g *Graphic) Transform() panzoom.Transform { return g.t }

// rasterFactor picks the raster multiple for a display scale.
func rasterFactor(scale float64) float64 {
	if math.IsNaN(scale) || scale <= 1 {
		return 1
	}
	return math.Min(math.Ceil(scale), maxRasterFactor)
}

// rasterSize returns the pixel size for canvas c at factor f, capped so
// neither side exceeds maxRasterSide.
func rasterSize(c panzoom.Rect, f float64) (int, int) {
	w, h := c.Width*f, c.Height*f
	if m := math.Max(w, h); m > maxRasterSide {
		w, h = w*maxRasterSide/m, h*maxRasterSide/m
	}
	return max(1, int(math.Ceil(w))), max(1, int(math.Ceil(h)))
}

// drawGeoM maps raster pixels (w x h) of a canvas to the screen: first back
// to canvas units, then through the widget transform.
func drawGeoM(t panzoom.Transform, canvas panzoom.Rect, w, h int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(canvas.Width/float64(w), canvas.Height/float64(h))

	m := t.Matrix()
	var view ebiten.GeoM
	view.SetElement(0, 0, m[0])
	view.SetElement(1, 0, m[1])
	view.SetElement(0, 1, m[2])
	view.SetElement(1, 1, m[3])
	view.SetElement(0, 2, m[4])
	view.SetElement(1, 2, m[5])
	g.Concat(view)
	return g
}

// Draw renders the graphic onto dst.
func (g *Graphic) Draw(dst *ebiten.Image) {
	c := g.doc.Canvas()
	f := rasterFactor(g.t.Scale)
	if g.img == nil || f != g.factor {
		if g.img != nil {
			g.img.Deallocate()
		}
		w, h := rasterSize(c, f)
		g.img = ebiten.NewImageFromImage(g.doc.Rasterize(w, h))
		g.factor = f
		panzoom.Logger().Debug("ebitenhost: rasterized", "w", w, "h", h, "factor", f)
	}

	b := g.img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = drawGeoM(g.t, c, b.Dx(), b.Dy())
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(g.img, op)
}
