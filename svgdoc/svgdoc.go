// Package svgdoc loads SVG documents for the desktop host. It exposes the
// root element's declared geometry, measures the tight bounding box of the
// painted content and rasterizes the document with oksvg.
package svgdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/panzoom"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	// ErrNoRoot is returned when the input has no <svg> root element.
	ErrNoRoot = errors.New("svgdoc: no <svg> root element")
	// ErrEmpty is returned by BBox when the document paints no pixels.
	ErrEmpty = errors.New("svgdoc: document paints nothing")
)

// maxMeasure caps the raster used to measure the bounding box.
const maxMeasure = 2048

// Document is a parsed SVG file. It implements panzoom.BoundsSource.
type Document struct {
	icon  *oksvg.SvgIcon
	attrs map[string]string

	viewBox    panzoom.Rect
	hasViewBox bool

	bbox     panzoom.Rect
	bboxErr  error
	measured bool
}

// Load reads and parses the SVG file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("svgdoc: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses an SVG document. Unsupported elements are skipped.
func Parse(data []byte) (*Document, error) {
	attrs, err := rootAttrs(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("svgdoc: parse: %w", err)
	}
	d := &Document{icon: icon, attrs: attrs}
	if raw, ok := attrs["viewBox"]; ok {
		d.viewBox, d.hasViewBox = ParseViewBox(raw)
	}
	return d, nil
}

// rootAttrs returns the attributes of the first <svg> element.
func rootAttrs(r io.Reader) (map[string]string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, fmt.Errorf("svgdoc: parse: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return nil, ErrNoRoot
		}
		attrs := make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return attrs, nil
	}
}

// ParseViewBox parses "minX minY width height" (whitespace and/or comma
// separated). It reports false for malformed input or a non-positive size.
func ParseViewBox(s string) (panzoom.Rect, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return panzoom.Rect{}, false
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return panzoom.Rect{}, false
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return panzoom.Rect{}, false
	}
	return panzoom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
}

// ViewBox returns the declared viewBox.
func (d *Document) ViewBox() (panzoom.Rect, bool) {
	return d.viewBox, d.hasViewBox
}

// Attr returns a raw attribute of the root element.
func (d *Document) Attr(name string) (string, bool) {
	v, ok := d.attrs[name]
	return v, ok
}

// Canvas returns the user-space rectangle the document draws into: the
// viewBox when declared, otherwise width/height from the origin, falling back
// to panzoom's default content size per axis.
func (d *Document) Canvas() panzoom.Rect {
	if d.hasViewBox {
		return d.viewBox
	}
	r := panzoom.Rect{Width: panzoom.DefaultContentWidth, Height: panzoom.DefaultContentHeight}
	if v, ok := d.length("width"); ok {
		r.Width = v
	}
	if v, ok := d.length("height"); ok {
		r.Height = v
	}
	return r
}

func (d *Document) length(name string) (float64, bool) {
	raw, ok := d.attrs[name]
	if !ok {
		return 0, false
	}
	v, ok := panzoom.ParseLength(raw)
	if !ok || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Rasterize renders the whole canvas into a w x h image.
func (d *Document) Rasterize(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	c := d.Canvas()
	d.icon.ViewBox.X, d.icon.ViewBox.Y = c.X, c.Y
	d.icon.ViewBox.W, d.icon.ViewBox.H = c.Width, c.Height
	d.icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	d.icon.Draw(raster, 1.0)
	return img
}

// BBox returns the tight bounding box of the painted content in user units,
// measured from a raster of the canvas. The result is computed once.
func (d *Document) BBox() (panzoom.Rect, error) {
	if !d.measured {
		d.bbox, d.bboxErr = d.measure()
		d.measured = true
	}
	return d.bbox, d.bboxErr
}

func (d *Document) measure() (panzoom.Rect, error) {
	c := d.Canvas()
	k := 1.0
	if m := math.Max(c.Width, c.Height); m > maxMeasure {
		k = maxMeasure / m
	}
	w := int(math.Ceil(c.Width * k))
	h := int(math.Ceil(c.Height * k))
	img := d.Rasterize(w, h)

	px, ok := alphaBounds(img)
	if !ok {
		return panzoom.Rect{}, ErrEmpty
	}
	sx := c.Width / float64(w)
	sy := c.Height / float64(h)
	r := panzoom.Rect{
		X:      c.X + float64(px.Min.X)*sx,
		Y:      c.Y + float64(px.Min.Y)*sy,
		Width:  float64(px.Dx()) * sx,
		Height: float64(px.Dy()) * sy,
	}
	panzoom.Logger().Debug("svgdoc: measured bbox", "bbox", r, "raster", px)
	return r, nil
}

// alphaBounds returns the smallest rectangle holding every pixel with
// non-zero alpha.
func alphaBounds(img *image.RGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
