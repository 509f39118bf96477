package svgdoc

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/panzoom"
)

const square = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">
  <rect x="50" y="20" width="40" height="30" fill="#336699"/>
</svg>`

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseRootAttrs(t *testing.T) {
	d, err := Parse([]byte(square))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := d.Attr("width"); !ok || v != "200" {
		t.Errorf("width = %q, %v", v, ok)
	}
	vb, ok := d.ViewBox()
	if !ok || vb != (panzoom.Rect{Width: 200, Height: 100}) {
		t.Errorf("ViewBox = %+v, %v", vb, ok)
	}
}

func TestParseNoRoot(t *testing.T) {
	for _, in := range []string{"", "<html></html>", "not xml"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrNoRoot) {
			t.Errorf("Parse(%q) = %v, want ErrNoRoot", in, err)
		}
	}
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		in   string
		want panzoom.Rect
		ok   bool
	}{
		{"0 0 100 50", panzoom.Rect{Width: 100, Height: 50}, true},
		{"-10,5,20,30", panzoom.Rect{X: -10, Y: 5, Width: 20, Height: 30}, true},
		{" 1, 2  3 ,4 ", panzoom.Rect{X: 1, Y: 2, Width: 3, Height: 4}, true},
		{"0 0 0 10", panzoom.Rect{}, false},
		{"0 0 10", panzoom.Rect{}, false},
		{"0 0 a b", panzoom.Rect{}, false},
		{"0 0 NaN 1", panzoom.Rect{}, false},
		{"", panzoom.Rect{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseViewBox(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseViewBox(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanvasFallbacks(t *testing.T) {
	d, err := Parse([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="120px" height="oops"/>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := d.Canvas()
	if c.Width != 120 || c.Height != panzoom.DefaultContentHeight {
		t.Errorf("Canvas = %+v", c)
	}
}

func TestBBoxFromPixels(t *testing.T) {
	d, err := Parse([]byte(square))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, err := d.BBox()
	if err != nil {
		t.Fatalf("BBox: %v", err)
	}
	// Anti-aliasing may widen the edges by a pixel.
	if !approxEqual(r.X, 50, 1.5) || !approxEqual(r.Y, 20, 1.5) ||
		!approxEqual(r.Width, 40, 2.5) || !approxEqual(r.Height, 30, 2.5) {
		t.Errorf("BBox = %+v, want about {50 20 40 30}", r)
	}
	if got := panzoom.ResolveBounds(d); !approxEqual(got.Width, r.Width, epsilon) {
		t.Errorf("ResolveBounds = %+v, want bbox size", got)
	}
}

const epsilon = 1e-9

func TestBBoxEmpty(t *testing.T) {
	d, err := Parse([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 32"></svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := d.BBox(); !errors.Is(err, ErrEmpty) {
		t.Errorf("BBox = %v, want ErrEmpty", err)
	}
	if got := panzoom.ResolveBounds(d); got != (panzoom.Size{Width: 64, Height: 32}) {
		t.Errorf("ResolveBounds = %+v, want viewBox size", got)
	}
}

func TestRasterize(t *testing.T) {
	d, err := Parse([]byte(square))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	img := d.Rasterize(400, 200)
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Centre of the rect at 2x.
	if a := img.RGBAAt(140, 70).A; a == 0 {
		t.Error("rect not painted")
	}
	if a := img.RGBAAt(10, 10).A; a != 0 {
		t.Error("background painted")
	}
	if empty := d.Rasterize(0, 10); empty.Bounds().Dx() != 0 {
		t.Error("zero-size raster not empty")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.svg")
	if err := os.WriteFile(path, []byte(square), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.svg")); err == nil {
		t.Error("missing file accepted")
	}
}
