package panzoom

import (
	"errors"
	"strconv"
	"strings"
)

// Fallback content size used when no other source yields a usable axis.
const (
	DefaultContentWidth  = 400.0
	DefaultContentHeight = 300.0
)

// ErrBBoxUnsupported is returned by BoundsSource.BBox implementations that
// cannot measure rendered geometry (headless runtimes, unrendered content).
var ErrBBoxUnsupported = errors.New("panzoom: bounding box unsupported")

// BoundsSource is the read side of a graphic: everything ResolveBounds
// queries to find the graphic's intrinsic size.
type BoundsSource interface {
	// BBox returns the tight bounding box of the rendered content.
	// Implementations may return an error, or panic (a foreign runtime
	// exception); both are treated as "unsupported".
	BBox() (Rect, error)
	// ViewBox returns the declared coordinate-system rectangle, if any.
	ViewBox() (Rect, bool)
	// Attr returns a raw attribute value ("width", "height").
	Attr(name string) (string, bool)
}

// ResolveBounds returns the intrinsic content size of src using the fallback
// chain bbox -> viewBox -> width/height attributes -> 400x300. Both returned
// dimensions are finite and > 0. A nil src resolves to the defaults.
func ResolveBounds(src BoundsSource) Size {
	if src == nil {
		return Size{DefaultContentWidth, DefaultContentHeight}
	}
	if r, ok := safeBBox(src); ok && positive(r.Width) && positive(r.Height) {
		return Size{r.Width, r.Height}
	}
	if vb, ok := src.ViewBox(); ok && positive(vb.Width) && positive(vb.Height) {
		return Size{vb.Width, vb.Height}
	}

	size := Size{DefaultContentWidth, DefaultContentHeight}
	if v, ok := attrLength(src, "width"); ok {
		size.Width = v
	}
	if v, ok := attrLength(src, "height"); ok {
		size.Height = v
	}
	return size
}

// safeBBox calls src.BBox, converting a panic into "unsupported".
func safeBBox(src BoundsSource) (r Rect, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Debug("bbox query panicked", "panic", rec)
			r, ok = Rect{}, false
		}
	}()
	r, err := src.BBox()
	if err != nil {
		return Rect{}, false
	}
	return r, true
}

func attrLength(src BoundsSource, name string) (float64, bool) {
	raw, ok := src.Attr(name)
	if !ok {
		return 0, false
	}
	v, ok := ParseLength(raw)
	if !ok || !positive(v) {
		return 0, false
	}
	return v, true
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// ParseLength parses the leading decimal number of an SVG length such as
// "200", "200px", " 12.5e1mm" or ".5". Units are ignored. It reports false
// when s does not start with a number.
func ParseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := numberPrefix(s)
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numberPrefix returns the length of the longest prefix of s that forms a
// decimal floating point literal: sign, digits, optional fraction, optional
// exponent.
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
