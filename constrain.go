package panzoom

import "math"

// Pan constraint policy constants.
const (
	// smallContentFactor: content narrower than this fraction of the
	// container on an axis may be moved up to a full container length.
	smallContentFactor = 0.9
	// visibleFraction of larger content must stay inside the view.
	visibleFraction = 0.1
)

// ConstrainPan clamps the translation of t so the graphic cannot be lost.
// Each axis is resolved independently:
//
//   - small content (scaled size < 90% of the container): the translation may
//     reach the full container size in either direction;
//   - otherwise at least 10% of the scaled content stays visible, so the
//     translation is limited to scaled*0.9 in either direction.
//
// Non-finite translation components are treated as 0. The scale is returned
// unchanged. ConstrainPan is idempotent.
func ConstrainPan(t Transform, bounds, container Size) Transform {
	maxX := maxTranslate(bounds.Width*t.Scale, container.Width)
	maxY := maxTranslate(bounds.Height*t.Scale, container.Height)
	t.TranslateX = clampSym(t.TranslateX, maxX)
	t.TranslateY = clampSym(t.TranslateY, maxY)
	return t
}

// maxTranslate returns the allowed translation magnitude on one axis.
func maxTranslate(scaled, container float64) float64 {
	var m float64
	if scaled < container*smallContentFactor {
		m = container
	} else {
		m = scaled - scaled*visibleFraction
	}
	if !finite(m) || m < 0 {
		return 0
	}
	return m
}

func clampSym(v, limit float64) float64 {
	if !finite(v) {
		return 0
	}
	return math.Max(-limit, math.Min(limit, v))
}
