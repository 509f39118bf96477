package panzoom

import (
	"math"
	"testing"
)

func TestConstrainPanSmallContent(t *testing.T) {
	got := ConstrainPan(Transform{Scale: 1, TranslateX: 1000, TranslateY: 1000},
		Size{200, 200}, Size{400, 300})
	if got.TranslateX != 400 || got.TranslateY != 300 {
		t.Errorf("translate = (%v,%v), want (400,300)", got.TranslateX, got.TranslateY)
	}
	got = ConstrainPan(Transform{Scale: 1, TranslateX: -1000, TranslateY: -1000},
		Size{200, 200}, Size{400, 300})
	if got.TranslateX != -400 || got.TranslateY != -300 {
		t.Errorf("translate = (%v,%v), want (-400,-300)", got.TranslateX, got.TranslateY)
	}
}

func TestConstrainPanLargeContent(t *testing.T) {
	got := ConstrainPan(Transform{Scale: 3, TranslateX: 1000, TranslateY: 1000},
		Size{200, 200}, Size{400, 300})
	if !approxEqual(got.TranslateX, 540, epsilon) || !approxEqual(got.TranslateY, 540, epsilon) {
		t.Errorf("translate = (%v,%v), want (540,540)", got.TranslateX, got.TranslateY)
	}
	if got.Scale != 3 {
		t.Errorf("Scale = %v, want 3", got.Scale)
	}
}

func TestConstrainPanMixedAxes(t *testing.T) {
	// 300 wide is large against 300 (>= 270); 100 tall is small against 300.
	got := ConstrainPan(Transform{Scale: 1, TranslateX: 999, TranslateY: 999},
		Size{300, 100}, Size{300, 300})
	if !approxEqual(got.TranslateX, 270, epsilon) {
		t.Errorf("TranslateX = %v, want 270", got.TranslateX)
	}
	if got.TranslateY != 300 {
		t.Errorf("TranslateY = %v, want 300", got.TranslateY)
	}
}

func TestConstrainPanInsideLimitsUnchanged(t *testing.T) {
	in := Transform{Scale: 1, TranslateX: 12, TranslateY: -34}
	if got := ConstrainPan(in, Size{200, 200}, Size{400, 300}); got != in {
		t.Errorf("ConstrainPan = %+v, want %+v", got, in)
	}
}

func TestConstrainPanIdempotent(t *testing.T) {
	cases := []Transform{
		{Scale: 1, TranslateX: 1000, TranslateY: -1000},
		{Scale: 3, TranslateX: -7000, TranslateY: 5},
		{Scale: 0.1, TranslateX: 33, TranslateY: 9999},
		{Scale: 10, TranslateX: math.NaN(), TranslateY: math.Inf(1)},
	}
	for _, c := range cases {
		once := ConstrainPan(c, Size{200, 200}, Size{400, 300})
		twice := ConstrainPan(once, Size{200, 200}, Size{400, 300})
		if once != twice {
			t.Errorf("not idempotent for %+v: %+v then %+v", c, once, twice)
		}
	}
}

func TestConstrainPanNonFinite(t *testing.T) {
	got := ConstrainPan(Transform{Scale: 1, TranslateX: math.NaN(), TranslateY: math.Inf(-1)},
		Size{200, 200}, Size{400, 300})
	if got.TranslateX != 0 || got.TranslateY != 0 {
		t.Errorf("translate = (%v,%v), want (0,0)", got.TranslateX, got.TranslateY)
	}

	// A non-finite scale collapses the allowance to zero.
	got = ConstrainPan(Transform{Scale: math.Inf(1), TranslateX: 50, TranslateY: 50},
		Size{200, 200}, Size{400, 300})
	if got.TranslateX != 0 || got.TranslateY != 0 {
		t.Errorf("translate = (%v,%v), want (0,0)", got.TranslateX, got.TranslateY)
	}
}

func TestWidgetDragClampScenario(t *testing.T) {
	w, _ := newTestWidget(t, nil)
	w.SetTranslate(1000, 1000)
	if tr := w.Transform(); tr.TranslateX != 400 || tr.TranslateY != 300 {
		t.Errorf("scale 1: translate = (%v,%v), want (400,300)", tr.TranslateX, tr.TranslateY)
	}

	cfg := w.Config()
	cfg.MaxScale = 3
	w.ZoomAt(0, 0, 2)
	w.SetTranslate(1000, 1000)
	if tr := w.Transform(); !approxEqual(tr.TranslateX, 540, 1e-6) || !approxEqual(tr.TranslateY, 540, 1e-6) {
		t.Errorf("scale 3: translate = (%v,%v), want (540,540)", tr.TranslateX, tr.TranslateY)
	}
}
