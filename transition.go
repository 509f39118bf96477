package panzoom

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transition animates the displayed transform toward a target with a single
// linear tween per component. It is advanced by Widget.Update.
type transition struct {
	scale  *gween.Tween
	tx     *gween.Tween
	ty     *gween.Tween
	target Transform
}

func newTransition(from, to Transform, d time.Duration) *transition {
	secs := float32(d.Seconds())
	return &transition{
		scale:  gween.New(float32(from.Scale), float32(to.Scale), secs, ease.Linear),
		tx:     gween.New(float32(from.TranslateX), float32(to.TranslateX), secs, ease.Linear),
		ty:     gween.New(float32(from.TranslateY), float32(to.TranslateY), secs, ease.Linear),
		target: to,
	}
}

// update advances the tweens by dt seconds and returns the transform to
// display. Once finished the exact target is returned rather than the
// float32 tween value.
func (tr *transition) update(dt float32) (Transform, bool) {
	s, doneS := tr.scale.Update(dt)
	x, doneX := tr.tx.Update(dt)
	y, doneY := tr.ty.Update(dt)
	if doneS && doneX && doneY {
		return tr.target, true
	}
	return Transform{Scale: float64(s), TranslateX: float64(x), TranslateY: float64(y)}, false
}
