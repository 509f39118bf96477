package panzoom

import "math"

// Vec2 is a 2D vector used for pointer positions and touch points.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair. Content bounds produced by ResolveBounds are
// always finite and positive.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Transform is the scale + translation applied to the graphic. It is also the
// payload of every notification.
//
// A content-space point (cx, cy) is displayed at
// (cx*Scale + TranslateX, cy*Scale + TranslateY).
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Identity is the transform a widget starts with and returns to on Reset.
var Identity = Transform{Scale: 1}

// ContentPoint returns the content-space point displayed at container
// position (x, y).
func (t Transform) ContentPoint(x, y float64) (cx, cy float64) {
	return (x - t.TranslateX) / t.Scale, (y - t.TranslateY) / t.Scale
}

// ScreenPoint returns the container position of content-space point (cx, cy).
func (t Transform) ScreenPoint(cx, cy float64) (x, y float64) {
	return cx*t.Scale + t.TranslateX, cy*t.Scale + t.TranslateY
}

// Matrix returns the transform as a 2x3 affine matrix [a, b, c, d, tx, ty],
// mapping (x, y) to (a*x + c*y + tx, b*x + d*y + ty).
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.TranslateX, t.TranslateY}
}

// isFinite reports whether every component is a finite number.
func (t Transform) isFinite() bool {
	return finite(t.Scale) && finite(t.TranslateX) && finite(t.TranslateY)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EventType identifies a transform notification.
type EventType uint8

const (
	EventZoom  EventType = iota // fires after ZoomAt changes the scale
	EventPan                    // fires after a drag or single-touch move
	EventReset                  // fires after Reset
	EventArrow                  // fires after an arrow-key nudge
	numEventTypes
)

// String returns the event name used by hosts ("zoom", "pan", "reset",
// "arrow").
func (e EventType) String() string {
	switch e {
	case EventZoom:
		return "zoom"
	case EventPan:
		return "pan"
	case EventReset:
		return "reset"
	case EventArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// ParseEventType maps an event name back to its EventType.
func ParseEventType(name string) (EventType, bool) {
	for e := EventType(0); e < numEventTypes; e++ {
		if e.String() == name {
			return e, true
		}
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonOther                     // back, forward and extra buttons
)

// Key is a logical key understood by the keyboard feature.
type Key uint8

const (
	KeyNone       Key = iota // any key the widget does not handle
	KeyPlus                  // "+"
	KeyEqual                 // "=" (unshifted "+" on most layouts)
	KeyMinus                 // "-"
	KeyZero                  // "0"
	KeyArrowUp               // "ArrowUp"
	KeyArrowDown             // "ArrowDown"
	KeyArrowLeft             // "ArrowLeft"
	KeyArrowRight            // "ArrowRight"
)

// ParseKey maps a DOM KeyboardEvent.key value to a Key. Unknown values map
// to KeyNone.
func ParseKey(s string) Key {
	switch s {
	case "+":
		return KeyPlus
	case "=":
		return KeyEqual
	case "-":
		return KeyMinus
	case "0":
		return KeyZero
	case "ArrowUp":
		return KeyArrowUp
	case "ArrowDown":
		return KeyArrowDown
	case "ArrowLeft":
		return KeyArrowLeft
	case "ArrowRight":
		return KeyArrowRight
	default:
		return KeyNone
	}
}
