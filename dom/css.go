package dom

import (
	"fmt"
	"strconv"

	"github.com/phanxgames/panzoom"
)

// Class names and attributes the page stylesheet targets.
const (
	ClassWrapper    = "svg-zoom-wrapper"
	ClassContainer  = "svg-zoom-container"
	ClassSVG        = "svg-zoom-svg"
	ClassControls   = "svg-zoom-controls"
	ClassButton     = "svg-zoom-btn"
	ClassIndicator  = "svg-toolbelt-zoom-indicator"
	AttrInitialized = "data-svg-zoom-initialized"
	AttrZoomLevel   = "data-svg-zoom-level"
)

// TransformCSS formats t as a CSS transform. The graphic's transform origin
// must be its top-left corner.
func TransformCSS(t panzoom.Transform) string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", num(t.TranslateX), num(t.TranslateY), num(t.Scale))
}

// ControlsClass returns the class list of the controls box.
func ControlsClass(pos panzoom.ControlsPosition) string {
	return ClassControls + " position-" + string(pos)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
