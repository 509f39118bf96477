package dom

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phanxgames/panzoom"
)

// options mirrors the JavaScript configuration object. Durations are
// milliseconds; absent keys keep their defaults.
type options struct {
	MinScale               *float64 `json:"minScale"`
	MaxScale               *float64 `json:"maxScale"`
	ZoomStep               *float64 `json:"zoomStep"`
	PanStep                *float64 `json:"panStep"`
	TransitionDuration     *float64 `json:"transitionDuration"`
	ShowControls           *bool    `json:"showControls"`
	ControlsPosition       *string  `json:"controlsPosition"`
	EnableTouch            *bool    `json:"enableTouch"`
	EnableKeyboard         *bool    `json:"enableKeyboard"`
	EnableFullscreen       *bool    `json:"enableFullscreen"`
	ShowZoomLevelIndicator *bool    `json:"showZoomLevelIndicator"`
	IndicatorTimeout       *float64 `json:"indicatorTimeout"`
}

// ParseOptions merges a JSON configuration object (as produced by
// JSON.stringify on the page's options) over panzoom.DefaultConfig and
// validates the result. Empty input yields the defaults.
func ParseOptions(data []byte) (panzoom.Config, error) {
	cfg := panzoom.DefaultConfig()
	if len(data) == 0 || string(data) == "null" || string(data) == "undefined" {
		return cfg, nil
	}
	var o options
	if err := json.Unmarshal(data, &o); err != nil {
		return panzoom.Config{}, fmt.Errorf("dom: parse options: %w", err)
	}
	setFloat(&cfg.MinScale, o.MinScale)
	setFloat(&cfg.MaxScale, o.MaxScale)
	setFloat(&cfg.ZoomStep, o.ZoomStep)
	setFloat(&cfg.PanStep, o.PanStep)
	setMillis(&cfg.TransitionDuration, o.TransitionDuration)
	setMillis(&cfg.IndicatorTimeout, o.IndicatorTimeout)
	setBool(&cfg.ShowControls, o.ShowControls)
	setBool(&cfg.EnableTouch, o.EnableTouch)
	setBool(&cfg.EnableKeyboard, o.EnableKeyboard)
	setBool(&cfg.EnableFullscreen, o.EnableFullscreen)
	setBool(&cfg.ShowZoomLevelIndicator, o.ShowZoomLevelIndicator)
	if o.ControlsPosition != nil {
		cfg.ControlsPosition = panzoom.ControlsPosition(*o.ControlsPosition)
	}
	if err := cfg.Validate(); err != nil {
		return panzoom.Config{}, err
	}
	return cfg, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setMillis(dst *time.Duration, v *float64) {
	if v != nil {
		*dst = time.Duration(*v * float64(time.Millisecond))
	}
}
