package panzoom

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultMinScale           = 0.1
	DefaultMaxScale           = 10.0
	DefaultZoomStep           = 0.1
	DefaultTransitionDuration = 200 * time.Millisecond
	DefaultPanStep            = 20.0
	DefaultIndicatorTimeout   = 1500 * time.Millisecond
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("panzoom: invalid config")

// ControlsPosition selects the container corner the on-screen controls are
// anchored to.
type ControlsPosition string

const (
	ControlsTopRight    ControlsPosition = "top-right"
	ControlsTopLeft     ControlsPosition = "top-left"
	ControlsBottomRight ControlsPosition = "bottom-right"
	ControlsBottomLeft  ControlsPosition = "bottom-left"
)

// Config holds the widget's tunables.
//
// Config is a plain mutable struct: the widget keeps a pointer to it and every
// operation reads the current values, so a host may change limits or toggle
// EnableTouch / EnableKeyboard after construction. Nothing re-validates a live
// edit. Feature slots are still chosen once, at construction, from the flags
// in effect then; a feature created at construction honours a live disable,
// but enabling a feature that was off at construction has no effect.
type Config struct {
	MinScale float64 `yaml:"minScale"`
	MaxScale float64 `yaml:"maxScale"`
	ZoomStep float64 `yaml:"zoomStep"`
	// PanStep is the distance an arrow key moves the graphic.
	PanStep float64 `yaml:"panStep"`

	// TransitionDuration is the length of the animated apply used by Reset.
	// Zero applies immediately.
	TransitionDuration time.Duration `yaml:"transitionDuration"`

	ShowControls     bool             `yaml:"showControls"`
	ControlsPosition ControlsPosition `yaml:"controlsPosition"`

	EnableTouch      bool `yaml:"enableTouch"`
	EnableKeyboard   bool `yaml:"enableKeyboard"`
	EnableFullscreen bool `yaml:"enableFullscreen"`

	ShowZoomLevelIndicator bool          `yaml:"showZoomLevelIndicator"`
	IndicatorTimeout       time.Duration `yaml:"indicatorTimeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MinScale:               DefaultMinScale,
		MaxScale:               DefaultMaxScale,
		ZoomStep:               DefaultZoomStep,
		PanStep:                DefaultPanStep,
		TransitionDuration:     DefaultTransitionDuration,
		ShowControls:           true,
		ControlsPosition:       ControlsTopRight,
		EnableTouch:            true,
		EnableKeyboard:         true,
		EnableFullscreen:       true,
		ShowZoomLevelIndicator: true,
		IndicatorTimeout:       DefaultIndicatorTimeout,
	}
}

// Validate reports the first problem with c. The widget itself never calls
// Validate; it stays finite-safe with any values. Use it where a
// configuration comes from outside (files, JavaScript options).
func (c *Config) Validate() error {
	switch {
	case !finite(c.MinScale) || c.MinScale <= 0:
		return fmt.Errorf("%w: minScale %v must be finite and > 0", ErrInvalidConfig, c.MinScale)
	case !finite(c.MaxScale) || c.MaxScale <= 0:
		return fmt.Errorf("%w: maxScale %v must be finite and > 0", ErrInvalidConfig, c.MaxScale)
	case c.MinScale > c.MaxScale:
		return fmt.Errorf("%w: minScale %v exceeds maxScale %v", ErrInvalidConfig, c.MinScale, c.MaxScale)
	case !finite(c.ZoomStep) || c.ZoomStep <= 0:
		return fmt.Errorf("%w: zoomStep %v must be finite and > 0", ErrInvalidConfig, c.ZoomStep)
	case !finite(c.PanStep) || c.PanStep < 0:
		return fmt.Errorf("%w: panStep %v must be finite and >= 0", ErrInvalidConfig, c.PanStep)
	case c.TransitionDuration < 0:
		return fmt.Errorf("%w: transitionDuration %v must be >= 0", ErrInvalidConfig, c.TransitionDuration)
	case c.IndicatorTimeout < 0:
		return fmt.Errorf("%w: indicatorTimeout %v must be >= 0", ErrInvalidConfig, c.IndicatorTimeout)
	}
	switch c.ControlsPosition {
	case ControlsTopRight, ControlsTopLeft, ControlsBottomRight, ControlsBottomLeft:
	default:
		return fmt.Errorf("%w: unknown controlsPosition %q", ErrInvalidConfig, c.ControlsPosition)
	}
	return nil
}

// clampScale clamps v to [MinScale, MaxScale]. An inverted range resolves to
// MinScale; NaN input resolves to the lower bound.
func (c *Config) clampScale(v float64) float64 {
	if math.IsNaN(v) {
		return c.MinScale
	}
	return math.Max(c.MinScale, math.Min(c.MaxScale, v))
}

// durationKeys are the YAML keys holding a time.Duration.
var durationKeys = map[string]bool{
	"transitionDuration": true,
	"indicatorTimeout":   true,
}

// UnmarshalYAML decodes c, reading bare numbers in duration keys as
// milliseconds, the unit browser options use.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if !durationKeys[key.Value] || val.Kind != yaml.ScalarNode {
				continue
			}
			if tag := val.ShortTag(); tag == "!!int" || tag == "!!float" {
				val.Tag = "!!str"
				val.Value += "ms"
			}
		}
	}
	type plain Config
	return node.Decode((*plain)(c))
}

// LoadConfig parses YAML configuration on top of DefaultConfig and validates
// the result. Keys missing from data keep their defaults. Durations accept Go
// duration strings ("250ms") or bare numbers of milliseconds (250).
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}
