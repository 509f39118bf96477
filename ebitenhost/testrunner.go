package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phanxgames/panzoom"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("ebitenhost: test script has no steps")

// TestRunner plays a scripted sequence of injected input and screenshots,
// one step per frame once the inject queue has drained.
//
// Actions: click, dblclick, drag, wheel, key, wait, screenshot.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "click", "dblclick", "drag", "wheel", "key", "wait", "screenshot":
		return true
	}
	return false
}

// SetTestRunner attaches r; it advances once per Update.
func (h *Host) SetTestRunner(r *TestRunner) {
	h.runner = r
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(h *Host) {
	if r.done || len(h.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "click":
		h.InjectClick(st.X, st.Y)
	case "dblclick":
		h.InjectDoubleClick(st.X, st.Y)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		h.InjectWheel(st.X, st.Y, st.DY)
	case "key":
		h.InjectKey(panzoom.ParseKey(st.Key))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 {
		r.done = true
	}
}
