package lantern

import (
	"encoding/json"
	"fmt"
	"image"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	FromX  int     `json:"fromX,omitempty"`
	FromY  int     `json:"fromY,omitempty"`
	ToX    int     `json:"toX,omitempty"`
	ToY    int     `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to an Application via SetTestRunner.
//
// Supported actions: "screenshot" (label), "click" (x, y), "drag" (fromX,
// fromY, toX, toY, frames), "scroll" (x, y, dx, dy) and "wait" (frames).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// ExitWhenDone makes the application exit after the last step.
	ExitWhenDone bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("lantern: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("lantern: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "scroll", "wait":
		default:
			return nil, fmt.Errorf("lantern: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the application. The runner's step
// method is called at the start of every Update.
func (a *Application) SetTestRunner(runner *TestRunner) {
	a.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(a *Application) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.finish(a)
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		a.Screenshot(st.Label)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "drag":
		a.InjectDrag(image.Pt(st.FromX, st.FromY), image.Pt(st.ToX, st.ToY), st.Frames)
	case "scroll":
		a.InjectScroll(st.X, st.Y, st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 {
		r.finish(a)
	}
}

func (r *TestRunner) finish(a *Application) {
	r.done = true
	if r.ExitWhenDone {
		a.Exit()
	}
}
