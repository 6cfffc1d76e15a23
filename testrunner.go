package sketchpad

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Key    string  `json:"key,omitempty"`
	Tool   string  `json:"tool,omitempty"`
}

func (st scriptStep) mods() KeyModifiers {
	if st.Shift {
		return ModShift
	}
	return 0
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner replays a JSON input script through a PointerTracker, one step
// per frame once earlier injections have drained.
//
// Supported actions: press, move, hover, release, click, drag, key, tool,
// wait.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON input script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "press", "move", "hover", "release", "click", "drag", "wait":
		case "key":
			if ParseKey(st.Key) == KeyUnknown {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		case "tool":
			if _, ok := ParseTool(st.Tool); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown tool %q", i, st.Tool)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has executed and its input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame: it feeds at most one queued sample to
// p, and issues the next step once the queue is empty.
func (r *TestRunner) Step(p *PointerTracker) {
	if r.done {
		return
	}
	if p.ProcessInjected() {
		if r.cursor >= len(r.steps) && p.Pending() == 0 && r.waitCount == 0 {
			r.done = true
		}
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
	case "press":
		p.InjectPress(st.X, st.Y, st.mods())
	case "move":
		p.InjectMove(st.X, st.Y, st.mods())
	case "hover":
		p.InjectHover(st.X, st.Y, st.mods())
	case "release":
		p.InjectRelease(st.X, st.Y, st.mods())
	case "click":
		p.InjectClick(st.X, st.Y, st.mods())
	case "drag":
		p.InjectDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames, st.mods())
	case "key":
		p.Editor().HandleKey(ParseKey(st.Key))
	case "tool":
		t, _ := ParseTool(st.Tool)
		p.Editor().SwitchTool(t)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	// Injected input starts on the frame it was issued.
	p.ProcessInjected()
	if r.cursor >= len(r.steps) && r.waitCount == 0 && p.Pending() == 0 {
		r.done = true
	}
}

// Run steps the runner until it finishes, calling think between frames.
// It returns the number of frames taken. maxFrames bounds runaway scripts.
func (r *TestRunner) Run(p *PointerTracker, maxFrames int, think func()) int {
	frames := 0
	for !r.done && frames < maxFrames {
		r.Step(p)
		if think != nil {
			think()
		}
		frames++
	}
	return frames
}
