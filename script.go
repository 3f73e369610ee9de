package pointer

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	FromX  float32 `json:"fromX,omitempty"`
	FromY  float32 `json:"fromY,omitempty"`
	ToX    float32 `json:"toX,omitempty"`
	ToY    float32 `json:"toY,omitempty"`
	Button uint8   `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ease   string  `json:"ease,omitempty"`
	Value  float32 `json:"value,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptEases = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"outCubic":   ease.OutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
}

var scriptActions = map[string]bool{
	"move": true, "press": true, "release": true, "click": true, "drag": true,
	"wheel": true, "wait": true, "pen_move": true, "pen_down": true,
	"pen_up": true, "pen_pressure": true,
}

// ScriptRunner replays an input script one step per frame through the
// injection queue. Attach it with SetScriptRunner and drive it with
// PumpInjected.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a JSON input script:
//
//	{"steps": [
//	  {"action": "move", "x": 10, "y": 20},
//	  {"action": "click", "x": 10, "y": 20},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 6, "ease": "inOutQuad"},
//	  {"action": "wheel", "x": 0, "y": 1},
//	  {"action": "wait", "frames": 3}
//	]}
//
// Buttons default to left. Pen actions drive a pen the runner adds on first
// use.
func LoadInputScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		if _, ok := scriptEases[st.Ease]; !ok {
			return nil, fmt.Errorf("parse input script: step %d: unknown ease %q", i, st.Ease)
		}
		if st.Button > maxButton {
			return nil, fmt.Errorf("parse input script: step %d: button %d out of range", i, st.Button)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a runner. PumpInjected steps it before feeding
// injected input.
func (c *Context) SetScriptRunner(r *ScriptRunner) {
	c.inject.runner = r
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

func (st scriptStep) button() MouseButton {
	if st.Button == 0 {
		return ButtonLeft
	}
	return MouseButton(st.Button)
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(c *Context) {
	if r.done {
		return
	}
	// wait for pending injections to drain before advancing
	if c.PendingInjected() > 0 {
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
	case "move":
		c.InjectMove(st.X, st.Y)
	case "press":
		c.InjectPress(st.X, st.Y, st.button())
	case "release":
		c.InjectRelease(st.X, st.Y, st.button())
	case "click":
		c.InjectPress(st.X, st.Y, st.button())
		c.InjectRelease(st.X, st.Y, st.button())
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, scriptEases[st.Ease])
	case "wheel":
		c.InjectWheel(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pen_move":
		c.InjectPenMove(r.pen(c), st.X, st.Y)
	case "pen_down", "pen_up":
		c.InjectPenTouch(r.pen(c), st.X, st.Y, st.Action == "pen_down")
	case "pen_pressure":
		c.InjectPenAxis(r.pen(c), PenAxisPressure, st.Value)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.PendingInjected() == 0 {
		r.done = true
	}
}

// pen returns the script's pen, adding it on first use.
func (r *ScriptRunner) pen(c *Context) PenID {
	if c.inject.pen == 0 || !c.PenConnected(c.inject.pen) {
		c.inject.pen = c.AddPenDevice(0, "script pen", PenInfo{Capabilities: PenCapPressure}, nil)
	}
	return c.inject.pen
}
