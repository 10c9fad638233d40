package pyre

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an action script.
type scriptStep struct {
	Action    string          `json:"action"`
	X         *int            `json:"x,omitempty"`
	Y         *int            `json:"y,omitempty"`
	Reasoning json.RawMessage `json:"reasoning,omitempty"`
}

// actionScript is the top-level JSON structure for an action script.
type actionScript struct {
	Steps []scriptStep `json:"steps"`
}

// scriptActionIDs maps script action names to identifiers.
var scriptActionIDs = map[string]ActionID{
	"reset":   ActionReset,
	"action1": Action1,
	"action2": Action2,
	"action3": Action3,
	"action4": Action4,
	"action5": Action5,
	"action6": Action6,
	"action7": Action7,
}

// ScriptRunner sequences a recorded list of actions against a Game, for
// replays and automated end-to-end tests. Build one with LoadActionScript
// and feed a game one action per Step call.
type ScriptRunner struct {
	inputs []ActionInput
	cursor int
}

// LoadActionScript parses a JSON action script and returns a ScriptRunner.
// Every step is validated at load time: its name must be a known action and
// its payload must satisfy NewActionInput.
func LoadActionScript(jsonData []byte) (*ScriptRunner, error) {
	var script actionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse action script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse action script: no steps")
	}

	inputs := make([]ActionInput, len(script.Steps))
	for i, step := range script.Steps {
		id, ok := scriptActionIDs[step.Action]
		if !ok {
			return nil, fmt.Errorf("parse action script: step %d: unknown action %q", i, step.Action)
		}
		var data map[string]int
		if step.X != nil || step.Y != nil {
			if step.X == nil || step.Y == nil {
				return nil, fmt.Errorf("parse action script: step %d: x and y must appear together", i)
			}
			data = map[string]int{"x": *step.X, "y": *step.Y}
		}
		var reasoning any
		if len(step.Reasoning) > 0 {
			reasoning = step.Reasoning
		}
		in, err := NewActionInput(id, data, reasoning)
		if err != nil {
			return nil, fmt.Errorf("parse action script: step %d: %w", i, err)
		}
		inputs[i] = in
	}
	return &ScriptRunner{inputs: inputs}, nil
}

// Len returns the number of scripted actions.
func (r *ScriptRunner) Len() int {
	return len(r.inputs)
}

// Done reports whether every scripted action has been performed.
func (r *ScriptRunner) Done() bool {
	return r.cursor >= len(r.inputs)
}

// Step performs the next scripted action against the game. Calling Step on
// a finished runner returns ErrOutOfRange.
func (r *ScriptRunner) Step(g *Game) (FrameData, error) {
	if r.Done() {
		return FrameData{}, fmt.Errorf("%w: action script exhausted after %d steps", ErrOutOfRange, len(r.inputs))
	}
	in := r.inputs[r.cursor]
	r.cursor++
	return g.PerformAction(in)
}

// Run performs every remaining scripted action, returning the per-action
// results. It stops at the first error.
func (r *ScriptRunner) Run(g *Game) ([]FrameData, error) {
	var out []FrameData
	for !r.Done() {
		fd, err := r.Step(g)
		if err != nil {
			return out, err
		}
		out = append(out, fd)
	}
	return out, nil
}
