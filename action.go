package pyre

import (
	"encoding/json"
	"fmt"
)

// ActionID identifies an external input. Reset and actions 1–5 and 7 are
// simple; action 6 carries frame coordinates.
type ActionID uint8

const (
	ActionReset ActionID = iota
	Action1
	Action2
	Action3
	Action4
	Action5
	Action6
	Action7
)

// Valid reports whether a is one of the defined action identifiers.
func (a ActionID) Valid() bool {
	return a <= Action7
}

// Coordinate reports whether the action carries x/y payload data.
func (a ActionID) Coordinate() bool {
	return a == Action6
}

// String returns the action's wire name.
func (a ActionID) String() string {
	if a == ActionReset {
		return "RESET"
	}
	if a.Valid() {
		return fmt.Sprintf("ACTION%d", a)
	}
	return "INVALID"
}

// MaxReasoningBytes caps the compact-JSON encoding of an ActionInput's
// reasoning payload.
const MaxReasoningBytes = 16384

// ActionInput is one externally supplied input. Construct with
// NewActionInput, which validates the identifier, the coordinate payload,
// and the reasoning budget.
type ActionInput struct {
	// ID selects the action.
	ID ActionID `json:"id"`

	// Data carries the payload for coordinate actions: keys "x" and "y" in
	// [0, FrameSize).
	Data map[string]int `json:"data,omitempty"`

	// Reasoning is an opaque caller-provided blob, already encoded as
	// compact JSON and capped at MaxReasoningBytes.
	Reasoning json.RawMessage `json:"reasoning,omitempty"`
}

// NewActionInput validates and builds an ActionInput. The id must be a
// defined action; a coordinate action requires "x" and "y" in
// [0, FrameSize) in data. A non-nil reasoning value must be
// JSON-serializable and encode to at most MaxReasoningBytes.
func NewActionInput(id ActionID, data map[string]int, reasoning any) (ActionInput, error) {
	if !id.Valid() {
		return ActionInput{}, errInvalid("unknown action id %d", id)
	}
	if id.Coordinate() {
		x, okX := data["x"]
		y, okY := data["y"]
		if !okX || !okY {
			return ActionInput{}, errInvalid("%s requires x and y data", id)
		}
		if x < 0 || x >= FrameSize || y < 0 || y >= FrameSize {
			return ActionInput{}, errInvalid("%s coordinates (%d, %d) outside [0, %d)", id, x, y, FrameSize)
		}
	}
	in := ActionInput{ID: id, Data: data}
	if reasoning != nil {
		encoded, err := json.Marshal(reasoning)
		if err != nil {
			return ActionInput{}, fmt.Errorf("%w: %v", ErrReasoningPayload, err)
		}
		if len(encoded) > MaxReasoningBytes {
			return ActionInput{}, fmt.Errorf("%w: %d bytes exceeds cap of %d",
				ErrReasoningPayload, len(encoded), MaxReasoningBytes)
		}
		in.Reasoning = encoded
	}
	return in, nil
}

// CoordinateInput builds a validated coordinate action at (x, y).
func CoordinateInput(id ActionID, x, y int) (ActionInput, error) {
	return NewActionInput(id, map[string]int{"x": x, "y": y}, nil)
}

// Coordinates returns the action's x/y payload, with ok=false for simple
// actions.
func (in ActionInput) Coordinates() (x, y int, ok bool) {
	if !in.ID.Coordinate() {
		return 0, 0, false
	}
	return in.Data["x"], in.Data["y"], true
}

// FrameData is the result of resolving one action: the ordered frames the
// simulation produced (one per step, possibly none), the lifecycle state,
// score, and the set of currently legal action identifiers.
type FrameData struct {
	GameID           string      `json:"game_id"`
	Frames           []Grid      `json:"frame"`
	State            GameState   `json:"state"`
	LevelsCompleted  int         `json:"levels_completed"`
	WinLevels        int         `json:"win_levels"`
	ActionInput      ActionInput `json:"action_input"`
	FullReset        bool        `json:"full_reset"`
	AvailableActions []ActionID  `json:"available_actions"`
}
