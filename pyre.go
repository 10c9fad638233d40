package pyre

// FrameSize is the fixed edge length of every composited output frame.
// Cameras may use any viewport up to this size; the letterboxing pass pads
// the result back out to FrameSize × FrameSize.
const FrameSize = 64

// Palette sentinels. Everything >= 0 is an ordinary palette color index.
const (
	// Transparent marks a pixel that neither occludes nor collides.
	Transparent int8 = -1
	// Border is a secondary sentinel color. Unlike Transparent it is opaque:
	// it occludes, collides, and counts as a regular value in the down-scale
	// mode filter.
	Border int8 = -2
)

// Well-known sprite tags recognized by the engine itself. Games are free to
// define any additional tags.
const (
	// TagStatic marks a sprite that never moves. Pixel-perfect static
	// sprites sharing a layer are fused into one sprite at level
	// construction.
	TagStatic = "static"
	// TagClickable marks a sprite that coordinate actions may target.
	TagClickable = "clickable"
	// TagEveryPixel widens a clickable sprite's legal-action enumeration
	// from one point per sprite to one point per non-transparent pixel.
	TagEveryPixel = "every_pixel"
)

// BlockingMode selects a sprite's collision fidelity.
type BlockingMode uint8

const (
	NotBlocked   BlockingMode = iota // never collides
	BoundingBox                      // coarse axis-aligned box collision
	PixelPerfect                     // exact per-pixel collision
)

// Valid reports whether b is one of the defined blocking modes.
func (b BlockingMode) Valid() bool {
	return b <= PixelPerfect
}

// String returns the mode's name.
func (b BlockingMode) String() string {
	switch b {
	case NotBlocked:
		return "NOT_BLOCKED"
	case BoundingBox:
		return "BOUNDING_BOX"
	case PixelPerfect:
		return "PIXEL_PERFECT"
	default:
		return "INVALID"
	}
}

// InteractionMode encodes a sprite's visibility and collidability
// independently. The ordering matters: merging two sprites promotes the
// result toward the lower (more present) value.
type InteractionMode uint8

const (
	Tangible   InteractionMode = iota // rendered and collidable
	Intangible                        // rendered, not collidable
	Invisible                         // collidable, not rendered
	Removed                           // neither rendered nor collidable
)

// Valid reports whether m is one of the defined interaction modes.
func (m InteractionMode) Valid() bool {
	return m <= Removed
}

// Rendered reports whether a sprite in this mode is drawn by the camera.
func (m InteractionMode) Rendered() bool {
	return m == Tangible || m == Intangible
}

// Collidable reports whether a sprite in this mode participates in
// collision tests.
func (m InteractionMode) Collidable() bool {
	return m == Tangible || m == Invisible
}

// String returns the mode's name.
func (m InteractionMode) String() string {
	switch m {
	case Tangible:
		return "TANGIBLE"
	case Intangible:
		return "INTANGIBLE"
	case Invisible:
		return "INVISIBLE"
	case Removed:
		return "REMOVED"
	default:
		return "INVALID"
	}
}

// Rect is an integer axis-aligned rectangle covering the half-open cell
// ranges [X, X+Width) × [Y, Y+Height). The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other share at least one cell.
// Edge-touching rectangles do NOT intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Intersection returns the overlapping region of r and other, and whether
// any overlap exists.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// GameState is the lifecycle state of a running game.
type GameState uint8

const (
	NotPlayed   GameState = iota // constructed, no action taken yet
	NotFinished                  // in play
	Win                          // all win levels completed
	GameOver                     // failed; only RESET is meaningful
)

// String returns the state's wire name.
func (s GameState) String() string {
	switch s {
	case NotPlayed:
		return "NOT_PLAYED"
	case NotFinished:
		return "NOT_FINISHED"
	case Win:
		return "WIN"
	case GameOver:
		return "GAME_OVER"
	default:
		return "INVALID"
	}
}

// MarshalJSON encodes the state as its wire name, e.g. "NOT_FINISHED".
func (s GameState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a wire name back into a GameState.
func (s *GameState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"NOT_PLAYED"`:
		*s = NotPlayed
	case `"NOT_FINISHED"`:
		*s = NotFinished
	case `"WIN"`:
		*s = Win
	case `"GAME_OVER"`:
		*s = GameOver
	default:
		return errInvalid("unknown game state %s", data)
	}
	return nil
}
