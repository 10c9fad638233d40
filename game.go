package pyre

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxActionSteps caps the number of simulation steps a single action may
// take. Exceeding it returns ErrActionBudgetExceeded, which indicates a bug
// in game-specific step logic (typically Step never calling
// CompleteAction).
const MaxActionSteps = 200

// maxLevels bounds the level count and score so both fit the wire
// contract's [0, 254] range.
const maxLevels = 254

// Logic is the game-specific step hook the simulation loop drives. Step is
// invoked repeatedly while an action is in flight; it may read the current
// action and level, mutate sprites, and must eventually call
// Game.CompleteAction. Each invocation yields one rendered frame.
//
// Implementations may additionally satisfy LevelHook and ClickFilter.
type Logic interface {
	Step(g *Game) error
}

// LevelHook is an optional Logic extension notified whenever a level
// becomes current: at construction, on resets, and on level transitions.
type LevelHook interface {
	OnSetLevel(g *Game, lvl *Level)
}

// ClickFilter is an optional Logic extension that narrows which clickable
// sprites the legal-action enumeration offers right now.
type ClickFilter interface {
	SpriteClickable(g *Game, s *Sprite) bool
}

// GameConfig describes a game to construct.
type GameConfig struct {
	// ID names the game in every FrameData.
	ID string

	// Levels are the pristine level definitions, played in order. The game
	// clones them and never mutates the originals.
	Levels []*Level

	// Camera composites the current level into output frames.
	Camera *Camera

	// Logic supplies the per-step puzzle rules.
	Logic Logic

	// Actions declares which numbered actions the game accepts. Reset is
	// always accepted and must not be listed.
	Actions []ActionID

	// WinLevels is the score needed to win; zero means all levels.
	WinLevels int

	// LevelResetOnly forces every reset to re-clone only the current level,
	// never the whole game.
	LevelResetOnly bool
}

// Game drives levels through the action → simulation steps → frame
// sequence loop.
//
// A game is single-caller and re-entrant-free: PerformAction runs to
// completion (or to the fatal step-budget error) before returning, and all
// sprite/level/camera mutation happens in-place on objects the game owns.
// Pristine level copies are isolated from live ones purely by deep cloning.
type Game struct {
	id   string
	guid string

	pristine []*Level
	level    *Level

	camera *Camera
	logic  Logic

	actions   []ActionID
	winLevels int

	state          GameState
	levelIndex     int
	pendingLevel   int // -1 when no transition is queued
	score          int
	actionCount    int
	actionComplete bool
	current        ActionInput
	selected       *Sprite
	levelResetOnly bool
}

// NewGame validates the configuration, clones the first level, and returns
// a game in the NotPlayed state.
func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.ID == "" {
		return nil, errInvalid("game id must not be empty")
	}
	if len(cfg.Levels) == 0 {
		return nil, errInvalid("game needs at least one level")
	}
	if len(cfg.Levels) > maxLevels {
		return nil, errInvalid("%d levels exceeds the maximum of %d", len(cfg.Levels), maxLevels)
	}
	if cfg.Camera == nil {
		return nil, errInvalid("game needs a camera")
	}
	if cfg.Logic == nil {
		return nil, errInvalid("game needs step logic")
	}
	for _, a := range cfg.Actions {
		if !a.Valid() || a == ActionReset {
			return nil, errInvalid("declared action %d is not a numbered action", a)
		}
	}
	winLevels := cfg.WinLevels
	if winLevels == 0 {
		winLevels = len(cfg.Levels)
	}
	if winLevels < 0 || winLevels > len(cfg.Levels) {
		return nil, errInvalid("win levels %d outside [1, %d]", winLevels, len(cfg.Levels))
	}

	g := &Game{
		id:             cfg.ID,
		guid:           uuid.NewString(),
		pristine:       cfg.Levels,
		camera:         cfg.Camera,
		logic:          cfg.Logic,
		actions:        append([]ActionID(nil), cfg.Actions...),
		winLevels:      winLevels,
		state:          NotPlayed,
		pendingLevel:   -1,
		levelResetOnly: cfg.LevelResetOnly,
	}
	g.setLevel(0)
	return g, nil
}

// ID returns the configured game identifier.
func (g *Game) ID() string { return g.id }

// GUID returns the unique identifier of this game instance.
func (g *Game) GUID() string { return g.guid }

// Level returns the live copy of the current level.
func (g *Game) Level() *Level { return g.level }

// LevelIndex returns the index of the current level.
func (g *Game) LevelIndex() int { return g.levelIndex }

// Camera returns the game's camera.
func (g *Game) Camera() *Camera { return g.camera }

// State returns the lifecycle state.
func (g *Game) State() GameState { return g.state }

// Score returns the number of levels completed.
func (g *Game) Score() int { return g.score }

// WinLevels returns the score needed to win.
func (g *Game) WinLevels() int { return g.winLevels }

// ActionCount returns how many non-reset actions have been taken since the
// last reset (or since construction). Resets clear it; level transitions do
// not.
func (g *Game) ActionCount() int { return g.actionCount }

// CurrentAction returns the action currently being resolved. Only
// meaningful inside Logic.Step.
func (g *Game) CurrentAction() ActionInput { return g.current }

// CompleteAction signals that the in-flight action is resolved. Logic.Step
// must call this eventually or the step loop hits its budget.
func (g *Game) CompleteAction() { g.actionComplete = true }

// SetGameOver moves the game to GameOver and resolves the in-flight action.
func (g *Game) SetGameOver() {
	g.state = GameOver
	g.actionComplete = true
}

// QueueLevel schedules a transition to the given level index; the loop
// applies it before the next logic step. Queueing the index one past the
// last level completes the game.
func (g *Game) QueueLevel(index int) error {
	if index < 0 || index > len(g.pristine) {
		return fmt.Errorf("%w: level index %d outside [0, %d]", ErrOutOfRange, index, len(g.pristine))
	}
	g.pendingLevel = index
	return nil
}

// AdvanceLevel schedules a transition to the next level.
func (g *Game) AdvanceLevel() error {
	return g.QueueLevel(g.levelIndex + 1)
}

// SelectPlaceable marks a sprite as the current placement payload: while
// one is selected, coordinate actions enumerate the level's placeable areas
// instead of clickable sprites. Pass nil to clear.
func (g *Game) SelectPlaceable(s *Sprite) { g.selected = s }

// SelectedPlaceable returns the currently selected placeable sprite, or
// nil.
func (g *Game) SelectedPlaceable() *Sprite { return g.selected }

// setLevel makes a fresh clone of pristine level index current and fires
// the optional level hook.
func (g *Game) setLevel(index int) {
	g.levelIndex = index
	g.level = g.pristine[index].Clone()
	if hook, ok := g.logic.(LevelHook); ok {
		hook.OnSetLevel(g, g.level)
	}
}

// applyTransition swaps in the queued level, credits the score when the
// transition moves forward, and detects the win condition. Queueing the
// current index reloads the level without credit.
func (g *Game) applyTransition() {
	index := g.pendingLevel
	g.pendingLevel = -1
	if index > g.levelIndex && g.score < maxLevels {
		g.score++
	}
	if g.score >= g.winLevels || index >= len(g.pristine) {
		g.state = Win
		g.actionComplete = true
		return
	}
	g.setLevel(index)
}

// PerformAction resolves one external action and returns the frame
// sequence it produced.
//
// A reset re-clones either every level (full reset) or just the current one
// and renders a single frame. Actions against a finished game return an
// empty frame sequence. Otherwise the loop alternates between applying
// pending level transitions and invoking the logic's Step hook, rendering
// one frame per iteration, until the action is complete and no transition
// is pending — or the step budget trips.
func (g *Game) PerformAction(in ActionInput) (FrameData, error) {
	if !in.ID.Valid() {
		return FrameData{}, errInvalid("unknown action id %d", in.ID)
	}
	if in.ID == ActionReset {
		return g.reset(in), nil
	}
	if g.state == Win || g.state == GameOver {
		return g.frameData(in, nil, false), nil
	}
	if !g.actionAvailable(in.ID) {
		return FrameData{}, errInvalid("action %s is not available in this game", in.ID)
	}

	g.state = NotFinished
	g.actionComplete = false
	g.actionCount++
	g.current = in

	var frames []Grid
	for steps := 0; ; steps++ {
		if steps >= MaxActionSteps {
			return FrameData{}, fmt.Errorf("%w: action %s still unresolved after %d steps",
				ErrActionBudgetExceeded, in.ID, MaxActionSteps)
		}
		if g.pendingLevel >= 0 {
			g.applyTransition()
		} else {
			if err := g.logic.Step(g); err != nil {
				return FrameData{}, fmt.Errorf("step %d of action %s: %w", steps, in.ID, err)
			}
		}
		frames = append(frames, g.camera.Render(g.level.Sprites()))
		if g.resolved() {
			break
		}
	}
	return g.frameData(in, frames, false), nil
}

// resolved reports whether the in-flight action is finished: complete (or
// the game ended) with no transition pending.
func (g *Game) resolved() bool {
	if g.pendingLevel >= 0 {
		return false
	}
	return g.actionComplete || g.state == Win || g.state == GameOver
}

// reset implements RESET semantics. A full reset re-clones every level from
// its pristine copy, zeroes the score, and returns to level 0; it triggers
// from NotPlayed, Win, or GameOver, or when no action has been taken since
// the last reset. Otherwise, and always under the LevelResetOnly override,
// only the current level is re-cloned. Either way exactly one frame is
// rendered and the action counter clears.
func (g *Game) reset(in ActionInput) FrameData {
	full := !g.levelResetOnly &&
		(g.state == NotPlayed || g.state == Win || g.state == GameOver || g.actionCount == 0)
	if full {
		g.score = 0
		g.setLevel(0)
	} else {
		g.setLevel(g.levelIndex)
	}
	g.state = NotFinished
	g.pendingLevel = -1
	g.actionCount = 0
	g.actionComplete = false
	g.selected = nil

	frames := []Grid{g.camera.Render(g.level.Sprites())}
	return g.frameData(in, frames, full)
}

// actionAvailable reports whether the game declared the given action.
func (g *Game) actionAvailable(id ActionID) bool {
	for _, a := range g.actions {
		if a == id {
			return true
		}
	}
	return false
}

// AvailableActions returns the currently legal action identifiers: Reset
// plus every declared action.
func (g *Game) AvailableActions() []ActionID {
	out := make([]ActionID, 0, len(g.actions)+1)
	out = append(out, ActionReset)
	return append(out, g.actions...)
}

// LegalActions enumerates every concrete input the game accepts right now.
// Simple actions contribute one input each. A coordinate action expands to
// display coordinates: one per placeable-area cell while a placeable sprite
// is selected, otherwise one per clickable sprite (or one per
// non-transparent pixel for sprites tagged TagEveryPixel).
func (g *Game) LegalActions() []ActionInput {
	var out []ActionInput
	for _, a := range g.actions {
		if !a.Coordinate() {
			in, err := NewActionInput(a, nil, nil)
			if err != nil {
				panic("pyre: declared action failed validation: " + err.Error())
			}
			out = append(out, in)
			continue
		}
		out = append(out, g.coordinateActions(a)...)
	}
	return out
}

// coordinateActions expands one coordinate action id into concrete inputs.
func (g *Game) coordinateActions(id ActionID) []ActionInput {
	var out []ActionInput
	appendAt := func(worldX, worldY int) {
		x, y, ok := g.camera.GridToDisplay(worldX, worldY)
		if !ok {
			return
		}
		in, err := CoordinateInput(id, x, y)
		if err != nil {
			panic("pyre: display coordinate failed validation: " + err.Error())
		}
		out = append(out, in)
	}

	if g.selected != nil {
		for _, area := range g.level.Placeables() {
			area.cells(appendAt)
		}
		return out
	}

	filter, hasFilter := g.logic.(ClickFilter)
	for _, s := range g.level.SpritesByTag(TagClickable) {
		if hasFilter && !filter.SpriteClickable(g, s) {
			continue
		}
		bounds := s.Bounds()
		if !s.HasTag(TagEveryPixel) {
			appendAt(bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2)
			continue
		}
		rendered := s.Render()
		for y, row := range rendered {
			for x, v := range row {
				if v != Transparent {
					appendAt(bounds.X+x, bounds.Y+y)
				}
			}
		}
	}
	return out
}

// frameData assembles the wire result for one resolved action.
func (g *Game) frameData(in ActionInput, frames []Grid, fullReset bool) FrameData {
	return FrameData{
		GameID:           g.id,
		Frames:           frames,
		State:            g.state,
		LevelsCompleted:  g.score,
		WinLevels:        g.winLevels,
		ActionInput:      in,
		FullReset:        fullReset,
		AvailableActions: g.AvailableActions(),
	}
}
