// Package pyre is a deterministic 2D sprite engine for turn-based puzzle
// games.
//
// Pyre renders, composites, and collision-tests small grid-based worlds made
// of palette-indexed pixel sprites, and drives those worlds through an
// action → simulation steps → frame sequence loop. Everything is synchronous
// and integer-exact: the same inputs always produce the same frames.
//
// # Quick start
//
// Build sprites, put them in a [Level], point a [Camera] at it, and wrap the
// whole thing in a [Game] with your puzzle rules behind the [Logic]
// interface:
//
//	player, _ := pyre.NewSprite("player", pyre.Grid{{4}})
//	level := pyre.NewLevel(pyre.LevelConfig{
//		Name:    "intro",
//		Sprites: []*pyre.Sprite{player},
//	})
//	camera, _ := pyre.NewCamera(16, 16, 0, 0)
//	game, _ := pyre.NewGame(pyre.GameConfig{
//		ID:      "my-puzzle",
//		Levels:  []*pyre.Level{level},
//		Camera:  camera,
//		Logic:   rules,
//		Actions: []pyre.ActionID{pyre.Action1, pyre.Action2},
//	})
//
//	out, err := game.PerformAction(input)
//
// Each call to [Game.PerformAction] resolves one external action over one or
// more internal steps and returns a [FrameData] holding one rendered 64×64
// frame per step, plus score, lifecycle state, and the currently legal
// actions.
//
// # Pixels and transparency
//
// A pixel is a small palette index stored as an int8. The value
// [Transparent] (−1) neither occludes nor collides; [Border] (−2) is an
// ordinary opaque sentinel color. Sprites own a pixel [Grid] and a transform
// (rotation in 90° steps, mirror flags, integer scale) that is applied on
// every [Sprite.Render] call.
//
// # Engine pieces
//
// [Sprite] owns a buffer and transform/interaction state and can merge with
// and collision-test other sprites. [Level] owns an unordered sprite
// collection with name/tag/point queries and fuses static pixel-perfect
// sprites at construction. [Camera] composites a level into a fixed 64×64
// letterboxed frame. [Game] owns the lifecycle state machine and the bounded
// per-action step loop.
//
// The engine is single-threaded: all mutation happens in-place on objects
// owned by the game that invoked it, and isolation between pristine and live
// level copies is achieved through deep cloning, never locking.
package pyre
