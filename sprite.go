package pyre

// Sprite is a named pixel-grid entity with a transform, a rendering layer,
// and interaction state. The transform (rotation, mirror flags, scale) is
// applied to the stored buffer on every Render call; rendered dimensions are
// always recomputed from the buffer and transform, never cached across
// mutation.
//
// Position, layer, mirror flags, and the two interaction enums are plain
// fields. Rotation, scale, and the buffer are guarded by setters because
// they have validity rules of their own.
type Sprite struct {
	// Name identifies the sprite within a level. Names are not required to
	// be unique; Level.SpriteByName returns the first match.
	Name string

	// X and Y are the sprite's world position (top-left of the rendered
	// buffer).
	X, Y int

	// Layer orders compositing: higher layers draw later, on top.
	Layer int

	// MirrorV flips the rendered buffer vertically; MirrorH horizontally.
	// Mirrors apply after rotation and before scaling.
	MirrorV, MirrorH bool

	// Blocking selects collision fidelity.
	Blocking BlockingMode

	// Interaction encodes visibility and collidability.
	Interaction InteractionMode

	buffer   Grid
	rotation int // degrees, one of 0/90/180/270
	scale    int // >0 magnify, <0 minify by |scale|+1, never 0
	tags     map[string]struct{}
}

// NewSprite creates a sprite at (0, 0) on layer 0 with rotation 0, scale 1,
// no mirroring, NotBlocked, and Tangible. The buffer must be non-empty,
// rectangular, and hold only palette indices or sentinels.
func NewSprite(name string, buffer Grid) (*Sprite, error) {
	if err := validateGrid(buffer); err != nil {
		return nil, err
	}
	return &Sprite{
		Name:        name,
		Blocking:    NotBlocked,
		Interaction: Tangible,
		buffer:      buffer.Clone(),
		scale:       1,
		tags:        make(map[string]struct{}),
	}, nil
}

// Buffer returns the sprite's untransformed pixel buffer.
// The returned grid MUST NOT be mutated by the caller; use SetBuffer.
func (s *Sprite) Buffer() Grid {
	return s.buffer
}

// SetBuffer replaces the pixel buffer. The new buffer is validated against
// the current scale: a minifying scale must still divide both dimensions.
func (s *Sprite) SetBuffer(buffer Grid) error {
	if err := validateGrid(buffer); err != nil {
		return err
	}
	if f := s.minifyFactor(); f > 1 {
		if buffer.Width()%f != 0 || buffer.Height()%f != 0 {
			return errInvalid("buffer %dx%d not divisible by current down-scale factor %d",
				buffer.Width(), buffer.Height(), f)
		}
	}
	s.buffer = buffer.Clone()
	return nil
}

// Rotation returns the sprite's rotation in degrees (0, 90, 180, or 270).
func (s *Sprite) Rotation() int {
	return s.rotation
}

// SetRotation sets the sprite's clockwise rotation. Only the four 90°
// multiples are legal.
func (s *Sprite) SetRotation(degrees int) error {
	normalized, ok := normalizeRotation(degrees)
	if !ok {
		return errInvalid("rotation %d is not a multiple of 90", degrees)
	}
	s.rotation = normalized
	return nil
}

// Rotate adds delta degrees to the current rotation. Delta must be a
// multiple of 90; negative deltas rotate counter-clockwise.
func (s *Sprite) Rotate(delta int) error {
	return s.SetRotation(s.rotation + delta)
}

// normalizeRotation maps any 90° multiple into [0, 270].
func normalizeRotation(degrees int) (int, bool) {
	if degrees%90 != 0 {
		return 0, false
	}
	normalized := degrees % 360
	if normalized < 0 {
		normalized += 360
	}
	return normalized, true
}

// Scale returns the sprite's integer scale. Positive values magnify by that
// factor; negative values minify by |scale|+1. Zero never occurs.
func (s *Sprite) Scale() int {
	return s.scale
}

// SetScale sets the sprite's scale. Zero is illegal, and a minifying scale
// must evenly divide both buffer dimensions.
func (s *Sprite) SetScale(scale int) error {
	if scale == 0 {
		return errInvalid("scale must not be zero")
	}
	if scale < 0 {
		f := -scale + 1
		if s.buffer.Width()%f != 0 || s.buffer.Height()%f != 0 {
			return errInvalid("down-scale factor %d does not divide %dx%d buffer",
				f, s.buffer.Width(), s.buffer.Height())
		}
	}
	s.scale = scale
	return nil
}

// AdjustScale walks the scale one integer step at a time toward
// scale+delta, skipping the illegal value zero. Every intermediate scale is
// validated independently, so a minifying step that does not divide the
// buffer fails even when the final value would.
func (s *Sprite) AdjustScale(delta int) error {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for ; delta > 0; delta-- {
		next := s.scale + step
		if next == 0 {
			next += step
		}
		if err := s.SetScale(next); err != nil {
			return err
		}
	}
	return nil
}

// minifyFactor returns the block size of a minifying scale, or 1.
func (s *Sprite) minifyFactor() int {
	if s.scale < 0 {
		return -s.scale + 1
	}
	return 1
}

// Tags returns the sprite's tags in unspecified order.
func (s *Sprite) Tags() []string {
	out := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		out = append(out, tag)
	}
	return out
}

// AddTag adds a tag to the sprite's tag set.
func (s *Sprite) AddTag(tag string) {
	s.tags[tag] = struct{}{}
}

// RemoveTag removes a tag; no-op if absent.
func (s *Sprite) RemoveTag(tag string) {
	delete(s.tags, tag)
}

// HasTag reports whether the sprite carries the given tag.
func (s *Sprite) HasTag(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Move shifts the sprite's position by (dx, dy).
func (s *Sprite) Move(dx, dy int) {
	s.X += dx
	s.Y += dy
}

// RenderedSize returns the dimensions of the transformed buffer without
// rendering it: rotation may swap width and height, scale multiplies or
// divides both.
func (s *Sprite) RenderedSize() (width, height int) {
	width, height = s.buffer.Width(), s.buffer.Height()
	if s.rotation == 90 || s.rotation == 270 {
		width, height = height, width
	}
	if s.scale > 1 {
		width *= s.scale
		height *= s.scale
	} else if s.scale < 0 {
		f := s.minifyFactor()
		width /= f
		height /= f
	}
	return width, height
}

// Bounds returns the sprite's world-space bounding box at rendered size.
func (s *Sprite) Bounds() Rect {
	w, h := s.RenderedSize()
	return Rect{X: s.X, Y: s.Y, Width: w, Height: h}
}

// Render produces the transformed pixel buffer, applying in fixed order:
// rotation (clockwise, 90° steps), vertical mirror, horizontal mirror, then
// scale. The setters guarantee every stored transform is valid, so Render
// cannot fail.
func (s *Sprite) Render() Grid {
	g := s.buffer
	copied := false
	if s.rotation != 0 {
		g = rotateQuarters(g, s.rotation/90)
		copied = true
	}
	if s.MirrorV {
		g = mirrorRows(g)
		copied = true
	}
	if s.MirrorH {
		g = mirrorCols(g)
		copied = true
	}
	switch {
	case s.scale > 1:
		g = magnify(g, s.scale)
		copied = true
	case s.scale < 0:
		reduced, err := minify(g, s.minifyFactor())
		if err != nil {
			// SetScale/SetBuffer enforce divisibility, and rotation cannot
			// break it (the factor divides both dimensions).
			panic("pyre: stored scale no longer divides buffer: " + err.Error())
		}
		g = reduced
		copied = true
	}
	if !copied {
		// Identity transform; hand out a copy so callers cannot alias the
		// internal buffer.
		g = g.Clone()
	}
	return g
}

// Clone returns a deep copy with fresh identity: the buffer and tag set are
// copied, all transform and interaction state is preserved.
func (s *Sprite) Clone() *Sprite {
	tags := make(map[string]struct{}, len(s.tags))
	for tag := range s.tags {
		tags[tag] = struct{}{}
	}
	return &Sprite{
		Name:        s.Name,
		X:           s.X,
		Y:           s.Y,
		Layer:       s.Layer,
		MirrorV:     s.MirrorV,
		MirrorH:     s.MirrorH,
		Blocking:    s.Blocking,
		Interaction: s.Interaction,
		buffer:      s.buffer.Clone(),
		rotation:    s.rotation,
		scale:       s.scale,
		tags:        tags,
	}
}

// Merge composites s over other into a brand-new sprite spanning the union
// bounding box of both rendered buffers, positioned at the minimum of their
// positions. Where both rendered pixels are non-transparent, s wins.
//
// The result keeps s's name, carries the union of both tag sets, takes the
// higher layer, and promotes blocking toward PixelPerfect and interaction
// toward Tangible. Its buffer is already transformed: rotation 0, scale 1,
// no mirrors.
func (s *Sprite) Merge(other *Sprite) *Sprite {
	union := s.Bounds().Union(other.Bounds())

	canvas := NewGrid(union.Width, union.Height)
	blit(canvas, other.Render(), other.X-union.X, other.Y-union.Y)
	blit(canvas, s.Render(), s.X-union.X, s.Y-union.Y)

	tags := make(map[string]struct{}, len(s.tags)+len(other.tags))
	for tag := range s.tags {
		tags[tag] = struct{}{}
	}
	for tag := range other.tags {
		tags[tag] = struct{}{}
	}

	return &Sprite{
		Name:        s.Name,
		X:           union.X,
		Y:           union.Y,
		Layer:       max(s.Layer, other.Layer),
		Blocking:    max(s.Blocking, other.Blocking),
		Interaction: min(s.Interaction, other.Interaction),
		buffer:      canvas,
		scale:       1,
		tags:        tags,
	}
}
