package pyre

// PlaceableArea is a rectangular region a game accepts placements in,
// enumerated at a per-axis step size by the legal-action expansion.
type PlaceableArea struct {
	X, Y          int
	Width, Height int
	StepX, StepY  int
}

// cells visits every grid cell of the area at its configured step size.
func (a PlaceableArea) cells(visit func(x, y int)) {
	stepX, stepY := a.StepX, a.StepY
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}
	for y := a.Y; y < a.Y+a.Height; y += stepY {
		for x := a.X; x < a.X+a.Width; x += stepX {
			visit(x, y)
		}
	}
}

// LevelConfig describes a level to construct. Sprites is the only required
// field; Width/Height record an optional fixed grid size and Metadata an
// optional key→value map for game-specific use.
type LevelConfig struct {
	Name          string
	Sprites       []*Sprite
	Width, Height int
	Metadata      map[string]any
	Placeables    []PlaceableArea
}

// Level owns an unordered collection of sprites plus placement metadata.
// Insertion order is not semantically meaningful except as the compositing
// tiebreak within a layer.
//
// At construction the level fuses sprites that are simultaneously
// PixelPerfect and tagged TagStatic into one sprite per layer. This is a
// pure performance optimization: the composited output is unchanged, only
// the sprite count drops. It runs exactly once.
type Level struct {
	name       string
	sprites    []*Sprite
	width      int
	height     int
	metadata   map[string]any
	placeables []PlaceableArea

	// Layer-descending query cache, rebuilt lazily. Any add or remove
	// marks it dirty.
	sorted      []*Sprite
	sortedDirty bool
}

// NewLevel constructs a level and performs the one-time static merge.
func NewLevel(cfg LevelConfig) *Level {
	lvl := &Level{
		name:        cfg.Name,
		sprites:     mergeStatics(cfg.Sprites),
		width:       cfg.Width,
		height:      cfg.Height,
		metadata:    cfg.Metadata,
		placeables:  append([]PlaceableArea(nil), cfg.Placeables...),
		sortedDirty: true,
	}
	return lvl
}

// mergeStatics fuses pixel-perfect sprites tagged TagStatic into one sprite
// per layer. Groups fold in insertion order with each later sprite merged
// over the accumulator, matching the painter's order the compositor uses
// within a layer.
func mergeStatics(sprites []*Sprite) []*Sprite {
	merged := make(map[int]*Sprite)
	layers := make([]int, 0)
	rest := make([]*Sprite, 0, len(sprites))

	for _, s := range sprites {
		if s.Blocking != PixelPerfect || !s.HasTag(TagStatic) {
			rest = append(rest, s)
			continue
		}
		if acc, ok := merged[s.Layer]; ok {
			merged[s.Layer] = s.Merge(acc)
		} else {
			merged[s.Layer] = s
			layers = append(layers, s.Layer)
		}
	}

	out := make([]*Sprite, 0, len(layers)+len(rest))
	for _, layer := range layers {
		out = append(out, merged[layer])
	}
	return append(out, rest...)
}

// Name returns the level's name.
func (l *Level) Name() string { return l.name }

// Size returns the level's fixed grid size, or zeros if none was set.
func (l *Level) Size() (width, height int) { return l.width, l.height }

// Metadata returns the level's key→value map, or nil. The map is shared;
// games own its contents.
func (l *Level) Metadata() map[string]any { return l.metadata }

// Placeables returns the level's placeable areas.
// The returned slice MUST NOT be mutated by the caller.
func (l *Level) Placeables() []PlaceableArea { return l.placeables }

// Sprites returns the level's sprites.
// The returned slice MUST NOT be mutated by the caller.
func (l *Level) Sprites() []*Sprite { return l.sprites }

// AddSprite appends a sprite and invalidates the layer cache.
func (l *Level) AddSprite(s *Sprite) {
	l.sprites = append(l.sprites, s)
	l.sortedDirty = true
}

// RemoveSprite detaches a sprite from the level, reporting whether it was
// present. Removal destroys the sprite as far as the level is concerned;
// the pointer itself stays valid for the caller.
func (l *Level) RemoveSprite(s *Sprite) bool {
	for i, candidate := range l.sprites {
		if candidate == s {
			copy(l.sprites[i:], l.sprites[i+1:])
			l.sprites[len(l.sprites)-1] = nil
			l.sprites = l.sprites[:len(l.sprites)-1]
			l.sortedDirty = true
			return true
		}
	}
	return false
}

// SpriteByName returns the first sprite with the given name, or
// ErrNotFound.
func (l *Level) SpriteByName(name string) (*Sprite, error) {
	for _, s := range l.sprites {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errNotFound("sprite %q", name)
}

// SpritesByTag returns every sprite carrying the given tag.
func (l *Level) SpritesByTag(tag string) []*Sprite {
	var out []*Sprite
	for _, s := range l.sprites {
		if s.HasTag(tag) {
			out = append(out, s)
		}
	}
	return out
}

// SpritesByAllTags returns every sprite carrying all of the given tags.
func (l *Level) SpritesByAllTags(tags []string) []*Sprite {
	var out []*Sprite
outer:
	for _, s := range l.sprites {
		for _, tag := range tags {
			if !s.HasTag(tag) {
				continue outer
			}
		}
		out = append(out, s)
	}
	return out
}

// SpritesByAnyTag returns every sprite carrying at least one of the given
// tags.
func (l *Level) SpritesByAnyTag(tags []string) []*Sprite {
	var out []*Sprite
	for _, s := range l.sprites {
		for _, tag := range tags {
			if s.HasTag(tag) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// SpriteAt returns the topmost sprite at world cell (x, y): sprites are
// scanned in layer-descending order and the first whose bounding box
// contains the point — and, for PixelPerfect sprites, whose transformed
// pixel there is non-transparent — wins. A non-empty tag restricts the scan
// to sprites carrying it. By default only collidable sprites are
// considered; ignoreMode lifts that restriction. Returns nil if nothing is
// hit.
func (l *Level) SpriteAt(x, y int, tag string, ignoreMode bool) *Sprite {
	for _, s := range l.sortedByLayer() {
		if !ignoreMode && !s.Interaction.Collidable() {
			continue
		}
		if tag != "" && !s.HasTag(tag) {
			continue
		}
		bounds := s.Bounds()
		if !bounds.Contains(x, y) {
			continue
		}
		if s.Blocking == PixelPerfect && s.Render()[y-bounds.Y][x-bounds.X] == Transparent {
			continue
		}
		return s
	}
	return nil
}

// CollidesWith returns every level sprite that collides with the given
// sprite, honoring both sprites' modes.
func (l *Level) CollidesWith(s *Sprite) []*Sprite {
	var out []*Sprite
	for _, candidate := range l.sprites {
		if candidate.CollidesWith(s, false) {
			out = append(out, candidate)
		}
	}
	return out
}

// Clone deep-copies every sprite and the metadata map, producing a fully
// independent level.
func (l *Level) Clone() *Level {
	sprites := make([]*Sprite, len(l.sprites))
	for i, s := range l.sprites {
		sprites[i] = s.Clone()
	}
	var metadata map[string]any
	if l.metadata != nil {
		metadata = make(map[string]any, len(l.metadata))
		for k, v := range l.metadata {
			metadata[k] = v
		}
	}
	return &Level{
		name:        l.name,
		sprites:     sprites,
		width:       l.width,
		height:      l.height,
		metadata:    metadata,
		placeables:  append([]PlaceableArea(nil), l.placeables...),
		sortedDirty: true,
	}
}

// sortedByLayer returns the layer-descending sprite order, rebuilding the
// cache when dirty. Stable insertion sort: optimal for the nearly-sorted
// case and allocation-free once the buffer reaches high-water mark.
func (l *Level) sortedByLayer() []*Sprite {
	if !l.sortedDirty {
		return l.sorted
	}
	n := len(l.sprites)
	if cap(l.sorted) < n {
		l.sorted = make([]*Sprite, n)
	}
	l.sorted = l.sorted[:n]
	copy(l.sorted, l.sprites)
	for i := 1; i < n; i++ {
		key := l.sorted[i]
		j := i - 1
		for j >= 0 && l.sorted[j].Layer < key.Layer {
			l.sorted[j+1] = l.sorted[j]
			j--
		}
		l.sorted[j+1] = key
	}
	l.sortedDirty = false
	return l.sorted
}
