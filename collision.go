package pyre

// CollidesWith reports whether s and other occupy common ground. A sprite
// never collides with itself.
//
// Unless ignoreMode is set, both sprites must be collidable (Tangible or
// Invisible) and neither may be NotBlocked. A cheap bounding-box test
// rejects non-overlapping pairs; edge-touching boxes do not overlap. If
// either sprite is PixelPerfect the overlapping region is scanned and a
// collision requires some aligned pair of pixels to both be
// non-transparent. Otherwise the box overlap alone decides.
//
// The test is symmetric: s.CollidesWith(other, m) == other.CollidesWith(s, m).
func (s *Sprite) CollidesWith(other *Sprite, ignoreMode bool) bool {
	if s == other {
		return false
	}
	if !ignoreMode {
		if !s.Interaction.Collidable() || !other.Interaction.Collidable() {
			return false
		}
		if s.Blocking == NotBlocked || other.Blocking == NotBlocked {
			return false
		}
	}

	a, b := s.Bounds(), other.Bounds()
	overlap, ok := a.Intersection(b)
	if !ok {
		return false
	}
	if s.Blocking != PixelPerfect && other.Blocking != PixelPerfect {
		return true
	}

	ra := s.Render()
	rb := other.Render()
	for y := overlap.Y; y < overlap.Y+overlap.Height; y++ {
		for x := overlap.X; x < overlap.X+overlap.Width; x++ {
			if ra[y-a.Y][x-a.X] != Transparent && rb[y-b.Y][x-b.X] != Transparent {
				return true
			}
		}
	}
	return false
}
