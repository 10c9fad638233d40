package pyre

import "testing"

func boxSprite(t *testing.T, name string, size, x, y int) *Sprite {
	t.Helper()
	buf := NewGrid(size, size)
	buf.Fill(1)
	s := mustSprite(t, name, buf)
	s.X, s.Y = x, y
	s.Blocking = BoundingBox
	return s
}

func TestCollisionBoundingBoxScenario(t *testing.T) {
	a := boxSprite(t, "a", 2, 0, 0)
	b := boxSprite(t, "b", 2, 3, 3)

	if a.CollidesWith(b, false) {
		t.Error("separated boxes should not collide")
	}
	b.X, b.Y = 1, 1
	if !a.CollidesWith(b, false) {
		t.Error("overlapping boxes should collide")
	}
	b.X, b.Y = 2, 2
	if a.CollidesWith(b, false) {
		t.Error("edge-touching boxes should not collide")
	}
}

func TestCollisionNeverWithSelf(t *testing.T) {
	a := boxSprite(t, "a", 2, 0, 0)
	if a.CollidesWith(a, false) || a.CollidesWith(a, true) {
		t.Error("a sprite must never collide with itself")
	}
}

func TestCollisionModeGates(t *testing.T) {
	a := boxSprite(t, "a", 2, 0, 0)
	b := boxSprite(t, "b", 2, 1, 1)

	b.Blocking = NotBlocked
	if a.CollidesWith(b, false) {
		t.Error("NotBlocked sprite collided")
	}
	if !a.CollidesWith(b, true) {
		t.Error("ignoreMode should bypass the blocking gate")
	}
	b.Blocking = BoundingBox

	b.Interaction = Intangible
	if a.CollidesWith(b, false) {
		t.Error("Intangible sprite collided")
	}
	b.Interaction = Removed
	if a.CollidesWith(b, false) {
		t.Error("Removed sprite collided")
	}
	if !a.CollidesWith(b, true) {
		t.Error("ignoreMode should bypass the interaction gate")
	}

	b.Interaction = Invisible
	if !a.CollidesWith(b, false) {
		t.Error("Invisible sprites are collidable")
	}
}

func TestCollisionPixelPerfect(t *testing.T) {
	// Two diagonal half-sprites: their boxes overlap fully but their
	// opaque pixels never align.
	a := mustSprite(t, "a", Grid{
		{1, -1},
		{-1, -1},
	})
	a.Blocking = PixelPerfect
	b := mustSprite(t, "b", Grid{
		{-1, -1},
		{-1, 1},
	})
	b.Blocking = PixelPerfect

	if a.CollidesWith(b, false) {
		t.Error("disjoint pixels should not collide")
	}
	if err := b.SetBuffer(Grid{{2, -1}, {-1, 1}}); err != nil {
		t.Fatal(err)
	}
	if !a.CollidesWith(b, false) {
		t.Error("aligned opaque pixels should collide")
	}
}

func TestCollisionPixelPerfectAgainstBox(t *testing.T) {
	// One PixelPerfect operand is enough to force the pixel scan.
	a := mustSprite(t, "a", Grid{
		{-1, -1},
		{-1, 1},
	})
	a.Blocking = PixelPerfect
	b := boxSprite(t, "b", 1, 0, 0)

	if a.CollidesWith(b, false) {
		t.Error("box overlaps only a transparent pixel")
	}
	b.X, b.Y = 1, 1
	if !a.CollidesWith(b, false) {
		t.Error("box over the opaque pixel should collide")
	}
}

func TestCollisionBorderIsOpaque(t *testing.T) {
	a := mustSprite(t, "a", Grid{{Border}})
	a.Blocking = PixelPerfect
	b := boxSprite(t, "b", 1, 0, 0)
	if !a.CollidesWith(b, false) {
		t.Error("Border pixels should collide")
	}
}

func TestCollisionHonorsTransforms(t *testing.T) {
	// A 1x3 bar rotated 90° becomes 3x1 and reaches a sprite below it.
	a := mustSprite(t, "a", Grid{{1, 1, 1}})
	a.Blocking = BoundingBox
	b := boxSprite(t, "b", 1, 0, 2)

	if a.CollidesWith(b, false) {
		t.Error("horizontal bar should not reach (0, 2)")
	}
	if err := a.SetRotation(90); err != nil {
		t.Fatal(err)
	}
	if !a.CollidesWith(b, false) {
		t.Error("vertical bar should reach (0, 2)")
	}
}

func TestCollisionSymmetric(t *testing.T) {
	sprites := []*Sprite{
		boxSprite(t, "box", 2, 1, 1),
		boxSprite(t, "far", 2, 4, 4),
	}
	pp := mustSprite(t, "pp", Grid{
		{1, -1},
		{-1, 1},
	})
	pp.Blocking = PixelPerfect
	pp.X, pp.Y = 2, 2
	sprites = append(sprites, pp)

	for _, ignore := range []bool{false, true} {
		for _, a := range sprites {
			for _, b := range sprites {
				if a.CollidesWith(b, ignore) != b.CollidesWith(a, ignore) {
					t.Errorf("collision asymmetric for %s vs %s (ignore=%v)", a.Name, b.Name, ignore)
				}
			}
		}
	}
}
