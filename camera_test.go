package pyre

import "testing"

func mustCamera(t *testing.T, width, height int, background, letterbox int8) *Camera {
	t.Helper()
	c, err := NewCamera(width, height, background, letterbox)
	if err != nil {
		t.Fatalf("NewCamera(%d, %d): %v", width, height, err)
	}
	return c
}

// demagnify recovers the raw viewport composite from a letterboxed frame.
func demagnify(t *testing.T, c *Camera, frame Grid) Grid {
	t.Helper()
	scale, xOffset, yOffset := c.scaleOffsets()
	raw := NewGrid(c.Width(), c.Height())
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			raw[y][x] = frame[yOffset+y*scale][xOffset+x*scale]
		}
	}
	return raw
}

func TestNewCameraValidation(t *testing.T) {
	_, err := NewCamera(0, 8, 0, 0)
	assertErrorIs(t, "zero width", err, ErrInvalidConfiguration)
	_, err = NewCamera(8, FrameSize+1, 0, 0)
	assertErrorIs(t, "oversized", err, ErrInvalidConfiguration)
	_, err = NewCamera(8, 8, Transparent, 0)
	assertErrorIs(t, "transparent background", err, ErrInvalidConfiguration)
}

func TestRenderDiamondScenario(t *testing.T) {
	c := mustCamera(t, 8, 8, 0, 0)
	diamond := mustSprite(t, "diamond", Grid{
		{-1, 1, 1, -1},
		{1, 2, 2, 1},
		{1, 2, 2, 1},
		{-1, 1, 1, -1},
	})
	diamond.X, diamond.Y = 2, 1

	frame := c.Render([]*Sprite{diamond})
	if frame.Width() != FrameSize || frame.Height() != FrameSize {
		t.Fatalf("frame = %dx%d, want %dx%d", frame.Width(), frame.Height(), FrameSize, FrameSize)
	}
	assertGrid(t, "diamond composite", demagnify(t, c, frame), Grid{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 1, 2, 2, 1, 0, 0},
		{0, 0, 1, 2, 2, 1, 0, 0},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	})
}

func TestRenderLetterboxInvariant(t *testing.T) {
	c := mustCamera(t, 10, 7, 3, 5)
	frame := c.Render(nil)
	if frame.Width() != FrameSize || frame.Height() != FrameSize {
		t.Fatalf("frame = %dx%d, want %dx%d", frame.Width(), frame.Height(), FrameSize, FrameSize)
	}

	// scale = min(64/10, 64/7) = 6; offsets (64-60)/2 = 2, (64-42)/2 = 11.
	scale, xOffset, yOffset := c.scaleOffsets()
	if scale != 6 || xOffset != 2 || yOffset != 11 {
		t.Fatalf("scale/offsets = %d/%d/%d, want 6/2/11", scale, xOffset, yOffset)
	}
	for y := 0; y < FrameSize; y++ {
		for x := 0; x < FrameSize; x++ {
			inside := x >= xOffset && x < xOffset+10*scale &&
				y >= yOffset && y < yOffset+7*scale
			want := int8(5)
			if inside {
				want = 3
			}
			if frame[y][x] != want {
				t.Fatalf("cell (%d, %d) = %d, want %d", x, y, frame[y][x], want)
			}
		}
	}
}

func TestRenderLayerOrder(t *testing.T) {
	c := mustCamera(t, 2, 1, 0, 0)
	bottom := mustSprite(t, "bottom", Grid{{1, 1}})
	bottom.Layer = 1
	top := mustSprite(t, "top", Grid{{2, -1}})
	top.Layer = 2

	// Listed top-first: the compositor must sort by layer, not list order.
	frame := c.Render([]*Sprite{top, bottom})
	assertGrid(t, "layered", demagnify(t, c, frame), Grid{{2, 1}})
}

func TestRenderVisibilityModes(t *testing.T) {
	c := mustCamera(t, 1, 1, 0, 0)
	s := mustSprite(t, "s", Grid{{7}})

	for _, tc := range []struct {
		mode InteractionMode
		want int8
	}{
		{Tangible, 7},
		{Intangible, 7},
		{Invisible, 0},
		{Removed, 0},
	} {
		s.Interaction = tc.mode
		frame := c.Render([]*Sprite{s})
		if got := demagnify(t, c, frame)[0][0]; got != tc.want {
			t.Errorf("%v: cell = %d, want %d", tc.mode, got, tc.want)
		}
	}
}

func TestRenderCameraOffset(t *testing.T) {
	c := mustCamera(t, 2, 2, 0, 0)
	c.X, c.Y = 5, 5
	s := mustSprite(t, "s", Grid{{9}})
	s.X, s.Y = 6, 5

	frame := c.Render([]*Sprite{s})
	assertGrid(t, "offset", demagnify(t, c, frame), Grid{
		{0, 9},
		{0, 0},
	})
}

func TestDisplayToGridRoundtrip(t *testing.T) {
	c := mustCamera(t, 10, 7, 0, 0)
	c.X, c.Y = 3, -2
	for worldY := c.Y; worldY < c.Y+7; worldY++ {
		for worldX := c.X; worldX < c.X+10; worldX++ {
			dx, dy, ok := c.GridToDisplay(worldX, worldY)
			if !ok {
				t.Fatalf("GridToDisplay(%d, %d) not ok", worldX, worldY)
			}
			gx, gy, ok := c.DisplayToGrid(dx, dy)
			if !ok || gx != worldX || gy != worldY {
				t.Fatalf("roundtrip (%d, %d) → (%d, %d) → (%d, %d, %v)",
					worldX, worldY, dx, dy, gx, gy, ok)
			}
		}
	}
}

func TestDisplayToGridLetterbox(t *testing.T) {
	c := mustCamera(t, 10, 7, 0, 0)
	// (0, 0) falls in the letterbox margin: xOffset=2, yOffset=11.
	if _, _, ok := c.DisplayToGrid(0, 0); ok {
		t.Error("letterbox point should map to none")
	}
	if _, _, ok := c.DisplayToGrid(2, 11); !ok {
		t.Error("first viewport cell should map")
	}
}

func TestGridToDisplayOutsideViewport(t *testing.T) {
	c := mustCamera(t, 4, 4, 0, 0)
	if _, _, ok := c.GridToDisplay(4, 0); ok {
		t.Error("cell outside the viewport should not map")
	}
	if _, _, ok := c.GridToDisplay(-1, 0); ok {
		t.Error("negative cell should not map")
	}
}

func TestOverlaysRunInOrder(t *testing.T) {
	c := mustCamera(t, 1, 1, 0, 0)
	c.PushOverlay(OverlayFunc(func(frame Grid) {
		frame[0][0] = 1
	}))
	c.PushOverlay(OverlayFunc(func(frame Grid) {
		frame[0][0]++
	}))
	frame := c.Render(nil)
	if frame[0][0] != 2 {
		t.Errorf("overlay result = %d, want 2", frame[0][0])
	}

	if c.PopOverlay() == nil {
		t.Fatal("PopOverlay returned nil")
	}
	frame = c.Render(nil)
	if frame[0][0] != 1 {
		t.Errorf("after pop = %d, want 1", frame[0][0])
	}
}

func TestBlitSpriteOverlay(t *testing.T) {
	c := mustCamera(t, 1, 1, 0, 0)
	marker := mustSprite(t, "marker", Grid{{-1, 8}})
	marker.X, marker.Y = 10, 20
	c.PushOverlay(OverlayFunc(func(frame Grid) {
		BlitSprite(frame, marker)
	}))

	frame := c.Render(nil)
	if frame[20][10] != 0 {
		t.Errorf("transparent overlay pixel overwrote the frame: %d", frame[20][10])
	}
	if frame[20][11] != 8 {
		t.Errorf("overlay pixel = %d, want 8", frame[20][11])
	}
}
