package pyre

import "sort"

// Overlay is a renderer invoked after the letterboxing pass to draw
// directly onto the final 64×64 frame. Overlays run in registration order
// and typically use BlitSprite for the standard non-transparent-overwrite
// rule.
type Overlay interface {
	RenderOverlay(frame Grid)
}

// OverlayFunc adapts a plain function to the Overlay interface.
type OverlayFunc func(frame Grid)

// RenderOverlay calls f.
func (f OverlayFunc) RenderOverlay(frame Grid) { f(frame) }

// Camera is a world-space viewport that composites sprites into a fixed
// FrameSize × FrameSize output frame. Viewports smaller than the frame are
// magnified by the largest integer factor that fits, centered, and padded
// with the letterbox color.
type Camera struct {
	// X and Y are the world coordinates of the viewport's top-left cell.
	X, Y int

	// Background fills viewport cells no sprite covers.
	Background int8

	// Letterbox fills frame cells outside the magnified viewport.
	Letterbox int8

	width, height int
	overlays      []Overlay
}

// NewCamera creates a camera with the given viewport size and colors.
// Width and height must be in [1, FrameSize].
func NewCamera(width, height int, background, letterbox int8) (*Camera, error) {
	if width < 1 || width > FrameSize || height < 1 || height > FrameSize {
		return nil, errInvalid("camera viewport %dx%d outside [1, %d]", width, height, FrameSize)
	}
	if background < 0 || letterbox < 0 {
		return nil, errInvalid("camera colors must be palette indices, got background %d letterbox %d",
			background, letterbox)
	}
	return &Camera{
		width:      width,
		height:     height,
		Background: background,
		Letterbox:  letterbox,
	}, nil
}

// Width returns the viewport width.
func (c *Camera) Width() int { return c.width }

// Height returns the viewport height.
func (c *Camera) Height() int { return c.height }

// PushOverlay appends an overlay renderer to the stack.
func (c *Camera) PushOverlay(o Overlay) {
	c.overlays = append(c.overlays, o)
}

// PopOverlay removes and returns the most recently pushed overlay, or nil
// if the stack is empty.
func (c *Camera) PopOverlay() Overlay {
	if len(c.overlays) == 0 {
		return nil
	}
	o := c.overlays[len(c.overlays)-1]
	c.overlays[len(c.overlays)-1] = nil
	c.overlays = c.overlays[:len(c.overlays)-1]
	return o
}

// ClearOverlays drops every registered overlay.
func (c *Camera) ClearOverlays() {
	c.overlays = nil
}

// scaleOffsets returns the integer magnification and centering offsets used
// by the letterboxing pass.
func (c *Camera) scaleOffsets() (scale, xOffset, yOffset int) {
	scale = min(FrameSize/c.width, FrameSize/c.height)
	xOffset = (FrameSize - c.width*scale) / 2
	yOffset = (FrameSize - c.height*scale) / 2
	return scale, xOffset, yOffset
}

// Render composites the given sprites into a FrameSize × FrameSize frame:
// a raw composite at viewport resolution (visible sprites only, ascending
// layer, non-transparent overwrite), integer-magnified, centered on a
// letterbox-colored canvas, then handed to each overlay in order.
func (c *Camera) Render(sprites []*Sprite) Grid {
	raw := NewGrid(c.width, c.height)
	raw.Fill(c.Background)

	visible := make([]*Sprite, 0, len(sprites))
	for _, s := range sprites {
		if s.Interaction.Rendered() {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Layer < visible[j].Layer
	})
	for _, s := range visible {
		blit(raw, s.Render(), s.X-c.X, s.Y-c.Y)
	}

	scale, xOffset, yOffset := c.scaleOffsets()
	frame := NewGrid(FrameSize, FrameSize)
	frame.Fill(c.Letterbox)
	for y := 0; y < c.height*scale; y++ {
		src := raw[y/scale]
		dst := frame[yOffset+y]
		for x := 0; x < c.width*scale; x++ {
			dst[xOffset+x] = src[x/scale]
		}
	}

	for _, o := range c.overlays {
		o.RenderOverlay(frame)
	}
	return frame
}

// DisplayToGrid maps a frame coordinate back to the world coordinate of the
// viewport cell it displays. Points in the letterbox margin return ok=false.
func (c *Camera) DisplayToGrid(x, y int) (worldX, worldY int, ok bool) {
	scale, xOffset, yOffset := c.scaleOffsets()
	if x < xOffset || x >= xOffset+c.width*scale ||
		y < yOffset || y >= yOffset+c.height*scale {
		return 0, 0, false
	}
	return (x-xOffset)/scale + c.X, (y-yOffset)/scale + c.Y, true
}

// GridToDisplay maps a world coordinate to the top-left frame coordinate of
// the cell that displays it. Cells outside the viewport return ok=false.
func (c *Camera) GridToDisplay(worldX, worldY int) (x, y int, ok bool) {
	vx, vy := worldX-c.X, worldY-c.Y
	if vx < 0 || vx >= c.width || vy < 0 || vy >= c.height {
		return 0, 0, false
	}
	scale, xOffset, yOffset := c.scaleOffsets()
	return vx*scale + xOffset, vy*scale + yOffset, true
}

// BlitSprite draws a sprite's rendered buffer onto a frame with the
// standard non-transparent-overwrite rule, for use by overlays. The
// sprite's position is interpreted in frame coordinates.
func BlitSprite(frame Grid, s *Sprite) {
	blit(frame, s.Render(), s.X, s.Y)
}
