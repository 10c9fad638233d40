package pyre

// Grid is a rectangular 2D buffer of palette indices, indexed [y][x].
// All rows have equal length. A nil or empty Grid has zero size.
type Grid [][]int8

// NewGrid returns a width×height grid filled with Transparent.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		row := make([]int8, width)
		for x := range row {
			row[x] = Transparent
		}
		g[y] = row
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = make([]int8, len(row))
		copy(out[y], row)
	}
	return out
}

// Fill sets every cell to the given color.
func (g Grid) Fill(color int8) {
	for _, row := range g {
		for x := range row {
			row[x] = color
		}
	}
}

// Equal reports whether g and other have identical dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y, row := range g {
		if len(row) != len(other[y]) {
			return false
		}
		for x, v := range row {
			if v != other[y][x] {
				return false
			}
		}
	}
	return true
}

// validateGrid checks that g is non-empty, rectangular, and holds only
// palette indices or sentinels (>= Border).
func validateGrid(g Grid) error {
	if len(g) == 0 || len(g[0]) == 0 {
		return errInvalid("empty buffer")
	}
	w := len(g[0])
	for y, row := range g {
		if len(row) != w {
			return errInvalid("ragged buffer: row %d has %d cells, want %d", y, len(row), w)
		}
		for x, v := range row {
			if v < Border {
				return errInvalid("cell (%d, %d) holds %d, below the Border sentinel", x, y, v)
			}
		}
	}
	return nil
}

// rotateQuarters rotates the grid clockwise by quarters*90 degrees.
// quarters must already be normalized to [0, 3].
func rotateQuarters(g Grid, quarters int) Grid {
	if quarters == 0 {
		return g
	}
	w, h := g.Width(), g.Height()
	var out Grid
	switch quarters {
	case 1: // out[x][h-1-y] = g[y][x]
		out = make(Grid, w)
		for y := range out {
			out[y] = make([]int8, h)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[x][h-1-y] = g[y][x]
			}
		}
	case 2:
		out = make(Grid, h)
		for y := range out {
			out[y] = make([]int8, w)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[h-1-y][w-1-x] = g[y][x]
			}
		}
	case 3:
		out = make(Grid, w)
		for y := range out {
			out[y] = make([]int8, h)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[w-1-x][y] = g[y][x]
			}
		}
	default:
		panic("pyre: rotateQuarters called with unnormalized quarter count")
	}
	return out
}

// mirrorRows flips the grid vertically (first row becomes last).
func mirrorRows(g Grid) Grid {
	h := g.Height()
	out := make(Grid, h)
	for y := 0; y < h; y++ {
		row := make([]int8, len(g[h-1-y]))
		copy(row, g[h-1-y])
		out[y] = row
	}
	return out
}

// mirrorCols flips the grid horizontally (first column becomes last).
func mirrorCols(g Grid) Grid {
	out := make(Grid, g.Height())
	for y, row := range g {
		w := len(row)
		mirrored := make([]int8, w)
		for x := 0; x < w; x++ {
			mirrored[x] = row[w-1-x]
		}
		out[y] = mirrored
	}
	return out
}

// magnify replicates each cell into a factor×factor block (nearest-neighbor
// upscale). factor must be >= 1.
func magnify(g Grid, factor int) Grid {
	if factor == 1 {
		return g
	}
	w, h := g.Width(), g.Height()
	out := make(Grid, h*factor)
	for y := range out {
		row := make([]int8, w*factor)
		src := g[y/factor]
		for x := range row {
			row[x] = src[x/factor]
		}
		out[y] = row
	}
	return out
}

// minify reduces the grid by the given factor using a mode filter: each
// non-overlapping factor×factor block collapses to its most frequent
// non-transparent value, ties broken by the numerically highest color. A
// block with strictly more Transparent cells than non-transparent ones
// collapses to Transparent. Border counts as an ordinary value.
//
// The factor must evenly divide both grid dimensions.
func minify(g Grid, factor int) (Grid, error) {
	w, h := g.Width(), g.Height()
	if w%factor != 0 || h%factor != 0 {
		return nil, errInvalid("down-scale factor %d does not divide %dx%d buffer", factor, w, h)
	}
	out := make(Grid, h/factor)
	for by := range out {
		row := make([]int8, w/factor)
		for bx := range row {
			row[bx] = blockMode(g, bx*factor, by*factor, factor)
		}
		out[by] = row
	}
	return out, nil
}

// blockMode computes the mode-filter value for one factor×factor block.
func blockMode(g Grid, x0, y0, factor int) int8 {
	counts := make(map[int8]int, factor)
	transparent := 0
	for y := y0; y < y0+factor; y++ {
		for x := x0; x < x0+factor; x++ {
			v := g[y][x]
			if v == Transparent {
				transparent++
				continue
			}
			counts[v]++
		}
	}
	opaque := factor*factor - transparent
	if transparent > opaque {
		return Transparent
	}
	best := Transparent
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v > best) {
			best = v
			bestCount = n
		}
	}
	return best
}

// blit overwrites dst cells with src's non-transparent cells, placing src's
// origin at (dx, dy) in dst coordinates. Cells falling outside dst are
// clipped.
func blit(dst, src Grid, dx, dy int) {
	dw, dh := dst.Width(), dst.Height()
	for sy, row := range src {
		ty := dy + sy
		if ty < 0 || ty >= dh {
			continue
		}
		for sx, v := range row {
			if v == Transparent {
				continue
			}
			tx := dx + sx
			if tx < 0 || tx >= dw {
				continue
			}
			dst[ty][tx] = v
		}
	}
}
