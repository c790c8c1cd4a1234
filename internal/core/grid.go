package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Set marks c with v. Cells outside the grid are ignored.
func (g *ByteGrid) Set(c Cell, v uint8) {
	if c.X < 0 || c.X >= g.W || c.Y < 0 || c.Y >= g.H {
		return
	}
	g.data[g.Index(c.X, c.Y)] = v
}

// At returns the value stored at c, or 0 outside the grid.
func (g *ByteGrid) At(c Cell) uint8 {
	if c.X < 0 || c.X >= g.W || c.Y < 0 || c.Y >= g.H {
		return 0
	}
	return g.data[g.Index(c.X, c.Y)]
}

// Mark sets every listed cell to 1.
func (g *ByteGrid) Mark(cells ...Cell) {
	for _, c := range cells {
		g.Set(c, 1)
	}
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// RandomEmptyCell picks a cell whose mask value is zero. It makes up to
// maxAttempts uniform random draws and then scans the grid row by row from a
// random offset, so a free cell is always found when one exists. The boolean
// is false only when every cell is occupied; the zero Cell is returned then.
func RandomEmptyCell(rng *RNG, mask *ByteGrid, maxAttempts int) (Cell, bool) {
	total := mask.W * mask.H
	for i := 0; i < maxAttempts; i++ {
		c := Cell{X: rng.IntN(mask.W), Y: rng.IntN(mask.H)}
		if mask.data[mask.Index(c.X, c.Y)] == 0 {
			return c, true
		}
	}
	start := rng.IntN(total)
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		if mask.data[idx] == 0 {
			return Cell{X: idx % mask.W, Y: idx / mask.W}, true
		}
	}
	return Cell{}, false
}
