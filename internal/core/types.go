package core

// Cell is an integer coordinate on the play grid. Cells compare by value.
type Cell struct {
	X int
	Y int
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell { return Cell{X: c.X + dx, Y: c.Y + dy} }

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Square returns a Size of n by n cells.
func Square(n int) Size { return Size{W: n, H: n} }

// Contains reports whether c lies inside [0,W)x[0,H).
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.X < s.W && c.Y >= 0 && c.Y < s.H
}

// Area returns the number of cells in the grid.
func (s Size) Area() int { return s.W * s.H }
