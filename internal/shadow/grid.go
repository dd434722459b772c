package shadow

import (
	"fmt"
	"math"
)

// Direction identifies one face of a cell.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	directionCount // sentinel
)

// String returns the compass name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// offset returns the (col, row) step towards the neighbour in direction d.
func (d Direction) offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

// Cell is one square of the occupancy grid.
type Cell struct {
	Occupied bool // a solid obstacle fills the cell
	Boundary bool // part of the arena border, drawn differently by hosts

	// EdgeID[d] indexes the edge pool and is only meaningful while
	// EdgeExists[d] is set. Both are rewritten by Rebuild.
	EdgeID     [directionCount]int
	EdgeExists [directionCount]bool
}

// Edge returns the pool index of the edge on face d, if one exists.
func (c *Cell) Edge(d Direction) (int, bool) {
	if !c.EdgeExists[d] {
		return 0, false
	}
	return c.EdgeID[d], true
}

func (c *Cell) clearEdges() {
	c.EdgeID = [directionCount]int{}
	c.EdgeExists = [directionCount]bool{}
}

// Region is a rectangle of cells: origin (X, Y) and size W x H.
type Region struct {
	X, Y int
	W, H int
}

// Grid is the occupancy grid. Cells are row-major: index = row*Cols + col.
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewGrid creates an empty grid of cols x rows cells.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, cols, rows)
	}
	return &Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}, nil
}

// Bounds returns the region covering the whole grid.
func (g *Grid) Bounds() Region {
	return Region{W: g.Cols, H: g.Rows}
}

// InBounds returns true if (col, row) is within the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Contains reports whether r lies entirely within the grid.
func (g *Grid) Contains(r Region) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 &&
		r.X+r.W <= g.Cols && r.Y+r.H <= g.Rows
}

// At returns a pointer to the cell at (col, row), or nil if out of bounds.
func (g *Grid) At(col, row int) *Cell {
	if !g.InBounds(col, row) {
		return nil
	}
	return &g.Cells[row*g.Cols+col]
}

// Occupied returns true if (col, row) holds an obstacle. Cells outside the
// grid are treated as empty.
func (g *Grid) Occupied(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.Cells[row*g.Cols+col].Occupied
}

// SetOccupied sets the occupancy of (col, row).
func (g *Grid) SetOccupied(col, row int, occupied bool) error {
	c := g.At(col, row)
	if c == nil {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOutOfBounds, col, row)
	}
	c.Occupied = occupied
	return nil
}

// Toggle flips the occupancy of (col, row) and returns the new state.
func (g *Grid) Toggle(col, row int) (bool, error) {
	c := g.At(col, row)
	if c == nil {
		return false, fmt.Errorf("%w: (%d,%d)", ErrCellOutOfBounds, col, row)
	}
	c.Occupied = !c.Occupied
	return c.Occupied, nil
}

// AddBorder marks the ring one cell inside the grid edge as occupied
// boundary cells. The outermost ring is never scanned by Rebuild, so this
// is the ring that closes the arena.
func (g *Grid) AddBorder() {
	if g.Cols < 3 || g.Rows < 3 {
		return
	}
	mark := func(col, row int) {
		c := &g.Cells[row*g.Cols+col]
		c.Occupied = true
		c.Boundary = true
	}
	for col := 1; col < g.Cols-1; col++ {
		mark(col, 1)
		mark(col, g.Rows-2)
	}
	for row := 1; row < g.Rows-1; row++ {
		mark(1, row)
		mark(g.Cols-2, row)
	}
}

// CellAt converts world coordinates to the cell containing them.
func (g *Grid) CellAt(x, y, blockSize float64) (int, int, bool) {
	if blockSize <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	col := int(math.Floor(x / blockSize))
	row := int(math.Floor(y / blockSize))
	if !g.InBounds(col, row) {
		return 0, 0, false
	}
	return col, row, true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Cols: g.Cols, Rows: g.Rows, Cells: cells}
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Occupied {
			n++
		}
	}
	return n
}
