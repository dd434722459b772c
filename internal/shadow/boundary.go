package shadow

import (
	"fmt"
	"math"
)

// Rebuild regenerates the edge pool from the cells in region r. blockSize
// is the world size of one cell.
//
// The pool is cleared first, so every edge index obtained before the call
// is invalid afterwards. The outer ring of r is never given edges; it only
// serves as the neighbourhood of the ring inside it. Faces that continue a
// straight run already started by the north (vertical faces) or west
// (horizontal faces) neighbour extend that edge instead of adding a new one.
func Rebuild(g *Grid, pool *EdgePool, r Region, blockSize float64) error {
	if !g.Contains(r) {
		return fmt.Errorf("%w: region (%d,%d %dx%d) in %dx%d grid",
			ErrRegionOutOfBounds, r.X, r.Y, r.W, r.H, g.Cols, g.Rows)
	}
	if !(blockSize > 0) || math.IsInf(blockSize, 0) {
		return fmt.Errorf("%w: %v", ErrBadBlockSize, blockSize)
	}

	pool.reset()
	for row := r.Y; row < r.Y+r.H; row++ {
		for col := r.X; col < r.X+r.W; col++ {
			g.Cells[row*g.Cols+col].clearEdges()
		}
	}

	// Row-major from the top-left: north and west neighbours are final by
	// the time a cell is visited.
	for row := r.Y + 1; row < r.Y+r.H-1; row++ {
		for col := r.X + 1; col < r.X+r.W-1; col++ {
			if !g.Cells[row*g.Cols+col].Occupied {
				continue
			}
			for d := North; d < directionCount; d++ {
				dx, dy := d.offset()
				if g.Occupied(col+dx, row+dy) {
					continue
				}
				addFace(g, pool, col, row, d, blockSize)
			}
		}
	}
	return nil
}

// addFace gives face d of (col, row) an edge, either by growing the edge of
// the neighbour that precedes it in scan order or by starting a new one.
func addFace(g *Grid, pool *EdgePool, col, row int, d Direction, b float64) {
	cell := &g.Cells[row*g.Cols+col]

	var prev *Cell
	vertical := d == West || d == East
	if vertical {
		prev = &g.Cells[(row-1)*g.Cols+col]
	} else {
		prev = &g.Cells[row*g.Cols+col-1]
	}

	if id, ok := prev.Edge(d); ok {
		e := &pool.edges[id]
		if vertical {
			e.End.Y += b
		} else {
			e.End.X += b
		}
		cell.EdgeID[d] = id
		cell.EdgeExists[d] = true
		return
	}

	x := float64(col) * b
	y := float64(row) * b
	var e Edge
	switch d {
	case West:
		e = Edge{Start: Vec{x, y}, End: Vec{x, y + b}}
	case East:
		e = Edge{Start: Vec{x + b, y}, End: Vec{x + b, y + b}}
	case North:
		e = Edge{Start: Vec{x, y}, End: Vec{x + b, y}}
	case South:
		e = Edge{Start: Vec{x, y + b}, End: Vec{x + b, y + b}}
	}
	cell.EdgeID[d] = pool.push(e)
	cell.EdgeExists[d] = true
}
