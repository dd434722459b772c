package shadow

import (
	"fmt"
	"strings"
)

// Layout characters.
const (
	layoutEmpty    = '.'
	layoutBlock    = '#'
	layoutBoundary = 'B'
)

// ParseLayout builds a grid from ASCII rows:
//
//	'#'       occupied
//	'B'       occupied boundary
//	'.', ' '  empty
//
// Blank leading and trailing lines are ignored; all other rows must have
// the same width.
func ParseLayout(text string) (*Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}

	cols := len(lines[0])
	g, err := NewGrid(cols, len(lines))
	if err != nil {
		return nil, err
	}
	for row, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrBadLayout, row, len(line), cols)
		}
		for col := 0; col < cols; col++ {
			c := &g.Cells[row*cols+col]
			switch line[col] {
			case layoutEmpty, ' ':
			case layoutBlock:
				c.Occupied = true
			case layoutBoundary:
				c.Occupied = true
				c.Boundary = true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrBadLayout, line[col], col, row)
			}
		}
	}
	return g, nil
}

// Layout renders the grid in the format accepted by ParseLayout.
func (g *Grid) Layout() string {
	var sb strings.Builder
	sb.Grow((g.Cols + 1) * g.Rows)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := &g.Cells[row*g.Cols+col]
			switch {
			case c.Boundary && c.Occupied:
				sb.WriteByte(layoutBoundary)
			case c.Occupied:
				sb.WriteByte(layoutBlock)
			default:
				sb.WriteByte(layoutEmpty)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
