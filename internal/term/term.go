// Package term renders a shadow.World in a terminal, one character per cell.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

const (
	glyphBoundary = '#'
	glyphBlock    = 'O'
	glyphLit      = '.'
	glyphDark     = ' '
	glyphViewer   = '@'
)

var (
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleBlock    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleLit      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleViewer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// State is the terminal session: a world, the viewer the light is cast
// from and an edit cursor.
type State struct {
	world  *shadow.World
	radius float64

	ViewerCol, ViewerRow int
	CursorCol, CursorRow int

	points   []shadow.Point
	raysCast int
}

// NewState places the viewer and the cursor at the centre cell and
// computes the initial visibility.
func NewState(w *shadow.World, radius float64) (*State, error) {
	if radius <= 0 {
		radius = shadow.DefaultRadius
	}
	cols, rows := w.Size()
	s := &State{
		world:     w,
		radius:    radius,
		ViewerCol: cols / 2,
		ViewerRow: rows / 2,
		CursorCol: cols / 2,
		CursorRow: rows / 2,
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Points returns the deduplicated visibility polygon from the viewer.
func (s *State) Points() []shadow.Point {
	return s.points
}

// refresh recomputes visibility from the centre of the viewer's cell.
func (s *State) refresh() error {
	res, err := s.world.Visibility(s.world.Center(s.ViewerCol, s.ViewerRow), s.radius)
	if err != nil {
		return err
	}
	s.points = shadow.Dedupe(res.Points, shadow.DedupeTolerance)
	s.raysCast = len(res.Points)
	return nil
}

// HandleKey applies one key press. It returns false when the session
// should end.
//
// Arrows move the viewer, h/j/k/l move the cursor and space toggles the
// cell under the cursor.
func (s *State) HandleKey(key tcell.Key, r rune) (bool, error) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false, nil
	case tcell.KeyUp:
		return true, s.moveViewer(0, -1)
	case tcell.KeyDown:
		return true, s.moveViewer(0, 1)
	case tcell.KeyLeft:
		return true, s.moveViewer(-1, 0)
	case tcell.KeyRight:
		return true, s.moveViewer(1, 0)
	case tcell.KeyRune:
	default:
		return true, nil
	}

	switch r {
	case 'q':
		return false, nil
	case 'h':
		s.moveCursor(-1, 0)
	case 'l':
		s.moveCursor(1, 0)
	case 'k':
		s.moveCursor(0, -1)
	case 'j':
		s.moveCursor(0, 1)
	case ' ':
		return true, s.toggleCursor()
	}
	return true, nil
}

// moveViewer steps the viewer unless the target cell is occupied.
func (s *State) moveViewer(dx, dy int) error {
	grid := s.world.Grid()
	col, row := s.ViewerCol+dx, s.ViewerRow+dy
	if !grid.InBounds(col, row) || grid.Occupied(col, row) {
		return nil
	}
	s.ViewerCol, s.ViewerRow = col, row
	return s.refresh()
}

func (s *State) moveCursor(dx, dy int) {
	cols, rows := s.world.Size()
	col, row := s.CursorCol+dx, s.CursorRow+dy
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.CursorCol, s.CursorRow = col, row
}

// toggleCursor flips the cursor cell. Boundary cells and the viewer's own
// cell are left alone.
func (s *State) toggleCursor() error {
	if s.CursorCol == s.ViewerCol && s.CursorRow == s.ViewerRow {
		return nil
	}
	if c := s.world.Grid().At(s.CursorCol, s.CursorRow); c == nil || c.Boundary {
		return nil
	}
	if err := s.world.Toggle(s.CursorCol, s.CursorRow); err != nil {
		return err
	}
	return s.refresh()
}

// Render draws the grid and a status line. Cells whose centre falls inside
// the visibility polygon are lit.
func Render(screen tcell.Screen, s *State) {
	screen.Clear()
	grid := s.world.Grid()

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			ch, style := s.cellGlyph(grid.At(col, row), col, row)
			if col == s.CursorCol && row == s.CursorRow {
				style = style.Reverse(true)
			}
			screen.SetContent(col, row, ch, nil, style)
		}
	}

	status := fmt.Sprintf("Rays Cast: %d Rays Drawn: %d  arrows=move hjkl=cursor space=toggle q=quit",
		s.raysCast, len(s.points))
	for i, r := range status {
		screen.SetContent(i, grid.Rows, r, nil, styleStatus)
	}
	screen.Show()
}

func (s *State) cellGlyph(c *shadow.Cell, col, row int) (rune, tcell.Style) {
	switch {
	case col == s.ViewerCol && row == s.ViewerRow:
		return glyphViewer, styleViewer
	case c.Boundary:
		return glyphBoundary, styleBoundary
	case c.Occupied:
		return glyphBlock, styleBlock
	case shadow.Contains(s.points, s.world.Center(col, row)):
		return glyphLit, styleLit
	}
	return glyphDark, tcell.StyleDefault
}

// Run drives the session until the user quits or the screen is closed.
func Run(screen tcell.Screen, s *State) error {
	Render(screen, s)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			more, err := s.HandleKey(ev.Key(), ev.Rune())
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		Render(screen, s)
	}
}
