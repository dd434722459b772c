package demo

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

var (
	boundaryColor = color.RGBA{R: 110, G: 20, B: 20, A: 255}
	blockColor    = color.RGBA{R: 40, G: 70, B: 200, A: 255}
	edgeColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	endpointColor = color.RGBA{R: 230, G: 50, B: 50, A: 255}
	hudColor      = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// cellColor returns the fill colour for an occupied cell.
func cellColor(c shadow.Cell) color.RGBA {
	if c.Boundary {
		return boundaryColor
	}
	return blockColor
}

// drawLight positions the radial light at the source, keeps only the part
// inside the visibility fan and composites the result onto the screen.
func (g *Game) drawLight(screen *ebiten.Image) {
	g.mask.Clear()
	path := fanPath(g.origin, g.points)
	vector.FillPath(g.mask, path, &vector.FillOptions{FillRule: vector.FillRuleNonZero}, &vector.DrawPathOptions{AntiAlias: true})

	g.lit.Clear()
	lo := &ebiten.DrawImageOptions{}
	r := float64(g.cfg.LightRadius)
	lo.GeoM.Translate(g.origin.X-r, g.origin.Y-r)
	g.lit.DrawImage(g.light, lo)

	mo := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	g.lit.DrawImage(g.mask, mo)

	screen.DrawImage(g.lit, nil)
}

// fanPath builds one closed sub-path per fan triangle. All triangles wind
// the same way so the non-zero rule fills their union.
func fanPath(origin shadow.Vec, points []shadow.Point) *vector.Path {
	var path vector.Path
	for _, t := range shadow.Fan(origin, points) {
		path.MoveTo(float32(t.A.X), float32(t.A.Y))
		path.LineTo(float32(t.B.X), float32(t.B.Y))
		path.LineTo(float32(t.C.X), float32(t.C.Y))
		path.Close()
	}
	return &path
}

func (g *Game) drawBlocks(screen *ebiten.Image) {
	grid := g.world.Grid()
	b := float32(g.world.BlockSize())
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			c := grid.At(col, row)
			if !c.Occupied {
				continue
			}
			vector.FillRect(screen, float32(col)*b, float32(row)*b, b, b, cellColor(*c), false)
		}
	}
}

func drawEdges(screen *ebiten.Image, edges []shadow.Edge) {
	for _, e := range edges {
		vector.StrokeLine(screen, float32(e.Start.X), float32(e.Start.Y),
			float32(e.End.X), float32(e.End.Y), 1.0, edgeColor, false)
		vector.FillCircle(screen, float32(e.Start.X), float32(e.Start.Y), 3, endpointColor, false)
		vector.FillCircle(screen, float32(e.End.X), float32(e.End.Y), 3, endpointColor, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, hudLine(g.raysCast, len(g.points)), g.face, op)

	if g.statusTimer > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 4, g.height-18)
	}
}
