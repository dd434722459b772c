package demo

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

// hudLine is the counter line shown in the top-left corner.
func hudLine(raysCast, raysDrawn int) string {
	return fmt.Sprintf("Rays Cast: %d Rays Drawn: %d", raysCast, raysDrawn)
}

// pickCell returns the cell under v if it may be toggled. Boundary cells
// and points outside the grid are rejected.
func pickCell(grid *shadow.Grid, blockSize float64, v shadow.Vec) (int, int, bool) {
	col, row, ok := grid.CellAt(v.X, v.Y, blockSize)
	if !ok || grid.At(col, row).Boundary {
		return 0, 0, false
	}
	return col, row, true
}

// radialLight renders a warm light sprite of radius r whose alpha falls off
// quadratically from the centre to zero at the rim.
func radialLight(r int) *image.RGBA {
	size := 2*r + 1
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fr := float64(r)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x-r), float64(y-r)) / fr
			if d >= 1 {
				continue
			}
			k := (1 - d) * (1 - d)
			// Premultiplied alpha.
			a := k * 255
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(a),
				G: uint8(a * 0.92),
				B: uint8(a * 0.75),
				A: uint8(a),
			})
		}
	}
	return img
}

// sceneGeoJSON serialises the edge set and the current polygon.
func sceneGeoJSON(edges []shadow.Edge, origin shadow.Vec, points []shadow.Point) (string, error) {
	raw, err := shadow.FeatureCollection(edges, origin, points).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal scene: %w", err)
	}
	return string(raw), nil
}
