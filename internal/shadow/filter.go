package shadow

import "math"

// Dedupe drops points that lie within tol (per axis) of the previously kept
// point. Input order is preserved and the input slice is not modified.
// Hosts run this on solver output before drawing; the bracketing rays land
// on the same corner more often than not.
func Dedupe(points []Point, tol float64) []Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, 0, len(points))
	out = append(out, points[0])
	for _, p := range points[1:] {
		last := out[len(out)-1]
		if math.Abs(p.X-last.X) < tol && math.Abs(p.Y-last.Y) < tol {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Triangle is one slice of a triangle fan.
type Triangle struct {
	A, B, C Vec
}

// Fan triangulates an angle-sorted polygon around origin. The closing
// triangle (last, first) is included; with fewer than two points there is
// nothing to draw.
func Fan(origin Vec, points []Point) []Triangle {
	n := len(points)
	if n < 2 {
		return nil
	}
	tris := make([]Triangle, 0, n)
	for i := 0; i < n-1; i++ {
		tris = append(tris, Triangle{A: origin, B: points[i].Vec(), C: points[i+1].Vec()})
	}
	tris = append(tris, Triangle{A: origin, B: points[n-1].Vec(), C: points[0].Vec()})
	return tris
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs((t.B.X-t.A.X)*(t.C.Y-t.A.Y)-(t.C.X-t.A.X)*(t.B.Y-t.A.Y)) / 2
}
