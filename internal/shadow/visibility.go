package shadow

import (
	"fmt"
	"math"
	"sort"
)

// Point is one vertex of a visibility polygon. Angle is measured from the
// query origin to (X, Y) and is the sort key of the polygon.
type Point struct {
	Angle float64
	X, Y  float64
}

// Vec returns the position of the point.
func (p Point) Vec() Vec { return Vec{p.X, p.Y} }

// Result is the output of one visibility query.
type Result struct {
	Points   []Point // sorted ascending by Angle, duplicates included
	RaysCast int
	RaysHit  int
}

// Solver computes visibility polygons by casting three rays at every edge
// endpoint: one straight at it and two offset by Epsilon either side, so
// that light slips past corners.
//
// By default rays are half-lines and maxRadius only scales the direction
// vector. With Clip set, rays stop at maxRadius and only edges whose bounds
// fall within the radius are considered.
type Solver struct {
	Epsilon float64 // bracketing offset in radians; 0 means DefaultEpsilon
	Clip    bool
}

// ComputeVisibility returns the angle-sorted visibility points around
// origin using the default solver.
func ComputeVisibility(origin Vec, edges []Edge, maxRadius float64) ([]Point, error) {
	res, err := Solver{}.Solve(origin, edges, maxRadius)
	if err != nil {
		return nil, err
	}
	return res.Points, nil
}

// Solve runs one visibility query. It does not modify edges and keeps no
// state between calls.
func (s Solver) Solve(origin Vec, edges []Edge, maxRadius float64) (Result, error) {
	if !(maxRadius > 0) || math.IsInf(maxRadius, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrBadRadius, maxRadius)
	}
	eps := s.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}

	candidates := edges
	if s.Clip {
		candidates = NewEdgeIndex(edges).Within(origin, maxRadius)
	}

	res := Result{Points: make([]Point, 0, len(candidates)*6)}
	for _, e := range candidates {
		for _, target := range [2]Vec{e.Start, e.End} {
			base := math.Atan2(target.Y-origin.Y, target.X-origin.X)
			for _, a := range [3]float64{base - eps, base, base + eps} {
				res.RaysCast++
				p, ok := castRay(origin, a, maxRadius, candidates, s.Clip)
				if !ok {
					continue
				}
				res.RaysHit++
				res.Points = append(res.Points, p)
			}
		}
	}

	sort.SliceStable(res.Points, func(i, j int) bool {
		return res.Points[i].Angle < res.Points[j].Angle
	})
	return res, nil
}

// CastRay casts a single half-line from origin at angle and returns the
// first edge hit.
func CastRay(origin Vec, angle, maxRadius float64, edges []Edge) (Point, bool) {
	return castRay(origin, angle, maxRadius, edges, false)
}

func castRay(origin Vec, angle, maxRadius float64, edges []Edge, clip bool) (Point, bool) {
	ray := Vec{maxRadius * math.Cos(angle), maxRadius * math.Sin(angle)}

	minT1 := math.Inf(1)
	for _, e := range edges {
		t1, ok := intersectRay(origin, ray, e)
		if !ok || (clip && t1 > 1) {
			continue
		}
		if t1 < minT1 {
			minT1 = t1
		}
	}
	if math.IsInf(minT1, 1) {
		return Point{}, false
	}

	px := origin.X + ray.X*minT1
	py := origin.Y + ray.Y*minT1
	return Point{Angle: angleTo(origin, px, py), X: px, Y: py}, true
}

// intersectRay solves origin + ray*t1 = e.Start + (e.End-e.Start)*t2. The
// hit is valid for t1 > 0 and t2 in [0, 1]; parallel and zero-length pairs
// never hit.
func intersectRay(origin, ray Vec, e Edge) (float64, bool) {
	sdx := e.End.X - e.Start.X
	sdy := e.End.Y - e.Start.Y

	denom := sdx*ray.Y - sdy*ray.X
	scale := math.Hypot(sdx, sdy) * math.Hypot(ray.X, ray.Y)
	if math.Abs(denom) <= parallelEpsilon*scale {
		return 0, false
	}

	t2 := (ray.X*(e.Start.Y-origin.Y) + ray.Y*(origin.X-e.Start.X)) / denom
	if t2 < 0 || t2 > 1 {
		return 0, false
	}

	// Solve t1 on the dominant axis of the ray so vertical and horizontal
	// rays never divide by zero.
	var t1 float64
	if math.Abs(ray.X) >= math.Abs(ray.Y) {
		t1 = (e.Start.X + sdx*t2 - origin.X) / ray.X
	} else {
		t1 = (e.Start.Y + sdy*t2 - origin.Y) / ray.Y
	}
	if !(t1 > 0) {
		return 0, false
	}
	return t1, true
}

// angleTo returns the heading from origin to (x, y) in (-pi, pi].
func angleTo(origin Vec, x, y float64) float64 {
	a := math.Atan2(y-origin.Y, x-origin.X)
	if a == -math.Pi {
		a = math.Pi
	}
	return a
}
