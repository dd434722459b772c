package shadow

import (
	"errors"
	"math"
	"sort"
	"testing"
)

// roomEdges builds a bordered room of cols x rows cells and returns its
// edges along with the grid.
func roomEdges(t *testing.T, cols, rows int, b float64, blocks ...[2]int) (*Grid, []Edge) {
	t.Helper()
	g := mustGrid(t, cols, rows)
	g.AddBorder()
	for _, c := range blocks {
		if err := g.SetOccupied(c[0], c[1], true); err != nil {
			t.Fatal(err)
		}
	}
	var pool EdgePool
	return g, mustRebuild(t, g, &pool, b)
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestComputeVisibility_EmptyRoom(t *testing.T) {
	_, edges := roomEdges(t, 6, 6, 16)
	origin := Vec{48, 48}

	pts, err := ComputeVisibility(origin, edges, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) == 0 {
		t.Fatal("expected visibility points")
	}

	// The visible area is the 2x2 hole spanning [32,64] on both axes.
	for _, p := range pts {
		onX := (near(p.X, 32, 1e-6) || near(p.X, 64, 1e-6)) && p.Y >= 32-1e-6 && p.Y <= 64+1e-6
		onY := (near(p.Y, 32, 1e-6) || near(p.Y, 64, 1e-6)) && p.X >= 32-1e-6 && p.X <= 64+1e-6
		if !onX && !onY {
			t.Fatalf("point (%.4f,%.4f) is not on the room's inner boundary", p.X, p.Y)
		}
	}

	corners := Dedupe(pts, DedupeTolerance)
	if len(corners) != 4 {
		t.Fatalf("expected 4 corners after dedupe, got %d: %v", len(corners), corners)
	}
	want := []Vec{{32, 32}, {64, 32}, {64, 64}, {32, 64}}
	for i, c := range corners {
		if !near(c.X, want[i].X, 0.01) || !near(c.Y, want[i].Y, 0.01) {
			t.Errorf("corner %d = (%.3f,%.3f), want %v", i, c.X, c.Y, want[i])
		}
	}

	if a := VisibleArea(pts); !near(a, 32*32, 1) {
		t.Fatalf("visible area=%.2f, want %d", a, 32*32)
	}
}

func TestComputeVisibility_Occlusion(t *testing.T) {
	// Interior spans [32,160] on both axes; the pillar sits at [112,128]x[80,96].
	_, edges := roomEdges(t, 12, 12, 16, [2]int{7, 5})
	origin := Vec{56, 88}

	pts, err := ComputeVisibility(origin, edges, 1000)
	if err != nil {
		t.Fatal(err)
	}

	hasPoint := func(x, y, tol float64) bool {
		for _, p := range pts {
			if near(p.X, x, tol) && near(p.Y, y, tol) {
				return true
			}
		}
		return false
	}

	// Near corners of the pillar replace the hidden wall span.
	if !hasPoint(112, 80, 0.01) || !hasPoint(112, 96, 0.01) {
		t.Fatal("pillar's near corners should be polygon vertices")
	}

	// Shadow on the east wall (x=160) runs from y=88-104*8/56 to y=88+104*8/56.
	shadowTop := 88 - 104.0*8/56
	shadowBottom := 88 + 104.0*8/56
	for _, p := range pts {
		if near(p.X, 160, 1e-6) && p.Y > shadowTop+0.5 && p.Y < shadowBottom-0.5 {
			t.Fatalf("point (%.3f,%.3f) lies in the pillar's shadow", p.X, p.Y)
		}
	}
	if !hasPoint(160, shadowTop, 0.1) || !hasPoint(160, shadowBottom, 0.1) {
		t.Fatal("bracketing rays should reach the wall just past the pillar corners")
	}

	// Points on the pillar's far side are never visible.
	for _, p := range pts {
		if p.X > 112+1e-6 && p.X < 128 && p.Y > 80 && p.Y < 96 {
			t.Fatalf("point (%.3f,%.3f) is inside the pillar", p.X, p.Y)
		}
	}
}

func TestComputeVisibility_AngleMonotonic(t *testing.T) {
	g, err := ParseLayout(`
..............
.BBBBBBBBBBBB.
.B..........B.
.B.##....#..B.
.B.#.....#..B.
.B.....###..B.
.B..#.......B.
.B......##..B.
.BBBBBBBBBBBB.
..............
`)
	if err != nil {
		t.Fatal(err)
	}
	var pool EdgePool
	edges := mustRebuild(t, g, &pool, 16)

	for _, origin := range []Vec{{40, 40}, {100, 72}, {180, 130}, {70.5, 120.25}} {
		pts, err := ComputeVisibility(origin, edges, DefaultRadius)
		if err != nil {
			t.Fatal(err)
		}
		if !sort.SliceIsSorted(pts, func(i, j int) bool { return pts[i].Angle < pts[j].Angle }) {
			t.Fatalf("points from %v are not sorted by angle", origin)
		}
		for i, p := range pts {
			if p.Angle <= -math.Pi || p.Angle > math.Pi {
				t.Fatalf("point %d angle %.6f outside (-pi, pi]", i, p.Angle)
			}
			if want := math.Atan2(p.Y-origin.Y, p.X-origin.X); !near(p.Angle, want, 1e-9) && !near(math.Abs(p.Angle), math.Pi, 1e-9) {
				t.Fatalf("point %d angle %.6f, want %.6f", i, p.Angle, want)
			}
		}
	}
}

func TestComputeVisibility_RayCounts(t *testing.T) {
	_, edges := roomEdges(t, 6, 6, 16)
	res, err := Solver{}.Solve(Vec{48, 48}, edges, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if res.RaysCast != len(edges)*6 {
		t.Fatalf("rays cast=%d, want %d", res.RaysCast, len(edges)*6)
	}
	if res.RaysHit != len(res.Points) {
		t.Fatalf("rays hit=%d but %d points", res.RaysHit, len(res.Points))
	}
	// Inside a closed room every ray hits something.
	if res.RaysHit != res.RaysCast {
		t.Fatalf("closed room: %d of %d rays hit", res.RaysHit, res.RaysCast)
	}
}

func TestComputeVisibility_RejectsBadRadius(t *testing.T) {
	_, edges := roomEdges(t, 6, 6, 16)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := ComputeVisibility(Vec{48, 48}, edges, r); !errors.Is(err, ErrBadRadius) {
			t.Errorf("radius %v: err=%v, want ErrBadRadius", r, err)
		}
	}
}

func TestComputeVisibility_NoEdges(t *testing.T) {
	pts, err := ComputeVisibility(Vec{0, 0}, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 0 {
		t.Fatalf("expected no points, got %d", len(pts))
	}
}

func TestIntersectRay_BehindOriginRejected(t *testing.T) {
	e := Edge{Start: Vec{-10, -5}, End: Vec{-10, 5}}
	if _, ok := intersectRay(Vec{0, 0}, Vec{100, 0}, e); ok {
		t.Fatal("edge behind the origin must not register a hit")
	}
	if _, ok := CastRay(Vec{0, 0}, 0, 100, []Edge{e}); ok {
		t.Fatal("CastRay should miss an edge behind the origin")
	}
	// The same edge is hit when the ray turns round.
	p, ok := CastRay(Vec{0, 0}, math.Pi, 100, []Edge{e})
	if !ok || !near(p.X, -10, 1e-9) || !near(p.Y, 0, 1e-9) {
		t.Fatalf("reverse ray: hit=%t at (%.4f,%.4f), want (-10,0)", ok, p.X, p.Y)
	}
}

func TestIntersectRay_ParallelExcluded(t *testing.T) {
	e := Edge{Start: Vec{0, 0}, End: Vec{10, 0}}
	origin := Vec{-5, 0}
	if _, ok := intersectRay(origin, Vec{100, 0}, e); ok {
		t.Fatal("ray along the edge's own direction must be skipped")
	}
	if _, ok := CastRay(origin, 0, 100, []Edge{e}); ok {
		t.Fatal("CastRay along a collinear edge should find nothing")
	}
	if _, ok := intersectRay(origin, Vec{100, 0}, Edge{Start: Vec{3, 3}, End: Vec{3, 3}}); ok {
		t.Fatal("zero-length edge must be skipped")
	}
}

func TestIntersectRay_VerticalRay(t *testing.T) {
	e := Edge{Start: Vec{-5, 10}, End: Vec{5, 10}}
	p, ok := CastRay(Vec{0, 0}, math.Pi/2, 50, []Edge{e})
	if !ok {
		t.Fatal("vertical ray should hit the horizontal edge")
	}
	if !near(p.X, 0, 1e-9) || !near(p.Y, 10, 1e-9) {
		t.Fatalf("hit at (%.6f,%.6f), want (0,10)", p.X, p.Y)
	}
}

func TestCastRay_NearestHitWins(t *testing.T) {
	edges := []Edge{
		{Start: Vec{30, -5}, End: Vec{30, 5}},
		{Start: Vec{10, -5}, End: Vec{10, 5}},
		{Start: Vec{20, -5}, End: Vec{20, 5}},
	}
	p, ok := CastRay(Vec{0, 0}, 0, 1, edges)
	if !ok || !near(p.X, 10, 1e-9) {
		t.Fatalf("hit=%t x=%.4f, want nearest edge at x=10", ok, p.X)
	}
}

func TestSolver_ClipKeepsPointsWithinRadius(t *testing.T) {
	g := mustGrid(t, 20, 20)
	_ = g.SetOccupied(2, 2, true)
	_ = g.SetOccupied(17, 17, true)
	var pool EdgePool
	edges := mustRebuild(t, g, &pool, 16)
	origin := Vec{72, 72}

	clipped, err := Solver{Clip: true}.Solve(origin, edges, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(clipped.Points) == 0 {
		t.Fatal("nearby block should be visible")
	}
	for _, p := range clipped.Points {
		if d := p.Vec().Dist(origin); d > 60+1e-9 {
			t.Fatalf("clipped point at distance %.2f beyond radius", d)
		}
	}

	open, err := Solver{}.Solve(origin, edges, 60)
	if err != nil {
		t.Fatal(err)
	}
	farthest := 0.0
	for _, p := range open.Points {
		farthest = math.Max(farthest, p.Vec().Dist(origin))
	}
	if farthest <= 60 {
		t.Fatalf("unclipped rays are half-lines and should reach the far block, farthest=%.2f", farthest)
	}
}

func TestSolver_CustomEpsilon(t *testing.T) {
	_, edges := roomEdges(t, 6, 6, 16)
	res, err := Solver{Epsilon: 0.05}.Solve(Vec{48, 48}, edges, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// A wide bracket spreads each corner cluster beyond the dedupe tolerance.
	if n := len(Dedupe(res.Points, DedupeTolerance)); n <= 4 {
		t.Fatalf("expected more than 4 distinct points with a wide epsilon, got %d", n)
	}
}
