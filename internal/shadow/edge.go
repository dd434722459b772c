package shadow

import "math"

// Vec is a point or direction in world coordinates.
type Vec struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Edge is a directed, axis-aligned boundary segment in world coordinates.
type Edge struct {
	Start Vec
	End   Vec
}

// Length returns the length of the edge.
func (e Edge) Length() float64 {
	return e.Start.Dist(e.End)
}

// Vertical reports whether the edge runs along the y axis.
func (e Edge) Vertical() bool {
	return e.Start.X == e.End.X
}

// EdgePool is the dense edge arena produced by Rebuild. Cells refer to
// edges by index; every rebuild clears the pool and bumps the generation,
// which invalidates indices handed out before.
type EdgePool struct {
	edges []Edge
	gen   uint64
}

// Len returns the number of edges in the pool.
func (p *EdgePool) Len() int { return len(p.edges) }

// Generation returns the rebuild counter. It starts at 0 and increases by
// one on every Rebuild.
func (p *EdgePool) Generation() uint64 { return p.gen }

// Edge returns the edge at index i.
func (p *EdgePool) Edge(i int) (Edge, bool) {
	if i < 0 || i >= len(p.edges) {
		return Edge{}, false
	}
	return p.edges[i], true
}

// Edges returns a copy of the pool contents.
func (p *EdgePool) Edges() []Edge {
	out := make([]Edge, len(p.edges))
	copy(out, p.edges)
	return out
}

// view returns the live slice for read-only use inside the package.
func (p *EdgePool) view() []Edge { return p.edges }

func (p *EdgePool) reset() {
	p.edges = p.edges[:0]
	p.gen++
}

func (p *EdgePool) push(e Edge) int {
	p.edges = append(p.edges, e)
	return len(p.edges) - 1
}
