package shadow

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// edgePad thickens axis-aligned edges so their bounding boxes have a
// non-zero extent on both axes, which rtreego requires.
const edgePad = 1e-6

// edgeEntry wraps a pool edge for R-tree storage.
type edgeEntry struct {
	index int
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *edgeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// EdgeIndex answers "which edges come near this area" queries over a fixed
// edge set. Build a new index after every rebuild.
type EdgeIndex struct {
	tree  *rtreego.Rtree
	edges []Edge
}

// NewEdgeIndex indexes edges. The slice is not retained.
func NewEdgeIndex(edges []Edge) *EdgeIndex {
	tree := rtreego.NewTree(2, 25, 50)
	kept := make([]Edge, len(edges))
	copy(kept, edges)
	for i, e := range kept {
		bbox, err := edgeBounds(e)
		if err != nil {
			continue
		}
		tree.Insert(&edgeEntry{index: i, bbox: bbox})
	}
	return &EdgeIndex{tree: tree, edges: kept}
}

// Len returns the number of indexed edges.
func (ix *EdgeIndex) Len() int {
	return ix.tree.Size()
}

// Query returns the edges whose bounds intersect the box [lo, hi], in
// their original order.
func (ix *EdgeIndex) Query(lo, hi Vec) []Edge {
	bbox, err := rtreego.NewRect(
		rtreego.Point{lo.X - edgePad, lo.Y - edgePad},
		[]float64{hi.X - lo.X + 2*edgePad, hi.Y - lo.Y + 2*edgePad},
	)
	if err != nil {
		return nil
	}

	hits := ix.tree.SearchIntersect(bbox)
	ids := make([]int, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(*edgeEntry).index)
	}
	sort.Ints(ids)

	out := make([]Edge, 0, len(ids))
	for _, id := range ids {
		out = append(out, ix.edges[id])
	}
	return out
}

// Within returns the edges whose bounds come within radius of center on
// either axis. This is a box test, so it may include edges whose nearest
// point is slightly farther than radius.
func (ix *EdgeIndex) Within(center Vec, radius float64) []Edge {
	return ix.Query(
		Vec{center.X - radius, center.Y - radius},
		Vec{center.X + radius, center.Y + radius},
	)
}

// edgeBounds computes the padded axis-aligned bounding box of an edge.
func edgeBounds(e Edge) (rtreego.Rect, error) {
	minX := math.Min(e.Start.X, e.End.X)
	minY := math.Min(e.Start.Y, e.End.Y)
	maxX := math.Max(e.Start.X, e.End.X)
	maxY := math.Max(e.Start.Y, e.End.Y)
	return rtreego.NewRect(
		rtreego.Point{minX - edgePad, minY - edgePad},
		[]float64{maxX - minX + 2*edgePad, maxY - minY + 2*edgePad},
	)
}
