package shadow

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// EdgesGeometry converts the edge set to an orb multi line string, one line
// per edge.
func EdgesGeometry(edges []Edge) orb.MultiLineString {
	mls := make(orb.MultiLineString, 0, len(edges))
	for _, e := range edges {
		mls = append(mls, orb.LineString{
			{e.Start.X, e.Start.Y},
			{e.End.X, e.End.Y},
		})
	}
	return mls
}

// VisibilityRing returns the visibility polygon outline as a closed ring.
// Points should already be angle-sorted; fewer than three points give an
// empty ring.
func VisibilityRing(points []Point) orb.Ring {
	if len(points) < 3 {
		return nil
	}
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	return append(ring, ring[0])
}

// VisibleArea returns the area enclosed by the visibility polygon.
func VisibleArea(points []Point) float64 {
	ring := VisibilityRing(points)
	if ring == nil {
		return 0
	}
	return math.Abs(planar.Area(ring))
}

// Contains reports whether v lies inside the visibility polygon.
func Contains(points []Point, v Vec) bool {
	ring := VisibilityRing(points)
	if ring == nil {
		return false
	}
	return planar.RingContains(ring, orb.Point{v.X, v.Y})
}

// FeatureCollection builds a GeoJSON dump of a scene: one feature per edge
// (kind=edge, with its pool index), the visibility polygon (kind=visibility)
// and the origin (kind=origin). points may be nil.
func FeatureCollection(edges []Edge, origin Vec, points []Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, ls := range EdgesGeometry(edges) {
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = "edge"
		f.Properties["index"] = i
		fc.Append(f)
	}
	if ring := VisibilityRing(points); ring != nil {
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["kind"] = "visibility"
		f.Properties["vertices"] = len(points)
		f.Properties["area"] = VisibleArea(points)
		fc.Append(f)
	}
	if points != nil {
		f := geojson.NewFeature(orb.Point{origin.X, origin.Y})
		f.Properties["kind"] = "origin"
		fc.Append(f)
	}
	return fc
}
