package segyio

import (
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// GeometryKind says how a Geometry was derived from its samples.
type GeometryKind int

const (
	// GeometryLine connects the samples in trace order.
	GeometryLine GeometryKind = iota
	// GeometryHull is the convex hull of the samples.
	GeometryHull
)

func (k GeometryKind) String() string {
	if k == GeometryHull {
		return "hull"
	}
	return "line"
}

// Geometry is the outline of a survey.
type Geometry struct {
	Kind GeometryKind
	// Shape is a *geom.Point, *geom.LineString, or *geom.Polygon.
	Shape   geom.T
	Samples []NavSample
}

// LineGeometry connects samples in order. A single sample gives a point.
func LineGeometry(samples []NavSample) *Geometry {
	g := &Geometry{Kind: GeometryLine, Samples: samples}
	coords := make([]geom.Coord, len(samples))
	for i := range samples {
		coords[i] = geom.Coord{samples[i].X, samples[i].Y}
	}
	if len(coords) == 1 {
		g.Shape = geom.NewPoint(geom.XY).MustSetCoords(coords[0])
	} else {
		g.Shape = geom.NewLineString(geom.XY).MustSetCoords(coords)
	}
	return g
}

// HullGeometry computes the convex hull of samples.
func HullGeometry(samples []NavSample) *Geometry {
	pts := make([][2]float64, len(samples))
	for i := range samples {
		pts[i] = [2]float64{samples[i].X, samples[i].Y}
	}
	return &Geometry{Kind: GeometryHull, Shape: ConvexHull(pts),
		Samples: samples}
}

// Points returns every sampled location.
func (g *Geometry) Points() *geom.MultiPoint {
	coords := make([]geom.Coord, len(g.Samples))
	for i := range g.Samples {
		coords[i] = geom.Coord{g.Samples[i].X, g.Samples[i].Y}
	}
	return geom.NewMultiPoint(geom.XY).MustSetCoords(coords)
}

// Bounds returns the bounding box of the shape.
func (g *Geometry) Bounds() *geom.Bounds { return g.Shape.Bounds() }

// WKT renders the shape as well-known text.
func (g *Geometry) WKT() (string, error) { return wkt.Marshal(g.Shape) }

// GeoJSON renders the shape as a GeoJSON geometry.
func (g *Geometry) GeoJSON() ([]byte, error) { return geojson.Marshal(g.Shape) }

// ConvexHull returns the convex hull of pts using Andrew's monotone chain.
// Points on the boundary that aren't vertices are dropped. One distinct
// point gives a *geom.Point, two distinct points or a collinear set give a
// *geom.LineString between the extremes, and anything else gives a closed,
// counter-clockwise *geom.Polygon. pts is not modified.
func ConvexHull(pts [][2]float64) geom.T {
	sorted := make([][2]float64, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	distinct := sorted[:0]
	for i := range sorted {
		if len(distinct) == 0 || sorted[i] != distinct[len(distinct)-1] {
			distinct = append(distinct, sorted[i])
		}
	}

	switch len(distinct) {
	case 0:
		return geom.NewMultiPoint(geom.XY)
	case 1:
		return geom.NewPoint(geom.XY).MustSetCoords(coord(distinct[0]))
	}

	n := len(distinct)
	hull := make([][2]float64, 0, 2*n)
	// Lower hull.
	for i := 0; i < n; i++ {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1],
			distinct[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, distinct[i])
	}
	// Upper hull.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1],
			distinct[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, distinct[i])
	}
	// The last point is the first point again.
	hull = hull[:len(hull)-1]

	if len(hull) < 3 {
		return geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{
			coord(distinct[0]), coord(distinct[n-1]),
		})
	}

	ring := make([]geom.Coord, len(hull)+1)
	for i := range hull {
		ring[i] = coord(hull[i])
	}
	ring[len(hull)] = coord(hull[0])
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ring})
}

// cross is the z component of (a - o) x (b - o). It's positive if o, a, b
// turn counter-clockwise.
func cross(o, a, b [2]float64) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func coord(p [2]float64) geom.Coord { return geom.Coord{p[0], p[1]} }
