package voronoi

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/procede/quad"
)

// Voronoi is a diagram over a fixed set of sites.
type Voronoi struct {
	bounds quad.Rect
	sites  []r2.Point
}

// newVoronoi builds a voronoi diagram using the given builder information
func newVoronoi(b *Builder) *Voronoi {
	sites := make([]r2.Point, len(b.sites))
	copy(sites, b.sites)
	return &Voronoi{bounds: b.bounds, sites: sites}
}

// SiteFor returns the index of the site nearest p, ie. the site whose
// voronoi cell p falls in. Ties go to the lower index.
func SiteFor(sites []r2.Point, p r2.Point) int {
	pick := -1
	dist := math.Inf(1)
	for i, s := range sites {
		d := s.Sub(p).Norm()
		if d < dist {
			dist, pick = d, i
		}
	}
	return pick
}

// Clipped returns each site's cell cut to fit within poly.
func (v *Voronoi) Clipped(poly []r2.Point) [][]r2.Point {
	return Clipped(v.sites, poly)
}

// Diagram returns the repaired cells of every site within the bounds.
func (v *Voronoi) Diagram() Diagram {
	coords := make([]model2d.Coord, len(v.sites))
	for i, s := range v.sites {
		coords[i] = model2d.Coord{X: s.X, Y: s.Y}
	}
	d := Cells(
		model2d.Coord{X: v.bounds.Min.X, Y: v.bounds.Min.Y},
		model2d.Coord{X: v.bounds.Max.X, Y: v.bounds.Max.Y},
		coords,
	)
	d.Repair(1e-8)
	return d
}
