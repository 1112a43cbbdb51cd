package voronoi

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/geom"
)

// CandidateFilter accepts or rejects a candidate site based purely on its
// position.
type CandidateFilter func(p r2.Point) bool

// InPolygon accepts sites that lie within poly.
func InPolygon(poly []r2.Point) CandidateFilter {
	return func(p r2.Point) bool {
		return geom.Contains(poly, p)
	}
}

// Offset applies f to the candidate moved by delta.
func Offset(delta r2.Point, f CandidateFilter) CandidateFilter {
	return func(p r2.Point) bool {
		return f(p.Add(delta))
	}
}
