package voronoi

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/quad"
)

// Builder struct makes managing the setup of a voronoi diagram easier.
// We're interested here in building a voronoi diagram with some structure
// to how 'sites' (centres of voronoi cells) are laid out.
type Builder struct {
	bounds  quad.Rect
	sites   []r2.Point
	index   *quad.QuadMap[int]
	minDist float64
	cfilt   []CandidateFilter
}

// NewBuilder returns a new Voronoi diagram builder
func NewBuilder(bounds quad.Rect) *Builder {
	return &Builder{
		bounds: bounds,
		sites:  []r2.Point{},
		index:  quad.NewDefault[int](bounds),
	}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Sites returns the accepted sites, in the order they were added.
func (b *Builder) Sites() []r2.Point {
	return b.sites
}

// Voronoi returns the Voronoi diagram given our current sites.
func (b *Builder) Voronoi() *Voronoi {
	return newVoronoi(b)
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetMinDistance rejects any site within dist of an accepted one.
func (b *Builder) SetMinDistance(dist float64) {
	b.minDist = dist
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(p r2.Point) (int, bool) {
	if !b.accepted(p) {
		return 0, false
	}
	id := len(b.sites)
	b.sites = append(b.sites, p)
	b.index.InsertWithRect(id, quad.NullAt(p))
	return id, true
}

// accepted returns if the proposed site is acceptable to our filters.
// Candidate filters run first so we can hopefully reject early.
func (b *Builder) accepted(p r2.Point) bool {
	for _, fn := range b.cfilt {
		if !fn(p) {
			return false
		}
	}
	if b.minDist > 0 {
		if _, ok := b.index.Nearest(p, b.minDist); ok {
			return false
		}
	}
	return true
}
