package streets

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/internal/voronoi"
	"github.com/voidshard/procede/quad"
)

const (
	// halveSamples caps the vertices considered when halving a polygon.
	halveSamples = 32
	// borderMargin widens the search area for a dividing border.
	borderMargin = 100
	// borderCostMod makes border edges dearer than plain distance.
	borderCostMod = 1.5
	// minDivideVertices is the fewest vertices a polygon can be halved at.
	minDivideVertices = 4
)

// LotSettings control how a polygon is carved into lots.
type LotSettings struct {
	// Mean width & depth of lots.
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`

	// PathStep is the node spacing used when routing a dividing border.
	PathStep float64 `json:"path_step" yaml:"path_step"`
	// MaxEdgeLen is the longest edge allowed along a dividing border.
	MaxEdgeLen float64 `json:"max_edge_len" yaml:"max_edge_len"`

	// CostMod scales the cost of joining a & b. Negative values forbid
	// the join. Nil means 1 everywhere.
	CostMod func(a, b r2.Point) float64 `json:"-" yaml:"-"`
}

// DefaultLotSettings returns the usual lot settings.
func DefaultLotSettings() LotSettings {
	return LotSettings{Width: 16, Depth: 20, PathStep: 8, MaxEdgeLen: 50}
}

func (s LotSettings) weight(a, b r2.Point) (float64, bool) {
	d := a.Sub(b).Norm()
	if d > s.MaxEdgeLen {
		return 0, false
	}
	mod := 1.0
	if s.CostMod != nil {
		mod = s.CostMod(a, b)
	}
	if mod < 0 {
		return 0, false
	}
	return d * mod * borderCostMod, true
}

// Lot is a single plot of land.
type Lot struct {
	Nucleus r2.Point   `json:"nucleus"`
	Bounds  []r2.Point `json:"bounds"`
}

// LotPoly is a polygon divided into lots. Lots front onto the polygon
// edges marked as connections (ie. edges with a street alongside).
type LotPoly struct {
	// Poly must be wound clockwise.
	Poly []r2.Point `json:"poly"`
	// Connections[i] is true if the edge from Poly[i] to Poly[i+1] can be
	// reached from a street.
	Connections []bool  `json:"connections"`
	Width       float64 `json:"width"`
	Depth       float64 `json:"depth"`
	Lots        []Lot   `json:"lots"`
}

// NewLotPoly divides poly into lots. There must be one connection flag per
// polygon edge.
func NewLotPoly(poly []r2.Point, connections []bool, settings LotSettings) *LotPoly {
	if len(poly) != len(connections) {
		panic(fmt.Sprintf("polygon has %d edges but %d connections", len(poly), len(connections)))
	}
	return &LotPoly{
		Poly:        poly,
		Connections: connections,
		Width:       settings.Width,
		Depth:       settings.Depth,
		Lots:        createLots(poly, connections, settings),
	}
}

// NumLots returns how many lots the polygon holds.
func (p *LotPoly) NumLots() int {
	return len(p.Lots)
}

// createLots places a nucleus behind each lot face along the connected
// edges, then gives each nucleus its voronoi cell clipped to the polygon.
func createLots(poly []r2.Point, connections []bool, settings LotSettings) []Lot {
	lo, hi := geom.Bounds(poly)
	b := voronoi.NewBuilder(quad.FromPoints(lo, hi))
	b.SetMinDistance(settings.Width)
	inside := voronoi.InPolygon(poly)

	for i, conn := range connections {
		if !conn {
			continue
		}
		edge := line.New(poly[i], poly[(i+1)%len(poly)])
		faces := int(edge.Len() / settings.Width)
		if faces < 1 {
			continue
		}

		// right of a clockwise edge points into the polygon
		offset := edge.Right().Normalize().Mul(settings.Depth / 2)

		// nuclei need to be inside the polygon with room behind them
		b.SetCandidateFilters(inside, voronoi.Offset(offset, inside))

		pts := edge.Divide(faces)
		for j := 1; j < len(pts); j++ {
			mid := geom.Lerp(pts[j-1], pts[j], 0.5)
			b.AddSite(mid.Add(offset))
		}
	}

	nuclei := b.Sites()
	cells := b.Voronoi().Clipped(poly)
	lots := make([]Lot, 0, len(nuclei))
	for i, n := range nuclei {
		if len(cells[i]) < 3 {
			continue
		}
		lots = append(lots, Lot{Nucleus: n, Bounds: cells[i]})
	}
	return lots
}

// LotAt returns the index of the lot holding uv. Each lot is the voronoi
// cell of its nucleus, so the nearest nucleus wins.
func (p *LotPoly) LotAt(uv r2.Point) (int, bool) {
	if len(p.Lots) == 0 || !geom.Contains(p.Poly, uv) {
		return -1, false
	}
	nuclei := make([]r2.Point, len(p.Lots))
	for i, l := range p.Lots {
		nuclei[i] = l.Nucleus
	}
	return voronoi.SiteFor(nuclei, uv), true
}

// CanDivide reports whether the polygon has enough vertices to halve.
func (p *LotPoly) CanDivide() bool {
	return len(p.Poly) >= minDivideVertices
}

// Divide splits the polygon in two, routing a new border across it. Both
// sides of the border count as connections.
//
// Polygons that cannot be divided come back unchanged, with a nil second
// half.
func (p *LotPoly) Divide(settings LotSettings) (*LotPoly, *LotPoly) {
	if !p.CanDivide() {
		return p, nil
	}
	i0, i1 := geom.HalveIndices(p.Poly, halveSamples)
	border := p.border(i0, i1, settings)
	n := len(p.Poly)

	// A runs [0, i0], along the border, then [i1, n)
	polyA := make([]r2.Point, 0, n-(i1-i0)+1+len(border))
	polyA = append(polyA, p.Poly[:i0+1]...)
	polyA = append(polyA, border...)
	polyA = append(polyA, p.Poly[i1:]...)

	connA := make([]bool, 0, len(polyA))
	connA = append(connA, p.Connections[:i0]...)
	connA = append(connA, trueN(len(border)+1)...)
	connA = append(connA, p.Connections[i1:]...)

	// B runs [i0, i1] then back along the border
	polyB := make([]r2.Point, 0, i1-i0+1+len(border))
	polyB = append(polyB, p.Poly[i0:i1+1]...)
	for i := len(border) - 1; i >= 0; i-- {
		polyB = append(polyB, border[i])
	}

	connB := make([]bool, 0, len(polyB))
	connB = append(connB, p.Connections[i0:i1]...)
	connB = append(connB, trueN(len(border)+1)...)

	return NewLotPoly(polyA, connA, settings), NewLotPoly(polyB, connB, settings)
}

// border returns the points strictly between Poly[i0] & Poly[i1] along a
// route across the polygon. A straight chord is used if there's no route.
func (p *LotPoly) border(i0, i1 int, settings LotSettings) []r2.Point {
	lo, hi := geom.Bounds(p.Poly)
	bounds := quad.FromPoints(lo, hi).Inflate(borderMargin)

	g := NewGraph(bounds)
	for i, a := range p.Poly {
		g.AddObstacle(a, p.Poly[(i+1)%len(p.Poly)])
	}
	start := g.AddNode(p.Poly[i0])
	dest := g.AddNode(p.Poly[i1])

	weight := func(a, b r2.Point) (float64, bool) {
		if !geom.Contains(p.Poly, geom.Lerp(a, b, 0.5)) {
			return 0, false
		}
		return settings.weight(a, b)
	}

	ids := DynAStar(g, bounds, weight, start, dest, settings.PathStep)
	if len(ids) < 2 {
		return nil
	}
	path := make([]r2.Point, len(ids))
	for i, id := range ids {
		path[i] = g.Pos(id)
	}

	path = simplify(path, settings.MaxEdgeLen, settings.PathStep/2)
	return path[1 : len(path)-1]
}

// simplify drops points from the path, so long as no edge grows longer
// than maxLen & no dropped point strays more than tolerance from the edge
// replacing it.
func simplify(path []r2.Point, maxLen, tolerance float64) []r2.Point {
	out := []r2.Point{path[0]}
	for i := 0; i < len(path)-1; {
		next := i + 1
		for j := i + 2; j < len(path); j++ {
			chord := line.New(path[i], path[j])
			if chord.Len() > maxLen || !hugs(chord, path[i+1:j], tolerance) {
				break
			}
			next = j
		}
		out = append(out, path[next])
		i = next
	}
	return out
}

// hugs returns if every point is within tolerance of l.
func hugs(l line.Line, pts []r2.Point, tolerance float64) bool {
	for _, p := range pts {
		if l.Dist(p) > tolerance {
			return false
		}
	}
	return true
}

// DivideAll divides every polygon that can be divided. The rest are
// passed through as they are.
func DivideAll(polys []*LotPoly, settings LotSettings) []*LotPoly {
	out := make([]*LotPoly, 0, 2*len(polys))
	for _, p := range polys {
		a, b := p.Divide(settings)
		out = append(out, a)
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// TotalLots sums the lots across polygons.
func TotalLots(polys []*LotPoly) int {
	total := 0
	for _, p := range polys {
		total += p.NumLots()
	}
	return total
}

func trueN(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
