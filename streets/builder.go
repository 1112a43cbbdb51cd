package streets

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/tensor"
)

var (
	// ErrDegenerateSegment is returned when both ends of a segment merge
	// into the same node.
	ErrDegenerateSegment = errors.New("segment ends merge into a single node")
)

// StreetSegment adds a single street between A & B.
type StreetSegment struct {
	A       r2.Point `json:"a"`
	B       r2.Point `json:"b"`
	CostMod float64  `json:"cost_mod"`
}

// NewStreetSegment returns a street from a to b costing its length times
// costMod to travel.
func NewStreetSegment(a, b r2.Point, costMod float64) *StreetSegment {
	return &StreetSegment{A: a, B: b, CostMod: costMod}
}

// Build adds the street's end nodes & the edge between them. Edges block
// crossings just as obstacles do, so no obstacle is added. Adding a street
// that already exists does nothing.
func (s *StreetSegment) Build(m *TownMap) error {
	a := m.AddNode(s.A)
	b := m.AddNode(s.B)
	if a == b {
		return ErrDegenerateSegment
	}
	if m.Node(a).HasNodeConnection(b) {
		return nil
	}

	ua, ub := m.Node(a).UV, m.Node(b).UV
	m.AddEdgeBetween(a, b, ua.Sub(ub).Norm()*s.CostMod)
	return nil
}

// RiverSegment lets a stretch of river take part in a town map. It adds no
// streets; instead the river & its banks become obstacles & the river
// draws value to the land around it.
type RiverSegment struct {
	A     r2.Point `json:"a"`
	B     r2.Point `json:"b"`
	Width float64  `json:"width"`
}

// NewRiverSegment returns a river of the given width from a to b.
func NewRiverSegment(a, b r2.Point, width float64) *RiverSegment {
	return &RiverSegment{A: a, B: b, Width: width}
}

// Build adds the centre line & both banks as obstacles.
func (r *RiverSegment) Build(m *TownMap) error {
	if r.A == r.B {
		return ErrDegenerateSegment
	}
	centre := line.New(r.A, r.B)
	m.AddObstacle(centre.A, centre.B)
	for _, side := range []float64{-1, 1} {
		bank := centre.Offset(side * r.Width / 2)
		m.AddObstacle(bank.A, bank.B)
	}
	m.ValueMap().AddLocal(tensor.NewLine(r.A, r.B, r.Width))
	return nil
}
