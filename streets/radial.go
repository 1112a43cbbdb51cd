package streets

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r2"
)

const (
	// spokeOffsetStep is the angular step OpenDir uses between passes.
	spokeOffsetStep = math.Pi / 16
	// spokeAttempts is how many directions we try per spoke.
	spokeAttempts = 8
)

// Radial grows major streets outward from the most valuable node in the
// map (or Center, on an empty map).
type Radial struct {
	Center  r2.Point `json:"center"`
	Spokes  int      `json:"spokes"`
	Length  float64  `json:"length"`
	CostMod float64  `json:"cost_mod"`

	// Step is the spacing of nodes along the streets.
	Step float64 `json:"step"`
	// Streets are never made of edges longer than MaxEdgeLen ...
	MaxEdgeLen float64 `json:"max_edge_len"`
	// ... and nodes closer than MinEdgeLen along a street are dropped.
	MinEdgeLen float64 `json:"min_edge_len"`
}

// Build routes each spoke from the start node & adds it to the map as a
// chain of street segments.
func (r *Radial) Build(m *TownMap) error {
	start := r.startNode(m)

	for i := 0; i < r.Spokes; i++ {
		if !r.buildSpoke(m, start) {
			logs.WithTag("node", start).WithTag("spoke", i).Warn("failed to route radial street")
		}
	}
	return nil
}

// startNode picks the node with the strongest pull from the value map.
func (r *Radial) startNode(m *TownMap) NodeID {
	nodes := m.Nodes()
	if len(nodes) == 0 {
		return m.AddNode(r.Center)
	}

	best := nodes[0].ID
	bestV := m.ValueMap().Sample(nodes[0].UV).Norm()
	for _, n := range nodes[1:] {
		if v := m.ValueMap().Sample(n.UV).Norm(); v > bestV {
			best, bestV = n.ID, v
		}
	}
	return best
}

// buildSpoke tries successive open directions out of start until one can
// be routed.
func (r *Radial) buildSpoke(m *TownMap, start NodeID) bool {
	dirs := NewOpenDir(m.Node(start), spokeOffsetStep)
	for attempt := 0; attempt < spokeAttempts; attempt++ {
		dir := dirs.Next()
		origin := m.Node(start).UV
		target := origin.Add(dir.Mul(r.Length))
		if !m.Bounds().Contains(target) {
			continue
		}

		path := r.route(m, origin, target)
		if len(path) < 2 {
			continue
		}
		for j := 1; j < len(path); j++ {
			if err := m.Add(NewStreetSegment(path[j-1], path[j], r.CostMod)); err != nil {
				return false
			}
		}
		return true
	}
	return false
}

// route finds a path from a to b that doesn't cross anything already on
// the map.
func (r *Radial) route(m *TownMap, a, b r2.Point) []r2.Point {
	g := NewGraph(m.Bounds())
	for _, e := range m.Edges() {
		g.AddObstacle(e.UVA, e.UVB)
	}
	for _, o := range m.Obstacles() {
		g.AddObstacle(o.A, o.B)
	}

	start := g.AddNode(a)
	dest := g.AddNode(b)
	weight := func(p, q r2.Point) (float64, bool) {
		d := p.Sub(q).Norm()
		if d > r.MaxEdgeLen {
			return 0, false
		}
		return d * r.CostMod, true
	}

	ids := DynAStar(g, m.Bounds(), weight, start, dest, r.Step)
	if len(ids) == 0 {
		return nil
	}

	out := []r2.Point{g.Pos(ids[0])}
	for _, id := range ids[1 : len(ids)-1] {
		p := g.Pos(id)
		if p.Sub(out[len(out)-1]).Norm() < r.MinEdgeLen {
			continue
		}
		out = append(out, p)
	}
	return append(out, g.Pos(ids[len(ids)-1]))
}
