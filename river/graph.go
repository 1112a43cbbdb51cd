package river

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/voidshard/procede/internal/encoding"
	"github.com/voidshard/procede/quad"
)

const (
	minForkAngle  = math.Pi / 9
	maxForkAngle  = math.Pi / 3.5
	forkRange     = maxForkAngle - minForkAngle
	meanForkAngle = minForkAngle + forkRange/2
)

// Settings tune how a graph answers queries.
type Settings struct {
	// MaxInfluenceR is the furthest a river affects the land around it.
	MaxInfluenceR float64 `json:"max_influence_r" yaml:"max_influence_r"`
}

// Graph is a river network: a forest of trees, each rooted at a mouth,
// with every other node flowing into exactly one outlet.
type Graph struct {
	nodes       []Node
	segments    *quad.QuadMap[Segment]
	bounds      quad.Rect
	minStrahler int
	settings    Settings
}

// NewGraph connects nodes into rivers flowing out of the given mouths.
//
// Nodes must carry their index, position, height & neighbours. Segments are
// only made for stretches whose stream order is at least minStrahler.
func NewGraph(nodes []Node, mouths []Mouth, minStrahler int, settings Settings) *Graph {
	g := &Graph{
		nodes:       nodes,
		bounds:      quad.NullAt(r2.Point{}),
		minStrahler: minStrahler,
		settings:    settings,
	}
	g.assignEdges(mouths)
	g.assignStrahler(mouths)
	g.assignDirections()

	g.segments = quad.NewDefault[Segment](g.bounds.Inflate(boundMargin))
	g.createSegments(mouths)
	return g
}

// expedition is a proposed edge, flowing from destination into origin.
type expedition struct {
	origin   uint32
	dest     uint32
	priority uint32
	bias     r2.Point
}

// expeditionQueue is a max heap over (priority, dest, origin).
type expeditionQueue []expedition

func (q expeditionQueue) Len() int { return len(q) }

func (q expeditionQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if a.dest != b.dest {
		return a.dest > b.dest
	}
	return a.origin > b.origin
}

func (q expeditionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *expeditionQueue) Push(x any) { *q = append(*q, x.(expedition)) }

func (q *expeditionQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// priority is a deterministic pseudo random ordering for expeditions,
// skewed toward those heading along the mouth's bias.
func (g *Graph) priority(origin, dest uint32, bias r2.Point) uint32 {
	hash := encoding.IdxHash(int64(dest)) + encoding.IdxHash(int64(origin))
	dir := g.nodes[dest].UV.Sub(g.nodes[origin].UV).Normalize()

	p := int64(hash/2) + int64(math.MaxUint32/4) + int64(dir.Dot(bias)*math.MaxUint32)
	if p < 0 {
		return 0
	}
	if p > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(p)
}

// assignEdges grows rivers upward from the mouths, setting every reached
// node's outlet & inlets.
func (g *Graph) assignEdges(mouths []Mouth) {
	visited := bitmap.New(len(g.nodes))
	q := &expeditionQueue{}

	for _, m := range mouths {
		heap.Push(q, expedition{
			origin:   None,
			dest:     m.Node,
			priority: encoding.IdxHash(int64(m.Node)),
			bias:     m.Bias,
		})
	}

	for q.Len() > 0 {
		exp := heap.Pop(q).(expedition)
		if visited.Get(int(exp.dest)) {
			continue
		}
		dest := &g.nodes[exp.dest]

		if exp.origin != None {
			origin := &g.nodes[exp.origin]
			if origin.IsFork() {
				// two rivers already meet here; dest stays free for
				// some other expedition
				continue
			}
			if dest.H < origin.H {
				panic(fmt.Sprintf("river would flow uphill from node %d (%f) to %d (%f)", dest.Index, dest.H, origin.Index, origin.H))
			}
			dest.Outlet = exp.origin
			origin.AddInlet(exp.dest)
		}

		visited.Set(int(exp.dest), true)
		g.bounds = g.bounds.Expand(dest.UV)

		for _, n := range dest.Neighbors {
			if n == None || visited.Get(int(n)) {
				continue
			}
			h := g.nodes[n].H
			if h < 0 || h < dest.H {
				continue
			}
			heap.Push(q, expedition{
				origin:   exp.dest,
				dest:     n,
				priority: g.priority(exp.dest, n, exp.bias),
				bias:     exp.bias,
			})
		}
	}
}

// upriverOrder lists every node flowing into the mouth, breadth first,
// starting with the mouth itself.
func (g *Graph) upriverOrder(mouth uint32) []uint32 {
	order := []uint32{mouth}
	for i := 0; i < len(order); i++ {
		order = append(order, g.nodes[order[i]].Upriver()...)
	}
	return order
}

// assignStrahler gives each node its stream order, working from sources
// down to the mouths.
func (g *Graph) assignStrahler(mouths []Mouth) {
	for _, m := range mouths {
		if g.nodes[m.Node].Strahler >= 0 || !g.nodes[m.Node].IsMouth() {
			continue
		}
		order := g.upriverOrder(m.Node)
		for i := len(order) - 1; i >= 0; i-- {
			n := &g.nodes[order[i]]
			switch {
			case n.IsSource():
				n.Strahler = 1
			case n.IsFork():
				a := g.nodes[n.Inlets[0]].Strahler
				b := g.nodes[n.Inlets[1]].Strahler
				s := max(a, b)
				if a == b {
					s++
				}
				n.Strahler = clampStrahler(s)
			default:
				n.Strahler = g.nodes[n.Inlets[0]].Strahler
			}
		}
	}
}

// assignDirections sets each node's flow direction & fork angle.
func (g *Graph) assignDirections() {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.IsMouth() {
			n.Direction = r2.Point{}
		} else {
			n.Direction = g.nodes[n.Outlet].UV.Sub(n.UV).Normalize()
		}
		if n.IsFork() {
			n.ForkAngle = forkRange/2*encoding.Rand1(encoding.IdxHash(int64(i))) + meanForkAngle
		} else {
			n.ForkAngle = 0
		}
	}
}

// createSegments adds a curve for every edge of high enough order,
// walking up from the mouths.
func (g *Graph) createSegments(mouths []Mouth) {
	for _, m := range mouths {
		if !g.nodes[m.Node].IsMouth() {
			continue
		}
		for _, i := range g.upriverOrder(m.Node) {
			up := &g.nodes[i]
			if up.IsMouth() || up.Strahler < g.minStrahler {
				continue
			}
			g.segments.Insert(newSegment(&g.nodes[up.Outlet], up))
		}
	}
}

// Node returns a copy of node i.
func (g *Graph) Node(i uint32) Node {
	return g.nodes[i]
}

// Nodes returns every node in the graph.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Segments is the index of river curves.
func (g *Graph) Segments() *quad.QuadMap[Segment] {
	return g.segments
}

// Bounds covers every node reached from a mouth.
func (g *Graph) Bounds() quad.Rect {
	return g.bounds
}

// Settings returns the graph's settings.
func (g *Graph) Settings() Settings {
	return g.settings
}

// NearestSegment finds the river curve closest to uv within the max
// influence radius.
func (g *Graph) NearestSegment(uv r2.Point) (Segment, Projection, bool) {
	r := g.settings.MaxInfluenceR
	var (
		best  Segment
		bestP Projection
		found bool
	)
	for _, res := range g.segments.Query(quad.CenteredWithRadius(uv, r)) {
		p := res.Value.Curve.Project(uv)
		if p.Dist > r {
			continue
		}
		if !found || p.Dist < bestP.Dist {
			best, bestP, found = res.Value, p, true
		}
	}
	return best, bestP, found
}

// Height carves river beds into the base height h0 at uv.
//
// Within half a river's width the land drops to the river bed; beyond it
// the bed blends linearly back to h0 at the max influence radius.
func (g *Graph) Height(uv r2.Point, h0 float64) float64 {
	seg, proj, ok := g.NearestSegment(uv)
	if !ok {
		return h0
	}

	width := seg.WidthAt(proj.T)
	half := width / 2
	bed := h0 - width/10
	if proj.Dist <= half {
		return bed
	}

	reach := g.settings.MaxInfluenceR - half
	if reach <= 0 {
		return h0
	}
	f := (proj.Dist - half) / reach
	if f > 1 {
		f = 1
	}
	return bed + (h0-bed)*f
}

type graphJSON struct {
	Nodes    []Node    `json:"nodes"`
	Segments []Segment `json:"segments"`
	Bounds   quad.Rect `json:"bounds"`
	Settings Settings  `json:"settings"`
}

// JSON encodes the nodes & segments of the graph.
func (g *Graph) JSON() ([]byte, error) {
	items := g.segments.Items()
	segs := make([]Segment, len(items))
	for i, it := range items {
		segs[i] = it.Value
	}
	data, err := json.Marshal(&graphJSON{
		Nodes:    g.nodes,
		Segments: segs,
		Bounds:   g.bounds,
		Settings: g.settings,
	})
	return data, errors.Wrap(err, "failed to encode river graph")
}
