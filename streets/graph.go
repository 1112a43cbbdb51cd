package streets

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/quad"
)

// Link is one side of an undirected graph edge.
type Link struct {
	To     int
	Weight float64
}

// Graph is a growable undirected graph of 2D positions used for path
// finding. Edges & obstacle lines are indexed so new edges can be checked
// for crossings.
type Graph struct {
	pos   []r2.Point
	links [][]Link
	nodes *quad.QuadMap[int]
	lines *quad.QuadMap[line.Line]
}

// NewGraph returns an empty graph indexed over bounds.
func NewGraph(bounds quad.Rect) *Graph {
	return &Graph{
		nodes: quad.NewDefault[int](bounds),
		lines: quad.NewDefault[line.Line](bounds),
	}
}

// AddNode adds a node at p, returning its index.
func (g *Graph) AddNode(p r2.Point) int {
	i := len(g.pos)
	g.pos = append(g.pos, p)
	g.links = append(g.links, nil)
	g.nodes.InsertWithRect(i, quad.NullAt(p))
	return i
}

// Connect adds an edge between a & b.
func (g *Graph) Connect(a, b int, weight float64) {
	if a == b {
		panic(fmt.Sprintf("cannot connect graph node %d to itself", a))
	}
	g.links[a] = append(g.links[a], Link{To: b, Weight: weight})
	g.links[b] = append(g.links[b], Link{To: a, Weight: weight})

	l := line.New(g.pos[a], g.pos[b])
	g.lines.InsertWithRect(l, quad.FromPoints(l.A, l.B))
}

// AddObstacle adds a line edges may not cross. Obstacles can't be
// travelled along.
func (g *Graph) AddObstacle(a, b r2.Point) {
	g.lines.InsertWithRect(line.New(a, b), quad.FromPoints(a, b))
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.pos)
}

// Pos returns the position of node i.
func (g *Graph) Pos(i int) r2.Point {
	return g.pos[i]
}

// Links returns the edges out of node i.
func (g *Graph) Links(i int) []Link {
	return g.links[i]
}

// Linked returns if a & b share an edge.
func (g *Graph) Linked(a, b int) bool {
	for _, l := range g.links[a] {
		if l.To == b {
			return true
		}
	}
	return false
}

// Crosses reports if a line from a to b would cut an edge or obstacle.
func (g *Graph) Crosses(a, b r2.Point) bool {
	l := line.New(a, b)
	for _, res := range g.lines.Query(quad.FromPoints(a, b)) {
		if l.Crosses(res.Value) {
			return true
		}
	}
	return false
}

// nearest returns the closest node within r of p.
func (g *Graph) nearest(p r2.Point, r float64) (int, bool) {
	n, ok := g.nodes.Nearest(p, r)
	return n.Value, ok
}

// within returns the nodes within r of p, in index order.
func (g *Graph) within(p r2.Point, r float64) []int {
	out := []int{}
	for _, res := range g.nodes.Query(quad.CenteredWithRadius(p, r)) {
		if g.pos[res.Value].Sub(p).Norm() <= r {
			out = append(out, res.Value)
		}
	}
	return out
}
