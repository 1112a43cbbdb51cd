package streets

import (
	"container/heap"
	"math"

	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/quad"
)

const (
	// minSepRatio * step is the closest two path nodes may be.
	minSepRatio = 0.2
	// maxStepRatio * step is how far we look for existing nodes to join.
	maxStepRatio = 1.9
	// rays cast around each preferred direction.
	rays = 8
)

// WeightFunc returns the cost of joining a & b, or false if they may not
// be joined.
type WeightFunc func(a, b r2.Point) (float64, bool)

// frontierItem is a node waiting to be visited.
type frontierItem struct {
	node int
	cost float64 // cost so far
	f    float64 // cost so far + heuristic
}

// frontier is a min-heap on f; ties go to the lower node index.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// search holds the state of a single DynAStar run.
type search struct {
	g      *Graph
	bounds quad.Rect
	weight WeightFunc
	dest   r2.Point

	step    float64
	minSep  float64
	maxStep float64

	cost     map[int]float64
	parent   map[int]int
	expanded map[int]bool
}

// DynAStar finds the cheapest path from start to dest, adding nodes &
// edges to g as it goes. New nodes are placed step apart, are never closer
// than 0.2*step to another node & never outside bounds. New edges never
// cross an existing edge or obstacle in g.
//
// Returns the node indices from start to dest, or nil if dest can't be
// reached.
func DynAStar(g *Graph, bounds quad.Rect, weight WeightFunc, start, dest int, step float64) []int {
	s := &search{
		g:        g,
		bounds:   bounds,
		weight:   weight,
		dest:     g.Pos(dest),
		step:     step,
		minSep:   step * minSepRatio,
		maxStep:  step * maxStepRatio,
		cost:     map[int]float64{start: 0},
		parent:   map[int]int{},
		expanded: map[int]bool{},
	}

	open := &frontier{{node: start, f: s.heuristic(start)}}
	found := false
	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)
		if cur.cost > s.cost[cur.node] {
			// superseded by a cheaper route
			continue
		}
		if cur.node == dest {
			found = true
			break
		}

		if !s.expanded[cur.node] {
			s.expand(cur.node)
			s.expanded[cur.node] = true
		}

		for _, l := range g.Links(cur.node) {
			next := cur.cost + l.Weight
			if known, ok := s.cost[l.To]; ok && next >= known {
				continue
			}
			s.cost[l.To] = next
			s.parent[l.To] = cur.node
			heap.Push(open, frontierItem{node: l.To, cost: next, f: next + s.heuristic(l.To)})
		}
	}

	instrumentSearch(found)
	if !found {
		return nil
	}

	path := []int{dest}
	for at := dest; at != start; {
		at = s.parent[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *search) heuristic(i int) float64 {
	return s.g.Pos(i).Sub(s.dest).Norm()
}

// expand joins the node to nearby existing nodes, then casts rays around
// each preferred direction adding new nodes where there's room.
func (s *search) expand(i int) {
	pos := s.g.Pos(i)

	for _, other := range s.g.within(pos, s.maxStep) {
		if other == i || s.g.Linked(i, other) {
			continue
		}
		s.tryConnect(i, other)
	}

	preferred := []r2.Point{s.dest.Sub(pos).Normalize()}
	if p, ok := s.parent[i]; ok {
		preferred = append(preferred, pos.Sub(s.g.Pos(p)).Normalize())
	}
	for _, dir := range preferred {
		if dir.Norm() == 0 {
			continue
		}
		for k := 0; k < rays; k++ {
			ray := geom.Rotate(dir, float64(k)*2*math.Pi/rays)
			s.tryAddNode(i, pos.Add(ray.Mul(s.step)))
		}
	}
}

func (s *search) tryConnect(a, b int) {
	pa, pb := s.g.Pos(a), s.g.Pos(b)
	if s.g.Crosses(pa, pb) {
		return
	}
	w, ok := s.weight(pa, pb)
	if !ok {
		return
	}
	s.g.Connect(a, b, w)
}

func (s *search) tryAddNode(from int, p r2.Point) {
	if !s.bounds.Contains(p) {
		return
	}
	if _, ok := s.g.nearest(p, s.minSep); ok {
		return
	}
	pos := s.g.Pos(from)
	if s.g.Crosses(pos, p) {
		return
	}
	w, ok := s.weight(pos, p)
	if !ok {
		return
	}
	s.g.Connect(from, s.g.AddNode(p), w)
	instrumentNodeAdded()
}
