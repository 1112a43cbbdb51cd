// Package streets lays out town street maps: nodes joined by street edges,
// obstacles streets may not cross & a value field that draws streets in.
package streets

import (
	"fmt"
	"math"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/quad"
	"github.com/voidshard/procede/tensor"
)

// DefaultBounds is the area a TownMap covers unless told otherwise.
var DefaultBounds = quad.FromPoints(r2.Point{X: -3000, Y: -3000}, r2.Point{X: 3000, Y: 3000})

// NodeID identifies a node within a single TownMap.
type NodeID int

// EdgeID identifies an edge within a single TownMap.
type EdgeID int

// ObstacleID identifies an obstacle within a single TownMap.
type ObstacleID int

// Settings are fixed for the lifetime of a TownMap.
type Settings struct {
	// Nodes added within this distance of an existing node are merged
	// into it.
	NodeMergeDist float64 `json:"node_merge_dist" yaml:"node_merge_dist"`
}

// DefaultSettings returns the usual TownMap settings.
func DefaultSettings() Settings {
	return Settings{NodeMergeDist: 0.1}
}

// Builder is anything that knows how to add itself to a TownMap.
type Builder interface {
	Build(m *TownMap) error
}

// EdgeRef is a node's view of one of its edges.
type EdgeRef struct {
	Edge    EdgeID   `json:"edge"`
	Other   NodeID   `json:"other"`
	OtherUV r2.Point `json:"other_uv"`
}

// Node is a point streets may pass through.
type Node struct {
	ID NodeID   `json:"id"`
	UV r2.Point `json:"uv"`

	// Edges are kept sorted clockwise (from north) about the node.
	Edges []EdgeRef `json:"edges"`
}

// Edge is a street between two nodes.
type Edge struct {
	ID     EdgeID    `json:"id"`
	A      NodeID    `json:"a"`
	B      NodeID    `json:"b"`
	UVA    r2.Point  `json:"uv_a"`
	UVB    r2.Point  `json:"uv_b"`
	Cost   float64   `json:"cost"` // travel cost, lower is better
	Bounds quad.Rect `json:"bounds"`
}

// Obstacle is a line streets may not cross.
type Obstacle struct {
	ID     ObstacleID `json:"id"`
	A      r2.Point   `json:"a"`
	B      r2.Point   `json:"b"`
	Bounds quad.Rect  `json:"bounds"`
}

// TownMap holds the raw street layout of a town.
//
// A TownMap isn't safe for concurrent use.
type TownMap struct {
	settings Settings
	bounds   quad.Rect

	nodeMap     *quad.QuadMap[NodeID]
	edgeMap     *quad.QuadMap[EdgeID]
	obstacleMap *quad.QuadMap[ObstacleID]
	valueMap    *tensor.Field

	nodes     []*Node
	edges     []*Edge
	obstacles []*Obstacle
}

// NewTownMap returns an empty map covering DefaultBounds.
func NewTownMap(settings Settings) *TownMap {
	return NewTownMapWithBounds(settings, DefaultBounds)
}

// NewTownMapWithBounds returns an empty map covering bounds. Items outside
// of the bounds are still held, just less efficiently.
func NewTownMapWithBounds(settings Settings, bounds quad.Rect) *TownMap {
	return &TownMap{
		settings:    settings,
		bounds:      bounds,
		nodeMap:     quad.NewDefault[NodeID](bounds),
		edgeMap:     quad.NewDefault[EdgeID](bounds),
		obstacleMap: quad.NewDefault[ObstacleID](bounds),
		valueMap:    tensor.NewField(bounds),
	}
}

// Add runs the builder against this map.
func (m *TownMap) Add(b Builder) error {
	nodes, edges := len(m.nodes), len(m.edges)
	if err := b.Build(m); err != nil {
		return errors.Wrapf(err, "failed to build %T", b)
	}
	logs.WithTag("builder", fmt.Sprintf("%T", b)).
		WithTag("nodes", len(m.nodes)-nodes).
		WithTag("edges", len(m.edges)-edges).
		Debug("town builder applied")
	return nil
}

// AddNode adds a node at uv, unless one already sits within the merge
// distance, in which case that node's id is returned instead.
func (m *TownMap) AddNode(uv r2.Point) NodeID {
	if id, _, ok := m.FindNearestNode(uv, m.settings.NodeMergeDist); ok {
		return id
	}

	n := &Node{ID: NodeID(len(m.nodes)), UV: uv}
	m.nodes = append(m.nodes, n)
	m.nodeMap.InsertWithRect(n.ID, quad.NullAt(uv))
	return n.ID
}

// AddEdgeBetween joins two existing nodes. Joining a node to itself or
// adding a second edge between the same pair panics.
func (m *TownMap) AddEdgeBetween(a, b NodeID, cost float64) EdgeID {
	if a == b {
		panic(fmt.Sprintf("cannot add edge from node %d to itself", a))
	}
	na, nb := m.Node(a), m.Node(b)
	if na.HasNodeConnection(b) || nb.HasNodeConnection(a) {
		panic(fmt.Sprintf("nodes %d and %d are already connected", a, b))
	}

	e := &Edge{
		ID:     EdgeID(len(m.edges)),
		A:      a,
		B:      b,
		UVA:    na.UV,
		UVB:    nb.UV,
		Cost:   cost,
		Bounds: quad.FromPoints(na.UV, nb.UV),
	}
	m.edges = append(m.edges, e)
	m.edgeMap.InsertWithRect(e.ID, e.Bounds)

	na.addEdge(EdgeRef{Edge: e.ID, Other: b, OtherUV: nb.UV})
	nb.addEdge(EdgeRef{Edge: e.ID, Other: a, OtherUV: na.UV})
	return e.ID
}

// AddObstacle adds a line streets may not cross.
func (m *TownMap) AddObstacle(a, b r2.Point) ObstacleID {
	o := &Obstacle{
		ID:     ObstacleID(len(m.obstacles)),
		A:      a,
		B:      b,
		Bounds: quad.FromPoints(a, b),
	}
	m.obstacles = append(m.obstacles, o)
	m.obstacleMap.InsertWithRect(o.ID, o.Bounds)
	return o.ID
}

// Settings returns the map settings.
func (m *TownMap) Settings() Settings {
	return m.settings
}

// Bounds returns the area the map was built to cover.
func (m *TownMap) Bounds() quad.Rect {
	return m.bounds
}

// Node returns the node with the given id.
func (m *TownMap) Node(id NodeID) *Node {
	return m.nodes[id]
}

// Edge returns the edge with the given id, if there is one.
func (m *TownMap) Edge(id EdgeID) (*Edge, bool) {
	if id < 0 || int(id) >= len(m.edges) {
		return nil, false
	}
	return m.edges[id], true
}

// ObstacleAt returns the obstacle with the given id, if there is one.
func (m *TownMap) ObstacleAt(id ObstacleID) (*Obstacle, bool) {
	if id < 0 || int(id) >= len(m.obstacles) {
		return nil, false
	}
	return m.obstacles[id], true
}

// Nodes returns all nodes in id order.
func (m *TownMap) Nodes() []*Node {
	return m.nodes
}

// Edges returns all edges in id order.
func (m *TownMap) Edges() []*Edge {
	return m.edges
}

// Obstacles returns all obstacles in id order.
func (m *TownMap) Obstacles() []*Obstacle {
	return m.obstacles
}

// ValueMap returns the field streets are drawn along.
func (m *TownMap) ValueMap() *tensor.Field {
	return m.valueMap
}

// FindNearestNode returns the node nearest uv, with its distance, provided
// it lies within r.
func (m *TownMap) FindNearestNode(uv r2.Point, r float64) (NodeID, float64, bool) {
	n, ok := m.nodeMap.Nearest(uv, r)
	if !ok {
		return 0, 0, false
	}
	return n.Value, n.Dist, true
}

// EdgeCrosses reports if a street from a to b would cut through any
// existing edge or obstacle.
func (m *TownMap) EdgeCrosses(a, b r2.Point) bool {
	l := line.New(a, b)
	area := quad.FromPoints(a, b)
	for _, res := range m.edgeMap.Query(area) {
		e := m.edges[res.Value]
		if l.Crosses(line.New(e.UVA, e.UVB)) {
			return true
		}
	}
	for _, res := range m.obstacleMap.Query(area) {
		o := m.obstacles[res.Value]
		if l.Crosses(line.New(o.A, o.B)) {
			return true
		}
	}
	return false
}

// JSON returns the map's nodes, edges & obstacles as JSON.
func (m *TownMap) JSON() ([]byte, error) {
	data, err := json.Marshal(struct {
		Settings  Settings    `json:"settings"`
		Nodes     []*Node     `json:"nodes"`
		Edges     []*Edge     `json:"edges"`
		Obstacles []*Obstacle `json:"obstacles"`
	}{m.settings, m.nodes, m.edges, m.obstacles})
	return data, errors.Wrap(err, "failed to encode town map")
}

// addEdge inserts the ref, keeping Edges in clockwise order.
func (n *Node) addEdge(ref EdgeRef) {
	n.Edges = append(n.Edges, ref)
	sort.SliceStable(n.Edges, func(i, j int) bool {
		return geom.CwCmp(n.Edges[i].OtherUV.Sub(n.UV), n.Edges[j].OtherUV.Sub(n.UV)) == geom.Less
	})
}

// HasNodeConnection returns if the node has an edge to other.
func (n *Node) HasNodeConnection(other NodeID) bool {
	for _, e := range n.Edges {
		if e.Other == other {
			return true
		}
	}
	return false
}

// HasEdge returns if the node is an end of the given edge.
func (n *Node) HasEdge(id EdgeID) bool {
	for _, e := range n.Edges {
		if e.Edge == id {
			return true
		}
	}
	return false
}

// IsIntersection is true where three or more streets meet.
func (n *Node) IsIntersection() bool {
	return len(n.Edges) >= 3
}

// IsPassThrough is true for nodes with exactly two edges.
func (n *Node) IsPassThrough() bool {
	return len(n.Edges) == 2
}

// IsEnd is true for dead ends.
func (n *Node) IsEnd() bool {
	return len(n.Edges) == 1
}

// IsStraight is true for a pass through node whose edges are within 45
// degrees of being opposite one another.
func (n *Node) IsStraight() bool {
	if !n.IsPassThrough() {
		return false
	}
	return n.EdgeDir(0).Dot(n.EdgeDir(1)) < -math.Sqrt2/2
}

// IsCorner is a pass through node that isn't straight.
func (n *Node) IsCorner() bool {
	return n.IsPassThrough() && !n.IsStraight()
}

// EdgeDir returns the normalised direction from the node along edge i.
func (n *Node) EdgeDir(i int) r2.Point {
	return n.Edges[i].OtherUV.Sub(n.UV).Normalize()
}

// GapAngle is the clockwise angle between edge i & the next edge round.
// A node with one edge has a full circle gap.
func (n *Node) GapAngle(i int) float64 {
	if len(n.Edges) == 1 {
		return 2 * math.Pi
	}
	next := (i + 1) % len(n.Edges)
	return geom.CwAnglePos(n.EdgeDir(i), n.EdgeDir(next))
}

// NearestEdge returns the edge pointing closest to dir, and the cosine of
// the angle between them. Returns -1 if the node has no edges.
func (n *Node) NearestEdge(dir r2.Point) (int, float64) {
	dir = dir.Normalize()
	best, bestCos := -1, math.Inf(-1)
	for i := range n.Edges {
		c := n.EdgeDir(i).Dot(dir)
		if c > bestCos {
			best, bestCos = i, c
		}
	}
	return best, bestCos
}

// LargestEdgeGap returns the edge with the widest clockwise gap after it,
// and the direction bisecting that gap. Nodes without edges return -1 &
// due east.
func (n *Node) LargestEdgeGap() (int, r2.Point) {
	if len(n.Edges) == 0 {
		return -1, r2.Point{X: 1}
	}
	best, bestGap := 0, n.GapAngle(0)
	for i := 1; i < len(n.Edges); i++ {
		if g := n.GapAngle(i); g > bestGap {
			best, bestGap = i, g
		}
	}
	return best, geom.Rotate(n.EdgeDir(best), bestGap/2)
}
