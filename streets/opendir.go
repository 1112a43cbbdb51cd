package streets

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/geom"
)

// cos45 is the cosine of 45 degrees; an edge whose reverse has no edge
// within 45 degrees of it is un-continued.
const cos45 = math.Sqrt2 / 2

// OpenDir yields candidate directions to grow streets out of a node.
//
// First come the continuations of any un-continued edges, then directions
// bisecting the gaps between edges. Each further pass over the list is
// rotated by a growing offset, alternating sides: 0, -step, +step,
// -2*step and so on. OpenDir never runs out; not every direction will be
// usable so callers should filter them.
type OpenDir struct {
	node        *Node
	i           int
	offset      float64
	step        float64
	unContinued []int
}

// NewOpenDir returns the open directions of the given node. The node's
// edges should not change while the OpenDir is in use.
func NewOpenDir(n *Node, step float64) *OpenDir {
	return &OpenDir{node: n, step: step, unContinued: unContinued(n)}
}

// unContinued returns the edges with no edge roughly opposite them.
func unContinued(n *Node) []int {
	out := []int{}
	for i := range n.Edges {
		_, cos := n.NearestEdge(n.EdgeDir(i).Mul(-1))
		if cos < cos45 {
			out = append(out, i)
		}
	}
	return out
}

// Offset is the rotation currently applied to yielded directions.
func (o *OpenDir) Offset() float64 {
	return o.offset
}

// Next returns the next direction, pointing away from the node.
func (o *OpenDir) Next() r2.Point {
	var res r2.Point

	total := len(o.node.Edges) + len(o.unContinued)
	switch {
	case len(o.node.Edges) == 0:
		total = 1
		res = geom.Rotate(r2.Point{X: 1}, -o.offset)
	case o.i < len(o.unContinued):
		res = geom.Rotate(o.node.EdgeDir(o.unContinued[o.i]).Mul(-1), -o.offset)
	default:
		i := o.i - len(o.unContinued)
		res = geom.Rotate(o.node.EdgeDir(i), o.node.GapAngle(i)/2+o.offset)
	}

	o.i++
	if o.i >= total {
		o.i = 0
		if o.offset >= 0 {
			o.offset = -(o.offset + o.step)
		} else {
			o.offset = -o.offset
		}
	}
	return res
}
