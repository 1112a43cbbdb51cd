package river

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/hex"
)

// None marks an empty neighbour, inlet or outlet slot.
const None = math.MaxUint32

// Node is a single river graph vertex.
//
// Neighbours are clockwise ordered. When a node has two inlets, Inlets[0]
// is counter-clockwise of Inlets[1] as seen from the outlet.
type Node struct {
	Index      uint32    `json:"i"`
	HexIndices hex.Index `json:"indices"`
	UV         r2.Point  `json:"uv"`
	H          float64   `json:"h"`
	Neighbors  [3]uint32 `json:"neighbors"`
	Inlets     [2]uint32 `json:"inlets"`
	Outlet     uint32    `json:"outlet"`
	Direction  r2.Point  `json:"direction"`
	ForkAngle  float64   `json:"fork_angle"`
	Strahler   int       `json:"strahler"`
}

// Mouth is a node where a river meets the ocean, along with a small bias
// pointing inland which nudges the direction rivers grow in.
type Mouth struct {
	Node uint32   `json:"i"`
	Bias r2.Point `json:"bias"`
}

// NewNode returns a node with no neighbours, inlets or outlet.
func NewNode(i uint32, indices hex.Index, uv r2.Point, h float64) Node {
	return Node{
		Index:      i,
		HexIndices: indices,
		UV:         uv,
		H:          h,
		Neighbors:  [3]uint32{None, None, None},
		Inlets:     [2]uint32{None, None},
		Outlet:     None,
		ForkAngle:  -1,
		Strahler:   -1,
	}
}

// AddInlet records i as flowing into this node.
//
// The first inlet always takes slot 0. A second inlet is placed so that
// Inlets[0] stays counter-clockwise of Inlets[1]. Adding a third panics.
func (n *Node) AddInlet(i uint32) {
	if n.IsFork() {
		panic(fmt.Sprintf("node %d already has two inlets (%d, %d), cannot add %d", n.Index, n.Inlets[0], n.Inlets[1], i))
	}
	if n.Inlets[0] == None {
		n.Inlets[0] = i
		return
	}

	pos := -1
	for j, neighbor := range n.Neighbors {
		if neighbor == i {
			pos = j
			break
		}
	}
	if pos < 0 {
		panic(fmt.Sprintf("inlet %d is not a neighbour of node %d", i, n.Index))
	}

	if n.Inlets[0] == n.Neighbors[(pos+1)%3] {
		n.Inlets[1] = n.Inlets[0]
		n.Inlets[0] = i
	} else {
		n.Inlets[1] = i
	}
}

// IsFork is true if two rivers join at this node.
func (n Node) IsFork() bool {
	return n.Inlets[1] != None
}

// IsSource is true if nothing flows into this node.
func (n Node) IsSource() bool {
	return n.Inlets[0] == None
}

// IsMouth is true if this node has no outlet.
func (n Node) IsMouth() bool {
	return n.Outlet == None
}

// LeftInlet is the counter-clockwise inlet.
func (n Node) LeftInlet() uint32 {
	return n.Inlets[0]
}

// RightInlet is the clockwise inlet, or None.
func (n Node) RightInlet() uint32 {
	return n.Inlets[1]
}

// Upriver returns the set inlets.
func (n Node) Upriver() []uint32 {
	out := make([]uint32, 0, 2)
	for _, i := range n.Inlets {
		if i != None {
			out = append(out, i)
		}
	}
	return out
}

// Width is the base river width at this node.
func (n Node) Width() float64 {
	return Width(n.Strahler)
}
