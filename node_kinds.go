package procede

import (
	"github.com/voidshard/procede/streets"
)

// NodeKind describes the shape of the streets meeting at a node.
type NodeKind string

const (
	Isolated     NodeKind = "isolated"     // no streets at all
	DeadEnd      NodeKind = "dead-end"     // a single street
	Straight     NodeKind = "straight"     // two streets, roughly opposite
	Corner       NodeKind = "corner"       // two streets at an angle
	Intersection NodeKind = "intersection" // three or more streets
)

var (
	allNodeKinds = []NodeKind{Intersection, Corner, Straight, DeadEnd, Isolated}

	// 0 is kept for "not a node"
	kindIndex = map[NodeKind]uint8{
		Intersection: 1,
		Corner:       2,
		Straight:     3,
		DeadEnd:      4,
		Isolated:     5,
	}

	invKindIndex = map[uint8]NodeKind{}
)

func init() {
	for k, v := range kindIndex {
		invKindIndex[v] = k
	}
}

// ID returns the index of a node kind, or 0 if it isn't known.
func (k NodeKind) ID() uint8 {
	return kindIndex[k]
}

// kindForID is the inversion of NodeKind.ID()
func kindForID(i uint8) (NodeKind, bool) {
	k, ok := invKindIndex[i]
	return k, ok
}

// AllNodeKinds returns all known NodeKinds
func AllNodeKinds() []NodeKind {
	return allNodeKinds
}

// KindOf returns the kind of the given node.
func KindOf(n *streets.Node) NodeKind {
	switch {
	case n.IsIntersection():
		return Intersection
	case n.IsStraight():
		return Straight
	case n.IsCorner():
		return Corner
	case n.IsEnd():
		return DeadEnd
	}
	return Isolated
}
