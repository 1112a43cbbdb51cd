package streets

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func assertDir(t *testing.T, expect, got r2.Point) {
	t.Helper()
	assert.InDelta(t, expect.X, got.X, 1e-9)
	assert.InDelta(t, expect.Y, got.Y, 1e-9)
}

func TestOpenDirContinuesFirst(t *testing.T) {
	m := NewTownMap(DefaultSettings())
	a := m.AddNode(pt(0, 0))
	b := m.AddNode(pt(1, 0))
	c := m.AddNode(pt(1, -1.1))
	d := m.AddNode(pt(1, 1))
	m.AddEdgeBetween(a, b, 1)
	m.AddEdgeBetween(b, c, 1)
	m.AddEdgeBetween(b, d, 1)

	first := NewOpenDir(m.Node(b), 0.1).Next()
	assert.Equal(t, pt(1, 0), first)
}

func TestOpenDirNoEdges(t *testing.T) {
	m := NewTownMap(DefaultSettings())
	o := NewOpenDir(m.Node(m.AddNode(pt(0, 0))), 0.1)

	assert.Equal(t, pt(1, 0), o.Next())
	assert.InDelta(t, -0.1, o.Offset(), 1e-12)

	assertDir(t, pt(math.Cos(-0.1), math.Sin(-0.1)), o.Next())
	assert.InDelta(t, 0.1, o.Offset(), 1e-12)

	assertDir(t, pt(math.Cos(0.1), math.Sin(0.1)), o.Next())
	assert.InDelta(t, -0.2, o.Offset(), 1e-12)
}

func TestOpenDirGaps(t *testing.T) {
	m := NewTownMap(DefaultSettings())
	c := m.AddNode(pt(0, 0))
	m.AddEdgeBetween(c, m.AddNode(pt(10, 0)), 1)
	m.AddEdgeBetween(c, m.AddNode(pt(0, 10)), 1)

	o := NewOpenDir(m.Node(c), 0.1)

	// continuations of north, then east
	assertDir(t, pt(0, -1), o.Next())
	assertDir(t, pt(-1, 0), o.Next())

	// then the gap bisectors
	assertDir(t, pt(math.Sqrt2/2, math.Sqrt2/2), o.Next())
	assertDir(t, pt(-math.Sqrt2/2, -math.Sqrt2/2), o.Next())

	// second pass is rotated
	assert.InDelta(t, -0.1, o.Offset(), 1e-12)
	assertDir(t, pt(math.Sin(-0.1), -math.Cos(-0.1)), o.Next())
}
