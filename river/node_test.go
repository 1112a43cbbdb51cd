package river

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/procede/hex"
)

func testNode() Node {
	n := NewNode(0, hex.Index{}, r2.Point{}, 0)
	n.Neighbors = [3]uint32{10, 20, 30}
	return n
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(4, hex.Index{X: 1, Y: 2}, r2.Point{X: 3, Y: 4}, 12)

	assert.Equal(t, uint32(4), n.Index)
	assert.Equal(t, [3]uint32{None, None, None}, n.Neighbors)
	assert.Equal(t, [2]uint32{None, None}, n.Inlets)
	assert.Equal(t, uint32(None), n.Outlet)
	assert.Equal(t, -1.0, n.ForkAngle)
	assert.Equal(t, -1, n.Strahler)
	assert.True(t, n.IsMouth())
	assert.True(t, n.IsSource())
	assert.False(t, n.IsFork())
}

func TestAddInletOrder(t *testing.T) {
	cases := []struct {
		name   string
		add    [2]uint32
		expect [2]uint32
	}{
		{"clockwise pair", [2]uint32{20, 30}, [2]uint32{20, 30}},
		{"wrapping pair", [2]uint32{30, 10}, [2]uint32{30, 10}},
		{"reversed pair", [2]uint32{20, 10}, [2]uint32{10, 20}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			n := testNode()
			n.AddInlet(tt.add[0])
			n.AddInlet(tt.add[1])

			assert.Equal(t, tt.expect, n.Inlets)
			assert.Equal(t, tt.expect[0], n.LeftInlet())
			assert.Equal(t, tt.expect[1], n.RightInlet())
		})
	}
}

func TestNodeForkAndMouth(t *testing.T) {
	n := testNode()
	assert.False(t, n.IsFork())

	n.AddInlet(20)
	assert.False(t, n.IsFork())
	assert.False(t, n.IsSource())
	assert.Equal(t, []uint32{20}, n.Upriver())

	n.AddInlet(30)
	assert.True(t, n.IsFork())
	assert.Equal(t, []uint32{20, 30}, n.Upriver())

	assert.True(t, n.IsMouth())
	n.Outlet = 10
	assert.False(t, n.IsMouth())
}

func TestAddInletPanics(t *testing.T) {
	n := testNode()
	n.AddInlet(20)
	n.AddInlet(30)
	require.Panics(t, func() { n.AddInlet(10) })

	n = testNode()
	n.AddInlet(20)
	require.Panics(t, func() { n.AddInlet(99) })
}

func TestWidth(t *testing.T) {
	assert.InDelta(t, 1.0, Width(0), 0.5)
	assert.Equal(t, 1.5, Width(1))
	assert.Equal(t, 10.0, Width(4))
	assert.Equal(t, 1000.0, Width(10))
	assert.Equal(t, 4000.0, Width(12))

	assert.Equal(t, Width(0), Width(-1))
	assert.Equal(t, Width(MaxStrahler), Width(40))
}

func TestFindMouths(t *testing.T) {
	heights := []float64{-13, -24, -11, 18}
	neighbors := [][3]uint32{
		{1, 2, 3},
		{0, 2, None},
		{0, 1, 3},
		{0, 2, None},
	}
	nodes := make([]Node, len(heights))
	for i := range nodes {
		nodes[i] = NewNode(uint32(i), hex.Index{}, r2.Point{X: float64(i)}, heights[i])
		nodes[i].Neighbors = neighbors[i]
	}

	mouths := FindMouths(nodes, 0.05)
	require.Len(t, mouths, 2)
	assert.Equal(t, uint32(0), mouths[0].Node)
	assert.Equal(t, uint32(2), mouths[1].Node)

	// bias points at node 3
	assert.InDelta(t, 0.05, mouths[0].Bias.X, 1e-9)
	assert.InDelta(t, 0.05, mouths[1].Bias.X, 1e-9)
}
