package hex

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireNear(t *testing.T, expect, actual r2.Point) {
	t.Helper()
	require.InDelta(t, expect.X, actual.X, 1e-6)
	require.InDelta(t, expect.Y, actual.Y, 1e-6)
}

func TestVertexPos(t *testing.T) {
	g := New(1)

	requireNear(t, r2.Point{X: 0, Y: 0}, g.Pos(Index{0, 0}))
	requireNear(t, r2.Point{X: 0, Y: 1}, g.Pos(Index{0, 1}))
	requireNear(t, r2.Point{X: 0.866025403, Y: 1.5}, g.Pos(Index{0, 2}))
	requireNear(t, r2.Point{X: 0.866025403, Y: 2.5}, g.Pos(Index{0, 3}))
	requireNear(t, r2.Point{X: 0, Y: 3}, g.Pos(Index{0, 4}))
	requireNear(t, r2.Point{X: 0.866025403, Y: -0.5}, g.Pos(Index{0, -1}))
	requireNear(t, r2.Point{X: -0.866025403, Y: 1.5}, g.Pos(Index{-1, 2}))
	requireNear(t, r2.Point{X: 2.598076211353316, Y: 1.5}, g.Pos(Index{1, 2}))
	requireNear(t, r2.Point{X: 1.7320508, Y: 0}, g.Pos(Index{1, 0}))
	requireNear(t, r2.Point{X: 0, Y: -3}, g.Pos(Index{0, -4}))
}

func TestNeighborTable(t *testing.T) {
	g := New(1)
	assert.Equal(t, [3]Index{{0, 1}, {0, -1}, {-1, -1}}, g.Neighbors(Index{0, 0}))
	assert.Equal(t, [3]Index{{1, 2}, {1, 0}, {0, 2}}, g.Neighbors(Index{1, 1}))
	assert.Equal(t, [3]Index{{-1, 3}, {0, 1}, {-1, 1}}, g.Neighbors(Index{-1, 2}))
	assert.Equal(t, [3]Index{{0, 4}, {1, 4}, {0, 2}}, g.Neighbors(Index{0, 3}))
}

func TestNeighborsOneEdgeAway(t *testing.T) {
	for _, e := range []float64{1, 10000} {
		g := New(e)
		for x := int64(-5); x <= 5; x++ {
			for y := int64(-9); y <= 9; y++ {
				v := Index{x, y}
				p := g.Pos(v)
				for _, n := range g.Neighbors(v) {
					d := g.Pos(n).Sub(p).Norm()
					require.InDelta(t, e, d, 1e-6*e, "%v -> %v", v, n)
				}
			}
		}
	}
}

func TestNeighborsClockwise(t *testing.T) {
	g := New(1)
	for y := int64(-4); y < 4; y++ {
		v := Index{2, y}
		n := g.Neighbors(v)
		a, b, c := g.Pos(n[0]), g.Pos(n[1]), g.Pos(n[2])
		area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
		require.Less(t, area, 0.0, "row %d", y)
	}
}

func TestNeighborsAreMutual(t *testing.T) {
	g := New(1)
	for y := int64(-6); y < 6; y++ {
		v := Index{0, y}
		for _, n := range g.Neighbors(v) {
			require.Contains(t, g.Neighbors(n), v)
		}
	}
}

func TestIndices(t *testing.T) {
	g := New(100)
	for x := int64(-3); x <= 3; x++ {
		for y := int64(-8); y <= 8; y++ {
			idx := Index{x, y}
			p := g.Pos(idx)
			require.Equal(t, idx, g.Indices(p))
			require.Equal(t, idx, g.Indices(p.Add(r2.Point{X: 10, Y: -10})))
		}
	}
}
