package streets

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/procede/internal/line"
)

func TestRadialOnEmptyMap(t *testing.T) {
	plan := NewTownPlan(DefaultPlanSettings())
	plan.Add(plan.Radial(r2.Point{}, 3, 300))

	m, err := plan.Build()
	require.NoError(t, err)

	require.Len(t, m.Edges(), 9)
	centre, _, ok := m.FindNearestNode(r2.Point{}, 1)
	require.True(t, ok)
	assert.True(t, m.Node(centre).IsIntersection())

	for _, e := range m.Edges() {
		assert.LessOrEqual(t, e.UVA.Sub(e.UVB).Norm(), 150.0+1e-9)
	}

	edges := m.Edges()
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			a := line.New(edges[i].UVA, edges[i].UVB)
			b := line.New(edges[j].UVA, edges[j].UVB)
			assert.False(t, a.Crosses(b), "edges %d & %d cross", i, j)
		}
	}
}

func TestRadialStartsFromMostValuableNode(t *testing.T) {
	plan := NewTownPlan(DefaultPlanSettings())
	plan.Add(
		NewStreetSegment(pt(-1000, 0), pt(-900, 0), 1),
		NewRiverSegment(pt(500, 100), pt(700, 100), 40),
		NewStreetSegment(pt(600, 0), pt(600, -100), 1),
		plan.Radial(pt(-1000, 0), 1, 300),
	)

	m, err := plan.Build()
	require.NoError(t, err)

	// the street by the river is closest to it, so the spoke grows there
	id, _, ok := m.FindNearestNode(pt(600, 0), 1)
	require.True(t, ok)
	assert.Len(t, m.Node(id).Edges, 2)
}

func TestTownPlanBuildError(t *testing.T) {
	plan := NewTownPlan(DefaultPlanSettings())
	plan.Add(NewStreetSegment(pt(1, 1), pt(1, 1), 1))

	_, err := plan.Build()
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateSegment, errors.Cause(err))
	assert.Len(t, plan.Builders(), 1)
}
