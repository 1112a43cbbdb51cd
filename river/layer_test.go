package river

import (
	"math"
	"sync"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NodeSeparation = 100
	cfg.MaxInfluenceR = 400
	cfg.MinStrahler = 1
	cfg.CacheSize = 2
	cfg.MaxNodes = 10000
	return cfg
}

func TestNewLayerBadCacheSize(t *testing.T) {
	cfg := testConfig()
	cfg.CacheSize = 0

	_, err := NewLayer(testSampler, cfg)
	require.Error(t, err)
}

func TestLayerCachesRegions(t *testing.T) {
	l, err := NewLayer(testSampler, testConfig())
	require.NoError(t, err)

	nucleus := r3.Vector{X: 1}
	at := testPlane.XYZ(r2.Point{X: 10, Y: 10})

	a := l.Region(testCell, nucleus, at)
	b := l.Region(testCell, nucleus, at)
	assert.Same(t, a, b)
	assert.NotEmpty(t, a.Graph.Nodes())
	assert.Equal(t, testCell, a.Cell)
}

func TestLayerHeight(t *testing.T) {
	l, err := NewLayer(testSampler, testConfig())
	require.NoError(t, err)

	nucleus := r3.Vector{X: 1}
	r := l.Region(testCell, nucleus, testPlane.XYZ(r2.Point{}))
	items := r.Graph.Segments().Items()
	require.NotEmpty(t, items)

	xyz := testPlane.XYZ(items[0].Value.Curve.A)
	h := l.Height(xyz, testCell, nucleus, 50)
	assert.False(t, math.IsNaN(h))
	assert.Less(t, h, 50.0)
}

func TestLayerConcurrent(t *testing.T) {
	l, err := NewLayer(testSampler, testConfig())
	require.NoError(t, err)

	nucleus := r3.Vector{X: 1}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			xyz := testPlane.XYZ(r2.Point{X: float64(i * 50), Y: 0})
			h := l.Height(xyz, testCell, nucleus, 10)
			assert.False(t, math.IsNaN(h))
		}(i)
	}
	wg.Wait()
}

func TestRegionStartsInCell(t *testing.T) {
	// nucleus outside of the disc; exploration starts from the vertex
	// nearest the query instead
	nucleus := testPlane.XYZ(r2.Point{X: 5000}).Normalize()
	at := testPlane.XYZ(r2.Point{X: 0, Y: 0})

	sample := func(xyz r3.Vector) (Cell, float64) {
		uv := testPlane.UV(xyz.Normalize().Mul(testRadius))
		if uv.Sub(r2.Point{X: 0}).Norm() > 1000 {
			return Cell{1, 0, 0}, 0
		}
		return testCell, uv.X
	}

	r := NewRegion(testCell, nucleus, at, sample, testConfig())
	assert.NotEmpty(t, r.Graph.Nodes())
}
