package procede

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/river"
)

const testRadius = 6.357e6

var testPlane = geom.NewTangentPlane(r3.Vector{X: testRadius})

// discOracle is a single plate of radius 1000 around the plane origin;
// ocean to the west rising to hills in the east.
type discOracle struct{}

func (discOracle) Height(xyz r3.Vector) TectonicInfo {
	uv := testPlane.UV(xyz)
	if uv.Norm() > 1000 {
		return TectonicInfo{Cell: [3]int64{1, 0, 0}, Nucleus: r3.Vector{Y: 1}}
	}
	return TectonicInfo{
		Height:  uv.X - 200 + 60*math.Sin(uv.Y/150),
		Cell:    [3]int64{0, 0, 0},
		Nucleus: r3.Vector{X: 1},
	}
}

type addLayer float64

func (a addLayer) Height(xyz r3.Vector, base TectonicInfo) float64 {
	return base.Height + float64(a)
}

type doubleLayer struct{}

func (doubleLayer) Height(xyz r3.Vector, base TectonicInfo) float64 {
	return base.Height * 2
}

func testRiverConfig() river.Config {
	cfg := river.DefaultConfig()
	cfg.NodeSeparation = 100
	cfg.MaxInfluenceR = 400
	cfg.MinStrahler = 1
	cfg.CacheSize = 2
	cfg.MaxNodes = 10000
	cfg.Radius = testRadius
	return cfg
}

func TestWorldHeightZeroPanics(t *testing.T) {
	w := NewWithLayers(discOracle{})
	assert.Panics(t, func() { w.Height(r3.Vector{}) })
}

func TestWorldLayersApplyInOrder(t *testing.T) {
	w := NewWithLayers(discOracle{}, addLayer(10), doubleLayer{})

	xyz := testPlane.XYZ(r2.Point{X: 300})
	base := discOracle{}.Height(xyz).Height

	assert.InDelta(t, (base+10)*2, w.Height(xyz).Height, 1e-9)
}

func TestWorldRivers(t *testing.T) {
	rivers, err := NewRiverLayer(discOracle{}, testRiverConfig())
	require.NoError(t, err)
	w := NewWithLayers(discOracle{}, rivers)

	lowered := 0
	for x := -800.0; x <= 800; x += 100 {
		for y := -500.0; y <= 500; y += 100 {
			xyz := testPlane.XYZ(r2.Point{X: x, Y: y})
			base := discOracle{}.Height(xyz).Height

			h := w.Height(xyz).Height
			require.False(t, math.IsNaN(h))
			require.False(t, math.IsInf(h, 0))
			assert.LessOrEqual(t, h, base+1e-9)
			if h < base {
				lowered++
			}
		}
	}
	assert.Greater(t, lowered, 0)
}

func TestNewRiverLayerBadConfig(t *testing.T) {
	cfg := testRiverConfig()
	cfg.CacheSize = 0

	_, err := NewRiverLayer(discOracle{}, cfg)
	assert.Error(t, err)
}

func TestNewWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.Seed = 7
	cfg.Rivers.MaxNodes = 200

	w, err := New(cfg)
	require.NoError(t, err)
	assert.Same(t, cfg, w.Config())

	h := w.Height(r3.Vector{X: 1, Y: 0.3, Z: 0.2}).Height
	assert.False(t, math.IsNaN(h))
	assert.False(t, math.IsInf(h, 0))

	again := w.Height(r3.Vector{X: 2, Y: 0.6, Z: 0.4}).Height
	assert.InDelta(t, h, again, 1e-6)

	data, err := w.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed":7`)
}

func TestNewWorldInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.Radius = 0

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestWorldWithoutConfig(t *testing.T) {
	w := NewWithLayers(discOracle{})

	_, err := w.JSON()
	assert.Equal(t, ErrNoConfig, errors.Cause(err))

	err = w.SaveJSON(filepath.Join(t.TempDir(), "world.json"))
	assert.Equal(t, ErrNoConfig, errors.Cause(err))
}
