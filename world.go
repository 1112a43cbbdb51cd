// Package procede generates planetary terrain: heights anywhere on a
// sphere built from tectonic plates with rivers carved in, plus town
// street maps & lots (see the streets package).
package procede

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/voidshard/procede/internal/tectonic"
	"github.com/voidshard/procede/river"
)

// ErrNoConfig is returned when encoding a world built without a config.
var ErrNoConfig = errors.New("world has no config")

// World answers height queries for a whole planet.
type World struct {
	cfg      *Config
	tectonic TectonicOracle
	layers   []HeightLayer
}

// New creates a world with the reference tectonic layer & rivers.
func New(cfg *Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tect, err := tectonic.NewWithSize(cfg.World.Seed, cfg.World.Radius, cfg.World.RegionWidth, cfg.World.PlateCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tectonic layer")
	}

	rcfg := cfg.Rivers
	rcfg.Radius = cfg.World.Radius
	rivers, err := NewRiverLayer(tect, rcfg)
	if err != nil {
		return nil, err
	}

	logs.WithTag("seed", cfg.World.Seed).WithTag("radius", cfg.World.Radius).Debug("world created")

	w := NewWithLayers(tect, rivers)
	w.cfg = cfg
	return w, nil
}

// NewWithLayers creates a world from any tectonic oracle, applying the
// given layers in order.
func NewWithLayers(t TectonicOracle, layers ...HeightLayer) *World {
	return &World{tectonic: t, layers: layers}
}

// Config returns the config the world was built with, if any.
func (w *World) Config() *Config {
	return w.cfg
}

// Height returns the height at the surface in the direction of xyz.
// xyz must not be the zero vector.
func (w *World) Height(xyz r3.Vector) HeightInfo {
	if xyz == (r3.Vector{}) {
		panic("height requested for the zero vector")
	}

	base := w.tectonic.Height(xyz)
	for _, l := range w.layers {
		base.Height = l.Height(xyz, base)
	}
	return HeightInfo{Height: base.Height}
}

// JSON returns the world's config as json; the config (seed included)
// is all that's needed to recreate it.
func (w *World) JSON() ([]byte, error) {
	if w.cfg == nil {
		return nil, ErrNoConfig
	}
	return encodeJSON(w.cfg)
}

// SaveJSON writes a json file to the given path.
func (w *World) SaveJSON(fpath string) error {
	if w.cfg == nil {
		return ErrNoConfig
	}
	return SaveJSON(fpath, w.cfg)
}

// riverLayer carves rivers, one region per tectonic cell.
type riverLayer struct {
	layer *river.Layer
}

// NewRiverLayer returns a layer carving rivers into the heights of t.
func NewRiverLayer(t TectonicOracle, cfg river.Config) (HeightLayer, error) {
	sample := func(xyz r3.Vector) (river.Cell, float64) {
		info := t.Height(xyz)
		return river.Cell(info.Cell), info.Height
	}
	l, err := river.NewLayer(sample, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create river layer")
	}
	return &riverLayer{layer: l}, nil
}

// Height satisfies HeightLayer.
func (r *riverLayer) Height(xyz r3.Vector, base TectonicInfo) float64 {
	return r.layer.Height(xyz, river.Cell(base.Cell), base.Nucleus, base.Height)
}
