package river

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r3"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/pkg/errors"
)

// Layer carves rivers into heights, generating a Region per tectonic cell
// on demand.
//
// Layer is safe for concurrent use. Regions are generated outside of the
// cache lock, so two callers missing the same cell may both generate it.
type Layer struct {
	cfg    Config
	sample Sampler

	lock  sync.Mutex
	cache *simplelru.LRU[Cell, *Region]
}

// NewLayer returns a layer reading base heights & cells from sample.
func NewLayer(sample Sampler, cfg Config) (*Layer, error) {
	cache, err := simplelru.NewLRU[Cell, *Region](cfg.CacheSize, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid river cache size %d", cfg.CacheSize)
	}
	return &Layer{cfg: cfg, sample: sample, cache: cache}, nil
}

// Height returns the base height h0 at xyz with rivers carved in. cell &
// nucleus identify the tectonic cell xyz lies within.
func (l *Layer) Height(xyz r3.Vector, cell Cell, nucleus r3.Vector, h0 float64) float64 {
	return l.Region(cell, nucleus, xyz).Height(xyz, h0)
}

// Region returns the cached region for cell, generating it if needed.
func (l *Layer) Region(cell Cell, nucleus, at r3.Vector) *Region {
	l.lock.Lock()
	r, ok := l.cache.Get(cell)
	l.lock.Unlock()

	instrumentCacheLookup(ok)
	if ok {
		return r
	}

	start := time.Now()
	r = NewRegion(cell, nucleus, at, l.sample, l.cfg)
	instrumentRegionGenerated(start)
	logs.WithTag("cell", cell).
		WithTag("nodes", len(r.Graph.Nodes())).
		WithTag("segments", r.Graph.Segments().Len()).
		Debug("river region generated")

	l.lock.Lock()
	l.cache.Add(cell, r)
	l.lock.Unlock()
	return r
}
