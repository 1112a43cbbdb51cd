// Package tectonic produces base terrain heights from a layer of drifting
// tectonic plates. Each plate is one cell of a 3D voronoi space; where
// plates meet, their closing rate raises (or sinks) a ridge.
package tectonic

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/internal/voronoi"
)

const (
	// DefaultRegionWidth is the width of a plate region in meters.
	DefaultRegionWidth = 3.0e6
	// DefaultRadius is the planet radius in meters.
	DefaultRadius = 6.357e6
	// DefaultCacheSize is how many plates we hold on to.
	DefaultCacheSize = 1000

	minBaseHeight  = -3920.0
	maxBaseHeight  = 1680.0
	meanBaseHeight = (minBaseHeight + maxBaseHeight) / 2
	baseRange      = maxBaseHeight - minBaseHeight

	blurRadius     = 2e5
	maxRidgeHeight = 8000.0

	warpAmplitude = 0.6
	warpFrequency = 0.6
	zSquash       = 0.66
)

// Info is the height at a position plus the plate it lies on.
type Info struct {
	Height  float64   `json:"height"`
	Cell    [3]int64  `json:"cell"`
	Nucleus r3.Vector `json:"nucleus"`
}

// Plate is a single tectonic plate.
type Plate struct {
	Cell       voronoi.Index
	Nucleus    r3.Vector
	Motion     r2.Point
	BaseHeight float64
}

// Layer answers height queries over the whole sphere. Layer is safe for
// concurrent use.
type Layer struct {
	seed   uint32
	radius float64
	space  *voronoi.Space
	plates *lru.Cache[voronoi.Index, *Plate]

	height  *fbm
	motionX *fbm
	motionY *fbm
	warp    *fbm
	ridge   *fbm
}

// New returns a tectonic layer with default dimensions.
func New(seed uint32) (*Layer, error) {
	return NewWithSize(seed, DefaultRadius, DefaultRegionWidth, DefaultCacheSize)
}

// NewWithSize returns a tectonic layer for a planet of the given radius.
func NewWithSize(seed uint32, radius, regionWidth float64, cacheSize int) (*Layer, error) {
	plates, err := lru.New[voronoi.Index, *Plate](cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid plate cache size %d", cacheSize)
	}
	s := int64(seed)
	return &Layer{
		seed:    seed,
		radius:  radius,
		space:   voronoi.NewSpace(seed, regionWidth),
		plates:  plates,
		height:  newFbm(s),
		motionX: newFbm(s + 100),
		motionY: newFbm(s + 200),
		warp:    newFbm(s + 300),
		ridge:   newFbm(s + 400),
	}, nil
}

// Height returns the height at the surface position in the direction of
// v from the planet centre. v need not be normalised but must not be
// zero.
func (l *Layer) Height(v r3.Vector) Info {
	adj := l.adjust(v)
	near := l.space.Near4(l.surface(adj))
	nearest := near[0].Dist

	baseMean := 0.0
	baseWeight := 1.0
	ridgeMean := 0.0
	ridgeWeight := 0.0
	var motion r2.Point

	for i, n := range near {
		edge := (n.Dist - nearest) / 2
		if edge >= blurRadius {
			continue
		}

		p := l.Plate(n.Region, n.Nucleus)
		if i == 0 {
			baseMean += p.BaseHeight
			motion = p.Motion
			continue
		}

		w := 1 - edge/blurRadius
		baseMean += p.BaseHeight * w
		baseWeight += w

		rh, rw := l.ridgeHeight(adj, near[0].Nucleus, motion, n.Nucleus, p.Motion, w)
		ridgeMean += rh
		ridgeWeight += rw
	}
	baseMean /= baseWeight

	h := baseMean
	if ridgeWeight > 0 {
		h += ridgeInvert(ridgeMean/ridgeWeight, baseMean)
	}

	return Info{
		Height:  h,
		Cell:    [3]int64(near[0].Region),
		Nucleus: near[0].Nucleus,
	}
}

// Plate returns the plate for the given cell, building it if needed.
func (l *Layer) Plate(cell voronoi.Index, nucleus r3.Vector) *Plate {
	if p, ok := l.plates.Get(cell); ok {
		return p
	}

	sample := l.surface(nucleus).Mul(1 / 6.3e6)
	noise := l.height.At(r3.Vector{X: sample.X, Y: sample.Y, Z: sample.Z / zSquash})

	// 1.86 rather than 2 makes up some of the range lost to fbm, which
	// rarely strays far past +/- 0.5
	p := &Plate{
		Cell:       cell,
		Nucleus:    nucleus,
		BaseHeight: geom.SignSafeSqrt(noise)*baseRange/1.86 + meanBaseHeight,
		Motion:     r2.Point{X: l.motionX.At(sample), Y: l.motionY.At(sample)},
	}
	l.plates.Add(cell, p)

	logs.WithTag("cell", cell).WithTag("base_height", p.BaseHeight).Debug("tectonic plate generated")
	return p
}

// adjust normalises v, warps it with noise & squashes the z axis so plates
// stretch east-west.
func (l *Layer) adjust(v r3.Vector) r3.Vector {
	v = v.Normalize()
	at := v.Mul(warpFrequency)
	dx := l.warp.At(at) * warpAmplitude
	dy := l.warp.At(at.Add(r3.Vector{X: 0.5 * warpFrequency})) * warpAmplitude
	dz := l.warp.At(at.Sub(r3.Vector{X: 0.7 * warpFrequency})) * warpAmplitude
	return r3.Vector{X: v.X + dx, Y: v.Y + dy, Z: (v.Z + dz) * zSquash}
}

func (l *Layer) surface(v r3.Vector) r3.Vector {
	return v.Normalize().Mul(l.radius)
}

// ridgeHeight returns the height of the ridge between plates a & b and the
// weight it carries.
func (l *Layer) ridgeHeight(v, aNucleus r3.Vector, aMotion r2.Point, bNucleus r3.Vector, bMotion r2.Point, w float64) (float64, float64) {
	rate := l.closingRate(aNucleus, aMotion, bNucleus, bMotion)
	amp := w * (0.8 + geom.SignSafeSqrt(l.ridge.noise.Eval3(v.X, v.Y, v.Z)))
	h := rate * maxRidgeHeight * amp
	if h < 0 {
		h /= 3
	}
	return h, w
}

// closingRate is how quickly plates a & b approach one another; negative
// if they're drifting apart.
func (l *Layer) closingRate(aNucleus r3.Vector, aMotion r2.Point, bNucleus r3.Vector, bMotion r2.Point) float64 {
	a := l.surface(aNucleus)
	b := l.surface(bNucleus)

	posDiff := b.Sub(a)
	motDiff := motion3D(a, aMotion).Sub(motion3D(b, bMotion))
	if posDiff.Norm2() == 0 || motDiff.Norm2() == 0 {
		return 0
	}

	cos := posDiff.Normalize().Dot(motDiff.Normalize())
	return math.Max(-1, math.Min(1, cos*motDiff.Norm()/2))
}

// motion3D maps a surface motion at p into 3D.
func motion3D(p r3.Vector, m r2.Point) r3.Vector {
	u, v := geom.SphereUV(p)
	return u.Mul(m.X).Add(v.Mul(m.Y))
}

// ridgeInvert flips ridges into trenches under the oceans, fading across
// the shallows.
func ridgeInvert(ridge, base float64) float64 {
	switch {
	case base > 1000:
		return ridge
	case base < -1000:
		return -ridge
	}
	return ridge * base / 1000
}
