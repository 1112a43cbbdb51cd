package tectonic

import (
	"github.com/golang/geo/r3"
	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	fbmOctaves     = 4
	fbmLacunarity  = 2.0
	fbmPersistence = 0.5
)

// fbm is fractal noise: several octaves of simplex noise layered at
// doubling frequency & halving amplitude.
type fbm struct {
	noise opensimplex.Noise
}

func newFbm(seed int64) *fbm {
	return &fbm{noise: opensimplex.New(seed)}
}

// At returns the noise at v, roughly in [-1, 1].
func (f *fbm) At(v r3.Vector) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxVal := 0.0

	for i := 0; i < fbmOctaves; i++ {
		total += f.noise.Eval3(v.X*frequency, v.Y*frequency, v.Z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= fbmPersistence
		frequency *= fbmLacunarity
	}

	return total / maxVal
}
