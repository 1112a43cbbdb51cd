package voronoi

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/voidshard/procede/internal/encoding"
)

// Index identifies a single region of a Space.
type Index [3]int64

// Space is an infinite 3D voronoi noise. Space is cut into equal regions,
// each of which holds one nucleus at a position derived from its index.
type Space struct {
	Seed  uint32
	Shape r3.Vector
}

// Near is a nucleus found by Near4.
type Near struct {
	Region  Index
	Nucleus r3.Vector
	Dist    float64
}

// NewSpace returns a space of cubic regions of the given width.
func NewSpace(seed uint32, width float64) *Space {
	return &Space{Seed: seed, Shape: r3.Vector{X: width, Y: width, Z: width}}
}

// Region returns the index of the region holding v.
func (s *Space) Region(v r3.Vector) Index {
	return Index{
		int64(math.Floor(v.X / s.Shape.X)),
		int64(math.Floor(v.Y / s.Shape.Y)),
		int64(math.Floor(v.Z / s.Shape.Z)),
	}
}

// Nucleus returns the nucleus of a region. Nuclei are jittered up to one
// region width from the region origin in each axis.
func (s *Space) Nucleus(idx Index) r3.Vector {
	j := encoding.Rand3(encoding.HashIndices(s.Seed, idx[0], idx[1], idx[2]))
	return s.origin(idx).Add(r3.Vector{X: j.X * s.Shape.X, Y: j.Y * s.Shape.Y, Z: j.Z * s.Shape.Z})
}

func (s *Space) origin(idx Index) r3.Vector {
	return r3.Vector{
		X: float64(idx[0]) * s.Shape.X,
		Y: float64(idx[1]) * s.Shape.Y,
		Z: float64(idx[2]) * s.Shape.Z,
	}
}

// Near4 returns the four nuclei nearest v, nearest first.
func (s *Space) Near4(v r3.Vector) [4]Near {
	home := s.Region(v)

	var out [4]Near
	found := 0
	for i := int64(-2); i <= 2; i++ {
		for j := int64(-2); j <= 2; j++ {
			for k := int64(-2); k <= 2; k++ {
				if abs(i) == 2 && abs(j) == 2 && abs(k) == 2 {
					// corners can never be among the nearest
					continue
				}
				idx := Index{home[0] + i, home[1] + j, home[2] + k}
				n := s.Nucleus(idx)
				cand := Near{Region: idx, Nucleus: n, Dist: n.Sub(v).Norm()}

				// insertion sort into the 4 best
				place := found
				for place > 0 && cand.Dist < out[place-1].Dist {
					place--
				}
				if place >= 4 {
					continue
				}
				end := found
				if end == 4 {
					end = 3
				}
				copy(out[place+1:end+1], out[place:end])
				out[place] = cand
				if found < 4 {
					found++
				}
			}
		}
	}
	return out
}

func abs(i int64) int64 {
	if i < 0 {
		return -i
	}
	return i
}
