package encoding

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const (
	hashMul = 0x45d9f3b
)

// IdxHash hashes a single index into a new uint32.
//
// Only the low 32 bits of the index take part; the mixing is the usual
// xor-shift-multiply integer hash so neighbouring indices land far apart.
func IdxHash(i int64) uint32 {
	x := uint32(i)
	x = ((x >> 16) ^ x) * hashMul
	x = ((x >> 16) ^ x) * hashMul
	return (x >> 16) ^ x
}

// HashIndices combines a seed & three cell indices into one hash.
// Addition wraps.
func HashIndices(seed uint32, x, y, z int64) uint32 {
	return IdxHash(int64(seed)) + IdxHash(x) + IdxHash(y) + IdxHash(z)
}

// Rand1 maps a hash onto [-1, 1).
func Rand1(x uint32) float64 {
	return float64(x)/2147483648.0 - 1.0
}

// Rand2 maps a hash onto a vector with both components in [-1, 1).
// The low 16 bits make up X, the high 16 bits Y.
func Rand2(x uint32) r2.Point {
	hi, lo := Split32(x)
	return r2.Point{
		X: float64(lo)/32768.0 - 1.0,
		Y: float64(hi)/32768.0 - 1.0,
	}
}

// Rand3 maps a hash onto a vector with all components in [-1, 1).
// Bits are spent 11 / 10 / 11.
func Rand3(x uint32) r3.Vector {
	return r3.Vector{
		X: float64(Bits(x, 0, 11))/1024.0 - 1.0,
		Y: float64(Bits(x, 11, 10))/512.0 - 1.0,
		Z: float64(Bits(x, 21, 11))/1024.0 - 1.0,
	}
}
