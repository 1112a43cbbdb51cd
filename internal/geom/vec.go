package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Ordering results as returned by CwCmp.
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// CwCmp orders two directions clockwise, starting from +Y (north).
//
// Vectors on the +X half (including due north) sort before anything on
// the -X half. Within a half the sign of the 2D cross product decides.
// Inputs need not be normalised.
func CwCmp(a, b r2.Point) int {
	a = a.Normalize()
	b = b.Normalize()

	if a.X >= 0 && b.X < 0 {
		return Less
	}
	if a.X < 0 && b.X >= 0 {
		return Greater
	}
	if a.X == 0 && b.X == 0 {
		if a.Y >= 0 && b.Y < 0 {
			return Less
		} else if a.Y < 0 && b.Y > 0 {
			return Greater
		}
		return Equal
	}

	det := a.X*b.Y - b.X*a.Y
	if det < 0 {
		return Less
	} else if det > 0 {
		return Greater
	}
	return Equal
}

// IsClockwise returns true if b lies clockwise of a, taking the shorter
// way around.
func IsClockwise(a, b r2.Point) bool {
	acuteCw := b.Y*a.X > b.X*a.Y
	if a.Dot(b) > 0 {
		return acuteCw
	}
	return !acuteCw
}

// CcwAngle is the signed counter-clockwise angle from a to b, in (-π, π].
func CcwAngle(a, b r2.Point) float64 {
	a = a.Normalize()
	b = b.Normalize()
	return math.Atan2(a.X*b.Y-a.Y*b.X, a.Dot(b))
}

// CwAngle is the signed clockwise angle from a to b.
func CwAngle(a, b r2.Point) float64 {
	return -CcwAngle(a, b)
}

// CcwAnglePos is CcwAngle mapped onto [0, 2π).
func CcwAnglePos(a, b r2.Point) float64 {
	return positiveAngle(CcwAngle(a, b))
}

// CwAnglePos is CwAngle mapped onto [0, 2π).
func CwAnglePos(a, b r2.Point) float64 {
	return positiveAngle(CwAngle(a, b))
}

func positiveAngle(rad float64) float64 {
	if rad < 0 {
		return rad + 2*math.Pi
	}
	return rad
}

// Rotate turns v clockwise by rad radians.
func Rotate(v r2.Point, rad float64) r2.Point {
	r := -rad
	sin, cos := math.Sincos(r)
	return r2.Point{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// Lerp interpolates linearly between a & b.
func Lerp(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// PartialMax returns the item with the greatest key. Items whose key is NaN
// are never picked. The first of several equal maxima wins.
func PartialMax[T any](items []T, key func(T) float64) (T, float64, bool) {
	var (
		best  T
		bestK = math.NaN()
		found bool
	)
	for _, item := range items {
		k := key(item)
		if math.IsNaN(k) {
			continue
		}
		if !found || k > bestK {
			best, bestK, found = item, k, true
		}
	}
	return best, bestK, found
}

// SignSafeSqrt is sqrt(|x|) carrying the sign of x.
func SignSafeSqrt(x float64) float64 {
	if x < 0 {
		return -math.Sqrt(-x)
	}
	return math.Sqrt(x)
}
