package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polygons are plain rings of points. The last point joins back up with the
// first, so a ring should not repeat its starting point. Polygons with holes
// aren't supported.

// Split cuts a polygon in two along the chord between vertices i0 & i1.
//
// The first result keeps vertices [0, i0] and [i1, n); the second holds
// [i0, i1]. The order of i0 & i1 doesn't matter.
func Split(poly []r2.Point, i0, i1 int) ([]r2.Point, []r2.Point) {
	if i0 == i1 {
		panic("cannot split polygon at a single vertex")
	}
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	if i1 >= len(poly) {
		panic("split index out of range")
	}

	a := make([]r2.Point, 0, len(poly)-(i1-i0)+1)
	a = append(a, poly[:i0+1]...)
	a = append(a, poly[i1:]...)

	b := make([]r2.Point, 0, i1-i0+1)
	b = append(b, poly[i0:i1+1]...)

	return a, b
}

// Halve splits a polygon into two, preferring rounder pieces over thin ones.
// At most 32 vertices are considered as split points.
func Halve(poly []r2.Point) ([]r2.Point, []r2.Point) {
	return HalveWithSamples(poly, 32)
}

// HalveWithSamples is Halve with a tunable sample limit.
func HalveWithSamples(poly []r2.Point, maxSamples int) ([]r2.Point, []r2.Point) {
	i0, i1 := HalveIndices(poly, maxSamples)
	return Split(poly, i0, i1)
}

// HalveIndices returns the vertex pair (i0 < i1) that Halve splits at.
//
// Every pairing of (decimated) vertices is tried, and the split with the
// smallest sum of squared perimeter / area ratios wins. With n samples
// that's n(n-1)/2 candidate splits.
func HalveIndices(poly []r2.Point, maxSamples int) (int, int) {
	if len(poly) < 4 {
		panic("need at least 4 vertices to halve a polygon")
	}

	decimation := 1 + len(poly)/maxSamples
	best := math.Inf(1)
	bestI0, bestI1 := -1, -1

	for i0 := 0; i0 < len(poly); i0 += decimation {
		for i1 := i0 + 1; i1 < len(poly); i1 += decimation {
			a, b := Split(poly, i0, i1)
			areaA := Area(a)
			areaB := Area(b)
			if areaA == 0 || areaB == 0 {
				// adjacent vertices; one half is a sliver
				continue
			}
			ratioA := Perimeter(a) / areaA
			ratioB := Perimeter(b) / areaB
			score := ratioA*ratioA + ratioB*ratioB
			if score < best {
				best = score
				bestI0, bestI1 = i0, i1
			}
		}
	}

	if bestI0 < 0 {
		// only degenerate splits; fall back to the most opposite pair
		return 0, len(poly) / 2
	}
	return bestI0, bestI1
}

// SignedArea returns the shoelace area; positive for counter-clockwise
// rings.
func SignedArea(poly []r2.Point) float64 {
	sum := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the (unsigned) area of a polygon.
func Area(poly []r2.Point) float64 {
	return math.Abs(SignedArea(poly))
}

// Perimeter returns the length of the closed ring.
func Perimeter(poly []r2.Point) float64 {
	total := 0.0
	for i, p := range poly {
		total += poly[(i+1)%len(poly)].Sub(p).Norm()
	}
	return total
}

// Centroid returns the mean of the polygon vertices.
func Centroid(poly []r2.Point) r2.Point {
	var c r2.Point
	if len(poly) == 0 {
		return c
	}
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(poly)))
}

// Bounds returns the lowest & highest x / y values of the polygon.
func Bounds(poly []r2.Point) (r2.Point, r2.Point) {
	if len(poly) == 0 {
		return r2.Point{}, r2.Point{}
	}
	lo, hi := poly[0], poly[0]
	for _, p := range poly[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Contains returns whether the point lies inside the polygon, by even-odd
// ray casting. Points exactly on an edge may go either way.
func Contains(poly []r2.Point, p r2.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ClipHalfPlane keeps the part of the polygon where dot(normal, p) <= max.
//
// This is one Sutherland-Hodgman pass, so concave input stays valid but
// may come back with zero-width bridges along the clip line.
func ClipHalfPlane(poly []r2.Point, normal r2.Point, max float64) []r2.Point {
	if len(poly) == 0 {
		return nil
	}
	inside := func(p r2.Point) bool {
		return normal.Dot(p) <= max
	}
	cut := func(a, b r2.Point) r2.Point {
		da := normal.Dot(a) - max
		db := normal.Dot(b) - max
		return Lerp(a, b, da/(da-db))
	}

	out := make([]r2.Point, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, cut(prev, cur), cur)
		case inside(prev):
			out = append(out, cut(prev, cur))
		}
		prev = cur
	}
	return out
}
