package quad

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rect is an axis aligned bounding box.
//
// A "null" rect carries NaN in every field. Null rects absorb expansion:
// expanding a null rect by a point yields a rect at that point.
type Rect struct {
	Min r2.Point
	Max r2.Point
}

// Spatial is anything that can report its own bounding box.
type Spatial interface {
	AABB() Rect
}

// NullRect returns an empty rect.
func NullRect() Rect {
	nan := math.NaN()
	return Rect{Min: r2.Point{X: nan, Y: nan}, Max: r2.Point{X: nan, Y: nan}}
}

// NullAt returns a zero sized rect at p.
func NullAt(p r2.Point) Rect {
	return Rect{Min: p, Max: p}
}

// FromPoints returns the smallest rect holding both a & b.
func FromPoints(a, b r2.Point) Rect {
	return NullAt(a).Expand(b)
}

// CenteredWithRadius returns the square of half-width r around p.
func CenteredWithRadius(p r2.Point, r float64) Rect {
	v := r2.Point{X: r, Y: r}
	return FromPoints(p.Sub(v), p.Add(v))
}

// FromPointAndSize returns the rect with its min corner at p.
func FromPointAndSize(p, size r2.Point) Rect {
	return Rect{Min: p, Max: p.Add(size)}
}

// AABB satisfies Spatial.
func (r Rect) AABB() Rect {
	return r
}

// IsNull is true if any field of the rect is NaN.
func (r Rect) IsNull() bool {
	return math.IsNaN(r.Min.X) || math.IsNaN(r.Min.Y) || math.IsNaN(r.Max.X) || math.IsNaN(r.Max.Y)
}

// Width of the rect.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height of the rect.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Midpoint is the centre of the rect.
func (r Rect) Midpoint() r2.Point {
	return r2.Point{X: r.Min.X + r.Width()/2, Y: r.Min.Y + r.Height()/2}
}

// Expand returns the rect grown to include p.
func (r Rect) Expand(p r2.Point) Rect {
	return Rect{
		Min: r2.Point{X: nanMin(r.Min.X, p.X), Y: nanMin(r.Min.Y, p.Y)},
		Max: r2.Point{X: nanMax(r.Max.X, p.X), Y: nanMax(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rect holding both rects.
func (r Rect) Union(o Rect) Rect {
	return r.Expand(o.Min).Expand(o.Max)
}

// Inflate grows the rect by margin in every direction.
func (r Rect) Inflate(margin float64) Rect {
	m := r2.Point{X: margin, Y: margin}
	return Rect{Min: r.Min.Sub(m), Max: r.Max.Add(m)}
}

// Contains reports if p lies within the rect. The min edges are inclusive,
// the max edges exclusive.
func (r Rect) Contains(p r2.Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRect reports if o lies entirely within r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	if r.IsNull() || o.IsNull() {
		return false
	}
	return o.Min.X >= r.Min.X && o.Max.X <= r.Max.X && o.Min.Y >= r.Min.Y && o.Max.Y <= r.Max.Y
}

// Intersects reports if the rects overlap or touch. Null rects intersect
// nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.IsNull() || o.IsNull() {
		return false
	}
	return !(o.Min.X > r.Max.X || o.Max.X < r.Min.X || o.Max.Y < r.Min.Y || o.Min.Y > r.Max.Y)
}

// Intersection returns the overlapping area, or a null rect.
func (r Rect) Intersection(o Rect) Rect {
	if !r.Intersects(o) {
		return NullRect()
	}
	return FromPoints(
		r2.Point{X: math.Max(r.Min.X, o.Min.X), Y: math.Max(r.Min.Y, o.Min.Y)},
		r2.Point{X: math.Min(r.Max.X, o.Max.X), Y: math.Min(r.Max.Y, o.Max.Y)},
	)
}

// SplitQuad subdivides the rect into four equal quadrants: the min corner,
// then +x, then +y, then +xy.
func (r Rect) SplitQuad() [4]Rect {
	half := r2.Point{X: r.Width() / 2, Y: r.Height() / 2}
	return [4]Rect{
		FromPointAndSize(r.Min, half),
		FromPointAndSize(r2.Point{X: r.Min.X + half.X, Y: r.Min.Y}, half),
		FromPointAndSize(r2.Point{X: r.Min.X, Y: r.Min.Y + half.Y}, half),
		FromPointAndSize(r.Min.Add(half), half),
	}
}

// IsClose reports if both corners lie within eps of each other.
func (r Rect) IsClose(o Rect, eps float64) bool {
	return pointClose(r.Min, o.Min, eps) && pointClose(r.Max, o.Max, eps)
}

func pointClose(a, b r2.Point, eps float64) bool {
	d := a.Sub(b)
	return d.Dot(d) < eps*eps
}

// nanMin is min where a NaN operand yields the other operand.
func nanMin(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// nanMax is max where a NaN operand yields the other operand.
func nanMax(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a > b {
		return a
	}
	return b
}
