package line

import (
	"math"

	"github.com/golang/geo/r2"
)

// eps is the relative tolerance used when deciding if points are collinear.
const eps = 1e-9

// Line is a straight segment between A & B.
type Line struct {
	A r2.Point `json:"a"`
	B r2.Point `json:"b"`
}

// New returns the line from a to b.
func New(a, b r2.Point) Line {
	return Line{A: a, B: b}
}

// Dir returns the (un-normalised) direction from A to B.
func (l Line) Dir() r2.Point {
	return l.B.Sub(l.A)
}

// Len returns the length of the line.
func (l Line) Len() float64 {
	return l.Dir().Norm()
}

// Right is the right-hand perpendicular of Dir. Not normalised.
func (l Line) Right() r2.Point {
	d := l.Dir()
	return r2.Point{X: d.Y, Y: -d.X}
}

// Left is the left-hand perpendicular of Dir. Not normalised.
func (l Line) Left() r2.Point {
	d := l.Dir()
	return r2.Point{X: -d.Y, Y: d.X}
}

// Offset returns the line shifted sideways by d (positive is right).
func (l Line) Offset(d float64) Line {
	shift := l.Right().Normalize().Mul(d)
	return Line{A: l.A.Add(shift), B: l.B.Add(shift)}
}

// Divide splits the line into n even pieces, returning the n+1 points
// from A to B.
func (l Line) Divide(n int) []r2.Point {
	if n < 1 {
		panic("line must be divided into at least one piece")
	}
	step := l.Dir().Mul(1 / float64(n))
	pts := make([]r2.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = l.A.Add(step.Mul(float64(i)))
	}
	pts[n] = l.B
	return pts
}

// Nearest returns the point on the line closest to p.
func (l Line) Nearest(p r2.Point) r2.Point {
	d := l.Dir()
	len2 := d.Dot(d)
	if len2 == 0 {
		return l.A
	}
	t := p.Sub(l.A).Dot(d) / len2
	t = math.Max(0, math.Min(1, t))
	return l.A.Add(d.Mul(t))
}

// Dist returns the distance from p to the nearest point on the line.
func (l Line) Dist(p r2.Point) float64 {
	return p.Sub(l.Nearest(p)).Norm()
}

// Crosses reports if two lines cut through one another.
//
// Lines meeting only at a shared end point don't cross. A line ending
// somewhere along the other one (a T junction) or overlapping it does.
func (l Line) Crosses(o Line) bool {
	d1 := orient(o.A, o.B, l.A)
	d2 := orient(o.A, o.B, l.B)
	d3 := orient(l.A, l.B, o.A)
	d4 := orient(l.A, l.B, o.B)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return o.interiorHas(l.A) || o.interiorHas(l.B) || l.interiorHas(o.A) || l.interiorHas(o.B)
}

// interiorHas returns if p lies on the line, excluding both end points.
func (l Line) interiorHas(p r2.Point) bool {
	d := l.Dir()
	len2 := d.Dot(d)
	if len2 == 0 {
		return false
	}
	if orient(l.A, l.B, p) != 0 {
		return false
	}
	along := p.Sub(l.A).Dot(d)
	slack := eps * len2
	return along > slack && along < len2-slack
}

// orient returns the side of line a->b that p falls on: 1 for left, -1 for
// right & 0 when (near enough) collinear.
func orient(a, b, p r2.Point) int {
	ab := b.Sub(a)
	ap := p.Sub(a)
	cross := ab.Cross(ap)
	tol := eps * ab.Norm() * ap.Norm()
	switch {
	case cross > tol:
		return 1
	case cross < -tol:
		return -1
	}
	return 0
}
