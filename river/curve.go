package river

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/quad"
)

// Side says which side of a curve a point lies on, looking along the
// curve from A to B.
type Side int

const (
	Right Side = -1
	On    Side = 0
	Left  Side = 1
)

var primaryT = [5]float64{0, 0.25, 0.5, 0.75, 1}

const bisectSteps = 16

// Curve is a cubic bezier from A to B.
type Curve struct {
	A     r2.Point `json:"a"`
	CtrlA r2.Point `json:"ctrl_a"`
	CtrlB r2.Point `json:"ctrl_b"`
	B     r2.Point `json:"b"`
}

// Projection is the point on a curve nearest some other point.
type Projection struct {
	T     float64
	Point r2.Point
	Dist  float64
	Side  Side
}

// Sample returns the curve position at t.
func (c Curve) Sample(t float64) r2.Point {
	u := 1 - t
	return c.A.Mul(u * u * u).
		Add(c.CtrlA.Mul(3 * u * u * t)).
		Add(c.CtrlB.Mul(3 * u * t * t)).
		Add(c.B.Mul(t * t * t))
}

// Derivative returns the curve tangent at t.
func (c Curve) Derivative(t float64) r2.Point {
	u := 1 - t
	return c.CtrlA.Sub(c.A).Mul(3 * u * u).
		Add(c.CtrlB.Sub(c.CtrlA).Mul(6 * u * t)).
		Add(c.B.Sub(c.CtrlB).Mul(3 * t * t))
}

// Bounds is the box around all four control points, which always holds
// the curve.
func (c Curve) Bounds() quad.Rect {
	return quad.FromPoints(c.A, c.B).Expand(c.CtrlA).Expand(c.CtrlB)
}

// Project finds the point on the curve closest to p.
//
// The curve is sampled at five points; the nearest point is either an end
// or lies where the tangent turns from heading toward p to heading away,
// which is found by bisection.
func (c Curve) Project(p r2.Point) Projection {
	var cos [5]float64
	for i, t := range primaryT {
		cos[i] = c.cosTheta(p, t)
	}

	best := Projection{Dist: -1}
	consider := func(t float64) {
		s := c.Sample(t)
		d := s.Sub(p).Norm()
		if best.Dist < 0 || d < best.Dist {
			best = Projection{T: t, Point: s, Dist: d}
		}
	}

	if opening(cos[0]) {
		consider(0)
	}
	if closing(cos[4]) {
		consider(1)
	}
	for i := 0; i < 4; i++ {
		if closing(cos[i]) && opening(cos[i+1]) {
			consider(c.bisect(p, primaryT[i], primaryT[i+1]))
		}
	}
	best.Side = c.side(p, best)
	return best
}

func closing(cos float64) bool { return cos < 0 }

func opening(cos float64) bool { return cos >= 0 }

// cosTheta is the cosine of the angle between the tangent at t & the
// direction from p to the curve at t.
func (c Curve) cosTheta(p r2.Point, t float64) float64 {
	d := c.Derivative(t).Normalize()
	v := c.Sample(t).Sub(p).Normalize()
	return d.Dot(v)
}

func (c Curve) bisect(p r2.Point, t0, t1 float64) float64 {
	for i := 0; i < bisectSteps; i++ {
		mid := (t0 + t1) / 2
		if closing(c.cosTheta(p, mid)) {
			t0 = mid
		} else {
			t1 = mid
		}
	}
	return (t0 + t1) / 2
}

func (c Curve) side(p r2.Point, proj Projection) Side {
	x := c.Derivative(proj.T).Cross(p.Sub(proj.Point))
	switch {
	case x > 0:
		return Left
	case x < 0:
		return Right
	}
	return On
}
