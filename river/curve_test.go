package river

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func bruteProject(c Curve, p r2.Point) r2.Point {
	const samples = 2000
	var (
		best  r2.Point
		bestD = -1.0
	)
	for i := 0; i < samples; i++ {
		s := c.Sample(float64(i) / samples)
		d := s.Sub(p).Norm()
		if bestD < 0 || d < bestD {
			best, bestD = s, d
		}
	}
	return best
}

func TestCurveProject(t *testing.T) {
	c := Curve{
		A:     r2.Point{X: 0, Y: 0},
		CtrlA: r2.Point{X: 2000, Y: 1000},
		CtrlB: r2.Point{X: 8000, Y: -1000},
		B:     r2.Point{X: 10000, Y: 0},
	}

	cases := []struct {
		name string
		p    r2.Point
	}{
		{"convex", r2.Point{X: 2000, Y: 4000}},
		{"concave", r2.Point{X: 8000, Y: 4000}},
		{"before start", r2.Point{X: -2000, Y: 0}},
		{"past end", r2.Point{X: 12000, Y: 0}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			proj := c.Project(tt.p)
			expect := bruteProject(c, tt.p)

			assert.InDelta(t, expect.X, proj.Point.X, 10)
			assert.InDelta(t, expect.Y, proj.Point.Y, 10)
			assert.InDelta(t, proj.Point.Sub(tt.p).Norm(), proj.Dist, 1e-6)
		})
	}
}

func TestCurveProjectEnds(t *testing.T) {
	c := Curve{
		A:     r2.Point{X: 0, Y: 0},
		CtrlA: r2.Point{X: 2000, Y: 1000},
		CtrlB: r2.Point{X: 8000, Y: -1000},
		B:     r2.Point{X: 10000, Y: 0},
	}

	assert.Equal(t, 0.0, c.Project(r2.Point{X: -2000, Y: 0}).T)
	assert.Equal(t, 1.0, c.Project(r2.Point{X: 12000, Y: 0}).T)
}

func TestCurveSide(t *testing.T) {
	c := Curve{
		A:     r2.Point{X: 0, Y: 0},
		CtrlA: r2.Point{X: 1000, Y: 0},
		CtrlB: r2.Point{X: 9000, Y: 0},
		B:     r2.Point{X: 10000, Y: 0},
	}

	assert.Equal(t, Left, c.Project(r2.Point{X: 5000, Y: 100}).Side)
	assert.Equal(t, Right, c.Project(r2.Point{X: 5000, Y: -100}).Side)
}

func TestCurveBounds(t *testing.T) {
	c := Curve{
		A:     r2.Point{X: 0, Y: 0},
		CtrlA: r2.Point{X: 2000, Y: 1000},
		CtrlB: r2.Point{X: 8000, Y: -1000},
		B:     r2.Point{X: 10000, Y: 0},
	}
	b := c.Bounds()

	assert.Equal(t, r2.Point{X: 0, Y: -1000}, b.Min)
	assert.Equal(t, r2.Point{X: 10000, Y: 1000}, b.Max)
	for i := 0; i <= 10; i++ {
		s := c.Sample(float64(i) / 10)
		assert.True(t, s.X >= b.Min.X && s.X <= b.Max.X && s.Y >= b.Min.Y && s.Y <= b.Max.Y)
	}
}
