package river

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/geom"
	"github.com/voidshard/procede/quad"
)

const (
	// MaxStrahler is the highest stream order a node can have.
	MaxStrahler = 12

	// maxMeanderBand is how far a river may wander from its base curve.
	maxMeanderBand = 4000.0 * 20

	boundMargin = maxMeanderBand * 2

	// noIncWidthRatio scales the downriver width of a segment whose
	// downriver node has the same stream order.
	noIncWidthRatio = 0.7
)

var widths = [MaxStrahler + 1]float64{
	1, 1.5, 2, 5, 10, 50, 100, 180, 400, 800, 1000, 2000, 4000,
}

// Width returns the base river width in metres for a Strahler number.
// Out of range orders are clamped.
func Width(strahler int) float64 {
	return widths[clampStrahler(strahler)]
}

func clampStrahler(s int) int {
	if s < 0 {
		return 0
	}
	if s > MaxStrahler {
		return MaxStrahler
	}
	return s
}

// Segment is the stretch of river between two neighbouring nodes.
type Segment struct {
	Curve     Curve     `json:"curve"`
	WidthA    float64   `json:"width_a"`
	WidthB    float64   `json:"width_b"`
	Upriver   uint32    `json:"upriver"`
	Downriver uint32    `json:"downriver"`
	Bounds    quad.Rect `json:"bounds"`
}

// newSegment builds the curve running from up to down.
func newSegment(down, up *Node) Segment {
	a, b := up.UV, down.UV
	d := a.Sub(b).Norm() * 0.25

	ctrlA := a.Add(up.Direction.Mul(d))
	ctrlB := b.Add(downControlDir(down, up.Index).Mul(d))

	wb := down.Width()
	if down.Strahler <= up.Strahler {
		wb *= noIncWidthRatio
	}

	c := Curve{A: a, CtrlA: ctrlA, CtrlB: ctrlB, B: b}
	return Segment{
		Curve:     c,
		WidthA:    up.Width(),
		WidthB:    wb,
		Upriver:   up.Index,
		Downriver: down.Index,
		Bounds:    c.Bounds().Inflate(boundMargin),
	}
}

// downControlDir is the direction of the downriver control point, which
// opens up either side of a fork.
func downControlDir(down *Node, inlet uint32) r2.Point {
	rot := down.Direction.Mul(-1)
	if !down.IsFork() {
		return rot
	}
	half := down.ForkAngle / 2
	if inlet == down.LeftInlet() {
		// geom.Rotate is clockwise
		return geom.Rotate(rot, -half)
	}
	return geom.Rotate(rot, half)
}

// AABB satisfies quad.Spatial.
func (s Segment) AABB() quad.Rect {
	return s.Bounds
}

// WidthAt interpolates the base width at t, where 0 is the upriver end.
func (s Segment) WidthAt(t float64) float64 {
	return s.WidthA*(1-t) + s.WidthB*t
}
