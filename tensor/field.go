// Package tensor holds the value field used to orient streets. The field is
// the sum of influences pushing away from points & lines on the map.
package tensor

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/quad"
)

// InfluenceRadius is how far a local influence reaches.
const InfluenceRadius = 1000.0

// Form is the shape of an influence source.
type Form int

const (
	Point Form = iota
	Line
)

// Influence is a single source of push in the field.
type Influence struct {
	Form      Form      `json:"form"`
	A         r2.Point  `json:"a"`
	B         r2.Point  `json:"b"`
	Bounds    quad.Rect `json:"bounds"`
	Magnitude float64   `json:"magnitude"`
}

// NewPoint returns an influence centred on p.
func NewPoint(p r2.Point, magnitude float64) Influence {
	return Influence{Form: Point, A: p, B: p, Bounds: quad.NullAt(p), Magnitude: magnitude}
}

// NewLine returns an influence along the segment a to b.
func NewLine(a, b r2.Point, magnitude float64) Influence {
	return Influence{Form: Line, A: a, B: b, Bounds: quad.FromPoints(a, b), Magnitude: magnitude}
}

// AABB satisfies quad.Spatial.
func (i Influence) AABB() quad.Rect {
	return i.Bounds
}

// origin is the point of the source nearest uv.
func (i Influence) origin(uv r2.Point) r2.Point {
	if i.Form == Line {
		return line.New(i.A, i.B).Nearest(uv)
	}
	return i.A
}

// At returns the push of this source at uv. It falls off with the inverse
// of the distance & is zero on the source itself.
func (i Influence) At(uv r2.Point) r2.Point {
	dir := uv.Sub(i.origin(uv))
	d := dir.Norm()
	if d == 0 {
		return r2.Point{}
	}
	return dir.Mul(i.Magnitude / (d * d))
}

// Field sums global influences, which reach everywhere, & local ones
// which reach InfluenceRadius.
type Field struct {
	globals []Influence
	locals  *quad.QuadMap[Influence]
}

// NewField returns an empty field.
func NewField(bounds quad.Rect) *Field {
	return &Field{locals: quad.NewDefault[Influence](bounds)}
}

// AddGlobal adds an influence felt everywhere.
func (f *Field) AddGlobal(i Influence) {
	f.globals = append(f.globals, i)
}

// AddLocal adds an influence felt within InfluenceRadius of its bounds.
func (f *Field) AddLocal(i Influence) quad.ItemID {
	return f.locals.Insert(i)
}

// Globals returns the global influences.
func (f *Field) Globals() []Influence {
	return f.globals
}

// Locals returns the local influence index.
func (f *Field) Locals() *quad.QuadMap[Influence] {
	return f.locals
}

// Sample returns the summed push at uv.
func (f *Field) Sample(uv r2.Point) r2.Point {
	sum := r2.Point{}
	for _, g := range f.globals {
		sum = sum.Add(g.At(uv))
	}
	for _, res := range f.locals.Query(quad.CenteredWithRadius(uv, InfluenceRadius)) {
		sum = sum.Add(res.Value.At(uv))
	}
	return sum
}

// Right returns v turned a quarter clockwise.
func Right(v r2.Point) r2.Point {
	return r2.Point{X: v.Y, Y: -v.X}
}
