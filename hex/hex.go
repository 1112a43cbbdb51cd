// Package hex lays out an infinite hexagonal lattice of vertices over a 2D
// plane. Every vertex has three neighbours, each exactly one edge length
// away.
package hex

import (
	"math"

	"github.com/golang/geo/r2"
)

var sin60 = math.Sin(math.Pi / 3)

// Index identifies a single vertex.
type Index struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Graph maps vertex indices to positions.
//
// Vertices come in columns; each column repeats a sequence of four
// vertices every 3 edge lengths along Y.
type Graph struct {
	EdgeLen float64

	seqLen float64
	xStep  float64
}

// New returns a graph whose vertices are edgeLen apart.
func New(edgeLen float64) *Graph {
	return &Graph{
		EdgeLen: edgeLen,
		seqLen:  edgeLen * 3,
		xStep:   edgeLen * 2 * sin60,
	}
}

// seqIndex returns the position of y within its four vertex sequence, and
// which sequence it belongs to.
func seqIndex(y int64) (int64, int64) {
	i := ((y % 4) + 4) % 4
	return i, (y - i) / 4
}

// Pos returns the plane position of a vertex.
func (g *Graph) Pos(idx Index) r2.Point {
	i, seq := seqIndex(idx.Y)
	origin := r2.Point{X: float64(idx.X) * g.xStep, Y: float64(seq) * g.seqLen}

	switch i {
	case 0:
		return origin
	case 1:
		return r2.Point{X: origin.X, Y: origin.Y + g.EdgeLen}
	case 2:
		return r2.Point{X: origin.X + sin60*g.EdgeLen, Y: origin.Y + g.EdgeLen*1.5}
	default:
		return r2.Point{X: origin.X + sin60*g.EdgeLen, Y: origin.Y + g.EdgeLen*2.5}
	}
}

// Neighbors returns the three vertices sharing an edge with idx, in
// clockwise order starting from the one above.
func (g *Graph) Neighbors(idx Index) [3]Index {
	x, y := idx.X, idx.Y
	i, _ := seqIndex(y)

	switch i {
	case 0:
		return [3]Index{{x, y + 1}, {x, y - 1}, {x - 1, y - 1}}
	case 1:
		return [3]Index{{x, y + 1}, {x, y - 1}, {x - 1, y + 1}}
	case 2:
		return [3]Index{{x, y + 1}, {x + 1, y - 1}, {x, y - 1}}
	default:
		return [3]Index{{x, y + 1}, {x + 1, y + 1}, {x, y - 1}}
	}
}

// Indices returns the vertex nearest to the plane position uv.
func (g *Graph) Indices(uv r2.Point) Index {
	seq := int64(math.Floor(uv.Y / g.seqLen))
	col := int64(math.Floor(uv.X / g.xStep))

	best := Index{X: col, Y: seq * 4}
	bestD := math.Inf(1)
	for x := col - 1; x <= col+1; x++ {
		for y := seq*4 - 1; y <= seq*4+4; y++ {
			idx := Index{X: x, Y: y}
			d := g.Pos(idx).Sub(uv).Norm()
			if d < bestD {
				best, bestD = idx, d
			}
		}
	}
	return best
}
