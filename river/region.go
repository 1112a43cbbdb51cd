package river

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/voidshard/procede/hex"
	"github.com/voidshard/procede/internal/geom"
)

// Region is the river network of a single tectonic cell, laid out on the
// plane touching the planet at the cell's nucleus.
type Region struct {
	Cell    Cell               `json:"cell"`
	Nucleus r3.Vector          `json:"nucleus"`
	Plane   *geom.TangentPlane `json:"plane"`
	Graph   *Graph             `json:"-"`

	radius float64
}

// NewRegion generates the rivers of a cell.
//
// at is a position known to lie within the cell; exploration starts from
// the nucleus, or from the vertex nearest at if the nucleus lies outside.
func NewRegion(cell Cell, nucleus, at r3.Vector, sample Sampler, cfg Config) *Region {
	plane := geom.NewTangentPlane(nucleus.Normalize().Mul(cfg.Radius))
	hg := hex.New(cfg.NodeSeparation)

	start := hex.Index{}
	if c, _ := sample(plane.XYZ(hg.Pos(start))); c != cell {
		start = hg.Indices(plane.UV(surface(at, cfg.Radius)))
	}

	nodes := ExploreCell(plane, hg, start, cell, sample, cfg.MaxNodes)
	mouths := FindMouths(nodes, cfg.BiasMagnitude)

	return &Region{
		Cell:    cell,
		Nucleus: nucleus,
		Plane:   plane,
		Graph:   NewGraph(nodes, mouths, cfg.MinStrahler, Settings{MaxInfluenceR: cfg.MaxInfluenceR}),
		radius:  cfg.Radius,
	}
}

// UV maps a 3D position onto the region's plane.
func (r *Region) UV(xyz r3.Vector) r2.Point {
	return r.Plane.UV(surface(xyz, r.radius))
}

// Height returns h0 with any river beds near xyz carved in.
func (r *Region) Height(xyz r3.Vector, h0 float64) float64 {
	return r.Graph.Height(r.UV(xyz), h0)
}

func surface(v r3.Vector, radius float64) r3.Vector {
	return v.Normalize().Mul(radius)
}
