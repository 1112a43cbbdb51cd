package river

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/golang/geo/r3"

	"github.com/voidshard/procede/hex"
	"github.com/voidshard/procede/internal/geom"
)

// Cell identifies a tectonic cell.
type Cell [3]int64

// Sampler reports which tectonic cell a position falls in & the height
// there before rivers are carved.
type Sampler func(xyz r3.Vector) (Cell, float64)

// ExploreCell lays hex vertices over the plane, breadth first from start,
// keeping those that fall within the target cell.
//
// Neighbours are wired up between kept vertices; a neighbour outside the
// cell is left as None. At most limit nodes are returned.
func ExploreCell(plane *geom.TangentPlane, g *hex.Graph, start hex.Index, target Cell, sample Sampler, limit int) []Node {
	nodes := []Node{}
	included := map[hex.Index]uint32{}
	visited := map[hex.Index]bool{start: true}
	frontier := []hex.Index{start}

	for len(frontier) > 0 {
		idx := frontier[0]
		frontier = frontier[1:]

		uv := g.Pos(idx)
		cell, h := sample(plane.XYZ(uv))
		if cell != target {
			continue
		}
		if len(nodes) >= limit {
			logs.WithTag("cell", target).WithTag("limit", limit).Warn("river region node limit reached")
			break
		}

		i := uint32(len(nodes))
		included[idx] = i
		nodes = append(nodes, NewNode(i, idx, uv, h))

		for _, n := range g.Neighbors(idx) {
			if visited[n] {
				continue
			}
			visited[n] = true
			frontier = append(frontier, n)
		}
	}

	for i := range nodes {
		for j, n := range g.Neighbors(nodes[i].HexIndices) {
			if k, ok := included[n]; ok {
				nodes[i].Neighbors[j] = k
			}
		}
	}
	return nodes
}
