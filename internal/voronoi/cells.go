package voronoi

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/procede/internal/geom"
)

// Cell is the voronoi cell around Center, as a ring of edges.
type Cell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

// Diagram is a set of voronoi cells.
type Diagram []*Cell

// constraints returns the half planes bounding the cell of coords[i]
// within the box min, max.
func constraints(min, max model2d.Coord, coords []model2d.Coord, i int) model2d.ConvexPolytope {
	c := coords[i]
	polytope := model2d.NewConvexPolytopeRect(min, max)
	for j, c1 := range coords {
		if j == i || c == c1 {
			continue
		}
		mp := c.Mid(c1)
		normal := c1.Sub(c).Normalize()
		polytope = append(polytope, &model2d.LinearConstraint{
			Normal: normal,
			Max:    normal.Dot(mp),
		})
	}
	return polytope
}

// Cells computes the voronoi cells for a list of coordinates, assuming
// they are all contained within a bounding box.
//
// The resulting cells may be slightly misaligned, i.e. adjacent edges'
// coordinates may differ due to rounding errors. See Diagram.Repair().
func Cells(min, max model2d.Coord, coords []model2d.Coord) Diagram {
	cells := make([]*Cell, len(coords))
	for i, c := range coords {
		cells[i] = &Cell{
			Center: c,
			Edges:  constraints(min, max, coords, i).Mesh().SegmentSlice(),
		}
	}
	return cells
}

// Clipped returns the voronoi cell of each nucleus cut to fit within
// poly. Cells entirely outside poly come back empty.
//
// poly need not be convex.
func Clipped(nuclei []r2.Point, poly []r2.Point) [][]r2.Point {
	lo, hi := geom.Bounds(poly)
	min := model2d.Coord{X: lo.X, Y: lo.Y}
	max := model2d.Coord{X: hi.X, Y: hi.Y}

	coords := make([]model2d.Coord, len(nuclei))
	for i, n := range nuclei {
		coords[i] = model2d.Coord{X: n.X, Y: n.Y}
	}

	out := make([][]r2.Point, len(nuclei))
	for i := range coords {
		ring := poly
		for _, c := range constraints(min, max, coords, i) {
			ring = geom.ClipHalfPlane(ring, r2.Point{X: c.Normal.X, Y: c.Normal.Y}, c.Max)
			if len(ring) == 0 {
				break
			}
		}
		out[i] = ring
	}
	return out
}

// Repair merges nearly identical coordinates to make a well-connected
// graph, and orders each cell's edges into a ring.
func (v Diagram) Repair(epsilon float64) {
	coordSlice := v.Coords()
	coordSet := make(map[model2d.Coord]bool, len(coordSlice))
	for _, c := range coordSlice {
		coordSet[c] = true
	}
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		for _, n := range neighborsInDistance(tree, c, epsilon) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range v {
		starts := map[model2d.Coord]*model2d.Segment{}

		for i := 0; i < len(cell.Edges); i++ {
			edge := cell.Edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				// This was almost a singular edge.
				essentials.UnorderedDelete(&cell.Edges, i)
				i--
			} else {
				starts[edge[0]] = edge
			}
		}
		if len(cell.Edges) == 0 {
			continue
		}

		newOrder := make([]*model2d.Segment, 0, len(cell.Edges))
		newOrder = append(newOrder, cell.Edges[0])
		for len(newOrder) < len(cell.Edges) {
			next, ok := starts[newOrder[len(newOrder)-1][1]]
			if !ok {
				break
			}
			newOrder = append(newOrder, next)
		}
		cell.Edges = newOrder
	}
}

// Coords returns every distinct edge vertex in the diagram.
func (v Diagram) Coords() []model2d.Coord {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range v {
		for _, s := range cell.Edges {
			for _, p := range s {
				if !coordSet[p] {
					coordSet[p] = true
					coordSlice = append(coordSlice, p)
				}
			}
		}
	}
	return coordSlice
}

// Render draws the cell edges & centres to a PNG at path.
func (v Diagram) Render(path string) error {
	mesh2d := model2d.NewMesh()
	for _, cell := range v {
		mesh2d.AddMesh(model2d.NewMeshSegments(cell.Edges))
	}
	size := mesh2d.Max().Sub(mesh2d.Min())
	maxSize := math.Max(size.X, size.Y)

	pointsSolid := model2d.JoinedSolid{}
	for _, cell := range v {
		pointsSolid = append(pointsSolid, &model2d.Circle{
			Center: cell.Center,
			Radius: math.Max(2, maxSize/200),
		})
	}

	bg := model2d.NewRect(mesh2d.Min(), mesh2d.Max())
	return model2d.RasterizeColor(path, []interface{}{
		bg,
		model2d.IntersectedSolid{pointsSolid.Optimize(), bg},
		mesh2d,
	}, []color.Color{
		color.Gray{Y: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	}, 1.0)
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
