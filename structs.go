package procede

import (
	"github.com/voidshard/procede/streets"
)

// HeightInfo is the result of sampling the world at a point.
type HeightInfo struct {
	Height float64 `json:"height"`
}

// TownStats holds generic stats about a town
type TownStats struct {
	// Count of street nodes of each kind
	NodesByKind map[NodeKind]int `json:"nodes_by_kind"`

	Edges     int     `json:"edges"`
	Obstacles int     `json:"obstacles"`
	Lots      int     `json:"lots,omitempty"`
	Length    float64 `json:"length"` // total street length
}

// newTownStats returns blank TownStats
func newTownStats() *TownStats {
	return &TownStats{NodesByKind: map[NodeKind]int{}}
}

// NewTownStats counts up the features of a town map & any lots carved
// out of it.
func NewTownStats(m *streets.TownMap, lots []*streets.LotPoly) *TownStats {
	s := newTownStats()
	for _, n := range m.Nodes() {
		s.increment(KindOf(n))
	}
	for _, e := range m.Edges() {
		s.Length += e.UVA.Sub(e.UVB).Norm()
	}
	s.Edges = len(m.Edges())
	s.Obstacles = len(m.Obstacles())
	s.Lots = streets.TotalLots(lots)
	return s
}

// increment NodesByKind by 1
func (s *TownStats) increment(k NodeKind) {
	s.NodesByKind[k]++
}

// Count returns number of nodes of the given kind
func (s *TownStats) Count(k NodeKind) int {
	return s.NodesByKind[k]
}
