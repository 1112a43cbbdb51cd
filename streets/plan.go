package streets

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// PlanSettings are the knobs of a TownPlan.
type PlanSettings struct {
	// BaseEdgeLen is the usual distance between street nodes.
	BaseEdgeLen float64 `json:"base_edge_len" yaml:"base_edge_len"`
	// Street edges are kept between MinEdgeLenRatio & MaxEdgeLenRatio
	// times BaseEdgeLen long.
	MaxEdgeLenRatio float64 `json:"max_edge_len_ratio" yaml:"max_edge_len_ratio"`
	MinEdgeLenRatio float64 `json:"min_edge_len_ratio" yaml:"min_edge_len_ratio"`
	NodeMergeDist   float64 `json:"node_merge_dist" yaml:"node_merge_dist"`
}

// DefaultPlanSettings returns the usual plan settings.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		BaseEdgeLen:     100,
		MaxEdgeLenRatio: 1.5,
		MinEdgeLenRatio: 0.5,
		NodeMergeDist:   0.1,
	}
}

// TownPlan is the high level layout of a town: the builders that, applied
// in order, produce its TownMap.
type TownPlan struct {
	settings PlanSettings
	builders []Builder
}

// NewTownPlan returns an empty plan.
func NewTownPlan(settings PlanSettings) *TownPlan {
	return &TownPlan{settings: settings}
}

// Settings returns the plan settings.
func (p *TownPlan) Settings() PlanSettings {
	return p.settings
}

// Add appends builders to the plan.
func (p *TownPlan) Add(b ...Builder) {
	p.builders = append(p.builders, b...)
}

// Builders returns the plan's builders in order.
func (p *TownPlan) Builders() []Builder {
	return p.builders
}

// Radial returns a radial street builder sized to the plan settings.
func (p *TownPlan) Radial(center r2.Point, spokes int, length float64) *Radial {
	return &Radial{
		Center:     center,
		Spokes:     spokes,
		Length:     length,
		CostMod:    1,
		Step:       p.settings.BaseEdgeLen,
		MaxEdgeLen: p.settings.BaseEdgeLen * p.settings.MaxEdgeLenRatio,
		MinEdgeLen: p.settings.BaseEdgeLen * p.settings.MinEdgeLenRatio,
	}
}

// Build applies every builder to a fresh TownMap.
func (p *TownPlan) Build() (*TownMap, error) {
	m := NewTownMap(Settings{NodeMergeDist: p.settings.NodeMergeDist})
	for i, b := range p.builders {
		if err := m.Add(b); err != nil {
			return nil, errors.Wrapf(err, "town plan builder %d", i)
		}
	}
	return m, nil
}
