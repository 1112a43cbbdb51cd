package river

// Config controls how river regions are generated.
type Config struct {
	// NodeSeparation is the distance in metres between river nodes.
	NodeSeparation float64 `json:"node_separation" yaml:"node_separation"`

	// MinStrahler is the smallest stream order given a river segment;
	// smaller streams still feed into the order of those they join.
	MinStrahler int `json:"min_strahler" yaml:"min_strahler"`

	// BiasMagnitude is how strongly a mouth pulls its rivers inland.
	// Values over 0.1 make rivers noticeably straight.
	BiasMagnitude float64 `json:"bias_magnitude" yaml:"bias_magnitude"`

	// MaxInfluenceR is the furthest a river affects nearby heights.
	MaxInfluenceR float64 `json:"max_influence_r" yaml:"max_influence_r"`

	// Radius of the planet surface that regions are laid over.
	Radius float64 `json:"radius" yaml:"radius"`

	// CacheSize is the number of regions kept in memory.
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// MaxNodes caps the number of nodes in a single region.
	MaxNodes int `json:"max_nodes" yaml:"max_nodes"`
}

// DefaultConfig returns the standard river settings.
func DefaultConfig() Config {
	return Config{
		NodeSeparation: 10000,
		MinStrahler:    2,
		BiasMagnitude:  0.05,
		MaxInfluenceR:  4000,
		Radius:         6.357e6,
		CacheSize:      100,
		MaxNodes:       1 << 18,
	}
}
