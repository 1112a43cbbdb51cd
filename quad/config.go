package quad

// Config tunes how a QuadMap splits & merges its nodes.
type Config struct {
	// AllowDuplicates permits items whose rects are (nearly) identical.
	// When false, such items are silently dropped on insert.
	AllowDuplicates bool `json:"allow_duplicates" yaml:"allow_duplicates"`

	// MinChildren is the item count below which a branch collapses back
	// into a leaf.
	MinChildren int `json:"min_children" yaml:"min_children"`

	// MaxChildren is how many items a leaf holds before it splits.
	MaxChildren int `json:"max_children" yaml:"max_children"`

	// MaxDepth caps how deep the tree may grow. Leaves at this depth
	// never split.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Epsilon is the distance under which two rect corners count as the
	// same (see AllowDuplicates).
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// DefaultConfig returns reasonable default settings.
func DefaultConfig() Config {
	return Config{
		AllowDuplicates: true,
		MinChildren:     4,
		MaxChildren:     16,
		MaxDepth:        8,
		Epsilon:         1e-4,
	}
}
