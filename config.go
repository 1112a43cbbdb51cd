package procede

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/procede/internal/tectonic"
	"github.com/voidshard/procede/river"
	"github.com/voidshard/procede/streets"
)

var (
	// ErrInvalidConfig is returned when a loaded config can't be used.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds everything needed to build a world & the towns on it.
// Sections that are missing from a config file keep their defaults.
type Config struct {
	World WorldConfig `json:"world" yaml:"world"`

	// Rivers configures the river layer. Rivers.Radius is ignored in
	// favour of World.Radius.
	Rivers river.Config `json:"rivers" yaml:"rivers"`

	// Town sets the spacing of streets in town plans.
	Town streets.PlanSettings `json:"town" yaml:"town"`

	// Lots sets the size of the plots streets are lined with.
	Lots streets.LotSettings `json:"lots" yaml:"lots"`

	// LogLevel is one of debug, info, warning or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// WorldConfig outlines the planet itself.
type WorldConfig struct {
	// Seed for all noise; the same seed always makes the same world.
	Seed uint32 `json:"seed" yaml:"seed"`

	// Radius of the planet in metres.
	Radius float64 `json:"radius" yaml:"radius"`

	// RegionWidth is the (approx) width in metres of tectonic plates.
	RegionWidth float64 `json:"region_width" yaml:"region_width"`

	// PlateCacheSize is the number of plates kept in memory.
	PlateCacheSize int `json:"plate_cache_size" yaml:"plate_cache_size"`
}

// DefaultConfig returns a config with every setting at its default.
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Radius:         tectonic.DefaultRadius,
			RegionWidth:    tectonic.DefaultRegionWidth,
			PlateCacheSize: tectonic.DefaultCacheSize,
		},
		Rivers:   river.DefaultConfig(),
		Town:     streets.DefaultPlanSettings(),
		Lots:     streets.DefaultLotSettings(),
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return cfg, cfg.Validate()
}

// YAML returns the config as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "failed to encode config")
}

// Validate returns ErrInvalidConfig (wrapped with the reason) if any
// setting is out of range.
func (c *Config) Validate() error {
	switch {
	case c.World.Radius <= 0:
		return errors.Wrapf(ErrInvalidConfig, "world radius %v must be positive", c.World.Radius)
	case c.World.RegionWidth <= 0:
		return errors.Wrapf(ErrInvalidConfig, "region width %v must be positive", c.World.RegionWidth)
	case c.World.PlateCacheSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "plate cache size %d must be at least 1", c.World.PlateCacheSize)
	case c.Rivers.NodeSeparation <= 0:
		return errors.Wrapf(ErrInvalidConfig, "river node separation %v must be positive", c.Rivers.NodeSeparation)
	case c.Rivers.CacheSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "river cache size %d must be at least 1", c.Rivers.CacheSize)
	case c.Rivers.MaxNodes < 1:
		return errors.Wrapf(ErrInvalidConfig, "river max nodes %d must be at least 1", c.Rivers.MaxNodes)
	case c.Town.BaseEdgeLen <= 0:
		return errors.Wrapf(ErrInvalidConfig, "town base edge length %v must be positive", c.Town.BaseEdgeLen)
	case c.Town.MinEdgeLenRatio > c.Town.MaxEdgeLenRatio:
		return errors.Wrapf(ErrInvalidConfig, "town min edge ratio %v exceeds max %v", c.Town.MinEdgeLenRatio, c.Town.MaxEdgeLenRatio)
	case c.Lots.Width <= 0 || c.Lots.Depth <= 0:
		return errors.Wrapf(ErrInvalidConfig, "lot size %vx%v must be positive", c.Lots.Width, c.Lots.Depth)
	case c.Lots.PathStep <= 0:
		return errors.Wrapf(ErrInvalidConfig, "lot path step %v must be positive", c.Lots.PathStep)
	}
	return nil
}
