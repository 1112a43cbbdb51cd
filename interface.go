package procede

import (
	"github.com/golang/geo/r3"

	"github.com/voidshard/procede/internal/tectonic"
)

// TectonicInfo is the base terrain at a point: the height before any
// layers are applied & the plate cell the point falls within.
type TectonicInfo = tectonic.Info

// TectonicOracle tells us the base shape of the planet. For any direction
// from the planet centre it answers;
// - how high is the surface here, before rivers & such are carved in?
// - which plate (cell) does this point belong to, and where is its nucleus?
type TectonicOracle interface {
	// Height at the surface in the direction of xyz. xyz need not be
	// normalised but must not be zero.
	Height(xyz r3.Vector) TectonicInfo
}

// HeightLayer modifies the base height at a point, ie. carving river beds.
// base.Height holds the height after all earlier layers.
type HeightLayer interface {
	Height(xyz r3.Vector, base TectonicInfo) float64
}
