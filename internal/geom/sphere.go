package geom

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

var (
	zAxis = r3.Vector{X: 0, Y: 0, Z: 1}
	yAxis = r3.Vector{X: 0, Y: 1, Z: 0}
)

// SphereUV finds U & V vectors tangential to a sphere at the position v.
// U points east and V points north; v need not be normalised.
//
// At the poles east is undefined, so U falls back to +Y.
func SphereUV(v r3.Vector) (r3.Vector, r3.Vector) {
	vn := v.Normalize()
	u := zAxis.Cross(vn)
	if u.Norm2() == 0 {
		u = yAxis
	} else {
		u = u.Normalize()
	}
	return u, vn.Cross(u)
}

// TangentPlane maps between a local 2D uv space & 3D positions on a plane
// touching the sphere at Origin.
type TangentPlane struct {
	Origin r3.Vector `json:"origin"`
	U      r3.Vector `json:"u"`
	V      r3.Vector `json:"v"`
}

// NewTangentPlane returns the plane touching the sphere at origin.
func NewTangentPlane(origin r3.Vector) *TangentPlane {
	u, v := SphereUV(origin)
	return &TangentPlane{Origin: origin, U: u, V: v}
}

// XYZ converts a plane position to 3D.
func (p *TangentPlane) XYZ(uv r2.Point) r3.Vector {
	return p.U.Mul(uv.X).Add(p.V.Mul(uv.Y)).Add(p.Origin)
}

// UV projects a 3D position onto the plane.
func (p *TangentPlane) UV(xyz r3.Vector) r2.Point {
	rel := xyz.Sub(p.Origin)
	return r2.Point{X: rel.Dot(p.U), Y: rel.Dot(p.V)}
}
