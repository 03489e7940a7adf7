// Package geom adapts mgl64 to the scene: positions, directions and linear colors
// are mgl64.Vec3, transforms are column-major mgl64.Mat4 applied to column vectors.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec3 = mgl64.Vec3

func V(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Unit is v.Normalize() that leaves the zero vector at zero instead of NaN.
func Unit(v Vec3) Vec3 {
	if v.LenSqr() == 0 {
		return Vec3{}
	}
	return v.Normalize()
}

// Hadamard multiplies component-wise. Colors are stored as Vec3.
func Hadamard(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// HorizontalRadius is the distance from the vertical axis.
func HorizontalRadius(v Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

// Euler holds XYZ-order rotation angles in radians.
type Euler struct {
	X, Y, Z float64
}
