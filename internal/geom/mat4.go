package geom

import "github.com/go-gl/mathgl/mgl64"

type Mat4 = mgl64.Mat4

func Identity() Mat4 {
	return mgl64.Ident4()
}

func Translate(v Vec3) Mat4 {
	return mgl64.Translate3D(v[0], v[1], v[2])
}

// FromEuler builds the rotation for XYZ order: Rx * Ry * Rz.
func FromEuler(e Euler) Mat4 {
	return mgl64.HomogRotate3DX(e.X).Mul4(mgl64.HomogRotate3DY(e.Y)).Mul4(mgl64.HomogRotate3DZ(e.Z))
}

// Compose returns T * R * S, the usual object transform.
func Compose(pos Vec3, rot Euler, scale float64) Mat4 {
	return Translate(pos).Mul4(FromEuler(rot)).Mul4(mgl64.Scale3D(scale, scale, scale))
}

// MulPoint transforms a point by an affine m.
func MulPoint(m Mat4, p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// MulDir transforms a direction (no translation).
func MulDir(m Mat4, d Vec3) Vec3 {
	return mgl64.TransformNormal(d, m)
}

// Project returns the clip-space point and its w component.
func Project(m Mat4, p Vec3) (Vec3, float64) {
	c := m.Mul4x1(p.Vec4(1))
	return c.Vec3(), c.W()
}
