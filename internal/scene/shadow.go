package scene

import (
	"math"
	"sort"

	"github.com/iburimskiy/lumina/internal/geom"
)

const shadowRing = 24

// ConeShadow projects the tree's cone silhouette along the key light onto the plane
// y = groundY and returns the convex outline, counter-clockwise seen from above.
// The cone is given in world space by its base center, height and base radius.
func ConeShadow(base geom.Vec3, height, radius float64, light geom.Vec3, groundY float64) []geom.Vec3 {
	dir := geom.Unit(light)
	if dir.Y() <= 1e-6 {
		return nil
	}
	project := func(p geom.Vec3) geom.Vec3 {
		k := (p.Y() - groundY) / dir.Y()
		return geom.V(p.X()-dir.X()*k, groundY, p.Z()-dir.Z()*k)
	}

	pts := make([]geom.Vec3, 0, shadowRing+1)
	pts = append(pts, project(base.Add(geom.V(0, height, 0))))
	for i := 0; i < shadowRing; i++ {
		a := float64(i) / shadowRing * 2 * math.Pi
		pts = append(pts, project(base.Add(geom.V(radius*math.Cos(a), 0, radius*math.Sin(a)))))
	}
	return hull2D(pts)
}

// hull2D is Andrew's monotone chain over the XZ coordinates.
func hull2D(pts []geom.Vec3) []geom.Vec3 {
	if len(pts) < 3 {
		return pts
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() != pts[j].X() {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Z() < pts[j].Z()
	})
	cross := func(o, a, b geom.Vec3) float64 {
		return (a.X()-o.X())*(b.Z()-o.Z()) - (a.Z()-o.Z())*(b.X()-o.X())
	}

	out := make([]geom.Vec3, 0, 2*len(pts))
	for _, p := range pts {
		for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	lower := len(out) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(out) >= lower && cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	return out[:len(out)-1]
}
