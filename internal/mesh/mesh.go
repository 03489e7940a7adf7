// Package mesh builds the small convex shapes the scene instances: needle cones,
// gem polyhedra and the ground disc. All meshes are built once at load time.
package mesh

import (
	"math"
	"sort"

	"github.com/iburimskiy/lumina/internal/geom"
)

const eps = 1e-9

var phi = (1 + math.Sqrt(5)) / 2

// Triangle is wound counter-clockwise when seen from the side its normal points to.
type Triangle struct {
	A, B, C geom.Vec3
	Normal  geom.Vec3
}

func NewTriangle(a, b, c geom.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c, Normal: geom.Unit(b.Sub(a).Cross(c.Sub(a)))}
}

func (t Triangle) Centroid() geom.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3)
}

type Mesh struct {
	Name string
	Tris []Triangle
}

// Cone is centered on the origin with its apex at +height/2, like a needle pointing up.
func Cone(radius, height float64, segments int) Mesh {
	pts := []geom.Vec3{geom.V(0, height/2, 0)}
	for i := 0; i < segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		pts = append(pts, geom.V(radius*math.Sin(theta), -height/2, radius*math.Cos(theta)))
	}
	return Hull("cone", pts)
}

func Octahedron(radius float64) Mesh {
	r := radius
	return Hull("octahedron", []geom.Vec3{
		geom.V(r, 0, 0), geom.V(-r, 0, 0),
		geom.V(0, r, 0), geom.V(0, -r, 0),
		geom.V(0, 0, r), geom.V(0, 0, -r),
	})
}

func Icosahedron(radius float64) Mesh {
	var pts []geom.Vec3
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-phi, phi} {
			pts = append(pts, geom.V(0, a, b), geom.V(a, b, 0), geom.V(b, 0, a))
		}
	}
	return Hull("icosahedron", onSphere(pts, radius))
}

func Dodecahedron(radius float64) Mesh {
	var pts []geom.Vec3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				pts = append(pts, geom.V(x, y, z))
			}
		}
	}
	inv := 1 / phi
	for _, a := range []float64{-inv, inv} {
		for _, b := range []float64{-phi, phi} {
			pts = append(pts, geom.V(0, a, b), geom.V(a, b, 0), geom.V(b, 0, a))
		}
	}
	return Hull("dodecahedron", onSphere(pts, radius))
}

// Disc lies in the XZ plane facing +Y.
func Disc(radius float64, segments int) Mesh {
	m := Mesh{Name: "disc", Tris: make([]Triangle, 0, segments)}
	center := geom.V(0, 0, 0)
	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		p0 := geom.V(radius*math.Cos(a0), 0, radius*math.Sin(a0))
		p1 := geom.V(radius*math.Cos(a1), 0, radius*math.Sin(a1))
		tri := NewTriangle(center, p0, p1)
		if tri.Normal.Y() < 0 {
			tri = NewTriangle(center, p1, p0)
		}
		m.Tris = append(m.Tris, tri)
	}
	return m
}

func onSphere(pts []geom.Vec3, radius float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(pts))
	for i, p := range pts {
		out[i] = p.Normalize().Mul(radius)
	}
	return out
}

type face struct {
	normal geom.Vec3
	verts  map[int]bool
}

// Hull triangulates the convex hull of a small point set. Coplanar faces (the
// dodecahedron's pentagons) are merged and fanned so no triangle is emitted twice.
func Hull(name string, pts []geom.Vec3) Mesh {
	var faces []*face
	find := func(n geom.Vec3) *face {
		for _, f := range faces {
			if f.normal.Sub(n).Len() < 1e-6 {
				return f
			}
		}
		f := &face{normal: n, verts: map[int]bool{}}
		faces = append(faces, f)
		return f
	}

	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				n := pts[j].Sub(pts[i]).Cross(pts[k].Sub(pts[i]))
				if n.Len() < eps {
					continue
				}
				n = n.Normalize()
				d := n.Dot(pts[i])

				above, below := false, false
				for _, p := range pts {
					s := n.Dot(p) - d
					if s > 1e-7 {
						above = true
					} else if s < -1e-7 {
						below = true
					}
				}
				if above && below {
					continue
				}
				if above {
					n = n.Mul(-1)
				}
				f := find(n)
				f.verts[i], f.verts[j], f.verts[k] = true, true, true
			}
		}
	}

	m := Mesh{Name: name}
	for _, f := range faces {
		m.Tris = append(m.Tris, fan(pts, f)...)
	}
	return m
}

func fan(pts []geom.Vec3, f *face) []Triangle {
	idx := make([]int, 0, len(f.verts))
	for i := range f.verts {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	var c geom.Vec3
	for _, i := range idx {
		c = c.Add(pts[i])
	}
	c = c.Mul(1 / float64(len(idx)))

	u := pts[idx[0]].Sub(c).Normalize()
	w := f.normal.Cross(u)
	angle := func(i int) float64 {
		d := pts[i].Sub(c)
		return math.Atan2(d.Dot(w), d.Dot(u))
	}
	sort.Slice(idx, func(a, b int) bool { return angle(idx[a]) < angle(idx[b]) })

	tris := make([]Triangle, 0, len(idx)-2)
	for i := 1; i+1 < len(idx); i++ {
		tri := Triangle{A: pts[idx[0]], B: pts[idx[i]], C: pts[idx[i+1]], Normal: f.normal}
		tris = append(tris, tri)
	}
	return tris
}
