package render

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/scene"
)

// Layer orders what the painter draws first.
type Layer int

const (
	LayerGround Layer = iota
	LayerShadow
	LayerReflection
	LayerScene
)

const (
	groundRadius    = 8.0
	reflectivity    = 0.2
	shadowDarkness  = 0.55
	starPointScale  = 15.0
	starPointMaxPix = 3.0
)

// Tri is a screen-space triangle ready for ebiten.
type Tri struct {
	X, Y  [3]float32
	Depth float64
	// sRGB color with straight alpha
	R, G, B, A float32
	// linear energy above the bloom threshold
	Glow  geom.Vec3
	Layer Layer
	Batch scene.Batch
}

// Point is a projected backdrop star.
type Point struct {
	X, Y, Size, Alpha float32
}

type projector struct {
	viewProj geom.Mat4
	w, h     float64
	near     float64
}

func newProjector(c scene.Camera, w, h int) projector {
	aspect := float64(w) / float64(h)
	view := mgl64.LookAtV(c.Eye, c.Target, geom.V(0, 1, 0))
	proj := mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
	return projector{viewProj: proj.Mul4(view), w: float64(w), h: float64(h), near: c.Near}
}

// project returns screen coordinates, view depth, and whether p is in front of the camera.
func (p projector) project(v geom.Vec3) (x, y, depth float64, ok bool) {
	clip, w := geom.Project(p.viewProj, v)
	if w < p.near {
		return 0, 0, w, false
	}
	x = (clip.X()/w + 1) / 2 * p.w
	y = (1 - clip.Y()/w) / 2 * p.h
	return x, y, w, true
}

// Pipeline turns a scene frame into painter-ordered triangles. Buffers are reused.
type Pipeline struct {
	Tris   []Tri
	Points []Point
}

// Build fills Tris and Points for a w×h target.
func (pl *Pipeline) Build(f *scene.Frame, w, h int) {
	pl.Tris = pl.Tris[:0]
	pl.Points = pl.Points[:0]
	if f == nil || w <= 0 || h <= 0 {
		return
	}
	pr := newProjector(f.Camera, w, h)

	pl.stars(f, pr)

	for i := range f.Batches {
		if f.Batches[i].Batch == scene.BatchGround {
			pl.batch(f, pr, &f.Batches[i], geom.Identity(), LayerGround)
		}
	}
	pl.shadow(f, pr)

	mirror := geom.Translate(geom.V(0, 2*f.GroundY, 0)).Mul4(mgl64.Scale3D(1, -1, 1))
	reflStart := len(pl.Tris)
	for i := range f.Batches {
		if f.Batches[i].Reflect {
			pl.batch(f, pr, &f.Batches[i], mirror, LayerReflection)
		}
	}
	sortFarToNear(pl.Tris[reflStart:])

	sceneStart := len(pl.Tris)
	for i := range f.Batches {
		if f.Batches[i].Batch != scene.BatchGround {
			pl.batch(f, pr, &f.Batches[i], geom.Identity(), LayerScene)
		}
	}
	sortFarToNear(pl.Tris[sceneStart:])
}

func sortFarToNear(tris []Tri) {
	slices.SortStableFunc(tris, func(a, b Tri) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
}

func (pl *Pipeline) batch(f *scene.Frame, pr projector, b *scene.BatchFrame, pre geom.Mat4, layer Layer) {
	eye := f.Camera.Eye
	for _, inst := range b.Instances {
		m := pre.Mul4(inst)
		for _, t := range b.Mesh.Tris {
			a, bb, c := geom.MulPoint(m, t.A), geom.MulPoint(m, t.B), geom.MulPoint(m, t.C)
			centroid := a.Add(bb).Add(c).Mul(1.0 / 3)
			n := geom.Unit(geom.MulDir(m, t.Normal))
			if n.Dot(eye.Sub(centroid)) <= 0 {
				continue
			}
			if layer == LayerReflection && (centroid.Y() > f.GroundY || geom.HorizontalRadius(centroid) > groundRadius) {
				continue
			}

			var tri Tri
			ok := true
			for k, v := range [3]geom.Vec3{a, bb, c} {
				x, y, _, in := pr.project(v)
				if !in {
					ok = false
					break
				}
				tri.X[k], tri.Y[k] = float32(x), float32(y)
			}
			if !ok || offscreen(&tri, pr) {
				continue
			}
			_, _, depth, _ := pr.project(centroid)

			lit := Shade(b.Material, centroid, n, eye, f.Lights)
			if layer == LayerReflection {
				lit = lit.Mul(reflectivity)
			}
			lit = Fogged(lit, f.Fog, depth)

			r, g, bl := Display(lit, b.Material.ToneMapped)
			tri.R, tri.G, tri.B, tri.A = float32(r), float32(g), float32(bl), 1
			tri.Glow = Glow(lit, f.Post.BloomThreshold)
			tri.Depth = depth
			tri.Layer = layer
			tri.Batch = b.Batch
			pl.Tris = append(pl.Tris, tri)
		}
	}
}

func offscreen(t *Tri, pr projector) bool {
	w, h := float32(pr.w), float32(pr.h)
	return (t.X[0] < 0 && t.X[1] < 0 && t.X[2] < 0) ||
		(t.X[0] > w && t.X[1] > w && t.X[2] > w) ||
		(t.Y[0] < 0 && t.Y[1] < 0 && t.Y[2] < 0) ||
		(t.Y[0] > h && t.Y[1] > h && t.Y[2] > h)
}

// shadow fans the key light's ground shadow polygon.
func (pl *Pipeline) shadow(f *scene.Frame, pr projector) {
	if len(f.Shadow) < 3 {
		return
	}
	lift := geom.V(0, 0.001, 0)
	x0, y0, d0, ok0 := pr.project(f.Shadow[0].Add(lift))
	if !ok0 {
		return
	}
	for i := 1; i+1 < len(f.Shadow); i++ {
		x1, y1, _, ok1 := pr.project(f.Shadow[i].Add(lift))
		x2, y2, _, ok2 := pr.project(f.Shadow[i+1].Add(lift))
		if !ok1 || !ok2 {
			continue
		}
		pl.Tris = append(pl.Tris, Tri{
			X:     [3]float32{float32(x0), float32(x1), float32(x2)},
			Y:     [3]float32{float32(y0), float32(y1), float32(y2)},
			Depth: d0,
			A:     shadowDarkness,
			Layer: LayerShadow,
			Batch: scene.BatchGround,
		})
	}
}

func (pl *Pipeline) stars(f *scene.Frame, pr projector) {
	// the backdrop follows the camera so it never gets closer
	for _, s := range f.Stars {
		x, y, depth, ok := pr.project(f.Camera.Eye.Add(s.Position))
		if !ok || x < 0 || y < 0 || x > pr.w || y > pr.h {
			continue
		}
		size := math.Min(starPointMaxPix, math.Max(1, s.Size*starPointScale/depth))
		pl.Points = append(pl.Points, Point{
			X:     float32(x),
			Y:     float32(y),
			Size:  float32(size),
			Alpha: float32(s.Twinkle(f.Time)),
		})
	}
}

// Count returns how many triangles of batch b landed on the given layer.
func (pl *Pipeline) Count(b scene.Batch, layer Layer) int {
	n := 0
	for i := range pl.Tris {
		if pl.Tris[i].Batch == b && pl.Tris[i].Layer == layer {
			n++
		}
	}
	return n
}
