package scene

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/mesh"
	"github.com/iburimskiy/lumina/internal/particles"
	"github.com/iburimskiy/lumina/internal/view"
)

const swayAmplitude = 0.02

// Tree is the instanced particle assembly: needles, ornaments and sparkles.
// Samples are generated once in NewTree and reused for every frame.
type Tree struct {
	Needles   []particles.Sample
	Ornaments []particles.Sample
	Sparkles  []particles.Sample
	Twinkles  []particles.Twinkle

	needleMesh   mesh.Mesh
	ornamentMesh mesh.Mesh
	sparkleMesh  mesh.Mesh

	// object-space transforms, fixed after generation
	needleLocal   []geom.Mat4
	ornamentLocal []geom.Mat4

	// per-frame instance slots
	needleBuf   []geom.Mat4
	ornamentBuf []geom.Mat4
	sparkleBuf  []geom.Mat4
}

// NewTree generates all particle samples. It must be called once per mount.
func NewTree(cfg config.TreeConfig, rng *rand.Rand) *Tree {
	t := &Tree{
		Needles:   particles.Phyllotaxis(rng, cfg.NeedleCount, cfg.Height, cfg.Radius),
		Ornaments: particles.SurfaceBiased(rng, cfg.OrnamentCount, cfg.Height, cfg.Radius),
		Sparkles:  particles.SurfaceBiased(rng, cfg.SparkleCount, cfg.Height, cfg.Radius),
	}
	t.Twinkles = particles.Twinkles(rng, len(t.Sparkles))

	t.needleLocal = make([]geom.Mat4, len(t.Needles))
	for i, s := range t.Needles {
		t.needleLocal[i] = geom.Compose(s.Position, *s.Rotation, s.Scale)
	}
	t.ornamentLocal = make([]geom.Mat4, len(t.Ornaments))
	for i, s := range t.Ornaments {
		t.ornamentLocal[i] = geom.Compose(s.Position, geom.Euler{}, s.Scale)
	}

	t.needleBuf = make([]geom.Mat4, len(t.Needles))
	t.ornamentBuf = make([]geom.Mat4, len(t.Ornaments))
	t.sparkleBuf = make([]geom.Mat4, len(t.Sparkles))
	return t
}

// BuildMeshes creates the three batch geometries.
func (t *Tree) BuildMeshes() {
	t.needleMesh = mesh.Cone(0.08, 0.4, 4)
	t.ornamentMesh = mesh.Dodecahedron(0.15)
	t.sparkleMesh = mesh.Octahedron(0.08)
}

// Sway is the whole-tree breathing rotation at elapsed time t.
func Sway(t float64) geom.Euler {
	return geom.Euler{
		X: math.Cos(t*0.3) * swayAmplitude,
		Z: math.Sin(t*0.5) * swayAmplitude,
	}
}

// SparkleScale is instance i's pulsing scale at elapsed time t.
func (t *Tree) SparkleScale(i int, at float64) float64 {
	return t.Sparkles[i].Scale * t.Twinkles[i].Pulse(at)
}

var (
	needleMaterial = Material{
		Color:      hex(config.NeedleGreen),
		Roughness:  0.6,
		Metalness:  0.1,
		ToneMapped: true,
	}
	ornamentMaterial = Material{
		Color:             hex(config.OrnamentGold),
		Emissive:          hex(config.OrnamentGlow),
		EmissiveIntensity: 0.5,
		Roughness:         0.1,
		Metalness:         1,
		ToneMapped:        true,
	}
)

// SparkleMaterial is white and emissive at 3x the glimmer control.
func SparkleMaterial(intensity float64) Material {
	return Material{
		Color:             hex(config.SparkleWhite),
		Emissive:          hex(config.SparkleWhite),
		EmissiveIntensity: config.SparkleEmissiveK * intensity,
		Roughness:         1,
	}
}

// Instances appends the tree batches for time at to dst. group places the tree
// in the world; the sway is applied on top of it.
func (t *Tree) Instances(dst []BatchFrame, group geom.Mat4, at float64, v view.State) []BatchFrame {
	world := group.Mul4(geom.FromEuler(Sway(at)))

	for i := range t.needleLocal {
		t.needleBuf[i] = world.Mul4(t.needleLocal[i])
	}
	for i := range t.ornamentLocal {
		t.ornamentBuf[i] = world.Mul4(t.ornamentLocal[i])
	}

	dst = append(dst,
		BatchFrame{Batch: BatchNeedles, Mesh: &t.needleMesh, Material: needleMaterial, Instances: t.needleBuf},
		BatchFrame{Batch: BatchOrnaments, Mesh: &t.ornamentMesh, Material: ornamentMaterial, Instances: t.ornamentBuf, Reflect: true},
	)

	if !v.ShowParticles {
		return dst
	}
	for i, s := range t.Sparkles {
		t.sparkleBuf[i] = world.Mul4(geom.Compose(s.Position, geom.Euler{}, t.SparkleScale(i, at)))
	}
	return append(dst, BatchFrame{
		Batch:     BatchSparkles,
		Mesh:      &t.sparkleMesh,
		Material:  SparkleMaterial(v.SparkleIntensity),
		Instances: t.sparkleBuf,
		Reflect:   true,
	})
}
