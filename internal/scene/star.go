package scene

import (
	"math"

	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/mesh"
)

// StarLift is how far above the tree tip the topper floats.
const StarLift = 0.2

const (
	starYawRate  = 0.5
	starRollAmp  = 0.1
	corePulseAmp = 0.1
	corePulseHz  = 2.0
)

var (
	shellMaterial = Material{
		Color:             hex(config.StarSilver),
		Emissive:          hex(config.StarGlow),
		EmissiveIntensity: 2,
		Roughness:         0,
		Metalness:         1,
	}
	coreMaterial = Material{
		Color: geom.V(1, 1, 1),
		Unlit: true,
	}
)

// Star is the topper: a spinning crystal shell around a pulsing core, plus its light.
type Star struct {
	Offset    geom.Vec3
	shellMesh mesh.Mesh
	coreMesh  mesh.Mesh
	shellBuf  [1]geom.Mat4
	coreBuf   [1]geom.Mat4
}

// NewStar places the topper above a tree of the given height (7.2 for the default tree).
func NewStar(treeHeight float64) *Star {
	return &Star{
		Offset:    geom.V(0, treeHeight+StarLift, 0),
		shellMesh: mesh.Icosahedron(0.6),
		coreMesh:  mesh.Octahedron(0.3),
	}
}

// ShellRotation is the shell's yaw and roll at elapsed time t.
func ShellRotation(t float64) geom.Euler {
	return geom.Euler{Y: t * starYawRate, Z: math.Sin(t*starYawRate) * starRollAmp}
}

// CoreScale is the breathing scale of the inner core: exactly 1 at t=0.
func CoreScale(t float64) float64 {
	return 1 + math.Sin(t*corePulseHz)*corePulseAmp
}

// Light is the point light attached to the star.
func (s *Star) Light(group geom.Mat4) Light {
	return Light{
		Kind:      LightPoint,
		Color:     geom.V(1, 1, 1),
		Intensity: 3,
		Position:  geom.MulPoint(group, s.Offset),
		Distance:  5,
		Decay:     2,
	}
}

func (s *Star) Instances(dst []BatchFrame, group geom.Mat4, t float64) []BatchFrame {
	s.shellBuf[0] = group.Mul4(geom.Compose(s.Offset, ShellRotation(t), 1))
	s.coreBuf[0] = group.Mul4(geom.Compose(s.Offset, geom.Euler{}, CoreScale(t)))
	return append(dst,
		BatchFrame{Batch: BatchStarShell, Mesh: &s.shellMesh, Material: shellMaterial, Instances: s.shellBuf[:], Reflect: true},
		BatchFrame{Batch: BatchStarCore, Mesh: &s.coreMesh, Material: coreMaterial, Instances: s.coreBuf[:], Reflect: true},
	)
}
