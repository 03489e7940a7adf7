package scene

import (
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/mesh"
)

// Batch identifies one geometry+material pair drawn many times.
type Batch int

const (
	BatchGround Batch = iota
	BatchNeedles
	BatchOrnaments
	BatchSparkles
	BatchStarShell
	BatchStarCore
)

func (b Batch) String() string {
	switch b {
	case BatchGround:
		return "ground"
	case BatchNeedles:
		return "needles"
	case BatchOrnaments:
		return "ornaments"
	case BatchSparkles:
		return "sparkles"
	case BatchStarShell:
		return "star-shell"
	case BatchStarCore:
		return "star-core"
	}
	return "unknown"
}

// Material is a physically-flavoured surface description in linear RGB.
type Material struct {
	Color             geom.Vec3
	Emissive          geom.Vec3
	EmissiveIntensity float64
	Roughness         float64
	Metalness         float64
	// Unlit surfaces output Color as-is.
	Unlit bool
	// ToneMapped=false lets the color exceed 1 and reach the bloom threshold.
	ToneMapped bool
}

func hex(s string) geom.Vec3 {
	r, g, b := config.Linear(s)
	return geom.V(r, g, b)
}

// BatchFrame is one instance batch as it should appear in the current frame.
type BatchFrame struct {
	Batch     Batch
	Mesh      *mesh.Mesh
	Material  Material
	Instances []geom.Mat4
	// Reflect marks batches that also mirror in the ground disc.
	Reflect bool
}

type Camera struct {
	Eye, Target geom.Vec3
	FOV         float64 // vertical, radians
	Near, Far   float64
}

type Fog struct {
	Color     geom.Vec3
	Near, Far float64
}

// Frame is everything the renderer needs for one picture.
type Frame struct {
	Time       float64
	Background geom.Vec3
	Fog        Fog
	Camera     Camera
	Lights     []Light
	Batches    []BatchFrame
	// Shadow is the key light's shadow of the tree on the ground, as a convex polygon.
	Shadow  []geom.Vec3
	GroundY float64
	Stars   []StarPoint
	Post    PostChain
}

// Count returns the number of instances of b in the frame.
func (f *Frame) Count(b Batch) int {
	n := 0
	for _, bf := range f.Batches {
		if bf.Batch == b {
			n += len(bf.Instances)
		}
	}
	return n
}

// Find returns the batch entry for b, if present.
func (f *Frame) Find(b Batch) (*BatchFrame, bool) {
	for i := range f.Batches {
		if f.Batches[i].Batch == b {
			return &f.Batches[i], true
		}
	}
	return nil, false
}

// PostChain holds the fixed post-processing parameters.
type PostChain struct {
	BloomThreshold float64
	BloomIntensity float64
	BloomRadius    float64
	VignetteOffset float64
	VignetteDark   float64
	NoiseOpacity   float64
}

func defaultPost() PostChain {
	return PostChain{
		BloomThreshold: config.BloomThreshold,
		BloomIntensity: config.BloomIntensity,
		BloomRadius:    config.BloomRadius,
		VignetteOffset: config.VignetteOffset,
		VignetteDark:   config.VignetteDark,
		NoiseOpacity:   config.NoiseOpacity,
	}
}
