// Package particles places tree particles on a cone.
//
// Two policies are provided: a golden-angle spiral for directional needles and a
// surface-biased random scatter for rotation-agnostic ornaments and sparkles. Both are
// meant to be called once per mount; positions stay fixed while only transforms animate.
package particles

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/lumina/internal/geom"
)

// GoldenAngle is π(3−√5), about 2.399963 rad.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

const (
	// Noise is the full jitter width applied to spiral samples (±Noise/2 per axis).
	Noise = 0.2
	// NoiseBound is the largest per-axis offset from the ideal spiral point.
	NoiseBound = Noise / 2

	tiltRange   = 0.5
	upwardTilt  = math.Pi / 4
	minScale    = 0.5
	scaleRange  = 0.5
	surfaceLow  = 0.8
	surfaceBand = 0.4
)

// Sample is one particle's base transform. Rotation is nil for shapes that ignore it.
type Sample struct {
	Position geom.Vec3
	Rotation *geom.Euler
	Scale    float64
}

// Twinkle holds the per-instance pulse parameters of a sparkle.
type Twinkle struct {
	Speed  float64 // [0,1)
	Offset float64 // [0,100)
}

// ConeRadius is the radius of a linearly tapering cone at height y.
func ConeRadius(y, height, maxRadius float64) float64 {
	return maxRadius * (1 - y/height)
}

func valid(count int, height, maxRadius float64) bool {
	return count > 0 && height > 0 && maxRadius >= 0
}

// Phyllotaxis distributes count needles bottom to top along a golden-angle spiral.
func Phyllotaxis(rng *rand.Rand, count int, height, maxRadius float64) []Sample {
	if !valid(count, height, maxRadius) {
		return []Sample{}
	}

	out := make([]Sample, count)
	for i := range out {
		y := float64(i) / float64(count) * height
		r := ConeRadius(y, height, maxRadius)
		theta := float64(i) * GoldenAngle

		pos := geom.V(
			r*math.Cos(theta)+(rng.Float64()-0.5)*Noise,
			y+(rng.Float64()-0.5)*Noise,
			r*math.Sin(theta)+(rng.Float64()-0.5)*Noise,
		)

		// roughly outward, tipped up
		rot := &geom.Euler{
			X: (rng.Float64() - 0.5) * tiltRange,
			Y: -theta,
			Z: (rng.Float64()-0.5)*tiltRange + upwardTilt,
		}

		out[i] = Sample{Position: pos, Rotation: rot, Scale: rng.Float64()*scaleRange + minScale}
	}
	return out
}

// SurfaceBiased scatters count points near the cone's lateral surface.
func SurfaceBiased(rng *rand.Rand, count int, height, maxRadius float64) []Sample {
	if !valid(count, height, maxRadius) {
		return []Sample{}
	}

	out := make([]Sample, count)
	for i := range out {
		y := rng.Float64() * height
		r := ConeRadius(y, height, maxRadius) * (surfaceLow + rng.Float64()*surfaceBand)
		theta := rng.Float64() * 2 * math.Pi

		out[i] = Sample{
			Position: geom.V(r*math.Cos(theta), y, r*math.Sin(theta)),
			Scale:    rng.Float64()*scaleRange + minScale,
		}
	}
	return out
}

// Twinkles draws the pulse parameters for count sparkles.
func Twinkles(rng *rand.Rand, count int) []Twinkle {
	if count <= 0 {
		return []Twinkle{}
	}
	out := make([]Twinkle, count)
	for i := range out {
		out[i] = Twinkle{Speed: rng.Float64(), Offset: rng.Float64() * 100}
	}
	return out
}

// Pulse is the sparkle scale factor at elapsed time t, in [0.4, 1.2].
func (tw Twinkle) Pulse(t float64) float64 {
	return 0.8 + 0.4*math.Sin(3*tw.Speed*t+tw.Offset)
}
