package scene

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/lumina/internal/geom"
)

const starSizeFactor = 4

// StarPoint is one backdrop star; positions are fixed, brightness twinkles.
type StarPoint struct {
	Position geom.Vec3
	Size     float64
	Phase    float64
}

// Starfield scatters count stars in a spherical shell [radius, radius+depth].
func Starfield(rng *rand.Rand, count int, radius, depth float64) []StarPoint {
	if count <= 0 {
		return nil
	}
	out := make([]StarPoint, count)
	for i := range out {
		r := radius + rng.Float64()*depth
		// uniform direction on the sphere
		z := rng.Float64()*2 - 1
		a := rng.Float64() * 2 * math.Pi
		s := math.Sqrt(1 - z*z)
		out[i] = StarPoint{
			Position: geom.V(r*s*math.Cos(a), r*s*math.Sin(a), r*z),
			Size:     (0.5 + 0.5*rng.Float64()) * starSizeFactor,
			Phase:    rng.Float64() * 100,
		}
	}
	return out
}

// Twinkle is a star's brightness in [0.5, 1] at elapsed time t.
func (p StarPoint) Twinkle(t float64) float64 {
	return (3 + math.Sin(t+p.Phase)) / 4
}
