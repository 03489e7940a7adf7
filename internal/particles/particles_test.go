package particles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shapes = []struct {
	name   string
	count  int
	height float64
	radius float64
}{
	{"tree defaults", 1800, 7, 3},
	{"ornaments", 150, 7, 3},
	{"single", 1, 1, 1},
	{"tall thin", 500, 40, 0.5},
	{"flat radius zero", 64, 3, 0},
}

func TestGoldenAngle(t *testing.T) {
	assert.InDelta(t, 2.399963, GoldenAngle, 1e-6)
}

func TestPhyllotaxisBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			samples := Phyllotaxis(rng, tt.count, tt.height, tt.radius)
			require.Len(t, samples, tt.count)

			// jitter is per axis, so the horizontal offset is at most √2·NoiseBound
			maxR := tt.radius + math.Sqrt2*NoiseBound
			for i, s := range samples {
				assert.LessOrEqual(t, geom.HorizontalRadius(s.Position), maxR+1e-12, "sample %d", i)
				assert.GreaterOrEqual(t, s.Position.Y(), -NoiseBound, "sample %d", i)
				assert.LessOrEqual(t, s.Position.Y(), tt.height+NoiseBound, "sample %d", i)
				require.NotNil(t, s.Rotation)
				assert.GreaterOrEqual(t, s.Scale, 0.5)
				assert.Less(t, s.Scale, 1.0)
			}
		})
	}
}

func TestPhyllotaxisFollowsSpiral(t *testing.T) {
	samples := Phyllotaxis(rand.New(rand.NewSource(3)), 100, 7, 3)
	for i, s := range samples {
		theta := float64(i) * GoldenAngle
		assert.InDelta(t, -theta, s.Rotation.Y, 1e-12)
		assert.InDelta(t, float64(i)/100*7, s.Position.Y(), NoiseBound)
		assert.InDelta(t, 0, s.Rotation.X, 0.25)
		assert.InDelta(t, math.Pi/4, s.Rotation.Z, 0.25)
	}
}

func TestSurfaceBiasedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			samples := SurfaceBiased(rng, tt.count, tt.height, tt.radius)
			require.Len(t, samples, tt.count)
			for i, s := range samples {
				y := s.Position.Y()
				assert.GreaterOrEqual(t, y, 0.0, "sample %d", i)
				assert.Less(t, y, tt.height, "sample %d", i)

				cone := ConeRadius(y, tt.height, tt.radius)
				r := geom.HorizontalRadius(s.Position)
				assert.GreaterOrEqual(t, r, 0.8*cone-1e-9, "sample %d", i)
				assert.LessOrEqual(t, r, 1.2*cone+1e-9, "sample %d", i)
				assert.Nil(t, s.Rotation)
			}
		})
	}
}

func TestRegenerationKeepsShape(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := SurfaceBiased(rng, 80, 7, 3)
	b := SurfaceBiased(rng, 80, 7, 3)
	require.Len(t, b, len(a))
	assert.NotEqual(t, a, b, "details are randomized")

	c := Phyllotaxis(rng, 300, 7, 3)
	d := Phyllotaxis(rng, 300, 7, 3)
	require.Len(t, d, len(c))
}

func TestInvalidInputsAreEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, Phyllotaxis(rng, 0, 7, 3))
	assert.Empty(t, Phyllotaxis(rng, -5, 7, 3))
	assert.Empty(t, SurfaceBiased(rng, 10, 0, 3))
	assert.Empty(t, SurfaceBiased(rng, 10, 7, -1))
	assert.Empty(t, Twinkles(rng, 0))
}

func TestTwinkles(t *testing.T) {
	tw := Twinkles(rand.New(rand.NewSource(9)), 80)
	require.Len(t, tw, 80)
	for _, p := range tw {
		assert.GreaterOrEqual(t, p.Speed, 0.0)
		assert.Less(t, p.Speed, 1.0)
		assert.GreaterOrEqual(t, p.Offset, 0.0)
		assert.Less(t, p.Offset, 100.0)
		for _, at := range []float64{0, 0.5, 13, 1e4} {
			v := p.Pulse(at)
			assert.GreaterOrEqual(t, v, 0.4-1e-12)
			assert.LessOrEqual(t, v, 1.2+1e-12)
		}
	}

	still := Twinkle{Speed: 0, Offset: 0}
	assert.InDelta(t, 0.8, still.Pulse(123), 1e-12)
}
