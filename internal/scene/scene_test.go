package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScene(t *testing.T) *Scene {
	t.Helper()
	s, err := Build(config.Default(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, s.Ready())
	return s
}

func TestMountWithDefaults(t *testing.T) {
	s := buildScene(t)
	assert.Len(t, s.Tree.Needles, 1800)
	assert.Len(t, s.Tree.Ornaments, 150)
	assert.Len(t, s.Tree.Sparkles, 80)
	assert.Len(t, s.Tree.Twinkles, 80)
	assert.Len(t, s.Stars, config.StarCount)

	f := s.Frame(0, view.Default())
	require.NotNil(t, f)
	assert.Equal(t, 1800, f.Count(BatchNeedles))
	assert.Equal(t, 150, f.Count(BatchOrnaments))
	assert.Equal(t, 80, f.Count(BatchSparkles))
	assert.Equal(t, 1, f.Count(BatchGround))
	assert.Equal(t, 1, f.Count(BatchStarShell))
	assert.Equal(t, 1.0, CoreScale(0))
	assert.Len(t, f.Lights, 5)
}

func TestFrameBeforeBuild(t *testing.T) {
	s := New(config.Default(), rand.New(rand.NewSource(1)))
	assert.False(t, s.Ready())
	assert.Nil(t, s.Frame(1, view.Default()))
}

func TestBuildRejectsInvalidTree(t *testing.T) {
	cfg := config.Default()
	cfg.Tree.SparkleCount = 0
	_, err := Build(cfg, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVisibilityToggle(t *testing.T) {
	s := buildScene(t)
	v := view.Default()

	v.ToggleParticles()
	f := s.Frame(1, v)
	assert.Equal(t, 0, f.Count(BatchSparkles))
	_, found := f.Find(BatchSparkles)
	assert.False(t, found, "hidden sparkles are omitted, not dimmed")

	v.ToggleParticles()
	f = s.Frame(2, v)
	assert.Equal(t, 80, f.Count(BatchSparkles))
}

func TestSparkleEmissive(t *testing.T) {
	s := buildScene(t)
	v := view.Default()

	for _, at := range []float64{0, 1.7, 300} {
		v.SetSparkleIntensity(3)
		b, ok := s.Frame(at, v).Find(BatchSparkles)
		require.True(t, ok)
		assert.InDelta(t, 9, b.Material.EmissiveIntensity, 1e-12)

		v.SetSparkleIntensity(0)
		b, _ = s.Frame(at, v).Find(BatchSparkles)
		assert.Equal(t, 0.0, b.Material.EmissiveIntensity)
	}

	assert.InDelta(t, 2*SparkleMaterial(0.5).EmissiveIntensity, SparkleMaterial(1).EmissiveIntensity, 1e-12)
}

func TestSamplesStableAcrossFrames(t *testing.T) {
	s := buildScene(t)
	first := append([]geom.Vec3(nil), positions(s)...)
	for i := 0; i < 120; i++ {
		s.Frame(float64(i)/60, view.Default())
	}
	assert.Equal(t, first, positions(s))
}

func positions(s *Scene) []geom.Vec3 {
	out := make([]geom.Vec3, 0, len(s.Tree.Sparkles))
	for _, p := range s.Tree.Sparkles {
		out = append(out, p.Position)
	}
	return out
}

func TestSparklePulse(t *testing.T) {
	s := buildScene(t)
	for i := range s.Tree.Sparkles {
		base := s.Tree.Sparkles[i].Scale
		tw := s.Tree.Twinkles[i]
		want := base * (0.8 + 0.4*math.Sin(3*tw.Speed*2.5+tw.Offset))
		assert.InDelta(t, want, s.Tree.SparkleScale(i, 2.5), 1e-12)
	}
}

func TestSwayDependsOnTimeOnly(t *testing.T) {
	assert.Equal(t, Sway(4.2), Sway(4.2))
	for _, at := range []float64{0, 1, 10, 1000} {
		e := Sway(at)
		assert.LessOrEqual(t, math.Abs(e.X), 0.02)
		assert.LessOrEqual(t, math.Abs(e.Z), 0.02)
		assert.Zero(t, e.Y)
	}
	assert.InDelta(t, 0.02, Sway(0).X, 1e-12)
}

func TestStarAnimation(t *testing.T) {
	assert.InDelta(t, 1.1, CoreScale(math.Pi/4), 1e-12)
	r := ShellRotation(2)
	assert.InDelta(t, 1.0, r.Y, 1e-12)
	assert.InDelta(t, math.Sin(1)*0.1, r.Z, 1e-12)

	star := NewStar(7)
	assert.InDelta(t, 7.2, star.Offset.Y(), 1e-12)
	assert.InDelta(t, 4.2, star.Light(geom.Translate(GroupOffset)).Position.Y(), 1e-12)
}

func TestOrbitAutoRotate(t *testing.T) {
	o := NewOrbit(geom.V(0, 2, 12))
	start := o.Azimuth

	o.AutoRotate(1, 0)
	assert.Equal(t, start, o.Azimuth, "speed 0 disables auto rotation")

	assert.InDelta(t, 4*math.Pi/60, AutoRotateRate(2), 1e-12)
	assert.Equal(t, AutoRotateRate(2), AutoRotateRate(5), "rate never exceeds the maximum")
	assert.InDelta(t, AutoRotateRate(0.5)*4, AutoRotateRate(2), 1e-12)

	o.AutoRotate(0.5, 0.5)
	assert.InDelta(t, start-AutoRotateRate(0.5)*0.5, o.Azimuth, 1e-12)
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbit(geom.V(0, 2, 12))
	assert.InDelta(t, math.Sqrt(148), o.Distance, 1e-9)
	assert.InDelta(t, 12, o.Eye().Z(), 1e-9)

	o.Drag(0, 10000, 600)
	assert.Equal(t, config.OrbitMinPolar, o.Polar, "cannot pass over the top")
	o.Drag(0, -10000, 600)
	assert.Equal(t, config.OrbitMaxPolar, o.Polar, "cannot go under the tree")

	o.Zoom(100)
	assert.Equal(t, config.OrbitMinDistance, o.Distance)
	o.Zoom(-100)
	assert.Equal(t, config.OrbitMaxDistance, o.Distance)
}

func TestConeShadowOnGround(t *testing.T) {
	poly := ConeShadow(geom.V(0, -3, 0), 7, 3, KeyLightPosition, -3.5)
	require.GreaterOrEqual(t, len(poly), 3)
	for _, p := range poly {
		assert.Equal(t, -3.5, p.Y())
		assert.Less(t, geom.HorizontalRadius(p), 8.0, "shadow stays on the disc")
	}
	assert.Nil(t, ConeShadow(geom.V(0, 0, 0), 7, 3, geom.V(1, 0, 0), -1))
}

func TestStarfieldShell(t *testing.T) {
	stars := Starfield(rand.New(rand.NewSource(5)), 500, 100, 50)
	require.Len(t, stars, 500)
	for _, p := range stars {
		r := p.Position.Len()
		assert.GreaterOrEqual(t, r, 100-1e-9)
		assert.LessOrEqual(t, r, 150+1e-9)
		b := p.Twinkle(3)
		assert.GreaterOrEqual(t, b, 0.5)
		assert.LessOrEqual(t, b, 1.0)
	}
}

func TestInstancesFollowSway(t *testing.T) {
	s := buildScene(t)
	v := view.Default()
	first := func(at float64, b Batch) geom.Mat4 {
		bf, ok := s.Frame(at, v).Find(b)
		require.True(t, ok)
		return bf.Instances[0]
	}

	for _, at := range []float64{0, 2.5} {
		world := s.group.Mul4(geom.FromEuler(Sway(at)))
		assert.Equal(t, world.Mul4(s.Tree.needleLocal[0]), first(at, BatchNeedles), "needles t=%v", at)
		assert.Equal(t, world.Mul4(s.Tree.ornamentLocal[0]), first(at, BatchOrnaments), "ornaments t=%v", at)
		sparkle := geom.Compose(s.Tree.Sparkles[0].Position, geom.Euler{}, s.Tree.SparkleScale(0, at))
		assert.Equal(t, world.Mul4(sparkle), first(at, BatchSparkles), "sparkles t=%v", at)

		// the topper hangs from the group, not the swaying tree
		core := geom.MulPoint(first(at, BatchStarCore), geom.Vec3{})
		assert.InDelta(t, 0, core.X(), 1e-12)
		assert.InDelta(t, 4.2, core.Y(), 1e-12)
		assert.InDelta(t, 0, core.Z(), 1e-12)
	}
	assert.NotEqual(t, first(0, BatchNeedles), first(2.5, BatchNeedles))
}
