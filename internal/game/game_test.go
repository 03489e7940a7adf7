package game

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/scene"
	"github.com/iburimskiy/lumina/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	x, y    int
	pressed bool
	wheel   float64
	keys    map[ebiten.Key]bool
}

func (f *fakeInput) CursorPosition() (int, int) {
	return f.x, f.y
}

func (f *fakeInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return f.pressed
}

func (f *fakeInput) Wheel() (float64, float64) {
	w := f.wheel
	f.wheel = 0
	return 0, w
}

func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool {
	on := f.keys[key]
	delete(f.keys, key)
	return on
}

func (f *fakeInput) press(keys ...ebiten.Key) {
	if f.keys == nil {
		f.keys = map[ebiten.Key]bool{}
	}
	for _, k := range keys {
		f.keys[k] = true
	}
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testGame(t *testing.T, cfg config.Config) (*Game, *fakeInput, *fakeClock) {
	t.Helper()
	cfg.Seed = 7
	in := &fakeInput{}
	clk := &fakeClock{t: time.Unix(1000, 0)}
	g := newGame(cfg, in, clk, func() float64 { return 1 })
	g.Layout(config.WindowWidth, config.WindowHeight)
	return g, in, clk
}

func loaded(t *testing.T) (*Game, *fakeInput, *fakeClock) {
	t.Helper()
	g, in, clk := testGame(t, config.Default())
	for i := 0; i < len(g.scene.Stages()); i++ {
		require.NoError(t, g.Update())
	}
	require.True(t, g.loader.Done())
	return g, in, clk
}

func TestDefaults(t *testing.T) {
	g, _, _ := testGame(t, config.Default())
	assert.Equal(t, view.Default(), g.View())
	assert.Equal(t, 5, g.panel.Rotation.Readout())
	assert.Equal(t, 10, g.panel.Glimmer.Readout())
	assert.Equal(t, "ACTIVE", g.panel.Particles.State())
	assert.False(t, g.chime.Enabled())
}

func TestLoaderOneStagePerTick(t *testing.T) {
	g, _, _ := testGame(t, config.Default())
	n := len(g.scene.Stages())
	require.Equal(t, 4, n)

	for i := 1; i <= n; i++ {
		assert.False(t, g.loader.Done())
		require.NoError(t, g.Update())
		assert.InDelta(t, float64(i)/float64(n), g.loader.Progress(), 1e-12)
	}
	assert.True(t, g.loader.Done())
	assert.True(t, g.scene.Ready())
	assert.Empty(t, g.loader.Current())
}

func TestLoaderFailSoft(t *testing.T) {
	cfg := config.Default()
	cfg.Tree.NeedleCount = 0
	g, _, _ := testGame(t, cfg)

	for i := 0; i < 10; i++ {
		require.NoError(t, g.Update(), "a failed stage never stops the loop")
	}
	assert.False(t, g.loader.Done())
	require.Error(t, g.loader.Err())
	assert.ErrorIs(t, g.loader.Err(), config.ErrInvalidConfig)
	assert.Zero(t, g.loader.Progress())
	assert.Nil(t, g.scene.Frame(0, g.view))
}

func TestLoaderEmpty(t *testing.T) {
	l := NewLoader(nil)
	assert.True(t, l.Done())
	assert.Equal(t, 1.0, l.Progress())
	assert.True(t, l.Step())
}

func TestLoaderStopsAtFailure(t *testing.T) {
	runs := 0
	l := NewLoader([]scene.Stage{
		{Name: "ok", Run: func() error { runs++; return nil }},
		{Name: "bad", Run: func() error { runs++; return assert.AnError }},
		{Name: "never", Run: func() error { runs++; return nil }},
	})
	l.Step()
	l.Step()
	l.Step()
	assert.Equal(t, 2, runs)
	assert.Equal(t, "bad", l.Current())
	assert.ErrorIs(t, l.Err(), assert.AnError)
	assert.Contains(t, l.Err().Error(), `"bad"`)
}

func TestAutoRotationFollowsClock(t *testing.T) {
	g, _, clk := loaded(t)
	az := g.scene.Orbit.Azimuth

	clk.advance(time.Second)
	require.NoError(t, g.Update())
	assert.InDelta(t, 1.0, g.Elapsed(), 1e-9)
	assert.InDelta(t, az-scene.AutoRotateRate(0.5), g.scene.Orbit.Azimuth, 1e-9)

	// frame-rate independent: two half-second ticks match one second
	az = g.scene.Orbit.Azimuth
	clk.advance(500 * time.Millisecond)
	require.NoError(t, g.Update())
	clk.advance(500 * time.Millisecond)
	require.NoError(t, g.Update())
	assert.InDelta(t, az-scene.AutoRotateRate(0.5), g.scene.Orbit.Azimuth, 1e-9)

	g.view.SetRotationSpeed(0)
	az = g.scene.Orbit.Azimuth
	clk.advance(3 * time.Second)
	require.NoError(t, g.Update())
	assert.Equal(t, az, g.scene.Orbit.Azimuth, "speed 0 is still")
}

func TestToggleKeyTwiceRestores(t *testing.T) {
	g, in, _ := loaded(t)
	before := g.View()

	in.press(ebiten.KeyP)
	require.NoError(t, g.Update())
	assert.False(t, g.View().ShowParticles)
	assert.Equal(t, "HIDDEN", g.panel.Particles.State())

	in.press(ebiten.KeyP)
	require.NoError(t, g.Update())
	assert.Equal(t, before, g.View())
	assert.Equal(t, "ACTIVE", g.panel.Particles.State())
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ} {
		g, in, _ := testGame(t, config.Default())
		in.press(k)
		assert.ErrorIs(t, g.Update(), ebiten.Termination)
	}
}

func TestSnapshotKeyRequestsCapture(t *testing.T) {
	g, in, _ := loaded(t)
	in.press(ebiten.KeyS)
	require.NoError(t, g.Update())
	assert.True(t, g.shots.Pending())
}

func TestSliderWritesView(t *testing.T) {
	g, in, _ := loaded(t)
	r := g.panel.Glimmer.Bounds

	in.x, in.y = int(r.X+r.W), int(r.Y+r.H/2)
	in.pressed = true
	require.NoError(t, g.Update())
	assert.InDelta(t, config.SparkleMax, g.View().SparkleIntensity, 1e-9)
	assert.False(t, g.dragging, "panel presses do not orbit")
}

func TestOrbitDragAndZoom(t *testing.T) {
	g, in, _ := loaded(t)
	g.view.SetRotationSpeed(0)
	az := g.scene.Orbit.Azimuth

	in.x, in.y = 100, 100
	in.pressed = true
	require.NoError(t, g.Update())
	in.x = 164
	require.NoError(t, g.Update())
	assert.Less(t, g.scene.Orbit.Azimuth, az, "dragging right orbits left")

	in.pressed = false
	require.NoError(t, g.Update())
	assert.False(t, g.dragging)

	dist := g.scene.Orbit.Distance
	in.wheel = 1
	require.NoError(t, g.Update())
	assert.InDelta(t, dist*0.95, g.scene.Orbit.Distance, 1e-9)

	// the wheel over the panel is ignored
	b := g.panel.Bounds
	in.x, in.y = int(b.X+10), int(b.Y+10)
	dist = g.scene.Orbit.Distance
	in.wheel = 1
	require.NoError(t, g.Update())
	assert.Equal(t, dist, g.scene.Orbit.Distance)
}

func TestLayoutClampsPixelRatio(t *testing.T) {
	tests := []struct {
		device float64
		w, h   int
	}{
		{0.5, 800, 600},
		{1, 800, 600},
		{1.5, 1200, 900},
		{3, 1600, 1200},
	}
	for _, tt := range tests {
		g := newGame(config.Default(), &fakeInput{}, &fakeClock{}, func() float64 { return tt.device })
		w, h := g.Layout(800, 600)
		assert.Equal(t, tt.w, w)
		assert.Equal(t, tt.h, h)
	}
}

func TestHexColor(t *testing.T) {
	r, g, b, _ := hexColor(config.LoaderBar).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(215*0x101), g)
	assert.Zero(t, b)

	r, _, b, _ = hexColor("nope").RGBA()
	assert.Equal(t, r, b)
}
