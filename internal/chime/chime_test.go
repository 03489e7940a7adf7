package chime

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteFrequency(t *testing.T) {
	assert.InDelta(t, 880, NoteFrequency(0), 1e-9)
	assert.InDelta(t, 1760, NoteFrequency(5), 1e-9, "one octave per scale")
	assert.InDelta(t, 880*math.Pow(2, 7.0/12), NoteFrequency(3), 1e-9)
	assert.Equal(t, NoteFrequency(0), NoteFrequency(-3))
}

func TestBellVoices(t *testing.T) {
	b := NewBell(SampleRate, 2)
	buf := make([][2]float64, 64)

	n, ok := b.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 64, n)
	for _, s := range buf {
		assert.Zero(t, s[0], "idle bell is silent")
	}

	b.Ring(0)
	b.Ring(1)
	b.Ring(2)
	assert.Equal(t, 2, b.Active(), "pool is fixed; the oldest voice is stolen")

	b.Stream(buf)
	var peak float64
	for _, s := range buf {
		assert.Equal(t, s[0], s[1])
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.0)
	assert.NoError(t, b.Err())
}

func TestBellDecays(t *testing.T) {
	b := NewBell(beep.SampleRate(1000), 1)
	b.Ring(0)
	buf := make([][2]float64, 1000)
	for i := 0; i < 3; i++ {
		b.Stream(buf)
	}
	assert.Zero(t, b.Active())
}

func TestRate(t *testing.T) {
	v := view.Default()
	assert.InDelta(t, BaseRate, Rate(v), 1e-12)
	v.SetSparkleIntensity(3)
	assert.InDelta(t, 3*BaseRate, Rate(v), 1e-12)
	v.SetSparkleIntensity(0)
	assert.Zero(t, Rate(v))
	v.SetSparkleIntensity(2)
	v.SetShowParticles(false)
	assert.Zero(t, Rate(v), "hidden particles are silent")
}

func newTestPlayer(openErr error) (*Player, *int) {
	p := NewPlayer(config.Default().Audio, rand.New(rand.NewSource(3)))
	opens := 0
	p.openSpeaker = func(beep.Streamer) error {
		opens++
		return openErr
	}
	return p, &opens
}

func TestPlayerTick(t *testing.T) {
	p, opens := newTestPlayer(nil)
	v := view.Default()

	assert.Zero(t, p.Tick(10, v), "disabled by default")

	require.NoError(t, p.SetEnabled(true))
	assert.Equal(t, 1, *opens)
	assert.False(t, p.ctrl.Paused)

	// 0.8 chimes per second: 5.5 seconds ring 4 times
	total := 0
	for i := 0; i < 55; i++ {
		total += p.Tick(0.1, v)
	}
	assert.Equal(t, 4, total)

	require.NoError(t, p.SetEnabled(false))
	require.NoError(t, p.SetEnabled(true))
	assert.Equal(t, 1, *opens, "speaker opens once")
}

func TestPlayerSpeakerFailure(t *testing.T) {
	p, _ := newTestPlayer(errors.New("no device"))
	err := p.SetEnabled(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")
	assert.False(t, p.Enabled())
}

func TestSetLevel(t *testing.T) {
	v := &effects.Volume{Base: 2}
	SetLevel(v, 0)
	assert.True(t, v.Silent)
	SetLevel(v, 0.5)
	assert.False(t, v.Silent)
	assert.InDelta(t, -1, v.Volume, 1e-12)
	SetLevel(v, 4)
	assert.InDelta(t, 0, v.Volume, 1e-12)
}
