package chime

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/view"
)

const (
	// chimes per second at glimmer 1
	BaseRate  = 0.8
	polyphony = 8
	noteRange = 10
)

// Rate is the chime rate for the current controls. Hidden particles are silent.
func Rate(v view.State) float64 {
	if !v.ShowParticles {
		return 0
	}
	return BaseRate * v.SparkleIntensity
}

// Player rings the bell in step with the sparkles. The speaker is opened the first
// time the player is enabled.
type Player struct {
	Bell *Bell

	ctrl    *beep.Ctrl
	volume  *effects.Volume
	rng     *rand.Rand
	enabled bool
	opened  bool
	acc     float64

	// openSpeaker is replaced in tests
	openSpeaker func(beep.Streamer) error
}

func NewPlayer(cfg config.AudioConfig, rng *rand.Rand) *Player {
	bell := NewBell(SampleRate, polyphony)
	vol := &effects.Volume{Streamer: bell, Base: 2}
	SetLevel(vol, cfg.Volume)
	return &Player{
		Bell:        bell,
		ctrl:        &beep.Ctrl{Streamer: vol, Paused: true},
		volume:      vol,
		rng:         rng,
		openSpeaker: openSpeaker,
	}
}

func openSpeaker(s beep.Streamer) error {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// SetLevel maps a linear level in [0,1] onto the volume effect.
func SetLevel(v *effects.Volume, level float64) {
	level = config.Clamp(level, 0, 1)
	v.Silent = level <= 0
	if !v.Silent {
		v.Volume = math.Log2(level)
	}
}

func (p *Player) Enabled() bool {
	return p.enabled
}

// SetEnabled turns the chime on or off. A speaker that cannot be opened leaves it off.
func (p *Player) SetEnabled(on bool) error {
	if on && !p.opened {
		if err := p.openSpeaker(p.ctrl); err != nil {
			return fmt.Errorf("open speaker: %w", err)
		}
		p.opened = true
	}
	p.enabled = on
	p.acc = 0
	if p.opened {
		speaker.Lock()
		p.ctrl.Paused = !on
		speaker.Unlock()
	}
	log.Printf("[Chime] enabled=%v", on)
	return nil
}

// Tick advances by dt seconds and rings once per accumulated chime.
func (p *Player) Tick(dt float64, v view.State) int {
	if !p.enabled {
		return 0
	}
	p.acc += dt * Rate(v)
	n := 0
	for p.acc >= 1 {
		p.acc--
		p.Bell.Ring(p.rng.Intn(noteRange))
		n++
	}
	return n
}
