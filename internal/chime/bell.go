// Package chime synthesizes soft bell tones that follow the sparkle glimmer.
package chime

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

const (
	SampleRate beep.SampleRate = 44100

	// voices older than this are silent enough to recycle
	voiceLife = 2.5
	baseFreq  = 880.0
)

// inharmonic bell partials: frequency ratio, amplitude, decay per second
var partials = [...]struct{ ratio, amp, decay float64 }{
	{1, 1, 2.2},
	{2.76, 0.45, 3.8},
	{5.4, 0.22, 6.5},
	{8.93, 0.08, 9},
}

// pentatonic steps in semitones
var scale = [...]float64{0, 2, 4, 7, 9}

type voice struct {
	freq float64
	age  float64
	live bool
}

// Bell is a beep.Streamer mixing a fixed pool of decaying voices. Ring may be called
// from the game loop while the speaker goroutine streams.
type Bell struct {
	mu     sync.Mutex
	voices []voice
	next   int
	step   float64
}

func NewBell(sr beep.SampleRate, polyphony int) *Bell {
	if polyphony < 1 {
		polyphony = 1
	}
	return &Bell{
		voices: make([]voice, polyphony),
		step:   1 / float64(sr),
	}
}

// NoteFrequency maps a note index onto a pentatonic scale above A5.
func NoteFrequency(note int) float64 {
	if note < 0 {
		note = 0
	}
	semis := scale[note%len(scale)] + 12*float64(note/len(scale))
	return baseFreq * math.Pow(2, semis/12)
}

// Ring starts a voice, stealing the oldest slot when the pool is full.
func (b *Bell) Ring(note int) {
	b.mu.Lock()
	b.voices[b.next] = voice{freq: NoteFrequency(note), live: true}
	b.next = (b.next + 1) % len(b.voices)
	b.mu.Unlock()
}

// Active counts sounding voices.
func (b *Bell) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, v := range b.voices {
		if v.live {
			n++
		}
	}
	return n
}

func (b *Bell) Stream(samples [][2]float64) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range samples {
		var s float64
		for k := range b.voices {
			v := &b.voices[k]
			if !v.live {
				continue
			}
			s += sampleAt(v.freq, v.age)
			v.age += b.step
			if v.age > voiceLife {
				v.live = false
			}
		}
		s *= 0.25
		samples[i] = [2]float64{s, s}
	}
	return len(samples), true
}

func (b *Bell) Err() error { return nil }

func sampleAt(freq, t float64) float64 {
	var s float64
	for _, p := range partials {
		s += p.amp * math.Exp(-p.decay*t) * math.Sin(2*math.Pi*freq*p.ratio*t)
	}
	return s
}
