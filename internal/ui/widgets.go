// Package ui draws the on-screen control panel and maps pointer input onto it.
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// PointerInput is the pointer state the panel reads. Tests swap in a mock.
type PointerInput interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

type ebitenPointer struct{}

func (ebitenPointer) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenPointer) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

// DefaultPointer reads the mouse through ebiten.
var DefaultPointer PointerInput = ebitenPointer{}

// Rect is an axis-aligned box in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Slider edits a bounded value in fixed steps.
type Slider struct {
	Label    string
	Min, Max float64
	Step     float64
	Value    float64
	OnChange func(float64)

	Bounds   Rect
	Hovered  bool
	Dragging bool
}

// Set snaps v to the step grid, clamps it, and reports the new value if it changed.
func (s *Slider) Set(v float64) bool {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = math.Round(v*1e9) / 1e9
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if v == s.Value {
		return false
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
	return true
}

// ValueAt maps a pointer x to the slider domain.
func (s *Slider) ValueAt(x float64) float64 {
	if s.Bounds.W <= 0 {
		return s.Min
	}
	f := (x - s.Bounds.X) / s.Bounds.W
	return s.Min + f*(s.Max-s.Min)
}

// Fraction is the knob position in [0,1].
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Readout is the integer shown next to the label.
func (s *Slider) Readout() int {
	return int(math.Round(s.Value * 10))
}

// Toggle flips a boolean on click.
type Toggle struct {
	Label    string
	On       bool
	OnToggle func(bool)

	Bounds  Rect
	Hovered bool
}

func (t *Toggle) Flip() {
	t.On = !t.On
	if t.OnToggle != nil {
		t.OnToggle(t.On)
	}
}

func (t *Toggle) State() string {
	if t.On {
		return "ACTIVE"
	}
	return "HIDDEN"
}

func nrgba(hex string, a uint8) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{R: 255, B: 255, A: a}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
