package ui

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/view"
)

const (
	Title    = "LUMINA"
	Subtitle = "INTERACTIVE HOLIDAY EXPERIENCE"
	Footer   = "Drag to orbit, scroll to zoom. P particles, M chime, S snapshot"

	panelMaxWidth = 360
	panelHeight   = 172
	panelMargin   = 40
	panelPad      = 20
	trackHeight   = 14
	toggleWidth   = 64
	toggleHeight  = 22

	// ebitenutil debug font cell
	glyphW = 6
	glyphH = 16
)

// Panel is the control overlay: two sliders and the particle toggle, bound to a view.State.
type Panel struct {
	Rotation  *Slider
	Glimmer   *Slider
	Particles *Toggle
	Bounds    Rect

	input       PointerInput
	prevPressed bool
	captured    bool
	w, h        float64
}

// NewPanel binds the controls to v. Control changes are written through v's setters
// immediately.
func NewPanel(v *view.State) *Panel {
	return NewPanelWithInput(v, DefaultPointer)
}

// NewPanelWithInput is NewPanel with an explicit pointer source.
func NewPanelWithInput(v *view.State, input PointerInput) *Panel {
	p := &Panel{
		Rotation: &Slider{
			Label: "ROTATION",
			Min:   config.RotationSpeedMin,
			Max:   config.RotationSpeedMax,
			Step:  config.SliderStep,
			Value: v.RotationSpeed,
			OnChange: func(x float64) {
				v.SetRotationSpeed(x)
			},
		},
		Glimmer: &Slider{
			Label: "GLIMMER",
			Min:   config.SparkleMin,
			Max:   config.SparkleMax,
			Step:  config.SliderStep,
			Value: v.SparkleIntensity,
			OnChange: func(x float64) {
				v.SetSparkleIntensity(x)
			},
		},
		Particles: &Toggle{
			Label: "PARTICLES",
			On:    v.ShowParticles,
			OnToggle: func(on bool) {
				v.SetShowParticles(on)
			},
		},
		input: input,
	}
	p.Layout(config.WindowWidth, config.WindowHeight)
	return p
}

// Layout places the panel bottom-center of a w×h logical screen.
func (p *Panel) Layout(w, h float64) {
	if w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	pw := math.Min(panelMaxWidth, w-2*panelPad)
	x := math.Round((w - pw) / 2)
	y := h - panelHeight - panelMargin
	p.Bounds = Rect{X: x, Y: y, W: pw, H: panelHeight}

	inner := pw - 2*panelPad
	p.Rotation.Bounds = Rect{X: x + panelPad, Y: y + 60, W: inner, H: trackHeight}
	p.Glimmer.Bounds = Rect{X: x + panelPad, Y: y + 102, W: inner, H: trackHeight}
	p.Particles.Bounds = Rect{X: x + pw - panelPad - toggleWidth, Y: y + 130, W: toggleWidth, H: toggleHeight}
}

// Contains reports whether a logical point is over the panel.
func (p *Panel) Contains(x, y float64) bool {
	return p.Bounds.Contains(x, y)
}

// Sync copies v into the controls without firing callbacks.
func (p *Panel) Sync(v view.State) {
	p.Rotation.Value = v.RotationSpeed
	p.Glimmer.Value = v.SparkleIntensity
	p.Particles.On = v.ShowParticles
}

// Update applies pointer input. scale converts screen pixels to logical ones. It
// reports whether the pointer belongs to the panel: while pressed, only a press that
// started on the panel counts; otherwise hovering does.
func (p *Panel) Update(scale float64) bool {
	if scale <= 0 {
		scale = 1
	}
	cx, cy := p.input.CursorPosition()
	x, y := float64(cx)/scale, float64(cy)/scale
	pressed := p.input.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := pressed && !p.prevPressed
	p.prevPressed = pressed

	p.Particles.Hovered = p.Particles.Bounds.Contains(x, y)
	if justPressed {
		p.captured = p.Contains(x, y)
		if p.Particles.Hovered {
			p.Particles.Flip()
		}
	}
	for _, s := range []*Slider{p.Rotation, p.Glimmer} {
		s.Hovered = s.Bounds.Contains(x, y)
		if justPressed && s.Hovered {
			s.Dragging = true
		}
		if !pressed {
			s.Dragging = false
		}
		if s.Dragging {
			s.Set(s.ValueAt(x))
		}
	}
	if !pressed {
		p.captured = false
		return p.Contains(x, y)
	}
	return p.captured
}

// Draw paints header, controls and footer in logical pixels.
func (p *Panel) Draw(dst *ebiten.Image) {
	ink := nrgba(config.PanelInk, 150)
	gold := nrgba(config.PanelAccent, 255)

	printCentered(dst, Title, p.w/2, 28)
	printCentered(dst, Subtitle, p.w/2, 48)
	vector.DrawFilledRect(dst, float32(p.w/2-60), 70, 120, 1, nrgba(config.PanelMint, 120), false)

	b := p.Bounds
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), nrgba("#000000", 110), false)
	vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, nrgba(config.PanelInk, 26), false)

	left := int(b.X + panelPad)
	ebitenutil.DebugPrintAt(dst, "CONTROLS", left, int(b.Y)+8)
	vector.DrawFilledRect(dst, float32(b.X+panelPad), float32(b.Y+30), float32(b.W-2*panelPad), 1, ink, false)

	for _, s := range []*Slider{p.Rotation, p.Glimmer} {
		r := s.Bounds
		ebitenutil.DebugPrintAt(dst, s.Label, int(r.X), int(r.Y)-20)
		readout := fmt.Sprint(s.Readout())
		ebitenutil.DebugPrintAt(dst, readout, int(r.X+r.W)-len(readout)*glyphW, int(r.Y)-20)

		mid := float32(r.Y + r.H/2)
		vector.DrawFilledRect(dst, float32(r.X), mid-2, float32(r.W), 4, nrgba(config.PanelInk, 50), false)
		kx := float32(r.X + s.Fraction()*r.W)
		vector.DrawFilledRect(dst, float32(r.X), mid-2, kx-float32(r.X), 4, gold, false)
		radius := float32(6)
		if s.Hovered || s.Dragging {
			radius = 7
		}
		vector.DrawFilledCircle(dst, kx, mid, radius, gold, true)
	}

	t := p.Particles
	ebitenutil.DebugPrintAt(dst, t.Label, left, int(t.Bounds.Y)+3)
	fill, border := nrgba(config.PanelInk, 13), nrgba(config.PanelInk, 26)
	if t.On {
		fill, border = nrgba(config.PanelActive, 204), nrgba(config.PanelMint, 80)
	}
	vector.DrawFilledRect(dst, float32(t.Bounds.X), float32(t.Bounds.Y), float32(t.Bounds.W), float32(t.Bounds.H), fill, false)
	vector.StrokeRect(dst, float32(t.Bounds.X), float32(t.Bounds.Y), float32(t.Bounds.W), float32(t.Bounds.H), 1, border, false)
	label := t.State()
	ebitenutil.DebugPrintAt(dst, label, int(t.Bounds.X+(t.Bounds.W-float64(len(label)*glyphW))/2), int(t.Bounds.Y)+3)

	printCentered(dst, Footer, p.w/2, p.h-glyphH-8)
}

func printCentered(dst *ebiten.Image, s string, cx, y float64) {
	ebitenutil.DebugPrintAt(dst, s, int(cx)-len(s)*glyphW/2, int(y))
}
