// Package game is the root container: it owns the view controls, loads the scene
// stage by stage, and drives rendering, the control panel and the keyboard.
package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/lumina/internal/chime"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/render"
	"github.com/iburimskiy/lumina/internal/scene"
	"github.com/iburimskiy/lumina/internal/snapshot"
	"github.com/iburimskiy/lumina/internal/ui"
	"github.com/iburimskiy/lumina/internal/view"
)

type Game struct {
	cfg  config.Config
	view view.State

	scene    *scene.Scene
	renderer *render.Renderer
	panel    *ui.Panel
	loader   *Loader
	chime    *chime.Player
	shots    *snapshot.Capture

	input       Input
	clock       Clock
	scaleFactor func() float64

	start time.Time
	now   float64

	// layout
	scale         float64
	width, height int
	overlay       *ebiten.Image

	// orbit drag
	dragging     bool
	lastX, lastY int
}

// New wires the game to ebiten input, the system clock and the monitor scale.
func New(cfg config.Config) *Game {
	g := newGame(cfg, ebitenInput{}, systemClock{}, monitorScale)
	if cfg.Audio.Chime {
		if err := g.chime.SetEnabled(true); err != nil {
			log.Printf("[Chime] Warning: %v", err)
		}
	}
	return g
}

func newGame(cfg config.Config, input Input, clock Clock, scaleFactor func() float64) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:         cfg,
		view:        view.FromConfig(cfg.View),
		input:       input,
		clock:       clock,
		scaleFactor: scaleFactor,
		scale:       1,
	}
	g.scene = scene.New(cfg, rand.New(rand.NewSource(seed)))
	g.renderer = render.NewRenderer(rand.New(rand.NewSource(seed + 1)))
	g.renderer.AntiAlias = cfg.Render.AntiAlias
	g.panel = ui.NewPanelWithInput(&g.view, input)
	g.loader = NewLoader(g.scene.Stages())
	g.chime = chime.NewPlayer(cfg.Audio, rand.New(rand.NewSource(seed+2)))
	g.shots = snapshot.New()
	return g
}

// View returns the current control values.
func (g *Game) View() view.State {
	return g.view
}

// Elapsed is the animation time in seconds since the scene was mounted.
func (g *Game) Elapsed() float64 {
	return g.now
}

func (g *Game) Update() error {
	if g.input.IsKeyJustPressed(ebiten.KeyEscape) || g.input.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if !g.loader.Done() {
		if g.loader.Step() {
			g.mount()
		}
		return nil
	}

	t := g.clock.Now().Sub(g.start).Seconds()
	dt := t - g.now
	g.now = t

	g.handleKeys()
	overPanel := g.panel.Update(g.scale)
	g.handlePointer(overPanel)
	if !g.dragging {
		g.scene.Orbit.AutoRotate(dt, g.view.RotationSpeed)
	}
	g.chime.Tick(dt, g.view)

	if _, err := g.shots.Flush(); err != nil {
		log.Printf("[Snapshot] Error: %v", err)
	}
	return nil
}

// mount starts the animation clock once the scene is built.
func (g *Game) mount() {
	g.start = g.clock.Now()
	g.now = 0
	log.Printf("[Game] scene ready")
}

func (g *Game) handleKeys() {
	if g.input.IsKeyJustPressed(ebiten.KeyP) {
		g.view.ToggleParticles()
		g.panel.Sync(g.view)
	}
	if g.input.IsKeyJustPressed(ebiten.KeyM) {
		if err := g.chime.SetEnabled(!g.chime.Enabled()); err != nil {
			log.Printf("[Chime] Warning: %v", err)
		}
	}
	if g.input.IsKeyJustPressed(ebiten.KeyS) {
		g.shots.Request()
	}
}

func (g *Game) handlePointer(overPanel bool) {
	x, y := g.input.CursorPosition()
	pressed := g.input.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case !pressed:
		g.dragging = false
	case g.dragging:
		g.scene.Orbit.Drag(float64(x-g.lastX), float64(y-g.lastY), float64(g.height))
	case !overPanel:
		g.dragging = true
	}
	g.lastX, g.lastY = x, y

	if _, wy := g.input.Wheel(); wy != 0 && !g.panel.Contains(float64(x)/g.scale, float64(y)/g.scale) {
		g.scene.Orbit.Zoom(wy)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.loader.Done() {
		g.loader.Draw(screen, g.scale)
		return
	}
	g.renderer.Draw(screen, g.scene.Frame(g.now, g.view))
	g.drawPanel(screen)
	g.shots.Grab(screen)
}

// drawPanel renders the controls at logical size and scales them onto the screen.
func (g *Game) drawPanel(screen *ebiten.Image) {
	lw, lh := int(float64(g.width)/g.scale), int(float64(g.height)/g.scale)
	if lw <= 0 || lh <= 0 {
		return
	}
	if g.overlay == nil || g.overlay.Bounds().Dx() != lw || g.overlay.Bounds().Dy() != lh {
		if g.overlay != nil {
			g.overlay.Deallocate()
		}
		g.overlay = ebiten.NewImage(lw, lh)
	}
	g.overlay.Clear()
	g.panel.Draw(g.overlay)

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(g.scale, g.scale)
	screen.DrawImage(g.overlay, op)
}

// Layout renders at device resolution, with the pixel ratio clamped to the configured range.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = config.Clamp(g.scaleFactor(), g.cfg.Render.MinPixelRatio, g.cfg.Render.MaxPixelRatio)
	g.width = int(float64(outsideWidth) * g.scale)
	g.height = int(float64(outsideHeight) * g.scale)
	g.panel.Layout(float64(outsideWidth), float64(outsideHeight))
	return g.width, g.height
}
