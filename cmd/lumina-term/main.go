// Command lumina-term previews the tree in a truecolor terminal.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/render"
	"github.com/iburimskiy/lumina/internal/scene"
	"github.com/iburimskiy/lumina/internal/term"
	"github.com/iburimskiy/lumina/internal/view"
)

type preview struct {
	screen tcell.Screen
	scene  *scene.Scene
	view   view.State
	pl     render.Pipeline
	canvas *term.Canvas

	start time.Time
	last  time.Time
}

func newPreview(cfg config.Config) (*preview, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sc, err := scene.Build(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	now := time.Now()
	return &preview{
		screen: screen,
		scene:  sc,
		view:   view.FromConfig(cfg.View),
		canvas: term.NewCanvas(0, 0),
		start:  now,
		last:   now,
	}, nil
}

func (p *preview) draw() {
	now := time.Now()
	dt := now.Sub(p.last).Seconds()
	p.last = now
	p.scene.Orbit.AutoRotate(dt, p.view.RotationSpeed)

	w, h := p.screen.Size()
	rows := max(0, h-1)
	p.canvas.Resize(w, rows*2)

	f := p.scene.Frame(now.Sub(p.start).Seconds(), p.view)
	r, g, b := render.Display(f.Background, false)
	p.canvas.Clear(color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255})
	p.pl.Build(f, p.canvas.W, p.canvas.H)
	p.canvas.Paint(&p.pl)

	p.screen.Clear()
	p.canvas.Blit(p.screen, 0)
	term.PrintAt(p.screen, 0, rows, term.Status(p.view), tcell.StyleDefault.Foreground(tcell.ColorGold))
	p.screen.Show()
}

func (p *preview) run() {
	// a terminal has no vsync to follow; ~30 fps keeps the cell diff small
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !term.HandleKey(&p.view, ev) {
					return
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case <-ticker.C:
			p.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "particle seed (0 picks one from the clock)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	p, err := newPreview(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer p.screen.Fini()

	p.run()
}
