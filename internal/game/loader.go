package game

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/scene"
)

// Loader runs scene construction one stage per tick so a progress bar can be drawn
// in between. A failed stage stops the loader where it is.
type Loader struct {
	stages []scene.Stage
	next   int
	err    error
}

func NewLoader(stages []scene.Stage) *Loader {
	return &Loader{stages: stages}
}

// Step runs the next stage and reports whether loading is complete.
func (l *Loader) Step() bool {
	if l.Done() || l.err != nil {
		return l.Done()
	}
	st := l.stages[l.next]
	if err := st.Run(); err != nil {
		l.err = fmt.Errorf("stage %q: %w", st.Name, err)
		log.Printf("[Loader] Error: %v", l.err)
		return false
	}
	l.next++
	log.Printf("[Loader] %s (%d/%d)", st.Name, l.next, len(l.stages))
	return l.Done()
}

func (l *Loader) Done() bool {
	return l.next >= len(l.stages)
}

func (l *Loader) Err() error {
	return l.err
}

func (l *Loader) Progress() float64 {
	if len(l.stages) == 0 {
		return 1
	}
	return clamp01(float64(l.next) / float64(len(l.stages)))
}

// Current names the stage that runs next.
func (l *Loader) Current() string {
	if l.Done() {
		return ""
	}
	return l.stages[l.next].Name
}

const (
	loaderBarWidth  = 200
	loaderBarHeight = 4
)

// Draw paints the gold-on-green progress bar centered on screen.
func (l *Loader) Draw(screen *ebiten.Image, scale float64) {
	screen.Fill(color.Black)
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	bw, bh := loaderBarWidth*scale, loaderBarHeight*scale
	x, y := (w-bw)/2, (h-bh)/2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(bw), float32(bh), hexColor(config.LoaderTrack), false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(bw*l.Progress()), float32(bh), hexColor(config.LoaderBar), false)

	msg := fmt.Sprintf("Loading %.0f%%  %s", l.Progress()*100, l.Current())
	if l.err != nil {
		msg = "Error: " + l.err.Error()
	}
	ebitenutil.DebugPrintAt(screen, msg, int(x), int(y+bh)+8)
}
