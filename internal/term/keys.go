package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/view"
)

const Help = "+/- rotation  [/] glimmer  p particles  q quit"

// HandleKey applies a key to v. It returns false when the preview should exit.
func HandleKey(v *view.State, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case '+', '=':
		v.SetRotationSpeed(v.RotationSpeed + config.SliderStep)
	case '-', '_':
		v.SetRotationSpeed(v.RotationSpeed - config.SliderStep)
	case ']':
		v.SetSparkleIntensity(v.SparkleIntensity + config.SliderStep)
	case '[':
		v.SetSparkleIntensity(v.SparkleIntensity - config.SliderStep)
	case 'p', 'P':
		v.ToggleParticles()
	}
	return true
}

// Status is the one-line control readout shown under the picture.
func Status(v view.State) string {
	particles := "HIDDEN"
	if v.ShowParticles {
		particles = "ACTIVE"
	}
	return fmt.Sprintf("LUMINA  ROTATION %d  GLIMMER %d  PARTICLES %s  %s",
		readout(v.RotationSpeed), readout(v.SparkleIntensity), particles, Help)
}

// readout matches the panel sliders: round(v·10).
func readout(v float64) int {
	return int(math.Round(v * 10))
}

// PrintAt writes s on one row, clipped to the screen width.
func PrintAt(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
