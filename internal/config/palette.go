package config

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Scene colors as authored in sRGB hex.
const (
	Background    = "#000502"
	NeedleGreen   = "#034205"
	OrnamentGold  = "#FFD700"
	OrnamentGlow  = "#FFAA00"
	SparkleWhite  = "#FFFFFF"
	StarSilver    = "#E0E0E0"
	StarGlow      = "#C0C0C0"
	GroundColor   = "#000905"
	AmbientColor  = "#041f0e"
	KeyLightColor = "#fff5b6"
	FillGreen     = "#046307"
	FillGold      = "#FFD700"
	LoaderTrack   = "#046307"
	LoaderBar     = "#FFD700"

	// Control panel
	PanelInk    = "#FFFFFF"
	PanelAccent = "#FACC15"
	PanelMint   = "#A7F3D0"
	PanelActive = "#064E3B"
)

// Linear converts an sRGB hex color into linear RGB, the space lighting is computed in.
// Malformed input yields magenta so it is obvious on screen.
func Linear(hex string) (r, g, b float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 1, 0, 1
	}
	return c.LinearRgb()
}
