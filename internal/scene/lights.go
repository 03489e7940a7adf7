package scene

import (
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
)

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is one scene light. Directional lights shine from Position toward the origin.
// Point lights with Distance 0 have no range cutoff.
type Light struct {
	Kind      LightKind
	Color     geom.Vec3
	Intensity float64
	Position  geom.Vec3
	Distance  float64
	Decay     float64
	Shadows   bool
}

// KeyLightPosition is where the shadow-casting key light sits.
var KeyLightPosition = geom.V(10, 20, 10)

// staticLights are the lights that never move: ambient, key and two fills.
func staticLights() []Light {
	return []Light{
		{Kind: LightAmbient, Color: hex(config.AmbientColor), Intensity: 0.2},
		{Kind: LightDirectional, Color: hex(config.KeyLightColor), Intensity: 2, Position: KeyLightPosition, Shadows: true},
		{Kind: LightPoint, Color: hex(config.FillGreen), Intensity: 1, Position: geom.V(-5, 5, -5), Decay: 2},
		{Kind: LightPoint, Color: hex(config.FillGold), Intensity: 1.5, Position: geom.V(5, 0, 5), Distance: 10, Decay: 2},
	}
}

// EnvironmentLevel is the constant "night" reflection term seen by metallic surfaces.
var EnvironmentLevel = geom.V(0.05, 0.06, 0.09)
