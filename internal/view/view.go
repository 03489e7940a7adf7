// Package view holds the three user-controlled scene settings.
package view

import "github.com/iburimskiy/lumina/internal/config"

// State is read once per frame by the scene and written only by control callbacks.
type State struct {
	RotationSpeed    float64
	SparkleIntensity float64
	ShowParticles    bool
}

func Default() State {
	return State{
		RotationSpeed:    config.DefaultRotation,
		SparkleIntensity: config.DefaultSparkle,
		ShowParticles:    config.DefaultParticles,
	}
}

// FromConfig returns the configured start state, clamped to the control domains.
func FromConfig(c config.ViewConfig) State {
	var s State
	s.SetRotationSpeed(c.RotationSpeed)
	s.SetSparkleIntensity(c.SparkleIntensity)
	s.ShowParticles = c.ShowParticles
	return s
}

func (s *State) SetRotationSpeed(v float64) {
	s.RotationSpeed = config.Clamp(v, config.RotationSpeedMin, config.RotationSpeedMax)
}

func (s *State) SetSparkleIntensity(v float64) {
	s.SparkleIntensity = config.Clamp(v, config.SparkleMin, config.SparkleMax)
}

func (s *State) SetShowParticles(on bool) {
	s.ShowParticles = on
}

func (s *State) ToggleParticles() {
	s.ShowParticles = !s.ShowParticles
}
