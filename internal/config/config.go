package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Tree dimensions and particle counts
	TreeHeight    = 7.0
	TreeRadius    = 3.0
	NeedleCount   = 1800
	OrnamentCount = 150
	SparkleCount  = 80

	// Slider domains
	RotationSpeedMin  = 0.0
	RotationSpeedMax  = 2.0
	SparkleMin        = 0.0
	SparkleMax        = 3.0
	SliderStep        = 0.1
	SparkleEmissiveK  = 3.0
	DefaultRotation   = 0.5
	DefaultSparkle    = 1.0
	DefaultParticles  = true
	MinPixelRatio     = 1.0
	MaxPixelRatio     = 2.0
	DefaultChimeLevel = 0.35

	// Camera and orbit
	CameraFOVDegrees = 45.0
	CameraNear       = 0.1
	CameraFar        = 400.0
	OrbitMinDistance = 5.0
	OrbitMaxDistance = 20.0
	OrbitMinPolar    = math.Pi / 3
	OrbitMaxPolar    = math.Pi / 1.8

	// Fog
	FogNear = 5.0
	FogFar  = 25.0

	// Post-processing
	BloomThreshold = 1.1
	BloomIntensity = 1.5
	BloomRadius    = 0.6
	VignetteOffset = 0.1
	VignetteDark   = 0.6
	NoiseOpacity   = 0.02

	// Star field
	StarCount  = 5000
	StarRadius = 100.0
	StarDepth  = 50.0
)

// CameraStart is the initial camera position.
var CameraStart = [3]float64{0, 2, 12}

// ErrInvalidConfig marks values that cannot build a scene.
var ErrInvalidConfig = errors.New("invalid config")

type TreeConfig struct {
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	NeedleCount   int     `yaml:"needleCount"`
	OrnamentCount int     `yaml:"ornamentCount"`
	SparkleCount  int     `yaml:"sparkleCount"`
}

type ViewConfig struct {
	RotationSpeed    float64 `yaml:"rotationSpeed"`
	SparkleIntensity float64 `yaml:"sparkleIntensity"`
	ShowParticles    bool    `yaml:"showParticles"`
}

type RenderConfig struct {
	MinPixelRatio float64 `yaml:"minPixelRatio"`
	MaxPixelRatio float64 `yaml:"maxPixelRatio"`
	AntiAlias     bool    `yaml:"antialias"`
}

type AudioConfig struct {
	Chime  bool    `yaml:"chime"`
	Volume float64 `yaml:"volume"`
}

// Config is the optional file-backed configuration. Every field has a default.
type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	View   ViewConfig   `yaml:"view"`
	Render RenderConfig `yaml:"render"`
	Audio  AudioConfig  `yaml:"audio"`
	Seed   int64        `yaml:"seed"`
}

func Default() Config {
	return Config{
		Tree: TreeConfig{
			Height:        TreeHeight,
			Radius:        TreeRadius,
			NeedleCount:   NeedleCount,
			OrnamentCount: OrnamentCount,
			SparkleCount:  SparkleCount,
		},
		View: ViewConfig{
			RotationSpeed:    DefaultRotation,
			SparkleIntensity: DefaultSparkle,
			ShowParticles:    DefaultParticles,
		},
		Render: RenderConfig{
			MinPixelRatio: MinPixelRatio,
			MaxPixelRatio: MaxPixelRatio,
		},
		Audio: AudioConfig{
			Volume: DefaultChimeLevel,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	cfg.View.RotationSpeed = Clamp(cfg.View.RotationSpeed, RotationSpeedMin, RotationSpeedMax)
	cfg.View.SparkleIntensity = Clamp(cfg.View.SparkleIntensity, SparkleMin, SparkleMax)
	cfg.Audio.Volume = Clamp(cfg.Audio.Volume, 0, 1)
	return cfg, nil
}

func (c Config) Validate() error {
	t := c.Tree
	switch {
	case !finite(t.Height, t.Radius):
		return fmt.Errorf("%w: tree size %v x %v must be finite", ErrInvalidConfig, t.Height, t.Radius)
	case !finite(c.Render.MinPixelRatio, c.Render.MaxPixelRatio):
		return fmt.Errorf("%w: pixel ratio bounds [%v, %v] must be finite",
			ErrInvalidConfig, c.Render.MinPixelRatio, c.Render.MaxPixelRatio)
	case !finite(c.View.RotationSpeed, c.View.SparkleIntensity, c.Audio.Volume):
		return fmt.Errorf("%w: view and audio levels must be finite", ErrInvalidConfig)
	case t.Height <= 0:
		return fmt.Errorf("%w: tree height %v must be positive", ErrInvalidConfig, t.Height)
	case t.Radius <= 0:
		return fmt.Errorf("%w: tree radius %v must be positive", ErrInvalidConfig, t.Radius)
	case t.NeedleCount <= 0 || t.OrnamentCount <= 0 || t.SparkleCount <= 0:
		return fmt.Errorf("%w: particle counts must be positive (%d/%d/%d)",
			ErrInvalidConfig, t.NeedleCount, t.OrnamentCount, t.SparkleCount)
	case c.Render.MinPixelRatio <= 0 || c.Render.MaxPixelRatio < c.Render.MinPixelRatio:
		return fmt.Errorf("%w: pixel ratio bounds [%v, %v]",
			ErrInvalidConfig, c.Render.MinPixelRatio, c.Render.MaxPixelRatio)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
