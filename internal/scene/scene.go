// Package scene composes the Christmas tree scene: the instanced tree, the star
// topper, lights, fog, backdrop, ground and camera orbit. A Scene produces one Frame
// per render tick as a pure function of elapsed time and the view controls.
package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/mesh"
	"github.com/iburimskiy/lumina/internal/view"
)

var (
	// GroupOffset lowers the tree, star and ground so the tree is centered in view.
	GroupOffset = geom.V(0, -3, 0)
	// GroundOffset is the disc position relative to the group.
	GroundOffset = geom.V(0, -0.5, 0)

	groundMaterial = Material{
		Color:      hex(config.GroundColor),
		Roughness:  0.1,
		Metalness:  0.8,
		ToneMapped: true,
	}
)

// Stage is one step of scene construction. The loader runs them one per tick.
type Stage struct {
	Name string
	Run  func() error
}

type Scene struct {
	cfg config.Config
	rng *rand.Rand

	Tree  *Tree
	Star  *Star
	Orbit *Orbit
	Stars []StarPoint

	ground    mesh.Mesh
	groundBuf [1]geom.Mat4
	group     geom.Mat4
	lights    []Light
	shadow    []geom.Vec3

	frame Frame
	ready bool
}

// New returns an unbuilt scene; run its Stages (or use Build) before asking for frames.
func New(cfg config.Config, rng *rand.Rand) *Scene {
	eye := geom.V(config.CameraStart[0], config.CameraStart[1], config.CameraStart[2])
	return &Scene{
		cfg:   cfg,
		rng:   rng,
		Orbit: NewOrbit(eye),
		group: geom.Translate(GroupOffset),
	}
}

// Build constructs a scene synchronously.
func Build(cfg config.Config, rng *rand.Rand) (*Scene, error) {
	s := New(cfg, rng)
	for _, st := range s.Stages() {
		if err := st.Run(); err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name, err)
		}
	}
	return s, nil
}

func (s *Scene) Stages() []Stage {
	return []Stage{
		{Name: "Growing needles", Run: s.generateParticles},
		{Name: "Cutting gems", Run: s.buildGeometry},
		{Name: "Lighting the sky", Run: s.generateStars},
		{Name: "Hanging lights", Run: s.placeLights},
	}
}

func (s *Scene) generateParticles() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	s.Tree = NewTree(s.cfg.Tree, s.rng)
	return nil
}

func (s *Scene) buildGeometry() error {
	if s.Tree == nil {
		return errors.New("geometry before particles")
	}
	s.Tree.BuildMeshes()
	s.Star = NewStar(s.cfg.Tree.Height)
	s.ground = mesh.Disc(8, 64)
	s.groundBuf[0] = s.group.Mul4(geom.Translate(GroundOffset))
	return nil
}

func (s *Scene) generateStars() error {
	s.Stars = Starfield(s.rng, config.StarCount, config.StarRadius, config.StarDepth)
	return nil
}

func (s *Scene) placeLights() error {
	if s.Star == nil {
		return errors.New("lights before geometry")
	}
	s.lights = append(staticLights(), s.Star.Light(s.group))
	base := geom.MulPoint(s.group, geom.Vec3{})
	s.shadow = ConeShadow(base, s.cfg.Tree.Height, s.cfg.Tree.Radius, KeyLightPosition, s.GroundY())
	s.ready = true
	return nil
}

func (s *Scene) Ready() bool {
	return s.ready
}

// GroundY is the world height of the ground disc.
func (s *Scene) GroundY() float64 {
	return GroupOffset.Y() + GroundOffset.Y()
}

// Frame describes the picture at elapsed time t. The returned frame is reused by the
// next call. It returns nil until the scene is built.
func (s *Scene) Frame(t float64, v view.State) *Frame {
	if !s.ready {
		return nil
	}
	f := &s.frame
	f.Time = t
	f.Background = hex(config.Background)
	f.Fog = Fog{Color: hex(config.Background), Near: config.FogNear, Far: config.FogFar}
	f.Camera = s.Orbit.Camera()
	f.Lights = s.lights
	f.Shadow = s.shadow
	f.GroundY = s.GroundY()
	f.Stars = s.Stars
	f.Post = defaultPost()

	f.Batches = append(f.Batches[:0], BatchFrame{
		Batch:     BatchGround,
		Mesh:      &s.ground,
		Material:  groundMaterial,
		Instances: s.groundBuf[:],
	})
	f.Batches = s.Tree.Instances(f.Batches, s.group, t, v)
	f.Batches = s.Star.Instances(f.Batches, s.group, t)
	return f
}
