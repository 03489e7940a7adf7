package scene

import (
	"math"

	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/geom"
)

const (
	// one full turn every 60s at speed 1
	autoRotateUnit = 2 * math.Pi / 60
	dollyStep      = 0.95
)

// Orbit is a camera circling a fixed target. Pan is not supported.
type Orbit struct {
	Target   geom.Vec3
	Azimuth  float64
	Polar    float64
	Distance float64

	MinPolar, MaxPolar       float64
	MinDistance, MaxDistance float64
}

// NewOrbit starts the camera at eye, looking at the origin.
func NewOrbit(eye geom.Vec3) *Orbit {
	o := &Orbit{
		MinPolar:    config.OrbitMinPolar,
		MaxPolar:    config.OrbitMaxPolar,
		MinDistance: config.OrbitMinDistance,
		MaxDistance: config.OrbitMaxDistance,
	}
	d := eye.Sub(o.Target)
	o.Distance = d.Len()
	o.Azimuth = math.Atan2(d.X(), d.Z())
	if o.Distance > 0 {
		o.Polar = math.Acos(config.Clamp(d.Y()/o.Distance, -1, 1))
	}
	o.clamp()
	return o
}

// AutoRotateRate is the idle azimuth rate in rad/s for a rotation speed control value.
func AutoRotateRate(speed float64) float64 {
	return autoRotateUnit * config.Clamp(speed, config.RotationSpeedMin, config.RotationSpeedMax)
}

// AutoRotate advances the idle rotation by dt seconds. Speed 0 leaves the camera still.
func (o *Orbit) AutoRotate(dt, speed float64) {
	o.Azimuth -= AutoRotateRate(speed) * dt
	o.Azimuth = math.Mod(o.Azimuth, 2*math.Pi)
}

// Drag rotates by a pointer delta in pixels over a viewport of the given height.
func (o *Orbit) Drag(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	o.Azimuth -= 2 * math.Pi * dx / viewportHeight
	o.Polar -= 2 * math.Pi * dy / viewportHeight
	o.clamp()
}

// Zoom dollies in for positive steps (wheel up) and out for negative ones.
func (o *Orbit) Zoom(steps float64) {
	o.Distance *= math.Pow(dollyStep, steps)
	o.clamp()
}

func (o *Orbit) clamp() {
	o.Polar = config.Clamp(o.Polar, o.MinPolar, o.MaxPolar)
	o.Distance = config.Clamp(o.Distance, o.MinDistance, o.MaxDistance)
}

func (o *Orbit) Eye() geom.Vec3 {
	sp, cp := math.Sincos(o.Polar)
	sa, ca := math.Sincos(o.Azimuth)
	return o.Target.Add(geom.V(o.Distance*sp*sa, o.Distance*cp, o.Distance*sp*ca))
}

func (o *Orbit) Camera() Camera {
	return Camera{
		Eye:    o.Eye(),
		Target: o.Target,
		FOV:    config.CameraFOVDegrees * math.Pi / 180,
		Near:   config.CameraNear,
		Far:    config.CameraFar,
	}
}
