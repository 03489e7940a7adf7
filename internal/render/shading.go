package render

import (
	"math"

	"github.com/iburimskiy/lumina/internal/geom"
	"github.com/iburimskiy/lumina/internal/scene"
	"github.com/lucasb-eyer/go-colorful"
)

// dielectric specular reflectance at normal incidence
const baseReflectance = 0.04

// Shade lights a surface point and returns linear HDR radiance.
func Shade(m scene.Material, p, n, eye geom.Vec3, lights []scene.Light) geom.Vec3 {
	if m.Unlit {
		return m.Color
	}

	v := geom.Unit(eye.Sub(p))
	diffuse := m.Color.Mul(1 - m.Metalness)
	f0 := lerp(geom.V(baseReflectance, baseReflectance, baseReflectance), m.Color, m.Metalness)
	shininess := math.Max(1, (1-m.Roughness)*(1-m.Roughness)*256)
	norm := (shininess + 8) / (8 * math.Pi)

	out := geom.Hadamard(f0, scene.EnvironmentLevel).Mul(1 - 0.5*m.Roughness)
	for _, l := range lights {
		radiance := l.Color.Mul(l.Intensity)
		if l.Kind == scene.LightAmbient {
			out = out.Add(geom.Hadamard(diffuse, radiance))
			continue
		}

		var dir geom.Vec3
		switch l.Kind {
		case scene.LightDirectional:
			dir = geom.Unit(l.Position)
		case scene.LightPoint:
			d := l.Position.Sub(p)
			radiance = radiance.Mul(Attenuation(d.Len(), l.Distance, l.Decay))
			dir = geom.Unit(d)
		}

		ndotl := n.Dot(dir)
		if ndotl <= 0 {
			continue
		}
		h := geom.Unit(dir.Add(v))
		spec := math.Pow(math.Max(n.Dot(h), 0), shininess) * norm

		out = out.Add(geom.Hadamard(diffuse, radiance).Mul(ndotl))
		out = out.Add(geom.Hadamard(f0, radiance).Mul(spec * ndotl))
	}

	return out.Add(m.Emissive.Mul(m.EmissiveIntensity))
}

// Attenuation is inverse-power falloff with a smooth cutoff at distance (0 = unbounded).
func Attenuation(d, distance, decay float64) float64 {
	a := 1 / math.Max(math.Pow(d, decay), 0.01)
	if distance > 0 {
		w := 1 - math.Pow(d/distance, 4)
		if w <= 0 {
			return 0
		}
		a *= w * w
	}
	return a
}

// Fogged blends c toward the fog color by view depth.
func Fogged(c geom.Vec3, fog scene.Fog, depth float64) geom.Vec3 {
	f := smoothstep(fog.Near, fog.Far, depth)
	return lerp(c, fog.Color, f)
}

// Luminance uses Rec. 709 weights.
func Luminance(c geom.Vec3) float64 {
	return 0.2126*c.X() + 0.7152*c.Y() + 0.0722*c.Z()
}

// Glow is the part of c above the bloom threshold.
func Glow(c geom.Vec3, threshold float64) geom.Vec3 {
	l := Luminance(c)
	if l <= threshold || l <= 0 {
		return geom.Vec3{}
	}
	return c.Mul((l - threshold) / l)
}

// ACES is the Narkowicz fit of the ACES filmic curve.
func ACES(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Min(1, (x*(2.51*x+0.03))/(x*(2.43*x+0.59)+0.14))
}

// Display converts linear HDR to displayable sRGB components in [0,1].
func Display(c geom.Vec3, toneMapped bool) (r, g, b float64) {
	if toneMapped {
		c = geom.V(ACES(c.X()), ACES(c.Y()), ACES(c.Z()))
	}
	s := colorful.LinearRgb(c.Elem()).Clamped()
	return s.R, s.G, s.B
}

func lerp(a, b geom.Vec3, t float64) geom.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func smoothstep(e0, e1, x float64) float64 {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
