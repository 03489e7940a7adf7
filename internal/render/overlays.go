package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// VignetteMask is a black overlay whose alpha darkens the corners. It follows the
// non-eskil vignette: brightness = smoothstep(0.8, offset*0.799, d*(darkness+offset)).
func VignetteMask(w, h int, offset, darkness float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := (float64(x)+0.5)/float64(w) - 0.5
			v := (float64(y)+0.5)/float64(h) - 0.5
			d := math.Hypot(u, v)
			keep := smoothstep(0.8, offset*0.799, d*(darkness+offset))
			a := uint8(math.Round((1 - keep) * 255))
			img.SetRGBA(x, y, color.RGBA{A: a})
		}
	}
	return img
}

// GrainTile is a square of opaque gray noise, tiled over the frame at low opacity.
func GrainTile(rng *rand.Rand, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(rng.Intn(256))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}
