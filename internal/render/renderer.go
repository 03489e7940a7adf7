// Package render draws scene frames with ebiten: a painter-ordered software
// triangle pass followed by bloom, vignette and grain overlays.
package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/lumina/internal/config"
	"github.com/iburimskiy/lumina/internal/scene"
)

const (
	maxBatchVertices = 65535 / 3 * 3
	bloomLevels      = 4
	grainSize        = 128
)

// Renderer owns the GPU-side images. Prepare must run for the current size before Draw.
type Renderer struct {
	Pipeline  Pipeline
	AntiAlias bool

	white    *ebiten.Image
	bloom    [bloomLevels + 1]*ebiten.Image
	vignette *ebiten.Image
	grain    *ebiten.Image

	bloomWeights []float64

	w, h  int
	verts []ebiten.Vertex
	idx   []uint16
	rng   *rand.Rand
}

func NewRenderer(rng *rand.Rand) *Renderer {
	return &Renderer{rng: rng}
}

// Prepared reports whether the overlays match the given size.
func (r *Renderer) Prepared(w, h int) bool {
	return r.white != nil && r.w == w && r.h == h
}

// Prepare (re)builds the size-dependent images.
func (r *Renderer) Prepare(w, h int) {
	if r.Prepared(w, h) || w <= 0 || h <= 0 {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	for i := range r.bloom {
		if r.bloom[i] != nil {
			r.bloom[i].Deallocate()
		}
		bw, bh := max(1, w>>i), max(1, h>>i)
		r.bloom[i] = ebiten.NewImage(bw, bh)
	}
	if r.vignette != nil {
		r.vignette.Deallocate()
	}
	r.vignette = ebiten.NewImageFromImage(VignetteMask(w, h, config.VignetteOffset, config.VignetteDark))
	if r.grain == nil {
		r.grain = ebiten.NewImageFromImage(GrainTile(r.rng, grainSize))
	}
	r.w, r.h = w, h
}

// ready prepares the overlays for a w×h target and reports whether drawing can go
// ahead. A zero-sized target (minimized window) never is.
func (r *Renderer) ready(w, h int) bool {
	r.Prepare(w, h)
	return r.Prepared(w, h)
}

// Draw renders f onto screen. A nil frame only clears to the background.
func (r *Renderer) Draw(screen *ebiten.Image, f *scene.Frame) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if !r.ready(w, h) {
		return
	}
	if f == nil {
		screen.Fill(color.Black)
		return
	}
	br, bg, bb := Display(f.Background, false)
	screen.Fill(color.RGBA{R: to8(br), G: to8(bg), B: to8(bb), A: 255})

	r.Pipeline.Build(f, w, h)
	r.drawStars(screen)
	r.drawTris(screen, false)
	r.drawBloom(f.Post.BloomIntensity, f.Post.BloomRadius)
	r.compositeBloom(screen)
	r.drawOverlays(screen, f.Post.NoiseOpacity)
}

func (r *Renderer) drawStars(screen *ebiten.Image) {
	r.verts, r.idx = r.verts[:0], r.idx[:0]
	for _, p := range r.Pipeline.Points {
		s := p.Size / 2
		r.quad(p.X-s, p.Y-s, p.X+s, p.Y+s, 1, 1, 1, p.Alpha*0.8)
		if len(r.verts) >= maxBatchVertices-4 {
			r.flush(screen, ebiten.BlendSourceOver)
		}
	}
	r.flush(screen, ebiten.BlendSourceOver)
}

func (r *Renderer) quad(x0, y0, x1, y1, cr, cg, cb, ca float32) {
	base := uint16(len(r.verts))
	for _, c := range [4][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: c[0], DstY: c[1], SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	r.idx = append(r.idx, base, base+1, base+2, base+1, base+3, base+2)
}

// drawTris pushes the painter-ordered triangles; glow=true writes bloom energy instead.
func (r *Renderer) drawTris(dst *ebiten.Image, glow bool) {
	r.verts, r.idx = r.verts[:0], r.idx[:0]
	for i := range r.Pipeline.Tris {
		t := &r.Pipeline.Tris[i]
		cr, cg, cb, ca := t.R, t.G, t.B, t.A
		if glow {
			if t.Glow.X() <= 0 && t.Glow.Y() <= 0 && t.Glow.Z() <= 0 {
				continue
			}
			cr, cg, cb, ca = clamp1(t.Glow.X()), clamp1(t.Glow.Y()), clamp1(t.Glow.Z()), 1
		}
		base := uint16(len(r.verts))
		for k := 0; k < 3; k++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: t.X[k], DstY: t.Y[k], SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		r.idx = append(r.idx, base, base+1, base+2)
		if len(r.verts) >= maxBatchVertices {
			r.flushTris(dst, glow)
		}
	}
	r.flushTris(dst, glow)
}

func (r *Renderer) flushTris(dst *ebiten.Image, glow bool) {
	if glow {
		r.flush(dst, ebiten.BlendLighter)
		return
	}
	r.flush(dst, ebiten.BlendSourceOver)
}

func (r *Renderer) flush(dst *ebiten.Image, blend ebiten.Blend) {
	if len(r.idx) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: r.AntiAlias, Blend: blend}
	dst.DrawTriangles(r.verts, r.idx, r.white, op)
	r.verts, r.idx = r.verts[:0], r.idx[:0]
}

// drawBloom renders glow energy and blurs it by successive linear halving.
func (r *Renderer) drawBloom(intensity, radius float64) {
	r.bloom[0].Clear()
	r.drawTris(r.bloom[0], true)

	for i := 1; i < len(r.bloom); i++ {
		r.bloom[i].Clear()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		sw := float64(r.bloom[i].Bounds().Dx()) / float64(r.bloom[i-1].Bounds().Dx())
		sh := float64(r.bloom[i].Bounds().Dy()) / float64(r.bloom[i-1].Bounds().Dy())
		op.GeoM.Scale(sw, sh)
		r.bloom[i].DrawImage(r.bloom[i-1], op)
	}
	r.bloomWeights = BloomWeights(intensity, radius, bloomLevels)
}

func (r *Renderer) compositeBloom(screen *ebiten.Image) {
	for i := 1; i < len(r.bloom); i++ {
		wgt := float32(r.bloomWeights[i-1])
		if wgt <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear, Blend: ebiten.BlendLighter}
		op.GeoM.Scale(float64(r.w)/float64(r.bloom[i].Bounds().Dx()), float64(r.h)/float64(r.bloom[i].Bounds().Dy()))
		op.ColorScale.Scale(wgt, wgt, wgt, 1)
		screen.DrawImage(r.bloom[i], op)
	}
}

func (r *Renderer) drawOverlays(screen *ebiten.Image, noise float64) {
	screen.DrawImage(r.vignette, nil)

	ox, oy := r.rng.Intn(grainSize), r.rng.Intn(grainSize)
	for y := -oy; y < r.h; y += grainSize {
		for x := -ox; x < r.w; x += grainSize {
			op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
			op.GeoM.Translate(float64(x), float64(y))
			op.ColorScale.ScaleAlpha(float32(noise))
			screen.DrawImage(r.grain, op)
		}
	}
}

// BloomWeights spreads intensity over the blur levels, narrowest first. A larger
// radius moves weight toward the wide levels.
func BloomWeights(intensity, radius float64, levels int) []float64 {
	out := make([]float64, levels)
	var sum float64
	for i := range out {
		out[i] = math.Pow(radius, float64(i))
		sum += out[i]
	}
	for i := range out {
		out[i] = out[i] / sum * intensity
	}
	return out
}

func clamp1(v float64) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return float32(v)
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
