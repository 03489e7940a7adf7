// Package term draws scene frames into a terminal with half-block cells, two pixels
// per character.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/lumina/internal/render"
)

// how much bloom energy bleeds into a cell
const glowBleed = 0.35

type Canvas struct {
	W, H int
	Pix  []color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.W, c.H = w, h
	if cap(c.Pix) >= w*h {
		c.Pix = c.Pix[:w*h]
		return
	}
	c.Pix = make([]color.RGBA, w*h)
}

func (c *Canvas) Clear(bg color.RGBA) {
	for i := range c.Pix {
		c.Pix[i] = bg
	}
}

func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return color.RGBA{}
	}
	return c.Pix[y*c.W+x]
}

// Paint draws the pipeline output in its painter order: stars first, then triangles.
func (c *Canvas) Paint(pl *render.Pipeline) {
	for _, p := range pl.Points {
		x, y := int(p.X), int(p.Y)
		a := float64(p.Alpha) * 0.8
		c.blend(x, y, 1, 1, 1, a)
	}
	for i := range pl.Tris {
		c.fillTri(&pl.Tris[i])
	}
}

func (c *Canvas) blend(x, y int, r, g, b, a float64) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H || a <= 0 {
		return
	}
	d := &c.Pix[y*c.W+x]
	mix := func(dst uint8, src float64) uint8 {
		v := src*255*a + float64(dst)*(1-a)
		return uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	d.R, d.G, d.B, d.A = mix(d.R, r), mix(d.G, g), mix(d.B, b), 255
}

// fillTri samples pixel centers against the triangle's edge functions.
func (c *Canvas) fillTri(t *render.Tri) {
	x0, y0 := float64(t.X[0]), float64(t.Y[0])
	x1, y1 := float64(t.X[1]), float64(t.Y[1])
	x2, y2 := float64(t.X[2]), float64(t.Y[2])
	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area == 0 {
		return
	}

	minX := max(0, int(math.Floor(min(x0, x1, x2))))
	maxX := min(c.W-1, int(math.Ceil(max(x0, x1, x2))))
	minY := max(0, int(math.Floor(min(y0, y1, y2))))
	maxY := min(c.H-1, int(math.Ceil(max(y0, y1, y2))))

	r := math.Min(1, float64(t.R)+glowBleed*t.Glow.X())
	g := math.Min(1, float64(t.G)+glowBleed*t.Glow.Y())
	b := math.Min(1, float64(t.B)+glowBleed*t.Glow.Z())

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := (x1-px)*(y2-py) - (x2-px)*(y1-py)
			w1 := (x2-px)*(y0-py) - (x0-px)*(y2-py)
			w2 := (x0-px)*(y1-py) - (x1-px)*(y0-py)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c.blend(x, y, r, g, b, float64(t.A))
		}
	}
}

// Blit writes the canvas to s starting at row top, pairing pixel rows per cell.
func (c *Canvas) Blit(s tcell.Screen, top int) {
	for row := 0; row*2 < c.H; row++ {
		for x := 0; x < c.W; x++ {
			up, down := c.At(x, row*2), c.At(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(up.R), int32(up.G), int32(up.B))).
				Background(tcell.NewRGBColor(int32(down.R), int32(down.G), int32(down.B)))
			s.SetContent(x, top+row, '▀', nil, style)
		}
	}
}
