package render

import (
	"image/color"

	"simplevo/internal/core"
	"simplevo/internal/hw"
	"simplevo/internal/sims/fire"
)

// Compositor turns the heat grid into screen pixels and publishes them.
type Compositor struct {
	Palette *fire.Palette
	Flusher hw.Flusher
}

// NewCompositor returns a compositor using the default fire palette.
func NewCompositor(flusher hw.Flusher) *Compositor {
	return &Compositor{Palette: fire.DefaultPalette(), Flusher: flusher}
}

// Composite draws the simulation into fb and flushes it to the display.
func (c *Compositor) Composite(fb *Framebuffer, sim *fire.Sim) {
	Compose(fb, sim.Grid(), sim.VisibleRows(), c.Palette)
	if c.Flusher != nil {
		c.Flusher.Flush()
	}
}

// Compose upsamples the first visible grid rows into fb. Each cell becomes a
// 2x2 block: the cell itself, its average with the right neighbour, with the
// cell below, and with all three. The right neighbour of the last column
// wraps to column 0.
func Compose(fb *Framebuffer, g *core.HeatGrid, visible int, pal *fire.Palette) {
	w := g.W
	if w == 0 {
		return
	}
	rows := min(visible, g.H-1, fb.screen.H/2)
	cols := min(w, fb.screen.W/2)
	pitch := fb.Pitch()
	pix := fb.pix
	for r := 0; r < rows; r++ {
		cur := g.Row(r)
		down := g.Row(r + 1)
		top := 2 * r * pitch
		bottom := top + pitch
		for c := 0; c < cols; c++ {
			right := c + 1
			if right == w {
				right = 0
			}
			v1, v2 := int(cur[c]), int(cur[right])
			v3, v4 := int(down[c]), int(down[right])

			o := top + 2*c*BytesPerPixel
			put(pix[o:], pal[v1])
			put(pix[o+BytesPerPixel:], pal[(v1+v2)/2])
			o = bottom + 2*c*BytesPerPixel
			put(pix[o:], pal[(v1+v3)/2])
			put(pix[o+BytesPerPixel:], pal[(v1+v2+v3+v4)/4])
		}
	}
}

func put(dst []byte, c color.RGBA) {
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
}
