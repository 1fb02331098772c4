package fire

import "image/color"

// Palette maps heat values to colors.
type Palette [256]color.RGBA

var firePalette = BuildPalette()

// DefaultPalette returns the shared fire ramp. The table is built once and
// must not be modified.
func DefaultPalette() *Palette {
	return &firePalette
}

// BuildPalette generates the black, red, yellow, white, pale ramp in five
// contiguous bands.
func BuildPalette() Palette {
	var p Palette
	for i := range p {
		switch {
		case i < 16:
			p[i] = rgb(i, 0, 0)
		case i < 64:
			p[i] = rgb(4*(i-16+4), 0, 0)
		case i < 128:
			p[i] = rgb(255, 4*(i-64), 0)
		case i < 192:
			p[i] = rgb(255, 255, 4*(i-128))
		default:
			d := i - 192
			p[i] = rgb(255-3*d, 255-2*d, 255-2*d)
		}
	}
	return p
}

// RGB returns the channels for heat value v.
func (p *Palette) RGB(v uint8) (r, g, b uint8) {
	c := p[v]
	return c.R, c.G, c.B
}

func rgb(r, g, b int) color.RGBA {
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
