package fire

import (
	"image/color"
	"testing"
)

func TestPaletteBands(t *testing.T) {
	p := BuildPalette()
	for i := 0; i < 16; i++ {
		if p[i] != (color.RGBA{R: uint8(i), A: 255}) {
			t.Fatalf("palette[%d] = %v", i, p[i])
		}
	}
	for i := 192; i < 256; i++ {
		if p[i].G != p[i].B {
			t.Fatalf("palette[%d] = %v, green and blue differ", i, p[i])
		}
	}

	cases := map[int]color.RGBA{
		16:  {R: 16, A: 255},
		63:  {R: 204, A: 255},
		64:  {R: 255, A: 255},
		127: {R: 255, G: 252, A: 255},
		128: {R: 255, G: 255, A: 255},
		191: {R: 255, G: 255, B: 252, A: 255},
		192: {R: 255, G: 255, B: 255, A: 255},
		255: {R: 66, G: 129, B: 129, A: 255},
	}
	for i, want := range cases {
		if p[i] != want {
			t.Fatalf("palette[%d] = %v, want %v", i, p[i], want)
		}
	}
}

func TestDefaultPaletteShared(t *testing.T) {
	if DefaultPalette() != DefaultPalette() {
		t.Fatal("DefaultPalette should return the same table")
	}
	if *DefaultPalette() != BuildPalette() {
		t.Fatal("DefaultPalette differs from BuildPalette")
	}
	r, g, b := DefaultPalette().RGB(100)
	if r != 255 || g != 144 || b != 0 {
		t.Fatalf("RGB(100) = %d,%d,%d", r, g, b)
	}
}
