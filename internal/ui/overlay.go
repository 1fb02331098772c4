//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight    = 14
	panelPadding  = 6
	consoleLines  = 8
	glyphWidth    = 7
	glyphAscent   = 11
	panelMaxChars = 48
)

// Overlay draws the host terminal console and the parameter panel on top of
// the frame. T toggles the console, P the panel.
type Overlay struct {
	lines  func() []string
	params func() []string

	showConsole bool
	showParams  bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay. Either source may be nil.
func NewOverlay(lines, params func() []string) *Overlay {
	o := &Overlay{lines: lines, params: params, showConsole: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showConsole = !o.showConsole
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.showParams = !o.showParams
	}
}

// Draw renders the enabled panels.
func (o *Overlay) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	if o.showConsole && o.lines != nil {
		lines := tail(o.lines(), consoleLines)
		h := len(lines)*lineHeight + 2*panelPadding
		o.drawPanel(screen, 0, bounds.Dy()-h, bounds.Dx(), h, lines, color.RGBA{R: 180, G: 255, B: 180, A: 255})
	}
	if o.showParams && o.params != nil {
		lines := o.params()
		w := 0
		for _, l := range lines {
			w = max(w, min(len(l), panelMaxChars))
		}
		w = w*glyphWidth + 2*panelPadding
		h := len(lines)*lineHeight + 2*panelPadding
		o.drawPanel(screen, bounds.Dx()-w, 0, w, h, lines, color.White)
	}
}

func (o *Overlay) drawPanel(screen *ebiten.Image, x, y, w, h int, lines []string, fg color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorM.Scale(16.0/255.0, 16.0/255.0, 20.0/255.0, 0.75)
	screen.DrawImage(o.pixel, op)

	for i, l := range lines {
		if len(l) > panelMaxChars && x > 0 {
			l = l[:panelMaxChars]
		}
		text.Draw(screen, l, basicfont.Face7x13, x+panelPadding, y+panelPadding+glyphAscent+i*lineHeight, fg)
	}
}

func tail(lines []string, n int) []string {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}
