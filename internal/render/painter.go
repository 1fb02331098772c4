//go:build ebiten

package render

import (
	"simplevo/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramePainter keeps an ebiten image in sync with published frames.
type FramePainter struct {
	stage *Stage
	img   *ebiten.Image
}

// NewFramePainter allocates a painter for a w*h screen.
func NewFramePainter(w, h int) *FramePainter {
	return &FramePainter{
		stage: NewStage(core.Size{W: w, H: h}),
		img:   ebiten.NewImage(w, h),
	}
}

// Upload copies a frame's pixels into the painter's staging buffer. A frame
// of a different size replaces the image.
func (fp *FramePainter) Upload(f core.Frame) {
	if !fp.stage.Load(f) {
		return
	}
	if fp.img != nil {
		fp.img.Dispose()
		fp.img = nil
	}
	if size := fp.stage.Size(); size.W > 0 && size.H > 0 {
		fp.img = ebiten.NewImage(size.W, size.H)
	}
}

// Blit pushes the staged pixels to the GPU and draws them scaled onto dst.
func (fp *FramePainter) Blit(dst *ebiten.Image, scale int) {
	if fp.img == nil {
		return
	}
	fp.img.WritePixels(fp.stage.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}
