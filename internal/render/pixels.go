package render

import (
	"image"

	"simplevo/internal/core"
)

// fillRGBA expands packed RGB pixels into opaque RGBA pixels in buf.
func fillRGBA(buf []byte, rgb []byte) {
	n := min(len(rgb)/BytesPerPixel, len(buf)/4)
	for i := 0; i < n; i++ {
		base := i * 4
		src := i * BytesPerPixel
		buf[base+0] = rgb[src+0]
		buf[base+1] = rgb[src+1]
		buf[base+2] = rgb[src+2]
		buf[base+3] = 0xff
	}
}

// clearRGBA fills buf with opaque black, the look of a blanked output.
func clearRGBA(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = 0
		buf[i+1] = 0
		buf[i+2] = 0
		buf[i+3] = 0xff
	}
}

// FrameImage converts a published frame into an RGBA image. Blank frames
// become black images of the frame size.
func FrameImage(f core.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Size.W, f.Size.H))
	CopyFrame(img.Pix, f)
	return img
}

// CopyFrame writes the frame into an RGBA buffer of f.Size.
func CopyFrame(buf []byte, f core.Frame) {
	if f.Blank || len(f.Pix) == 0 {
		clearRGBA(buf)
		return
	}
	fillRGBA(buf, f.Pix)
}

// Stage holds one frame as RGBA pixels and follows the size of the frames
// loaded into it.
type Stage struct {
	size core.Size
	Pix  []byte
}

// NewStage returns a black stage of the given size.
func NewStage(size core.Size) *Stage {
	s := &Stage{}
	s.resize(size)
	return s
}

// Size returns the size of the staged frame.
func (s *Stage) Size() core.Size { return s.size }

// Load copies f into the stage and reports whether the stage was resized.
func (s *Stage) Load(f core.Frame) bool {
	resized := f.Size != s.size
	if resized {
		s.resize(f.Size)
	}
	CopyFrame(s.Pix, f)
	return resized
}

func (s *Stage) resize(size core.Size) {
	s.size = size
	s.Pix = make([]byte, 4*max(size.W, 0)*max(size.H, 0))
	clearRGBA(s.Pix)
}

