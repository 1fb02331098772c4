package render

import (
	"image/color"
	"unsafe"

	"simplevo/internal/core"
)

const (
	// BytesPerPixel is the packed RGB pixel size.
	BytesPerPixel = 3
	// FrameAlign is the DMA alignment of the first pixel.
	FrameAlign = 4096
	// DefaultBusAddr is the bus address given to framebuffers by default.
	DefaultBusAddr = 0x10000000
)

// Framebuffer is a packed RGB buffer allocated at full capacity. Only the
// configured screen is written; rows are Screen().W*3 bytes apart.
type Framebuffer struct {
	capacity core.Size
	screen   core.Size
	busAddr  uint32
	pix      []byte
}

// NewFramebuffer allocates an aligned buffer for capacity pixels.
func NewFramebuffer(capacity core.Size, busAddr uint32) *Framebuffer {
	n := max(capacity.W, 1) * max(capacity.H, 1) * BytesPerPixel
	return &Framebuffer{
		capacity: capacity,
		busAddr:  busAddr,
		pix:      alignedBytes(n, FrameAlign),
	}
}

// alignedBytes returns n bytes whose first element sits on an align boundary.
// The Go heap does not move objects, so the alignment holds for the slice's
// lifetime.
func alignedBytes(n, align int) []byte {
	raw := make([]byte, n+align)
	off := int(uintptr(unsafe.Pointer(&raw[0])) & uintptr(align-1))
	if off != 0 {
		off = align - off
	}
	return raw[off : off+n : off+n]
}

// Configure selects the screen area. The size must fit the capacity.
func (f *Framebuffer) Configure(screen core.Size) error {
	if screen.W <= 0 || screen.H <= 0 || screen.W > f.capacity.W || screen.H > f.capacity.H {
		return &core.GeometryError{Requested: screen, Limit: f.capacity}
	}
	f.screen = screen
	return nil
}

// Capacity reports the allocated size in pixels.
func (f *Framebuffer) Capacity() core.Size { return f.capacity }

// Screen reports the configured screen size.
func (f *Framebuffer) Screen() core.Size { return f.screen }

// Pitch is the byte distance between rows.
func (f *Framebuffer) Pitch() int { return f.screen.W * BytesPerPixel }

// BusAddr is the address the control block uses to reach this buffer.
func (f *Framebuffer) BusAddr() uint32 { return f.busAddr }

// Bytes exposes the screen area as packed RGB rows.
func (f *Framebuffer) Bytes() []byte {
	return f.pix[:f.screen.W*f.screen.H*BytesPerPixel]
}

// Aligned reports whether the first pixel honours FrameAlign.
func (f *Framebuffer) Aligned() bool {
	return uintptr(unsafe.Pointer(&f.pix[0]))%FrameAlign == 0
}

// At returns the pixel at (x, y) of the screen area.
func (f *Framebuffer) At(x, y int) color.RGBA {
	o := y*f.Pitch() + x*BytesPerPixel
	return color.RGBA{R: f.pix[o], G: f.pix[o+1], B: f.pix[o+2], A: 255}
}
