package core

import (
	"context"
	"log"
	"sort"
)

// Size describes the dimensions of a screen or grid.
type Size struct {
	W int
	H int
}

// SourceRows is the number of flame-source rows kept below the visible part
// of the heat grid. They are simulated but never displayed.
const SourceRows = 5

// Capacity bounds the statically sized buffers behind an engine.
type Capacity struct {
	Frame Size // framebuffer pixels
	Grid  Size // heat grid cells
}

// DefaultCapacity matches the buffers of the reference board.
func DefaultCapacity() Capacity {
	return Capacity{
		Frame: Size{W: 4096, H: 4096},
		Grid:  Size{W: 2048, H: 2048},
	}
}

// MaxScreen returns the largest screen both buffers can hold.
func (c Capacity) MaxScreen() Size {
	max := c.Frame
	if gw := c.Grid.W * 2; gw < max.W {
		max.W = gw
	}
	if gh := (c.Grid.H - SourceRows) * 2; gh < max.H {
		max.H = gh
	}
	if max.W < 0 {
		max.W = 0
	}
	if max.H < 0 {
		max.H = 0
	}
	return max
}

// ClampGeometry fits a reported screen size into the capacity. Sizes that are
// too small to simulate are rejected; oversized ones are clamped and logged.
func ClampGeometry(screen Size, c Capacity) (Size, error) {
	if screen.W < 2 || screen.H < 2 {
		return Size{}, &GeometryError{Requested: screen, Limit: c.MaxScreen()}
	}
	max := c.MaxScreen()
	if max.W < 2 || max.H < 2 {
		return Size{}, &GeometryError{Requested: screen, Limit: max}
	}
	clamped := screen
	if clamped.W > max.W {
		clamped.W = max.W
	}
	if clamped.H > max.H {
		clamped.H = max.H
	}
	if clamped != screen {
		log.Printf("core: geometry %dx%d exceeds capacity, clamped to %dx%d",
			screen.W, screen.H, clamped.W, clamped.H)
	}
	return clamped, nil
}

// Frame is one published picture as seen by the display side of the DMA.
// Pix holds packed RGB rows of Size.W*3 bytes. A blank frame has no pixels.
type Frame struct {
	Seq   uint64
	Size  Size
	Pix   []byte
	Blank bool
}

// Display consumes frames published by the board.
type Display interface {
	Name() string
	// Present receives a frame after every cache flush. It must not retain
	// the frame's pixels past the next call unless it copies them.
	Present(f Frame)
	// Serve runs work while the display is live and returns when work
	// returns or the display is closed by the user.
	Serve(ctx context.Context, work func(context.Context) error) error
}

// DisplayOptions carries the settings a display factory may use.
type DisplayOptions struct {
	Title  string
	Screen Size
	Scale  int
	// LogEvery makes displays that cannot show pictures log every n-th
	// frame; 0 keeps them quiet.
	LogEvery int
	// Lines returns the host terminal text for on-screen consoles.
	Lines func() []string
	// Params returns parameter rows for on-screen panels.
	Params func() []string
}

// DisplayFactory constructs a Display.
type DisplayFactory func(opts DisplayOptions) (Display, error)

var displays = map[string]DisplayFactory{}

// RegisterDisplay adds a display factory under the provided name.
func RegisterDisplay(name string, f DisplayFactory) {
	if name == "" || f == nil {
		return
	}
	displays[name] = f
}

// DisplayNames lists the registered displays in sorted order.
func DisplayNames() []string {
	names := make([]string, 0, len(displays))
	for name := range displays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDisplay looks up and constructs the named display.
func NewDisplay(name string, opts DisplayOptions) (Display, error) {
	f, ok := displays[name]
	if !ok {
		return nil, &UnknownDisplayError{Name: name, Known: DisplayNames()}
	}
	return f(opts)
}
