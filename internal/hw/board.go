package hw

import (
	"fmt"
	"log"

	"simplevo/internal/core"
)

// Memory is a DMA-visible buffer the board can scan out.
type Memory interface {
	BusAddr() uint32
	Screen() core.Size
	Bytes() []byte
}

// Board emulates the display side of the reference board: the control block
// registers, a DMA engine that scans out whichever mapped buffer the base
// register names, and the teletype link.
type Board struct {
	geometry uint32
	screen   core.Size
	base     uint32
	regions  map[uint32]Memory
	tty      *Teletype
	scanout  func(core.Frame)

	flushes    uint64
	warnedBase uint32
}

// NewBoard creates a board reporting the given screen geometry.
func NewBoard(screen core.Size, tty *Teletype) *Board {
	if tty == nil {
		tty = NewTeletype(nil, 1)
	}
	return &Board{
		geometry: PackGeometry(screen),
		screen:   UnpackGeometry(PackGeometry(screen)),
		regions:  map[uint32]Memory{},
		tty:      tty,
	}
}

// Map makes a buffer reachable at its bus address. The buffer's screen,
// which may be clamped below the geometry register, becomes the size of
// blank frames.
func (b *Board) Map(m Memory) {
	b.regions[m.BusAddr()] = m
	b.screen = m.Screen()
}

// Screen reports the size of scanned-out frames.
func (b *Board) Screen() core.Size { return b.screen }

// SetScanout installs the sink that receives a frame on every flush.
func (b *Board) SetScanout(fn func(core.Frame)) {
	b.scanout = fn
}

// Teletype returns the host terminal attached to the board.
func (b *Board) Teletype() *Teletype { return b.tty }

// Read32 implements Registers.
func (b *Board) Read32(off uint32) uint32 {
	switch off {
	case RegFrameBase:
		return b.base
	case RegGeometry:
		return b.geometry
	}
	return 0
}

// Write32 implements Registers. Writes to read-only or unknown offsets are
// ignored.
func (b *Board) Write32(off uint32, v uint32) {
	switch off {
	case RegFrameBase:
		b.base = v
	case RegTeletype:
		if err := b.tty.WriteByte(byte(v)); err != nil {
			log.Printf("hw: teletype: %v", err)
		}
	}
}

// Flush implements Flusher. Once CPU writes are visible the DMA engine
// presents the current frame.
func (b *Board) Flush() {
	b.flushes++
	if b.scanout == nil {
		return
	}
	b.scanout(b.frame())
}

// Flushes counts cache flushes since the board was created.
func (b *Board) Flushes() uint64 { return b.flushes }

// Blanked reports whether scanout is disabled.
func (b *Board) Blanked() bool { return b.base == 0 }

func (b *Board) frame() core.Frame {
	f := core.Frame{Seq: b.flushes, Size: b.screen, Blank: true}
	if b.base == 0 {
		return f
	}
	m, ok := b.regions[b.base]
	if !ok {
		if b.warnedBase != b.base {
			log.Printf("hw: %v", fmt.Errorf("%w: 0x%08x", ErrUnmapped, b.base))
			b.warnedBase = b.base
		}
		return f
	}
	f.Size = m.Screen()
	f.Pix = m.Bytes()
	f.Blank = false
	return f
}
