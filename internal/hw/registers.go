// Package hw models the video output control block: a handful of 32-bit
// registers at fixed offsets from the block's base address.
//
//	Offset  Dir  Register
//	------  ---  --------------------------------------------------------
//	0x00    W    framebuffer bus address for DMA scanout, 0 blanks output
//	0x08    R    screen geometry, height in bits 31:16, width in bits 15:0
//	0x0C    W    teletype byte to the host terminal
package hw

import (
	"errors"

	"simplevo/internal/core"
)

const (
	RegFrameBase = 0x00
	RegGeometry  = 0x08
	RegTeletype  = 0x0C
)

// TerminalReset is the teletype byte that resets the host terminal.
const TerminalReset = 0x04

var ErrUnmapped = errors.New("frame base not mapped")

// Registers is the raw register access capability. Offsets are relative to
// the control block base.
type Registers interface {
	Read32(off uint32) uint32
	Write32(off uint32, v uint32)
}

// Flusher publishes CPU writes to memory so DMA readers see them.
type Flusher interface {
	Flush()
}

// PackGeometry encodes a screen size as the geometry register does.
func PackGeometry(s core.Size) uint32 {
	return uint32(s.H&0xffff)<<16 | uint32(s.W&0xffff)
}

// UnpackGeometry decodes the geometry register.
func UnpackGeometry(v uint32) core.Size {
	return core.Size{W: int(v & 0xffff), H: int(v >> 16 & 0xffff)}
}

// ControlBlock gives typed access to the registers.
type ControlBlock struct {
	regs Registers
}

// NewControlBlock wraps raw register access.
func NewControlBlock(regs Registers) *ControlBlock {
	return &ControlBlock{regs: regs}
}

// Geometry reads the screen size reported by the display hardware.
func (c *ControlBlock) Geometry() core.Size {
	return UnpackGeometry(c.regs.Read32(RegGeometry))
}

// SetFrameBase points scanout at a framebuffer bus address.
func (c *ControlBlock) SetFrameBase(addr uint32) {
	c.regs.Write32(RegFrameBase, addr)
}

// Blank disables display output.
func (c *ControlBlock) Blank() {
	c.regs.Write32(RegFrameBase, 0)
}

// PutByte streams one byte to the host terminal.
func (c *ControlBlock) PutByte(b byte) {
	c.regs.Write32(RegTeletype, uint32(b))
}

// PutString streams s one byte at a time.
func (c *ControlBlock) PutString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutByte(s[i])
	}
}
