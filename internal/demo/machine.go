// Package demo boots the fire engine the way the board firmware does and
// runs scripted demo sequences against it.
package demo

import (
	"context"
	"time"

	"simplevo/internal/core"
	"simplevo/internal/engine"
	"simplevo/internal/hw"
)

// DefaultStartupDelay is the settle time before the first frame.
const DefaultStartupDelay = 100 * time.Millisecond

// Options controls Boot.
type Options struct {
	// Engine supplies seed, capacity and bus address. The screen size is
	// always taken from the geometry register.
	Engine       engine.Config
	StartupDelay time.Duration
	TPS          int
}

// DefaultOptions returns the reference firmware settings.
func DefaultOptions() Options {
	return Options{Engine: engine.DefaultConfig(), StartupDelay: DefaultStartupDelay}
}

// mapper is implemented by platforms that must be told where buffers live.
type mapper interface {
	Map(m hw.Memory)
}

// Machine is a booted engine together with its control block.
type Machine struct {
	ctl    *hw.ControlBlock
	engine *engine.Engine
	driver *engine.Driver
	frames int
}

// Boot reads the screen geometry, builds the engine, waits out the startup
// delay, draws the first frame and points scanout at the framebuffer.
func Boot(ctx context.Context, regs hw.Registers, flusher hw.Flusher, opts Options) (*Machine, error) {
	ctl := hw.NewControlBlock(regs)
	screen := ctl.Geometry()

	cfg := opts.Engine
	cfg.Fire.Width, cfg.Fire.Height = screen.W, screen.H
	eng, err := engine.New(cfg, flusher)
	if err != nil {
		return nil, err
	}
	if m, ok := regs.(mapper); ok {
		m.Map(eng.Framebuffer())
	}

	if opts.StartupDelay > 0 {
		t := time.NewTimer(opts.StartupDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	eng.Composite()
	ctl.SetFrameBase(eng.Framebuffer().BusAddr())

	drv := engine.NewDriver(eng)
	if opts.TPS > 0 {
		drv.SetPacer(core.NewFramePacer(opts.TPS))
	}
	return &Machine{ctl: ctl, engine: eng, driver: drv}, nil
}

// PrintTerm streams s to the host terminal.
func (m *Machine) PrintTerm(s string) { m.ctl.PutString(s) }

// PutByte streams one byte to the host terminal.
func (m *Machine) PutByte(b byte) { m.ctl.PutByte(b) }

// DrawFrames runs n ticks; a negative n runs until ctx is cancelled.
func (m *Machine) DrawFrames(ctx context.Context, n int) error {
	done, err := m.driver.Run(ctx, engine.ModeFor(n))
	m.frames += done
	return err
}

// Blank turns display output off without stopping the animation.
func (m *Machine) Blank() { m.ctl.Blank() }

// Unblank points scanout back at the framebuffer.
func (m *Machine) Unblank() { m.ctl.SetFrameBase(m.engine.Framebuffer().BusAddr()) }

// Screen reports the effective screen size.
func (m *Machine) Screen() core.Size { return m.engine.Screen() }

// Engine exposes the animation engine.
func (m *Machine) Engine() *engine.Engine { return m.engine }

// Frames counts ticks drawn through DrawFrames.
func (m *Machine) Frames() int { return m.frames }
