// Package engine ties the fire simulation, palette, framebuffer and RNG into
// one context object and drives it frame by frame.
package engine

import (
	"simplevo/internal/core"
	"simplevo/internal/hw"
	"simplevo/internal/render"
	"simplevo/internal/sims/fire"
)

// Config controls engine construction.
type Config struct {
	Fire    fire.Config
	BusAddr uint32
}

// DefaultConfig returns the reference board configuration.
func DefaultConfig() Config {
	return Config{Fire: fire.DefaultConfig(), BusAddr: render.DefaultBusAddr}
}

// pass is one diffusion direction applied per tick.
type pass struct{ p, q int }

// turbulence lists the three superimposed mixing directions of a tick.
var turbulence = [...]pass{{1, 3}, {3, 1}, {2, 2}}

// Engine owns all animation state: palette, heat grid, RNG and framebuffer.
type Engine struct {
	sim  *fire.Sim
	rng  *core.RNG
	fb   *render.Framebuffer
	comp *render.Compositor

	ticks uint64
}

// New builds an engine. Frames are published through flusher, which may be
// nil when nothing consumes them.
func New(cfg Config, flusher hw.Flusher) (*Engine, error) {
	rng := core.NewRNG(cfg.Fire.Seed)
	sim, err := fire.NewWithRNG(cfg.Fire, rng)
	if err != nil {
		return nil, err
	}
	fb := render.NewFramebuffer(cfg.Fire.Capacity.Frame, cfg.BusAddr)
	if err := fb.Configure(sim.Screen()); err != nil {
		return nil, err
	}
	return &Engine{
		sim:  sim,
		rng:  rng,
		fb:   fb,
		comp: render.NewCompositor(flusher),
	}, nil
}

// Tick advances the simulation three times with different offsets and then
// composites one frame.
func (e *Engine) Tick() {
	for _, ps := range turbulence {
		e.sim.Advance(ps.p, ps.q)
	}
	e.Composite()
	e.ticks++
}

// Composite draws the current grid and publishes the frame.
func (e *Engine) Composite() {
	e.comp.Composite(e.fb, e.sim)
}

// Sim exposes the heat simulation.
func (e *Engine) Sim() *fire.Sim { return e.sim }

// RNG exposes the engine's generator.
func (e *Engine) RNG() *core.RNG { return e.rng }

// Framebuffer exposes the DMA buffer.
func (e *Engine) Framebuffer() *render.Framebuffer { return e.fb }

// Palette returns the color ramp used by the compositor.
func (e *Engine) Palette() *fire.Palette { return e.comp.Palette }

// Screen reports the effective screen size after clamping.
func (e *Engine) Screen() core.Size { return e.sim.Screen() }

// Ticks counts completed ticks.
func (e *Engine) Ticks() uint64 { return e.ticks }
