package engine

import (
	"context"
	"strconv"

	"simplevo/internal/core"
)

// RunMode selects how many ticks a Run performs.
type RunMode struct {
	frames  int
	forever bool
}

// Frames runs exactly n ticks; n <= 0 runs none.
func Frames(n int) RunMode { return RunMode{frames: max(n, 0)} }

// Forever runs until the context is cancelled.
func Forever() RunMode { return RunMode{forever: true} }

// ModeFor maps a frame count where any negative value means "run forever".
func ModeFor(n int) RunMode {
	if n < 0 {
		return Forever()
	}
	return Frames(n)
}

// IsForever reports whether the mode is unbounded.
func (m RunMode) IsForever() bool { return m.forever }

// Count returns the tick count of a bounded mode.
func (m RunMode) Count() int { return m.frames }

func (m RunMode) String() string {
	if m.forever {
		return "forever"
	}
	return strconv.Itoa(m.frames)
}

// Driver runs an engine tick after tick.
type Driver struct {
	engine *Engine
	pacer  *core.FramePacer
}

// NewDriver creates an unpaced driver.
func NewDriver(e *Engine) *Driver {
	return &Driver{engine: e}
}

// SetPacer limits the tick rate; nil removes the limit.
func (d *Driver) SetPacer(p *core.FramePacer) { d.pacer = p }

// Engine returns the driven engine.
func (d *Driver) Engine() *Engine { return d.engine }

// Run performs ticks according to mode and returns how many completed.
// Cancellation is checked between ticks; a tick in progress always finishes.
func (d *Driver) Run(ctx context.Context, mode RunMode) (int, error) {
	done := 0
	for mode.forever || done < mode.frames {
		if err := d.pacer.Wait(ctx); err != nil {
			return done, err
		}
		d.engine.Tick()
		done++
	}
	return done, nil
}
