package app

import (
	"context"
	"log"
	"sync/atomic"

	"simplevo/internal/core"
)

// Headless is a display without output. It counts frames and can log a
// progress line every few frames.
type Headless struct {
	frames   atomic.Uint64
	blanks   atomic.Uint64
	logEvery uint64
}

// NewHeadless creates a headless display.
func NewHeadless(opts core.DisplayOptions) *Headless {
	h := &Headless{}
	if opts.LogEvery > 0 {
		h.logEvery = uint64(opts.LogEvery)
	}
	return h
}

// Name identifies the display.
func (h *Headless) Name() string { return "headless" }

// Present counts the frame.
func (h *Headless) Present(f core.Frame) {
	n := h.frames.Add(1)
	if f.Blank {
		h.blanks.Add(1)
	}
	if h.logEvery > 0 && n%h.logEvery == 0 {
		log.Printf("app: frame %d (%dx%d, blank=%v)", n, f.Size.W, f.Size.H, f.Blank)
	}
}

// Serve runs work on the calling goroutine.
func (h *Headless) Serve(ctx context.Context, work func(context.Context) error) error {
	return work(ctx)
}

// Frames reports presented frames.
func (h *Headless) Frames() uint64 { return h.frames.Load() }

// Blanks reports presented frames that had scanout disabled.
func (h *Headless) Blanks() uint64 { return h.blanks.Load() }

func init() {
	core.RegisterDisplay("headless", func(opts core.DisplayOptions) (core.Display, error) {
		return NewHeadless(opts), nil
	})
}
