package core

import (
	"context"
	"time"
)

// FramePacer spaces driver ticks at a steady ticks-per-second rate. A pacer
// with a zero rate never waits.
type FramePacer struct {
	step time.Duration
	next time.Time
}

// NewFramePacer constructs a pacer targeting the given TPS; tps <= 0 disables
// pacing.
func NewFramePacer(tps int) *FramePacer {
	fp := &FramePacer{}
	fp.SetTPS(tps)
	return fp
}

// SetTPS changes the tick rate and restarts the schedule.
func (f *FramePacer) SetTPS(tps int) {
	f.next = time.Time{}
	if tps <= 0 {
		f.step = 0
		return
	}
	f.step = time.Second / time.Duration(tps)
}

// Step reports the configured interval between ticks.
func (f *FramePacer) Step() time.Duration { return f.step }

// Wait blocks until the next tick is due or ctx is done. Missed deadlines are
// not caught up; the schedule restarts from now.
func (f *FramePacer) Wait(ctx context.Context) error {
	if f == nil || f.step == 0 {
		return ctx.Err()
	}
	now := time.Now()
	if f.next.IsZero() || now.After(f.next) {
		f.next = now.Add(f.step)
		return ctx.Err()
	}
	t := time.NewTimer(f.next.Sub(now))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	f.next = f.next.Add(f.step)
	return nil
}
