package engine

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplevo/internal/core"
)

type countingFlusher struct {
	n      int
	cancel context.CancelFunc
	after  int
}

func (f *countingFlusher) Flush() {
	f.n++
	if f.cancel != nil && f.n == f.after {
		f.cancel()
	}
}

func testConfig(seed uint32) Config {
	cfg := DefaultConfig()
	cfg.Fire.Width, cfg.Fire.Height = 64, 48
	cfg.Fire.Seed = seed
	cfg.Fire.Capacity = core.Capacity{
		Frame: core.Size{W: 128, H: 128},
		Grid:  core.Size{W: 64, H: 64},
	}
	return cfg
}

func TestTickAdvancesThreeTimesAndComposites(t *testing.T) {
	assert := assert.New(t)

	fl := &countingFlusher{}
	e, err := New(testConfig(3), fl)
	require.NoError(t, err)

	// A reference simulation driven by hand with the same offsets.
	ref, err := New(testConfig(3), nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		e.Tick()
		ref.Sim().Advance(1, 3)
		ref.Sim().Advance(3, 1)
		ref.Sim().Advance(2, 2)
		ref.Composite()
	}
	assert.Equal(10, fl.n)
	assert.Equal(uint64(10), e.Ticks())
	assert.Equal(ref.Sim().Grid().Snapshot(), e.Sim().Grid().Snapshot())
	assert.Equal(ref.Framebuffer().Bytes(), e.Framebuffer().Bytes())
	assert.Same(e.RNG(), e.Sim().RNG())
}

func TestEnginesAreDeterministic(t *testing.T) {
	a, err := New(testConfig(77), nil)
	require.NoError(t, err)
	b, err := New(testConfig(77), nil)
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		a.Tick()
		b.Tick()
		if !slices.Equal(a.Sim().Grid().Snapshot(), b.Sim().Grid().Snapshot()) ||
			!slices.Equal(a.Framebuffer().Bytes(), b.Framebuffer().Bytes()) {
			t.Fatalf("engines diverged at tick %d", i)
		}
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	cfg := testConfig(1)
	cfg.Fire.Width = 0
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, core.ErrGeometry)
}

func TestRunModes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("5", Frames(5).String())
	assert.Equal(0, Frames(-3).Count())
	assert.True(Forever().IsForever())
	assert.True(ModeFor(-1).IsForever())
	assert.Equal("forever", ModeFor(-1).String())
	assert.False(ModeFor(0).IsForever())
	assert.Equal(7, ModeFor(7).Count())
}

func TestDriverRunsFrames(t *testing.T) {
	assert := assert.New(t)

	fl := &countingFlusher{}
	e, err := New(testConfig(9), fl)
	require.NoError(t, err)
	d := NewDriver(e)
	assert.Same(e, d.Engine())

	n, err := d.Run(context.Background(), Frames(25))
	assert.NoError(err)
	assert.Equal(25, n)
	assert.Equal(25, fl.n)

	n, err = d.Run(context.Background(), Frames(0))
	assert.NoError(err)
	assert.Equal(0, n)
}

func TestDriverForeverStopsOnCancel(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fl := &countingFlusher{cancel: cancel, after: 50}
	e, err := New(testConfig(9), fl)
	require.NoError(t, err)

	n, err := NewDriver(e).Run(ctx, ModeFor(-1))
	assert.True(errors.Is(err, context.Canceled))
	// The tick that cancelled still completes.
	assert.Equal(50, n)
	assert.Equal(50, fl.n)
}

func TestDriverPaced(t *testing.T) {
	assert := assert.New(t)

	e, err := New(testConfig(9), nil)
	require.NoError(t, err)
	d := NewDriver(e)
	d.SetPacer(core.NewFramePacer(200))

	start := time.Now()
	n, err := d.Run(context.Background(), Frames(5))
	assert.NoError(err)
	assert.Equal(5, n)
	// Four full intervals of 5ms separate five ticks.
	assert.GreaterOrEqual(time.Since(start), 15*time.Millisecond)
}
