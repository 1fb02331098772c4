package app

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplevo/internal/core"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("simplevo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig()
	require.NoError(t, cfg.Parse(newFlagSet(), nil))
	assert.Equal("headless", cfg.Display)
	assert.Equal(core.Size{W: 1280, H: 720}, cfg.Screen())
	assert.Equal(uint32(core.DefaultSeed), cfg.EngineConfig().Fire.Seed)
	assert.Equal(core.DefaultCapacity(), cfg.EngineConfig().Fire.Capacity)
	assert.Equal(100*time.Millisecond, cfg.DemoOptions().StartupDelay)
}

func TestConfigFlags(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig()
	err := cfg.Parse(newFlagSet(), []string{"-w", "320", "-h", "200", "-seed", "0x2a", "-frames", "-1", "-tps", "0"})
	require.NoError(t, err)
	assert.Equal(core.Size{W: 320, H: 200}, cfg.Screen())
	assert.Equal(uint32(42), cfg.EngineConfig().Fire.Seed)
	assert.Equal(-1, cfg.Frames)
	assert.Equal(0, cfg.DemoOptions().TPS)
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "simplevo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
display = "term"
width = 640
height = 480
seed = 7
startup_delay = "250ms"
grid_cap = 512
`), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.Parse(newFlagSet(), []string{"-config", path, "-w", "800"}))
	assert.Equal("term", cfg.Display)
	assert.Equal(800, cfg.Width, "flags win over the file")
	assert.Equal(480, cfg.Height)
	assert.Equal(uint64(7), cfg.Seed)
	assert.Equal(250*time.Millisecond, cfg.StartupDelay)
	assert.Equal(core.Size{W: 512, H: 512}, cfg.EngineConfig().Fire.Capacity.Grid)
}

func TestConfigDisplayScreenClamped(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig()
	require.NoError(t, cfg.Parse(newFlagSet(), []string{"-w", "4000", "-h", "4000", "-grid-cap", "128", "-frame-cap", "256"}))
	screen, err := cfg.DisplayScreen()
	require.NoError(t, err)
	assert.Equal(core.Size{W: 256, H: 246}, screen)

	cfg = NewConfig()
	require.NoError(t, cfg.Parse(newFlagSet(), []string{"-w", "1"}))
	_, err = cfg.DisplayScreen()
	assert.ErrorIs(err, core.ErrGeometry)
}

func TestConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("colour = \"red\"\n"), 0o644))

	err := NewConfig().Parse(newFlagSet(), []string{"-config", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestConfigValidate(t *testing.T) {
	assert := assert.New(t)

	assert.Error(NewConfig().Parse(newFlagSet(), []string{"-seed", "4294967296"}))
	assert.Error(NewConfig().Parse(newFlagSet(), []string{"-w", "70000"}))
	assert.Error(NewConfig().Parse(newFlagSet(), []string{"-grid-cap", "0"}))
}

func TestHeadlessDisplay(t *testing.T) {
	assert := assert.New(t)

	d, err := core.NewDisplay("headless", core.DisplayOptions{LogEvery: 2})
	require.NoError(t, err)
	h := d.(*Headless)
	assert.Equal("headless", h.Name())

	err = h.Serve(context.Background(), func(ctx context.Context) error {
		h.Present(core.Frame{Size: core.Size{W: 2, H: 2}, Blank: true})
		h.Present(core.Frame{Size: core.Size{W: 2, H: 2}, Pix: make([]byte, 12)})
		h.Present(core.Frame{Size: core.Size{W: 2, H: 2}, Pix: make([]byte, 12)})
		return nil
	})
	assert.NoError(err)
	assert.Equal(uint64(3), h.Frames())
	assert.Equal(uint64(1), h.Blanks())
}
