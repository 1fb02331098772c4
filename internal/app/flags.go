package app

import (
	"flag"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"simplevo/internal/core"
	"simplevo/internal/demo"
	"simplevo/internal/engine"
)

// Config represents the command-line parameters for the application. Every
// field except ConfigFile may also come from a TOML file; flags given on the
// command line win over the file.
type Config struct {
	ConfigFile string `toml:"-"`

	Display  string `toml:"display"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Seed     uint64 `toml:"seed"`
	Frames   int    `toml:"frames"`
	Script   string `toml:"script"`
	TPS      int    `toml:"tps"`
	Scale    int    `toml:"scale"`
	LogEvery int    `toml:"log_every"`
	Snapshot string `toml:"snapshot"`

	StartupDelay time.Duration `toml:"startup_delay"`
	GridCap      int           `toml:"grid_cap"`
	FrameCap     int           `toml:"frame_cap"`

	Params bool `toml:"-"`
}

// NewConfig returns a Config populated with the reference board defaults.
func NewConfig() *Config {
	caps := core.DefaultCapacity()
	return &Config{
		Display:      "headless",
		Width:        1280,
		Height:       720,
		Seed:         uint64(core.DefaultSeed),
		TPS:          60,
		Scale:        1,
		StartupDelay: demo.DefaultStartupDelay,
		GridCap:      caps.Grid.W,
		FrameCap:     caps.Frame.W,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "TOML file with default settings")
	fs.StringVar(&c.Display, "display", c.Display, "display to use ("+strings.Join(core.DisplayNames(), ", ")+")")
	fs.IntVar(&c.Width, "w", c.Width, "screen width reported by the geometry register")
	fs.IntVar(&c.Height, "h", c.Height, "screen height reported by the geometry register")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "xorshift seed")
	fs.IntVar(&c.Frames, "frames", c.Frames, "draw this many frames instead of the demo script (-1 runs forever)")
	fs.StringVar(&c.Script, "script", c.Script, "Starlark demo script (default: built-in firmware demo)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second, 0 for unpaced")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window pixel scale")
	fs.IntVar(&c.LogEvery, "log-every", c.LogEvery, "headless display logs every n-th frame")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "write the last frame to this .png, .bmp or .ppm file")
	fs.DurationVar(&c.StartupDelay, "startup-delay", c.StartupDelay, "settle time before the first frame")
	fs.IntVar(&c.GridCap, "grid-cap", c.GridCap, "heat grid capacity per side")
	fs.IntVar(&c.FrameCap, "frame-cap", c.FrameCap, "framebuffer capacity per side")
	fs.BoolVar(&c.Params, "params", c.Params, "print simulation parameters and exit")
}

// LoadFile merges settings from a TOML file. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Parse binds c to fs and parses args. When -config names a file, the file is
// loaded and args are parsed again so explicit flags keep precedence.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.ConfigFile != "" {
		if err := c.LoadFile(c.ConfigFile); err != nil {
			return err
		}
		if err := fs.Parse(args); err != nil {
			return err
		}
	}
	return c.Validate()
}

// Validate rejects settings no component can use.
func (c *Config) Validate() error {
	if c.Seed > math.MaxUint32 {
		return fmt.Errorf("seed %d does not fit in 32 bits", c.Seed)
	}
	if c.Width < 0 || c.Width > 0xffff || c.Height < 0 || c.Height > 0xffff {
		return fmt.Errorf("geometry %dx%d does not fit the geometry register", c.Width, c.Height)
	}
	if c.GridCap <= 0 || c.FrameCap <= 0 {
		return fmt.Errorf("capacities must be positive")
	}
	return nil
}

// Screen returns the configured geometry.
func (c *Config) Screen() core.Size { return core.Size{W: c.Width, H: c.Height} }

// DisplayScreen returns the configured geometry clamped to the engine
// capacity, which is the size of every frame the board scans out.
func (c *Config) DisplayScreen() (core.Size, error) {
	return core.ClampGeometry(c.Screen(), c.EngineConfig().Fire.Capacity)
}

// EngineConfig converts the settings into an engine configuration. Screen
// size is left to the geometry register.
func (c *Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Fire.Seed = uint32(c.Seed)
	cfg.Fire.Capacity = core.Capacity{
		Frame: core.Size{W: c.FrameCap, H: c.FrameCap},
		Grid:  core.Size{W: c.GridCap, H: c.GridCap},
	}
	return cfg
}

// DemoOptions converts the settings into boot options.
func (c *Config) DemoOptions() demo.Options {
	return demo.Options{
		Engine:       c.EngineConfig(),
		StartupDelay: c.StartupDelay,
		TPS:          c.TPS,
	}
}
