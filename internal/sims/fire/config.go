package fire

import (
	"strconv"

	"simplevo/internal/core"
)

// Config controls the fire simulation geometry and seeding.
type Config struct {
	// Width and Height are the screen size in pixels. The heat grid is
	// half that in each direction plus the flame-source rows.
	Width  int
	Height int

	Seed uint32

	Capacity core.Capacity
}

// DefaultConfig returns the standard 1280x720 configuration.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		Seed:     core.DefaultSeed,
		Capacity: core.DefaultCapacity(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 0, 32); err == nil {
			c.Seed = uint32(parsed)
		}
	}
	if v, ok := cfg["grid_cap"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Capacity.Grid = core.Size{W: parsed, H: parsed}
		}
	}
	if v, ok := cfg["frame_cap"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Capacity.Frame = core.Size{W: parsed, H: parsed}
		}
	}
	return c
}

// Screen returns the requested screen size.
func (c Config) Screen() core.Size { return core.Size{W: c.Width, H: c.Height} }
