package fire

import "simplevo/internal/core"

const (
	decayFloor     = 30
	sparkThreshold = 16
	sparkOdds      = 32
	sparkDrop      = 16

	ridgeRows = 10
	ridgeSpan = 30
	ridgePeak = 15
	ridgeGain = 10

	quenchOdds = 8
	quenchRows = 3
	quenchCols = 10
)

// Sim is the low-resolution heat simulation behind the fire effect. The
// grid's active region is half the screen in each direction plus
// core.SourceRows rows of flame source below the visible part.
type Sim struct {
	cfg Config

	screen  core.Size
	visible int

	grid *core.HeatGrid
	rng  *core.RNG
}

// New returns a fire simulation for a w by h screen using defaults.
func New(w, h int) (*Sim, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a simulation configured from the provided options.
// The screen is clamped to what the capacity can hold.
func NewWithConfig(cfg Config) (*Sim, error) {
	return NewWithRNG(cfg, core.NewRNG(cfg.Seed))
}

// NewWithRNG is NewWithConfig with a caller-owned generator.
func NewWithRNG(cfg Config, rng *core.RNG) (*Sim, error) {
	screen, err := core.ClampGeometry(cfg.Screen(), cfg.Capacity)
	if err != nil {
		return nil, err
	}
	cfg.Width, cfg.Height = screen.W, screen.H
	s := &Sim{
		cfg:     cfg,
		screen:  screen,
		visible: screen.H / 2,
		grid:    core.NewHeatGrid(cfg.Capacity.Grid),
		rng:     rng,
	}
	s.grid.Activate(screen.W/2, s.visible+core.SourceRows)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "fire" }

// Screen reports the (clamped) screen size this simulation feeds.
func (s *Sim) Screen() core.Size { return s.screen }

// Size reports the active heat grid dimensions, source rows included.
func (s *Sim) Size() core.Size { return core.Size{W: s.grid.W, H: s.grid.H} }

// VisibleRows is the number of grid rows that reach the screen.
func (s *Sim) VisibleRows() int { return s.visible }

// Grid exposes the heat grid.
func (s *Sim) Grid() *core.HeatGrid { return s.grid }

// RNG exposes the generator driving sparks and injection.
func (s *Sim) RNG() *core.RNG { return s.rng }

// Config returns the effective configuration.
func (s *Sim) Config() Config { return s.cfg }

// Reset cools the grid to zero and reseeds the generator.
func (s *Sim) Reset(seed uint32) {
	s.grid.Clear()
	s.rng.Seed(seed)
	s.cfg.Seed = s.rng.State()
}

// Advance runs one simulation pass: diffusion from the rows q below with
// horizontal jitter p, decay in the rows with nothing below them, random
// sparks, then one flame injection. q must be positive.
func (s *Sim) Advance(p, q int) {
	if q < 1 {
		panic("fire: vertical diffusion offset must be positive")
	}
	s.diffuse(p, q)
	s.inject()
}

// diffuse updates the grid in place. Row i reads only rows i+q, which are
// further down and have not been written yet in this pass.
func (s *Sim) diffuse(p, q int) {
	g := s.grid
	w, h := g.W, g.H
	for i := 0; i < h; i++ {
		row := g.Row(i)
		var src []uint8
		if i+q < h {
			src = g.Row(i + q)
		}
		for j := 0; j < w; j++ {
			v := int(row[j])
			if src != nil {
				v += int(src[g.WrapCol(j+p)])
				v += int(src[g.WrapCol(j-p)])
				v += int(src[j])
				v /= 4
			} else {
				v = cool(v)
			}

			if v > sparkThreshold && s.rng.Next()%sparkOdds == 0 {
				v -= sparkDrop
			}
			row[j] = uint8(v)
		}
	}
}

// cool is the decay applied to rows with no source row below them.
func cool(v int) int {
	if v > decayFloor {
		return v - 1
	}
	return decayFloor
}

// inject feeds the source rows: usually a triangular ridge of heat at a
// random phase, occasionally a cold patch where the flame dies back.
func (s *Sim) inject() {
	g := s.grid
	w := g.W
	phase := s.rng.Intn(w)
	if s.rng.Next()%quenchOdds != 0 {
		for i := 0; i < ridgeRows; i++ {
			row := s.visible + core.SourceRows - 1 - i
			if row < 0 {
				continue
			}
			for j := i; j < ridgeSpan-i; j++ {
				col := (j + phase) % w
				v := int(g.At(col, row)) + ridgeHeat(j)
				if v > 255 {
					v = 255
				}
				g.Set(col, row, uint8(v))
			}
		}
		return
	}
	for i := 0; i < quenchRows; i++ {
		for j := 0; j < quenchCols; j++ {
			g.Set((j+phase)%w, s.visible+i, 0)
		}
	}
}

// ridgeHeat is the triangular injection profile, peaking at column 15.
func ridgeHeat(j int) int {
	d := ridgePeak - j
	if d < 0 {
		d = -d
	}
	return ridgeGain * (ridgePeak - d)
}
