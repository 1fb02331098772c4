package fire

import (
	"errors"
	"slices"
	"testing"

	"simplevo/internal/core"
)

func smallConfig(w, h int, seed uint32) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = seed
	cfg.Capacity = core.Capacity{
		Frame: core.Size{W: 256, H: 256},
		Grid:  core.Size{W: 128, H: 128},
	}
	return cfg
}

func TestGeometry(t *testing.T) {
	s, err := NewWithConfig(smallConfig(64, 48, 1))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if got := s.Size(); got != (core.Size{W: 32, H: 24 + core.SourceRows}) {
		t.Fatalf("grid size = %+v", got)
	}
	if s.VisibleRows() != 24 {
		t.Fatalf("visible rows = %d, want 24", s.VisibleRows())
	}
}

func TestGeometryClampedToCapacity(t *testing.T) {
	s, err := NewWithConfig(smallConfig(4000, 4000, 1))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	// Grid capacity 128 allows 256 columns and (128-5)*2 rows of screen.
	want := core.Size{W: 256, H: 246}
	if s.Screen() != want {
		t.Fatalf("screen = %+v, want %+v", s.Screen(), want)
	}
	if s.Size().H > s.Grid().Capacity().H {
		t.Fatalf("active rows %d exceed capacity", s.Size().H)
	}
}

func TestGeometryTooSmall(t *testing.T) {
	_, err := NewWithConfig(smallConfig(1, 10, 1))
	if !errors.Is(err, core.ErrGeometry) {
		t.Fatalf("expected ErrGeometry, got %v", err)
	}
}

func TestCoolConvergesToFloor(t *testing.T) {
	for start := 0; start <= 255; start++ {
		v := start
		for i := 0; i < 300; i++ {
			v = cool(v)
		}
		if v != decayFloor {
			t.Fatalf("start %d settled at %d, want %d", start, v, decayFloor)
		}
		if cool(v) != decayFloor {
			t.Fatalf("floor is not stable for start %d", start)
		}
	}
}

func TestDecayRegionSettles(t *testing.T) {
	s, err := NewWithConfig(smallConfig(64, 64, 7))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	s.Grid().Fill(255)
	h := s.Size().H
	for i := 0; i < 400; i++ {
		// q == h puts every row in the decay region.
		s.Advance(1, h)
	}
	// Rows reached by the injection ridge are excluded.
	for row := 0; row < h-ridgeRows; row++ {
		for col, v := range s.Grid().Row(row) {
			// A cell is either at the floor or was sparked this pass.
			if v != decayFloor && v != decayFloor-sparkDrop {
				t.Fatalf("cell (%d,%d) = %d", col, row, v)
			}
		}
	}
}

func TestColdCellsNeverSpark(t *testing.T) {
	s, err := NewWithConfig(smallConfig(64, 48, 11))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	g := s.Grid()
	w, h := g.W, g.H
	for pass := 0; pass < 200; pass++ {
		v := uint8(pass % 17) // 0..16
		g.Fill(v)
		ref := core.NewRNG(s.RNG().State())
		s.diffuse(1, 1)

		// Rows with a source row below average to v and must come out as v.
		for row := 0; row < h-1; row++ {
			for col, got := range g.Row(row) {
				if got != v {
					t.Fatalf("pass %d: cell (%d,%d) = %d, want %d", pass, col, row, got, v)
				}
			}
		}
		// Only the bottom row cools past 16 and is eligible for a spark.
		for i := 0; i < w; i++ {
			ref.Next()
		}
		if ref.State() != s.RNG().State() {
			t.Fatalf("pass %d: spark draws outside the bottom row", pass)
		}
	}
}

func TestSixteenIsSparkExempt(t *testing.T) {
	s, err := NewWithConfig(smallConfig(64, 48, 3))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	g := s.Grid()
	h := g.H
	for pass := 0; pass < 500; pass++ {
		g.Fill(16)
		s.diffuse(1, 1)
		for row := 0; row < h-1; row++ {
			for col, got := range g.Row(row) {
				if got < 16 {
					t.Fatalf("pass %d: cell (%d,%d) sparked to %d", pass, col, row, got)
				}
			}
		}
	}
}

func TestInjectionSaturates(t *testing.T) {
	s, err := NewWithConfig(smallConfig(80, 40, 99))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < 64; i++ {
		s.Grid().Fill(250)
		s.inject()
		for _, v := range s.Grid().Snapshot() {
			// 0 is a quench, 250 an untouched cell, 255 a saturated one.
			if v != 0 && v != 250 && v != 255 {
				t.Fatalf("injection produced %d from 250", v)
			}
		}
	}
}

func TestRidgeProfile(t *testing.T) {
	want := map[int]int{0: 0, 1: 10, 14: 140, 15: 150, 16: 140, 29: 10}
	for j, h := range want {
		if got := ridgeHeat(j); got != h {
			t.Fatalf("ridgeHeat(%d) = %d, want %d", j, got, h)
		}
	}
}

// referenceAdvance is a double-buffered diffusion pass followed by
// injection, used to check that the in-place pass reads no updated cells.
func referenceAdvance(s *Sim, p, q int) {
	g := s.grid
	src := g.Snapshot()
	at := func(col, row int) int { return int(src[row*g.W+col]) }
	for i := 0; i < g.H; i++ {
		row := g.Row(i)
		for j := 0; j < g.W; j++ {
			v := at(j, i)
			if i+q < g.H {
				v = (v + at(g.WrapCol(j+p), i+q) + at(g.WrapCol(j-p), i+q) + at(j, i+q)) / 4
			} else {
				v = cool(v)
			}
			if v > sparkThreshold && s.rng.Next()%sparkOdds == 0 {
				v -= sparkDrop
			}
			row[j] = uint8(v)
		}
	}
	s.inject()
}

func TestInPlaceMatchesDoubleBuffered(t *testing.T) {
	a, err := NewWithConfig(smallConfig(96, 64, 4242))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWithConfig(smallConfig(96, 64, 4242))
	if err != nil {
		t.Fatal(err)
	}
	offsets := [][2]int{{1, 3}, {3, 1}, {2, 2}}
	for step := 0; step < 90; step++ {
		o := offsets[step%len(offsets)]
		a.Advance(o[0], o[1])
		referenceAdvance(b, o[0], o[1])
		if !slices.Equal(a.Grid().Snapshot(), b.Grid().Snapshot()) {
			t.Fatalf("grids diverged at step %d", step)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a, _ := NewWithConfig(smallConfig(64, 48, 5))
	b, _ := NewWithConfig(smallConfig(64, 48, 5))
	for i := 0; i < 50; i++ {
		a.Advance(2, 2)
		b.Advance(2, 2)
	}
	if !slices.Equal(a.Grid().Snapshot(), b.Grid().Snapshot()) {
		t.Fatal("same seed produced different grids")
	}
	if a.RNG().State() != b.RNG().State() {
		t.Fatal("same seed produced different generator states")
	}

	a.Reset(5)
	c, _ := NewWithConfig(smallConfig(64, 48, 5))
	a.Advance(1, 3)
	c.Advance(1, 3)
	if !slices.Equal(a.Grid().Snapshot(), c.Grid().Snapshot()) {
		t.Fatal("Reset did not restore the seeded state")
	}
}

func TestAdvancePanicsOnZeroOffset(t *testing.T) {
	s, _ := NewWithConfig(smallConfig(16, 16, 1))
	defer func() {
		if recover() == nil {
			t.Fatal("Advance(1, 0) did not panic")
		}
	}()
	s.Advance(1, 0)
}

func TestTinyScreenDoesNotPanic(t *testing.T) {
	s, err := NewWithConfig(smallConfig(2, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		s.Advance(1, 3)
		s.Advance(3, 1)
		s.Advance(2, 2)
	}
}

func TestMeasure(t *testing.T) {
	s, _ := NewWithConfig(smallConfig(20, 20, 1))
	s.Grid().Fill(0)
	for col := range s.Grid().Row(0) {
		s.Grid().Set(col, 0, 200)
	}
	st := s.Measure()
	if st.Peak != 200 {
		t.Fatalf("peak = %d", st.Peak)
	}
	if st.Lit != 0.1 {
		t.Fatalf("lit = %f, want 0.1", st.Lit)
	}
	if st.Mean != 20 {
		t.Fatalf("mean = %f, want 20", st.Mean)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "320", "h": "bad", "seed": "0x10", "grid_cap": "64"})
	if cfg.Width != 320 || cfg.Height != 720 {
		t.Fatalf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Seed != 16 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if cfg.Capacity.Grid != (core.Size{W: 64, H: 64}) {
		t.Fatalf("grid cap = %+v", cfg.Capacity.Grid)
	}
}

func TestParameters(t *testing.T) {
	s, _ := NewWithConfig(smallConfig(64, 48, 1))
	snap := s.Parameters()
	p, ok := snap.Lookup("w")
	if !ok || p.Value != "64" {
		t.Fatalf("w = %+v (found %v)", p, ok)
	}
	if len(snap.Lines()) == 0 {
		t.Fatal("no parameter lines")
	}
}
