package core

// HeatGrid stores 8-bit heat values in a fixed-capacity row-major buffer.
// Only the active region (W columns by H rows) is simulated; the rest of the
// capacity is never touched.
type HeatGrid struct {
	W, H   int
	stride int
	rows   int
	data   []uint8
}

// NewHeatGrid allocates a grid with the given capacity. The active region
// starts empty; call Activate before use.
func NewHeatGrid(capacity Size) *HeatGrid {
	if capacity.W <= 0 {
		capacity.W = 1
	}
	if capacity.H <= 0 {
		capacity.H = 1
	}
	return &HeatGrid{
		stride: capacity.W,
		rows:   capacity.H,
		data:   make([]uint8, capacity.W*capacity.H),
	}
}

// Activate selects the simulated region, clipped to capacity.
func (g *HeatGrid) Activate(w, h int) {
	g.W = min(max(w, 0), g.stride)
	g.H = min(max(h, 0), g.rows)
}

// Capacity reports the allocated dimensions.
func (g *HeatGrid) Capacity() Size { return Size{W: g.stride, H: g.rows} }

// Index returns the linear index for (col, row).
func (g *HeatGrid) Index(col, row int) int { return row*g.stride + col }

// Row exposes the active columns of one row for direct reads and writes.
func (g *HeatGrid) Row(row int) []uint8 {
	base := row * g.stride
	return g.data[base : base+g.W]
}

// At returns the value at (col, row).
func (g *HeatGrid) At(col, row int) uint8 { return g.data[row*g.stride+col] }

// Set stores v at (col, row).
func (g *HeatGrid) Set(col, row int, v uint8) { g.data[row*g.stride+col] = v }

// WrapCol folds a column index into [0, W).
func (g *HeatGrid) WrapCol(col int) int {
	return (col%g.W + g.W) % g.W
}

// Fill sets every active cell to v.
func (g *HeatGrid) Fill(v uint8) {
	for y := 0; y < g.H; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// Clear zeroes the whole buffer, including cells outside the active region.
func (g *HeatGrid) Clear() {
	clear(g.data)
}

// Snapshot copies the active region into a packed W*H slice.
func (g *HeatGrid) Snapshot() []uint8 {
	out := make([]uint8, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		out = append(out, g.Row(y)...)
	}
	return out
}
