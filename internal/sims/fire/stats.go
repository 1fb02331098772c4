package fire

// Stats summarises the visible part of the heat grid.
type Stats struct {
	Mean float64
	Peak uint8
	// Lit is the fraction of visible cells hotter than the decay floor.
	Lit float64
}

// Measure computes Stats over the visible rows.
func (s *Sim) Measure() Stats {
	var st Stats
	cells := 0
	lit := 0
	sum := 0
	for i := 0; i < s.visible; i++ {
		for _, v := range s.grid.Row(i) {
			sum += int(v)
			if v > st.Peak {
				st.Peak = v
			}
			if v > decayFloor {
				lit++
			}
			cells++
		}
	}
	if cells > 0 {
		st.Mean = float64(sum) / float64(cells)
		st.Lit = float64(lit) / float64(cells)
	}
	return st
}
