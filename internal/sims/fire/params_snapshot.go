package fire

import (
	"strconv"

	"simplevo/internal/core"
)

// Parameters reports the geometry and fixed tuning of the simulation.
func (s *Sim) Parameters() core.ParameterSnapshot {
	active := s.Size()
	capacity := s.grid.Capacity()
	groups := []core.ParameterGroup{
		{
			Name: "Screen",
			Params: []core.Parameter{
				intParam("w", "Width", s.screen.W),
				intParam("h", "Height", s.screen.H),
			},
		},
		{
			Name: "Heat Grid",
			Params: []core.Parameter{
				intParam("grid_w", "Active width", active.W),
				intParam("grid_h", "Active rows", active.H),
				intParam("grid_visible", "Visible rows", s.visible),
				intParam("grid_cap", "Capacity", capacity.W),
			},
		},
		{
			Name: "Simulation",
			Params: []core.Parameter{
				hexParam("seed", "Seed", s.cfg.Seed),
				hexParam("rng", "RNG state", s.rng.State()),
				intParam("decay_floor", "Decay floor", decayFloor),
				intParam("spark_threshold", "Spark threshold", sparkThreshold),
				intParam("spark_odds", "Spark odds (1 in)", sparkOdds),
				intParam("quench_odds", "Quench odds (1 in)", quenchOdds),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func hexParam(key, label string, value uint32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: "0x" + strconv.FormatUint(uint64(value), 16),
	}
}
