package floorplan

import (
	"fmt"
	"math"
	"math/rand"
)

// Hyperparameters control one simulated-annealing schedule. The steps per
// temperature level scale with problem size: floor(StepsPerTempFactor * N),
// at least 1.
type Hyperparameters struct {
	TStart             float64 `yaml:"t_start"`
	TMin               float64 `yaml:"t_min"`
	CoolingRate        float64 `yaml:"cooling_rate"`
	StepsPerTempFactor float64 `yaml:"steps_per_temp_factor"`
}

// Validate reports the first nonsensical hyperparameter.
func (h Hyperparameters) Validate() error {
	switch {
	case h.TStart <= 0:
		return fmt.Errorf("t_start must be > 0, got %g", h.TStart)
	case h.TMin <= 0:
		return fmt.Errorf("t_min must be > 0, got %g", h.TMin)
	case h.TMin >= h.TStart:
		return fmt.Errorf("t_min %g must be below t_start %g", h.TMin, h.TStart)
	case h.CoolingRate <= 0 || h.CoolingRate >= 1:
		return fmt.Errorf("cooling_rate must be in (0, 1), got %g", h.CoolingRate)
	case h.StepsPerTempFactor <= 0:
		return fmt.Errorf("steps_per_temp_factor must be > 0, got %g", h.StepsPerTempFactor)
	}
	return nil
}

// stepsPerTemp returns the inner-loop length for an n-block problem,
// never below 1.
func (h Hyperparameters) stepsPerTemp(n int) int {
	steps := int(h.StepsPerTempFactor * float64(n))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Deadline reports whether the search must stop. Workers poll it between
// temperature levels and between restarts; the inner step loop runs
// without blocking or polling.
type Deadline func() bool

// anneal runs one full SA schedule from the packed, evaluated start
// solution and returns the best tree seen, which is never worse than
// start. Geometric cooling from TStart to TMin; each temperature level
// evaluates stepsPerTemp candidates, accepting by the Metropolis
// criterion with a fresh uniform draw per test.
func anneal(start *Tree, params Hyperparameters, rng *rand.Rand, deadline Deadline, stats *SearchStats) *Tree {
	current := start
	best := current
	steps := params.stepsPerTemp(len(start.Nodes))

	for temp := params.TStart; temp > params.TMin && !deadline(); temp *= params.CoolingRate {
		for i := 0; i < steps; i++ {
			stats.MoveAttempted()
			cand := current.Clone()
			cand.Perturb(rng)
			cand.Pack()
			cand.EvaluateCost()
			if delta := cand.Cost - current.Cost; delta < 0 || math.Exp(-delta/temp) > rng.Float64() {
				stats.MoveAccepted()
				current = cand
				if current.Cost < best.Cost {
					best = current
				}
			}
		}
	}
	return best
}
