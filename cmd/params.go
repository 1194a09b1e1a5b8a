package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boson13579/Parallel-VLSI-Floorplanner/floorplan"
)

// Compile-time hyperparameter defaults per strategy. Multistart and
// tempering share a general-purpose schedule; parallel moves decides
// greedily every step, so it cools far more slowly and takes fewer steps
// per level.
var defaultParams = map[floorplan.Strategy]floorplan.Hyperparameters{
	floorplan.MultiStart: {
		TStart: 1e5, TMin: 1e-2, CoolingRate: 0.98, StepsPerTempFactor: 2.0,
	},
	floorplan.ParallelTempering: {
		TStart: 1e5, TMin: 1e-2, CoolingRate: 0.98, StepsPerTempFactor: 2.0,
	},
	floorplan.ParallelMoves: {
		TStart: 1e6, TMin: 1e-2, CoolingRate: 0.995, StepsPerTempFactor: 0.5,
	},
}

// paramsFile is the YAML override schema: one optional block per
// strategy. Absent blocks keep their compiled defaults.
type paramsFile struct {
	MultiStart    *floorplan.Hyperparameters `yaml:"multistart"`
	Tempering     *floorplan.Hyperparameters `yaml:"tempering"`
	ParallelMoves *floorplan.Hyperparameters `yaml:"parallelmoves"`
}

// DefaultHyperparameters returns the compiled schedule for a strategy.
func DefaultHyperparameters(s floorplan.Strategy) floorplan.Hyperparameters {
	return defaultParams[s]
}

// LoadHyperparameters resolves the schedule for a strategy: the compiled
// default, replaced by the strategy's block in the YAML file at path when
// path is non-empty.
func LoadHyperparameters(path string, s floorplan.Strategy) (floorplan.Hyperparameters, error) {
	params := DefaultHyperparameters(s)
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read params file: %w", err)
	}
	var file paramsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return params, fmt.Errorf("parse params file: %w", err)
	}

	var override *floorplan.Hyperparameters
	switch s {
	case floorplan.MultiStart:
		override = file.MultiStart
	case floorplan.ParallelTempering:
		override = file.Tempering
	case floorplan.ParallelMoves:
		override = file.ParallelMoves
	}
	if override != nil {
		params = *override
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("params file %s: %w", path, err)
	}
	return params, nil
}
