package floorplan

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boson13579/Parallel-VLSI-Floorplanner/floorplan/trace"
)

// Strategy selects one of the parallel search topologies.
type Strategy int

const (
	// MultiStart runs independent SA restarts per worker and merges the
	// per-worker bests at exit.
	MultiStart Strategy = iota
	// ParallelTempering evolves one replica per worker at a fixed
	// temperature and periodically exchanges neighbors.
	ParallelTempering
	// ParallelMoves races a batch of candidate perturbations on every SA
	// step and applies Metropolis to the batch winner.
	ParallelMoves
)

func (s Strategy) String() string {
	switch s {
	case MultiStart:
		return "multistart"
	case ParallelTempering:
		return "tempering"
	case ParallelMoves:
		return "parallelmoves"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a CLI selector to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "multistart", "multi-start":
		return MultiStart, nil
	case "tempering", "parallel-tempering":
		return ParallelTempering, nil
	case "parallelmoves", "parallel-moves":
		return ParallelMoves, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want multistart, tempering, or parallelmoves)", name)
}

// SearchConfig carries the run-level knobs of a Searcher.
type SearchConfig struct {
	Workers     int                   // concurrent workers; <= 0 is rejected
	TimeLimit   time.Duration         // wall-clock budget from Run entry
	Params      Hyperparameters       // SA schedule
	Seed        int64                 // master RNG seed; 0 = wall clock
	Convergence *trace.ConvergenceLog // improvement sink; nil discards
}

// Searcher coordinates a parallel floorplan search over one shared
// read-only BlockModel. The global best lives in a mutex-guarded cell;
// every strict improvement is appended to the convergence log before the
// lock is released, so log rows are strictly decreasing in cost and
// non-decreasing in timestamp.
type Searcher struct {
	model *BlockModel
	cfg   SearchConfig
	rngs  *RNGFactory
	stats *SearchStats

	start time.Time

	mu   sync.Mutex
	best *Tree
}

// NewSearcher validates the configuration and builds a Searcher.
func NewSearcher(model *BlockModel, cfg SearchConfig) (*Searcher, error) {
	if model.NumBlocks() == 0 {
		return nil, fmt.Errorf("block model is empty")
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", cfg.Workers)
	}
	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %v", cfg.TimeLimit)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("hyperparameters: %w", err)
	}
	return &Searcher{
		model: model,
		cfg:   cfg,
		rngs:  NewRNGFactory(cfg.Seed),
		stats: &SearchStats{},
	}, nil
}

// Run executes the chosen strategy until the time limit and returns the
// best tree found. The deadline is anchored to a monotonic instant taken
// at entry.
func (s *Searcher) Run(strategy Strategy) (*Tree, error) {
	s.start = time.Now()
	s.mu.Lock()
	s.best = nil
	s.mu.Unlock()

	end := s.start.Add(s.cfg.TimeLimit)
	deadline := func() bool { return !time.Now().Before(end) }

	var err error
	switch strategy {
	case MultiStart:
		err = s.runMultiStart(deadline)
	case ParallelTempering:
		err = s.runTempering(deadline)
	case ParallelMoves:
		err = s.runParallelMoves(deadline)
	default:
		return nil, fmt.Errorf("unknown strategy %v", strategy)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil {
		return nil, fmt.Errorf("search finished without a solution")
	}
	return s.best, nil
}

// offerBest merges a candidate into the global best. The caller hands
// over ownership: the tree must not be mutated afterwards. Returns true
// on a strict improvement.
func (s *Searcher) offerBest(t *Tree, worker int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best != nil && t.Cost >= s.best.Cost {
		return false
	}
	s.best = t
	elapsed := time.Since(s.start)
	if err := s.cfg.Convergence.Record(elapsed, t.Cost); err != nil {
		logrus.Warnf("convergence log: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"worker":  worker,
		"cost":    t.Cost,
		"elapsed": elapsed.Seconds(),
	}).Info("new global best")
	return true
}

// BestCost returns the cost of the current global best, or the rejection
// sentinel before the first improvement.
func (s *Searcher) BestCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil {
		return CostSentinel
	}
	return s.best.Cost
}

// Stats exposes the shared move counters.
func (s *Searcher) Stats() *SearchStats {
	return s.stats
}

// Elapsed returns the wall time since Run entered.
func (s *Searcher) Elapsed() time.Duration {
	return time.Since(s.start)
}
