package floorplan

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// exchangeCoordinator names the RNG stream driving replica swaps.
const exchangeCoordinator = "exchange"

// runTempering is the medium-grained strategy: one replica per worker,
// each sampling at a fixed temperature from a geometric ladder between
// TStart and TMin. Rounds alternate two phases separated by barriers:
// every replica samples independently (phase A), then a single
// coordinator sweeps adjacent pairs and swaps them with the replica
// exchange probability (phase B). Cold replicas exploit, hot replicas
// explore, and good solutions migrate down the ladder.
func (s *Searcher) runTempering(deadline Deadline) error {
	workers := s.cfg.Workers
	replicas := make([]*Tree, workers)
	temps := temperatureLadder(s.cfg.Params.TStart, s.cfg.Params.TMin, workers)

	var initGroup errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		initGroup.Go(func() error {
			r := NewTree(s.model)
			r.Seed(s.rngs.ForWorker(i))
			r.Pack()
			r.EvaluateCost()
			replicas[i] = r
			return nil
		})
	}
	if err := initGroup.Wait(); err != nil {
		return err
	}
	s.stats.setRuns(int64(workers))

	coldest := 0
	for i := range replicas {
		if replicas[i].Cost < replicas[coldest].Cost {
			coldest = i
		}
	}
	s.offerBest(replicas[coldest], coldest)

	stepsPerSwap := s.cfg.Params.stepsPerTemp(s.model.NumBlocks())
	masterRNG := s.rngs.Derive(exchangeCoordinator)

	for !deadline() {
		// Phase A: independent sampling, one goroutine per replica. The
		// Wait is the first barrier: no exchange sees a half-finished
		// round.
		var phase errgroup.Group
		for i := 0; i < workers; i++ {
			i := i
			phase.Go(func() error {
				rng := s.rngs.ForWorker(i)
				for step := 0; step < stepsPerSwap; step++ {
					s.stats.MoveAttempted()
					cand := replicas[i].Clone()
					cand.Perturb(rng)
					cand.Pack()
					cand.EvaluateCost()
					if delta := cand.Cost - replicas[i].Cost; delta < 0 || math.Exp(-delta/temps[i]) > rng.Float64() {
						s.stats.MoveAccepted()
						replicas[i] = cand
					}
				}
				return nil
			})
		}
		if err := phase.Wait(); err != nil {
			return err
		}

		// Phase B: single-coordinator exchange sweep over adjacent pairs.
		// The exponent form accepts with certainty when the hotter
		// neighbor holds the better solution.
		for i := 0; i < workers-1; i++ {
			prob := math.Exp((replicas[i].Cost - replicas[i+1].Cost) * (1.0/temps[i] - 1.0/temps[i+1]))
			if prob > masterRNG.Float64() {
				replicas[i], replicas[i+1] = replicas[i+1], replicas[i]
			}
		}
		for i, r := range replicas {
			s.offerBest(r, i)
		}
		// Phase A of the next round starts only after this point, which
		// is the second barrier: every worker observes the exchanged
		// replicas.
	}
	return nil
}

// temperatureLadder spreads n temperatures geometrically from tMax down
// to tMin; a single worker stays at tMax.
func temperatureLadder(tMax, tMin float64, n int) []float64 {
	temps := make([]float64, n)
	if n == 1 {
		temps[0] = tMax
		return temps
	}
	alpha := math.Pow(tMin/tMax, 1.0/float64(n-1))
	for i := range temps {
		temps[i] = tMax * math.Pow(alpha, float64(i))
	}
	return temps
}
