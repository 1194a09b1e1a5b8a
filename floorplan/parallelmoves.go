package floorplan

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// runParallelMoves is the fine-grained strategy: the same restart loop as
// multistart, but every SA step perturbs the current solution W ways in
// parallel and feeds only the cheapest candidate to the Metropolis test.
// The batch Wait is the per-step barrier. Each candidate gets its own
// generator seeded from a fresh draw of the worker stream, so the batch
// stays deterministic given the worker stream yet uncorrelated within the
// step. Greedier per step than plain SA; worth the synchronization only
// once pack+cost dominates it.
func (s *Searcher) runParallelMoves(deadline Deadline) error {
	g := new(errgroup.Group)
	for w := 0; w < s.cfg.Workers; w++ {
		worker := w
		g.Go(func() error {
			rng := s.rngs.ForWorker(worker)
			var workerBest *Tree
			for !deadline() {
				s.stats.RunStarted()
				current := NewTree(s.model)
				current.Seed(rng)
				current.Pack()
				current.EvaluateCost()
				runBest := current

				steps := s.cfg.Params.stepsPerTemp(s.model.NumBlocks())
				for temp := s.cfg.Params.TStart; temp > s.cfg.Params.TMin && !deadline(); temp *= s.cfg.Params.CoolingRate {
					for i := 0; i < steps; i++ {
						winner := s.raceCandidates(current, rng.Int63())

						for k := 0; k < s.cfg.Workers; k++ {
							s.stats.MoveAttempted()
						}
						if delta := winner.Cost - current.Cost; delta < 0 || math.Exp(-delta/temp) > rng.Float64() {
							s.stats.MoveAccepted()
							current = winner
							if current.Cost < runBest.Cost {
								runBest = current
							}
						}
					}
				}

				if workerBest == nil || runBest.Cost < workerBest.Cost {
					workerBest = runBest
				}
			}
			if workerBest != nil {
				s.offerBest(workerBest, worker)
			}
			return nil
		})
	}
	return g.Wait()
}

// raceCandidates perturbs current W ways concurrently and returns the
// cheapest result. baseSeed decorrelates the batch from every other batch.
func (s *Searcher) raceCandidates(current *Tree, baseSeed int64) *Tree {
	candidates := make([]*Tree, s.cfg.Workers)
	var batch errgroup.Group
	for k := 0; k < s.cfg.Workers; k++ {
		k := k
		batch.Go(func() error {
			local := rand.New(rand.NewSource(baseSeed + int64(k)))
			cand := current.Clone()
			cand.Perturb(local)
			cand.Pack()
			cand.EvaluateCost()
			candidates[k] = cand
			return nil
		})
	}
	// The Wait is the batch barrier: the step commits only after every
	// candidate is packed and costed.
	if err := batch.Wait(); err != nil {
		return current
	}

	winner := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Cost < winner.Cost {
			winner = cand
		}
	}
	return winner
}
