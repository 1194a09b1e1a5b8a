package floorplan

import "golang.org/x/sync/errgroup"

// runMultiStart is the coarse-grained strategy: every worker repeatedly
// seeds a fresh random tree and runs a full SA schedule, keeping its own
// best. Workers share nothing on the hot path; each merges its best into
// the global cell once, on exit.
func (s *Searcher) runMultiStart(deadline Deadline) error {
	g := new(errgroup.Group)
	for w := 0; w < s.cfg.Workers; w++ {
		worker := w
		g.Go(func() error {
			rng := s.rngs.ForWorker(worker)
			var workerBest *Tree
			for !deadline() {
				s.stats.RunStarted()
				initial := NewTree(s.model)
				initial.Seed(rng)
				initial.Pack()
				initial.EvaluateCost()

				runBest := anneal(initial, s.cfg.Params, rng, deadline, s.stats)
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
