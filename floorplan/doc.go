// Package floorplan provides the analog-placement floorplanning engine:
// a B*-tree solution representation, a contour-based packer, the composite
// cost model, and three parallel simulated-annealing search strategies.
//
// # Reading Guide
//
// Start with these three files to understand the placement kernel:
//   - tree.go: the B*-tree arena (nodes, detach/attach/swap edits, cloning)
//   - pack.go: the contour skyline algorithm mapping a tree to coordinates
//   - cost.go: area, aspect-ratio penalty, and the INL regularity penalty
//
// # Architecture
//
// A Searcher owns the run: it shares one read-only BlockModel across workers,
// hands each worker its own Tree and random source, and funnels every strict
// improvement through a mutex-guarded global-best cell. The three strategies
// differ only in how workers interact:
//   - multistart.go: independent restarts, merge at worker exit
//   - tempering.go: fixed-temperature replicas with barrier-synchronized
//     neighbor exchanges
//   - parallelmoves.go: restart loop whose every SA step races a batch of
//     candidate perturbations
//
// Convergence and summary sinks live in the trace sub-package.
package floorplan
