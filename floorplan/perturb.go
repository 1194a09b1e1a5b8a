package floorplan

import "math/rand"

// Perturb applies one random move to the tree, drawn with the op split
// rotate:swap:move = 4:4:3 over a uniform integer in [0, 10]:
//
//   - rotate: redraw one node's dimension option (the redraw may land on
//     the current option; a single-option block is a no-op)
//   - swap: exchange the payloads of two nodes (same handle drawn twice is
//     a no-op)
//   - move: detach one node and re-attach it under a different node on a
//     random side
//
// Every node's width/height is refreshed afterwards. Trees with fewer
// than two nodes are left untouched. Perturb does not pack; callers run
// Pack and EvaluateCost on the perturbed tree.
func (t *Tree) Perturb(rng *rand.Rand) {
	n := len(t.Nodes)
	if n <= 1 {
		return
	}

	switch op := rng.Intn(11); {
	case op <= 3: // rotate
		u := rng.Intn(n)
		opts := t.model.Blocks[t.Nodes[u].BlockID].Dimensions
		if len(opts) > 1 {
			t.Nodes[u].DimIdx = rng.Intn(len(opts))
		}
	case op <= 7: // swap
		a, b := rng.Intn(n), rng.Intn(n)
		if a != b {
			t.SwapPayload(a, b)
		}
	default: // move
		u := rng.Intn(n)
		p := rng.Intn(n)
		for p == u {
			p = rng.Intn(n)
		}
		t.Detach(u)
		t.Attach(u, p, rng.Intn(2) == 0)
	}

	t.RefreshDims()
}
