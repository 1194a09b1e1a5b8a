package floorplan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// CostSentinel marks a solution the annealer must reject: degenerate
	// geometry or a not-yet-evaluated tree.
	CostSentinel = 1e18

	weightAreaAR = 0.8
	weightINL    = 0.2

	// degenerateEps guards the chip-area check and the INL regression
	// denominator.
	degenerateEps = 1e-9
)

// EvaluateCost computes the composite cost of a packed tree and stores it
// on the tree along with the INL term. The cost blends chip area scaled by
// an aspect-ratio penalty with the INL regularity penalty. Evaluation is a
// pure function of the packed coordinates: re-evaluating an unchanged tree
// yields the same cost.
func (t *Tree) EvaluateCost() {
	if t.ChipArea < degenerateEps {
		t.Cost = CostSentinel
		return
	}

	ar := 1e9
	if t.ChipHeight > degenerateEps {
		ar = math.Max(t.ChipWidth/t.ChipHeight, t.ChipHeight/t.ChipWidth)
	}

	fAR := 0.0
	switch {
	case ar < 0.5:
		fAR = 2.0 * (0.5 - ar)
	case ar > 2.0:
		fAR = ar - 2.0
	}
	areaAR := t.ChipArea * (1.0 + fAR)

	t.INL = t.computeINL()
	t.Cost = weightAreaAR*areaAR + weightINL*t.INL
}

// computeINL measures how far the cumulative center-distance series
// deviates from linearity. Squared distances from each block center to the
// chip center are accumulated in natural block-name order; the series is
// fit with a least-squares line and the maximum absolute deviation from
// that line is the INL. Fewer than two blocks, or a degenerate regression
// denominator, yield 0.
func (t *Tree) computeINL() float64 {
	n := len(t.Nodes)
	if n == 0 {
		return 0
	}

	xc, yc := t.ChipWidth/2.0, t.ChipHeight/2.0

	type blockDist struct {
		name   string
		distSq float64
	}
	dists := make([]blockDist, n)
	for i := range t.Nodes {
		node := &t.Nodes[i]
		cx := node.X + node.Width/2.0
		cy := node.Y + node.Height/2.0
		dists[i] = blockDist{
			name:   t.model.Blocks[node.BlockID].Name,
			distSq: (cx-xc)*(cx-xc) + (cy-yc)*(cy-yc),
		}
	}
	sort.Slice(dists, func(i, j int) bool {
		return LessBlockName(dists[i].name, dists[j].name)
	})

	if n < 2 {
		return 0
	}

	ks := make([]float64, n)
	series := make([]float64, n)
	sum := 0.0
	sumK, sumK2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		k := float64(i + 1)
		sum += dists[i].distSq
		ks[i] = k
		series[i] = sum
		sumK += k
		sumK2 += k * k
	}

	if math.Abs(float64(n)*sumK2-sumK*sumK) < degenerateEps {
		return 0
	}
	alpha, beta := stat.LinearRegression(ks, series, nil, false)

	maxDev := 0.0
	for i := 0; i < n; i++ {
		if dev := math.Abs(series[i] - (beta*ks[i] + alpha)); dev > maxDev {
			maxDev = dev
		}
	}
	return maxDev
}
