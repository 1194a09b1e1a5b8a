package floorplan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Hyperparameters {
	return Hyperparameters{TStart: 100, TMin: 0.1, CoolingRate: 0.9, StepsPerTempFactor: 2.0}
}

func neverExpires() bool { return false }

func TestHyperparameters_Validate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Hyperparameters)
	}{
		{"zero t_start", func(h *Hyperparameters) { h.TStart = 0 }},
		{"zero t_min", func(h *Hyperparameters) { h.TMin = 0 }},
		{"t_min above t_start", func(h *Hyperparameters) { h.TMin = h.TStart * 2 }},
		{"cooling rate one", func(h *Hyperparameters) { h.CoolingRate = 1.0 }},
		{"negative steps factor", func(h *Hyperparameters) { h.StepsPerTempFactor = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testParams()
			tc.mutate(&h)
			assert.Error(t, h.Validate())
		})
	}
	assert.NoError(t, testParams().Validate())
}

func TestAnneal_BestNeverWorseThanInitial(t *testing.T) {
	// GIVEN a packed random initial solution
	model := multiDimModel(8)
	rng := rand.New(rand.NewSource(41))
	initial := NewTree(model)
	initial.Seed(rng)
	initial.Pack()
	initial.EvaluateCost()
	initialCost := initial.Cost

	// WHEN a full schedule runs
	stats := &SearchStats{}
	best := anneal(initial, testParams(), rng, neverExpires, stats)

	// THEN the result is at least as good as the start, fully evaluated,
	// and still a valid tree
	require.NotNil(t, best)
	assert.LessOrEqual(t, best.Cost, initialCost)
	assert.Less(t, best.Cost, CostSentinel)
	checkInvariants(t, best)
	assert.Greater(t, stats.MovesTotal(), int64(0))
}

func TestAnneal_CountsMovesAndAcceptances(t *testing.T) {
	model := multiDimModel(5)
	rng := rand.New(rand.NewSource(43))
	initial := NewTree(model)
	initial.Seed(rng)
	initial.Pack()
	initial.EvaluateCost()

	stats := &SearchStats{}
	anneal(initial, testParams(), rng, neverExpires, stats)

	assert.Greater(t, stats.MovesTotal(), int64(0))
	assert.GreaterOrEqual(t, stats.MovesTotal(), stats.MovesAccepted())
	ratio := stats.AcceptRatio()
	assert.GreaterOrEqual(t, ratio, 0.0)
	assert.LessOrEqual(t, ratio, 1.0)
}

func TestAnneal_ExpiredDeadline_ReturnsInitial(t *testing.T) {
	// GIVEN a deadline that is already over
	model := multiDimModel(5)
	rng := rand.New(rand.NewSource(47))
	initial := NewTree(model)
	initial.Seed(rng)
	initial.Pack()
	initial.EvaluateCost()

	stats := &SearchStats{}
	best := anneal(initial, testParams(), rng, func() bool { return true }, stats)

	// THEN no moves run and the initial solution comes straight back
	assert.Equal(t, int64(0), stats.MovesTotal())
	assert.Equal(t, initial.Cost, best.Cost)
}

func TestHyperparameters_StepsPerTemp_FloorsAtOne(t *testing.T) {
	h := Hyperparameters{TStart: 10, TMin: 1, CoolingRate: 0.5, StepsPerTempFactor: 0.1}
	assert.Equal(t, 1, h.stepsPerTemp(3))
	assert.Equal(t, 20, Hyperparameters{StepsPerTempFactor: 2}.stepsPerTemp(10))
}
