package colgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSimplexCoversSingleItemType solves a trivial set-cover: one column
// places 2 units, demand is 5, so the optimal fractional count is 2.5.
func TestSimplexCoversSingleItemType(t *testing.T) {
	lp := LP{
		A: [][]float64{{2}},
		B: []float64{5},
		C: []float64{1},
	}
	x, obj, feasible := lp.Solve(Dantzig)
	require.True(t, feasible)
	require.Len(t, x, 1)
	assert.InDelta(t, 2.5, x[0], 1e-6)
	assert.InDelta(t, 2.5, obj, 1e-6)
}

func TestSimplexTwoColumnsTwoItemTypes(t *testing.T) {
	// Column 0 covers 1 of item A; column 1 covers 1 of item A and 1 of
	// item B. Demand: 2 of A, 1 of B. Cheapest cover uses column 1 once
	// (covers both one A and the B) plus column 0 once for the remaining A.
	lp := LP{
		A: [][]float64{
			{1, 1}, // item A
			{0, 1}, // item B
		},
		B: []float64{2, 1},
		C: []float64{1, 1},
	}
	x, obj, feasible := lp.Solve(Bland)
	require.True(t, feasible)
	assert.InDelta(t, 2.0, obj, 1e-6)
	assert.InDelta(t, 2.0, x[0]+x[1], 1e-6) // exact total columns used
}

func TestSimplexInfeasibleWhenNoColumnCoversDemand(t *testing.T) {
	lp := LP{
		A: [][]float64{{0}},
		B: []float64{1},
		C: []float64{1},
	}
	_, _, feasible := lp.Solve(Dantzig)
	assert.False(t, feasible)
}

func TestSimplexDualsNonNegativeForCoveringLP(t *testing.T) {
	lp := LP{
		A: [][]float64{{1}},
		B: []float64{3},
		C: []float64{2},
	}
	_, duals, _, feasible := lp.SolveWithDuals(Dantzig)
	require.True(t, feasible)
	require.Len(t, duals, 1)
	assert.InDelta(t, 2.0, duals[0], 1e-6)
}
