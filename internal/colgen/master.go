package colgen

import "github.com/fontanf/packingsolver-go/internal/model"

// Column is a single-bin packing pattern: how many copies of each item
// type it places, its bin cost, and the Solution it was built from (kept
// so the final incumbent can be assembled without re-solving).
type Column struct {
	Counts    []int
	Cost      float64
	BinTypeID int
	Solution  *model.Solution
}

// ReducedCost returns Cost - sum(duals[i] * Counts[i]), the quantity the
// pricing oracle must find negative for a new column to be worth adding.
func (c Column) ReducedCost(duals []float64) float64 {
	rc := c.Cost
	for i, n := range c.Counts {
		if n == 0 {
			continue
		}
		rc -= duals[i] * float64(n)
	}
	return rc
}

// buildLP turns the current column pool and item demand into the covering
// LP: minimize sum cost_j x_j subject to sum_j counts_j[i] x_j >= demand_i.
func buildLP(columns []Column, demand []int) LP {
	m := len(demand)
	n := len(columns)
	lp := LP{
		A: make([][]float64, m),
		B: make([]float64, m),
		C: make([]float64, n),
	}
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j, col := range columns {
			if i < len(col.Counts) {
				row[j] = float64(col.Counts[i])
			}
		}
		lp.A[i] = row
		lp.B[i] = float64(demand[i])
	}
	for j, col := range columns {
		lp.C[j] = col.Cost
	}
	return lp
}

// solveMaster solves the current restricted master LP, returning the
// fractional column weights and the dual price of every item type's
// demand constraint.
func solveMaster(columns []Column, demand []int, rule PivotRule) (weights, duals []float64, obj float64, feasible bool) {
	lp := buildLP(columns, demand)
	return lp.SolveWithDuals(rule)
}
