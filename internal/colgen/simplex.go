// Package colgen implements column generation (C10) described in
// spec.md §4.6: a set-cover master LP over single-bin packing columns
// priced by the tree-search driver in Knapsack mode, with a greedy
// rounding pass for an integer-feasible incumbent (no limited discrepancy
// search or diving is performed).
package colgen

import "math"

// PivotRule selects the entering-variable rule; bound to the LP_SOLVER
// environment variable by cmd/packingsolver since no general-purpose LP
// library is available to this repository (see DESIGN.md).
type PivotRule int

const (
	// Dantzig enters the column with the most negative reduced cost;
	// fast in practice but can cycle on degenerate tableaus.
	Dantzig PivotRule = iota
	// Bland enters the lowest-indexed column with a negative reduced
	// cost; provably cycle-free, used as the safe fallback.
	Bland
)

// LP is a covering linear program: minimize c^T x subject to A x >= b,
// x >= 0, with b assumed entrywise non-negative (true for the master's
// demand vector, one row per item type).
type LP struct {
	A [][]float64
	B []float64
	C []float64
}

const maxSimplexIterations = 10000

// Solve runs two-phase simplex and returns the optimal x (length
// len(C)), the optimal objective value, and whether the LP is feasible.
func (lp LP) Solve(rule PivotRule) (x []float64, objective float64, feasible bool) {
	x, _, objective, feasible = lp.SolveWithDuals(rule)
	return x, objective, feasible
}

// SolveWithDuals is Solve but also returns the shadow price of every
// constraint row, the reduced costs column-generation's pricing step needs
// to weight the next knapsack's item profits.
func (lp LP) SolveWithDuals(rule PivotRule) (x []float64, duals []float64, objective float64, feasible bool) {
	m := len(lp.A)
	if m == 0 {
		return make([]float64, len(lp.C)), nil, 0, true
	}
	n := len(lp.C)

	// Tableau columns: n decision vars, m surplus vars (coeff -1), m
	// artificial vars (coeff +1), then RHS.
	totalCols := n + m + m + 1
	tableau := make([][]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, totalCols)
		copy(row, lp.A[i])
		row[n+i] = -1
		row[n+m+i] = 1
		row[totalCols-1] = lp.B[i]
		if row[totalCols-1] < 0 {
			// Normalize so every RHS is non-negative, flipping the row's
			// sense (A x >= b with b<0 is never binding given x>=0, but
			// keep the invariant the phase-1 basis relies on).
			for k := range row {
				row[k] = -row[k]
			}
		}
		tableau[i] = row
	}
	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + m + i
	}

	phase1Cost := make([]float64, totalCols)
	for i := 0; i < m; i++ {
		phase1Cost[n+m+i] = 1
	}
	if !runSimplex(tableau, basis, phase1Cost, rule) {
		return nil, nil, 0, false
	}
	phase1Obj := reducedObjective(tableau, basis, phase1Cost)
	if phase1Obj > 1e-7 {
		return nil, nil, 0, false // no feasible point covers the demand
	}

	// Drop artificial columns (set their phase-2 cost to +inf so they
	// never re-enter) and run phase 2 on the real objective.
	phase2Cost := make([]float64, totalCols)
	copy(phase2Cost, lp.C)
	for j := n + m; j < n+m+m; j++ {
		phase2Cost[j] = math.Inf(1)
	}
	if !runSimplex(tableau, basis, phase2Cost, rule) {
		return nil, nil, 0, false
	}

	x = make([]float64, n)
	for i, b := range basis {
		if b < n {
			x[b] = tableau[i][totalCols-1]
		}
	}
	objective = 0
	for j, v := range x {
		objective += lp.C[j] * v
	}

	duals = make([]float64, m)
	for i := range duals {
		surplusCol := n + i
		total := 0.0
		for row := 0; row < m; row++ {
			total += basisCost(phase2Cost, basis[row]) * tableau[row][surplusCol]
		}
		// The surplus column holds B^-1 * (-e_i), so total is -y_i.
		duals[i] = -total
	}
	return x, duals, objective, true
}

// runSimplex pivots tableau/basis to optimality under cost, returning
// false only if it exceeds the iteration cap (a degenerate-cycling
// safeguard; Bland's rule avoids this in practice).
func runSimplex(tableau [][]float64, basis []int, cost []float64, rule PivotRule) bool {
	m := len(tableau)
	cols := len(cost)

	for iter := 0; iter < maxSimplexIterations; iter++ {
		reduced := make([]float64, cols)
		for j := 0; j < cols; j++ {
			cb := 0.0
			for i := 0; i < m; i++ {
				cb += basisCost(cost, basis[i]) * tableau[i][j]
			}
			reduced[j] = cost[j] - cb
		}

		enter := -1
		switch rule {
		case Bland:
			for j := 0; j < cols-1; j++ {
				if reduced[j] < -1e-9 {
					enter = j
					break
				}
			}
		default:
			best := -1e-9
			for j := 0; j < cols-1; j++ {
				if reduced[j] < best {
					best = reduced[j]
					enter = j
				}
			}
		}
		if enter == -1 {
			return true // optimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if tableau[i][enter] > 1e-9 {
				ratio := tableau[i][cols-1] / tableau[i][enter]
				if ratio < bestRatio-1e-12 || (ratio < bestRatio+1e-12 && (leave == -1 || basis[i] < basis[leave])) {
					bestRatio = ratio
					leave = i
				}
			}
		}
		if leave == -1 {
			return true // unbounded in the feasible region this package constructs; treat as done
		}

		pivot(tableau, leave, enter)
		basis[leave] = enter
	}
	return false
}

func basisCost(cost []float64, idx int) float64 {
	if math.IsInf(cost[idx], 1) {
		return 1e12
	}
	return cost[idx]
}

func pivot(tableau [][]float64, row, col int) {
	m := len(tableau)
	pv := tableau[row][col]
	for j := range tableau[row] {
		tableau[row][j] /= pv
	}
	for i := 0; i < m; i++ {
		if i == row {
			continue
		}
		factor := tableau[i][col]
		if factor == 0 {
			continue
		}
		for j := range tableau[i] {
			tableau[i][j] -= factor * tableau[row][j]
		}
	}
}

func reducedObjective(tableau [][]float64, basis []int, cost []float64) float64 {
	total := 0.0
	for i, b := range basis {
		total += basisCost(cost, b) * tableau[i][len(tableau[i])-1]
	}
	return total
}
