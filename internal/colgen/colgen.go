package colgen

import (
	"context"
	"math"
	"sort"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// Params controls the column-generation loop: how many master/pricing
// rounds to run, the beam width handed to each pricing knapsack, and the
// pivot rule used by the restricted master LP.
type Params struct {
	MaxRounds int
	QueueSize int
	PivotRule PivotRule
}

// DefaultParams returns the package's default column-generation tuning.
func DefaultParams() Params {
	return Params{MaxRounds: 50, QueueSize: 32, PivotRule: Dantzig}
}

// BestCallback is invoked whenever the rounding pass finds a new
// incumbent, mirroring the other strategies' anytime-reporting hook.
type BestCallback func(*model.Solution)

// Solve runs column generation over inst (spec.md §4.6): it seeds at most
// one column per bin type by pricing with every dual set to
// max(profit, 1), alternates solving the restricted master LP with
// pricing new columns via the knapsack tree-search driver until no column
// has negative reduced cost or MaxRounds is reached, then rounds the
// fractional master solution to an integer-feasible incumbent with the
// single greedy pass of roundToIncumbent; no limited discrepancy search
// or diving is performed.
func Solve(ctx context.Context, inst *model.Instance, params Params, onBest BestCallback) *model.Solution {
	demand := make([]int, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		demand[i] = it.Copies
	}

	columns := seedColumns(ctx, inst, params.QueueSize)
	if len(columns) == 0 {
		return nil
	}

	for round := 0; round < params.MaxRounds; round++ {
		select {
		case <-ctx.Done():
			round = params.MaxRounds
			continue
		default:
		}

		_, duals, _, feasible := solveMaster(columns, demand, params.PivotRule)
		if !feasible {
			break
		}

		added := false
		for _, bt := range inst.BinTypes {
			col := price(ctx, inst, bt, duals, params.QueueSize)
			if col == nil {
				continue
			}
			if col.ReducedCost(duals) < -1e-7 {
				columns = append(columns, *col)
				added = true
			}
		}
		if !added {
			break
		}
	}

	best := roundToIncumbent(inst, columns, demand, params.PivotRule)
	if best != nil && onBest != nil {
		onBest(best)
	}
	return best
}

// seedColumns builds at most one column per bin type by running the full
// knapsack pricing with every item type's dual set to max(profit, 1), so
// the initial master LP has columns to price against.
func seedColumns(ctx context.Context, inst *model.Instance, queueSize int) []Column {
	unitDuals := make([]float64, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		unitDuals[i] = math.Max(it.Profit, 1)
	}
	var columns []Column
	for _, bt := range inst.BinTypes {
		if col := price(ctx, inst, bt, unitDuals, queueSize); col != nil {
			columns = append(columns, *col)
		}
	}
	return columns
}

// roundToIncumbent greedily assembles an integer-feasible solution from
// the column pool: it solves the master LP for weights, orders columns by
// descending LP weight, and repeatedly appends the first column in that
// order whose bin type has copies left and which covers some unmet
// demand (a column may be picked more than once). It stops when demand is
// met or no column qualifies; there is no backtracking.
func roundToIncumbent(inst *model.Instance, columns []Column, demand []int, rule PivotRule) *model.Solution {
	if len(columns) == 0 {
		return nil
	}
	weights, _, _, feasible := solveMaster(columns, demand, rule)
	if !feasible {
		weights = make([]float64, len(columns))
	}

	order := make([]int, len(columns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	remaining := append([]int(nil), demand...)
	sol := model.NewSolution(inst)
	binCopiesUsed := make([]int, len(inst.BinTypes))

	for totalRemaining(remaining) > 0 {
		pickedAny := false
		for _, idx := range order {
			col := columns[idx]
			bt := inst.BinTypes[indexOfBinType(inst, col.BinTypeID)]
			if bt.Copies > 0 && binCopiesUsed[indexOfBinType(inst, col.BinTypeID)] >= bt.Copies {
				continue
			}
			if !coversSomeDemand(col, remaining) {
				continue
			}
			appendColumn(sol, col)
			binCopiesUsed[indexOfBinType(inst, col.BinTypeID)]++
			for i, n := range col.Counts {
				remaining[i] -= n
				if remaining[i] < 0 {
					remaining[i] = 0
				}
			}
			pickedAny = true
			break
		}
		if !pickedAny {
			break // remaining demand cannot be covered by any priced column
		}
	}
	return sol
}

func totalRemaining(remaining []int) int {
	total := 0
	for _, r := range remaining {
		total += r
	}
	return total
}

func coversSomeDemand(col Column, remaining []int) bool {
	for i, n := range col.Counts {
		if n > 0 && remaining[i] > 0 {
			return true
		}
	}
	return false
}

func indexOfBinType(inst *model.Instance, id int) int {
	for i, bt := range inst.BinTypes {
		if bt.ID == id {
			return i
		}
	}
	return 0
}

// appendColumn replays col's solution (a single bin's placements) onto
// the running incumbent.
func appendColumn(sol *model.Solution, col Column) {
	if col.Solution == nil || len(col.Solution.Bins) == 0 {
		return
	}
	for _, bin := range col.Solution.Bins {
		pos, err := sol.AddBin(col.BinTypeID, bin.Copies)
		if err != nil {
			continue
		}
		for _, item := range bin.Items {
			_ = sol.AddItem(pos, item.ItemTypeID, item.BottomLeft, item.Angle, item.Mirror)
		}
	}
}
