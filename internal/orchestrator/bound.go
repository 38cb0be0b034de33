package orchestrator

import (
	"math"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// AreaBound computes the one-dimensional area bound described in
// spec.md §4.7.1: project every item to a width of ceil(item area) and
// every bin to a width of floor(bin area), then bound the resulting 1D
// problem with a minimal subset-sum/DP oracle (no general 1D solver is
// part of this repository — see DESIGN.md).
//
// For Knapsack it is an upper bound on profit obtainable from a single
// bin width; for BinPacking/BinPackingWithLeftovers/VariableSizedBinPacking
// it is a lower bound on the number of bins needed. For
// VariableSizedBinPacking the value is also a bin count, not a bin cost.
func AreaBound(inst *model.Instance) float64 {
	switch inst.Objective {
	case model.ObjectiveKnapsack:
		return knapsackAreaBound(inst)
	default:
		return binCountAreaBound(inst)
	}
}

// knapsackAreaBound solves a bounded knapsack (each copy of an item type
// is a separate 0/1 item, weight = ceil(area), value = profit) against the largest available bin width via DP, returning the
// optimal profit as an upper bound for the true 2D problem (any 2D
// feasible packing has item areas that also fit the 1D relaxation).
func knapsackAreaBound(inst *model.Instance) float64 {
	if len(inst.BinTypes) == 0 {
		return 0
	}
	capacity := 0
	for _, bt := range inst.BinTypes {
		w := int(math.Floor(bt.Area()))
		if w > capacity {
			capacity = w
		}
	}
	if capacity <= 0 {
		return 0
	}

	dp := make([]float64, capacity+1)
	for _, it := range inst.ItemTypes {
		weight := int(math.Ceil(it.Area()))
		if weight <= 0 {
			continue
		}
		for copy := 0; copy < it.Copies; copy++ {
			for c := capacity; c >= weight; c-- {
				if dp[c-weight]+it.Profit > dp[c] {
					dp[c] = dp[c-weight] + it.Profit
				}
			}
		}
	}
	best := 0.0
	for _, v := range dp {
		if v > best {
			best = v
		}
	}
	return best
}

// binCountAreaBound returns ceil(total item area / largest bin area), a
// lower bound on the number of bins any feasible packing needs.
func binCountAreaBound(inst *model.Instance) float64 {
	if len(inst.BinTypes) == 0 {
		return 0
	}
	maxBinArea := 0.0
	for _, bt := range inst.BinTypes {
		if a := math.Floor(bt.Area()); a > maxBinArea {
			maxBinArea = a
		}
	}
	if maxBinArea <= 0 {
		return 0
	}
	totalItemArea := 0.0
	for _, it := range inst.ItemTypes {
		totalItemArea += math.Ceil(it.Area()) * float64(it.Copies)
	}
	return math.Ceil(totalItemArea / maxBinArea)
}
