package strategy

import (
	"context"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// SequentialValueCorrectionParams configures C8.
type SequentialValueCorrectionParams struct {
	Iterations int
	QueueSize  int
	GuideIDs   []int
}

// DefaultSequentialValueCorrectionParams returns the standard SVC loop
// bound and the knapsack guide set.
func DefaultSequentialValueCorrectionParams() SequentialValueCorrectionParams {
	return SequentialValueCorrectionParams{Iterations: 20, QueueSize: 32, GuideIDs: []int{4, 5}}
}

// SequentialValueCorrection solves a single-bin knapsack over every item
// at each iteration, then rescales profits by the standard SVC rule: items
// that fit "too easily" (placed while the bin still had slack of the same
// item type available) lose relative weight, items left out gain it
// (spec.md §4.6 C8). Terminates after params.Iterations or ctx.Done.
func SequentialValueCorrection(ctx context.Context, inst *model.Instance, params SequentialValueCorrectionParams, onBest func(*model.Solution)) *model.Solution {
	if params.Iterations <= 0 {
		params.Iterations = 20
	}
	if params.QueueSize <= 0 {
		params.QueueSize = 32
	}
	if len(inst.BinTypes) == 0 {
		return model.NewSolution(inst)
	}

	profits := make([]float64, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		profits[i] = it.Profit
		if profits[i] <= 0 {
			profits[i] = it.Area()
		}
	}

	var best *model.Solution
	bt := inst.BinTypes[0]

	for iter := 0; iter < params.Iterations; iter++ {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		itemTypes := make([]model.ItemType, len(inst.ItemTypes))
		for i, it := range inst.ItemTypes {
			cp := it
			cp.Profit = profits[i]
			itemTypes[i] = cp
		}
		sub := singleBinSubInstance(inst, itemTypes, bt, model.ObjectiveKnapsack)
		sol := solveOnce(ctx, sub, params.GuideIDs, params.QueueSize)
		if sol == nil {
			continue
		}

		if best == nil || sol.Better(best) {
			best = sol
			if onBest != nil {
				onBest(best)
			}
		}

		updateProfitsSVC(inst, sol, profits)
	}
	return best
}

// updateProfitsSVC applies the standard value-correction rescaling:
// placed item types are discounted (they "fit too easily"), unplaced item
// types not yet at their maximum copies are boosted, each by a fixed
// factor per call; the factors compound across iterations with no cap.
func updateProfitsSVC(inst *model.Instance, sol *model.Solution, profits []float64) {
	const discount = 0.95
	const boost = 1.05
	for i, it := range inst.ItemTypes {
		placed := sol.ItemCopies[i]
		switch {
		case placed >= it.Copies && it.Copies > 0:
			profits[i] *= discount
		case placed < it.Copies:
			profits[i] *= boost
		}
		if profits[i] <= 0 {
			profits[i] = it.Area()
		}
	}
}
