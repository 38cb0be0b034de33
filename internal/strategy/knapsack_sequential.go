package strategy

import (
	"context"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// SequentialSingleKnapsackParams configures C7.
type SequentialSingleKnapsackParams struct {
	Anytime        bool
	StartQueueSize int
	GuideIDs       []int
}

// DefaultSequentialSingleKnapsackParams returns the knapsack objective's
// default guide set and a conservative starting queue size.
func DefaultSequentialSingleKnapsackParams() SequentialSingleKnapsackParams {
	return SequentialSingleKnapsackParams{StartQueueSize: 16, GuideIDs: []int{4, 5}}
}

// SequentialSingleKnapsack repeatedly solves a single-bin knapsack over the
// leftover items and the next usable bin, placing the returned items and
// removing them from the pool, until no item fits or no bin remains
// (spec.md §4.6 C7). In anytime mode the queue size doubles across outer
// iterations; onBest fires after every outer iteration that improved.
func SequentialSingleKnapsack(ctx context.Context, inst *model.Instance, params SequentialSingleKnapsackParams, onBest func(*model.Solution)) *model.Solution {
	remaining := make([]int, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		remaining[i] = it.Copies
	}
	binRemaining := make([]int, len(inst.BinTypes))
	for i, bt := range inst.BinTypes {
		binRemaining[i] = bt.Copies
	}

	running := model.NewSolution(inst)
	queueSize := params.StartQueueSize
	if queueSize <= 0 {
		queueSize = 16
	}

	for totalRemaining(remaining) > 0 {
		select {
		case <-ctx.Done():
			return running
		default:
		}

		binIdx := nextUsableBin(inst, binRemaining)
		if binIdx < 0 {
			break
		}

		itemTypes := remainingItemTypes(inst, remaining)
		sub := singleBinSubInstance(inst, itemTypes, inst.BinTypes[binIdx], model.ObjectiveKnapsack)
		sol := solveOnce(ctx, sub, params.GuideIDs, queueSize)
		if sol == nil || sol.NumberOfItems == 0 {
			break
		}

		splice(running, sol, remaining)
		binRemaining[binIdx]--
		if onBest != nil {
			onBest(running)
		}

		if params.Anytime {
			queueSize *= 2
		}
	}
	return running
}

func nextUsableBin(inst *model.Instance, binRemaining []int) int {
	for i := range inst.BinTypes {
		if binRemaining[i] > 0 {
			return i
		}
	}
	return -1
}
