// Package strategy implements the top-level strategies other than the
// tree-search driver itself (C7 sequential single knapsack, C8 sequential
// value correction, C9 dichotomic search, C11 open-dimension sequential
// shrinking), described in spec.md §4.6. Each strategy repeatedly builds a
// small sub-instance and solves it via internal/search's tree-search
// driver in Knapsack or BinPacking mode.
package strategy

import (
	"context"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/search"
)

// remainingItemTypes copies inst's item types with Copies overridden by
// remaining, keeping every entry (even exhausted ones, at Copies=0) at its
// original index/ID so Solution.ItemCopies stays directly indexable by
// item type id without a remap array; branching.BuildTrapezoidSets and the
// beam search simply never place a zero-copy type.
func remainingItemTypes(inst *model.Instance, remaining []int) []model.ItemType {
	out := make([]model.ItemType, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		cp := it
		cp.Copies = remaining[i]
		cp.MinCopies = 0
		out[i] = cp
	}
	return out
}

// singleBinSubInstance builds a one-bin sub-instance over the given item
// types and objective, preserving bin type id (so a solution built against
// it has bin_type_id == bt.ID, directly splice-able).
func singleBinSubInstance(parent *model.Instance, itemTypes []model.ItemType, bt model.BinType, objective model.Objective) *model.Instance {
	bt.Copies = 1
	bt.MinCopies = 0
	return &model.Instance{
		Objective:  objective,
		Parameters: parent.Parameters,
		BinTypes:   []model.BinType{bt},
		ItemTypes:  itemTypes,
	}
}

// solveOnce runs a single bounded beam search over every guide in
// guideIDs and every resolved direction, keeping the best solution found,
// the shared primitive every sequential strategy's inner "solve via C6"
// step reduces to (spec.md §4.6).
func solveOnce(ctx context.Context, sub *model.Instance, guideIDs []int, queueSize int) *model.Solution {
	scheme, err := branching.New(sub)
	if err != nil {
		return nil
	}
	directions := search.PlanDirections(sub.Objective, len(sub.BinTypes) == 1, sub.Objective == model.ObjectiveBinPackingWithLeftovers, false)

	var best *model.Solution
	for _, gid := range guideIDs {
		for _, dir := range directions {
			result := Beam(ctx, scheme, gid, dir, queueSize)
			if result == nil {
				continue
			}
			if best == nil || result.Better(best) {
				best = result
			}
		}
	}
	return best
}

// Beam runs a single fixed-queue-size beam search, returning its best leaf
// as a Solution (nil if none found).
func Beam(ctx context.Context, scheme *branching.Scheme, guideID int, direction branching.Direction, queueSize int) *model.Solution {
	result := search.Beam(ctx, scheme, branching.Guides[guideID], []branching.Direction{direction}, queueSize)
	if result.Best == nil {
		return nil
	}
	return scheme.ToSolution(result.Best)
}

// splice merges a single-bin sub-solution into the running solution,
// decrementing the remaining-copies pool by the items it placed.
func splice(running *model.Solution, sub *model.Solution, remaining []int) {
	if sub == nil || len(sub.Bins) == 0 {
		return
	}
	running.Append(sub, nil, nil)
	for itemTypeID, n := range sub.ItemCopies {
		remaining[itemTypeID] -= n
	}
}

// solveFullInstance is solveOnce specialized for a whole (not single-bin)
// instance, used by C9's dichotomic search which needs the real bin-copy
// multiplicities rather than a one-bin-at-a-time pool.
func solveFullInstance(ctx context.Context, inst *model.Instance, objective model.Objective, guideIDs []int, queueSize int) *model.Solution {
	adjusted := *inst
	adjusted.Objective = objective
	return solveOnce(ctx, &adjusted, guideIDs, queueSize)
}

func totalRemaining(remaining []int) int {
	total := 0
	for _, r := range remaining {
		total += r
	}
	return total
}
