package colgen

import (
	"context"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/search"
)

// price runs the knapsack pricing oracle (C6 in Knapsack mode) over bin
// type bt, with every item type's profit set to its current dual price
// (items with a non-positive dual are excluded — they can never help
// reduced cost), and returns the resulting Column.
func price(ctx context.Context, inst *model.Instance, bt model.BinType, duals []float64, queueSize int) *Column {
	itemTypes := make([]model.ItemType, len(inst.ItemTypes))
	anyPositive := false
	for i, it := range inst.ItemTypes {
		cp := it
		cp.Profit = duals[i]
		if cp.Profit <= 0 {
			cp.Copies = 0
		} else {
			anyPositive = true
		}
		itemTypes[i] = cp
	}
	if !anyPositive {
		return nil
	}

	sub := &model.Instance{
		Objective:  model.ObjectiveKnapsack,
		Parameters: inst.Parameters,
		BinTypes:   []model.BinType{{ID: 0, Shape: bt.Shape, Copies: 1}},
		ItemTypes:  itemTypes,
	}
	scheme, err := branching.New(sub)
	if err != nil {
		return nil
	}

	var best *model.Solution
	for _, guideID := range []int{4, 5} {
		result := search.Beam(ctx, scheme, branching.Guides[guideID], []branching.Direction{branching.LeftToRightBottomToTop}, queueSize)
		if result.Best == nil {
			continue
		}
		candidate := scheme.ToSolution(result.Best)
		if best == nil || candidate.Better(best) {
			best = candidate
		}
	}
	if best == nil || best.NumberOfItems == 0 {
		return nil
	}

	counts := make([]int, len(inst.ItemTypes))
	copy(counts, best.ItemCopies)
	return &Column{Counts: counts, Cost: bt.EffectiveCost(), BinTypeID: bt.ID, Solution: best}
}
