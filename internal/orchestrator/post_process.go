package orchestrator

import (
	"context"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/search"
)

// postProcessLeftovers implements spec.md §4.7 point 5: for
// BinPackingWithLeftovers in not-anytime mode, re-solve the last bin
// alone with the leftover-emphasizing guides {2, 3} and replace it iff
// the new arrangement places every item that was in it.
func postProcessLeftovers(ctx context.Context, inst *model.Instance, sol *model.Solution, params Params) *model.Solution {
	if sol == nil || len(sol.Bins) == 0 {
		return sol
	}
	lastIdx := len(sol.Bins) - 1
	lastBin := sol.Bins[lastIdx]

	counts := make([]int, len(inst.ItemTypes))
	for _, item := range lastBin.Items {
		counts[item.ItemTypeID]++
	}

	itemTypes := make([]model.ItemType, len(inst.ItemTypes))
	for i, it := range inst.ItemTypes {
		cp := it
		cp.Copies = counts[i]
		cp.MinCopies = 0
		itemTypes[i] = cp
	}

	bt := inst.BinTypes[lastBin.BinTypeID]
	sub := &model.Instance{
		Objective:  model.ObjectiveBinPackingWithLeftovers,
		Parameters: inst.Parameters,
		BinTypes:   []model.BinType{{ID: bt.ID, Shape: bt.Shape, Defects: bt.Defects, Cost: bt.Cost, Copies: 1}},
		ItemTypes:  itemTypes,
	}

	scheme, err := branching.New(sub)
	if err != nil {
		return sol
	}
	directions := search.PlanDirections(sub.Objective, true, true, false)

	var best *model.Solution
	for _, guideID := range []int{2, 3} {
		result := search.Beam(ctx, scheme, branching.Guides[guideID], directions, params.QueueSizeTreeSearch)
		if result.Best == nil {
			continue
		}
		candidate := scheme.ToSolution(result.Best)
		if best == nil || candidate.Better(best) {
			best = candidate
		}
	}
	if best == nil || !best.Full() {
		return sol
	}

	rebuilt := model.NewSolution(inst)
	for i := 0; i < lastIdx; i++ {
		bin := sol.Bins[i]
		pos, err := rebuilt.AddBin(bin.BinTypeID, bin.Copies)
		if err != nil {
			return sol
		}
		for _, item := range bin.Items {
			if err := rebuilt.AddItem(pos, item.ItemTypeID, item.BottomLeft, item.Angle, item.Mirror); err != nil {
				return sol
			}
		}
	}
	pos, err := rebuilt.AddBin(lastBin.BinTypeID, lastBin.Copies)
	if err != nil {
		return sol
	}
	for _, bin := range best.Bins {
		for _, item := range bin.Items {
			if err := rebuilt.AddItem(pos, item.ItemTypeID, item.BottomLeft, item.Angle, item.Mirror); err != nil {
				return sol
			}
		}
	}
	return rebuilt
}
