package strategy

import (
	"context"
	"math"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// DichotomicSearchParams configures C9.
type DichotomicSearchParams struct {
	QueueSize  int
	GuideIDs   []int
	Iterations int // binary-search step budget
}

// DefaultDichotomicSearchParams returns a conservative step budget and the
// bin-packing guide set.
func DefaultDichotomicSearchParams() DichotomicSearchParams {
	return DichotomicSearchParams{QueueSize: 16, GuideIDs: []int{0, 1}, Iterations: 12}
}

// DichotomicSearch binary-searches over a target leftover fraction w in
// [0, 1] for VariableSizedBinPacking (spec.md §4.6 C9): at each candidate
// w, every bin's usable area is shrunk to (1-w) of its true area (modeling
// "reject any solution whose waste percentage exceeds w"); if a full
// packing is found the search tightens (decreases w), otherwise it
// relaxes (increases w, geometrically, until a first feasible w is
// bracketed). Only meaningful for VariableSizedBinPacking; returns nil for
// any other objective.
func DichotomicSearch(ctx context.Context, inst *model.Instance, params DichotomicSearchParams, onBest func(*model.Solution)) *model.Solution {
	if inst.Objective != model.ObjectiveVariableSizedBinPacking {
		return nil
	}
	if params.Iterations <= 0 {
		params.Iterations = 12
	}
	if params.QueueSize <= 0 {
		params.QueueSize = 16
	}

	var best *model.Solution
	lo, hi := 0.0, 1.0
	// Bracket an initial feasible hi by geometric growth from a small w.
	w := 0.05
	for i := 0; i < params.Iterations; i++ {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		shrunk := shrinkBinAreas(inst, w)
		sol := solveFullInstance(ctx, shrunk, model.ObjectiveVariableSizedBinPacking, params.GuideIDs, params.QueueSize)
		feasible := sol != nil && sol.Full()

		if feasible {
			if best == nil || sol.Better(best) {
				best = sol
				if onBest != nil {
					onBest(best)
				}
			}
			hi = w
			w = (lo + w) / 2
		} else {
			lo = w
			if hi <= lo {
				w = 1 - (1-w)/2
			} else {
				w = (w + hi) / 2
			}
		}
	}
	return best
}

// shrinkBinAreas returns a copy of inst whose bin shapes are scaled so
// their area is (1-w) of the original, approximating the source's
// "replace bins of area A with area (1-w)*A" rule via a uniform isotropic
// scale (sqrt(1-w) per axis), which preserves shape type and aspect ratio.
func shrinkBinAreas(inst *model.Instance, w float64) *model.Instance {
	scale := 1.0
	switch {
	case w >= 1:
		scale = 0
	case w > 0:
		scale = math.Sqrt(1 - w)
	}
	bins := make([]model.BinType, len(inst.BinTypes))
	for i, bt := range inst.BinTypes {
		bt.Shape = bt.Shape.Scale(scale)
		bins[i] = bt
	}
	return &model.Instance{
		Objective:  inst.Objective,
		Parameters: inst.Parameters,
		BinTypes:   bins,
		ItemTypes:  inst.ItemTypes,
	}
}
