package search

import (
	"context"
	"math"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/model"
)

// DefaultGrowthFactor is the queue-size growth factor an iterative worker
// uses between outer iterations, per spec.md §4.5.
const DefaultGrowthFactor = 1.5

// BestCallback is invoked every time a worker improves on its own best
// solution so far.
type BestCallback func(*model.Solution)

// Worker runs one (guide, direction, growth_factor) iterative beam search:
// starting at queue size 1, it repeatedly beam-searches, grows the queue
// size, and keeps the best leaf solution seen, until ctx is done or a
// search empties its frontier without trimming any node (every branch
// explored at that queue size).
func Worker(ctx context.Context, scheme *branching.Scheme, guideID int, direction branching.Direction, growthFactor float64, onBest BestCallback) *model.Solution {
	if growthFactor <= 1 {
		growthFactor = DefaultGrowthFactor
	}
	guide := branching.Guides[guideID]
	directions := []branching.Direction{direction}

	queueSize := 1
	var best *model.Solution

	for {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		result := Beam(ctx, scheme, guide, directions, queueSize)
		if result.Best != nil {
			candidate := scheme.ToSolution(result.Best)
			if best == nil || candidate.Better(best) {
				best = candidate
				if onBest != nil {
					onBest(best)
				}
			}
		}

		if result.Optimal {
			return best
		}

		queueSize = int(math.Max(float64(queueSize+1), math.Ceil(float64(queueSize)*growthFactor)))
	}
}

// PlanDirections resolves the objective's direction set per spec.md §4.5's
// table; callers fan out one Worker per element returned.
func PlanDirections(obj model.Objective, singleBinType, binPackingWithLeftovers, allFullRotationSquareBins bool) []branching.Direction {
	if allFullRotationSquareBins {
		return []branching.Direction{branching.LeftToRightBottomToTop}
	}
	switch obj {
	case model.ObjectiveOpenDimensionX:
		return []branching.Direction{branching.LeftToRightBottomToTop, branching.LeftToRightTopToBottom}
	case model.ObjectiveOpenDimensionY:
		return []branching.Direction{branching.BottomToTopLeftToRight, branching.BottomToTopRightToLeft}
	}
	if !singleBinType {
		return []branching.Direction{branching.AnyDirection}
	}
	if binPackingWithLeftovers {
		return []branching.Direction{
			branching.LeftToRightBottomToTop, branching.LeftToRightTopToBottom,
			branching.RightToLeftBottomToTop, branching.RightToLeftTopToBottom,
		}
	}
	return []branching.Direction{
		branching.LeftToRightBottomToTop, branching.RightToLeftTopToBottom,
		branching.LeftToRightTopToBottom, branching.RightToLeftBottomToTop,
	}
}
