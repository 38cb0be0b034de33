package strategy

import (
	"context"
	"math"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
)

// OpenDimensionParams configures C11.
type OpenDimensionParams struct {
	QueueSize    int
	GuideIDs     []int
	AspectRatioY float64 // bin height = x * AspectRatioY
	Iterations   int
}

// DefaultOpenDimensionParams returns a square aspect ratio and the
// bin-packing guide set.
func DefaultOpenDimensionParams() OpenDimensionParams {
	return OpenDimensionParams{QueueSize: 16, GuideIDs: []int{0, 1}, AspectRatioY: 1, Iterations: 20}
}

// OpenDimensionSequential solves OpenDimensionX/Y by iteratively shrinking
// a single bounding box (spec.md §4.6 C11): pick an initial side x from
// the configured aspect ratio and total item area, solve BinPacking on a
// bin of size (x, x*ratio); if every item placed, shrink x to
// 0.99*max(actual x-extent, y-extent/ratio) (but never below the
// area-implied lower bound) and repeat; stop at the first infeasible
// sub-instance. inst must carry exactly one bin type (the open-dimension
// invariant, model.Instance.Validate) whose id is reused for the result.
func OpenDimensionSequential(ctx context.Context, inst *model.Instance, params OpenDimensionParams, onBest func(*model.Solution)) *model.Solution {
	if !inst.Objective.IsOpenDimension() || len(inst.BinTypes) != 1 {
		return nil
	}
	if params.QueueSize <= 0 {
		params.QueueSize = 16
	}
	if params.Iterations <= 0 {
		params.Iterations = 20
	}
	ratio := params.AspectRatioY
	if ratio <= 0 {
		ratio = 1
	}
	realBinID := inst.BinTypes[0].ID

	totalItemArea := inst.TotalItemArea()
	lowerBoundX := math.Sqrt(totalItemArea / ratio)
	x := initialGuessX(inst, ratio, lowerBoundX)

	var best *model.Solution
	for i := 0; i < params.Iterations; i++ {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		sub := &model.Instance{
			Objective:  model.ObjectiveBinPacking,
			Parameters: inst.Parameters,
			BinTypes:   []model.BinType{{ID: 0, Shape: geom.NewRectangle(x, x*ratio), Copies: 1}},
			ItemTypes:  inst.ItemTypes,
		}
		sol := solveOnce(ctx, sub, params.GuideIDs, params.QueueSize)
		if sol == nil || !sol.Full() {
			break
		}

		best = transplantSingleBin(sol, inst, realBinID)
		if onBest != nil {
			onBest(best)
		}

		extent := math.Max(sol.XMax, sol.YMax/ratio)
		next := 0.99 * extent
		if next < lowerBoundX {
			next = lowerBoundX
		}
		if next >= x {
			break
		}
		x = next
	}
	return best
}

// initialGuessX seeds the first sub-instance's width from a rectangle
// covering of every item copy's shape (C11's original_source analogue,
// compute_covering_with_rectangle), summing the covering area across all
// copies rather than the raw polygon area so concave/holed shapes don't
// start the shrinker below their true footprint. Falls back to
// lowerBoundX*1.5 if the covering yields nothing larger.
func initialGuessX(inst *model.Instance, ratio, lowerBoundX float64) float64 {
	var coveredArea float64
	for _, it := range inst.ItemTypes {
		var perCopy float64
		for _, s := range it.Shapes {
			for _, rect := range geom.CoveringWithRectangles(s.Shape, s.Holes) {
				perCopy += rect.Area()
			}
		}
		coveredArea += perCopy * float64(it.Copies)
	}
	guess := math.Sqrt(coveredArea/ratio) * 1.2
	if guess < lowerBoundX*1.5 {
		guess = lowerBoundX * 1.5
	}
	return guess
}

// transplantSingleBin rebuilds sol (solved against a synthetic single-bin
// instance) as a Solution bound to the real instance, remapping the
// synthetic bin type id to realBinID.
func transplantSingleBin(sol *model.Solution, real *model.Instance, realBinID int) *model.Solution {
	out := model.NewSolution(real)
	for _, bin := range sol.Bins {
		pos, err := out.AddBin(realBinID, 1)
		if err != nil {
			continue
		}
		for _, item := range bin.Items {
			_ = out.AddItem(pos, item.ItemTypeID, item.BottomLeft, item.Angle, item.Mirror)
		}
	}
	return out
}
