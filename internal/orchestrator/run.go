// Package orchestrator implements the multi-algorithm driver (C12)
// described in spec.md §4.7: it computes the one-dimensional area
// bound, selects which of C6..C11 to run for a given instance, fans
// them out under the chosen optimization mode, and keeps a single best
// Solution under the instance's objective comparator.
package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/colgen"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/search"
	"github.com/fontanf/packingsolver-go/internal/strategy"
)

// Result is the published outcome of a run: the best solution found (nil
// if none), the one-dimensional bound, and the run's correlation id for
// log lines emitted during the run.
type Result struct {
	RunID    string
	Solution *model.Solution
	Bound    float64
}

// Run executes the orchestrator over inst under params, returning once
// every enabled strategy has finished or the context is done.
func Run(ctx context.Context, inst *model.Instance, params Params) (Result, error) {
	if err := inst.Validate(); err != nil {
		return Result{}, err
	}
	if params.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.TimeLimit)
		defer cancel()
	}

	runID := uuid.NewString()
	formatter := NewFormatter(params.Logger, runID)

	bound := AreaBound(inst)
	formatter.NewBound(inst.Objective, bound)

	kinds := selectStrategies(inst, params)
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	formatter.StrategySelected(names)

	best := &bestSolution{}
	publish := func(kind strategyKind) search.BestCallback {
		return func(sol *model.Solution) {
			if best.update(sol) {
				formatter.NewBest(kind.String(), sol)
			}
		}
	}

	switch params.Mode {
	case NotAnytimeSequential:
		for _, kind := range kinds {
			sol := runStrategy(ctx, inst, params, kind, nil)
			if best.update(sol) {
				formatter.NewBest(kind.String(), sol)
			}
			formatter.StrategyDone(kind.String(), nil)
		}

	case NotAnytimeDeterministic:
		results := make([]*model.Solution, len(kinds))
		g, gctx := errgroup.WithContext(ctx)
		if params.NumThreads > 0 {
			g.SetLimit(params.NumThreads)
		}
		for i, kind := range kinds {
			i, kind := i, kind
			g.Go(func() error {
				results[i] = runStrategy(gctx, inst, params, kind, nil)
				return nil
			})
		}
		_ = g.Wait()
		for i, kind := range kinds {
			if best.update(results[i]) {
				formatter.NewBest(kind.String(), results[i])
			}
			formatter.StrategyDone(kind.String(), nil)
		}

	default: // Anytime
		g, gctx := errgroup.WithContext(ctx)
		if params.NumThreads > 0 {
			g.SetLimit(params.NumThreads)
		}
		for _, kind := range kinds {
			kind := kind
			g.Go(func() error {
				sol := runStrategy(gctx, inst, params, kind, publish(kind))
				if best.update(sol) {
					formatter.NewBest(kind.String(), sol)
				}
				formatter.StrategyDone(kind.String(), nil)
				return nil
			})
		}
		_ = g.Wait()
	}

	final := best.get()
	if inst.Objective == model.ObjectiveBinPackingWithLeftovers && params.Mode != Anytime {
		final = postProcessLeftovers(ctx, inst, final, params)
	}

	return Result{RunID: runID, Solution: final, Bound: bound}, nil
}

// runStrategy dispatches one selected strategyKind to its implementation.
func runStrategy(ctx context.Context, inst *model.Instance, params Params, kind strategyKind, onBest search.BestCallback) *model.Solution {
	switch kind {
	case strategyTreeSearch:
		return runTreeSearch(ctx, inst, params, onBest)
	case strategySequentialSingleKnapsack:
		p := strategy.DefaultSequentialSingleKnapsackParams()
		p.StartQueueSize = params.QueueSizeSequentialSingleKnapsack
		return strategy.SequentialSingleKnapsack(ctx, inst, p, wrapStrategyCallback(onBest))
	case strategySequentialValueCorrection:
		p := strategy.DefaultSequentialValueCorrectionParams()
		p.QueueSize = params.QueueSizeSequentialValueCorrection
		return strategy.SequentialValueCorrection(ctx, inst, p, wrapStrategyCallback(onBest))
	case strategyDichotomicSearch:
		p := strategy.DefaultDichotomicSearchParams()
		p.QueueSize = params.QueueSizeDichotomicSearch
		return strategy.DichotomicSearch(ctx, inst, p, wrapStrategyCallback(onBest))
	case strategyColumnGeneration:
		p := colgen.DefaultParams()
		p.QueueSize = params.QueueSizeColumnGeneration
		p.PivotRule = params.LPSolverRule
		return colgen.Solve(ctx, inst, p, colgen.BestCallback(wrapStrategyCallback(onBest)))
	case strategyOpenDimension:
		p := strategy.DefaultOpenDimensionParams()
		p.QueueSize = params.QueueSizeTreeSearch
		p.AspectRatioY = inst.Parameters.OpenDimensionXYRatio
		if p.AspectRatioY <= 0 {
			p.AspectRatioY = 1
		}
		return strategy.OpenDimensionSequential(ctx, inst, p, wrapStrategyCallback(onBest))
	default:
		return nil
	}
}

func wrapStrategyCallback(onBest search.BestCallback) func(*model.Solution) {
	if onBest == nil {
		return nil
	}
	return func(sol *model.Solution) { onBest(sol) }
}

// runTreeSearch fans out one search.Worker per (guide, direction) pair
// determined by the default guide set and spec.md §4.5's direction
// table, keeping the best across every worker.
func runTreeSearch(ctx context.Context, inst *model.Instance, params Params, onBest search.BestCallback) *model.Solution {
	scheme, err := branching.New(inst)
	if err != nil {
		return nil
	}

	allFullRotationSquareBins := allItemsFullRotation(inst) && allBinsSquare(inst)
	directions := search.PlanDirections(
		inst.Objective,
		len(inst.BinTypes) == 1,
		inst.Objective == model.ObjectiveBinPackingWithLeftovers,
		allFullRotationSquareBins,
	)
	guideIDs := branching.DefaultGuides(inst.Objective == model.ObjectiveKnapsack)

	local := &bestSolution{}
	g, gctx := errgroup.WithContext(ctx)
	if params.NumThreads > 0 {
		g.SetLimit(params.NumThreads)
	}
	for _, guideID := range guideIDs {
		for _, direction := range directions {
			guideID, direction := guideID, direction
			g.Go(func() error {
				cb := func(sol *model.Solution) {
					if local.update(sol) && onBest != nil {
						onBest(sol)
					}
				}
				sol := search.Worker(gctx, scheme, guideID, direction, search.DefaultGrowthFactor, cb)
				local.update(sol)
				return nil
			})
		}
	}
	_ = g.Wait()
	return local.get()
}

func allItemsFullRotation(inst *model.Instance) bool {
	for _, it := range inst.ItemTypes {
		if !it.AllowsFullRotation() {
			return false
		}
	}
	return true
}

func allBinsSquare(inst *model.Instance) bool {
	for _, bt := range inst.BinTypes {
		min, max := bt.BoundingBox()
		w, h := max.X-min.X, max.Y-min.Y
		if w <= 0 || h <= 0 || (w-h) > 1e-9 || (h-w) > 1e-9 {
			return false
		}
	}
	return true
}
