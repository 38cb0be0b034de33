package orchestrator

import (
	"time"

	"go.uber.org/zap"

	"github.com/fontanf/packingsolver-go/internal/colgen"
)

// OptimizationMode controls how strategy results are fanned out and
// published, mirroring spec.md §5.
type OptimizationMode int

const (
	// Anytime runs every enabled strategy concurrently; any of them may
	// publish a new incumbent as soon as it finds one.
	Anytime OptimizationMode = iota
	// NotAnytimeSequential runs strategies one at a time, in order, on
	// the calling goroutine; only the final result of each is published.
	NotAnytimeSequential
	// NotAnytimeDeterministic runs strategies concurrently but buffers
	// every strategy's result, publishing them in a fixed order after
	// all have finished, so identical inputs yield identical callback
	// sequences.
	NotAnytimeDeterministic
)

// Params bundles the per-run knobs described in spec.md §4.7 and §6,
// including the supplemented per-algorithm queue-size flags from
// original_source's main.cpp.
type Params struct {
	Mode       OptimizationMode
	TimeLimit  time.Duration
	Logger     *zap.SugaredLogger
	NumThreads int

	UseTreeSearch                 bool
	UseSequentialSingleKnapsack   bool
	UseSequentialValueCorrection  bool
	UseDichotomicSearch           bool
	UseColumnGeneration           bool

	QueueSizeTreeSearch            int
	QueueSizeSequentialSingleKnapsack int
	QueueSizeSequentialValueCorrection int
	QueueSizeDichotomicSearch       int
	QueueSizeColumnGeneration       int

	ManyItemTypeCopiesFactor  float64
	ManyItemsInBinsThreshold  float64

	// LPSolverRule selects which pivot rule C10's embedded simplex uses,
	// bound to the LP_SOLVER environment variable by cmd/packingsolver.
	LPSolverRule colgen.PivotRule
}

// DefaultParams returns the defaults used when the CLI does not
// override a flag (spec.md §6's defaults plus SPEC_FULL's supplemented
// per-algorithm queue sizes).
func DefaultParams() Params {
	return Params{
		Mode:       Anytime,
		TimeLimit:  10 * time.Second,
		NumThreads: 1,

		UseTreeSearch:                 true,
		UseSequentialSingleKnapsack:   true,
		UseSequentialValueCorrection:  true,
		UseDichotomicSearch:           true,
		UseColumnGeneration:           true,

		QueueSizeTreeSearch:                8,
		QueueSizeSequentialSingleKnapsack:  16,
		QueueSizeSequentialValueCorrection: 32,
		QueueSizeDichotomicSearch:          16,
		QueueSizeColumnGeneration:          32,

		ManyItemTypeCopiesFactor: 2,
		ManyItemsInBinsThreshold: 50,
	}
}
