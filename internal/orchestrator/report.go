package orchestrator

import (
	"go.uber.org/zap"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// Formatter logs milestone events during a run with consistent fields,
// the Go analogue of the original source's algorithm_formatter: a
// thin wrapper so every strategy logs "new best"/"new bound" the same
// way instead of formatting ad hoc strings at each call site.
type Formatter struct {
	log   *zap.SugaredLogger
	runID string
}

// NewFormatter builds a Formatter bound to runID, logging through log.
// A nil log is replaced with zap's no-op logger so callers never need a
// nil check.
func NewFormatter(log *zap.SugaredLogger, runID string) *Formatter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Formatter{log: log, runID: runID}
}

// NewBest logs a new incumbent solution found by strategy.
func (f *Formatter) NewBest(strategy string, sol *model.Solution) {
	f.log.Infow("new best solution",
		"run_id", f.runID,
		"strategy", strategy,
		"number_of_bins", sol.NumberOfBins,
		"number_of_items", sol.NumberOfItems,
		"profit", sol.Profit,
		"full", sol.Full(),
	)
}

// NewBound logs an updated one-dimensional area bound.
func (f *Formatter) NewBound(objective model.Objective, bound float64) {
	f.log.Infow("new bound",
		"run_id", f.runID,
		"objective", objective.String(),
		"bound", bound,
	)
}

// StrategySelected logs which strategies the selection rules enabled.
func (f *Formatter) StrategySelected(names []string) {
	f.log.Infow("strategies selected", "run_id", f.runID, "strategies", names)
}

// StrategyDone logs a strategy finishing, successfully or not.
func (f *Formatter) StrategyDone(strategy string, err error) {
	if err != nil {
		f.log.Warnw("strategy ended with error", "run_id", f.runID, "strategy", strategy, "error", err)
		return
	}
	f.log.Infow("strategy finished", "run_id", f.runID, "strategy", strategy)
}
