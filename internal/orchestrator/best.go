package orchestrator

import (
	"sync"

	"github.com/fontanf/packingsolver-go/internal/model"
)

// bestSolution is the mutex-guarded incumbent container every strategy
// publishes into; only updates that are strictly better under the
// instance's objective comparator are kept (spec.md §5: "ignores
// callbacks that do not improve the incumbent").
type bestSolution struct {
	mu  sync.Mutex
	sol *model.Solution
}

// update replaces the incumbent if candidate is better, returning
// whether it did.
func (b *bestSolution) update(candidate *model.Solution) bool {
	if candidate == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if candidate.Better(b.sol) {
		b.sol = candidate
		return true
	}
	return false
}

// get returns the current incumbent, or nil if none has been published.
func (b *bestSolution) get() *model.Solution {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sol
}
