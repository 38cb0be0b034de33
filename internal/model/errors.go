package model

import "errors"

// Sentinel error kinds, matching spec.md §7's error taxonomy. Every
// concrete error returned by the instance builder or solution appender
// wraps one of these with fmt.Errorf("...: %w", ...) so callers can branch
// with errors.Is.
var (
	// ErrInvalidInstance signals a structural violation of the instance
	// invariants (spec.md §3): copies_min > copies, self-intersecting
	// shapes, a hole outside its shape, an open-dimension objective with a
	// bin count != 1, and so on. The run aborts before search.
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrInvalidPlacement signals that an externally-constructed Solution
	// places an item outside its allowed rotations, mirrors an item whose
	// type forbids mirroring, or references an out-of-range item type id.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrGeometry signals that trapezoidation was asked to handle a
	// non-simple or degenerate polygon; this is fatal and unrecoverable,
	// which is why every shape is run through geom.Clean before it
	// reaches the trapezoidation sweep.
	ErrGeometry = errors.New("geometry error")
)
