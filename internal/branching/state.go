// Package branching implements the branching scheme (C5) described in
// spec.md §4.4: search nodes, trapezoid sets, child enumeration against a
// maintained skyline, dominance, and guide (ordering) functions, grounded
// on original_source/src/irregular/branching_scheme.hpp.
package branching

import "github.com/fontanf/packingsolver-go/internal/trapezoid"

// ContactState names the geometric relationship between a moving item
// trapezoid's side and the obstacle trapezoid it is blocked by while
// tryPlace walks toward a feasible anchor (spec.md §4.4). classifyContact
// picks one of the nine states (or the Infeasible sink) for a given pair;
// clearingShift then dispatches on the state to the matching
// GeneralizedTrapezoid primitive — ComputeRightShift for the rectangular
// tie-break, ComputeTopRightShift sliding along whichever side is
// actually in contact.
type ContactState int

const (
	// StateRightSupportingBottomLeft: item trapezoid's right side
	// touches the supporting trapezoid's bottom-left region.
	StateRightSupportingBottomLeft ContactState = iota
	// StateTopRightSupportingLeft: item trapezoid's top-right corner
	// touches the supporting trapezoid's left side.
	StateTopRightSupportingLeft
	// StateBottomRightSupportingLeft: item trapezoid's bottom-right
	// corner touches the supporting trapezoid's left side.
	StateBottomRightSupportingLeft
	// StateRightSupportingTopLeft: item trapezoid's right side touches
	// the supporting trapezoid's top-left region.
	StateRightSupportingTopLeft
	// StateBottomRightSupportingTop: item trapezoid's bottom-right
	// corner touches the supporting trapezoid's top side.
	StateBottomRightSupportingTop
	// StateLeftSupportingTopRight: item trapezoid's left side touches
	// the supporting trapezoid's top-right region.
	StateLeftSupportingTopRight
	// StateTopLeftSupportingRight: item trapezoid's top-left corner
	// touches the supporting trapezoid's right side.
	StateTopLeftSupportingRight
	// StateBottomLeftSupportingRight: item trapezoid's bottom-left
	// corner touches the supporting trapezoid's right side.
	StateBottomLeftSupportingRight
	// StateLeftSupportingBottomRight: item trapezoid's left side touches
	// the supporting trapezoid's bottom-right region.
	StateLeftSupportingBottomRight
	// StateInfeasible is the sink state: no contact resolves to a
	// feasible anchor.
	StateInfeasible
)

func (s ContactState) String() string {
	names := [...]string{
		"RightSupportingBottomLeft",
		"TopRightSupportingLeft",
		"BottomRightSupportingLeft",
		"RightSupportingTopLeft",
		"BottomRightSupportingTop",
		"LeftSupportingTopRight",
		"TopLeftSupportingRight",
		"BottomLeftSupportingRight",
		"LeftSupportingBottomRight",
		"Infeasible",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// Direction is one of the eight axis-aligned traversal orderings used to
// mirror/rotate the instance at a node's first bin and to pick the next
// anchor on the skyline, plus Any for multi-bin-type new-bin placements.
type Direction int

const (
	LeftToRightBottomToTop Direction = iota
	LeftToRightTopToBottom
	RightToLeftBottomToTop
	RightToLeftTopToBottom
	BottomToTopLeftToRight
	BottomToTopRightToLeft
	TopToBottomLeftToRight
	TopToBottomRightToLeft
	AnyDirection
)

func (d Direction) String() string {
	names := [...]string{
		"LeftToRightBottomToTop",
		"LeftToRightTopToBottom",
		"RightToLeftBottomToTop",
		"RightToLeftTopToBottom",
		"BottomToTopLeftToRight",
		"BottomToTopRightToLeft",
		"TopToBottomLeftToRight",
		"TopToBottomRightToLeft",
		"Any",
	}
	if int(d) < 0 || int(d) >= len(names) {
		return "Unknown"
	}
	return names[d]
}

// AllDirections lists the eight axis-aligned directions (excluding Any).
func AllDirections() []Direction {
	return []Direction{
		LeftToRightBottomToTop, LeftToRightTopToBottom,
		RightToLeftBottomToTop, RightToLeftTopToBottom,
		BottomToTopLeftToRight, BottomToTopRightToLeft,
		TopToBottomLeftToRight, TopToBottomRightToLeft,
	}
}

// classifyContact picks the contact state for a moving trapezoid t
// blocked by obstacle s: which of t's own sides is slanted (if any), and
// which side of s it would slide along while clearing it. A rectangular
// item (all sides vertical) always resolves to
// StateRightSupportingBottomLeft, the first tie-break spec.md §4.4 names.
func classifyContact(t, s trapezoid.GeneralizedTrapezoid) ContactState {
	switch {
	case t.RightSideIncreasingNotVertical() && s.LeftSideDecreasingNotVertical():
		return StateTopRightSupportingLeft
	case t.RightSideIncreasingNotVertical():
		return StateBottomRightSupportingTop
	case t.RightSideDecreasingNotVertical() && s.LeftSideIncreasingNotVertical():
		return StateBottomRightSupportingLeft
	case t.RightSideDecreasingNotVertical():
		return StateRightSupportingTopLeft
	case t.LeftSideDecreasingNotVertical() && s.RightSideIncreasingNotVertical():
		return StateTopLeftSupportingRight
	case t.LeftSideDecreasingNotVertical():
		return StateLeftSupportingBottomRight
	case t.LeftSideIncreasingNotVertical() && s.RightSideDecreasingNotVertical():
		return StateBottomLeftSupportingRight
	case t.LeftSideIncreasingNotVertical():
		return StateLeftSupportingTopRight
	default:
		return StateRightSupportingBottomLeft
	}
}

// clearingShift computes how far t must slide to clear s, dispatching on
// state: the rectangular tie-break and any state with no slanted contact
// clear with a pure ComputeRightShift; a state naming a slanted side
// clears by sliding along that side's own slope via ComputeTopRightShift.
func clearingShift(state ContactState, t, s trapezoid.GeneralizedTrapezoid) float64 {
	switch state {
	case StateTopRightSupportingLeft, StateBottomRightSupportingTop,
		StateBottomRightSupportingLeft, StateRightSupportingTopLeft:
		return t.ComputeTopRightShift(s, t.ARight())
	case StateTopLeftSupportingRight, StateLeftSupportingBottomRight,
		StateBottomLeftSupportingRight, StateLeftSupportingTopRight:
		return t.ComputeTopRightShift(s, t.ALeft())
	default:
		return t.ComputeRightShift(s)
	}
}
