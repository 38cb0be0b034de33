// Package geom implements the geometric primitives shared by every other
// package: points, shape elements (line segments and circular arcs),
// polygonal shapes with holes, and the preprocessing operations
// (inflation/deflation, cleaning, convex hull, simplification) that turn a
// raw instance shape into something the trapezoidation sweep can consume.
package geom

import "math"

// Epsilon is the absolute tolerance used by every coordinate comparison in
// this module. Every comparator below funnels through Equal/StrictlyLess/
// StrictlyGreater so that a single tolerance governs staircase and
// dominance checks consistently, per the "numeric equality" design note.
const Epsilon = 1e-6

// Equal reports whether a and b are equal up to Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// StrictlyLess reports whether a is less than b by more than Epsilon.
func StrictlyLess(a, b float64) bool {
	return b-a > Epsilon
}

// StrictlyGreater reports whether a is greater than b by more than Epsilon.
func StrictlyGreater(a, b float64) bool {
	return a-b > Epsilon
}

// LessEq reports whether a <= b up to Epsilon.
func LessEq(a, b float64) bool {
	return !StrictlyGreater(a, b)
}

// GreaterEq reports whether a >= b up to Epsilon.
func GreaterEq(a, b float64) bool {
	return !StrictlyLess(a, b)
}

// IsZero reports whether v is zero up to Epsilon.
func IsZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}
