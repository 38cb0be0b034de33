package branching

import "github.com/fontanf/packingsolver-go/internal/geom"

// SameItemCopies reports whether a and b have placed the identical number
// of copies of every item type — the hash key spec.md §4.4 uses to bucket
// nodes before a dominance comparison is attempted (only nodes with equal
// copies are ever comparable).
func SameItemCopies(a, b *Node) bool {
	if len(a.ItemCopies) != len(b.ItemCopies) {
		return false
	}
	for i := range a.ItemCopies {
		if a.ItemCopies[i] != b.ItemCopies[i] {
			return false
		}
	}
	return true
}

// Dominates reports whether a dominates b: a uses no more bins, a's
// skyline is pointwise no higher than b's at every sampled x (a
// column-profile analogue of "no further right"), and a and b carry the
// identical extra_trapezoids set. Matches original_source's
// branching_scheme.hpp dominates(): an A-dominated B can be safely
// discarded since any completion valid from B is valid from A with at
// least as good an objective.
func Dominates(a, b *Node) bool {
	if a.NumberOfBins > b.NumberOfBins {
		return false
	}
	if !SameItemCopies(a, b) {
		return false
	}
	if !skylineNoHigher(a.Skyline, b.Skyline) {
		return false
	}
	return sameExtraTrapezoids(a.ExtraTrapezoids, b.ExtraTrapezoids)
}

// skylineNoHigher reports whether a is pointwise no higher than b, sampled
// at every breakpoint of either profile.
func skylineNoHigher(a, b []SkylineColumn) bool {
	xs := make(map[float64]bool)
	for _, c := range a {
		xs[c.X0] = true
	}
	for _, c := range b {
		xs[c.X0] = true
	}
	for x := range xs {
		if HeightAt(a, x, x+geom.Epsilon) > HeightAt(b, x, x+geom.Epsilon)+geom.Epsilon {
			return false
		}
	}
	return true
}

func sameExtraTrapezoids(a, b []Obstacle) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ta := range a {
		found := false
		for j, tb := range b {
			if used[j] {
				continue
			}
			if ta.DefectType == tb.DefectType && ta.Trapezoid.Eq(tb.Trapezoid) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
