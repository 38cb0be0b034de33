package branching

import "math"

// GuideFunc scores a node for the beam-search priority queue; lower is
// better. spec.md §4.4 names eight variants (0-7); all read only the
// node's cached aggregates, never recompute geometry.
type GuideFunc func(n *Node) float64

const stabilityOffset = 0.1

func wasteRatio(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return n.GuideArea / n.ItemConvexHullArea
}

// Guide0 is waste_ratio, ascending.
func Guide0(n *Node) float64 { return wasteRatio(n) }

// Guide1 favors large items: waste_ratio divided again by the convex hull
// area.
func Guide1(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return wasteRatio(n) / n.ItemConvexHullArea
}

// Guide2 is xe_max*ye_max / item_convex_hull_area.
func Guide2(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return n.XEMax * n.YEMax / n.ItemConvexHullArea
}

// Guide3 divides Guide2 by item_convex_hull_area again.
func Guide3(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return Guide2(n) / n.ItemConvexHullArea
}

// Guide4 is guide_area / profit, for Knapsack.
func Guide4(n *Node) float64 {
	if n.Profit <= 0 {
		return math.Inf(1)
	}
	return n.GuideArea / n.Profit
}

// Guide5 divides Guide4 by the node's mean placed item area.
func Guide5(n *Node) float64 {
	items := n.NumberOfItems()
	if items == 0 || n.Profit <= 0 {
		return math.Inf(1)
	}
	meanArea := n.ItemArea / float64(items)
	if meanArea <= 0 {
		return math.Inf(1)
	}
	return Guide4(n) / meanArea
}

// Guide6 is Guide0 with a +0.1 offset for stability near zero.
func Guide6(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return (n.GuideArea + stabilityOffset) / (n.ItemConvexHullArea + stabilityOffset)
}

// Guide7 is Guide1 with the same +0.1 offset.
func Guide7(n *Node) float64 {
	if n.ItemConvexHullArea <= 0 {
		return math.Inf(1)
	}
	return Guide6(n) / (n.ItemConvexHullArea + stabilityOffset)
}

// Guides maps guide identifier 0..7 to its function.
var Guides = [8]GuideFunc{Guide0, Guide1, Guide2, Guide3, Guide4, Guide5, Guide6, Guide7}

// DefaultGuides returns the default guide id set for an objective:
// {4, 5} for Knapsack, {0, 1} otherwise (spec.md §4.5).
func DefaultGuides(knapsack bool) []int {
	if knapsack {
		return []int{4, 5}
	}
	return []int{0, 1}
}
