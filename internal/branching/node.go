package branching

import (
	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/trapezoid"
)

// Placement records the single decision that produced a node from its
// parent: either a new bin (TrapezoidSetID < 0) or a placed trapezoid set
// anchored at Anchor within the bin at BinPos.
type Placement struct {
	BinPos         int
	BinTypeID      int
	TrapezoidSetID int
	Anchor         geom.Point
	Direction      Direction
}

// Obstacle is an extra_trapezoids entry: a region a placement must avoid
// unless its item shape's quality rule tolerates the given defect type.
type Obstacle struct {
	Trapezoid  trapezoid.GeneralizedTrapezoid
	DefectType int
}

// Node is one state of the branching scheme's search tree: a partial
// solution represented by the populated bins so far, the current bin's
// skyline and extra trapezoids, and the running aggregates the guide
// functions and dominance test read (spec.md §4.4).
type Node struct {
	ID     int
	Parent *Node

	Placement Placement

	BinWidth, BinHeight float64
	Skyline             []SkylineColumn
	ExtraTrapezoids     []Obstacle

	NumberOfBins int
	ItemCopies   []int

	ItemArea           float64
	GuideArea          float64
	ItemConvexHullArea float64
	Profit             float64
	LeftoverValue      float64

	XEMax, YEMax, XSMax float64
}

// Depth returns the number of ancestors, i.e. the number of decisions
// taken to reach this node from the root.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// NumberOfItems returns the total placed item copies across all types.
func (n *Node) NumberOfItems() int {
	total := 0
	for _, c := range n.ItemCopies {
		total += c
	}
	return total
}

func (n *Node) copyItemCopies() []int {
	out := make([]int, len(n.ItemCopies))
	copy(out, n.ItemCopies)
	return out
}
