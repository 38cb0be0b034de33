// Package model implements the canonical instance/solution containers
// (C13) described in spec.md §3: ItemType, BinType, Defect, Parameters,
// Instance and Solution, their invariants, and derived aggregates.
package model

import (
	"fmt"
	"math"

	"github.com/fontanf/packingsolver-go/internal/geom"
)

// Objective selects which of the five optimization problems an Instance
// targets, mirroring spec.md §1.
type Objective int

const (
	ObjectiveBinPacking Objective = iota
	ObjectiveBinPackingWithLeftovers
	ObjectiveKnapsack
	ObjectiveVariableSizedBinPacking
	ObjectiveOpenDimensionX
	ObjectiveOpenDimensionY
)

// String renders the objective using the JSON wire names from spec.md §6.
func (o Objective) String() string {
	switch o {
	case ObjectiveBinPacking:
		return "bin-packing"
	case ObjectiveBinPackingWithLeftovers:
		return "bin-packing-with-leftovers"
	case ObjectiveKnapsack:
		return "knapsack"
	case ObjectiveVariableSizedBinPacking:
		return "variable-sized-bin-packing"
	case ObjectiveOpenDimensionX:
		return "open-dimension-x"
	case ObjectiveOpenDimensionY:
		return "open-dimension-y"
	default:
		return "unknown"
	}
}

// ParseObjective parses the JSON wire name of an objective.
func ParseObjective(s string) (Objective, error) {
	switch s {
	case "bin-packing":
		return ObjectiveBinPacking, nil
	case "bin-packing-with-leftovers":
		return ObjectiveBinPackingWithLeftovers, nil
	case "knapsack":
		return ObjectiveKnapsack, nil
	case "variable-sized-bin-packing":
		return ObjectiveVariableSizedBinPacking, nil
	case "open-dimension-x":
		return ObjectiveOpenDimensionX, nil
	case "open-dimension-y":
		return ObjectiveOpenDimensionY, nil
	case "open-dimension-xy":
		return ObjectiveOpenDimensionX, nil
	default:
		return 0, fmt.Errorf("%w: unknown objective %q", ErrInvalidInstance, s)
	}
}

// IsOpenDimension reports whether o is one of the open-dimension family.
func (o Objective) IsOpenDimension() bool {
	return o == ObjectiveOpenDimensionX || o == ObjectiveOpenDimensionY
}

// AngleInterval is a closed angle interval [Start, End] in radians; Start
// == End encodes a single discrete angle.
type AngleInterval struct {
	Start, End float64
}

// Defect is an ItemShape-like region with a defect-type id, living inside
// a BinType.
type Defect struct {
	Shape geom.ItemShape
	Type  int
}

// ItemType is an ordered set of non-overlapping ItemShapes forming one
// item, its allowed rotations, mirroring flag, profit and copies.
type ItemType struct {
	ID               int
	Shapes           []geom.ItemShape
	AllowedRotations []AngleInterval
	AllowMirroring   bool
	Profit           float64
	Copies           int
	MinCopies        int
}

// Area returns the sum of each shape's area (net of its holes).
func (it ItemType) Area() float64 {
	var total float64
	for _, s := range it.Shapes {
		total += s.Area()
	}
	return total
}

// BoundingBox returns the bounding box of the union of the item's shapes.
func (it ItemType) BoundingBox() (min, max geom.Point) {
	min = geom.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = geom.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range it.Shapes {
		smin, smax := s.BoundingBox()
		min.X, min.Y = math.Min(min.X, smin.X), math.Min(min.Y, smin.Y)
		max.X, max.Y = math.Max(max.X, smax.X), math.Max(max.Y, smax.Y)
	}
	return min, max
}

// ConvexHullArea returns the convex-hull area of the union of the item's
// shapes, recomputed on every call (spec.md §4.1: item_type_convex_hull_area).
func (it ItemType) ConvexHullArea() float64 {
	shapes := make([]geom.Shape, len(it.Shapes))
	for i, s := range it.Shapes {
		shapes[i] = s.Shape
	}
	return geom.ConvexHullArea(shapes...)
}

// AllowsAngle reports whether angle (radians) lies within one of the
// item's allowed rotation intervals, up to geom.Epsilon.
func (it ItemType) AllowsAngle(angle float64) bool {
	for _, r := range it.AllowedRotations {
		if geom.GreaterEq(angle, r.Start) && geom.LessEq(angle, r.End) {
			return true
		}
	}
	return false
}

// AllowsFullRotation reports whether the item's allowed rotations cover
// the full [0, 2π) continuum, used by the direction-collapse rule in
// spec.md §4.5.
func (it ItemType) AllowsFullRotation() bool {
	for _, r := range it.AllowedRotations {
		if r.End-r.Start >= 2*math.Pi-geom.Epsilon {
			return true
		}
	}
	return false
}

// BinType is an outer shape plus defects, cost, max/min copies.
type BinType struct {
	ID        int
	Shape     geom.Shape
	Defects   []Defect
	Cost      float64
	Copies    int
	MinCopies int
}

// Area returns the bin's outer shape area.
func (bt BinType) Area() float64 {
	return math.Abs(bt.Shape.Area())
}

// BoundingBox returns the bin outer shape's bounding box.
func (bt BinType) BoundingBox() (min, max geom.Point) {
	return bt.Shape.BoundingBox()
}

// EffectiveCost returns bt.Cost, defaulting to the bin's area when Cost is
// negative. spec.md §9 Open Questions flags this default ("cost=-1 implies
// default to area") as implicit in the source; this preserves it.
func (bt BinType) EffectiveCost() float64 {
	if bt.Cost < 0 {
		return bt.Area()
	}
	return bt.Cost
}

// Parameters holds the instance-wide spacing and quality-rule
// configuration described in spec.md §3.
type Parameters struct {
	ItemItemMinimumSpacing float64
	ItemBinMinimumSpacing  float64
	OpenDimensionXYRatio   float64
	// QualityRules[qualityRule][defectType] reports whether an item
	// sub-region tagged qualityRule may overlap a defect of the given
	// type.
	QualityRules map[int]map[int]bool
}

// Allows reports whether a quality rule permits a given defect type. An
// unset entry defaults to false (conservative: unknown combinations
// forbid overlap).
func (p Parameters) Allows(qualityRule, defectType int) bool {
	if p.QualityRules == nil {
		return false
	}
	row, ok := p.QualityRules[qualityRule]
	if !ok {
		return false
	}
	return row[defectType]
}

// Instance is the canonical, immutable-after-construction packing
// instance: an objective, global parameters, bin types and item types.
type Instance struct {
	Objective  Objective
	Parameters Parameters
	BinTypes   []BinType
	ItemTypes  []ItemType
}

// TotalItemArea returns the sum, over every item type, of area * copies.
func (inst *Instance) TotalItemArea() float64 {
	var total float64
	for _, it := range inst.ItemTypes {
		total += it.Area() * float64(it.Copies)
	}
	return total
}

// TotalBinArea returns the sum, over every bin type, of area * copies.
func (inst *Instance) TotalBinArea() float64 {
	var total float64
	for _, bt := range inst.BinTypes {
		total += bt.Area() * float64(bt.Copies)
	}
	return total
}

// NumberOfItems returns the total number of item copies across all types.
func (inst *Instance) NumberOfItems() int {
	total := 0
	for _, it := range inst.ItemTypes {
		total += it.Copies
	}
	return total
}

// Validate checks the instance invariants from spec.md §3, returning a
// wrapped ErrInvalidInstance on the first violation found.
func (inst *Instance) Validate() error {
	for _, it := range inst.ItemTypes {
		if it.Copies < 0 {
			return fmt.Errorf("%w: item type %d has negative copies", ErrInvalidInstance, it.ID)
		}
		if it.MinCopies > it.Copies {
			return fmt.Errorf("%w: item type %d min_copies %d > copies %d", ErrInvalidInstance, it.ID, it.MinCopies, it.Copies)
		}
		if it.Area() <= 0 {
			return fmt.Errorf("%w: item type %d has non-positive area", ErrInvalidInstance, it.ID)
		}
		for i, s := range it.Shapes {
			for j := i + 1; j < len(it.Shapes); j++ {
				if shapesOverlap(s.Shape, it.Shapes[j].Shape) {
					return fmt.Errorf("%w: item type %d shapes %d and %d overlap", ErrInvalidInstance, it.ID, i, j)
				}
			}
			for _, h := range s.Holes {
				if !containsShape(s.Shape, h) {
					return fmt.Errorf("%w: item type %d has a hole outside its shape", ErrInvalidInstance, it.ID)
				}
			}
		}
	}
	for _, bt := range inst.BinTypes {
		if bt.Copies < 0 {
			return fmt.Errorf("%w: bin type %d has negative copies", ErrInvalidInstance, bt.ID)
		}
		if bt.MinCopies > bt.Copies {
			return fmt.Errorf("%w: bin type %d min_copies %d > copies %d", ErrInvalidInstance, bt.ID, bt.MinCopies, bt.Copies)
		}
		for _, d := range bt.Defects {
			if !containsShape(bt.Shape, d.Shape.Shape) {
				return fmt.Errorf("%w: bin type %d has a defect outside its shape", ErrInvalidInstance, bt.ID)
			}
		}
	}
	if inst.Objective.IsOpenDimension() {
		count := 0
		for _, bt := range inst.BinTypes {
			if bt.Copies == 1 {
				count++
			}
		}
		if len(inst.BinTypes) != 1 || count != 1 {
			return fmt.Errorf("%w: open-dimension objective requires exactly one bin with copies == 1", ErrInvalidInstance)
		}
	}
	return nil
}

// shapesOverlap is a coarse bounding-box-then-trapezoid-free overlap test
// sufficient for instance validation (full trapezoid-level non-overlap is
// enforced during search, not at load time).
func shapesOverlap(a, b geom.Shape) bool {
	aMin, aMax := a.BoundingBox()
	bMin, bMax := b.BoundingBox()
	return aMin.X < bMax.X && bMin.X < aMax.X && aMin.Y < bMax.Y && bMin.Y < aMax.Y
}

// containsShape reports whether every vertex of inner lies within outer's
// bounding box — a conservative containment check adequate for the load-
// time invariant; exact polygon containment is enforced by the branching
// scheme's quality-rule check during search (spec.md §4.4 clause iii/iv).
func containsShape(outer, inner geom.Shape) bool {
	oMin, oMax := outer.BoundingBox()
	for _, v := range inner.Vertices() {
		if v.X < oMin.X-geom.Epsilon || v.X > oMax.X+geom.Epsilon ||
			v.Y < oMin.Y-geom.Epsilon || v.Y > oMax.Y+geom.Epsilon {
			return false
		}
	}
	return true
}
