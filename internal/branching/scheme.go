package branching

import (
	"math"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/trapezoid"
)

// Scheme is the branching scheme (C5) bound to one Instance: it owns the
// precomputed trapezoid sets and exposes Root/Children/ToSolution to the
// tree-search driver (C6).
type Scheme struct {
	Instance      *model.Instance
	TrapezoidSets []TrapezoidSet

	nextID int
}

// New precomputes every trapezoid set of inst and returns a ready Scheme.
func New(inst *model.Instance) (*Scheme, error) {
	sets, err := BuildTrapezoidSets(inst)
	if err != nil {
		return nil, err
	}
	return &Scheme{Instance: inst, TrapezoidSets: sets}, nil
}

func (s *Scheme) newNodeID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Root returns the node representing an empty solution: no bin opened yet.
func (s *Scheme) Root() *Node {
	return &Node{
		ID:         s.newNodeID(),
		ItemCopies: make([]int, len(s.Instance.ItemTypes)),
	}
}

// remainingBinCopies returns how many more copies of binTypeID the
// ancestors of n have not yet opened.
func remainingBinCopies(n *Node, binTypeID int, max int) int {
	used := 0
	for p := n; p != nil; p = p.Parent {
		if p.Placement.TrapezoidSetID == -1 && p.Placement.BinTypeID == binTypeID {
			used++
		}
	}
	return max - used
}

// openNewBin returns the child nodes obtained by opening every not-yet-
// exhausted bin type, one per requested direction.
func (s *Scheme) openNewBin(n *Node, directions []Direction) []*Node {
	var children []*Node
	for _, bt := range s.Instance.BinTypes {
		if remainingBinCopies(n, bt.ID, bt.Copies) <= 0 {
			continue
		}
		min, max := bt.BoundingBox()
		width, height := max.X-min.X, max.Y-min.Y
		defects := inflatedDefectTrapezoids(bt, s.Instance.Parameters.ItemBinMinimumSpacing)

		for _, dir := range directions {
			w, h := width, height
			if dir == BottomToTopLeftToRight || dir == BottomToTopRightToLeft ||
				dir == TopToBottomLeftToRight || dir == TopToBottomRightToLeft {
				w, h = height, width
			}
			child := &Node{
				ID: s.newNodeID(),
				Placement: Placement{
					BinPos:         n.NumberOfBins,
					BinTypeID:      bt.ID,
					TrapezoidSetID: -1,
					Direction:      dir,
				},
				Parent:             n,
				BinWidth:           w,
				BinHeight:          h,
				Skyline:            NewSkyline(w, 0),
				ExtraTrapezoids:    defects,
				NumberOfBins:       n.NumberOfBins + 1,
				ItemCopies:         n.copyItemCopies(),
				ItemArea:           n.ItemArea,
				GuideArea:          n.GuideArea,
				ItemConvexHullArea: n.ItemConvexHullArea,
				Profit:             n.Profit,
				XEMax:              n.XEMax,
				YEMax:              n.YEMax,
				XSMax:              n.XSMax,
			}
			children = append(children, child)
		}
	}
	return children
}

// inflatedDefectTrapezoids trapezoidates every defect of bt, inflated by
// the item-bin minimum spacing, to seed extra_trapezoids with the
// obstacles a placement must never intersect (quality rule permitting).
func inflatedDefectTrapezoids(bt model.BinType, itemBinSpacing float64) []Obstacle {
	var out []Obstacle
	for _, d := range bt.Defects {
		inflated := geom.Clean(geom.Inflate(d.Shape.Shape, itemBinSpacing))
		tz, err := trapezoid.Trapezoidate(inflated, nil)
		if err != nil {
			continue
		}
		for _, t := range tz {
			out = append(out, Obstacle{Trapezoid: t, DefectType: d.Type})
		}
	}
	return out
}

// Children enumerates every feasible next state from n: either placements
// of a trapezoid set with remaining copies onto the current bin's skyline,
// or — when the current bin offers no feasible placement, or n is the
// root — new-bin openings in each of the given directions. A node that
// already places every copy of every item type has no children.
func (s *Scheme) Children(n *Node, directions []Direction) []*Node {
	if n.NumberOfItems() == s.Instance.NumberOfItems() {
		return nil
	}
	var children []*Node
	if n.Parent != nil || n.BinWidth > 0 {
		children = s.placementChildren(n)
	}
	if len(children) == 0 {
		children = append(children, s.openNewBin(n, directions)...)
	}
	return children
}

func (s *Scheme) placementChildren(n *Node) []*Node {
	var children []*Node
	for _, ts := range s.TrapezoidSets {
		it := s.Instance.ItemTypes[indexOfItemType(s.Instance, ts.ItemTypeID)]
		if n.ItemCopies[ts.ItemTypeID] >= it.Copies {
			continue
		}
		for _, x0 := range candidateX(n.Skyline, ts.Width, n.BinWidth) {
			child := s.tryPlace(n, ts, x0)
			if child != nil {
				children = append(children, child)
			}
		}
	}
	return children
}

func indexOfItemType(inst *model.Instance, id int) int {
	for i, it := range inst.ItemTypes {
		if it.ID == id {
			return i
		}
	}
	return 0
}

// candidateX returns the skyline's column breakpoints that leave room for a
// footprint of the given width within [0, binWidth).
func candidateX(cols []SkylineColumn, width, binWidth float64) []float64 {
	var out []float64
	for _, x := range Breakpoints(cols) {
		if x+width <= binWidth+geom.Epsilon {
			out = append(out, x)
		}
	}
	return out
}

// itemObstacleDefectType tags an extra_trapezoids entry seeded from an
// already-placed item (rather than a bin defect): no quality rule ever
// permits overlapping it, since Parameters.Allows defaults an unknown
// (qualityRule, defectType) pair to false and no real defect is ever
// tagged with a negative type.
const itemObstacleDefectType = -1

// maxContactWalkSteps bounds the contact-state walk of tryPlace: each
// step slides the candidate anchor right by the clearing shift computed
// for its worst blocking obstacle. Spec.md §4.4's walk is deterministic
// and terminates because each step strictly increases x0 within a bounded
// bin, so a small cap only guards against floating-point stalls.
const maxContactWalkSteps = 8

// tryPlace attempts to anchor trapezoid set ts at or to the right of x0
// on n's skyline. It walks the contact-state machine of spec.md §4.4:
// compute a per-sub-trapezoid resting height, check every inflated
// sub-trapezoid against n's extra_trapezoids (defects and previously
// placed items alike), and on a disallowed overlap classify the contact
// and slide the whole anchor by the matching ComputeRightShift /
// ComputeTopRightShift clearing distance before retrying. Returns nil
// (the Infeasible sink) when no anchor in the bin clears every obstacle.
func (s *Scheme) tryPlace(n *Node, ts TrapezoidSet, x0 float64) *Node {
	for step := 0; step < maxContactWalkSteps; step++ {
		y0 := restingHeight(n.Skyline, ts, x0)
		if y0+ts.Height > n.BinHeight+geom.Epsilon {
			return nil
		}

		shift, blocked := s.maxClearingShift(n, ts, x0, y0)
		if blocked {
			return nil
		}
		if shift <= geom.Epsilon {
			return s.commitPlacement(n, ts, x0, y0)
		}
		x0 += shift
		if x0+ts.Width > n.BinWidth+geom.Epsilon {
			return nil
		}
	}
	return nil
}

// restingHeight returns the minimal y at which every inflated
// sub-trapezoid of ts, translated to x0, clears the skyline under its
// own x-span rather than the item set's bounding box — the per-shape
// analogue of the bottom-left placement rule, letting a concave item's
// shorter lobes dip into a skyline notch while its taller lobes still
// clear whatever the skyline carries beneath them.
func restingHeight(cols []SkylineColumn, ts TrapezoidSet, x0 float64) float64 {
	y0 := 0.0
	for _, shape := range ts.Shapes {
		for _, t := range shape.Inflated {
			if need := HeightAt(cols, x0+t.Xbl, x0+t.Xbr) - t.Yb; need > y0 {
				y0 = need
			}
		}
	}
	return y0
}

// maxClearingShift checks every inflated sub-trapezoid of ts, anchored at
// (x0, y0), against n's extra_trapezoids. It returns the largest clearing
// shift any disallowed overlap demands (0 if none), or blocked=true if an
// overlap's own clearing shift cannot separate the pair (a truly
// feasibility-dead contact, the walk's Infeasible sink).
func (s *Scheme) maxClearingShift(n *Node, ts TrapezoidSet, x0, y0 float64) (shift float64, blocked bool) {
	for _, shape := range ts.Shapes {
		for _, t := range shape.Inflated {
			placed := t.Translate(x0, y0)
			if placed.XMin() < -geom.Epsilon || placed.XMax() > n.BinWidth+geom.Epsilon {
				return 0, true
			}
			for _, extra := range n.ExtraTrapezoids {
				if !placed.Intersects(extra.Trapezoid) {
					continue
				}
				if s.Instance.Parameters.Allows(shape.QualityRule, extra.DefectType) {
					continue
				}
				state := classifyContact(placed, extra.Trapezoid)
				clear := clearingShift(state, placed, extra.Trapezoid)
				if clear <= geom.Epsilon {
					return 0, true
				}
				if clear > shift {
					shift = clear
				}
			}
		}
	}
	return shift, false
}

// commitPlacement splices every one of ts's inflated sub-trapezoids
// individually into the skyline at (x0, y0) (not the set's bounding box)
// and appends each as a new extra_trapezoids obstacle, so later
// placements check real item-vs-item geometry (via Intersects) rather
// than relying on the column-height profile alone — a flat column can
// represent a shape's own silhouette but not, by itself, that a later
// item may still slide underneath an overhanging part of an earlier one.
// Returns nil if a sub-trapezoid would cross the bin border (should not
// happen once maxClearingShift has cleared, kept as a final guard).
func (s *Scheme) commitPlacement(n *Node, ts TrapezoidSet, x0, y0 float64) *Node {
	skyline := n.Skyline
	extra := append([]Obstacle(nil), n.ExtraTrapezoids...)
	for _, shape := range ts.Shapes {
		for _, t := range shape.Inflated {
			placed := t.Translate(x0, y0)
			if placed.XMin() < -geom.Epsilon || placed.XMax() > n.BinWidth+geom.Epsilon {
				return nil
			}
			skyline = SpliceTrapezoid(skyline, placed)
			extra = append(extra, Obstacle{Trapezoid: placed, DefectType: itemObstacleDefectType})
		}
	}

	xeMax := math.Max(n.XEMax, x0+ts.Width)
	child := &Node{
		ID: s.newNodeID(),
		Placement: Placement{
			BinPos:         n.Placement.BinPos,
			BinTypeID:      n.Placement.BinTypeID,
			TrapezoidSetID: ts.ID,
			Anchor:         geom.Point{X: x0, Y: y0},
			Direction:      n.Placement.Direction,
		},
		Parent:              n,
		BinWidth:             n.BinWidth,
		BinHeight:            n.BinHeight,
		Skyline:              skyline,
		ExtraTrapezoids:      extra,
		NumberOfBins:         n.NumberOfBins,
		ItemCopies:           n.copyItemCopies(),
		ItemArea:             n.ItemArea + ts.Area,
		GuideArea:            n.GuideArea + ts.Width*ts.Height,
		ItemConvexHullArea:   n.ItemConvexHullArea + ts.ConvexHullArea,
		Profit:               n.Profit + s.Instance.ItemTypes[indexOfItemType(s.Instance, ts.ItemTypeID)].Profit,
		LeftoverValue:        leftoverValue(n.BinWidth, n.BinHeight, xeMax),
		XEMax:                xeMax,
		YEMax:                math.Max(n.YEMax, y0+ts.Height),
		XSMax:                math.Max(n.XSMax, MaxHeight(skyline)),
	}
	child.ItemCopies[ts.ItemTypeID]++
	return child
}

// leftoverValue implements the leftover_value aggregate (spec.md §3):
// the current bin's bounding-box area minus the part of that same
// rectangle lying at or beyond the rightmost placed edge, computed by
// treating the bin as a degenerate GeneralizedTrapezoid and calling
// AreaLeftOf — the same primitive C4 defines for exactly this cut.
func leftoverValue(binWidth, binHeight, xeMax float64) float64 {
	if binWidth <= 0 || binHeight <= 0 {
		return 0
	}
	binRect := trapezoid.MustNew(0, binHeight, 0, binWidth, 0, binWidth)
	return binWidth*binHeight - binRect.AreaLeftOf(xeMax)
}

// Leaf reports whether n places the maximum copies of every item type
// (spec.md's "full" solution) or, short of that, has no further children.
func (s *Scheme) Leaf(n *Node) bool {
	return len(s.Children(n, AllDirections())) == 0
}
