package branching

import (
	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/trapezoid"
)

// SkylineColumn is one contiguous run of the uncovered_trapezoids profile:
// the free region above x in [X0, X1) starts at height Y. Columns are
// updated one real item sub-trapezoid at a time (SpliceTrapezoid, called
// once per trapezoid of a placed shape from commitPlacement) rather than by one
// bounding-box footprint per item, so a concave item's own silhouette —
// not its bbox — carves the profile; exact feasibility against
// extra_trapezoids, which after a placement also holds every placed
// item's own inflated trapezoids, still runs on the real generalized
// trapezoids produced by internal/trapezoid.
type SkylineColumn struct {
	X0, X1, Y float64
}

// NewSkyline builds the initial single-column skyline spanning [0, width)
// at height yBase.
func NewSkyline(width, yBase float64) []SkylineColumn {
	return []SkylineColumn{{X0: 0, X1: width, Y: yBase}}
}

// HeightAt returns the maximum column height over [x0, x1), the anchor
// height a footprint placed there must rest on (the skyline/bottom-left
// contact rule from spec.md §4.4).
func HeightAt(cols []SkylineColumn, x0, x1 float64) float64 {
	h := 0.0
	first := true
	for _, c := range cols {
		if c.X1 <= x0+geom.Epsilon || c.X0 >= x1-geom.Epsilon {
			continue
		}
		if first || c.Y > h {
			h = c.Y
			first = false
		}
	}
	return h
}

// PlaceFootprint returns the skyline after raising every column fully or
// partially covered by [x0, x1) to height y, splitting boundary columns as
// needed. Columns are kept sorted and merged when adjacent heights match.
func PlaceFootprint(cols []SkylineColumn, x0, x1, y float64) []SkylineColumn {
	var out []SkylineColumn
	for _, c := range cols {
		switch {
		case c.X1 <= x0 || c.X0 >= x1:
			out = append(out, c)
		case c.X0 >= x0 && c.X1 <= x1:
			out = append(out, SkylineColumn{X0: c.X0, X1: c.X1, Y: y})
		case c.X0 < x0 && c.X1 <= x1:
			out = append(out, SkylineColumn{X0: c.X0, X1: x0, Y: c.Y})
			out = append(out, SkylineColumn{X0: x0, X1: c.X1, Y: y})
		case c.X0 >= x0 && c.X1 > x1:
			out = append(out, SkylineColumn{X0: c.X0, X1: x1, Y: y})
			out = append(out, SkylineColumn{X0: x1, X1: c.X1, Y: c.Y})
		default: // c spans the whole footprint
			out = append(out, SkylineColumn{X0: c.X0, X1: x0, Y: c.Y})
			out = append(out, SkylineColumn{X0: x0, X1: x1, Y: y})
			out = append(out, SkylineColumn{X0: x1, X1: c.X1, Y: c.Y})
		}
	}
	return mergeColumns(out)
}

// SpliceTrapezoid books one placed (already-translated) generalized
// trapezoid into the skyline over its own base footprint [Xbl, Xbr) at
// height Yt — the per-shape splice spec.md §4.4 describes, applied once
// per sub-trapezoid of a placed item rather than once per item bounding
// box, so a multi-trapezoid concave shape leaves its real profile behind.
func SpliceTrapezoid(cols []SkylineColumn, t trapezoid.GeneralizedTrapezoid) []SkylineColumn {
	return PlaceFootprint(cols, t.Xbl, t.Xbr, t.Yt)
}

func mergeColumns(cols []SkylineColumn) []SkylineColumn {
	if len(cols) == 0 {
		return cols
	}
	out := []SkylineColumn{cols[0]}
	for _, c := range cols[1:] {
		last := &out[len(out)-1]
		if geom.Equal(last.Y, c.Y) && geom.Equal(last.X1, c.X0) {
			last.X1 = c.X1
			continue
		}
		out = append(out, c)
	}
	return out
}

// Breakpoints returns the sorted distinct X0 values of cols, the candidate
// anchor x-positions for the next footprint.
func Breakpoints(cols []SkylineColumn) []float64 {
	out := make([]float64, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.X0)
	}
	return out
}

// MaxHeight returns the tallest column, i.e. the skyline's current xs_max
// analogue along y.
func MaxHeight(cols []SkylineColumn) float64 {
	h := 0.0
	for _, c := range cols {
		if c.Y > h {
			h = c.Y
		}
	}
	return h
}
