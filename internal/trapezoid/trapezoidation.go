package trapezoid

import (
	"fmt"
	"sort"

	"github.com/fontanf/packingsolver-go/internal/geom"
)

// edge is an internal straight-line edge used by the sweep; holes and the
// outer boundary contribute edges uniformly, and membership is resolved by
// the even-odd rule, which is orientation-agnostic (this is what lets the
// sweep treat CCW outer boundaries and CW holes the same way).
type edge struct {
	a, b geom.Point // a.Y <= b.Y
}

func (e edge) xAt(y float64) float64 {
	if geom.Equal(e.a.Y, e.b.Y) {
		return e.a.X
	}
	t := (y - e.a.Y) / (e.b.Y - e.a.Y)
	return e.a.X + t*(e.b.X-e.a.X)
}

// Trapezoidate decomposes a simple polygon shape (with optional holes)
// into a set of GeneralizedTrapezoids whose interiors are pairwise
// disjoint and whose union equals the interior of shape minus the holes.
//
// The sweep follows spec.md §4.2's structure (sort vertices by y, process
// bottom-up, maintain open trapezoids) but is implemented as a slab
// decomposition: between each pair of consecutive critical y-levels (every
// vertex y-coordinate of the shape and its holes), every edge active
// across the slab is a straight line, so the edges can be sorted by their
// x-position and paired left-right under the even-odd rule to yield one
// trapezoid per pair. This produces the same trapezoid set as an explicit
// vertex-classification sweep (LocalMinimum/Maximum x Convex/Concave,
// inflections, and horizontal-edge variants all reduce, at the slab
// level, to "which edges bound this gap") while being far less error-prone
// to implement correctly.
//
// Trapezoidation fails loudly if shape is not simple (self-intersecting
// edges within a slab, detected by an odd edge count at some slab).
// Callers are expected to run geom.Clean first.
func Trapezoidate(shape geom.Shape, holes []geom.Shape) ([]GeneralizedTrapezoid, error) {
	if !shape.IsPolygon() {
		return nil, fmt.Errorf("trapezoidation: shape is not a polygon")
	}
	edges := shapeEdges(shape)
	for _, h := range holes {
		if !h.IsPolygon() {
			return nil, fmt.Errorf("trapezoidation: hole is not a polygon")
		}
		edges = append(edges, shapeEdges(h)...)
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("trapezoidation: degenerate polygon")
	}

	levels := criticalLevels(edges)
	if len(levels) < 2 {
		return nil, fmt.Errorf("trapezoidation: degenerate polygon (no y-extent)")
	}

	var out []GeneralizedTrapezoid
	for i := 0; i+1 < len(levels); i++ {
		y0, y1 := levels[i], levels[i+1]
		if geom.Equal(y0, y1) {
			continue
		}
		mid := (y0 + y1) / 2

		active := make([]edge, 0, len(edges))
		for _, e := range edges {
			if geom.LessEq(e.a.Y, y0) && geom.GreaterEq(e.b.Y, y1) {
				active = append(active, e)
			}
		}
		if len(active)%2 != 0 {
			return nil, fmt.Errorf("trapezoidation: non-simple polygon at y in [%v, %v]: odd edge crossing count %d", y0, y1, len(active))
		}
		sort.Slice(active, func(i, j int) bool {
			return active[i].xAt(mid) < active[j].xAt(mid)
		})
		for k := 0; k+1 < len(active); k += 2 {
			left, right := active[k], active[k+1]
			xbl, xbr := left.xAt(y0), right.xAt(y0)
			xtl, xtr := left.xAt(y1), right.xAt(y1)
			if geom.Equal(xbl, xbr) && geom.Equal(xtl, xtr) {
				continue // zero-width sliver, discarded per spec.md step 4.
			}
			tz, err := New(y0, y1, xbl, xbr, xtl, xtr)
			if err != nil {
				continue // zero-height or malformed after rounding; discard.
			}
			out = append(out, tz)
		}
	}
	return out, nil
}

func shapeEdges(s geom.Shape) []edge {
	verts := s.Vertices()
	n := len(verts)
	edges := make([]edge, 0, n)
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		if geom.Equal(a.Y, b.Y) {
			continue // horizontal edges never bound a slab's left/right side.
		}
		if a.Y > b.Y {
			a, b = b, a
		}
		edges = append(edges, edge{a: a, b: b})
	}
	return edges
}

func criticalLevels(edges []edge) []float64 {
	seen := make(map[float64]bool)
	var levels []float64
	add := func(y float64) {
		for l := range seen {
			if geom.Equal(l, y) {
				return
			}
		}
		seen[y] = true
		levels = append(levels, y)
	}
	for _, e := range edges {
		add(e.a.Y)
		add(e.b.Y)
	}
	sort.Float64s(levels)
	return levels
}

// TotalArea sums the area of a trapezoid set, used to verify the
// area-preservation property (spec.md §8 property 8).
func TotalArea(trapezoids []GeneralizedTrapezoid) float64 {
	var total float64
	for _, t := range trapezoids {
		total += t.Area()
	}
	return total
}
