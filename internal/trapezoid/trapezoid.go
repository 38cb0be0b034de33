// Package trapezoid implements the generalized-trapezoid algebra (C4) and
// the polygon trapezoidation sweep (C3) described in spec.md §4.2–4.3,
// grounded on original_source/src/irregular/trapezoid.hpp and
// polygon_trapezoidation.cpp.
package trapezoid

import (
	"fmt"
	"math"

	"github.com/fontanf/packingsolver-go/internal/geom"
)

// GeneralizedTrapezoid is a quadrilateral with parallel horizontal top and
// bottom sides and two arbitrary (possibly vertical) side edges: two
// y-coordinates (Yb < Yt) and four x-coordinates (Xbl <= Xbr, Xtl <= Xtr).
type GeneralizedTrapezoid struct {
	Yb, Yt         float64
	Xbl, Xbr       float64
	Xtl, Xtr       float64
}

// New constructs a GeneralizedTrapezoid, failing loudly (mirroring the
// source's logic_error) when the shape invariants are violated.
func New(yb, yt, xbl, xbr, xtl, xtr float64) (GeneralizedTrapezoid, error) {
	if !geom.StrictlyLess(yb, yt) {
		return GeneralizedTrapezoid{}, fmt.Errorf("trapezoid: yb %v >= yt %v", yb, yt)
	}
	if geom.StrictlyGreater(xbl, xbr) {
		return GeneralizedTrapezoid{}, fmt.Errorf("trapezoid: xbl %v > xbr %v", xbl, xbr)
	}
	if geom.StrictlyGreater(xtl, xtr) {
		return GeneralizedTrapezoid{}, fmt.Errorf("trapezoid: xtl %v > xtr %v", xtl, xtr)
	}
	return GeneralizedTrapezoid{Yb: yb, Yt: yt, Xbl: xbl, Xbr: xbr, Xtl: xtl, Xtr: xtr}, nil
}

// MustNew is New but panics on an invalid trapezoid; reserved for
// callers (tests, literals) that construct trapezoids from known-valid
// constants.
func MustNew(yb, yt, xbl, xbr, xtl, xtr float64) GeneralizedTrapezoid {
	t, err := New(yb, yt, xbl, xbr, xtl, xtr)
	if err != nil {
		panic(err)
	}
	return t
}

// Height returns yt - yb.
func (t GeneralizedTrapezoid) Height() float64 { return t.Yt - t.Yb }

// WidthBottom returns xbr - xbl.
func (t GeneralizedTrapezoid) WidthBottom() float64 { return t.Xbr - t.Xbl }

// WidthTop returns xtr - xtl.
func (t GeneralizedTrapezoid) WidthTop() float64 { return t.Xtr - t.Xtl }

// Area returns the trapezoid's area.
func (t GeneralizedTrapezoid) Area() float64 {
	return (t.WidthTop() + t.WidthBottom()) * t.Height() / 2
}

// ALeft returns the slope of the left side, dx/dy: 0 for a vertical side,
// and always finite because the height is > 0 by construction, though it
// can be arbitrarily large for a nearly horizontal side.
func (t GeneralizedTrapezoid) ALeft() float64 {
	return (t.Xtl - t.Xbl) / t.Height()
}

// ARight returns the slope of the right side, dx/dy.
func (t GeneralizedTrapezoid) ARight() float64 {
	return (t.Xtr - t.Xbr) / t.Height()
}

// XMin returns the smallest x-coordinate among the four corners.
func (t GeneralizedTrapezoid) XMin() float64 {
	return math.Min(t.Xbl, t.Xtl)
}

// XMax returns the largest x-coordinate among the four corners.
func (t GeneralizedTrapezoid) XMax() float64 {
	return math.Max(t.Xbr, t.Xtr)
}

// LeftSideIncreasingNotVertical reports whether the left side strictly
// increases in x with y (ALeft > 0) and is not vertical.
func (t GeneralizedTrapezoid) LeftSideIncreasingNotVertical() bool { return t.ALeft() > 0 }

// LeftSideDecreasingNotVertical reports whether the left side strictly
// decreases in x with y.
func (t GeneralizedTrapezoid) LeftSideDecreasingNotVertical() bool { return t.ALeft() < 0 }

// RightSideIncreasingNotVertical reports whether the right side strictly
// increases in x with y.
func (t GeneralizedTrapezoid) RightSideIncreasingNotVertical() bool { return t.ARight() > 0 }

// RightSideDecreasingNotVertical reports whether the right side strictly
// decreases in x with y.
func (t GeneralizedTrapezoid) RightSideDecreasingNotVertical() bool { return t.ARight() < 0 }

// XLeft returns the x-coordinate of the point on the left side at height y,
// by linear interpolation.
func (t GeneralizedTrapezoid) XLeft(y float64) float64 {
	switch {
	case geom.Equal(y, t.Yb):
		return t.Xbl
	case geom.Equal(y, t.Yt):
		return t.Xtl
	case geom.Equal(t.Xbl, t.Xtl):
		return t.Xbl
	default:
		return t.Xbl + (y-t.Yb)*t.ALeft()
	}
}

// XRight returns the x-coordinate of the point on the right side at height
// y, by linear interpolation.
func (t GeneralizedTrapezoid) XRight(y float64) float64 {
	switch {
	case geom.Equal(y, t.Yb):
		return t.Xbr
	case geom.Equal(y, t.Yt):
		return t.Xtr
	case geom.Equal(t.Xbr, t.Xtr):
		return t.Xbr
	default:
		return t.Xbr + (y-t.Yb)*t.ARight()
	}
}

// AreaLeftOf returns the area of the part of the trapezoid with x >=
// xLeft: for xLeft within [min(xbl,xtl), max(xbr,xtr)] along the relevant
// side it is piecewise quadratic, matching trapezoid.hpp's `area(LengthDbl
// x_left)`. Despite the name (kept for parity with spec.md's glossary entry
// "area-left-of-x"), the region measured lies to the *right* of the cut —
// this mirrors the source exactly.
func (t GeneralizedTrapezoid) AreaLeftOf(xLeft float64) float64 {
	switch {
	case geom.StrictlyGreater(xLeft, t.Xbr) && geom.StrictlyGreater(xLeft, t.Xtr):
		k := (t.Xtr - t.Xbr) / (t.Xtr - xLeft)
		return (t.Xtr - t.Xbr) * t.Height() / 2 / k / k
	case geom.StrictlyGreater(xLeft, t.Xtr):
		k := (t.Xbr - t.Xtr) / (t.Xbr - xLeft)
		return (t.Xbr - t.Xtr) * t.Height() / 2 / k / k
	default:
		widthTop := t.Xtr - xLeft
		widthBottom := t.Xbr - xLeft
		return (widthTop + widthBottom) * t.Height() / 2
	}
}

// Intersects checks whether the receiver and other overlap with positive
// area: first on y, then on x at the common y-band (both its bottom and
// top must show non-empty x overlap).
func (t GeneralizedTrapezoid) Intersects(other GeneralizedTrapezoid) bool {
	if !geom.StrictlyLess(t.Yb, other.Yt) {
		return false
	}
	if !geom.StrictlyGreater(t.Yt, other.Yb) {
		return false
	}

	yb := math.Max(t.Yb, other.Yb)
	yt := math.Min(t.Yt, other.Yt)

	x1br := t.XRight(yb)
	x1tr := t.XRight(yt)
	x2bl := other.XLeft(yb)
	x2tl := other.XLeft(yt)
	if !geom.StrictlyGreater(x1br, x2bl) && !geom.StrictlyGreater(x1tr, x2tl) {
		return false
	}

	x1bl := t.XLeft(yb)
	x1tl := t.XLeft(yt)
	x2br := other.XRight(yb)
	x2tr := other.XRight(yt)
	if !geom.StrictlyLess(x1bl, x2br) && !geom.StrictlyLess(x1tl, x2tr) {
		return false
	}

	return true
}

// ComputeRightShift returns the minimum Δx >= 0 such that translating the
// receiver by (Δx, 0) removes any overlap with other. Returns 0 if they do
// not currently overlap on the shared y-band.
func (t GeneralizedTrapezoid) ComputeRightShift(other GeneralizedTrapezoid) float64 {
	if !geom.StrictlyLess(t.Yb, other.Yt) {
		return 0
	}
	if !geom.StrictlyGreater(t.Yt, other.Yb) {
		return 0
	}

	yb := math.Max(t.Yb, other.Yb)
	yt := math.Min(t.Yt, other.Yt)

	x1br := t.XRight(yb)
	x1tr := t.XRight(yt)
	x2bl := other.XLeft(yb)
	x2tl := other.XLeft(yt)
	if !geom.StrictlyGreater(x1br, x2bl) && !geom.StrictlyGreater(x1tr, x2tl) {
		return 0
	}

	x1bl := t.XLeft(yb)
	x1tl := t.XLeft(yt)
	x2br := other.XRight(yb)
	x2tr := other.XRight(yt)
	if !geom.StrictlyLess(x1bl, x2br) && !geom.StrictlyLess(x1tl, x2tr) {
		return 0
	}

	return math.Max(x2br-x1bl, x2tr-x1tl)
}

// ComputeRightShiftIfIntersects is ComputeRightShift but returns 0
// immediately if the receiver and other do not currently intersect — a
// cheap dominance check that avoids computing a shift for already-disjoint
// pairs.
func (t GeneralizedTrapezoid) ComputeRightShiftIfIntersects(other GeneralizedTrapezoid) float64 {
	if !t.Intersects(other) {
		return 0
	}
	return t.ComputeRightShift(other)
}

// ComputeTopRightShift returns the minimum Δ >= 0 such that translating the
// receiver by (Δ, a*Δ) removes overlap with other, used when C5 slides a
// trapezoid along a sloped supporting edge of slope a. It enumerates the
// four corners of each trapezoid and, for each, intersects the line of
// slope a through that corner with the four sides of the other trapezoid.
func (t GeneralizedTrapezoid) ComputeTopRightShift(other GeneralizedTrapezoid, a float64) float64 {
	xShift := 0.0

	type pt struct{ x, y float64 }
	selfCorners := []pt{
		{t.Xbl, t.Yb}, {t.Xbr, t.Yb}, {t.Xtl, t.Yt}, {t.Xtr, t.Yt},
	}
	otherCorners := []pt{
		{other.Xbl, other.Yb}, {other.Xbr, other.Yb}, {other.Xtl, other.Yt}, {other.Xtr, other.Yt},
	}

	consider := func(p pt, target GeneralizedTrapezoid, forward bool) {
		b := p.y - p.x*a

		tryX := func(x float64, loY, hiY float64) {
			y := a*x + b
			if !geom.GreaterEq(y, loY) || !geom.GreaterEq(hiY, y) {
				return
			}
			if forward {
				if geom.StrictlyGreater(x, p.x) {
					xShift = math.Max(xShift, x-p.x)
				}
			} else {
				if geom.StrictlyLess(x, p.x) {
					xShift = math.Max(xShift, p.x-x)
				}
			}
		}

		// Bottom side of target.
		if xb := (target.Yb - b) / a; geom.GreaterEq(xb, target.Xbl) && geom.GreaterEq(target.Xbr, xb) {
			tryX(xb, target.Yb, target.Yb)
		}
		// Top side of target.
		if xt := (target.Yt - b) / a; geom.GreaterEq(xt, target.Xtl) && geom.GreaterEq(target.Xtr, xt) {
			tryX(xt, target.Yt, target.Yt)
		}
		// Left side of target.
		if aLeft := target.ALeft(); aLeft != 0 {
			invA := 1 / aLeft
			bLeft := target.Yb - invA*target.Xbl
			if !geom.Equal(a, invA) {
				x := (bLeft - b) / (a - invA)
				tryX(x, target.Yb, target.Yt)
			}
		} else {
			tryX(target.Xtl, target.Yb, target.Yt)
		}
		// Right side of target.
		if aRight := target.ARight(); aRight != 0 {
			invA := 1 / aRight
			bRight := target.Yb - invA*target.Xbr
			if !geom.Equal(a, invA) {
				x := (bRight - b) / (a - invA)
				tryX(x, target.Yb, target.Yt)
			}
		} else {
			tryX(target.Xtr, target.Yb, target.Yt)
		}
	}

	for _, p := range selfCorners {
		consider(p, other, true)
	}
	for _, p := range otherCorners {
		consider(p, t, false)
	}

	return xShift
}

// Clean rounds slopes close to 0 or ±Inf to avoid numerical cascades, per
// spec.md's numeric-equality design note.
func (t GeneralizedTrapezoid) Clean() GeneralizedTrapezoid {
	yb, yt, xbl, xbr, xtl, xtr := t.Yb, t.Yt, t.Xbl, t.Xbr, t.Xtl, t.Xtr
	switch al := t.ALeft(); {
	case al > 1e2:
		xtl = xbl
	case al < -1e2:
		xbl = xtl
	case al > 0 && al < 1e-2:
		xtl = xbl
	case al < 0 && al > -1e-2:
		xbl = xtl
	}
	switch ar := t.ARight(); {
	case ar > 1e2:
		xbr = xtr
	case ar < -1e2:
		xtr = xbr
	case ar > 0 && ar < 1e-2:
		xbr = xtr
	case ar < 0 && ar > -1e-2:
		xtr = xbr
	}
	return MustNew(yb, yt, xbl, xbr, xtl, xtr)
}

// ShiftRight returns a copy of the trapezoid translated by (dx, 0).
func (t GeneralizedTrapezoid) ShiftRight(dx float64) GeneralizedTrapezoid {
	t.Xbl += dx
	t.Xbr += dx
	t.Xtl += dx
	t.Xtr += dx
	return t
}

// ShiftTop returns a copy of the trapezoid translated by (0, dy).
func (t GeneralizedTrapezoid) ShiftTop(dy float64) GeneralizedTrapezoid {
	t.Yb += dy
	t.Yt += dy
	return t
}

// Translate returns a copy of the trapezoid translated by (dx, dy).
func (t GeneralizedTrapezoid) Translate(dx, dy float64) GeneralizedTrapezoid {
	return t.ShiftRight(dx).ShiftTop(dy)
}

// Eq reports whether the receiver and other describe the same trapezoid up
// to Epsilon.
func (t GeneralizedTrapezoid) Eq(other GeneralizedTrapezoid) bool {
	return geom.Equal(t.Yb, other.Yb) && geom.Equal(t.Yt, other.Yt) &&
		geom.Equal(t.Xbl, other.Xbl) && geom.Equal(t.Xbr, other.Xbr) &&
		geom.Equal(t.Xtl, other.Xtl) && geom.Equal(t.Xtr, other.Xtr)
}

// String returns a debug representation matching the source's operator<<.
func (t GeneralizedTrapezoid) String() string {
	return fmt.Sprintf("yb %g yt %g xbl %g xbr %g xtl %g xtr %g", t.Yb, t.Yt, t.Xbl, t.Xbr, t.Xtl, t.Xtr)
}
