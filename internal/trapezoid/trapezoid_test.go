package trapezoid

import (
	"math"
	"testing"

	"github.com/fontanf/packingsolver-go/internal/geom"
)

func TestAreaRectangleTrapezoid(t *testing.T) {
	tz := MustNew(0, 2, 0, 3, 0, 3)
	if got := tz.Area(); !geom.Equal(got, 6) {
		t.Fatalf("Area() = %v, want 6", got)
	}
}

func TestIntersectsDisjoint(t *testing.T) {
	a := MustNew(0, 1, 0, 1, 0, 1)
	b := MustNew(0, 1, 2, 3, 2, 3)
	if a.Intersects(b) {
		t.Fatal("expected no intersection")
	}
}

func TestIntersectsOverlap(t *testing.T) {
	a := MustNew(0, 1, 0, 2, 0, 2)
	b := MustNew(0, 1, 1, 3, 1, 3)
	if !a.Intersects(b) {
		t.Fatal("expected intersection")
	}
}

// TestComputeRightShiftResolvesIntersection verifies property 10:
// compute_right_shift is idempotent after application.
func TestComputeRightShiftResolvesIntersection(t *testing.T) {
	tests := []struct {
		a, b GeneralizedTrapezoid
	}{
		{MustNew(0, 1, 0, 2, 0, 2), MustNew(0, 1, 1, 3, 1, 3)},
		{MustNew(0, 2, 0, 1, 0.5, 1.5), MustNew(0, 2, 0.5, 2, 0, 1.5)},
		{MustNew(0, 1, -1, 1, -1, 1), MustNew(0.5, 1.5, 0, 2, 0, 2)},
	}
	for i, tc := range tests {
		shift := tc.a.ComputeRightShift(tc.b)
		shifted := tc.a.ShiftRight(shift)
		if shifted.Intersects(tc.b) {
			t.Errorf("case %d: shift=%v still intersects", i, shift)
		}
	}
}

func TestComputeRightShiftZeroWhenDisjoint(t *testing.T) {
	a := MustNew(0, 1, 0, 1, 0, 1)
	b := MustNew(0, 1, 5, 6, 5, 6)
	if got := a.ComputeRightShift(b); got != 0 {
		t.Fatalf("ComputeRightShift() = %v, want 0", got)
	}
}

func TestXLeftXRightInterpolation(t *testing.T) {
	tz := MustNew(0, 2, 0, 4, 2, 6)
	if got := tz.XLeft(1); !geom.Equal(got, 1) {
		t.Errorf("XLeft(1) = %v, want 1", got)
	}
	if got := tz.XRight(1); !geom.Equal(got, 5) {
		t.Errorf("XRight(1) = %v, want 5", got)
	}
}

func TestTrapezoidationAreaPreservingRectangle(t *testing.T) {
	s := geom.NewRectangle(4, 3)
	trapezoids, err := Trapezoidate(s, nil)
	if err != nil {
		t.Fatalf("Trapezoidate() error = %v", err)
	}
	if got := TotalArea(trapezoids); !geom.Equal(got, 12) {
		t.Fatalf("TotalArea() = %v, want 12", got)
	}
}

func TestTrapezoidationAreaPreservingLShape(t *testing.T) {
	// An L-shape: a 4x4 square with a 2x2 notch removed from the top right.
	s := geom.NewPolygon([]geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	})
	trapezoids, err := Trapezoidate(s, nil)
	if err != nil {
		t.Fatalf("Trapezoidate() error = %v", err)
	}
	want := math.Abs(s.Area())
	if got := TotalArea(trapezoids); !geom.Equal(got, want) {
		t.Fatalf("TotalArea() = %v, want %v", got, want)
	}
}

func TestTrapezoidationWithHole(t *testing.T) {
	outer := geom.NewRectangle(10, 10)
	hole := geom.NewPolygon([]geom.Point{
		{X: 7, Y: 7}, {X: 7, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 7},
	}) // clockwise 4x4 hole centered in the 10x10 square.
	trapezoids, err := Trapezoidate(outer, []geom.Shape{hole})
	if err != nil {
		t.Fatalf("Trapezoidate() error = %v", err)
	}
	want := 100.0 - 16.0
	if got := TotalArea(trapezoids); !geom.Equal(got, want) {
		t.Fatalf("TotalArea() = %v, want %v", got, want)
	}
}

func TestTrapezoidationPairwiseDisjoint(t *testing.T) {
	s := geom.NewPolygon([]geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	})
	trapezoids, err := Trapezoidate(s, nil)
	if err != nil {
		t.Fatalf("Trapezoidate() error = %v", err)
	}
	for i := range trapezoids {
		for j := i + 1; j < len(trapezoids); j++ {
			if trapezoids[i].Intersects(trapezoids[j]) {
				t.Errorf("trapezoids %d and %d overlap: %v / %v", i, j, trapezoids[i], trapezoids[j])
			}
		}
	}
}
