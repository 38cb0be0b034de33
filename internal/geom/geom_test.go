package geom

import (
	"math"
	"testing"
)

func TestShapeAreaRectangle(t *testing.T) {
	s := NewRectangle(4, 2)
	if got := s.Area(); !Equal(got, 8) {
		t.Fatalf("Area() = %v, want 8", got)
	}
}

func TestShapeAreaCircle(t *testing.T) {
	s := NewCircle(2)
	want := math.Pi * 4
	if got := s.Area(); math.Abs(got-want) > 1e-3 {
		t.Fatalf("Area() = %v, want %v", got, want)
	}
}

func TestShapeTypeClassification(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
		want string
	}{
		{"circle", NewCircle(1), "circle"},
		{"square", NewRectangle(2, 2), "square"},
		{"rectangle", NewRectangle(4, 2), "rectangle"},
		{"polygon", NewPolygon([]Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}}), "polygon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.ShapeType(); got != tc.want {
				t.Errorf("ShapeType() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestRotateRoundTrip verifies property 7: rotate(rotate(S, θ), −θ) == S.
func TestRotateRoundTrip(t *testing.T) {
	s := NewPolygon([]Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}})
	for _, angle := range []float64{0.1, math.Pi / 4, math.Pi / 2, 1.234} {
		rotated := s.Rotate(angle).Rotate(-angle)
		for i, v := range s.Vertices() {
			got := rotated.Vertices()[i]
			if !v.Eq(got) {
				t.Fatalf("angle=%v vertex %d: got %v want %v", angle, i, got, v)
			}
		}
	}
}

func TestInflateZeroIsIdentity(t *testing.T) {
	s := NewRectangle(3, 3)
	if got := Inflate(s, 0); !Equal(got.Area(), s.Area()) {
		t.Fatalf("Inflate(s, 0) changed area: %v vs %v", got.Area(), s.Area())
	}
}

func TestInflateGrowsArea(t *testing.T) {
	s := NewRectangle(2, 2)
	inflated := Inflate(s, 0.5)
	if inflated.Area() <= s.Area() {
		t.Fatalf("Inflate should grow area, got %v <= %v", inflated.Area(), s.Area())
	}
}

func TestConvexHullOfRectangleIsRectangle(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 1, Y: 1}}
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("ConvexHull() returned %d vertices, want 4", len(hull))
	}
	if got := math.Abs(NewPolygon(hull).Area()); !Equal(got, 4) {
		t.Fatalf("hull area = %v, want 4", got)
	}
}

func TestCleanDropsCollinearAndDuplicates(t *testing.T) {
	s := NewPolygon([]Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0},
		{X: 2, Y: 2}, {X: 0, Y: 2},
	})
	cleaned := Clean(s)
	if len(cleaned.Elements) != 4 {
		t.Fatalf("Clean() kept %d vertices, want 4", len(cleaned.Elements))
	}
}
