package geom

import (
	"fmt"
	"math"
)

// Point describes a location in 2D space with real-valued coordinates.
//
// Unlike rectpack's integer Point, every coordinate here is a float64:
// polygon vertices, trapezoid corners and arc endpoints all need
// sub-unit precision once shapes are scaled and inflated.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint initializes a new point with the specified coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Eq tests whether the receiver and another point are equal up to Epsilon.
func (p Point) Eq(other Point) bool {
	return Equal(p.X, other.X) && Equal(p.Y, other.Y)
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("<%g, %g>", p.X, p.Y)
}

// Add returns the vector sum of the receiver and other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the vector difference of the receiver and other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the receiver scaled by a scalar factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Dot returns the dot product of the receiver and other.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z-component of the 3D cross product of the receiver
// and other, treated as vectors from the origin. Its sign indicates the
// turn direction (positive: counter-clockwise) at a vertex when called on
// the two incident edge vectors.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Norm returns the Euclidean length of the receiver treated as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between the receiver and other.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Norm()
}

// Rotate returns the receiver rotated counter-clockwise by angle radians
// about the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateAbout returns the receiver rotated counter-clockwise by angle
// radians about center.
func (p Point) RotateAbout(center Point, angle float64) Point {
	return p.Sub(center).Rotate(angle).Add(center)
}

// MirrorX returns the receiver reflected about the vertical (y) axis, i.e.
// the axial symmetry x -> -x used for item mirroring.
func (p Point) MirrorX() Point {
	return Point{X: -p.X, Y: p.Y}
}

// Translate returns the receiver translated by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
