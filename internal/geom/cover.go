package geom

// ShapeRectangle is an axis-aligned rectangle, expressed by its
// bottom-left and top-right corners, used to cover a shape with a cheap
// conservative bounding approximation.
type ShapeRectangle struct {
	BottomLeft Point
	TopRight   Point
}

// CoveringWithRectangles returns a (currently single-rectangle) covering of
// shape's bounding box, mirrored from original_source's
// compute_covering_with_rectangle: used by the open-dimension shrinker
// (C11) to seed its initial bounding-rectangle guess before the first
// sub-instance is solved.
func CoveringWithRectangles(shape Shape, holes []Shape) []ShapeRectangle {
	min, max := shape.BoundingBox()
	return []ShapeRectangle{{BottomLeft: min, TopRight: max}}
}

// Width returns the rectangle's extent along x.
func (r ShapeRectangle) Width() float64 { return r.TopRight.X - r.BottomLeft.X }

// Height returns the rectangle's extent along y.
func (r ShapeRectangle) Height() float64 { return r.TopRight.Y - r.BottomLeft.Y }

// Area returns width * height.
func (r ShapeRectangle) Area() float64 { return r.Width() * r.Height() }
