package ioformat

import (
	"fmt"
	"strings"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
)

// EncodeBinSVG renders one bin of sol as an SVG certificate, per
// spec.md §6: a viewBox of the bin bounding box, a background rectangle
// for the bin, red polygons for defects, blue polygons for items with
// the item-type id drawn at the item centroid. No SVG-authoring library
// is represented anywhere in the retrieval pack, so this builds markup
// directly with strings.Builder, matching how the pack's own SVG
// producers (wall_composition/renderer, arxobject/renderer) hand-roll
// their output.
func EncodeBinSVG(sol *model.Solution, binIdx int) (string, error) {
	if binIdx < 0 || binIdx >= len(sol.Bins) {
		return "", fmt.Errorf("bin index %d out of range", binIdx)
	}
	bin := sol.Bins[binIdx]
	bt := sol.Instance.BinTypes[bin.BinTypeID]
	min, max := bt.BoundingBox()
	width, height := max.X-min.X, max.Y-min.Y

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		min.X, min.Y, width, height)
	fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="white" stroke="black" stroke-width="0.01"/>`+"\n",
		min.X, min.Y, width, height)

	for _, d := range bt.Defects {
		writePolygon(&b, d.Shape.Shape, "red", 0.6)
		for _, h := range d.Shape.Holes {
			writePolygon(&b, h, "white", 1)
		}
	}

	for _, item := range bin.Items {
		it := sol.Instance.ItemTypes[item.ItemTypeID]
		for _, s := range it.Shapes {
			shape := s.Shape
			if item.Mirror {
				shape = shape.MirrorX()
			}
			shape = shape.Rotate(item.Angle).Translate(item.BottomLeft.X, item.BottomLeft.Y)
			writePolygon(&b, shape, "steelblue", 0.6)
			for _, h := range s.Holes {
				hole := h
				if item.Mirror {
					hole = hole.MirrorX()
				}
				hole = hole.Rotate(item.Angle).Translate(item.BottomLeft.X, item.BottomLeft.Y)
				writePolygon(&b, hole, "white", 1)
			}
		}
		centroid := itemCentroid(it, item)
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="%g" text-anchor="middle">%d</text>`+"\n",
			centroid.X, centroid.Y, width/40+0.05, item.ItemTypeID)
	}

	b.WriteString("</svg>\n")
	return b.String(), nil
}

func writePolygon(b *strings.Builder, shape geom.Shape, fill string, opacity float64) {
	vertices := shape.Vertices()
	if len(vertices) == 0 {
		return
	}
	points := make([]string, len(vertices))
	for i, v := range vertices {
		points[i] = fmt.Sprintf("%g,%g", v.X, v.Y)
	}
	fmt.Fprintf(b, `<polygon points="%s" fill="%s" fill-opacity="%g"/>`+"\n",
		strings.Join(points, " "), fill, opacity)
}

// itemCentroid returns the average of an item type's (transformed)
// vertices as a cheap stand-in for the true polygon centroid, adequate
// for label placement.
func itemCentroid(it model.ItemType, placed model.SolutionItem) geom.Point {
	var sumX, sumY float64
	count := 0
	for _, s := range it.Shapes {
		shape := s.Shape
		if placed.Mirror {
			shape = shape.MirrorX()
		}
		shape = shape.Rotate(placed.Angle).Translate(placed.BottomLeft.X, placed.BottomLeft.Y)
		for _, v := range shape.Vertices() {
			sumX += v.X
			sumY += v.Y
			count++
		}
	}
	if count == 0 {
		return placed.BottomLeft
	}
	return geom.Point{X: sumX / float64(count), Y: sumY / float64(count)}
}
