// Package ioformat implements the JSON instance/solution codec and the
// SVG certificate writer described in spec.md §6.
package ioformat

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonAngleInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type jsonElement struct {
	Type          string  `json:"type"`
	Xs            float64 `json:"xs,omitempty"`
	Ys            float64 `json:"ys,omitempty"`
	Xe            float64 `json:"xe,omitempty"`
	Ye            float64 `json:"ye,omitempty"`
	Xc            float64 `json:"xc,omitempty"`
	Yc            float64 `json:"yc,omitempty"`
	Anticlockwise bool    `json:"anticlockwise,omitempty"`
}

type jsonShapeIn struct {
	Type     string      `json:"type"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Radius   float64     `json:"radius"`
	Vertices []jsonPoint `json:"vertices"`
	Elements []jsonElement `json:"elements"`
}

type jsonItemShapeIn struct {
	jsonShapeIn
	Holes       []jsonShapeIn `json:"holes"`
	QualityRule int           `json:"quality_rule"`
}

type jsonItemTypeIn struct {
	Shape           *jsonShapeIn       `json:"-"`
	Shapes          []jsonItemShapeIn  `json:"shapes"`
	Profit          float64            `json:"profit"`
	Copies          *int               `json:"copies"`
	CopiesMin       int                `json:"copies_min"`
	AllowedRotations []jsonAngleInterval `json:"allowed_rotations"`
	AllowMirroring  bool               `json:"allow_mirroring"`
	QualityRule     int                `json:"quality_rule"`

	// single-shape form: an item type JSON object may itself be a
	// <ShapeOrShapesList>, i.e. the shape fields directly instead of
	// nested under "shapes".
	Type     string        `json:"type"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Radius   float64       `json:"radius"`
	Vertices []jsonPoint   `json:"vertices"`
	Elements []jsonElement `json:"elements"`
}

type jsonDefectIn struct {
	jsonShapeIn
	Holes []jsonShapeIn `json:"holes"`
	Type  int           `json:"type"`
}

type jsonBinTypeIn struct {
	jsonShapeIn
	Cost      float64        `json:"cost"`
	Copies    *int           `json:"copies"`
	CopiesMin int            `json:"copies_min"`
	Defects   []jsonDefectIn `json:"defects"`
}

type jsonParametersIn struct {
	ItemItemMinimumSpacing float64                    `json:"item_item_minimum_spacing"`
	ItemBinMinimumSpacing  float64                    `json:"item_bin_minimum_spacing"`
	OpenDimensionXYRatio   float64                    `json:"open_dimension_xy_ratio"`
	QualityRules           map[string]map[string]bool `json:"quality_rules"`
}

type jsonInstanceIn struct {
	Objective  string           `json:"objective"`
	Parameters jsonParametersIn `json:"parameters"`
	BinTypes   []jsonBinTypeIn  `json:"bin_types"`
	ItemTypes  []jsonItemTypeIn `json:"item_types"`
}

// degToRad converts a JSON angle (degrees, per spec.md §6) to radians.
func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func shapeFromJSON(s jsonShapeIn) (geom.Shape, error) {
	switch s.Type {
	case "rectangle":
		return geom.NewRectangle(s.Width, s.Height), nil
	case "circle":
		return geom.NewCircle(s.Radius), nil
	case "polygon":
		if len(s.Vertices) < 3 {
			return geom.Shape{}, fmt.Errorf("%w: polygon needs at least 3 vertices", model.ErrInvalidInstance)
		}
		pts := make([]geom.Point, len(s.Vertices))
		for i, v := range s.Vertices {
			pts[i] = geom.Point{X: v.X, Y: v.Y}
		}
		return geom.NewPolygon(pts), nil
	case "general":
		elements := make([]geom.ShapeElement, len(s.Elements))
		for i, e := range s.Elements {
			elements[i] = elementFromJSON(e)
		}
		return geom.Shape{Elements: elements}, nil
	default:
		return geom.Shape{}, fmt.Errorf("%w: unknown shape type %q", model.ErrInvalidInstance, s.Type)
	}
}

func elementFromJSON(e jsonElement) geom.ShapeElement {
	start := geom.Point{X: e.Xs, Y: e.Ys}
	end := geom.Point{X: e.Xe, Y: e.Ye}
	if e.Type == "CircularArc" {
		center := geom.Point{X: e.Xc, Y: e.Yc}
		return geom.CircularArc(start, end, center, e.Anticlockwise)
	}
	return geom.LineSegment(start, end)
}

func itemShapeFromJSON(s jsonItemShapeIn) (geom.ItemShape, error) {
	shape, err := shapeFromJSON(s.jsonShapeIn)
	if err != nil {
		return geom.ItemShape{}, err
	}
	holes := make([]geom.Shape, len(s.Holes))
	for i, h := range s.Holes {
		hs, err := shapeFromJSON(h)
		if err != nil {
			return geom.ItemShape{}, err
		}
		holes[i] = hs
	}
	return geom.ItemShape{Shape: shape, Holes: holes, QualityRule: s.QualityRule}, nil
}

// DecodeInstance parses the JSON instance format from spec.md §6.
func DecodeInstance(data []byte) (*model.Instance, error) {
	var in jsonInstanceIn
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInstance, err)
	}

	objective, err := model.ParseObjective(in.Objective)
	if err != nil {
		return nil, err
	}

	qualityRules := make(map[int]map[int]bool, len(in.Parameters.QualityRules))
	for rule, row := range in.Parameters.QualityRules {
		ruleID, err := strconv.Atoi(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: non-integer quality rule key %q", model.ErrInvalidInstance, rule)
		}
		out := make(map[int]bool, len(row))
		for defect, allowed := range row {
			defectID, err := strconv.Atoi(defect)
			if err != nil {
				return nil, fmt.Errorf("%w: non-integer defect type key %q", model.ErrInvalidInstance, defect)
			}
			out[defectID] = allowed
		}
		qualityRules[ruleID] = out
	}

	parameters := model.Parameters{
		ItemItemMinimumSpacing: in.Parameters.ItemItemMinimumSpacing,
		ItemBinMinimumSpacing:  in.Parameters.ItemBinMinimumSpacing,
		OpenDimensionXYRatio:   in.Parameters.OpenDimensionXYRatio,
		QualityRules:           qualityRules,
	}

	binTypes := make([]model.BinType, len(in.BinTypes))
	for i, b := range in.BinTypes {
		shape, err := shapeFromJSON(b.jsonShapeIn)
		if err != nil {
			return nil, err
		}
		defects := make([]model.Defect, len(b.Defects))
		for j, d := range b.Defects {
			shape, err := shapeFromJSON(d.jsonShapeIn)
			if err != nil {
				return nil, err
			}
			holes := make([]geom.Shape, len(d.Holes))
			for k, h := range d.Holes {
				hs, err := shapeFromJSON(h)
				if err != nil {
					return nil, err
				}
				holes[k] = hs
			}
			defects[j] = model.Defect{Shape: geom.ItemShape{Shape: shape, Holes: holes}, Type: d.Type}
		}
		copies := 1
		if b.Copies != nil {
			copies = *b.Copies
		}
		binTypes[i] = model.BinType{
			ID:        i,
			Shape:     shape,
			Defects:   defects,
			Cost:      b.Cost,
			Copies:    copies,
			MinCopies: b.CopiesMin,
		}
	}

	itemTypes := make([]model.ItemType, len(in.ItemTypes))
	for i, it := range in.ItemTypes {
		shapes, err := itemTypeShapes(it)
		if err != nil {
			return nil, err
		}
		rotations := make([]model.AngleInterval, len(it.AllowedRotations))
		for j, r := range it.AllowedRotations {
			rotations[j] = model.AngleInterval{Start: degToRad(r.Start), End: degToRad(r.End)}
		}
		if len(rotations) == 0 {
			rotations = []model.AngleInterval{{Start: 0, End: 0}}
		}
		copies := 1
		if it.Copies != nil {
			copies = *it.Copies
		}
		itemTypes[i] = model.ItemType{
			ID:               i,
			Shapes:           shapes,
			AllowedRotations: rotations,
			AllowMirroring:   it.AllowMirroring,
			Profit:           it.Profit,
			Copies:           copies,
			MinCopies:        it.CopiesMin,
		}
	}

	inst := &model.Instance{
		Objective:  objective,
		Parameters: parameters,
		BinTypes:   binTypes,
		ItemTypes:  itemTypes,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// itemTypeShapes resolves an item type's shape list, whichever of the
// two input forms it used: a "shapes" array, or the fields of a single
// <Shape> directly on the item type object.
func itemTypeShapes(it jsonItemTypeIn) ([]geom.ItemShape, error) {
	if len(it.Shapes) > 0 {
		out := make([]geom.ItemShape, len(it.Shapes))
		for i, s := range it.Shapes {
			shape, err := itemShapeFromJSON(s)
			if err != nil {
				return nil, err
			}
			out[i] = shape
		}
		return out, nil
	}
	shape, err := shapeFromJSON(jsonShapeIn{
		Type: it.Type, Width: it.Width, Height: it.Height, Radius: it.Radius,
		Vertices: it.Vertices, Elements: it.Elements,
	})
	if err != nil {
		return nil, err
	}
	return []geom.ItemShape{{Shape: shape, QualityRule: it.QualityRule}}, nil
}

// --- solution certificate encoding ---

type jsonSolutionItemShape struct {
	Shape []jsonElement `json:"shape"`
	Holes [][]jsonElement `json:"holes"`
}

type jsonSolutionItem struct {
	ID         int                     `json:"id"`
	X          float64                 `json:"x"`
	Y          float64                 `json:"y"`
	Angle      float64                 `json:"angle"`
	Mirror     bool                    `json:"mirror"`
	ItemShapes []jsonSolutionItemShape `json:"item_shapes"`
}

type jsonSolutionDefect struct {
	Shape []jsonElement   `json:"shape"`
	Holes [][]jsonElement `json:"holes"`
}

type jsonSolutionBin struct {
	ID      int                  `json:"id"`
	Copies  int                  `json:"copies"`
	Shape   []jsonElement        `json:"shape"`
	Defects []jsonSolutionDefect `json:"defects"`
	Items   []jsonSolutionItem   `json:"items"`
}

type jsonSolutionOut struct {
	Bins []jsonSolutionBin `json:"bins"`
}

func elementsToJSON(elements []geom.ShapeElement) []jsonElement {
	out := make([]jsonElement, len(elements))
	for i, e := range elements {
		je := jsonElement{Xs: e.Start.X, Ys: e.Start.Y, Xe: e.End.X, Ye: e.End.Y}
		if e.Kind == geom.CircularArcKind {
			je.Type = "CircularArc"
			je.Xc, je.Yc = e.Center.X, e.Center.Y
			je.Anticlockwise = e.Anticlockwise
		} else {
			je.Type = "LineSegment"
		}
		out[i] = je
	}
	return out
}

// worldItemShapes returns s.Shapes, each transformed (mirror then rotate
// then translate) into the world coordinates at which item was placed,
// per spec.md §6's "arc/segment coordinates include the item's anchor
// translation so the file is self-contained".
func worldItemShapes(it model.ItemType, placed model.SolutionItem) []jsonSolutionItemShape {
	out := make([]jsonSolutionItemShape, len(it.Shapes))
	for i, s := range it.Shapes {
		shape := s.Shape
		holes := s.Holes
		if placed.Mirror {
			shape = shape.MirrorX()
			newHoles := make([]geom.Shape, len(holes))
			for j, h := range holes {
				newHoles[j] = h.MirrorX()
			}
			holes = newHoles
		}
		shape = shape.Rotate(placed.Angle).Translate(placed.BottomLeft.X, placed.BottomLeft.Y)
		holesJSON := make([][]jsonElement, len(holes))
		for j, h := range holes {
			h = h.Rotate(placed.Angle).Translate(placed.BottomLeft.X, placed.BottomLeft.Y)
			holesJSON[j] = elementsToJSON(h.Elements)
		}
		out[i] = jsonSolutionItemShape{Shape: elementsToJSON(shape.Elements), Holes: holesJSON}
	}
	return out
}

// EncodeSolution renders sol as the JSON certificate format from
// spec.md §6.
func EncodeSolution(sol *model.Solution) ([]byte, error) {
	out := jsonSolutionOut{Bins: make([]jsonSolutionBin, len(sol.Bins))}
	for i, bin := range sol.Bins {
		bt := sol.Instance.BinTypes[bin.BinTypeID]
		defects := make([]jsonSolutionDefect, len(bt.Defects))
		for j, d := range bt.Defects {
			holes := make([][]jsonElement, len(d.Shape.Holes))
			for k, h := range d.Shape.Holes {
				holes[k] = elementsToJSON(h.Elements)
			}
			defects[j] = jsonSolutionDefect{Shape: elementsToJSON(d.Shape.Shape.Elements), Holes: holes}
		}
		items := make([]jsonSolutionItem, len(bin.Items))
		for j, item := range bin.Items {
			it := sol.Instance.ItemTypes[item.ItemTypeID]
			items[j] = jsonSolutionItem{
				ID: item.ItemTypeID, X: item.BottomLeft.X, Y: item.BottomLeft.Y,
				Angle: item.Angle, Mirror: item.Mirror,
				ItemShapes: worldItemShapes(it, item),
			}
		}
		out.Bins[i] = jsonSolutionBin{
			ID: bin.BinTypeID, Copies: bin.Copies,
			Shape:   elementsToJSON(bt.Shape.Elements),
			Defects: defects,
			Items:   items,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
