package branching

import (
	"testing"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquareInstance(binW, binH float64, copies int) *model.Instance {
	return &model.Instance{
		Objective: model.ObjectiveBinPacking,
		ItemTypes: []model.ItemType{{
			ID:               0,
			Shapes:           []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}},
			AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}},
			Copies:           copies,
		}},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(binW, binH), Copies: 1}},
	}
}

func TestBuildTrapezoidSetsOnePerUnitSquare(t *testing.T) {
	inst := unitSquareInstance(4, 4, 4)
	sets, err := BuildTrapezoidSets(inst)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.InDelta(t, 1.0, sets[0].Area, 1e-9)
	assert.InDelta(t, 1.0, sets[0].Width, 1e-9)
	assert.InDelta(t, 1.0, sets[0].Height, 1e-9)
}

func TestRootHasNoBinOpen(t *testing.T) {
	inst := unitSquareInstance(4, 4, 4)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	assert.Equal(t, 0, root.NumberOfBins)
	assert.Nil(t, root.Parent)
}

func TestChildrenFromRootOpenNewBin(t *testing.T) {
	inst := unitSquareInstance(4, 4, 4)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	children := scheme.Children(root, AllDirections())
	require.NotEmpty(t, children)
	for _, c := range children {
		assert.Equal(t, 1, c.NumberOfBins)
		assert.Equal(t, -1, c.Placement.TrapezoidSetID)
	}
}

func TestPlacementChildrenFillBin(t *testing.T) {
	inst := unitSquareInstance(2, 1, 2)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	binNode := scheme.openNewBin(root, []Direction{LeftToRightBottomToTop})[0]

	children := scheme.placementChildren(binNode)
	require.NotEmpty(t, children)
	first := children[0]
	assert.Equal(t, 1, first.ItemCopies[0])
	assert.InDelta(t, 1.0, first.ItemArea, 1e-9)

	second := scheme.placementChildren(first)
	require.NotEmpty(t, second)
	var full *Node
	for _, c := range second {
		if c.ItemCopies[0] == 2 {
			full = c
		}
	}
	require.NotNil(t, full)
	assert.InDelta(t, 2.0, full.ItemArea, 1e-9)
}

func TestDominanceRequiresEqualItemCopies(t *testing.T) {
	inst := unitSquareInstance(4, 4, 4)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	a := scheme.openNewBin(root, []Direction{LeftToRightBottomToTop})[0]
	b := scheme.placementChildren(a)[0]
	assert.False(t, Dominates(a, b))
}

// lShapeAndSquareInstance builds a two-item-type instance: item 0 is an
// L-shape (a 2x2 bounding box with its top-right 1x1 quadrant notched
// out) and item 1 is a unit square, both non-rotating. It exercises
// per-shape (not bounding-box) skyline placement: the L-shape's real
// silhouette leaves a one-unit-high step at x in [1, 2), tall enough for
// the unit square to nest onto rather than stacking above the L's full
// 2-unit bounding-box height.
func lShapeAndSquareInstance(binW, binH float64) *model.Instance {
	lShape := geom.NewPolygon([]geom.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	})
	return &model.Instance{
		Objective: model.ObjectiveBinPacking,
		ItemTypes: []model.ItemType{
			{
				ID:               0,
				Shapes:           []geom.ItemShape{{Shape: lShape}},
				AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}},
				Copies:           1,
			},
			{
				ID:               1,
				Shapes:           []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}},
				AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}},
				Copies:           1,
			},
		},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(binW, binH), Copies: 1}},
	}
}

// TestConcaveItemNestsIntoOwnNotch places the L-shape first, then the
// unit square, and requires the square to land at y=1 (nested onto the
// L-shape's own step) rather than y=2 (stacked above its full bounding
// box): proof the skyline is spliced per sub-trapezoid, not booked as one
// bounding-box footprint.
func TestConcaveItemNestsIntoOwnNotch(t *testing.T) {
	inst := lShapeAndSquareInstance(3, 2)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	binNode := scheme.openNewBin(root, []Direction{LeftToRightBottomToTop})[0]

	afterL := scheme.placementChildren(binNode)
	require.NotEmpty(t, afterL)
	var lPlaced *Node
	for _, c := range afterL {
		if c.ItemCopies[0] == 1 {
			lPlaced = c
		}
	}
	require.NotNil(t, lPlaced)

	children := scheme.placementChildren(lPlaced)
	require.NotEmpty(t, children)
	var square *Node
	for _, c := range children {
		if c.ItemCopies[1] == 1 && geom.Equal(c.Placement.Anchor.X, 1) {
			square = c
		}
	}
	require.NotNil(t, square)
	assert.InDelta(t, 1.0, square.Placement.Anchor.Y, 1e-9)
}

func TestToSolutionReconstructsPlacedItems(t *testing.T) {
	inst := unitSquareInstance(2, 1, 2)
	scheme, err := New(inst)
	require.NoError(t, err)
	root := scheme.Root()
	binNode := scheme.openNewBin(root, []Direction{LeftToRightBottomToTop})[0]
	firstItem := scheme.placementChildren(binNode)[0]

	sol := scheme.ToSolution(firstItem)
	assert.Equal(t, 1, sol.NumberOfBins)
	assert.Equal(t, 1, sol.NumberOfItems)
}
