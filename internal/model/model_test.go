package model

import (
	"testing"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/stretchr/testify/assert"
)

func unitSquareItem(id int) ItemType {
	return ItemType{
		ID:               id,
		Shapes:           []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}},
		AllowedRotations: []AngleInterval{{Start: 0, End: 0}},
		Copies:           1,
	}
}

func TestInstanceValidateRejectsMinCopiesExceedingCopies(t *testing.T) {
	inst := &Instance{
		ItemTypes: []ItemType{{ID: 0, Shapes: []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}}, Copies: 1, MinCopies: 2}},
	}
	err := inst.Validate()
	assert.ErrorIs(t, err, ErrInvalidInstance)
}

func TestInstanceValidateRejectsOpenDimensionWithWrongBinCount(t *testing.T) {
	inst := &Instance{
		Objective: ObjectiveOpenDimensionX,
		ItemTypes: []ItemType{unitSquareItem(0)},
		BinTypes: []BinType{
			{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1},
			{ID: 1, Shape: geom.NewRectangle(10, 10), Copies: 1},
		},
	}
	err := inst.Validate()
	assert.ErrorIs(t, err, ErrInvalidInstance)
}

func TestInstanceValidateAcceptsWellFormedInstance(t *testing.T) {
	inst := &Instance{
		Objective: ObjectiveBinPacking,
		ItemTypes: []ItemType{unitSquareItem(0)},
		BinTypes:  []BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	assert.NoError(t, inst.Validate())
}

// TestSolutionItemAreaInvariant checks property 1: the sum over bins of
// placed item areas equals Solution.ItemArea.
func TestSolutionItemAreaInvariant(t *testing.T) {
	inst := &Instance{
		Objective: ObjectiveBinPacking,
		ItemTypes: []ItemType{unitSquareItem(0)},
		BinTypes:  []BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	sol := NewSolution(inst)
	pos, err := sol.AddBin(0, 1)
	assert.NoError(t, err)
	assert.NoError(t, sol.AddItem(pos, 0, geom.Point{}, 0, false))
	assert.NoError(t, sol.AddItem(pos, 0, geom.Point{X: 1}, 0, false))

	var total float64
	for _, b := range sol.Bins {
		total += b.ItemArea
	}
	assert.InEpsilon(t, total, sol.ItemArea, 1e-9)
	assert.Equal(t, 2, sol.ItemCopies[0])
}

func TestSolutionAddItemRejectsDisallowedAngle(t *testing.T) {
	inst := &Instance{
		ItemTypes: []ItemType{unitSquareItem(0)},
		BinTypes:  []BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	sol := NewSolution(inst)
	pos, _ := sol.AddBin(0, 1)
	err := sol.AddItem(pos, 0, geom.Point{}, 1.5, false)
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestSolutionAddItemRejectsMirrorWhenDisallowed(t *testing.T) {
	inst := &Instance{
		ItemTypes: []ItemType{unitSquareItem(0)},
		BinTypes:  []BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	sol := NewSolution(inst)
	pos, _ := sol.AddBin(0, 1)
	err := sol.AddItem(pos, 0, geom.Point{}, 0, true)
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

// TestFullWhenAllCopiesPlaced exercises scenario S1/S4's "solution.full()"
// assertion.
func TestFullWhenAllCopiesPlaced(t *testing.T) {
	item := unitSquareItem(0)
	item.Copies = 2
	inst := &Instance{
		ItemTypes: []ItemType{item},
		BinTypes:  []BinType{{ID: 0, Shape: geom.NewRectangle(2, 1), Copies: 1}},
	}
	sol := NewSolution(inst)
	pos, _ := sol.AddBin(0, 1)
	_ = sol.AddItem(pos, 0, geom.Point{X: 0}, 0, false)
	assert.False(t, sol.Full())
	_ = sol.AddItem(pos, 0, geom.Point{X: 1}, 0, false)
	assert.True(t, sol.Full())
}
