package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallKnapsackInstance() *model.Instance {
	return &model.Instance{
		Objective: model.ObjectiveKnapsack,
		ItemTypes: []model.ItemType{
			{ID: 0, Shapes: []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}}, AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}}, Copies: 3, Profit: 1},
		},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(3, 1), Copies: 2}},
	}
}

func TestSequentialSingleKnapsackPlacesItems(t *testing.T) {
	inst := smallKnapsackInstance()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sol := SequentialSingleKnapsack(ctx, inst, DefaultSequentialSingleKnapsackParams(), nil)
	require.NotNil(t, sol)
	assert.GreaterOrEqual(t, sol.NumberOfItems, 1)
}

func TestSequentialValueCorrectionReturnsSolution(t *testing.T) {
	inst := smallKnapsackInstance()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sol := SequentialValueCorrection(ctx, inst, SequentialValueCorrectionParams{Iterations: 3, QueueSize: 16, GuideIDs: []int{4, 5}}, nil)
	require.NotNil(t, sol)
	assert.GreaterOrEqual(t, sol.NumberOfItems, 1)
}

func TestDichotomicSearchOnlyAppliesToVariableSizedBinPacking(t *testing.T) {
	inst := smallKnapsackInstance() // Knapsack, not VariableSizedBinPacking
	sol := DichotomicSearch(context.Background(), inst, DefaultDichotomicSearchParams(), nil)
	assert.Nil(t, sol)
}

func TestOpenDimensionSequentialShrinksBoundingBox(t *testing.T) {
	inst := &model.Instance{
		Objective: model.ObjectiveOpenDimensionX,
		ItemTypes: []model.ItemType{
			{ID: 0, Shapes: []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}}, AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}}, Copies: 4},
		},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sol := OpenDimensionSequential(ctx, inst, DefaultOpenDimensionParams(), nil)
	require.NotNil(t, sol)
	assert.True(t, sol.Full())
}
