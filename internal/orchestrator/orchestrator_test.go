package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourSquaresInstance() *model.Instance {
	return &model.Instance{
		Objective: model.ObjectiveBinPacking,
		ItemTypes: []model.ItemType{
			{
				ID:               0,
				Shapes:           []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}},
				AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}},
				Copies:           4,
			},
		},
		BinTypes: []model.BinType{
			{ID: 0, Shape: geom.NewRectangle(2, 4), Copies: 1},
		},
	}
}

func TestRunFourSquaresFitsOneBin(t *testing.T) {
	inst := fourSquaresInstance()
	params := DefaultParams()
	params.TimeLimit = 3 * time.Second

	result, err := Run(context.Background(), inst, params)
	require.NoError(t, err)
	require.NotNil(t, result.Solution)
	assert.True(t, result.Solution.Full())
	assert.Equal(t, 1, result.Solution.NumberOfBins)
	assert.NotEmpty(t, result.RunID)
}

func TestAreaBoundBinPackingIsPositive(t *testing.T) {
	inst := fourSquaresInstance()
	bound := AreaBound(inst)
	assert.Greater(t, bound, 0.0)
}

func TestSelectStrategiesSingleBinUsesTreeSearchOnly(t *testing.T) {
	inst := fourSquaresInstance()
	kinds := selectStrategies(inst, DefaultParams())
	require.Len(t, kinds, 1)
	assert.Equal(t, strategyTreeSearch, kinds[0])
}

func TestSelectStrategiesOpenDimensionUsesOpenDimensionOnly(t *testing.T) {
	inst := &model.Instance{
		Objective: model.ObjectiveOpenDimensionX,
		ItemTypes: []model.ItemType{
			{ID: 0, Shapes: []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}}, AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}}, Copies: 4},
		},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(10, 10), Copies: 1}},
	}
	kinds := selectStrategies(inst, DefaultParams())
	require.Len(t, kinds, 1)
	assert.Equal(t, strategyOpenDimension, kinds[0])
}

func TestBestSolutionOnlyKeepsImprovements(t *testing.T) {
	inst := fourSquaresInstance()
	worse := model.NewSolution(inst)
	better := model.NewSolution(inst)
	better.NumberOfItems = 4

	var b bestSolution
	assert.True(t, b.update(better))
	assert.False(t, b.update(worse))
	assert.Equal(t, better, b.get())
}
