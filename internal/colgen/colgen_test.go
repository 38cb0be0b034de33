package colgen

import (
	"context"
	"testing"
	"time"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyBinsInstance() *model.Instance {
	return &model.Instance{
		Objective: model.ObjectiveBinPacking,
		ItemTypes: []model.ItemType{
			{ID: 0, Shapes: []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}}, AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}}, Copies: 6, Profit: 1},
		},
		BinTypes: []model.BinType{
			{ID: 0, Shape: geom.NewRectangle(2, 1), Copies: 10, Cost: -1},
		},
	}
}

func TestSolveCoversAllDemand(t *testing.T) {
	inst := manyBinsInstance()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sol := Solve(ctx, inst, DefaultParams(), nil)
	require.NotNil(t, sol)
	assert.Equal(t, 6, sol.NumberOfItems)
}

func TestSeedColumnsProduceAtLeastOneColumnPerBinType(t *testing.T) {
	inst := manyBinsInstance()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	columns := seedColumns(ctx, inst, 16)
	require.NotEmpty(t, columns)
	for _, col := range columns {
		assert.Greater(t, col.Cost, 0.0)
	}
}

func TestColumnReducedCost(t *testing.T) {
	col := Column{Counts: []int{2, 1}, Cost: 5}
	rc := col.ReducedCost([]float64{1, 1})
	assert.InDelta(t, 2.0, rc, 1e-9)
}
