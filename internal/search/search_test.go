package search

import (
	"context"
	"testing"
	"time"

	"github.com/fontanf/packingsolver-go/internal/branching"
	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoItemInstance() *model.Instance {
	return &model.Instance{
		Objective: model.ObjectiveBinPacking,
		ItemTypes: []model.ItemType{{
			ID:               0,
			Shapes:           []geom.ItemShape{{Shape: geom.NewRectangle(1, 1)}},
			AllowedRotations: []model.AngleInterval{{Start: 0, End: 0}},
			Copies:           2,
		}},
		BinTypes: []model.BinType{{ID: 0, Shape: geom.NewRectangle(2, 1), Copies: 1}},
	}
}

func TestBeamFindsFullPacking(t *testing.T) {
	inst := twoItemInstance()
	scheme, err := branching.New(inst)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result := Beam(ctx, scheme, branching.Guide0, []branching.Direction{branching.LeftToRightBottomToTop}, 8)
	require.NotNil(t, result.Best)
	sol := scheme.ToSolution(result.Best)
	assert.True(t, sol.Full())
}

func TestWorkerImprovesAcrossIterations(t *testing.T) {
	inst := twoItemInstance()
	scheme, err := branching.New(inst)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var calls int
	best := Worker(ctx, scheme, 0, branching.LeftToRightBottomToTop, DefaultGrowthFactor, func(s *model.Solution) {
		calls++
	})
	require.NotNil(t, best)
	assert.True(t, best.Full())
	assert.GreaterOrEqual(t, calls, 1)
}
