package ioformat

import (
	"testing"

	"github.com/fontanf/packingsolver-go/internal/geom"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInstanceJSON = `{
  "objective": "bin-packing",
  "parameters": {
    "item_item_minimum_spacing": 0,
    "item_bin_minimum_spacing": 0
  },
  "bin_types": [
    { "type": "rectangle", "width": 2, "height": 4, "copies": 1 }
  ],
  "item_types": [
    { "type": "rectangle", "width": 1, "height": 1, "copies": 4,
      "allowed_rotations": [{"start": 0, "end": 0}] }
  ]
}`

func TestDecodeInstanceParsesBasicFields(t *testing.T) {
	inst, err := DecodeInstance([]byte(sampleInstanceJSON))
	require.NoError(t, err)
	assert.Equal(t, model.ObjectiveBinPacking, inst.Objective)
	require.Len(t, inst.BinTypes, 1)
	require.Len(t, inst.ItemTypes, 1)
	assert.Equal(t, 4, inst.ItemTypes[0].Copies)
	assert.InDelta(t, 1.0, inst.ItemTypes[0].Area(), 1e-9)
}

func TestDecodeInstanceRejectsUnknownObjective(t *testing.T) {
	_, err := DecodeInstance([]byte(`{"objective": "not-a-real-one", "bin_types": [], "item_types": []}`))
	assert.Error(t, err)
}

func TestEncodeSolutionRoundTripsBinCount(t *testing.T) {
	inst, err := DecodeInstance([]byte(sampleInstanceJSON))
	require.NoError(t, err)

	sol := model.NewSolution(inst)
	pos, err := sol.AddBin(0, 1)
	require.NoError(t, err)
	require.NoError(t, sol.AddItem(pos, 0, geom.Point{}, 0, false))

	data, err := EncodeSolution(sol)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bins"`)
}

func TestEncodeBinSVGProducesValidTags(t *testing.T) {
	inst, err := DecodeInstance([]byte(sampleInstanceJSON))
	require.NoError(t, err)
	sol := model.NewSolution(inst)
	pos, err := sol.AddBin(0, 1)
	require.NoError(t, err)
	require.NoError(t, sol.AddItem(pos, 0, geom.Point{}, 0, false))

	svg, err := EncodeBinSVG(sol, 0)
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "<polygon")
}
