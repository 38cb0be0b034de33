package orchestrator

import (
	"github.com/fontanf/packingsolver-go/internal/model"
)

// strategyKind names one of the enabled strategies, used for logging
// and as the fan-out unit in Run.
type strategyKind int

const (
	strategyTreeSearch strategyKind = iota
	strategySequentialSingleKnapsack
	strategySequentialValueCorrection
	strategyColumnGeneration
	strategyDichotomicSearch
	strategyOpenDimension
)

func (k strategyKind) String() string {
	switch k {
	case strategyTreeSearch:
		return "tree-search"
	case strategySequentialSingleKnapsack:
		return "sequential-single-knapsack"
	case strategySequentialValueCorrection:
		return "sequential-value-correction"
	case strategyColumnGeneration:
		return "column-generation"
	case strategyDichotomicSearch:
		return "dichotomic-search"
	case strategyOpenDimension:
		return "open-dimension"
	default:
		return "unknown"
	}
}

// totalBinCopies sums Copies across an instance's bin types, treating a
// zero Copies entry (meaning "unlimited" is not representable here, so
// every instance is expected to set an explicit cap) at face value.
func totalBinCopies(inst *model.Instance) int {
	total := 0
	for _, bt := range inst.BinTypes {
		total += bt.Copies
	}
	return total
}

// expectedItemsPerBin estimates how many items a single bin can hold by
// dividing the largest bin area by the mean item-type area, used by the Knapsack and
// BinPacking branches of the selection rule.
func expectedItemsPerBin(inst *model.Instance) float64 {
	if len(inst.BinTypes) == 0 || len(inst.ItemTypes) == 0 {
		return 0
	}
	meanItemArea := 0.0
	for _, it := range inst.ItemTypes {
		meanItemArea += it.Area()
	}
	meanItemArea /= float64(len(inst.ItemTypes))
	if meanItemArea <= 0 {
		return 0
	}
	maxBinArea := 0.0
	for _, bt := range inst.BinTypes {
		if a := bt.Area(); a > maxBinArea {
			maxBinArea = a
		}
	}
	return maxBinArea / meanItemArea
}

func meanItemTypeCopies(inst *model.Instance) float64 {
	if len(inst.ItemTypes) == 0 {
		return 0
	}
	total := 0
	for _, it := range inst.ItemTypes {
		total += it.Copies
	}
	return float64(total) / float64(len(inst.ItemTypes))
}

// selectStrategies implements spec.md §4.7 point 2: given the instance
// and the toggles the caller enabled, decide which strategies actually
// run for this objective/shape of instance.
func selectStrategies(inst *model.Instance, p Params) []strategyKind {
	if inst.Objective.IsOpenDimension() {
		return []strategyKind{strategyOpenDimension}
	}
	if totalBinCopies(inst) <= 1 {
		return []strategyKind{strategyTreeSearch}
	}

	manyItemCopies := meanItemTypeCopies(inst) > p.ManyItemTypeCopiesFactor*expectedItemsPerBin(inst)
	manyItemsInBins := expectedItemsPerBin(inst) > p.ManyItemsInBinsThreshold
	singleBinType := len(inst.BinTypes) == 1

	var out []strategyKind
	switch inst.Objective {
	case model.ObjectiveKnapsack:
		if !manyItemCopies {
			if p.UseTreeSearch {
				out = append(out, strategyTreeSearch)
			}
			break
		}
		if manyItemsInBins {
			if p.UseSequentialValueCorrection {
				out = append(out, strategySequentialValueCorrection)
			}
			if p.UseColumnGeneration && singleBinType {
				out = append(out, strategyColumnGeneration)
			}
		} else if p.UseSequentialSingleKnapsack {
			out = append(out, strategySequentialSingleKnapsack)
		}

	case model.ObjectiveBinPacking, model.ObjectiveBinPackingWithLeftovers:
		if !manyItemCopies {
			if p.UseTreeSearch {
				out = append(out, strategyTreeSearch)
			}
			break
		}
		if manyItemsInBins {
			if p.UseSequentialValueCorrection {
				out = append(out, strategySequentialValueCorrection)
			}
			if p.UseColumnGeneration && singleBinType {
				out = append(out, strategyColumnGeneration)
			}
		} else if p.UseSequentialSingleKnapsack {
			out = append(out, strategySequentialSingleKnapsack)
		}

	case model.ObjectiveVariableSizedBinPacking:
		if p.UseTreeSearch {
			out = append(out, strategyTreeSearch)
		}
		if p.UseDichotomicSearch && len(inst.BinTypes) > 1 {
			out = append(out, strategyDichotomicSearch)
		}
	}

	if len(out) == 0 {
		out = append(out, strategyTreeSearch)
	}
	return out
}
