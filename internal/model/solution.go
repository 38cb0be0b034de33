package model

import (
	"fmt"

	"github.com/fontanf/packingsolver-go/internal/geom"
)

// SolutionItem is one placed item: its type, bottom-left anchor, rotation
// angle (radians) and mirror flag.
type SolutionItem struct {
	ItemTypeID int
	BottomLeft geom.Point
	Angle      float64
	Mirror     bool
}

// SolutionBin is one populated bin: its type, copy count and placed items.
type SolutionBin struct {
	BinTypeID int
	Copies    int
	Items     []SolutionItem
	ItemArea  float64
}

// Solution is a list of populated bins plus the derived totals mirrored
// from the search node aggregates (spec.md §3).
type Solution struct {
	Instance *Instance

	Bins []SolutionBin

	BinCopies  []int
	ItemCopies []int

	NumberOfBins  int
	NumberOfItems int
	ItemArea      float64
	Profit        float64
	LeftoverValue float64
	XMax, YMax    float64
	BinArea       float64
	BinCost       float64
}

// NewSolution creates an empty solution bound to inst.
func NewSolution(inst *Instance) *Solution {
	return &Solution{
		Instance:   inst,
		BinCopies:  make([]int, len(inst.BinTypes)),
		ItemCopies: make([]int, len(inst.ItemTypes)),
	}
}

// AddBin appends a new bin of the given type and copy count, returning its
// bin position.
func (s *Solution) AddBin(binTypeID, copies int) (int, error) {
	if binTypeID < 0 || binTypeID >= len(s.Instance.BinTypes) {
		return 0, fmt.Errorf("%w: bin type id %d out of range", ErrInvalidPlacement, binTypeID)
	}
	pos := len(s.Bins)
	s.Bins = append(s.Bins, SolutionBin{BinTypeID: binTypeID, Copies: copies})
	s.BinCopies[binTypeID] += copies
	bt := s.Instance.BinTypes[binTypeID]
	s.NumberOfBins += copies
	s.BinArea += bt.Area() * float64(copies)
	s.BinCost += bt.EffectiveCost() * float64(copies)
	return pos, nil
}

// AddItem appends a placed item to the bin at binPos, validating angle and
// mirror against the item type's allowed rotations (spec.md §7
// ErrInvalidPlacement).
func (s *Solution) AddItem(binPos, itemTypeID int, bottomLeft geom.Point, angle float64, mirror bool) error {
	if itemTypeID < 0 || itemTypeID >= len(s.Instance.ItemTypes) {
		return fmt.Errorf("%w: item type id %d out of range", ErrInvalidPlacement, itemTypeID)
	}
	it := s.Instance.ItemTypes[itemTypeID]
	if !it.AllowsAngle(angle) {
		return fmt.Errorf("%w: item type %d does not allow angle %v", ErrInvalidPlacement, itemTypeID, angle)
	}
	if mirror && !it.AllowMirroring {
		return fmt.Errorf("%w: item type %d does not allow mirroring", ErrInvalidPlacement, itemTypeID)
	}
	if binPos < 0 || binPos >= len(s.Bins) {
		return fmt.Errorf("%w: bin position %d out of range", ErrInvalidPlacement, binPos)
	}

	item := SolutionItem{ItemTypeID: itemTypeID, BottomLeft: bottomLeft, Angle: angle, Mirror: mirror}
	s.Bins[binPos].Items = append(s.Bins[binPos].Items, item)
	area := it.Area()
	s.Bins[binPos].ItemArea += area

	s.ItemCopies[itemTypeID]++
	s.NumberOfItems++
	s.ItemArea += area
	s.Profit += it.Profit

	min, max := it.BoundingBox()
	_ = min
	worldMaxX := bottomLeft.X + (max.X - min.X)
	worldMaxY := bottomLeft.Y + (max.Y - min.Y)
	if worldMaxX > s.XMax {
		s.XMax = worldMaxX
	}
	if worldMaxY > s.YMax {
		s.YMax = worldMaxY
	}
	return nil
}

// Append copies every bin (and the items within them) of other into the
// receiver, optionally remapping bin type ids and item type ids — the Go
// analogue of Solution::append in original_source/src/irregular/solution.cpp,
// used by strategies (C7-C11) that build a solution for a single bin or a
// sub-instance and need to splice it into the running incumbent.
func (s *Solution) Append(other *Solution, binTypeIDs, itemTypeIDs []int) {
	for _, bin := range other.Bins {
		binTypeID := bin.BinTypeID
		if binTypeIDs != nil {
			binTypeID = binTypeIDs[bin.BinTypeID]
		}
		pos, err := s.AddBin(binTypeID, bin.Copies)
		if err != nil {
			continue
		}
		for _, item := range bin.Items {
			itemTypeID := item.ItemTypeID
			if itemTypeIDs != nil {
				itemTypeID = itemTypeIDs[item.ItemTypeID]
			}
			_ = s.AddItem(pos, itemTypeID, item.BottomLeft, item.Angle, item.Mirror)
		}
	}
}

// Full reports whether every item copy of the instance has been placed.
func (s *Solution) Full() bool {
	return s.NumberOfItems == s.Instance.NumberOfItems()
}

// FullWaste returns BinArea - ItemArea.
func (s *Solution) FullWaste() float64 {
	return s.BinArea - s.ItemArea
}

// FullWastePercentage returns FullWaste / BinArea, or 0 when BinArea is 0.
func (s *Solution) FullWastePercentage() float64 {
	if s.BinArea == 0 {
		return 0
	}
	return s.FullWaste() / s.BinArea
}

// Better reports whether the receiver is a strictly better solution than
// other under the instance's objective comparator, mirroring
// Solution::operator< (lower is better throughout: fewer bins, lower
// waste, higher profit is expressed as lower negative profit, etc.).
func (s *Solution) Better(other *Solution) bool {
	if other == nil {
		return true
	}
	if s == nil {
		return false
	}
	switch s.Instance.Objective {
	case ObjectiveKnapsack:
		return s.Profit > other.Profit
	case ObjectiveBinPacking:
		if s.Full() != other.Full() {
			return s.Full()
		}
		if s.NumberOfBins != other.NumberOfBins {
			return s.NumberOfBins < other.NumberOfBins
		}
		return s.NumberOfItems > other.NumberOfItems
	case ObjectiveBinPackingWithLeftovers:
		if s.Full() != other.Full() {
			return s.Full()
		}
		if s.NumberOfBins != other.NumberOfBins {
			return s.NumberOfBins < other.NumberOfBins
		}
		return s.LeftoverValue > other.LeftoverValue
	case ObjectiveVariableSizedBinPacking:
		if s.Full() != other.Full() {
			return s.Full()
		}
		return s.BinCost < other.BinCost
	case ObjectiveOpenDimensionX:
		if s.Full() != other.Full() {
			return s.Full()
		}
		return s.XMax < other.XMax
	case ObjectiveOpenDimensionY:
		if s.Full() != other.Full() {
			return s.Full()
		}
		return s.YMax < other.YMax
	default:
		return false
	}
}
