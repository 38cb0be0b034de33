package branching

import "github.com/fontanf/packingsolver-go/internal/model"

// ToSolution walks n's parent chain from root to leaf and replays every
// placement into a fresh Solution, the Go analogue of the source's
// "convert leaf node to solution" step (spec.md §4.5 point 4).
func (s *Scheme) ToSolution(n *Node) *model.Solution {
	var chain []*Node
	for p := n; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	// Reverse into root-to-leaf order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	sol := model.NewSolution(s.Instance)
	binPosByIndex := make(map[int]int)
	for _, node := range chain {
		if node.Parent == nil {
			continue
		}
		pl := node.Placement
		if pl.TrapezoidSetID == -1 {
			pos, err := sol.AddBin(pl.BinTypeID, 1)
			if err == nil {
				binPosByIndex[pl.BinPos] = pos
			}
			continue
		}
		ts := s.TrapezoidSets[pl.TrapezoidSetID]
		pos, ok := binPosByIndex[pl.BinPos]
		if !ok {
			continue
		}
		_ = sol.AddItem(pos, ts.ItemTypeID, pl.Anchor, ts.Angle, ts.Mirror)
	}
	sol.LeftoverValue = n.LeftoverValue
	return sol
}
