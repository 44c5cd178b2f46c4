// Package perft counts move-generation trees and checks them against
// independent move generators.
package perft

import (
	"github.com/aryavsaigal/rbcb/internal/model"
)

// Count returns the number of leaf positions depth plies below pos.
// Promotions count once per from-to pair.
func Count(pos model.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := pos.LegalMoves(pos.Turn)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := pos
		if err := child.Apply(m); err != nil {
			continue
		}
		nodes += Count(child, depth-1)
	}
	return nodes
}

// Divide splits Count by root move.
func Divide(pos model.Position, depth int) map[string]int {
	out := make(map[string]int)
	if depth < 1 {
		return out
	}
	for _, m := range pos.LegalMoves(pos.Turn) {
		child := pos
		if err := child.Apply(m); err != nil {
			continue
		}
		out[m.String()] = Count(child, depth-1)
	}
	return out
}
