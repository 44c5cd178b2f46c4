package engine

import "github.com/aryavsaigal/rbcb/internal/model"

// Score adjustments applied on top of material.
const (
	MateScore        = 10000
	StalematePenalty = 50
	CheckPenalty     = 80
)

var pieceWeights = [...]int{
	model.Empty:  0,
	model.Pawn:   10,
	model.Bishop: 30,
	model.Knight: 30,
	model.Rook:   50,
	model.Queen:  90,
	model.King:   900,
}

// Evaluate scores pos from perspective's point of view; positive favors
// perspective.
func Evaluate(pos *model.Position, perspective model.Color) int {
	return evaluateWithStatus(pos, pos.Classify(), perspective)
}

func evaluateWithStatus(pos *model.Position, status model.Status, perspective model.Color) int {
	score := Material(pos, perspective)

	switch status {
	case model.StatusWhiteCheckmate:
		score += signFor(model.White, perspective) * -MateScore
	case model.StatusBlackCheckmate:
		score += signFor(model.Black, perspective) * -MateScore
	case model.StatusWhiteStalemate, model.StatusBlackStalemate:
		// a stalemate is a penalty for both sides
		score -= StalematePenalty
	case model.StatusWhiteInCheck:
		score += signFor(model.White, perspective) * -CheckPenalty
	case model.StatusBlackInCheck:
		score += signFor(model.Black, perspective) * -CheckPenalty
	}
	return score
}

// Material sums the piece weights, own pieces positive.
func Material(pos *model.Position, perspective model.Color) int {
	score := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := pos.Board[rank][file]
			if piece.IsEmpty() {
				continue
			}
			score += signFor(piece.Color, perspective) * pieceWeights[piece.Type]
		}
	}
	return score
}

func signFor(c, perspective model.Color) int {
	if c == perspective {
		return 1
	}
	return -1
}
