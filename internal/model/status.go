package model

// Status is the classifier's verdict on a position.
type Status string

const (
	StatusContinue                 Status = "continue"
	StatusWhiteInCheck             Status = "white_in_check"
	StatusBlackInCheck             Status = "black_in_check"
	StatusWhiteCheckmate           Status = "white_checkmate"
	StatusBlackCheckmate           Status = "black_checkmate"
	StatusWhiteStalemate           Status = "white_stalemate"
	StatusBlackStalemate           Status = "black_stalemate"
	StatusDrawInsufficientMaterial Status = "draw_insufficient_material"
)

func (s Status) Label() string {
	switch s {
	case StatusWhiteCheckmate:
		return "White is checkmated"
	case StatusBlackCheckmate:
		return "Black is checkmated"
	case StatusWhiteStalemate:
		return "White is stalemated"
	case StatusBlackStalemate:
		return "Black is stalemated"
	case StatusWhiteInCheck:
		return "White is in check"
	case StatusBlackInCheck:
		return "Black is in check"
	case StatusDrawInsufficientMaterial:
		return "Draw"
	}
	return "Game continues"
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	switch s {
	case StatusWhiteCheckmate, StatusBlackCheckmate, StatusWhiteStalemate, StatusBlackStalemate, StatusDrawInsufficientMaterial:
		return true
	}
	return false
}

// Classify derives the game state. Both kings must be on the board.
func (p *Position) Classify() Status {
	if p.occupied() == 2 {
		return StatusDrawInsufficientMaterial
	}

	whiteCheck := p.InCheck(White)
	blackCheck := p.InCheck(Black)

	if !p.HasLegalMoves(p.Turn) {
		switch {
		case p.Turn == White && whiteCheck:
			return StatusWhiteCheckmate
		case p.Turn == White:
			return StatusWhiteStalemate
		case blackCheck:
			return StatusBlackCheckmate
		default:
			return StatusBlackStalemate
		}
	}

	if whiteCheck {
		return StatusWhiteInCheck
	}
	if blackCheck {
		return StatusBlackInCheck
	}
	return StatusContinue
}
