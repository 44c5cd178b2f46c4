package model

import (
	"fmt"
	"strings"
)

// Move is a raw move request: two board coordinates.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove reads the four-character coordinate form, e.g. "e2e4".
func ParseMove(text string) (Move, error) {
	if len(text) != 4 {
		return Move{}, fmt.Errorf("%w: %q must be 4 characters", ErrMalformedMoveText, text)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// ParseUCI accepts the four-character form with an optional promotion
// character ("e7e8n"). The returned choice is zero when none was given.
func ParseUCI(text string) (Move, byte, error) {
	text = strings.TrimSpace(text)
	if len(text) == 5 {
		choice := strings.ToLower(text[4:])[0]
		if !ValidPromotion(choice) {
			return Move{}, 0, fmt.Errorf("%w: %q has no valid promotion piece", ErrMalformedMoveText, text)
		}
		m, err := ParseMove(text[:4])
		return m, choice, err
	}
	m, err := ParseMove(text)
	return m, 0, err
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply is one accepted move as recorded in a game's history.
type Ply struct {
	Color          Color           `json:"color"`
	Piece          Piece           `json:"piece"`
	Move           Move            `json:"move"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      *PieceType      `json:"promotion"`
	// Notation is the coordinate form with the promotion letter appended,
	// e.g. "e7e8q".
	Notation string `json:"notation"`
}
