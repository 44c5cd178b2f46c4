package model

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white"/"black" and the FEN letters "w"/"b".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// forward is the rank delta of a single pawn advance.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) lastRank() int {
	if c == White {
		return 7
	}
	return 0
}

type PieceType uint8

const (
	Empty PieceType = iota
	Pawn
	Bishop
	Knight
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "empty"
}

func (t PieceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	for candidate := Empty; candidate <= King; candidate++ {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

func (t PieceType) notation() byte {
	switch t {
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	case Pawn:
		return 'p'
	}
	return ' '
}

// promotionType maps a promotion selection character to the piece it creates.
func promotionType(choice byte) (PieceType, bool) {
	switch choice {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	}
	return Empty, false
}

// ValidPromotion reports whether choice is one of q, r, b or n.
func ValidPromotion(choice byte) bool {
	_, ok := promotionType(choice)
	return ok
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// NoPiece is the content of an empty square.
var NoPiece = Piece{}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Symbol renders white pieces uppercase, black lowercase and empty squares as a blank.
func (p Piece) Symbol() byte {
	s := p.Type.notation()
	if p.IsEmpty() || p.Color == Black {
		return s
	}
	return s - 'a' + 'A'
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

func pieceFromSymbol(b byte) (Piece, bool) {
	color := Black
	if b >= 'A' && b <= 'Z' {
		color = White
		b = b - 'A' + 'a'
	}
	var t PieceType
	switch b {
	case 'p':
		t = Pawn
	case 'b':
		t = Bishop
	case 'n':
		t = Knight
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return NoPiece, false
	}
	return NewPiece(t, color), true
}
