package model

import "strings"

type CastleSide int

const (
	Kingside CastleSide = iota
	Queenside
)

// Position is the complete rules state of a game. It is a plain value: copying
// it yields an independent position, which is how moves are simulated.
type Position struct {
	Board [8][8]Piece
	// Castling is indexed by [Color][CastleSide]. Rights are only ever cleared.
	Castling     [2][2]bool
	EnPassant    Square
	HasEnPassant bool
	Turn         Color
	// Parity advances every ply; the en passant target is dropped when a move
	// starts with Parity at zero.
	Parity    int
	Ply       int
	Promotion byte
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition returns the standard starting array with white to move.
func NewPosition() Position {
	p := Position{
		Castling:  [2][2]bool{{true, true}, {true, true}},
		Turn:      White,
		Promotion: 'q',
	}
	for file, t := range backRank {
		p.Board[0][file] = NewPiece(t, White)
		p.Board[1][file] = NewPiece(Pawn, White)
		p.Board[6][file] = NewPiece(Pawn, Black)
		p.Board[7][file] = NewPiece(t, Black)
	}
	return p
}

// emptyPosition is a board with no pieces and no castling rights.
func emptyPosition() Position {
	return Position{Turn: White, Promotion: 'q'}
}

func (p *Position) At(sq Square) Piece {
	return p.Board[sq.Rank][sq.File]
}

func (p *Position) Set(sq Square, piece Piece) {
	p.Board[sq.Rank][sq.File] = piece
}

func (p Position) Clone() Position {
	return p
}

func (p *Position) Equal(other *Position) bool {
	return *p == *other
}

// Find returns the first square, scanning from a1, holding piece.
func (p *Position) Find(piece Piece) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p.Board[rank][file] == piece {
				return Square{Rank: rank, File: file}, true
			}
		}
	}
	return Square{}, false
}

// KingSquare locates the king of color c. A missing king is a broken
// invariant and panics.
func (p *Position) KingSquare(c Color) Square {
	sq, ok := p.Find(NewPiece(King, c))
	if !ok {
		panic("model: no " + c.String() + " king on the board")
	}
	return sq
}

func (p *Position) InCheck(c Color) bool {
	return p.IsAttacked(p.KingSquare(c), c)
}

// PiecesOf lists every square occupied by color c.
func (p *Position) PiecesOf(c Color) []Square {
	var squares []Square
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if pc := p.Board[rank][file]; !pc.IsEmpty() && pc.Color == c {
				squares = append(squares, Square{Rank: rank, File: file})
			}
		}
	}
	return squares
}

func (p *Position) occupied() int {
	n := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if !p.Board[rank][file].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// EnPassantTarget returns the square a pawn may capture onto en passant on
// this move, if any.
func (p *Position) EnPassantTarget() (Square, bool) {
	if !p.HasEnPassant || p.Parity != 1 {
		return Square{}, false
	}
	return p.EnPassant, true
}

// SetPromotion selects the piece used for the next promotions. The choice is
// validated when a pawn actually promotes.
func (p *Position) SetPromotion(choice byte) {
	if choice >= 'A' && choice <= 'Z' {
		choice = choice - 'A' + 'a'
	}
	p.Promotion = choice
}

// Rows returns the board as eight strings of piece symbols, rank 8 first.
func (p *Position) Rows() []string {
	rows := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		var b strings.Builder
		for file := 0; file < 8; file++ {
			b.WriteByte(p.Board[rank][file].Symbol())
		}
		rows = append(rows, b.String())
	}
	return rows
}

// Render draws the board rank 8 to rank 1 with a space between squares.
func (p *Position) Render() string {
	var b strings.Builder
	for _, row := range p.Rows() {
		for i := 0; i < len(row); i++ {
			b.WriteByte(row[i])
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
