package model

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a position from Forsyth-Edwards notation. The halfmove
// clock is not tracked and is ignored; the move number fields are optional.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return Position{}, fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrMalformedFEN, len(fields))
	}
	p := emptyPosition()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: want 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := pieceFromSymbol(ch)
			if !ok {
				return Position{}, fmt.Errorf("%w: unknown piece %q", ErrMalformedFEN, ch)
			}
			if file > 7 {
				return Position{}, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, rank+1)
			}
			p.Board[rank][file] = piece
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: rank %d has %d files", ErrMalformedFEN, rank+1, file)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := countPiece(&p, NewPiece(King, c)); n != 1 {
			return Position{}, fmt.Errorf("%w: %d %s kings", ErrMalformedFEN, n, c)
		}
	}

	turn, err := ParseColor(fields[1])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
	}
	p.Turn = turn

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.Castling[White][Kingside] = true
			case 'Q':
				p.Castling[White][Queenside] = true
			case 'k':
				p.Castling[Black][Kingside] = true
			case 'q':
				p.Castling[Black][Queenside] = true
			default:
				return Position{}, fmt.Errorf("%w: castling field %q", ErrMalformedFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("%w: en passant field %q", ErrMalformedFEN, fields[3])
		}
		p.EnPassant = sq
		p.HasEnPassant = true
		// the target must survive exactly one more move
		p.Parity = 1
	}

	if len(fields) == 6 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return Position{}, fmt.Errorf("%w: fullmove number %q", ErrMalformedFEN, fields[5])
		}
		p.Ply = (fullmove - 1) * 2
		if p.Turn == Black {
			p.Ply++
		}
	}
	return p, nil
}

func countPiece(p *Position, piece Piece) int {
	n := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p.Board[rank][file] == piece {
				n++
			}
		}
	}
	return n
}

// FEN encodes the position. The halfmove clock is always written as 0, and
// an en passant target is only written while it can still be taken.
func (p *Position) FEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		gap := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.IsEmpty() {
				gap++
				continue
			}
			if gap > 0 {
				b.WriteByte(byte('0' + gap))
				gap = 0
			}
			b.WriteByte(piece.Symbol())
		}
		if gap > 0 {
			b.WriteByte(byte('0' + gap))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	b.WriteByte(p.Turn.String()[0])

	b.WriteByte(' ')
	rights := ""
	if p.Castling[White][Kingside] {
		rights += "K"
	}
	if p.Castling[White][Queenside] {
		rights += "Q"
	}
	if p.Castling[Black][Kingside] {
		rights += "k"
	}
	if p.Castling[Black][Queenside] {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	b.WriteString(rights)

	b.WriteByte(' ')
	if target, ok := p.EnPassantTarget(); ok {
		b.WriteString(target.String())
	} else {
		b.WriteByte('-')
	}

	fmt.Fprintf(&b, " 0 %d", p.Ply/2+1)
	return b.String()
}
