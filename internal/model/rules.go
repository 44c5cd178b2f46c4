package model

import "fmt"

// AttemptMove validates a move for the side to move and applies it. A rejected
// move leaves the position exactly as it was.
func (p *Position) AttemptMove(from, to Square) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from, to)
	}
	next := *p
	if err := next.move(from, to); err != nil {
		return err
	}
	*p = next
	return nil
}

// Apply is AttemptMove for a Move value.
func (p *Position) Apply(m Move) error {
	return p.AttemptMove(m.From, m.To)
}

// move mutates p in place and may leave it half-updated on error; callers
// run it on a scratch copy.
func (p *Position) move(from, to Square) error {
	piece := p.At(from)
	if piece.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptySource, from)
	}
	if piece.Color != p.Turn {
		return fmt.Errorf("%w: %s to move", ErrWrongTurn, p.Turn)
	}
	captured := p.At(to)
	if !captured.IsEmpty() && captured.Color == piece.Color {
		return fmt.Errorf("%w: %s", ErrSameColorCapture, to)
	}

	if p.Parity == 0 {
		p.HasEnPassant = false
	}

	var err error
	switch piece.Type {
	case Pawn:
		err = p.pawnMove(piece, from, to)
	case King:
		var castled bool
		castled, err = p.kingMove(piece, from, to)
		if err == nil && castled {
			p.endTurn()
			return nil
		}
	case Rook:
		err = p.rookMove(piece, from, to)
	case Bishop:
		if !diagonal(from, to) || p.piecesBetween(from, to) {
			err = shapeError(piece, from, to)
		}
	case Queen:
		if !(diagonal(from, to) || straight(from, to)) || p.piecesBetween(from, to) {
			err = shapeError(piece, from, to)
		}
	case Knight:
		dr, df := abs(to.Rank-from.Rank), abs(to.File-from.File)
		if !(dr == 1 && df == 2 || dr == 2 && df == 1) {
			err = shapeError(piece, from, to)
		}
	default:
		err = shapeError(piece, from, to)
	}
	if err != nil {
		return err
	}

	p.Set(from, NoPiece)
	p.Set(to, piece)
	if captured.Type == Rook {
		p.dropRookRight(captured.Color, to)
	}
	if p.InCheck(piece.Color) {
		return fmt.Errorf("%w: %s%s", ErrExposesOwnKing, from, to)
	}

	if piece.Type == Pawn && to.Rank == piece.Color.lastRank() {
		promoted, ok := promotionType(p.Promotion)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPromotionChoice, p.Promotion)
		}
		p.Set(to, NewPiece(promoted, piece.Color))
	}

	p.endTurn()
	return nil
}

func (p *Position) endTurn() {
	p.Turn = p.Turn.Opponent()
	p.Parity = (p.Parity + 1) % 2
	p.Ply++
}

func shapeError(piece Piece, from, to Square) error {
	return fmt.Errorf("%w: %s cannot move %s%s", ErrShapeIllegal, piece.Type, from, to)
}

func straight(from, to Square) bool {
	return from != to && (from.Rank == to.Rank || from.File == to.File)
}

func diagonal(from, to Square) bool {
	return from != to && abs(to.Rank-from.Rank) == abs(to.File-from.File)
}

func (p *Position) pawnMove(pawn Piece, from, to Square) error {
	dir := pawn.Color.forward()
	dr, df := to.Rank-from.Rank, to.File-from.File
	target := p.At(to)

	switch {
	case df == 0 && dr == dir:
		if target.IsEmpty() {
			return nil
		}
	case df == 0 && dr == 2*dir:
		skipped := from.offset(dir, 0)
		if from.Rank == pawn.Color.pawnRank() && target.IsEmpty() && p.At(skipped).IsEmpty() {
			p.EnPassant = skipped
			p.HasEnPassant = true
			p.Parity = 0
			return nil
		}
	case abs(df) == 1 && dr == dir:
		if !target.IsEmpty() {
			return nil
		}
		if p.HasEnPassant && p.EnPassant == to {
			victimSquare := to.offset(-dir, 0)
			if victim := p.At(victimSquare); victim.Type == Pawn && victim.Color != pawn.Color {
				p.Set(victimSquare, NoPiece)
				return nil
			}
		}
	}
	return shapeError(pawn, from, to)
}

// kingMove handles adjacent steps and castling. A castle is completed here,
// rook included; castled reports that the caller has nothing left to do.
func (p *Position) kingMove(king Piece, from, to Square) (castled bool, err error) {
	c := king.Color
	if distance(from, to) == 1 {
		p.Castling[c] = [2]bool{}
		return false, nil
	}
	home := Square{Rank: c.homeRank(), File: 4}
	if from == home && to.Rank == from.Rank && abs(to.File-from.File) == 2 {
		side := Kingside
		if to.File < from.File {
			side = Queenside
		}
		if err := p.castle(c, side); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, shapeError(king, from, to)
}

type castleGeometry struct {
	rookFrom, rookTo, kingTo int
}

var castles = [2]castleGeometry{
	Kingside:  {rookFrom: 7, rookTo: 5, kingTo: 6},
	Queenside: {rookFrom: 0, rookTo: 3, kingTo: 2},
}

func (p *Position) castle(c Color, side CastleSide) error {
	g := castles[side]
	rank := c.homeRank()
	king := Square{Rank: rank, File: 4}
	rook := Square{Rank: rank, File: g.rookFrom}
	kingTo := Square{Rank: rank, File: g.kingTo}
	rookTo := Square{Rank: rank, File: g.rookTo}

	switch {
	case !p.Castling[c][side]:
		return fmt.Errorf("%w: %s has lost the right to castle", ErrShapeIllegal, c)
	case p.At(rook) != NewPiece(Rook, c):
		return fmt.Errorf("%w: no rook on %s", ErrShapeIllegal, rook)
	case p.piecesBetween(king, rook):
		return fmt.Errorf("%w: pieces between king and rook", ErrShapeIllegal)
	case p.IsAttacked(king, c):
		return fmt.Errorf("%w: cannot castle out of check", ErrShapeIllegal)
	case p.IsAttacked(rookTo, c), p.IsAttacked(kingTo, c):
		return fmt.Errorf("%w: cannot castle through or into check", ErrShapeIllegal)
	}

	p.Set(king, NoPiece)
	p.Set(rook, NoPiece)
	p.Set(kingTo, NewPiece(King, c))
	p.Set(rookTo, NewPiece(Rook, c))
	p.Castling[c] = [2]bool{}
	return nil
}

func (p *Position) rookMove(rook Piece, from, to Square) error {
	if !straight(from, to) || p.piecesBetween(from, to) {
		return shapeError(rook, from, to)
	}
	p.dropRookRight(rook.Color, from)
	return nil
}

// dropRookRight clears the castling right tied to a rook home square of c.
func (p *Position) dropRookRight(c Color, sq Square) {
	if sq.Rank != c.homeRank() {
		return
	}
	for side, g := range castles {
		if sq.File == g.rookFrom {
			p.Castling[c][side] = false
		}
	}
}
