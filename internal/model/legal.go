package model

// candidates lists the pseudo-legal destinations of the piece on from, by its
// movement pattern only. Sliding rays stop at the first occupied square.
func (p *Position) candidates(from Square) []Square {
	piece := p.At(from)
	var out []Square
	jumps := func(dirs []direction) {
		for _, d := range dirs {
			if to := from.offset(d.dr, d.df); to.Valid() {
				out = append(out, to)
			}
		}
	}
	rays := func(dirs []direction) {
		for _, d := range dirs {
			for to := from.offset(d.dr, d.df); to.Valid(); to = to.offset(d.dr, d.df) {
				out = append(out, to)
				if !p.At(to).IsEmpty() {
					break
				}
			}
		}
	}

	switch piece.Type {
	case Knight:
		jumps(knightJumps[:])
	case King:
		jumps(kingDirs[:])
		jumps([]direction{{0, 2}, {0, -2}})
	case Pawn:
		dir := piece.Color.forward()
		jumps([]direction{{dir, 0}, {2 * dir, 0}, {dir, 1}, {dir, -1}})
	case Bishop:
		rays(diagonalDirs[:])
	case Rook:
		rays(straightDirs[:])
	case Queen:
		rays(straightDirs[:])
		rays(diagonalDirs[:])
	}
	return out
}

// legal simulates from -> to on a copy and keeps it only when the mover's
// king is safe afterwards.
func (p *Position) legal(from, to Square) bool {
	mover := p.At(from).Color
	next := *p
	if err := next.move(from, to); err != nil {
		return false
	}
	return !next.InCheck(mover)
}

// LegalDestinations returns every square the piece on from may legally move to.
func (p *Position) LegalDestinations(from Square) []Square {
	if !from.Valid() || p.At(from).IsEmpty() {
		return nil
	}
	var dests []Square
	for _, to := range p.candidates(from) {
		if p.legal(from, to) {
			dests = append(dests, to)
		}
	}
	return dests
}

// HasAnyLegalMove is LegalDestinations stopped at the first hit.
func (p *Position) HasAnyLegalMove(from Square) bool {
	if !from.Valid() || p.At(from).IsEmpty() {
		return false
	}
	for _, to := range p.candidates(from) {
		if p.legal(from, to) {
			return true
		}
	}
	return false
}

// LegalMoves enumerates every legal move of color c. Only the side to move
// has any.
func (p *Position) LegalMoves(c Color) []Move {
	var moves []Move
	for _, from := range p.PiecesOf(c) {
		for _, to := range p.LegalDestinations(from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// HasLegalMoves reports whether color c can make any move.
func (p *Position) HasLegalMoves(c Color) bool {
	for _, from := range p.PiecesOf(c) {
		if p.HasAnyLegalMove(from) {
			return true
		}
	}
	return false
}
