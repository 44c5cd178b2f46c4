package model

// IsAttacked reports whether any piece of the opponent of defender attacks sq.
// Each ray stops at the first occupied square.
func (p *Position) IsAttacked(sq Square, defender Color) bool {
	enemy := defender.Opponent()

	for _, dir := range straightDirs {
		target := sq.offset(dir.dr, dir.df)
		for step := 1; target.Valid(); step++ {
			piece := p.At(target)
			if !piece.IsEmpty() {
				if piece.Color == enemy {
					switch piece.Type {
					case Rook, Queen:
						return true
					case King:
						if step == 1 {
							return true
						}
					}
				}
				break
			}
			target = target.offset(dir.dr, dir.df)
		}
	}

	for _, dir := range diagonalDirs {
		target := sq.offset(dir.dr, dir.df)
		for step := 1; target.Valid(); step++ {
			piece := p.At(target)
			if !piece.IsEmpty() {
				if piece.Color == enemy {
					switch piece.Type {
					case Bishop, Queen:
						return true
					case King:
						if step == 1 {
							return true
						}
					case Pawn:
						// a pawn attacks the diagonal square one rank ahead of it
						if step == 1 && dir.dr == -enemy.forward() {
							return true
						}
					}
				}
				break
			}
			target = target.offset(dir.dr, dir.df)
		}
	}

	for _, jump := range knightJumps {
		target := sq.offset(jump.dr, jump.df)
		if target.Valid() && p.At(target) == NewPiece(Knight, enemy) {
			return true
		}
	}
	return false
}
