package model

import (
	"fmt"
	"strings"
)

// Square is a zero-based (rank, file) pair; {0, 0} is a1.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < 8 && s.File >= 0 && s.File < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

func (s Square) offset(dr, df int) Square {
	return Square{Rank: s.Rank + dr, File: s.File + df}
}

// ParseSquare reads a two-character coordinate such as "e2", case-insensitively.
func ParseSquare(text string) (Square, error) {
	text = strings.ToLower(text)
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%w: %q is not a square", ErrMalformedMoveText, text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q is not a square", ErrMalformedMoveText, text)
	}
	return Square{Rank: int(rank - '1'), File: int(file - 'a')}, nil
}

type direction struct {
	dr, df int
}

var (
	straightDirs = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs = [4]direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs     = [8]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightJumps  = [8]direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// distance is the Chebyshev (king-step) distance between two squares.
func distance(a, b Square) int {
	return max(abs(a.Rank-b.Rank), abs(a.File-b.File))
}

// aligned reports whether two distinct squares share a rank, file or diagonal.
func aligned(a, b Square) bool {
	dr, df := abs(a.Rank-b.Rank), abs(a.File-b.File)
	if dr == 0 && df == 0 {
		return false
	}
	return dr == 0 || df == 0 || dr == df
}

// piecesBetween reports whether any square strictly between from and to is
// occupied. Squares that are not aligned have nothing between them.
func (p *Position) piecesBetween(from, to Square) bool {
	if !aligned(from, to) {
		return false
	}
	step := direction{sign(to.Rank - from.Rank), sign(to.File - from.File)}
	for sq := from.offset(step.dr, step.df); sq != to; sq = sq.offset(step.dr, step.df) {
		if !p.At(sq).IsEmpty() {
			return true
		}
	}
	return false
}
