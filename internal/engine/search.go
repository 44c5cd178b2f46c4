package engine

import (
	"math"
	"time"

	"github.com/aryavsaigal/rbcb/internal/model"
	"golang.org/x/exp/rand"
)

// Infinity bounds the initial search window.
const Infinity = math.MaxInt

const DefaultDepth = 3

// Searcher picks moves with a fixed-depth minimax search. Move lists are
// shuffled with the injected source before they are searched, so a seeded
// source gives reproducible choices.
//
// A Searcher is not safe for concurrent use.
type Searcher struct {
	rng     *rand.Rand
	depth   int
	pruning bool
	nodes   int
}

type Option func(*Searcher)

// WithDepth sets the depth searched below each root move.
func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithPruning toggles alpha-beta cutoffs. Without them the search is plain
// minimax and returns the same scores.
func WithPruning(enabled bool) Option {
	return func(s *Searcher) {
		s.pruning = enabled
	}
}

// NewSearcher creates a searcher drawing its move ordering from rng. A nil
// rng is seeded from the clock.
func NewSearcher(rng *rand.Rand, opts ...Option) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	s := &Searcher{
		rng:     rng,
		depth:   DefaultDepth,
		pruning: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// Nodes returns the number of positions visited since the last reset.
func (s *Searcher) Nodes() int {
	return s.nodes
}

func (s *Searcher) ResetNodes() {
	s.nodes = 0
}

// ChooseMove returns the best move for side, or false when side has no
// legal move. Ties keep the first best move in shuffled order.
func (s *Searcher) ChooseMove(pos model.Position, side model.Color) (model.Move, bool) {
	moves := s.shuffled(&pos, side)
	if len(moves) == 0 {
		return model.Move{}, false
	}

	best := moves[0]
	bestScore := -Infinity
	for _, m := range moves {
		child := pos
		if err := child.Apply(m); err != nil {
			continue
		}
		score := s.Minimax(child, s.depth, -Infinity, Infinity, side.Opponent(), side)
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, true
}

// Minimax scores pos for maximizing with side to move, searching depth plies.
func (s *Searcher) Minimax(pos model.Position, depth, alpha, beta int, side, maximizing model.Color) int {
	s.nodes++

	status := pos.Classify()
	if depth == 0 || status.Terminal() {
		return evaluateWithStatus(&pos, status, maximizing)
	}

	moves := s.shuffled(&pos, side)
	if side == maximizing {
		value := -Infinity
		for _, m := range moves {
			child := pos
			if err := child.Apply(m); err != nil {
				continue
			}
			value = max(value, s.Minimax(child, depth-1, alpha, beta, side.Opponent(), maximizing))
			if !s.pruning {
				continue
			}
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := Infinity
	for _, m := range moves {
		child := pos
		if err := child.Apply(m); err != nil {
			continue
		}
		value = min(value, s.Minimax(child, depth-1, alpha, beta, side.Opponent(), maximizing))
		if !s.pruning {
			continue
		}
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}

func (s *Searcher) shuffled(pos *model.Position, side model.Color) []model.Move {
	moves := pos.LegalMoves(side)
	s.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	return moves
}
