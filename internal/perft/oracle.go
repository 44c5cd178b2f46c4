package perft

import (
	"errors"
	"fmt"
	"strings"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

var ErrMismatch = errors.New("move generation mismatch")

// Oracle is an independent move generator. Moves returns the legal moves of
// the position in coordinate form.
type Oracle interface {
	Name() string
	Moves(fen string) ([]string, error)
}

type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Moves(fen string) ([]string, error) {
	board := dragontoothmg.ParseFen(fen)
	legal := board.GenerateLegalMoves()
	out := make([]string, 0, len(legal))
	for i := range legal {
		out = append(out, legal[i].String())
	}
	return out, nil
}

type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) Moves(fen string) ([]string, error) {
	board, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	legal := board.GenerateLegalMoves()
	out := make([]string, 0, len(legal))
	for _, m := range legal {
		out = append(out, m.String())
	}
	return out, nil
}

// Oracles returns every built-in oracle.
func Oracles() []Oracle {
	return []Oracle{Dragontooth{}, Goose{}}
}

// normalize reduces moves to sorted, unique from-to pairs.
func normalize(moves []string) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if len(m) > 4 {
			m = m[:4]
		}
		out = append(out, strings.ToLower(m))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func ourMoves(pos *model.Position) []string {
	legal := pos.LegalMoves(pos.Turn)
	out := make([]string, 0, len(legal))
	for _, m := range legal {
		out = append(out, m.String())
	}
	return normalize(out)
}

// CrossCheck walks the tree depth plies below pos and compares the legal
// moves at every node with each oracle. It returns the number of nodes
// compared, and on the first disagreement an error wrapping ErrMismatch that
// names the position.
func CrossCheck(pos model.Position, depth int, oracles ...Oracle) (int, error) {
	if len(oracles) == 0 {
		oracles = Oracles()
	}
	return crossCheck(pos, depth, oracles)
}

func crossCheck(pos model.Position, depth int, oracles []Oracle) (int, error) {
	fen := pos.FEN()
	ours := ourMoves(&pos)
	for _, o := range oracles {
		theirs, err := o.Moves(fen)
		if err != nil {
			return 0, fmt.Errorf("%s: %s: %w", o.Name(), fen, err)
		}
		theirs = normalize(theirs)
		if !slices.Equal(ours, theirs) {
			missing, extra := diff(theirs, ours), diff(ours, theirs)
			return 0, fmt.Errorf("%w with %s at %s: missing %v, extra %v", ErrMismatch, o.Name(), fen, missing, extra)
		}
	}
	if depth <= 1 {
		return 1, nil
	}

	nodes := 1
	for _, m := range pos.LegalMoves(pos.Turn) {
		child := pos
		if err := child.Apply(m); err != nil {
			return nodes, fmt.Errorf("%s: legal move %s rejected: %w", fen, m, err)
		}
		n, err := crossCheck(child, depth-1, oracles)
		nodes += n
		if err != nil {
			return nodes, err
		}
	}
	return nodes, nil
}

// diff lists the entries of want absent from have. Both are sorted.
func diff(want, have []string) []string {
	var out []string
	for _, m := range want {
		if _, found := slices.BinarySearch(have, m); !found {
			out = append(out, m)
		}
	}
	return out
}
