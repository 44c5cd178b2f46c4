// Package record exports games as PGN.
package record

import (
	"fmt"
	"strings"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/notnil/chess"
)

type Tag struct {
	Key   string
	Value string
}

// Outcome maps a game status to a PGN result.
func Outcome(status model.Status) chess.Outcome {
	switch status {
	case model.StatusWhiteCheckmate:
		return chess.BlackWon
	case model.StatusBlackCheckmate:
		return chess.WhiteWon
	case model.StatusWhiteStalemate, model.StatusBlackStalemate, model.StatusDrawInsufficientMaterial:
		return chess.Draw
	}
	return chess.NoOutcome
}

var tagEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// PGN replays history from startFEN and renders it in standard algebraic
// notation with the given tags. Both the Result tag and the movetext
// terminator come from status.
func PGN(startFEN string, history []model.Ply, status model.Status, tags ...Tag) (string, error) {
	if startFEN == "" {
		startFEN = model.StartFEN
	}
	start, err := model.ParseFEN(startFEN)
	if err != nil {
		return "", fmt.Errorf("record: start position: %w", err)
	}
	var opts []func(*chess.Game)
	if startFEN != model.StartFEN {
		fen, err := chess.FEN(startFEN)
		if err != nil {
			return "", fmt.Errorf("record: start position: %w", err)
		}
		opts = append(opts, fen)
	}
	pos := chess.NewGame(opts...).Position()

	sans := make([]string, 0, len(history))
	for i, ply := range history {
		move := findMove(pos, ply.Notation)
		if move == nil {
			return "", fmt.Errorf("record: ply %d %s: %w", i+1, ply.Notation, model.ErrShapeIllegal)
		}
		sans = append(sans, chess.AlgebraicNotation{}.Encode(pos, move))
		pos = pos.Update(move)
	}

	result := string(Outcome(status))
	tags = append(tags, Tag{"Result", result})
	if startFEN != model.StartFEN {
		tags = append(tags, Tag{"SetUp", "1"}, Tag{"FEN", startFEN})
	}

	var b strings.Builder
	for _, tag := range tags {
		fmt.Fprintf(&b, "[%s \"%s\"]\n", tag.Key, tagEscaper.Replace(tag.Value))
	}
	b.WriteString("\n")
	b.WriteString(movetext(start.Ply, sans))
	if len(sans) > 0 {
		b.WriteString(" ")
	}
	b.WriteString(result)
	b.WriteString("\n")
	return b.String(), nil
}

// findMove returns the legal move of pos written as uci, or nil.
func findMove(pos *chess.Position, uci string) *chess.Move {
	for _, m := range pos.ValidMoves() {
		if strings.EqualFold(m.String(), uci) {
			return m
		}
	}
	return nil
}

// movetext numbers sans starting at ply; a black first move is written "N...".
func movetext(ply int, sans []string) string {
	parts := make([]string, 0, len(sans)+len(sans)/2+1)
	for i, san := range sans {
		n := ply + i
		switch {
		case n%2 == 0:
			parts = append(parts, fmt.Sprintf("%d.", n/2+1))
		case i == 0:
			parts = append(parts, fmt.Sprintf("%d...", n/2+1))
		}
		parts = append(parts, san)
	}
	return strings.Join(parts, " ")
}

// GamePGN exports a live game with the seats as player tags.
func GamePGN(g *model.Game, event string) (string, error) {
	white, black := "Human", "Engine"
	if g.HumanColor() == model.Black {
		white, black = black, white
	}
	return PGN(g.StartFEN(), g.History(), g.Status(),
		Tag{"Event", event},
		Tag{"Site", "rbcb"},
		Tag{"White", white},
		Tag{"Black", black},
	)
}
