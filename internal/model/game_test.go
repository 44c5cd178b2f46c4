package model

import (
	"errors"
	"testing"
)

func mustMove(t *testing.T, text string) Move {
	t.Helper()
	m, err := ParseMove(text)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", text, err)
	}
	return m
}

func TestGameMakeMove(t *testing.T) {
	g := NewGame("g1", Player{ID: "alice", Color: White})

	if err := g.MakeMove("bob", mustMove(t, "e2e4"), 0); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame, got %v", err)
	}
	if err := g.MakeMove("alice", mustMove(t, "e2e5"), 0); !errors.Is(err, ErrShapeIllegal) {
		t.Fatalf("expected ErrShapeIllegal, got %v", err)
	}
	if err := g.MakeMove("alice", mustMove(t, "e2e4"), 0); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if !g.EngineToMove() {
		t.Fatalf("expected the engine to be on move")
	}
	if err := g.MakeMove("alice", mustMove(t, "d2d4"), 0); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("expected ErrWrongTurn while the engine is to move, got %v", err)
	}
	if err := g.ApplyEngineMove(mustMove(t, "e7e5")); err != nil {
		t.Fatalf("ApplyEngineMove: %v", err)
	}
	if err := g.ApplyEngineMove(mustMove(t, "d7d5")); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("expected ErrWrongTurn for an engine move out of turn, got %v", err)
	}

	state := g.GetState()
	if state.Ply != 2 || state.ToMove != White || len(state.MoveHistory) != 2 {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.LastMove == nil || state.LastMove.String() != "e7e5" {
		t.Fatalf("unexpected last move %v", state.LastMove)
	}
	if state.EnPassantTarget == nil || state.EnPassantTarget.String() != "e6" {
		t.Fatalf("expected en passant target e6, got %v", state.EnPassantTarget)
	}
	if state.Board[0] != "rnbqkbnr" || state.Board[7] != "RNBQKBNR" {
		t.Fatalf("unexpected board rows %v", state.Board)
	}
	if state.Players.Human.Color != White || state.Players.Engine.Color != Black {
		t.Fatalf("unexpected seats %+v", state.Players)
	}
}

func TestGameHistoryRecordsSpecialMoves(t *testing.T) {
	pos := mustFEN(t, "r3k3/1P6/8/3pP3/8/8/8/R3K2R w KQq d6 0 1")
	g := NewGameFromPosition("g2", Player{ID: "alice", Color: White}, pos)

	if err := g.MakeMove("alice", mustMove(t, "e5d6"), 0); err != nil {
		t.Fatalf("en passant: %v", err)
	}
	if err := g.ApplyEngineMove(mustMove(t, "a8a7")); err != nil {
		t.Fatalf("engine move: %v", err)
	}
	if err := g.MakeMove("alice", mustMove(t, "e1g1"), 0); err != nil {
		t.Fatalf("castle: %v", err)
	}
	if err := g.ApplyEngineMove(mustMove(t, "a7a6")); err != nil {
		t.Fatalf("engine move: %v", err)
	}
	if err := g.MakeMove("alice", mustMove(t, "b7b8"), 'n'); err != nil {
		t.Fatalf("promotion: %v", err)
	}

	history := g.History()
	if len(history) != 5 {
		t.Fatalf("expected 5 plies, got %d", len(history))
	}
	if c := history[0].CapturedPiece; c == nil || *c != NewPiece(Pawn, Black) {
		t.Fatalf("expected en passant capture recorded, got %v", c)
	}
	if r := history[2].CastleRookMove; r == nil || r.From.String() != "h1" || r.To.String() != "f1" {
		t.Fatalf("expected castle rook move h1f1, got %+v", r)
	}
	if pr := history[4].Promotion; pr == nil || *pr != Knight {
		t.Fatalf("expected knight promotion, got %v", pr)
	}
	if history[4].Notation != "b7b8n" {
		t.Fatalf("unexpected notation %q", history[4].Notation)
	}
}

func TestGameRejectsMovesAfterMate(t *testing.T) {
	pos := mustFEN(t, "7k/6pp/8/8/8/8/8/K3R3 w - - 0 1")
	g := NewGameFromPosition("g3", Player{ID: "alice", Color: White}, pos)
	if err := g.MakeMove("alice", mustMove(t, "e1e8"), 0); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if got := g.Status(); got != StatusBlackCheckmate {
		t.Fatalf("expected black checkmated, got %s", got)
	}
	if g.EngineToMove() {
		t.Fatalf("engine must not move in a finished game")
	}
	if err := g.ApplyEngineMove(mustMove(t, "h8h7")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestGameSetPromotion(t *testing.T) {
	g := NewGame("g4", Player{ID: "alice", Color: Black})
	if err := g.SetPromotion("alice", 'k'); !errors.Is(err, ErrInvalidPromotionChoice) {
		t.Fatalf("expected ErrInvalidPromotionChoice, got %v", err)
	}
	if err := g.SetPromotion("alice", 'R'); err != nil {
		t.Fatalf("SetPromotion: %v", err)
	}
	if got := g.GetState().Promotion; got != "r" {
		t.Fatalf("expected promotion r, got %q", got)
	}
	if !g.EngineToMove() {
		t.Fatalf("white engine moves first when the human plays black")
	}
}
