package model

import (
	"errors"
	"testing"
)

func mustFEN(t *testing.T, fen string) Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func sq(t *testing.T, text string) Square {
	t.Helper()
	s, err := ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", text, err)
	}
	return s
}

// play applies coordinate moves in order and fails the test on the first rejection.
func play(t *testing.T, p *Position, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, err := ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		if err := p.Apply(m); err != nil {
			t.Fatalf("move %s rejected: %v", text, err)
		}
	}
}

// reject asserts that the move fails with want and leaves p untouched.
func reject(t *testing.T, p *Position, text string, want error) {
	t.Helper()
	m, err := ParseMove(text)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", text, err)
	}
	before := *p
	err = p.Apply(m)
	if !errors.Is(err, want) {
		t.Fatalf("move %s: got error %v, want %v", text, err, want)
	}
	if *p != before {
		t.Fatalf("move %s: rejected move changed the position", text)
	}
}
