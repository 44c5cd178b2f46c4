package model

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 12",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		if got := p.FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestStartFENMatchesNewPosition(t *testing.T) {
	p := mustFEN(t, StartFEN)
	start := NewPosition()
	if !p.Equal(&start) {
		t.Fatalf("ParseFEN(StartFEN) differs from NewPosition:\n%s", p.Render())
	}
}

func TestFENTracksMoves(t *testing.T) {
	p := NewPosition()
	play(t, &p, "e2e4")
	if got, want := p.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	play(t, &p, "g8f6")
	if got, want := p.FEN(), "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8/8 w - -",
		"4k3/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K4 w - - 0 1",
		"4k3/8/8/8/8/8/8/4X3 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w KX - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - z9 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 0",
		"4kk2/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrMalformedFEN) {
			t.Errorf("ParseFEN(%q): got %v, want ErrMalformedFEN", fen, err)
		}
	}
}
