package board

import "testing"

func setupFEN(t *testing.T, fen string) (*Position, *StateInfo) {
	t.Helper()
	var pos Position
	var st StateInfo
	if _, err := pos.Set(fen, &st); err != nil {
		t.Fatalf("Set(%q): %v", fen, err)
	}
	return &pos, &st
}

func TestStartPositionFEN(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	if got := pos.FEN(); got != StartFEN {
		t.Errorf("FEN roundtrip = %q, want %q", got, StartFEN)
	}
	if pos.SideToMove() != Red {
		t.Errorf("SideToMove = %v, want Red", pos.SideToMove())
	}
	if pos.King(Red).String() != "e0" || pos.King(Black).String() != "e9" {
		t.Errorf("kings at %s/%s, want e0/e9", pos.King(Red), pos.King(Black))
	}
	if err := pos.IsOk(); err != nil {
		t.Errorf("IsOk: %v", err)
	}
}

func TestFENRoundtripArbitraryPosition(t *testing.T) {
	// Kings and advisors only: the kings share the e-file but the advisors on
	// e1 and e8 stand between them, so the position is not in check either way.
	fen := "3ak4/4a4/9/9/9/9/9/9/4A4/3AK4 w - - 3 12"
	pos, _ := setupFEN(t, fen)
	if got := pos.FEN(); got != fen {
		t.Errorf("FEN roundtrip = %q, want %q", got, fen)
	}
	if err := pos.IsOk(); err != nil {
		t.Errorf("IsOk: %v", err)
	}
}

func TestFlipIsInvolution(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)

	var flipped Position
	var st StateInfo
	flipped = *pos
	flipped.Flip(&st)

	var back Position
	var st2 StateInfo
	back = flipped
	back.Flip(&st2)

	if back.FEN() != pos.FEN() {
		t.Errorf("flip(flip(p)) FEN = %q, want %q", back.FEN(), pos.FEN())
	}
}

func TestFlipSwapsSideToMove(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	var st StateInfo
	pos.Flip(&st)
	if pos.SideToMove() != Black {
		t.Errorf("after flipping Red's move, SideToMove = %v, want Black", pos.SideToMove())
	}
}

func TestInitialPositionNotInCheck(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	if pos.InCheck() {
		t.Error("initial position reports a check")
	}
	if pos.Checkers().IsNotEmpty() {
		t.Error("initial position has non-empty checkers bitboard")
	}
}

func TestKeyDependsOnSideToMove(t *testing.T) {
	red, _ := setupFEN(t, StartFEN)
	black, _ := setupFEN(t, "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR b - - 0 1")
	if red.Key() == black.Key() {
		t.Error("identical placement with different side to move produced the same key")
	}
	if red.Key()^Zobrist.side != black.Key() {
		t.Error("toggling side to move should XOR in Zobrist.side")
	}
}
