package board

import "testing"

// playMove parses, validates and applies a move, returning its StateInfo
// so the caller can undo it later.
func playMove(t *testing.T, pos *Position, uci string) (Move, *StateInfo) {
	t.Helper()
	m, err := ParseMove(uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatalf("%s is not pseudo-legal in %s", uci, pos.FEN())
	}
	if !pos.Legal(m) {
		t.Fatalf("%s is not legal in %s", uci, pos.FEN())
	}
	gives := pos.GivesCheck(m)
	st := &StateInfo{}
	pos.DoMove(m, st, gives, nil)
	return m, st
}

func TestDoMoveUndoMoveRoundtrip(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	beforeFEN := pos.FEN()
	beforeKey := pos.Key()

	m, _ := playMove(t, pos, "b2b4") // red cannon advances
	if pos.FEN() == beforeFEN {
		t.Fatal("DoMove did not change the position")
	}
	if err := pos.IsOk(); err != nil {
		t.Errorf("IsOk after DoMove: %v", err)
	}

	pos.UndoMove(m)
	if pos.FEN() != beforeFEN {
		t.Errorf("after UndoMove, FEN = %q, want %q", pos.FEN(), beforeFEN)
	}
	if pos.Key() != beforeKey {
		t.Errorf("after UndoMove, Key = %016X, want %016X", pos.Key(), beforeKey)
	}
}

func TestDoMoveCapture(t *testing.T) {
	fen := "4k4/9/9/9/4p4/4P4/9/9/9/4K4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, st := playMove(t, pos, "e4e5")
	if st.CapturedPiece == NoPiece {
		t.Fatal("expected e4e5 to capture the black pawn on e5")
	}
	if pos.Count(Black, Pawn) != 0 {
		t.Errorf("black pawn count = %d after capture, want 0", pos.Count(Black, Pawn))
	}

	pos.UndoMove(m)
	if pos.Count(Black, Pawn) != 1 {
		t.Errorf("black pawn count = %d after undo, want 1", pos.Count(Black, Pawn))
	}
	if pos.FEN() != fen {
		t.Errorf("FEN after undo = %q, want %q", pos.FEN(), fen)
	}
}

func TestDoNullMoveUndoNullMove(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	beforeFEN := pos.FEN()
	beforeKey := pos.Key()
	beforeStm := pos.SideToMove()

	var st StateInfo
	pos.DoNullMove(&st, nil)
	if pos.SideToMove() == beforeStm {
		t.Error("DoNullMove did not flip side to move")
	}
	if pos.Key() == beforeKey {
		t.Error("DoNullMove should change the key via Zobrist.side")
	}

	pos.UndoNullMove()
	if pos.FEN() != beforeFEN || pos.Key() != beforeKey {
		t.Error("UndoNullMove did not restore the original position")
	}
}

func TestKeyAfterMatchesDoMove(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	m, err := ParseMove("b2b4")
	if err != nil {
		t.Fatal(err)
	}
	predicted := pos.KeyAfter(m)

	gives := pos.GivesCheck(m)
	var st StateInfo
	pos.DoMove(m, &st, gives, nil)

	if pos.Key() != predicted {
		t.Errorf("KeyAfter predicted %016X, DoMove produced %016X", predicted, pos.Key())
	}
}

func TestDoMoveCachedCheckersMatchesKnightCheckFromScratch(t *testing.T) {
	// e4f6 hops a red knight to a knight's move from the black king on e8, with the
	// knight's real leg square (f7) clear and an irrelevant piece on e7.
	// playMove derives its givesCheck flag from GivesCheck before applying
	// the move; if that flag disagreed with reality, DoMove would cache
	// CheckersBB as empty even though the knight is actually checking.
	fen := "9/4k4/4a4/9/9/4N4/9/9/9/3K5 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	_, st := playMove(t, pos, "e4f6")

	fresh := CheckersTo(pos, Red, pos.King(Black), pos.occupied)
	if st.CheckersBB != fresh {
		t.Fatalf("cached CheckersBB = %v, from-scratch recompute = %v", st.CheckersBB, fresh)
	}
	if fresh.IsEmpty() {
		t.Fatal("expected the red knight on f6 to check the black king on e8")
	}
}

func TestMultiMoveSequenceRoundtrip(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	beforeFEN := pos.FEN()

	moves := []string{"b2b4", "b7b5"}
	var applied []Move
	for _, uci := range moves {
		m, _ := playMove(t, pos, uci)
		applied = append(applied, m)
	}
	if err := pos.IsOk(); err != nil {
		t.Fatalf("IsOk after sequence: %v", err)
	}

	for i := len(applied) - 1; i >= 0; i-- {
		pos.UndoMove(applied[i])
	}
	if pos.FEN() != beforeFEN {
		t.Errorf("after undoing the full sequence, FEN = %q, want %q", pos.FEN(), beforeFEN)
	}
}
