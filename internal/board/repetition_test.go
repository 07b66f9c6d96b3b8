package board

import "testing"

func TestIsRepeatedHarmlessShuffleIsADraw(t *testing.T) {
	// Red's advisor and black's king each shuffle back and forth between
	// two squares, touching nothing: a plain repetition with no check or
	// chase on either side.
	fen := "4k4/9/9/9/9/9/9/9/4A4/5K3 w - - 0 1"
	pos, _ := setupFEN(t, fen)
	// Same placement and side to move; the half-move and full-move counters
	// have advanced by the four plies played.
	wantFEN := "4k4/9/9/9/9/9/9/9/4A4/5K3 w - - 4 3"

	for _, uci := range []string{"e1d2", "e9d9", "d2e1", "d9e9"} {
		m, err := ParseMove(uci)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", uci, err)
		}
		if !pos.PseudoLegal(m) || !pos.Legal(m) {
			t.Fatalf("%s not legal in %s", uci, pos.FEN())
		}
		gives := pos.GivesCheck(m)
		st := &StateInfo{}
		pos.DoMove(m, st, gives, nil)
	}

	if pos.FEN() != wantFEN {
		t.Fatalf("after the shuffle, FEN = %q, want %q", pos.FEN(), wantFEN)
	}

	// A repeat 4 plies back, with the query ply deeper than that distance,
	// needs only a single recurrence to register.
	result, found := pos.IsRepeated(5)
	if !found {
		t.Fatal("expected the 4-ply shuffle to be detected as repeated")
	}
	if result != 0 {
		t.Errorf("a repetition with no perpetual check or chase should score 0, got %d", result)
	}
}

func TestIsRepeatedRequiresEnoughPlies(t *testing.T) {
	fen := "4k4/9/9/9/9/9/9/9/4A4/5K3 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e1d2")
	if err != nil {
		t.Fatal(err)
	}
	var st StateInfo
	pos.DoMove(m, &st, pos.GivesCheck(m), nil)

	if _, found := pos.IsRepeated(5); found {
		t.Error("a single ply since the last null move cannot contain a repetition")
	}
}
