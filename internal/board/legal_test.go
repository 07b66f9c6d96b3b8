package board

import "testing"

func TestFlyingGeneralForbidsExposingKings(t *testing.T) {
	// Red king e0, black king e9, a lone rook screening the file between
	// them: moving the screener off the e-file must be illegal for the
	// mover (it would expose its own king to the enemy's).
	fen := "4k4/9/9/9/9/4R4/9/9/9/4K4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e4d4")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatal("e4d4 should be pseudo-legal (a clear sideways rook slide)")
	}
	if pos.Legal(m) {
		t.Error("moving the only blocker off the shared file should be illegal under the flying general rule")
	}
}

func TestFlyingGeneralAllowsMovesOffTheSharedFile(t *testing.T) {
	fen := "4k4/9/9/9/9/4R4/9/9/9/4K4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e4e5")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) || !pos.Legal(m) {
		t.Error("advancing along the shared file should stay legal: the blocker never leaves the file")
	}
}

func TestCannonNeedsExactlyOneScreenToCapture(t *testing.T) {
	// Red cannon e0, a lone black pawn on e5, with a clear (zero-screen)
	// path between them.
	fen := "4k4/9/9/9/4p4/9/9/9/9/1K2C4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	capture, err := ParseMove("e0e5")
	if err != nil {
		t.Fatal(err)
	}
	if pos.PseudoLegal(capture) {
		t.Error("a cannon with zero screens between it and the target should not be able to capture")
	}
}

func TestCannonCapturesOverOneScreen(t *testing.T) {
	fen := "4k4/9/9/9/4p4/4p4/9/9/9/1K2C4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	capture, err := ParseMove("e0e5")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(capture) {
		t.Error("a cannon with exactly one screen should be able to capture over it")
	}
}

func TestCannonSlidesFreelyOnAClearPath(t *testing.T) {
	fen := "4k4/9/9/9/9/9/9/9/9/1K2C4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e0e5")
	if err != nil {
		t.Fatal(err)
	}
	// A cannon moves to an empty square exactly like a rook, needing a
	// fully clear path rather than a single screen.
	if !pos.PseudoLegal(m) {
		t.Error("cannon should slide freely to an empty square with a clear path")
	}
}

func TestGivesCheckDirectRookAttack(t *testing.T) {
	fen := "4k4/9/9/9/9/9/9/9/9/4K1R2 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("g0g9")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatal("g0g9 should be a clear rook slide")
	}
	if !pos.GivesCheck(m) {
		t.Error("a rook sliding onto the enemy king's rank with a clear path between them should give check")
	}
}

func TestGivesCheckKnightBlockedByItsOwnLeg(t *testing.T) {
	// Red knight hops e4-f6, a knight's move from the black king on e8. From
	// f6 the knight attacks e8 only through its leg square f7, which the
	// black advisor occupies, so the hop does not give check. This also pins
	// down that the leg tested is f6's own (f7), not some square mirrored
	// across the king (e7, which is empty here and must not matter).
	fen := "9/4k4/5a3/9/9/4N4/9/9/9/3K5 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e4f6")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatal("e4f6 should be a legal knight hop (the e5 leg square is empty)")
	}
	if pos.GivesCheck(m) {
		t.Error("knight landing on f6 should not give check: its own leg square f7 is occupied")
	}
}

func TestGivesCheckKnightClearLegDespiteFarSideBlocker(t *testing.T) {
	// Same geometry, but the blocker sits on e7 (the square the wrong,
	// mirrored-at-the-king test would have checked) while f6's real leg,
	// f7, is empty. The hop genuinely checks the black king.
	fen := "9/4k4/4a4/9/9/4N4/9/9/9/3K5 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e4f6")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatal("e4f6 should be a legal knight hop (the e5 leg square is empty)")
	}
	if !pos.GivesCheck(m) {
		t.Error("knight landing on f6 should give check: f7, its real leg square, is empty")
	}
}

func TestGivesCheckDiscovered(t *testing.T) {
	// Red rook on e3 aimed up the e-file at the black king, currently
	// screened by the red knight on e4 sitting between them.
	fen := "4k4/9/9/9/9/4N4/4R4/9/9/4K4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	m, err := ParseMove("e4d6")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.PseudoLegal(m) {
		t.Fatal("e4d6 should be a legal knight hop (the e5 leg square is empty)")
	}
	if !pos.GivesCheck(m) {
		t.Error("moving the knight off the e-file should discover the rook's check on the black king")
	}
}
