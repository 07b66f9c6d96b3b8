package board

import "testing"

func TestSeeGEWinningUndefendedCapture(t *testing.T) {
	// Red rook on e0 captures an undefended black pawn on e5: a clean gain,
	// no recapture follows.
	fen := "3k5/9/9/9/4p4/9/9/9/9/3KR4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	from, _ := ParseSquare("e0")
	to, _ := ParseSquare("e5")
	m := NewMove(from, to)

	if !pos.SeeGE(m, 0, nil) {
		t.Error("capturing an undefended pawn should clear a threshold of 0")
	}
	if !pos.SeeGE(m, 100, nil) {
		t.Error("winning exactly the pawn's value should clear a threshold of 100")
	}
	if pos.SeeGE(m, 200, nil) {
		t.Error("a 100-point gain should not clear a threshold of 200")
	}
}

func TestSeeGELosingDefendedCapture(t *testing.T) {
	// Red rook on e0 captures a black pawn on e5 that a black rook on e9
	// recaptures: red nets a pawn but loses a rook, a losing exchange.
	fen := "3kr4/9/9/9/4p4/9/9/9/9/3KR4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	from, _ := ParseSquare("e0")
	to, _ := ParseSquare("e5")
	m := NewMove(from, to)

	if pos.SeeGE(m, 0, nil) {
		t.Error("trading a rook for a pawn should not clear a threshold of 0")
	}
	if !pos.SeeGE(m, -600, nil) {
		t.Error("a sufficiently negative threshold should still be cleared")
	}
}

func TestSeeGEMonotonicInThreshold(t *testing.T) {
	fen := "3kr4/9/9/9/4p4/9/9/9/9/3KR4 w - - 0 1"
	pos, _ := setupFEN(t, fen)

	from, _ := ParseSquare("e0")
	to, _ := ParseSquare("e5")
	m := NewMove(from, to)

	thresholds := []int{-1000, -500, -100, 0, 100, 600}
	sawFalse := false
	for _, th := range thresholds {
		ok := pos.SeeGE(m, th, nil)
		if sawFalse && ok {
			t.Fatalf("SeeGE(%d) = true after a lower threshold already failed: not monotonic", th)
		}
		if !ok {
			sawFalse = true
		}
	}
}
