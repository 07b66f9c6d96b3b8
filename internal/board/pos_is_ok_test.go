package board

import "testing"

func TestIsOkAcceptsTheStartingPosition(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	if err := pos.IsOk(); err != nil {
		t.Errorf("IsOk rejected the starting position: %v", err)
	}
}

func TestIsOkCatchesMissingKing(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	ksq := pos.King(Red)
	pos.removePiece(ksq)

	if err := pos.IsOk(); err == nil {
		t.Error("expected IsOk to reject a position with no red king")
	}
}

func TestIsOkCatchesAdvisorOutsidePalace(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	// Relocate a red advisor from its palace corner onto an empty,
	// unrelated square well outside the palace.
	from, _ := ParseSquare("d0")
	to, _ := ParseSquare("d5")
	pos.movePieceSq(from, to)

	if err := pos.IsOk(); err == nil {
		t.Error("expected IsOk to reject an advisor standing outside its palace")
	}
}

func TestIsOkCatchesStaleCachedState(t *testing.T) {
	pos, _ := setupFEN(t, StartFEN)
	pos.st.Key ^= 1

	if err := pos.IsOk(); err == nil {
		t.Error("expected IsOk to reject a cached key that no longer matches the board")
	}
}
