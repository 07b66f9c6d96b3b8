package board

// MateValue is the sentinel magnitude IsRepeated's result is expressed
// relative to ply, matching the caller-facing convention of a search that
// consumes `MateValue - ply` as "mate found `ply` moves from root". The
// core itself never searches; it only classifies.
const MateValue = 30000

// undoMoveBoard translates b as if m were undone: a bit set on m's
// destination moves back to m's origin. Used to track a piece's identity
// across plies when comparing chase sets against an earlier ancestor,
// since the piece occupying a given square generally differs from ply to
// ply.
func undoMoveBoard(b Bitboard90, m Move) Bitboard90 {
	if m == NoMove {
		return b
	}
	if b.Test(m.To()) {
		b = b.Clear(m.To()).Set(m.From())
	}
	return b
}

// IsRepeated walks the StateInfo chain back in two-ply steps looking for a
// position with the same key. ply is the current search ply (distance
// from the search root); it decides whether a single
// occurrence already counts as a repetition (strictly past the root) or a
// second one is required (at or before the root, matching game history).
//
// On a match it classifies the repetition by perpetual check first, then
// perpetual chase: a side that was checking (or chasing) on every one of
// its moves throughout the cycle loses by this rule. Returns (0, false)
// when no repetition is found within the current PliesFromNull run.
func (p *Position) IsRepeated(ply int) (result int, found bool) {
	st := p.st
	if st.PliesFromNull < 4 {
		return 0, false
	}

	stp := st.Previous.Previous
	perpetualThem := st.CheckersBB.IsNotEmpty() && stp.CheckersBB.IsNotEmpty()
	perpetualUs := st.Previous.CheckersBB.IsNotEmpty() && stp.Previous.CheckersBB.IsNotEmpty()
	chaseThem := undoMoveBoard(st.Chased, st.Previous.Move).And(stp.Chased)
	chaseUs := undoMoveBoard(st.Previous.Chased, stp.Move).And(stp.Previous.Chased)

	cnt := 0
	for i := 4; i <= st.PliesFromNull; i += 2 {
		if i != st.PliesFromNull {
			chaseThem = undoMoveBoard(chaseThem, stp.Previous.Move).And(stp.Previous.Previous.Chased)
		}
		stp = stp.Previous.Previous
		perpetualThem = perpetualThem && stp.CheckersBB.IsNotEmpty()

		if stp.Key == st.Key {
			threshold := 2
			if ply > i {
				threshold = 1
			}
			cnt++
			if cnt == threshold {
				return classifyRepetition(perpetualThem, perpetualUs, chaseThem, chaseUs, ply), true
			}
		}

		if i+1 <= st.PliesFromNull {
			perpetualUs = perpetualUs && stp.Previous.CheckersBB.IsNotEmpty()
			chaseUs = undoMoveBoard(chaseUs, stp.Move).And(stp.Previous.Chased)
		}
	}
	return 0, false
}

// classifyRepetition scores a detected repetition cycle: perpetual check
// takes precedence over perpetual chase; a one-sided perpetual (only "them"
// or only "us") is a loss for the perpetually-offending side, and anything
// symmetric or neither is a plain draw.
func classifyRepetition(perpetualThem, perpetualUs bool, chaseThem, chaseUs Bitboard90, ply int) int {
	if perpetualThem || perpetualUs {
		switch {
		case !perpetualUs:
			return MateValue - ply
		case !perpetualThem:
			return -MateValue + ply
		default:
			return 0
		}
	}
	if chaseThem.IsNotEmpty() || chaseUs.IsNotEmpty() {
		switch {
		case chaseUs.IsEmpty():
			return MateValue - ply
		case chaseThem.IsEmpty():
			return -MateValue + ply
		default:
			return 0
		}
	}
	return 0
}
