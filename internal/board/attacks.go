package board

// This file implements the per-piece attack geometry as a mix of
// precomputed tables (king, advisor, pawn — occupancy-independent) and
// runtime lookups against occupancy (knight, bishop — single-square
// blocker; rook, cannon — full ray march). A 90-square, two-lane occupancy
// does not factor into a single-multiply magic index the way an 8x8 board
// does, so sliders walk precomputed ray orderings instead of a fancy-magic
// table.

type delta struct{ df, dr int }

var (
	advisorDeltas = [4]delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDeltas    = [4]delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	knightDeltas  = [8]struct {
		d, b delta // destination offset, blocker offset
	}{
		{delta{1, 2}, delta{0, 1}}, {delta{-1, 2}, delta{0, 1}},
		{delta{1, -2}, delta{0, -1}}, {delta{-1, -2}, delta{0, -1}},
		{delta{2, 1}, delta{1, 0}}, {delta{2, -1}, delta{1, 0}},
		{delta{-2, 1}, delta{-1, 0}}, {delta{-2, -1}, delta{-1, 0}},
	}
	bishopDeltas = [4]struct {
		d, b delta
	}{
		{delta{2, 2}, delta{1, 1}}, {delta{2, -2}, delta{1, -1}},
		{delta{-2, 2}, delta{-1, 1}}, {delta{-2, -2}, delta{-1, -1}},
	}
)

// Pure, occupancy-independent pseudo-attack tables.
var (
	kingPseudo    [NumSquares][2]Bitboard90 // [sq][color]
	advisorPseudo [NumSquares][2]Bitboard90
	pawnPseudo    [NumSquares][2]Bitboard90 // forward (+sideways if past river)

	pawnAttackersTo [NumSquares][2]Bitboard90 // inverse of pawnPseudo, per attacker color
)

// rayOrder[dir][sq] lists the squares along a direction from sq outward to
// the edge, nearest first. dir: 0=N 1=S 2=E 3=W.
var rayOrder [4][NumSquares][]Square

func initNonSliderTables() {
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		f, r := sq.File(), sq.Rank()

		for _, c := range []Color{Red, Black} {
			var king, adv Bitboard90
			for _, d := range kingDeltas {
				nf, nr := f+d.df, r+d.dr
				if onBoardFR(nf, nr) && inPalace(c, nf, nr) && inPalace(c, f, r) {
					king = king.Set(NewSquare(nf, nr))
				}
			}
			for _, d := range advisorDeltas {
				nf, nr := f+d.df, r+d.dr
				if onBoardFR(nf, nr) && inPalace(c, nf, nr) && inPalace(c, f, r) {
					adv = adv.Set(NewSquare(nf, nr))
				}
			}
			kingPseudo[sq][c] = king
			advisorPseudo[sq][c] = adv

			var pawn Bitboard90
			dir := 1
			if c == Black {
				dir = -1
			}
			if onBoardFR(f, r+dir) {
				pawn = pawn.Set(NewSquare(f, r+dir))
			}
			if crossedRiver(c, sq) {
				if onBoardFR(f+1, r) {
					pawn = pawn.Set(NewSquare(f+1, r))
				}
				if onBoardFR(f-1, r) {
					pawn = pawn.Set(NewSquare(f-1, r))
				}
			}
			pawnPseudo[sq][c] = pawn
		}

		for _, dir := range []struct {
			idx  int
			step func(int, int) (int, int)
		}{
			{0, func(f, r int) (int, int) { return f, r + 1 }},
			{1, func(f, r int) (int, int) { return f, r - 1 }},
			{2, func(f, r int) (int, int) { return f + 1, r }},
			{3, func(f, r int) (int, int) { return f - 1, r }},
		} {
			cf, cr := f, r
			var out []Square
			for {
				cf, cr = dir.step(cf, cr)
				if !onBoardFR(cf, cr) {
					break
				}
				out = append(out, NewSquare(cf, cr))
			}
			rayOrder[dir.idx][sq] = out
		}
	}

	for sq := Square(0); int(sq) < NumSquares; sq++ {
		for _, c := range []Color{Red, Black} {
			bb := pawnPseudo[sq][c]
			for bb.IsNotEmpty() {
				t := bb.PopLSB()
				pawnAttackersTo[t][c] = pawnAttackersTo[t][c].Set(sq)
			}
		}
	}
}

// KingAttacks returns the squares the king of color c on sq attacks.
func KingAttacks(sq Square, c Color) Bitboard90 {
	return kingPseudo[sq][c]
}

// AdvisorAttacks returns the squares the advisor of color c on sq attacks.
func AdvisorAttacks(sq Square, c Color) Bitboard90 {
	return advisorPseudo[sq][c]
}

// PawnAttacks returns the squares the pawn of color c on sq attacks
// (forward, plus sideways once it has crossed the river).
func PawnAttacks(sq Square, c Color) Bitboard90 {
	return pawnPseudo[sq][c]
}

// PawnAttackersTo returns the squares from which a pawn of color c could
// attack sq. Not the same set as PawnAttacks(sq, c) — pawn geometry is
// asymmetric between attacker and target.
func PawnAttackersTo(sq Square, c Color) Bitboard90 {
	return pawnAttackersTo[sq][c]
}

// KnightAttacks returns the squares the knight on sq attacks given occ.
func KnightAttacks(sq Square, occ Bitboard90) Bitboard90 {
	f, r := sq.File(), sq.Rank()
	var bb Bitboard90
	for _, k := range knightDeltas {
		nf, nr := f+k.d.df, r+k.d.dr
		if !onBoardFR(nf, nr) {
			continue
		}
		bf, br := f+k.b.df, r+k.b.dr
		if occ.Test(NewSquare(bf, br)) {
			continue
		}
		bb = bb.Set(NewSquare(nf, nr))
	}
	return bb
}

// KnightAttacksTo returns the squares holding a knight that attacks sq given
// occ: the inverse of KnightAttacks. Not the same test mirrored — the leg
// that must be empty sits next to the attacking knight's own square, not
// next to sq, so each candidate source computes its blocker relative to
// itself rather than relative to the target.
func KnightAttacksTo(sq Square, occ Bitboard90) Bitboard90 {
	f, r := sq.File(), sq.Rank()
	var bb Bitboard90
	for _, k := range knightDeltas {
		sf, sr := f-k.d.df, r-k.d.dr
		if !onBoardFR(sf, sr) {
			continue
		}
		bf, br := sf+k.b.df, sr+k.b.dr
		if occ.Test(NewSquare(bf, br)) {
			continue
		}
		bb = bb.Set(NewSquare(sf, sr))
	}
	return bb
}

// BishopAttacks returns the squares the bishop (elephant) of color c on sq
// attacks given occ: two-step diagonal, confined to its own half, with the
// intermediate diagonal square required empty.
func BishopAttacks(sq Square, occ Bitboard90, c Color) Bitboard90 {
	f, r := sq.File(), sq.Rank()
	var bb Bitboard90
	for _, bd := range bishopDeltas {
		nf, nr := f+bd.d.df, r+bd.d.dr
		if !onBoardFR(nf, nr) {
			continue
		}
		dst := NewSquare(nf, nr)
		if !RiverHalf[c].Test(dst) {
			continue
		}
		mf, mr := f+bd.b.df, r+bd.b.dr
		if occ.Test(NewSquare(mf, mr)) {
			continue
		}
		bb = bb.Set(dst)
	}
	return bb
}

// RookAttacks returns the rook's orthogonal sliding attacks: each ray stops
// at, and includes, the first occupied square.
func RookAttacks(sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	for dir := 0; dir < 4; dir++ {
		for _, t := range rayOrder[dir][sq] {
			bb = bb.Set(t)
			if occ.Test(t) {
				break
			}
		}
	}
	return bb
}

// CannonMoveAttacks returns the cannon's non-capturing slide targets:
// identical to the rook on empty squares, stopping before the first
// occupied square (exclusive).
func CannonMoveAttacks(sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	for dir := 0; dir < 4; dir++ {
		for _, t := range rayOrder[dir][sq] {
			if occ.Test(t) {
				break
			}
			bb = bb.Set(t)
		}
	}
	return bb
}

// CannonCaptureAttacks returns the cannon's capture targets: the first
// occupied square beyond exactly one screen, per ray.
func CannonCaptureAttacks(sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	for dir := 0; dir < 4; dir++ {
		screened := false
		for _, t := range rayOrder[dir][sq] {
			if !occ.Test(t) {
				continue
			}
			if !screened {
				screened = true
				continue
			}
			bb = bb.Set(t)
			break
		}
	}
	return bb
}

// attacks returns the attack bitboard of a piece of type pt and color c
// standing on sq given occ, using the capture geometry (the form relevant
// to checks, SEE and attackers_to).
func attacks(pt PieceType, c Color, sq Square, occ Bitboard90) Bitboard90 {
	switch pt {
	case King:
		return KingAttacks(sq, c)
	case Advisor:
		return AdvisorAttacks(sq, c)
	case Bishop:
		return BishopAttacks(sq, occ, c)
	case Knight:
		return KnightAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Cannon:
		return CannonCaptureAttacks(sq, occ)
	case Pawn:
		return PawnAttacks(sq, c)
	default:
		return Empty
	}
}

// AttackersTo returns every piece of either color attacking sq given occ.
func AttackersTo(pos *Position, sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	for _, c := range [2]Color{Red, Black} {
		bb = bb.Or(PawnAttackersTo(sq, c).And(pos.pieces[c][Pawn]))
		// Advisor and king geometry is a single unblocked step, symmetric in
		// origin/destination (palace membership is checked for both ends),
		// so the forward attack set doubles as its own inverse.
		bb = bb.Or(AdvisorAttacks(sq, c).And(pos.pieces[c][Advisor]))
		bb = bb.Or(KingAttacks(sq, c).And(pos.pieces[c][King]))
	}
	knights := pos.pieces[Red][Knight].Or(pos.pieces[Black][Knight])
	bb = bb.Or(KnightAttacksTo(sq, occ).And(knights))

	rooks := pos.pieces[Red][Rook].Or(pos.pieces[Black][Rook])
	bb = bb.Or(RookAttacks(sq, occ).And(rooks))

	cannons := pos.pieces[Red][Cannon].Or(pos.pieces[Black][Cannon])
	bb = bb.Or(CannonCaptureAttacks(sq, occ).And(cannons))

	for _, c := range [2]Color{Red, Black} {
		bs := pos.pieces[c][Bishop]
		for bs.IsNotEmpty() {
			s := bs.PopLSB()
			if BishopAttacks(s, occ, c).Test(sq) {
				bb = bb.Set(s)
			}
		}
	}
	return bb
}

// CheckersTo returns the pieces of color c giving check to sq given occ.
// Only pawn, knight, rook and cannon can check under Xiangqi rules; the
// flying-general condition is handled separately by legal().
func CheckersTo(pos *Position, c Color, sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	bb = bb.Or(PawnAttackersTo(sq, c).And(pos.pieces[c][Pawn]))
	bb = bb.Or(KnightAttacksTo(sq, occ).And(pos.pieces[c][Knight]))
	bb = bb.Or(RookAttacks(sq, occ).And(pos.pieces[c][Rook]))
	bb = bb.Or(CannonCaptureAttacks(sq, occ).And(pos.pieces[c][Cannon]))
	return bb
}
