package board

// seeAttackersTo computes the attackers-to set used inside SeeGE's swap
// loop: unlike a plain attackers-to, it also counts a king as a
// rook-geometry attacker (the flying-general virtual attack), and it masks
// every piece set against occ so pieces the swap has already removed
// drop out. Recomputed fresh on every round rather than incrementally
// x-rayed: a cannon's attack set depends on the exact screen count, not
// just a clear ray, so Xiangqi cannot reuse the chess trick of OR-ing in
// only the squares behind a just-removed slider.
func seeAttackersTo(p *Position, sq Square, occ Bitboard90) Bitboard90 {
	var bb Bitboard90
	for _, c := range [2]Color{Red, Black} {
		bb = bb.Or(PawnAttackersTo(sq, c).And(p.pieces[c][Pawn]).And(occ))
		bb = bb.Or(AdvisorAttacks(sq, c).And(p.pieces[c][Advisor]).And(occ))
		bb = bb.Or(KingAttacks(sq, c).And(p.pieces[c][King]).And(occ))

		bishops := p.pieces[c][Bishop].And(occ)
		for bishops.IsNotEmpty() {
			s := bishops.PopLSB()
			if BishopAttacks(s, occ, c).Test(sq) {
				bb = bb.Set(s)
			}
		}
	}

	knights := p.pieces[Red][Knight].Or(p.pieces[Black][Knight]).And(occ)
	bb = bb.Or(KnightAttacksTo(sq, occ).And(knights))

	rookLike := p.pieces[Red][Rook].Or(p.pieces[Red][King]).
		Or(p.pieces[Black][Rook]).Or(p.pieces[Black][King]).And(occ)
	bb = bb.Or(RookAttacks(sq, occ).And(rookLike))

	cannons := p.pieces[Red][Cannon].Or(p.pieces[Black][Cannon]).And(occ)
	for cannons.IsNotEmpty() {
		s := cannons.PopLSB()
		if CannonCaptureAttacks(s, occ).Test(sq) {
			bb = bb.Set(s)
		}
	}

	return bb
}

// leastValuableAttacker picks stm's cheapest attacker in attackers, in
// priority order: Pawn, Bishop, Advisor, Cannon, Knight, Rook, King.
func leastValuableAttacker(p *Position, stm Color, attackers Bitboard90) (Square, PieceType, bool) {
	order := [...]PieceType{Pawn, Bishop, Advisor, Cannon, Knight, Rook, King}
	for _, pt := range order {
		bb := attackers.And(p.pieces[stm][pt])
		if bb.IsNotEmpty() {
			return bb.LSB(), pt, true
		}
	}
	return NoSquare, NoPieceType, false
}

// SeeGE reports whether the capture sequence m initiates nets the mover at
// least threshold centipawns. values is the caller's piece-value table;
// DefaultPieceValues is used if nil.
func (p *Position) SeeGE(m Move, threshold int, values PieceValues) bool {
	if values == nil {
		values = DefaultPieceValues
	}
	from, to := m.From(), m.To()
	movedPc := p.board[from]
	capturedPc := p.board[to]

	swap := values.Value(capturedPc.Type()) - threshold
	if swap < 0 {
		return false
	}
	swap = values.Value(movedPc.Type()) - swap
	if swap <= 0 {
		return true
	}

	occ := p.occupied.Clear(from).Clear(to)
	stm := movedPc.Color()
	attackers := seeAttackersTo(p, to, occ)
	res := 1

	for {
		attackers = attackers.And(occ)
		stm = stm.Other()

		stmAttackers := attackers.And(p.colorBB[stm])
		if p.st.Pinners[stm].And(occ).IsNotEmpty() {
			stmAttackers = stmAttackers.AndNot(p.st.BlockersForKing[stm])
		}
		if stmAttackers.IsEmpty() {
			break
		}

		res ^= 1

		sq, pt, ok := leastValuableAttacker(p, stm, stmAttackers)
		if !ok {
			break
		}

		if pt == King {
			if attackers.AndNot(p.colorBB[stm]).IsNotEmpty() {
				return (res ^ 1) != 0
			}
			return res != 0
		}

		swap = values.Value(pt) - swap
		if swap < res {
			break
		}

		occ = occ.Clear(sq)
		attackers = attackers.Or(seeAttackersTo(p, to, occ))
	}

	return res != 0
}
