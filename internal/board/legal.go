package board

// Legal tests a pseudo-legal move for check-safety. The flying general,
// the king's own destination, and the mover's own king are all checked
// against the same post-move occupancy.
func (p *Position) Legal(m Move) bool {
	from, to := m.From(), m.To()
	us := p.sideToMove
	them := us.Other()
	pc := p.board[from]

	occAfter := p.occupied.Clear(from).Set(to)

	ksq := p.King(us)
	if pc.Type() == King {
		ksq = to
	}
	enemyKing := p.King(them)

	if RookAttacks(ksq, occAfter).Test(enemyKing) {
		return false
	}

	if pc.Type() == King {
		return p.attackersExcluding(them, to, occAfter, to).IsEmpty()
	}
	return p.attackersExcluding(them, ksq, occAfter, to).IsEmpty()
}

// attackersExcluding is AttackersTo restricted to color c, evaluated against
// occ, with the piece (if any) on square exclude treated as absent. Used by
// Legal to discount the piece a move is capturing. The enemy king is
// counted as a rook-geometry attacker, modelling the flying general rule.
func (p *Position) attackersExcluding(c Color, sq Square, occ Bitboard90, exclude Square) Bitboard90 {
	var bb Bitboard90

	pawns := p.pieces[c][Pawn].Clear(exclude)
	bb = bb.Or(PawnAttackersTo(sq, c).And(pawns))

	advisors := p.pieces[c][Advisor].Clear(exclude)
	bb = bb.Or(AdvisorAttacks(sq, c).And(advisors))

	knights := p.pieces[c][Knight].Clear(exclude)
	bb = bb.Or(KnightAttacksTo(sq, occ).And(knights))

	rooksAndKing := p.pieces[c][Rook].Or(p.pieces[c][King]).Clear(exclude)
	bb = bb.Or(RookAttacks(sq, occ).And(rooksAndKing))

	cannons := p.pieces[c][Cannon].Clear(exclude)
	bb = bb.Or(CannonCaptureAttacks(sq, occ).And(cannons))

	bishops := p.pieces[c][Bishop].Clear(exclude)
	for bishops.IsNotEmpty() {
		s := bishops.PopLSB()
		if BishopAttacks(s, occ, c).Test(sq) {
			bb = bb.Set(s)
		}
	}

	return bb
}

// PseudoLegal validates a move decoded from an untrusted source — a
// transposition-table entry possibly corrupted by a concurrent write. It
// is the core's sole defense against garbage move input.
func (p *Position) PseudoLegal(m Move) bool {
	from, to := m.From(), m.To()
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	pc := p.board[from]
	if pc == NoPiece || pc.Color() != p.sideToMove {
		return false
	}
	target := p.board[to]
	if target != NoPiece && target.Color() == pc.Color() {
		return false
	}

	if pc.Type() == Cannon {
		if target == NoPiece {
			return CannonMoveAttacks(from, p.occupied).Test(to)
		}
		return CannonCaptureAttacks(from, p.occupied).Test(to)
	}
	return attacks(pc.Type(), pc.Color(), from, p.occupied).Test(to)
}

// GivesCheck reports whether playing m would check the enemy king. Must
// be called before the move is applied.
func (p *Position) GivesCheck(m Move) bool {
	from, to := m.From(), m.To()
	us := p.sideToMove
	them := us.Other()
	pc := p.board[from]
	enemyKing := p.King(them)

	if pc.Type() == Cannon {
		occAfter := p.occupied.Clear(from).Set(to)
		if CannonCaptureAttacks(to, occAfter).Test(enemyKing) {
			return true
		}
	} else if p.st.CheckSquares[pc.Type()].Test(to) {
		return true
	}

	// A friendly cannon already lined up on the enemy king via rook
	// geometry can discover check non-monotonically: the move might supply
	// or remove its screen. Re-derive checkers_to fully in that case.
	if p.pieces[us][Cannon].And(p.st.CheckSquares[Rook]).IsNotEmpty() {
		occAfter := p.occupied.Clear(from).Set(to)
		return CheckersTo(p, us, enemyKing, occAfter).IsNotEmpty()
	}

	if p.st.BlockersForKing[them].Test(from) && !sameLine(from, to, enemyKing) {
		return true
	}
	return false
}

// sameLine reports whether a, b and k all share a file or all share a rank.
func sameLine(a, b, k Square) bool {
	if sameFile(a, k) && sameFile(b, k) {
		return true
	}
	if sameRank(a, k) && sameRank(b, k) {
		return true
	}
	return false
}
