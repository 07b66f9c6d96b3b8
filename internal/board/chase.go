package board

// newDirectAttacks returns the attacks a piece of type pt and color c
// standing on cur makes under occ, with squares on line(origin, cur)
// stripped out for sliding pieces (rook, cannon): a slider's attack along
// the line it already occupied is not "new".
func newDirectAttacks(pt PieceType, c Color, origin, cur Square, occ Bitboard90) Bitboard90 {
	atk := attacks(pt, c, cur, occ)
	if (pt == Rook || pt == Cannon) && origin != cur {
		var line Bitboard90
		switch {
		case sameFile(origin, cur):
			line = FileMask[cur.File()]
		case sameRank(origin, cur):
			line = RankMask[cur.Rank()]
		}
		atk = atk.AndNot(line)
	}
	return atk
}

// nonCrossedPawns returns color c's pawns still on their own side of the
// river.
func nonCrossedPawns(p *Position, c Color) Bitboard90 {
	return p.pieces[c][Pawn].And(RiverHalf[c])
}

// computeChased returns the set of pieces newly placed under an
// unprotected, non-check threat by the move that produced si. p already
// reflects the post-move board with the side to move flipped to the
// non-mover ("opp"); si.Move holds the move just played.
func (p *Position) computeChased(si *StateInfo) Bitboard90 {
	m := si.Move
	from, to := m.From(), m.To()
	mover := p.sideToMove.Other()
	opp := p.sideToMove
	movedType := p.board[to].Type()
	pins := si.BlockersForKing[opp]

	var chased Bitboard90

	// Direct attacks from the square the mover just landed on. Kings and
	// pawns never contribute a direct-attack chase.
	if movedType != King && movedType != Pawn {
		direct := newDirectAttacks(movedType, mover, from, to, p.occupied).And(p.colorBB[opp])
		p.addChased(&chased, to, movedType, direct, opp, pins, mover)
	}

	// Discovered attacks: every other mover slider/knight/bishop whose
	// attack set differs from what it was immediately before the move,
	// due to the vacated origin square or (for a cannon) a changed screen.
	var occBefore Bitboard90
	if si.CapturedPiece != NoPiece {
		occBefore = p.occupied.Xor(SquareBB(from))
	} else {
		occBefore = p.occupied.Xor(SquareBB(to)).Xor(SquareBB(from))
	}
	for _, pt := range [...]PieceType{Rook, Cannon, Knight, Bishop} {
		discoverers := p.pieces[mover][pt]
		for discoverers.IsNotEmpty() {
			s := discoverers.PopLSB()
			if s == to {
				continue // already handled as the direct attacker
			}
			before := attacks(pt, mover, s, occBefore)
			after := attacks(pt, mover, s, p.occupied)
			newAtk := after.AndNot(before).And(p.colorBB[opp])
			if newAtk.IsNotEmpty() {
				p.addChased(&chased, s, pt, newAtk, opp, pins, mover)
			}
		}
	}

	if si.PliesFromNull > 0 && si.Previous != nil {
		p.addFakeRoots(&chased, si, opp, mover)
		p.addDiscoveredCheckCaptures(&chased, si, opp, mover)
	}

	return chased
}

// addChased filters attacks (made by a piece of type attackerType standing
// on attackerSq) down to king/non-river-pawn exclusions, folds in the
// unconditional-by-piece-value rule, strips mutual/symmetric threats except
// for pinned victims, and adds whatever remains if it is unprotected.
// victim is the color being attacked; pins is victim's own
// blockers-for-king set (a pinned defender cannot really defend).
func (p *Position) addChased(b *Bitboard90, attackerSq Square, attackerType PieceType, atk Bitboard90, victim Color, pins Bitboard90, attackerColor Color) {
	var filtered Bitboard90
	t := atk
	for t.IsNotEmpty() {
		s := t.PopLSB()
		pc := p.board[s]
		if pc.Type() == King {
			continue
		}
		if pc.Type() == Pawn && !crossedRiver(victim, s) {
			continue
		}
		filtered = filtered.Set(s)
	}
	atk = filtered

	if attackerType == Knight || attackerType == Cannon {
		*b = b.Or(atk.And(p.pieces[victim][Rook]))
	}
	if attackerType == Bishop || attackerType == Advisor {
		*b = b.Or(atk.And(p.pieces[victim][Rook].Or(p.pieces[victim][Cannon]).Or(p.pieces[victim][Knight])))
	}

	var mutual Bitboard90
	if attackerType == Knight {
		// Same-type match alone isn't enough here: a knight's "can it attack
		// back" leg is rooted at the would-be attacker's own square, not at
		// attackerSq, so the reverse relation needs the inverse query rather
		// than the plain type-match the other piece types use below.
		mutual = KnightAttacksTo(attackerSq, p.occupied).And(p.pieces[victim][Knight])
	} else {
		mutual = p.pieces[victim][attackerType]
	}
	atk = atk.AndNot(mutual.AndNot(pins))

	moverKing := p.King(attackerColor)
	for atk.IsNotEmpty() {
		s := atk.PopLSB()
		occ := p.occupied.Clear(attackerSq)
		roots := AttackersTo(p, s, occ).And(p.colorBB[victim]).AndNot(pins)
		unprotected := roots.IsEmpty()
		if !unprotected && roots.PopCount() == 1 && roots.Test(p.King(victim)) {
			unprotected = RookAttacks(moverKing, occ).Test(s)
		}
		if unprotected {
			*b = b.Set(s)
		}
	}
}

// addFakeRoots handles the "fake root" adjustment: a piece of opp (the side
// now to move) that the move just pinned can no longer defend what it was
// defending, so anything it was protecting that any unpinned mover piece
// attacks becomes chased.
func (p *Position) addFakeRoots(b *Bitboard90, si *StateInfo, opp, mover Color) {
	newPins := si.BlockersForKing[opp].AndNot(si.Previous.BlockersForKing[opp]).And(p.colorBB[opp])
	for newPins.IsNotEmpty() {
		s := newPins.PopLSB()
		pinnedType := p.board[s].Type()

		fakeRooted := p.colorBB[opp].AndNot(p.pieces[opp][King]).AndNot(nonCrossedPawns(p, opp))
		var sAttacks Bitboard90
		if pinnedType == Pawn {
			sAttacks = PawnAttacks(s, opp)
		} else {
			sAttacks = attacks(pinnedType, opp, s, p.occupied)
		}
		fakeRooted = fakeRooted.And(sAttacks)

		for fakeRooted.IsNotEmpty() {
			s2 := fakeRooted.PopLSB()
			defenders := AttackersTo(p, s2, p.occupied).And(p.colorBB[mover]).AndNot(si.BlockersForKing[mover])
			if defenders.IsNotEmpty() {
				*b = b.Set(s2)
			}
		}
	}
}

// addDiscoveredCheckCaptures covers the case where a mover piece that just
// became a blocker for the opponent's king (so moving it would discover
// check) may already be attacking opponent pieces right now; those the
// opponent's king cannot safely recapture are chased too.
func (p *Position) addDiscoveredCheckCaptures(b *Bitboard90, si *StateInfo, opp, mover Color) {
	newDiscoverers := si.BlockersForKing[opp].AndNot(si.Previous.BlockersForKing[opp]).And(p.colorBB[mover])
	oppKing := p.King(opp)
	nearKing := KingAttacks(oppKing, opp)

	for newDiscoverers.IsNotEmpty() {
		s := newDiscoverers.PopLSB()
		dpt := p.board[s].Type()

		var discAttacks Bitboard90
		if dpt == Pawn {
			discAttacks = PawnAttacks(s, mover).And(p.colorBB[opp])
		} else {
			discAttacks = attacks(dpt, mover, s, p.occupied).And(p.colorBB[opp])
		}

		*b = b.Or(discAttacks.AndNot(nearKing))

		nearCaptures := discAttacks.And(nearKing)
		for nearCaptures.IsNotEmpty() {
			s2 := nearCaptures.PopLSB()
			occ := p.occupied.Clear(s).Clear(oppKing)
			others := AttackersTo(p, s2, occ).And(p.colorBB[mover]).Clear(s)
			if others.IsNotEmpty() {
				*b = b.Set(s2)
			}
		}
	}
}
