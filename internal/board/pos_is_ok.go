package board

import "fmt"

// IsOk runs a battery of consistency assertions over the Position: exactly
// one king per side, the piece bitboards partition the occupied set,
// pawns and palace pieces stay in their confined regions, piece counts
// agree with the bitboards, the side not to move is not in check, no
// advisor, bishop or king attacks the enemy king, and the cached StateInfo
// fields match what setState would recompute from scratch. Intended for debug builds and tests, not the hot path.
func (p *Position) IsOk() error {
	if err := p.checkKings(); err != nil {
		return err
	}
	if err := p.checkBitboards(); err != nil {
		return err
	}
	if err := p.checkRegions(); err != nil {
		return err
	}
	if err := p.checkPieceCounts(); err != nil {
		return err
	}
	if err := p.checkNotInCheck(); err != nil {
		return err
	}
	return p.checkState()
}

func (p *Position) checkKings() error {
	for _, c := range [2]Color{Red, Black} {
		n := p.pieces[c][King].PopCount()
		if n != 1 {
			return fmt.Errorf("pos_is_ok: color %v has %d kings, want 1", c, n)
		}
	}
	return nil
}

func (p *Position) checkBitboards() error {
	var union Bitboard90
	for c := Color(0); c < 2; c++ {
		var colorUnion Bitboard90
		for pt := PieceType(1); pt < NumPieceTypes; pt++ {
			bb := p.pieces[c][pt]
			if bb.And(union).IsNotEmpty() {
				return fmt.Errorf("pos_is_ok: color %d type %d overlaps an earlier piece set", c, pt)
			}
			colorUnion = colorUnion.Or(bb)
			union = union.Or(bb)
		}
		if colorUnion != p.colorBB[c] {
			return fmt.Errorf("pos_is_ok: colorBB[%d] does not equal the union of its piece bitboards", c)
		}
	}
	if union != p.occupied {
		return fmt.Errorf("pos_is_ok: occupied does not equal the union of all piece bitboards")
	}
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		pc := p.board[sq]
		onBoard := pc != NoPiece
		if onBoard != p.occupied.Test(sq) {
			return fmt.Errorf("pos_is_ok: board[%s] and occupied disagree", sq)
		}
		if onBoard && !p.pieces[pc.Color()][pc.Type()].Test(sq) {
			return fmt.Errorf("pos_is_ok: board[%s]=%c not reflected in its piece bitboard", sq, pc.Letter())
		}
	}
	return nil
}

func (p *Position) checkRegions() error {
	for _, c := range [2]Color{Red, Black} {
		// A pawn never moves backward, so it can never occupy a square
		// behind its own starting rank (3 for Red, 6 for Black).
		behind := RankMask[0].Or(RankMask[1]).Or(RankMask[2])
		if c == Black {
			behind = RankMask[9].Or(RankMask[8]).Or(RankMask[7])
		}
		if p.pieces[c][Pawn].And(behind).IsNotEmpty() {
			return fmt.Errorf("pos_is_ok: color %v has a pawn behind its starting rank", c)
		}
		for _, pt := range [2]PieceType{King, Advisor} {
			if p.pieces[c][pt].AndNot(PalaceMask[c]).IsNotEmpty() {
				return fmt.Errorf("pos_is_ok: color %v has a %v outside its palace", c, pt)
			}
		}
	}
	return nil
}

func (p *Position) checkPieceCounts() error {
	for c := Color(0); c < 2; c++ {
		for pt := PieceType(1); pt < NumPieceTypes; pt++ {
			want := p.pieces[c][pt].PopCount()
			if p.pieceCount[c][pt] != want {
				return fmt.Errorf("pos_is_ok: pieceCount[%d][%d]=%d, bitboard has %d", c, pt, p.pieceCount[c][pt], want)
			}
		}
	}
	return nil
}

// checkNotInCheck asserts the side NOT to move is not in check: a position
// reached by a legal move never leaves the mover's own king attacked.
func (p *Position) checkNotInCheck() error {
	them := p.sideToMove.Other()
	checkers := CheckersTo(p, p.sideToMove, p.King(them), p.occupied)
	if checkers.IsNotEmpty() {
		return fmt.Errorf("pos_is_ok: side not to move (%v) is in check", them)
	}
	return nil
}

// checkState re-derives a fresh StateInfo from the current board and
// compares it field-by-field against the cached one, catching any
// do_move/undo_move path that forgot to update a cache.
func (p *Position) checkState() error {
	// Chased is deliberately left out of this comparison: it depends on the
	// StateInfo chain's Previous link (fake roots, discovered checks), which
	// a from-scratch StateInfo has no way to supply.
	var fresh StateInfo
	fresh.Move = p.st.Move
	fresh.PliesFromNull = p.st.PliesFromNull
	p.setState(&fresh)

	if fresh.Key != p.st.Key {
		return fmt.Errorf("pos_is_ok: cached key %016X does not match recomputed %016X", p.st.Key, fresh.Key)
	}
	if fresh.NonPawnMaterial != p.st.NonPawnMaterial {
		return fmt.Errorf("pos_is_ok: cached non-pawn material %v does not match recomputed %v", p.st.NonPawnMaterial, fresh.NonPawnMaterial)
	}
	if fresh.CheckersBB != p.st.CheckersBB {
		return fmt.Errorf("pos_is_ok: cached checkers do not match recomputed checkers")
	}
	if fresh.BlockersForKing != p.st.BlockersForKing {
		return fmt.Errorf("pos_is_ok: cached blockers do not match recomputed blockers")
	}
	if fresh.Pinners != p.st.Pinners {
		return fmt.Errorf("pos_is_ok: cached pinners do not match recomputed pinners")
	}
	// CheckSquares leaves the Advisor, Bishop and King entries empty, which
	// is only sound while no piece of those types attacks the enemy king.
	for _, c := range [2]Color{Red, Black} {
		enemyKing := p.King(c.Other())
		for _, pt := range [3]PieceType{Advisor, Bishop, King} {
			for bb := p.pieces[c][pt]; bb.IsNotEmpty(); {
				if attacks(pt, c, bb.PopLSB(), p.occupied).Test(enemyKing) {
					return fmt.Errorf("pos_is_ok: a %v of color %v attacks the enemy king", pt, c)
				}
			}
		}
	}
	if fresh.CheckSquares != p.st.CheckSquares {
		return fmt.Errorf("pos_is_ok: cached check squares do not match recomputed check squares")
	}
	return nil
}
