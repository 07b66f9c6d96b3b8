package board

// PieceValues is the caller-provided piece-value table collaborator: any
// non-king piece must have a nonzero value. The core only consumes it,
// for non-pawn material bookkeeping and for SEE.
type PieceValues interface {
	Value(PieceType) int
}

// DefaultPieceValues is a convenience midgame table so the core can run
// standalone (tests, the debug CLI) without a search wiring a real
// evaluator.
var DefaultPieceValues PieceValues = defaultValues{}

type defaultValues struct{}

func (defaultValues) Value(pt PieceType) int {
	switch pt {
	case Rook:
		return 600
	case Cannon:
		return 450
	case Knight:
		return 400
	case Bishop:
		return 200
	case Advisor:
		return 200
	case Pawn:
		return 100
	case King:
		return 0
	default:
		return 0
	}
}

// StateInfo is one immutable-after-write snapshot in the intrusive,
// caller-owned singly linked make/unmake chain. Every DoMove pushes a new
// node; UndoMove unlinks it. Position never owns this memory.
type StateInfo struct {
	Key             uint64
	NonPawnMaterial [2]int
	CheckersBB      Bitboard90

	// BlockersForKing[c] holds pieces (either color) standing between c's
	// king and a sniper that would otherwise attack it; Pinners[c] holds
	// the opposing sniper squares responsible.
	BlockersForKing [2]Bitboard90
	Pinners         [2]Bitboard90

	// CheckSquares[pt] holds the squares from which a piece of type pt and
	// the side-to-move's color would check the enemy king, given the
	// current occupancy. Advisor, Bishop and King are always empty: no
	// pseudo-attack of theirs ever reaches the enemy king square directly.
	// Cannon is left empty too: a cannon's check depends on post-move
	// occupancy and is recomputed in GivesCheck, not cached here.
	CheckSquares [NumPieceTypes]Bitboard90

	CapturedPiece Piece
	Chased        Bitboard90
	PliesFromNull int
	Move          Move
	Previous      *StateInfo

	Dirty              DirtyPiece
	AccumulatorComputed [2]bool
}

// setState rebuilds si.Key, material and checkers from the current board.
// Pure over the current board; safe to call repeatedly.
func (p *Position) setState(si *StateInfo) {
	si.Key = 0
	si.NonPawnMaterial = [2]int{}
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		pc := p.board[sq]
		if pc == NoPiece {
			continue
		}
		si.Key ^= Zobrist.psq[pc.Color()][pc.Type()][sq]
		if pc.Type() != Pawn {
			si.NonPawnMaterial[pc.Color()] += DefaultPieceValues.Value(pc.Type())
		}
	}
	if p.sideToMove == Black {
		si.Key ^= Zobrist.side
	}

	them := p.sideToMove.Other()
	si.CheckersBB = CheckersTo(p, them, p.King(p.sideToMove), p.occupied)

	p.setCheckInfo(si)
}

// setCheckInfo precomputes blockers, pinners, check squares and the chase
// bitboard for the current position.
func (p *Position) setCheckInfo(si *StateInfo) {
	us := p.sideToMove
	them := us.Other()

	blkUs, pinUs := blockersForKing(p, us)
	blkThem, pinThem := blockersForKing(p, them)
	si.BlockersForKing[us] = blkUs
	si.BlockersForKing[them] = blkThem
	si.Pinners[us] = pinUs
	si.Pinners[them] = pinThem

	ksqThem := p.King(them)
	occ := p.occupied
	si.CheckSquares[Pawn] = PawnAttackersTo(ksqThem, us)
	si.CheckSquares[Knight] = KnightAttacksTo(ksqThem, occ)
	si.CheckSquares[Rook] = RookAttacks(ksqThem, occ)
	si.CheckSquares[Advisor] = Empty
	si.CheckSquares[Bishop] = Empty
	si.CheckSquares[King] = Empty
	si.CheckSquares[Cannon] = Empty

	if si.Move != NoMove {
		si.Chased = p.computeChased(si)
	} else {
		si.Chased = Empty
	}
}

// blockersForKing returns the pieces standing between kingColor's king and
// an opposing sniper that would otherwise attack it (blockers), and the
// opposing sniper squares responsible for each pin (pinners). The cannon
// is a two-blocker sniper: it needs exactly one screen plus the pinned
// piece between it and the king, rather than the single blocker a rook or
// a flying-general king needs.
func blockersForKing(pos *Position, kingColor Color) (blockers, pinners Bitboard90) {
	ksq := pos.King(kingColor)
	them := kingColor.Other()

	rookLike := RookAttacks(ksq, Empty).And(
		pos.pieces[them][Rook].Or(pos.pieces[them][Cannon]).Or(pos.pieces[them][King]))
	for rookLike.IsNotEmpty() {
		sniper := rookLike.PopLSB()
		between := Between(ksq, sniper).And(pos.occupied)
		isCannon := pos.pieces[them][Cannon].Test(sniper)

		var blocker Square
		if isCannon {
			if between.PopCount() != 2 {
				continue
			}
			blocker = nearestTo(ksq, between)
		} else {
			if between.PopCount() != 1 {
				continue
			}
			blocker = between.LSB()
		}

		blockers = blockers.Set(blocker)
		if pos.board[blocker].Color() == kingColor {
			pinners = pinners.Set(sniper)
		}
	}

	knightSnipers := KnightAttacks(ksq, Empty).And(pos.pieces[them][Knight])
	for knightSnipers.IsNotEmpty() {
		sniper := knightSnipers.PopLSB()
		blockSq := knightBlockerSquare(ksq, sniper)
		if blockSq == NoSquare || !pos.occupied.Test(blockSq) {
			continue
		}
		blockers = blockers.Set(blockSq)
		if pos.board[blockSq].Color() == kingColor {
			pinners = pinners.Set(sniper)
		}
	}

	return blockers, pinners
}

// Between returns the squares strictly between a and b along a shared file
// or rank. Returns Empty if a and b do not share a line.
func Between(a, b Square) Bitboard90 {
	if a == b {
		return Empty
	}
	var bb Bitboard90
	if sameFile(a, b) {
		lo, hi := a, b
		if lo.Rank() > hi.Rank() {
			lo, hi = hi, lo
		}
		for r := lo.Rank() + 1; r < hi.Rank(); r++ {
			bb = bb.Set(NewSquare(a.File(), r))
		}
		return bb
	}
	if sameRank(a, b) {
		lo, hi := a, b
		if lo.File() > hi.File() {
			lo, hi = hi, lo
		}
		for f := lo.File() + 1; f < hi.File(); f++ {
			bb = bb.Set(NewSquare(f, a.Rank()))
		}
		return bb
	}
	return Empty
}

// nearestTo returns the square in bb closest to target by file/rank
// distance, used to pick the cannon's pinned blocker (the piece on the
// king's side of the screen) out of its two-piece between-set.
func nearestTo(target Square, bb Bitboard90) Square {
	best := NoSquare
	bestDist := 1 << 30
	t := bb
	for t.IsNotEmpty() {
		s := t.PopLSB()
		d := distFile(s, target)
		if sameFile(s, target) {
			d = absInt(s.Rank() - target.Rank())
		}
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// knightBlockerSquare returns the single orthogonal square that must be
// empty for the knight on sniper to attack ksq, or NoSquare if sniper is not
// a knight's move away from ksq. The blocker sits next to sniper, not next
// to ksq — only the "is a knight's move away" relation is symmetric, the
// leg square is not.
func knightBlockerSquare(ksq, sniper Square) Square {
	f, r := sniper.File(), sniper.Rank()
	for _, k := range knightDeltas {
		nf, nr := f+k.d.df, r+k.d.dr
		if onBoardFR(nf, nr) && NewSquare(nf, nr) == ksq {
			return NewSquare(f+k.b.df, r+k.b.dr)
		}
	}
	return NoSquare
}
