package board

// TranspositionTablePrefetcher is the caller-provided collaborator that
// offers a prefetchable address for a key, invoked from DoNullMove. Go has
// no portable cache-prefetch intrinsic, so the core just hands the key to
// the collaborator and lets it act.
type TranspositionTablePrefetcher interface {
	FirstEntry(key uint64)
}

// DoMove applies m to the position. newSt must not be the current state;
// it becomes the new head of the StateInfo chain. givesCheck must already
// have been determined by the caller (typically via GivesCheck, before
// the board changes).
func (p *Position) DoMove(m Move, newSt *StateInfo, givesCheck bool, th ThreadHandle) {
	if th != nil {
		th.AddNode()
	}

	from, to := m.From(), m.To()
	us := p.sideToMove
	them := us.Other()
	pc := p.board[from]

	prev := p.st
	*newSt = StateInfo{
		NonPawnMaterial: prev.NonPawnMaterial,
		PliesFromNull:   prev.PliesFromNull + 1,
		Previous:        prev,
		Move:            m,
		Dirty: DirtyPiece{
			Num:   1,
			Piece: [2]Piece{pc, NoPiece},
			From:  [2]Square{from, NoSquare},
			To:    [2]Square{to, NoSquare},
		},
	}
	p.st = newSt
	p.gamePly++

	key := prev.Key

	captured := p.board[to]
	if captured != NoPiece {
		if captured.Type() != Pawn {
			newSt.NonPawnMaterial[captured.Color()] -= DefaultPieceValues.Value(captured.Type())
		}
		newSt.Dirty.Num = 2
		newSt.Dirty.Piece[1] = captured
		newSt.Dirty.From[1] = to
		newSt.Dirty.To[1] = NoSquare
		key ^= Zobrist.psq[captured.Color()][captured.Type()][to]
		p.removePiece(to)
	}

	key ^= Zobrist.psq[us][pc.Type()][from] ^ Zobrist.psq[us][pc.Type()][to]
	p.movePieceSq(from, to)
	key ^= Zobrist.side

	newSt.CapturedPiece = captured
	newSt.Key = key

	if givesCheck {
		newSt.CheckersBB = CheckersTo(p, us, p.King(them), p.occupied)
	} else {
		newSt.CheckersBB = Empty
	}

	p.sideToMove = them
	p.setCheckInfo(newSt)
}

// UndoMove reverses the last DoMove, restoring the board and unlinking the
// current StateInfo. m must be the same move just played.
func (p *Position) UndoMove(m Move) {
	p.sideToMove = p.sideToMove.Other()
	from, to := m.From(), m.To()

	p.movePieceSq(to, from)
	if p.st.CapturedPiece != NoPiece {
		p.putPiece(p.st.CapturedPiece, to)
	}

	p.st = p.st.Previous
	p.gamePly--
}

// DoNullMove passes the move without moving a piece. Precondition: the
// side to move is not currently in check.
func (p *Position) DoNullMove(newSt *StateInfo, tt TranspositionTablePrefetcher) {
	prev := p.st
	*newSt = StateInfo{
		Key:             prev.Key ^ Zobrist.side,
		NonPawnMaterial: prev.NonPawnMaterial,
		PliesFromNull:   0,
		Previous:        prev,
		CheckersBB:      Empty,
	}
	p.st = newSt
	p.sideToMove = p.sideToMove.Other()
	p.setCheckInfo(newSt)

	if tt != nil {
		tt.FirstEntry(newSt.Key)
	}
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	p.st = p.st.Previous
	p.sideToMove = p.sideToMove.Other()
}

// KeyAfter computes the Zobrist key that do_move(m) would produce, without
// mutating the position. Used by search to prefetch a TT slot before
// committing to a move.
func (p *Position) KeyAfter(m Move) uint64 {
	from, to := m.From(), m.To()
	pc := p.board[from]
	captured := p.board[to]

	key := p.st.Key ^ Zobrist.side
	if captured != NoPiece {
		key ^= Zobrist.psq[captured.Color()][captured.Type()][to]
	}
	key ^= Zobrist.psq[pc.Color()][pc.Type()][from] ^ Zobrist.psq[pc.Color()][pc.Type()][to]
	return key
}
