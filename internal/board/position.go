package board

import "fmt"

// ThreadHandle is the caller-provided collaborator offering the relaxed
// atomic node counter DoMove increments on every call. The search owns
// the concrete implementation; the core only consumes this interface.
type ThreadHandle interface {
	AddNode()
}

// DirtyPiece records the piece movements a single DoMove produced, so a
// downstream incremental evaluator can update from deltas instead of
// rescanning the board.
type DirtyPiece struct {
	Num   int
	Piece [2]Piece
	From  [2]Square
	To    [2]Square
}

// Position is the mutable Xiangqi board-state: piece placement, bitboards,
// side to move, ply counter, and a non-owning pointer into the caller's
// StateInfo chain. The Position never allocates or owns StateInfo memory.
type Position struct {
	board      [NumSquares]Piece
	pieces     [2][NumPieceTypes]Bitboard90
	colorBB    [2]Bitboard90
	occupied   Bitboard90
	pieceCount [2][NumPieceTypes]int
	sideToMove Color
	gamePly    int
	st         *StateInfo
}

// SideToMove returns the color on move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Ply returns the half-move counter since the game start.
func (p *Position) Ply() int { return p.gamePly }

// PieceOn returns the piece occupying sq, or NoPiece.
func (p *Position) PieceOn(sq Square) Piece { return p.board[sq] }

// PiecesBB returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBB(c Color, pt PieceType) Bitboard90 { return p.pieces[c][pt] }

// ColorBB returns the bitboard of all pieces of color c.
func (p *Position) ColorBB(c Color) Bitboard90 { return p.colorBB[c] }

// Occupied returns the bitboard of all occupied squares.
func (p *Position) Occupied() Bitboard90 { return p.occupied }

// Count returns the number of pieces of type pt and color c on the board.
func (p *Position) Count(c Color, pt PieceType) int { return p.pieceCount[c][pt] }

// King returns the square of color c's king.
func (p *Position) King(c Color) Square {
	return p.pieces[c][King].LSB()
}

// State returns the current StateInfo.
func (p *Position) State() *StateInfo { return p.st }

// Key returns the current Zobrist key.
func (p *Position) Key() uint64 { return p.st.Key }

// Checkers returns the bitboard of enemy pieces checking the side to move.
func (p *Position) Checkers() Bitboard90 { return p.st.CheckersBB }

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.st.CheckersBB.IsNotEmpty() }

func (p *Position) putPiece(pc Piece, sq Square) {
	p.board[sq] = pc
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.pieces[c][pt] = p.pieces[c][pt].Or(bb)
	p.colorBB[c] = p.colorBB[c].Or(bb)
	p.occupied = p.occupied.Or(bb)
	p.pieceCount[c][pt]++
}

func (p *Position) removePiece(sq Square) Piece {
	pc := p.board[sq]
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.pieces[c][pt] = p.pieces[c][pt].AndNot(bb)
	p.colorBB[c] = p.colorBB[c].AndNot(bb)
	p.occupied = p.occupied.AndNot(bb)
	p.pieceCount[c][pt]--
	p.board[sq] = NoPiece
	return pc
}

func (p *Position) movePieceSq(from, to Square) {
	pc := p.board[from]
	c, pt := pc.Color(), pc.Type()
	mask := SquareBB(from).Or(SquareBB(to))
	p.pieces[c][pt] = p.pieces[c][pt].Xor(mask)
	p.colorBB[c] = p.colorBB[c].Xor(mask)
	p.occupied = p.occupied.Xor(mask)
	p.board[from] = NoPiece
	p.board[to] = pc
}

// Reset clears the Position to an empty board with no state attached.
func (p *Position) Reset() {
	*p = Position{}
}

// Pretty renders the 10x9 board, FEN, Zobrist key and checker squares.
func (p *Position) Pretty() string {
	s := ""
	for r := NumRanks - 1; r >= 0; r-- {
		s += fmt.Sprintf("%d ", r)
		for f := 0; f < NumFiles; f++ {
			pc := p.board[NewSquare(f, r)]
			if pc == NoPiece {
				s += ". "
			} else {
				s += string(pc.Letter()) + " "
			}
		}
		s += "\n"
	}
	s += "  "
	for f := 0; f < NumFiles; f++ {
		s += string('a'+byte(f)) + " "
	}
	s += "\n"
	s += "Fen: " + p.FEN() + "\n"
	s += fmt.Sprintf("Key: %016X\n", p.Key())
	s += "Checkers:"
	checkers := p.st.CheckersBB
	for checkers.IsNotEmpty() {
		s += " " + checkers.PopLSB().String()
	}
	s += "\n"
	return s
}
