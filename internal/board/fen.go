package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the initial Xiangqi position.
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// Set parses a FEN string and (re)initializes the Position. st becomes
// the initial StateInfo, linked with no previous node. Castling and
// en-passant fields are accepted but ignored. Arbitrary FEN dialect
// robustness is out of scope — malformed input beyond what this parser
// tolerates is undefined behavior, consistent with the core's "garbage
// in" contract.
func (p *Position) Set(fen string, st *StateInfo) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("invalid FEN: need at least 2 fields, got %d", len(fields))
	}

	p.Reset()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != NumRanks {
		return nil, fmt.Errorf("invalid FEN: need %d ranks, got %d", NumRanks, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '9' {
				file += int(ch - '0')
				continue
			}
			pc, ok := PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("invalid piece character %q in FEN", ch)
			}
			if file >= NumFiles {
				return nil, fmt.Errorf("invalid FEN: rank %d overflows files", rank)
			}
			p.putPiece(pc, NewSquare(file, rank))
			file++
		}
		if file != NumFiles {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files, want %d", rank, file, NumFiles)
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = Red
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %q", fields[1])
	}

	halfMove := 0
	fullMove := 1
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			halfMove = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			fullMove = n
		}
	}

	stmBit := 0
	if p.sideToMove == Black {
		stmBit = 1
	}
	p.gamePly = 2*(fullMove-1) + stmBit
	if p.gamePly < 0 {
		p.gamePly = 0
	}

	*st = StateInfo{PliesFromNull: halfMove}
	p.st = st
	p.setState(st)

	return p, nil
}

// FEN renders the current Position back to FEN text. The two unused
// middle fields are always emitted as "-".
func (p *Position) FEN() string {
	var sb strings.Builder
	for i := 0; i < NumRanks; i++ {
		rank := NumRanks - 1 - i
		empty := 0
		for f := 0; f < NumFiles; f++ {
			pc := p.board[NewSquare(f, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if i != NumRanks-1 {
			sb.WriteByte('/')
		}
	}

	stmBit := 0
	side := "w"
	if p.sideToMove == Black {
		side = "b"
		stmBit = 1
	}
	fullMove := (p.gamePly-stmBit)/2 + 1

	return fmt.Sprintf("%s %s - - %d %d", sb.String(), side, p.st.PliesFromNull, fullMove)
}

// Flip mirrors the Position vertically and swaps colors, producing the
// equivalent position seen from the other side: flip(flip(p)) == p.
// Castling/en-passant have no Xiangqi analogue to swap.
func (p *Position) Flip(st *StateInfo) {
	var board [NumSquares]Piece
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		pc := p.board[sq]
		if pc == NoPiece {
			continue
		}
		board[sq.Mirror()] = NewPiece(pc.Color().Other(), pc.Type())
	}
	origStm := p.sideToMove.Other()
	origPly := p.gamePly
	origPliesFromNull := p.st.PliesFromNull

	p.Reset()
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		if board[sq] != NoPiece {
			p.putPiece(board[sq], sq)
		}
	}
	p.sideToMove = origStm
	p.gamePly = origPly
	*st = StateInfo{PliesFromNull: origPliesFromNull}
	p.st = st
	p.setState(st)
}
