package board

import "fmt"

// Move packs an origin and destination square. Xiangqi has no castling, en
// passant or promotion, so the encoding needs only the two squares.
type Move uint16

const NoMove Move = 0

const squareBits = 7 // enough for 0-89

// NewMove builds a move from an origin and destination square.
func NewMove(from, to Square) Move {
	return Move(uint16(from)) | Move(uint16(to))<<squareBits
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square(m & (1<<squareBits - 1))
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square((m >> squareBits) & (1<<squareBits - 1))
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return fmt.Sprintf("%s%s", m.From(), m.To())
}

// ParseMove parses coordinate notation such as "e3e4" into a Move.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	split := -1
	for i := 1; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'i' {
			split = i
			break
		}
	}
	if split < 0 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[:split])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[split:])
	if err != nil {
		return NoMove, err
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity, allocation-light move buffer.
type MoveList struct {
	moves [128]Move
	n     int
}

func (ml *MoveList) Add(m Move)     { ml.moves[ml.n] = m; ml.n++ }
func (ml *MoveList) Len() int       { return ml.n }
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }
func (ml *MoveList) Clear()         { ml.n = 0 }

func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.n]
}
