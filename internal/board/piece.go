package board

// Color identifies the side owning a piece or to move.
type Color int8

const (
	Red   Color = 0
	Black Color = 1

	NoColor Color = -1
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case Red:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// PieceType enumerates the seven Xiangqi piece kinds. The numeric values
// double as the index into the " RACPNBK" half of the piece-letter
// alphabet, so they must not be reordered.
type PieceType int8

const (
	NoPieceType PieceType = 0
	Rook        PieceType = 1 // Chariot
	Advisor     PieceType = 2
	Cannon      PieceType = 3
	Pawn        PieceType = 4 // Soldier
	Knight      PieceType = 5 // Horse
	Bishop      PieceType = 6 // Elephant
	King        PieceType = 7

	NumPieceTypes = 8
)

var pieceTypeNames = [NumPieceTypes]string{"-", "R", "A", "C", "P", "N", "B", "K"}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= NumPieceTypes {
		return "-"
	}
	return pieceTypeNames[pt]
}

// CanCheck reports whether pt is capable of delivering check under Xiangqi
// rules. Advisors, bishops and kings cannot check the enemy king directly;
// the flying-general rule handles the king-vs-king case separately.
func (pt PieceType) CanCheck() bool {
	switch pt {
	case Pawn, Knight, Rook, Cannon:
		return true
	default:
		return false
	}
}

// pieceLetters is the FEN piece alphabet: index encodes color (high bit:
// 0=red, 1=black) and type (low bits), with index 0 and 8 reserved for
// "no piece".
const pieceLetters = " RACPNBK racpnbk"

// Piece packs a PieceType and Color into a single byte: bit 3 carries the
// color, bits 0-2 carry the type. NoPiece is the zero value.
type Piece uint8

const NoPiece Piece = 0

// NewPiece builds a Piece from a type and color. Returns NoPiece for
// NoPieceType or NoColor input.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType || c == NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the piece's kind, or NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

// Color returns the piece's owner. Undefined for NoPiece.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return Red
}

// Letter returns the FEN character for the piece (a space for NoPiece, which
// FEN never emits; callers should special-case NoPiece).
func (p Piece) Letter() byte {
	idx := int(p.Type())
	if p.Color() == Black {
		idx += 8
	}
	if p == NoPiece {
		idx = 0
	}
	return pieceLetters[idx]
}

// PieceFromLetter converts a FEN piece character into a Piece.
func PieceFromLetter(ch byte) (Piece, bool) {
	for i := 1; i < len(pieceLetters); i++ {
		if i == 8 {
			continue
		}
		if pieceLetters[i] == ch {
			if i < 8 {
				return NewPiece(Red, PieceType(i)), true
			}
			return NewPiece(Black, PieceType(i-8)), true
		}
	}
	return NoPiece, false
}
