package board

import (
	"fmt"
	"math/bits"
)

// Bitboard90 represents a subset of the 90 Xiangqi squares as two 64-bit
// lanes: Lo covers squares 0-63, Hi covers squares 64-89 (bits 26-63 of Hi
// are always zero), since a single machine word cannot address all 90
// squares of this board.
type Bitboard90 struct {
	Lo uint64
	Hi uint64
}

// hiBits is the number of valid bits in the Hi lane (90-64).
const hiBits = NumSquares - 64
const hiMask = (uint64(1) << hiBits) - 1

// Empty and Universe are the zero and full 90-square bitboards.
var (
	Empty    = Bitboard90{}
	Universe = Bitboard90{Lo: ^uint64(0), Hi: hiMask}
)

// SquareBB returns the singleton bitboard for sq.
func SquareBB(sq Square) Bitboard90 {
	i := int(sq)
	if i < 64 {
		return Bitboard90{Lo: uint64(1) << uint(i)}
	}
	return Bitboard90{Hi: uint64(1) << uint(i-64)}
}

func (b Bitboard90) normalize() Bitboard90 {
	b.Hi &= hiMask
	return b
}

// Or, And, Xor, AndNot are the set operations used throughout the engine.
func (b Bitboard90) Or(o Bitboard90) Bitboard90  { return Bitboard90{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bitboard90) And(o Bitboard90) Bitboard90 { return Bitboard90{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bitboard90) Xor(o Bitboard90) Bitboard90 { return Bitboard90{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }
func (b Bitboard90) AndNot(o Bitboard90) Bitboard90 {
	return Bitboard90{b.Lo &^ o.Lo, b.Hi &^ o.Hi}
}
func (b Bitboard90) Not() Bitboard90 {
	return Bitboard90{^b.Lo, ^b.Hi}.normalize()
}

// IsEmpty/IsNotEmpty report whether the set is empty.
func (b Bitboard90) IsEmpty() bool    { return b.Lo == 0 && b.Hi == 0 }
func (b Bitboard90) IsNotEmpty() bool { return !b.IsEmpty() }

// Test reports whether sq is a member of b.
func (b Bitboard90) Test(sq Square) bool {
	return b.And(SquareBB(sq)).IsNotEmpty()
}

// Set returns b with sq added.
func (b Bitboard90) Set(sq Square) Bitboard90 {
	return b.Or(SquareBB(sq))
}

// Clear returns b with sq removed.
func (b Bitboard90) Clear(sq Square) Bitboard90 {
	return b.AndNot(SquareBB(sq))
}

// PopCount returns the number of squares in b.
func (b Bitboard90) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// Several returns true if b has more than one bit set.
func (b Bitboard90) Several() bool {
	return b.withoutLSB().IsNotEmpty()
}

func (b Bitboard90) withoutLSB() Bitboard90 {
	if b.Lo != 0 {
		return Bitboard90{Lo: b.Lo & (b.Lo - 1), Hi: b.Hi}
	}
	return Bitboard90{Lo: 0, Hi: b.Hi & (b.Hi - 1)}
}

// LSB returns the least-significant occupied square, or NoSquare if empty.
func (b Bitboard90) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// PopLSB returns the least-significant square and removes it from b.
func (b *Bitboard90) PopLSB() Square {
	sq := b.LSB()
	if sq != NoSquare {
		*b = b.withoutLSB()
	}
	return sq
}

// shiftLeft shifts the whole 90-bit value left by n (0 <= n < 64) bits,
// carrying across the Lo/Hi lane boundary, then clears bits beyond square 89.
func (b Bitboard90) shiftLeft(n uint) Bitboard90 {
	hi := (b.Hi << n) | (b.Lo >> (64 - n))
	lo := b.Lo << n
	return Bitboard90{Lo: lo, Hi: hi}.normalize()
}

// shiftRight shifts the whole 90-bit value right by n (0 <= n < 64) bits.
func (b Bitboard90) shiftRight(n uint) Bitboard90 {
	lo := (b.Lo >> n) | (b.Hi << (64 - n))
	hi := b.Hi >> n
	return Bitboard90{Lo: lo, Hi: hi}
}

// North moves every square one rank towards the black side (increasing rank).
func (b Bitboard90) North() Bitboard90 { return b.shiftLeft(NumFiles) }

// South moves every square one rank towards the red side (decreasing rank).
func (b Bitboard90) South() Bitboard90 { return b.shiftRight(NumFiles) }

// East moves every square one file up (towards I), squares on file I vanish.
func (b Bitboard90) East() Bitboard90 {
	return b.AndNot(FileMask[NumFiles-1]).shiftLeft(1)
}

// West moves every square one file down (towards A), squares on file A vanish.
func (b Bitboard90) West() Bitboard90 {
	return b.AndNot(FileMask[0]).shiftRight(1)
}

// Squares returns the member squares in increasing order. Intended for
// tests and debug printing, not the hot path.
func (b Bitboard90) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for t := b; t.IsNotEmpty(); {
		out = append(out, t.PopLSB())
	}
	return out
}

func (b Bitboard90) String() string {
	s := ""
	for r := NumRanks - 1; r >= 0; r-- {
		for f := 0; f < NumFiles; f++ {
			if b.Test(NewSquare(f, r)) {
				s += "1"
			} else {
				s += "."
			}
		}
		s += "\n"
	}
	return s
}

// GoString supports %#v / fmt debugging with the hex lanes.
func (b Bitboard90) GoString() string {
	return fmt.Sprintf("Bitboard90{Lo:%#016x,Hi:%#08x}", b.Lo, b.Hi)
}
