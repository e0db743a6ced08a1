package types

import "math/bits"

// BB256 is a 256-bit bitset indexed by Square (0..255), stored as four
// 64-bit limbs. Limb 0 holds squares 0-63, limb 1 holds 64-127, and so on —
// the layout the design notes call for ("four 64-bit limbs with explicit
// carry").
type BB256 struct {
	w [4]uint64
}

// BBEmpty is the zero bitboard.
var BBEmpty = BB256{}

// BBSquare returns a bitboard with only sq set.
func BBSquare(sq Square) BB256 {
	var b BB256
	b.Set(sq)
	return b
}

// Set sets the bit for sq.
func (b *BB256) Set(sq Square) {
	if sq < 0 {
		return
	}
	b.w[sq>>6] |= 1 << uint(sq&63)
}

// Clear clears the bit for sq.
func (b *BB256) Clear(sq Square) {
	if sq < 0 {
		return
	}
	b.w[sq>>6] &^= 1 << uint(sq&63)
}

// Test reports whether sq is set.
func (b BB256) Test(sq Square) bool {
	if sq < 0 {
		return false
	}
	return b.w[sq>>6]&(1<<uint(sq&63)) != 0
}

// And returns b & other.
func (b BB256) And(other BB256) BB256 {
	return BB256{[4]uint64{b.w[0] & other.w[0], b.w[1] & other.w[1], b.w[2] & other.w[2], b.w[3] & other.w[3]}}
}

// Or returns b | other.
func (b BB256) Or(other BB256) BB256 {
	return BB256{[4]uint64{b.w[0] | other.w[0], b.w[1] | other.w[1], b.w[2] | other.w[2], b.w[3] | other.w[3]}}
}

// Xor returns b ^ other.
func (b BB256) Xor(other BB256) BB256 {
	return BB256{[4]uint64{b.w[0] ^ other.w[0], b.w[1] ^ other.w[1], b.w[2] ^ other.w[2], b.w[3] ^ other.w[3]}}
}

// Not returns the bitwise complement of b (all 256 bits).
func (b BB256) Not() BB256 {
	return BB256{[4]uint64{^b.w[0], ^b.w[1], ^b.w[2], ^b.w[3]}}
}

// AndNot returns b &^ other.
func (b BB256) AndNot(other BB256) BB256 {
	return BB256{[4]uint64{b.w[0] &^ other.w[0], b.w[1] &^ other.w[1], b.w[2] &^ other.w[2], b.w[3] &^ other.w[3]}}
}

// IsEmpty reports whether no bits are set.
func (b BB256) IsEmpty() bool {
	return b.w[0] == 0 && b.w[1] == 0 && b.w[2] == 0 && b.w[3] == 0
}

// PopCount returns the number of set bits.
func (b BB256) PopCount() int {
	return bits.OnesCount64(b.w[0]) + bits.OnesCount64(b.w[1]) + bits.OnesCount64(b.w[2]) + bits.OnesCount64(b.w[3])
}

// Lsb returns the least-significant set square, or SquareNone if empty.
func (b BB256) Lsb() Square {
	for i := 0; i < 4; i++ {
		if b.w[i] != 0 {
			return Square(i*64 + bits.TrailingZeros64(b.w[i]))
		}
	}
	return SquareNone
}

// Msb returns the most-significant set square, or SquareNone if empty.
func (b BB256) Msb() Square {
	for i := 3; i >= 0; i-- {
		if b.w[i] != 0 {
			return Square(i*64 + 63 - bits.LeadingZeros64(b.w[i]))
		}
	}
	return SquareNone
}

// PopLsb clears and returns the least-significant set square. Drives every
// move-enumeration loop in the generator — callers loop `for !bb.IsEmpty()
// { sq := bb.PopLsb(); ... }`.
func (b *BB256) PopLsb() Square {
	sq := b.Lsb()
	if sq != SquareNone {
		b.Clear(sq)
	}
	return sq
}

// PopMsb clears and returns the most-significant set square (the
// kindergarten sliding-attack lookup uses the non-clearing Msb instead).
func (b *BB256) PopMsb() Square {
	sq := b.Msb()
	if sq != SquareNone {
		b.Clear(sq)
	}
	return sq
}

// ShiftRaw shifts every bit of b by one square in direction d on a board of
// the given width, with NO edge masking — a caller must AND the result with
// a file/board-edge mask to suppress wraparound, since the correct mask
// depends on the variant's board width. internal/attacks does not use it;
// it builds its tables by walking file/rank offsets instead.
func (b BB256) ShiftRaw(d Direction, width int) BB256 {
	switch d {
	case North:
		return b.shiftLeft(width)
	case South:
		return b.shiftRight(width)
	case East:
		return b.shiftLeft(1)
	case West:
		return b.shiftRight(1)
	case Northeast:
		return b.shiftLeft(width + 1)
	case Northwest:
		return b.shiftLeft(width - 1)
	case Southeast:
		return b.shiftRight(width - 1)
	case Southwest:
		return b.shiftRight(width + 1)
	}
	return b
}

// shiftLeft shifts all 256 bits left by n (n in [0,255]), propagating carry
// between limbs explicitly.
func (b BB256) shiftLeft(n int) BB256 {
	if n <= 0 {
		return b
	}
	if n >= 256 {
		return BB256{}
	}
	limbShift := n / 64
	bitShift := uint(n % 64)
	var r BB256
	for i := 3; i >= 0; i-- {
		src := i - limbShift
		if src < 0 {
			continue
		}
		var v uint64
		if bitShift == 0 {
			v = b.w[src]
		} else {
			v = b.w[src] << bitShift
			if src-1 >= 0 {
				v |= b.w[src-1] >> (64 - bitShift)
			}
		}
		r.w[i] = v
	}
	return r
}

// shiftRight shifts all 256 bits right by n, propagating carry between
// limbs explicitly.
func (b BB256) shiftRight(n int) BB256 {
	if n <= 0 {
		return b
	}
	if n >= 256 {
		return BB256{}
	}
	limbShift := n / 64
	bitShift := uint(n % 64)
	var r BB256
	for i := 0; i < 4; i++ {
		src := i + limbShift
		if src > 3 {
			continue
		}
		var v uint64
		if bitShift == 0 {
			v = b.w[src]
		} else {
			v = b.w[src] >> bitShift
			if src+1 <= 3 {
				v |= b.w[src+1] << (64 - bitShift)
			}
		}
		r.w[i] = v
	}
	return r
}
