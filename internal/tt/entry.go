package tt

import (
	. "github.com/fkopp/vchess/internal/types"
)

// ValueType marks what a stored search value actually bounds: an exact
// score, or a fail-high/fail-low bound from alpha-beta pruning.
type ValueType uint8

const (
	NoValueType ValueType = iota
	Exact
	Alpha // upper bound: the true value is <= stored value
	Beta  // lower bound: the true value is >= stored value
)

// The 64-bit data word packs everything but the key: the move (32 bits,
// MoveOf() — the ordering bits SetValue adds are never stored), a 16-bit
// signed search value (bias-encoded the same way types.Move.SetValue is),
// 8 bits of depth, 2 bits of ValueType, and 6 bits of age — all 64 bits
// used, chosen to fit in one machine word for the lockless XOR-trick
// entry (see table.go).
const (
	moveShift  = 0
	valueShift = 32
	depthShift = 48
	vtypeShift = 56
	ageShift   = 58

	moveBits32 = 0xFFFFFFFF
	valueBits  = 0xFFFF
	depthBits  = 0xFF
	vtypeBits  = 0x3
	ageBits    = 0x3F

	valueBias = 1 << 15
)

func packData(move Move, value Value, depth int, vt ValueType, age uint8) uint64 {
	mv := uint64(move.MoveOf()) & moveBits32
	v := uint64(uint16(int32(value)+valueBias)) & valueBits
	d := uint64(depth) & depthBits
	t := uint64(vt) & vtypeBits
	a := uint64(age) & ageBits
	return mv<<moveShift | v<<valueShift | d<<depthShift | t<<vtypeShift | a<<ageShift
}

func unpackMove(data uint64) Move {
	return Move((data >> moveShift) & moveBits32)
}

func unpackValue(data uint64) Value {
	return Value(int32((data>>valueShift)&valueBits) - valueBias)
}

func unpackDepth(data uint64) int {
	return int((data >> depthShift) & depthBits)
}

func unpackVType(data uint64) ValueType {
	return ValueType((data >> vtypeShift) & vtypeBits)
}

func unpackAge(data uint64) uint8 {
	return uint8((data >> ageShift) & ageBits)
}

func withAge(data uint64, age uint8) uint64 {
	return (data &^ (uint64(ageBits) << ageShift)) | (uint64(age)&ageBits)<<ageShift
}

// Entry is the decoded, convenient view of one probe result.
type Entry struct {
	Move  Move
	Value Value
	Depth int
	Type  ValueType
	Age   uint8
}
