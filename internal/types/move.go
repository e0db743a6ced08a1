package types

// MoveType distinguishes the handful of special encodings a Move can carry.
// Every other detail (which piece actually moved, what was captured) is
// read back from the Position at make-time, not packed into the Move.
type MoveType uint8

const (
	Normal MoveType = iota
	Promotion
	EnPassant
	Castling
	NullMove
)

// Move is a 64-bit encoded move: the low 32 bits are the move itself, the
// high 32 bits carry a signed move-ordering value. This is the same
// "ordering value packed above the move bits" trick the teacher's
// pkg/types.Move uses, widened from 32 to 64 bits because a 16x16 board
// needs 8 bits per square instead of 6.
//
//	BITMAP 64-bit
//	|-------- value (32 bits, signed) --------|---- unused (4) ----|type(4)|promo(8)|from(8)|to(8)|
type Move uint64

// MoveNone is the empty, invalid move.
const MoveNone Move = 0

const (
	toShift       = 0
	fromShift     = 8
	promoShift    = 16
	typeShift     = 24
	valueShift    = 32
	squareMask    = 0xFF
	typeMask      = 0xF
	valueBias     = 1 << 31
)

// CreateMove encodes a move with no ordering value.
func CreateMove(from, to Square, t MoveType, promo PieceType) Move {
	pb := promo
	if pb == PieceTypeNone {
		pb = 0
	}
	return Move(to)&squareMask |
		(Move(from)&squareMask)<<fromShift |
		(Move(pb)&squareMask)<<promoShift |
		(Move(t)&typeMask)<<typeShift
}

// From returns the origin square.
func (m Move) From() Square { return Square((m >> fromShift) & squareMask) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> toShift) & squareMask) }

// PromotionType returns the promotion target piece type. Only meaningful
// when MoveType() == Promotion.
func (m Move) PromotionType() PieceType { return PieceType((m >> promoShift) & squareMask) }

// MoveType returns the move's special-case type.
func (m Move) MoveType() MoveType { return MoveType((m >> typeShift) & typeMask) }

// MoveOf strips the ordering value, returning only the move bits — used as
// the equality/lookup key (e.g. "is this the TT move").
func (m Move) MoveOf() Move { return m & 0xFFFFFFFF }

// SetValue returns m with the given ordering value packed into the high
// bits, used by the generator/search to sort a MoveSlice in place without a
// side table.
func (m Move) SetValue(v Value) Move {
	return m.MoveOf() | (Move(uint32(v)+valueBias) << valueShift)
}

// ValueOf extracts the ordering value packed by SetValue.
func (m Move) ValueOf() Value {
	return Value(int32(uint32(m>>valueShift) - valueBias))
}

// IsValid reports whether m is a non-empty move.
func (m Move) IsValid() bool { return m.MoveOf() != MoveNone }

// String renders m in long algebraic form given the board width (e.g.
// "e2e4", "e7e8q").
func (m Move) String(width int) string {
	if !m.IsValid() {
		return "0000"
	}
	s := m.From().StringFor(width) + m.To().StringFor(width)
	if m.MoveType() == Promotion {
		s += promotionLetter(m.PromotionType())
	}
	return s
}

func promotionLetter(pt PieceType) string {
	switch pt {
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	default:
		return ""
	}
}
