// Package variant expresses chess-like game rules as data rather than code:
// a Descriptor bundles a board geometry, a dictionary of PieceRule values,
// and a small Hooks table, so the same movegen/position/search/eval code
// plays standard chess, Chess960, Atomic, Antichess, Horde, Racing Kings,
// King-of-the-Hill, N-check and any composable combination of these without
// a single variant-tagged branch outside this package.
package variant

import (
	"github.com/fkopp/vchess/internal/attacks"
	. "github.com/fkopp/vchess/internal/types"
)

// MoveFlag marks whether a jump/slide pattern applies to quiet moves,
// captures, or both — e.g. a pawn's forward step is MoveOnly, its diagonal
// is CaptureOnly, a rook's rank/file slide is MoveAndCapture.
type MoveFlag uint8

const (
	MoveOnly MoveFlag = 1 << iota
	CaptureOnly
	MoveAndCapture = MoveOnly | CaptureOnly
)

// JumpPattern is a single-step leaper offset tagged with where it applies.
type JumpPattern struct {
	Offset attacks.Offset
	Flags  MoveFlag
}

// SlidePattern is a sliding direction tagged with where it applies. The
// maximum distance (0 = unlimited, to the board edge) is shared by every
// direction of a single piece (PieceRule.MaxSlideDistance) — spec.md §3
// describes "max distance" as a property of the piece, not of one ray.
type SlidePattern struct {
	Dir   Direction
	Flags MoveFlag
}

// PieceRule fully describes how one piece type behaves, per spec.md §3's
// PieceType attribute list.
type PieceRule struct {
	// Char is the display character per color (e.g. 'P'/'p').
	Char map[Color]rune

	Jumps  []JumpPattern
	Slides []SlidePattern
	// MaxSlideDistance caps every entry in Slides; 0 means unlimited.
	MaxSlideDistance int

	// PromotionTargets lists the piece types reachable on promotion,
	// in priority order (queen first, etc). Empty means this piece never
	// promotes.
	PromotionTargets []PieceType
	// MandatoryPromotionSquares/OptionalPromotionSquares are per-color
	// masks of squares on which reaching them forces/allows promotion.
	MandatoryPromotionSquares map[Color]BB256
	OptionalPromotionSquares  map[Color]BB256

	// DoubleJumpOrigin is the per-color mask of squares from which this
	// piece may take a double step (e.g. a pawn's second rank).
	DoubleJumpOrigin map[Color]BB256
	// DoubleJumpDelta is the (Δfile,Δrank) of that double step, oriented
	// for White; Black mirrors it vertically via the descriptor's Forward.
	DoubleJumpDelta attacks.Offset

	IsKing           bool
	IsCastlingRook   bool
	CastlingInitial  map[Color]Square

	// IsLeader marks a royalty piece whose capture loses the game outright
	// (the generalized "king" for check/mate legality).
	IsLeader bool
	// IsAntiKing inverts leader semantics for antichess-family variants:
	// capturing it is irrelevant to legality (there is no check), but
	// having zero pieces (or no legal move) wins.
	IsAntiKing bool
	// WinOnSquare is a mask of squares which, if this piece type ever
	// occupies one of them, immediately wins the game (king-of-the-hill).
	WinOnSquare BB256

	// MaterialValue and PST are computed once by Descriptor.Prepare and
	// must not be set by preset authors.
	MaterialValue Value
	PST           []Value // indexed by square, White's perspective
}

// geometry returns the attack-table geometry for this piece as written
// (White's orientation for asymmetric, forward-only pieces). Only patterns
// tagged CaptureOnly/MoveAndCapture contribute: attacks.Tables answers "what
// squares does this piece attack", and a pawn's quiet forward step is not an
// attack — including it would make check detection treat the empty square
// ahead of a pawn as attacked. Quiet-only jumps (the forward step) are read
// directly off PieceRule.Jumps by movegen instead.
func (pr *PieceRule) geometry() attacks.PieceGeometry {
	var pg attacks.PieceGeometry
	for _, j := range pr.Jumps {
		if j.Flags&CaptureOnly != 0 {
			pg.Jumps = append(pg.Jumps, j.Offset)
		}
	}
	seen := map[Direction]bool{}
	for _, s := range pr.Slides {
		if s.Flags&CaptureOnly == 0 {
			continue
		}
		if !seen[s.Dir] {
			pg.SlideDirs = append(pg.SlideDirs, s.Dir)
			seen[s.Dir] = true
		}
	}
	pg.MaxSlide = pr.MaxSlideDistance
	return pg
}

// mirroredGeometry returns the same patterns reflected across the rank
// axis, used to derive Black's attack tables for forward-only pieces. For
// every piece whose pattern set is already symmetric (knights, bishops,
// rooks, queens, kings) this returns an identical geometry.
func (pr *PieceRule) mirroredGeometry() attacks.PieceGeometry {
	var pg attacks.PieceGeometry
	for _, j := range pr.Jumps {
		if j.Flags&CaptureOnly != 0 {
			pg.Jumps = append(pg.Jumps, attacks.Offset{DFile: j.Offset.DFile, DRank: -j.Offset.DRank})
		}
	}
	seen := map[Direction]bool{}
	for _, s := range pr.Slides {
		if s.Flags&CaptureOnly == 0 {
			continue
		}
		d := s.Dir.MirrorVertical()
		if !seen[d] {
			pg.SlideDirs = append(pg.SlideDirs, d)
			seen[d] = true
		}
	}
	pg.MaxSlide = pr.MaxSlideDistance
	return pg
}
