// Package position implements the mutable board state a search walks:
// per-piece bitboards, make/unmake with an undo stack, incremental Zobrist
// hashing, and the variant.BoardView surface so variant.Hooks can inspect
// the board without this package depending back on the hooks' callers.
package position

import (
	"fmt"
	"strings"

	"github.com/fkopp/vchess/internal/assert"
	"github.com/fkopp/vchess/internal/variant"
	. "github.com/fkopp/vchess/internal/types"
)

// undoFrame captures everything DoMove must restore on UndoMove that isn't
// already recoverable from the move itself.
type undoFrame struct {
	move               Move
	movingPiece        Piece
	capturedPiece      Piece
	capturedSquare     Square
	explodedSquares    []Square
	explodedPieces     []Piece
	rookFrom, rookTo   Square
	castlingBefore     BB256
	epTargetBefore     Square
	epVictimBefore     Square
	halfMoveBefore     int
	checkCountBefore   [2]int
	zobristBefore      uint64
}

// Position is one board state for one loaded variant.Descriptor. A
// Position is not safe for concurrent use; search workers each own one
// (cloned via Clone), sharing only the read-only Descriptor and the
// transposition table.
type Position struct {
	desc *variant.Descriptor

	board []Piece // flat, indexed by Square
	bb    [2][MaxPieceTypes]BB256
	occ   [2]BB256
	all   BB256

	sideToMove Color

	castlingRights BB256 // squares of pieces still eligible to castle

	epTarget Square // square a pawn just skipped over, SquareNone if none
	epVictim Square // the pawn that can be captured en passant

	checkCount [2]int // N-check: number of times each color has been checked

	halfMoveClock  int
	fullMoveNumber int

	zobrist      uint64
	zk           *zobristKeys
	history      []undoFrame
	repetitions  []uint64 // zobrist keys since the last irreversible move
}

// New builds an empty, un-prepared Position for desc. Callers normally use
// NewFromStart or LoadFEN instead.
func New(desc *variant.Descriptor) *Position {
	p := &Position{
		desc:     desc,
		board:    make([]Piece, desc.Squares()),
		epTarget: SquareNone,
		epVictim: SquareNone,
		zk:       zobristFor(desc),
	}
	for i := range p.board {
		p.board[i] = PieceNone
	}
	return p
}

// NewFromStart builds the Descriptor's starting position.
func NewFromStart(desc *variant.Descriptor) *Position {
	p := New(desc)
	for _, pp := range desc.StartPlacement {
		p.setPiece(pp.Square, pp.Piece)
	}
	p.sideToMove = desc.StartSideToMove
	p.castlingRights = desc.StartCastlingRights
	p.fullMoveNumber = 1
	p.zobrist = p.computeZobristFromScratch()
	return p
}

// Clone returns a deep, independent copy (used to hand each Lazy SMP
// worker its own mutable board sharing the same immutable Descriptor).
func (p *Position) Clone() *Position {
	c := *p
	c.board = append([]Piece(nil), p.board...)
	c.history = append([]undoFrame(nil), p.history...)
	c.repetitions = append([]uint64(nil), p.repetitions...)
	return &c
}

// Descriptor returns the variant this position was built for.
func (p *Position) Descriptor() *variant.Descriptor { return p.desc }

// --- variant.BoardView ---

func (p *Position) Width() int  { return p.desc.Width }
func (p *Position) Height() int { return p.desc.Height }

func (p *Position) PieceAt(sq Square) Piece {
	if sq == SquareNone || int(sq) >= len(p.board) {
		return PieceNone
	}
	return p.board[sq]
}

// BitboardOf returns the bitboard of color c's pieces of type pt.
func (p *Position) BitboardOf(c Color, pt PieceType) BB256 { return p.bb[c][pt] }

func (p *Position) Occupancy(c Color) BB256 { return p.occ[c] }
func (p *Position) AllOccupancy() BB256     { return p.all }
func (p *Position) SideToMove() Color       { return p.sideToMove }

// KingSquare returns the square of color c's leader piece (the generalized
// "king", whichever piece type has PieceRule.IsLeader set), or SquareNone
// if this variant has no leader (antichess) or it has already been
// captured (atomic).
func (p *Position) KingSquare(c Color) Square {
	for pt, pr := range p.desc.Pieces {
		if pr.IsLeader {
			return p.bb[c][pt].Lsb()
		}
	}
	return SquareNone
}

func (p *Position) CheckCount(c Color) int { return p.checkCount[c] }

// IsAttacked reports whether any piece of color by attacks sq, computed by
// walking each attacking piece's own squares rather than assuming
// attack-pattern symmetry; required since pawns (and other fairy leapers)
// are forward-only and their "does X attack Y" is not reversible by
// swapping X and Y.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	tbl := p.desc.TablesFor(by)
	for pt := range p.desc.Pieces {
		bb := p.bb[by][pt]
		for !bb.IsEmpty() {
			origin := bb.PopLsb()
			if tbl.JumpAttacksFor(pt, origin).Test(sq) {
				return true
			}
			if len(tbl.SlideDirections(pt)) > 0 && tbl.AllSlidingAttacks(pt, origin, p.all).Test(sq) {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether color c's leader is currently attacked.
func (p *Position) InCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == SquareNone {
		return false
	}
	return p.IsAttacked(ksq, c.Opponent())
}

// EnPassant returns the skip-over target square and the square of the
// pawn that can be captured there, both SquareNone if none is available.
func (p *Position) EnPassant() (target, victim Square) { return p.epTarget, p.epVictim }

func (p *Position) CastlingRights() BB256 { return p.castlingRights }
func (p *Position) HalfMoveClock() int    { return p.halfMoveClock }
func (p *Position) FullMoveNumber() int   { return p.fullMoveNumber }
func (p *Position) ZobristKey() uint64    { return p.zobrist }

// CanUndo reports whether at least one DoMove is on the undo stack.
func (p *Position) CanUndo() bool { return len(p.history) > 0 }

// LastExplodedSquares returns the squares atomic's OnCapture hook cleared on
// the most recent DoMove, or nil if that move wasn't a capture or this
// variant has no such hook. Valid until the next DoMove/UndoMove call.
func (p *Position) LastExplodedSquares() []Square {
	if len(p.history) == 0 {
		return nil
	}
	return p.history[len(p.history)-1].explodedSquares
}

// IsRepetition reports whether the current zobrist key has occurred at
// least n times (including the current occurrence) since the last
// irreversible move.
func (p *Position) IsRepetition(n int) bool {
	count := 0
	for _, k := range p.repetitions {
		if k == p.zobrist {
			count++
		}
	}
	return count >= n
}

func (p *Position) setPiece(sq Square, pc Piece) {
	assert.Assert(!pc.IsNone(), "setPiece: empty piece")
	p.board[sq] = pc
	p.bb[pc.Color][pc.Type].Set(sq)
	p.occ[pc.Color].Set(sq)
	p.all.Set(sq)
}

func (p *Position) clearPiece(sq Square) Piece {
	pc := p.board[sq]
	if pc.IsNone() {
		return pc
	}
	p.board[sq] = PieceNone
	p.bb[pc.Color][pc.Type].Clear(sq)
	p.occ[pc.Color].Clear(sq)
	p.all.Clear(sq)
	return pc
}

func (p *Position) computeZobristFromScratch() uint64 {
	var h uint64
	for sq := 0; sq < len(p.board); sq++ {
		pc := p.board[sq]
		if pc.IsNone() {
			continue
		}
		h ^= p.pieceKey(pc, Square(sq))
	}
	if p.sideToMove == Black {
		h ^= p.zk.sideToMove
	}
	var cr BB256 = p.castlingRights
	for !cr.IsEmpty() {
		sq := cr.PopLsb()
		h ^= p.zk.castling[sq]
	}
	if p.epTarget != SquareNone {
		h ^= p.zk.epFile[p.epTarget.FileOf(p.desc.Width)]
	}
	return h
}

func (p *Position) pieceKey(pc Piece, sq Square) uint64 {
	idx := int(pc.Type)*p.zk.squares + int(sq)
	return p.zk.pieceSquare[pc.Color][idx]
}

// String renders the board as a FEN piece placement field; ToFEN (see
// fen.go) uses it as its first field.
func (p *Position) String() string {
	var b strings.Builder
	w, h := p.desc.Width, p.desc.Height
	for r := h - 1; r >= 0; r-- {
		empty := 0
		for f := 0; f < w; f++ {
			pc := p.board[SquareOf(f, r, w)]
			if pc.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&b, "%d", empty)
				empty = 0
			}
			b.WriteRune(pieceChar(p.desc, pc))
		}
		if empty > 0 {
			fmt.Fprintf(&b, "%d", empty)
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func pieceChar(d *variant.Descriptor, pc Piece) rune {
	pr, ok := d.Pieces[pc.Type]
	if !ok {
		return '?'
	}
	return pr.Char[pc.Color]
}
