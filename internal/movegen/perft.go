package movegen

import (
	"time"

	"github.com/fkopp/vchess/internal/position"
	. "github.com/fkopp/vchess/internal/types"
)

// Perft counts leaf nodes reachable from a position at a fixed depth,
// the standard move-generator correctness oracle: a generator with a bug
// anywhere in legality, captures, en passant, castling or promotion
// reliably produces a wrong count at some depth, usually well before the
// depths that take noticeable time to run.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	Elapsed          time.Duration
}

// NewPerft creates an empty Perft counter.
func NewPerft() *Perft { return &Perft{} }

// Run counts nodes to depth from pos, using one Generator per remaining
// ply so a deeper recursive call never overwrites a shallower call's
// still-in-use move buffer.
func (perft *Perft) Run(pos *position.Position, depth int) uint64 {
	*perft = Perft{}
	if depth <= 0 {
		return 0
	}
	gens := make([]*Generator, depth+1)
	for i := range gens {
		gens[i] = New()
	}

	start := time.Now()
	perft.Nodes = perft.walk(pos, gens, depth)
	perft.Elapsed = time.Since(start)
	return perft.Nodes
}

func (perft *Perft) walk(pos *position.Position, gens []*Generator, depth int) uint64 {
	moves := gens[depth].GenerateLegal(pos, GenAll)

	if depth > 1 {
		var total uint64
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			pos.DoMove(m)
			total += perft.walk(pos, gens, depth-1)
			pos.UndoMove()
		}
		return total
	}

	var total uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		capture := isCaptureMove(pos, m)
		enpassant := m.MoveType() == EnPassant
		castling := m.MoveType() == Castling
		promotion := m.MoveType() == Promotion

		pos.DoMove(m)
		total++
		if enpassant {
			perft.EnpassantCounter++
			perft.CaptureCounter++
		} else if capture {
			perft.CaptureCounter++
		}
		if castling {
			perft.CastleCounter++
		}
		if promotion {
			perft.PromotionCounter++
		}
		if pos.InCheck(pos.SideToMove()) {
			perft.CheckCounter++
			if gens[0].GenerateLegal(pos, GenAll).Len() == 0 {
				perft.CheckMateCounter++
			}
		}
		pos.UndoMove()
	}
	return total
}

// isCaptureMove reports whether m captures a piece, read before the move is
// made (mirrors internal/search's isCapture, duplicated here so this
// package doesn't need to import search for one predicate).
func isCaptureMove(pos *position.Position, m Move) bool {
	if m.MoveType() == EnPassant {
		return true
	}
	return !pos.PieceAt(m.To()).IsNone()
}
