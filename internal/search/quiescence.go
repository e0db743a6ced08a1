package search

import (
	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/movegen"
	"github.com/fkopp/vchess/internal/position"
	. "github.com/fkopp/vchess/internal/types"
)

// quiescence extends the search through captures (and, while in check,
// every legal reply) until the position is quiet, avoiding the horizon
// effect of evaluating mid-exchange. Variant terminal conditions that
// don't depend on the side to move having zero replies (King of the Hill,
// N-check, atomic) are only re-checked here while in check; the captures-
// only move list the rest of the time isn't a reliable witness of
// stalemate, so a non-check terminal state reached for the first time on
// the very ply search drops into quiescence can be missed by one ply. The
// parent node that led here already passed its own full-move-list
// Terminal check, so this only matters for a win condition achieved by
// the move that entered quiescence itself.
func (w *worker) quiescence(pos *position.Position, ply int, alpha, beta Value) Value {
	w.stats.incNodes()
	w.stats.incLeafNodes()
	if w.stopped() {
		return ValueDraw
	}
	if ply >= MaxPly-1 {
		return w.eval.Evaluate(pos)
	}

	us := pos.SideToMove()
	inCheck := pos.InCheck(us)

	mode := movegen.GenCaptures
	if inCheck {
		mode = movegen.GenAll
	}
	moves := w.gens[ply].GenerateLegal(pos, mode)

	if outcome, terminal := pos.Descriptor().Terminal(pos, []Move(*moves)); terminal && inCheck {
		return outcomeToScore(outcome, us, ply)
	}

	var standPat Value
	if !inCheck {
		standPat = w.eval.Evaluate(pos)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	w.orderMoves(pos, moves, ply, us, MoveNone)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !inCheck && config.Settings.Search.UseQSStandpat {
			capVal := pieceValue(pos.Descriptor(), pos.PieceAt(m.To()))
			if standPat+capVal+Value(config.Settings.Search.QSDeltaMargin) < alpha {
				continue
			}
		}
		pos.DoMove(m)
		score := -w.quiescence(pos, ply+1, -beta, -alpha)
		pos.UndoMove()
		if w.stopped() {
			return ValueDraw
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
