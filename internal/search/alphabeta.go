package search

import (
	"sync/atomic"

	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/eval"
	"github.com/fkopp/vchess/internal/history"
	"github.com/fkopp/vchess/internal/movegen"
	"github.com/fkopp/vchess/internal/moveslice"
	"github.com/fkopp/vchess/internal/position"
	"github.com/fkopp/vchess/internal/tt"
	. "github.com/fkopp/vchess/internal/types"
	"github.com/fkopp/vchess/internal/variant"
)

// worker runs one Lazy SMP search thread: one move generator per ply (so a
// deeper recursive call can never clobber the move buffer an ancestor call
// is still iterating over, since movegen.Generator.GenerateLegal refills
// a single reusable buffer in place) and its own history table (a Go map is
// not safe for concurrent writers, so history is thread-local rather than
// shared the way the transposition table is), all feeding into the one
// shared, lockless tt.Table.
type worker struct {
	id    int
	gens  [MaxPly]*movegen.Generator
	hist  *history.Table
	eval  *eval.Evaluator
	tt    *tt.Table
	stats *Statistics
	stop  *int32
}

func newWorker(id int, shared *tt.Table, stop *int32, stats *Statistics) *worker {
	w := &worker{
		id:    id,
		hist:  history.New(),
		eval:  eval.New(),
		tt:    shared,
		stats: stats,
		stop:  stop,
	}
	for i := range w.gens {
		w.gens[i] = movegen.New()
	}
	return w
}

func (w *worker) stopped() bool { return atomic.LoadInt32(w.stop) != 0 }

// outcomeToScore converts a terminal Outcome into a side-to-move-relative
// mate/draw score, the shorter-mate-scores-higher convention every mate
// value in this package follows.
func outcomeToScore(o variant.Outcome, us Color, ply int) Value {
	switch o.Winner {
	case variant.Draw, variant.NoWinner:
		return ValueDraw
	case variant.WhiteWins:
		if us == White {
			return ValueCheckMate - Value(ply)
		}
		return -(ValueCheckMate - Value(ply))
	case variant.BlackWins:
		if us == Black {
			return ValueCheckMate - Value(ply)
		}
		return -(ValueCheckMate - Value(ply))
	}
	return ValueDraw
}

// isCapture reports whether m captures a piece, read off the board before
// the move is made (needed for MVV-LVA ordering and to exempt captures
// from killer/LMR quiet-move treatment).
func isCapture(pos *position.Position, m Move) bool {
	if m.MoveType() == EnPassant {
		return true
	}
	return !pos.PieceAt(m.To()).IsNone()
}

// orderMoves assigns each move a sort value (TT move first, then captures
// by MVV-LVA, then killers, then history score) and sorts the buffer
// in place via Move's packed ordering bits.
func (w *worker) orderMoves(pos *position.Position, moves *moveslice.MoveSlice, ply int, us Color, ttMove Move) {
	d := pos.Descriptor()
	var k1, k2 Move
	if config.Settings.Search.UseKiller {
		k1, k2 = w.gens[ply].Killers(ply)
	}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if ttMove.IsValid() && m.MoveOf() == ttMove.MoveOf() {
			moves.Set(i, m.SetValue(ValueInfinite))
			continue
		}
		if isCapture(pos, m) {
			capVal := pieceValue(d, pos.PieceAt(m.To()))
			movVal := pieceValue(d, pos.PieceAt(m.From()))
			moves.Set(i, m.SetValue(10_000+capVal-movVal/100))
			continue
		}
		switch {
		case k1.IsValid() && m.MoveOf() == k1.MoveOf():
			moves.Set(i, m.SetValue(9000))
		case k2.IsValid() && m.MoveOf() == k2.MoveOf():
			moves.Set(i, m.SetValue(8000))
		default:
			hs := w.hist.Score(us, m)
			if hs > 7000 {
				hs = 7000
			}
			moves.Set(i, m.SetValue(Value(hs)))
		}
	}
	moves.Sort()
}

func pieceValue(d *variant.Descriptor, p Piece) Value {
	if p.IsNone() {
		return 0
	}
	if pr, ok := d.Pieces[p.Type]; ok {
		return pr.MaterialValue
	}
	return 0
}

// negamax is the principal variation search: a fail-soft negamax with a
// null-window re-search for every move after the first, null-move
// pruning, late move reductions and transposition table cutoffs. Every
// score returned is relative to the side to move at this node.
func (w *worker) negamax(pos *position.Position, depth, ply int, alpha, beta Value, lastMove Move) Value {
	w.stats.incNodes()
	if w.stopped() {
		return ValueDraw
	}

	if ply > 0 {
		if pos.HalfMoveClock() >= 100 || pos.IsRepetition(3) {
			return ValueDraw
		}
	}

	ttMove := MoveNone
	if config.Settings.Search.UseTT {
		if entry, ok := w.tt.Probe(pos.ZobristKey()); ok {
			ttMove = entry.Move
			w.stats.incTTHits()
			if entry.Depth >= depth && ply > 0 {
				switch entry.Type {
				case tt.Exact:
					w.stats.incTTCuts()
					return entry.Value
				case tt.Alpha:
					if entry.Value <= alpha {
						w.stats.incTTCuts()
						return alpha
					}
				case tt.Beta:
					if entry.Value >= beta {
						w.stats.incTTCuts()
						return beta
					}
				}
			}
		}
	}

	moves := w.gens[ply].GenerateLegal(pos, movegen.GenAll)
	if outcome, terminal := pos.Descriptor().Terminal(pos, []Move(*moves)); terminal {
		return outcomeToScore(outcome, pos.SideToMove(), ply)
	}

	if depth <= 0 {
		if config.Settings.Search.UseQuiescence {
			return w.quiescence(pos, ply, alpha, beta)
		}
		w.stats.incLeafNodes()
		return w.eval.Evaluate(pos)
	}

	if config.Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply) {
			beta = ValueCheckMate - Value(ply)
		}
		if alpha >= beta {
			return alpha
		}
	}

	us := pos.SideToMove()
	inCheck := pos.InCheck(us)

	if config.Settings.Search.UseRFP && ply > 0 && !inCheck && depth <= config.Settings.Search.RfpDepth && depth < len(reverseFutilityMargin) {
		staticEval := w.eval.Evaluate(pos)
		if staticEval-reverseFutilityMargin[depth] >= beta {
			return staticEval - reverseFutilityMargin[depth]
		}
	}

	if config.Settings.Search.UseNullMove && ply > 0 && !inCheck && depth >= config.Settings.Search.NmpDepth {
		prevEP, prevEPVictim := pos.DoNullMove()
		score := -w.negamax(pos, depth-1-nullMoveReduction(depth), ply+1, -beta, -beta+1, MoveNone)
		pos.UndoNullMove(prevEP, prevEPVictim)
		if w.stopped() {
			return ValueDraw
		}
		if score >= beta {
			w.stats.incNullMoveCuts()
			return beta
		}
	}

	w.orderMoves(pos, moves, ply, us, ttMove)

	origAlpha := alpha
	bestValue := -ValueInfinite
	bestMove := MoveNone

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		capture := isCapture(pos, m)

		if config.Settings.Search.UseFP && !capture && !inCheck && depth <= config.Settings.Search.FpDepth && depth < len(futilityMargin) && i > 0 {
			staticEval := w.eval.Evaluate(pos)
			if staticEval+futilityMargin[depth] <= alpha {
				w.stats.incFutilityPrunes()
				continue
			}
		}

		pos.DoMove(m)
		var score Value
		switch {
		case i == 0:
			score = -w.negamax(pos, depth-1, ply+1, -beta, -alpha, m)
		default:
			reduction := 0
			if config.Settings.Search.UseLmr && !capture && !inCheck &&
				depth >= config.Settings.Search.LmrDepth && i >= config.Settings.Search.LmrMovesSearched {
				reduction = lmrReduction(depth, i)
				w.stats.incLmrReductions()
			}
			score = -w.negamax(pos, depth-1-reduction, ply+1, -alpha-1, -alpha, m)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -w.negamax(pos, depth-1, ply+1, -beta, -alpha, m)
			}
		}
		pos.UndoMove()

		if w.stopped() {
			return ValueDraw
		}

		if score > bestValue {
			bestValue = score
			bestMove = m
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			w.stats.incBetaCuts()
			if !capture {
				w.gens[ply].StoreKiller(ply, m)
				w.hist.Update(us, m, depth)
				w.hist.SetCounterMove(lastMove, m)
			}
			break
		}
	}

	if config.Settings.Search.UseTT {
		var vt tt.ValueType
		switch {
		case bestValue <= origAlpha:
			vt = tt.Alpha
		case bestValue >= beta:
			vt = tt.Beta
		default:
			vt = tt.Exact
		}
		w.tt.Put(pos.ZobristKey(), bestMove, bestValue, depth, vt)
	}

	return bestValue
}

