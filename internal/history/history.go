// Package history provides the move-ordering tables search fills in as it
// goes: the history heuristic (how often a from/to pair caused a cutoff)
// and a countermove table (what reply to a move worked last time),
// generalized from 64-square arrays to maps since a board can have up to
// 256 squares.
package history

import (
	. "github.com/fkopp/vchess/internal/types"
)

// Table holds the history-heuristic counters and countermove table search
// updates on every beta cutoff and consults when ordering quiet moves.
type Table struct {
	counts       [2]map[squarePair]int64
	counterMoves map[squarePair]Move
}

type squarePair struct {
	from, to Square
}

// New creates an empty history table.
func New() *Table {
	return &Table{
		counts:       [2]map[squarePair]int64{make(map[squarePair]int64), make(map[squarePair]int64)},
		counterMoves: make(map[squarePair]Move),
	}
}

// Clear resets every counter, used between games (not between moves within
// one game, where history intentionally persists to keep informing order).
func (t *Table) Clear() {
	t.counts[0] = make(map[squarePair]int64)
	t.counts[1] = make(map[squarePair]int64)
	t.counterMoves = make(map[squarePair]Move)
}

// Update records that m caused a beta cutoff for color c at the given
// depth (deeper cutoffs count for more, the standard depth² weighting).
func (t *Table) Update(c Color, m Move, depth int) {
	key := squarePair{m.From(), m.To()}
	t.counts[c][key] += int64(depth * depth)
}

// Score returns the accumulated history value for color c's from/to pair,
// used as a quiet-move ordering tiebreaker.
func (t *Table) Score(c Color, m Move) int64 {
	return t.counts[c][squarePair{m.From(), m.To()}]
}

// SetCounterMove records that reply answered the move that was just played
// (from/to of the move the opponent just made).
func (t *Table) SetCounterMove(lastMove, reply Move) {
	if !lastMove.IsValid() {
		return
	}
	t.counterMoves[squarePair{lastMove.From(), lastMove.To()}] = reply.MoveOf()
}

// CounterMove returns the recorded reply to lastMove, or MoveNone.
func (t *Table) CounterMove(lastMove Move) Move {
	if !lastMove.IsValid() {
		return MoveNone
	}
	return t.counterMoves[squarePair{lastMove.From(), lastMove.To()}]
}
