// Package search implements iterative-deepening principal variation
// search over a Position: negamax with null-move pruning, late move
// reductions and quiescence (alphabeta.go, quiescence.go), driven by Lazy
// SMP (smp.go), several goroutines searching the same root to increasing
// depths, all probing and storing into one shared lockless transposition
// table (internal/tt), each otherwise independent (own move generator,
// own history table).
package search

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/moveslice"
	"github.com/fkopp/vchess/internal/position"
	"github.com/fkopp/vchess/internal/tt"
	. "github.com/fkopp/vchess/internal/types"
)

// Result reports the outcome of one GetBestMove call.
type Result struct {
	BestMove Move
	Value    Value
	Depth    int
	Nodes    uint64
	PV       moveslice.MoveSlice
	Elapsed  time.Duration
}

// Search owns the shared transposition table and drives one Lazy SMP
// search at a time. The teacher gates reentrant search calls with a
// semaphore.Weighted(1) rather than a bool guarded by a mutex; we keep
// that pattern here.
type Search struct {
	tt       *tt.Table
	stats    Statistics
	stopFlag int32
	running  *semaphore.Weighted
}

// New creates a Search with a transposition table sized per
// config.Settings.Search.TTSize.
func New() *Search {
	return &Search{
		tt:      tt.New(config.Settings.Search.TTSize),
		running: semaphore.NewWeighted(1),
	}
}

// NewGame clears the transposition table, dropping anything learned about
// a previous game (history tables are per-call, so nothing else to reset).
func (s *Search) NewGame() {
	s.tt.Clear()
}

// Stats returns a snapshot of the most recent search's counters.
func (s *Search) Stats() StatSnapshot { return s.stats.Snapshot() }

// Stop requests the current GetBestMove call to return as soon as
// possible with the best move found so far.
func (s *Search) Stop() { atomic.StoreInt32(&s.stopFlag, 1) }

// IsSearching reports whether a GetBestMove call is in flight, without
// blocking.
func (s *Search) IsSearching() bool {
	if !s.running.TryAcquire(1) {
		return true
	}
	s.running.Release(1)
	return false
}

// GetBestMove runs a blocking iterative-deepening search from pos bounded
// by limits and/or ctx, returning once the deepest completed iteration's
// result is ready (or the search is stopped/cancelled mid-iteration, in
// which case the last fully completed iteration's result is returned). It
// returns false if a search is already running.
func (s *Search) GetBestMove(ctx context.Context, pos *position.Position, limits *Limits) (Result, bool) {
	if !s.running.TryAcquire(1) {
		return Result{}, false
	}
	defer s.running.Release(1)

	atomic.StoreInt32(&s.stopFlag, 0)
	s.stats.Reset()
	s.tt.NewSearch()

	start := time.Now()
	searchCtx := ctx
	if budget := limits.timeBudget(pos.SideToMove()); budget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	watcherDone := make(chan struct{})
	go func() {
		select {
		case <-searchCtx.Done():
			atomic.StoreInt32(&s.stopFlag, 1)
		case <-watcherDone:
		}
	}()
	defer close(watcherDone)

	result := s.runLazySMP(pos, limits)
	result.Elapsed = time.Since(start)
	result.PV = s.extractPV(pos, result.BestMove)
	return result, true
}

// iterativeDeepening searches depths 1..N, each a full negamax call at the
// full [-inf, +inf] window (no aspiration windows, kept simple), stopping
// early on a node/stop-flag/forced-mate condition.
func (s *Search) iterativeDeepening(w *worker, pos *position.Position, limits *Limits) Result {
	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	var best Result
	for depth := 1; depth <= maxDepth; depth++ {
		if w.stopped() {
			break
		}
		value := w.negamax(pos, depth, 0, -ValueInfinite, ValueInfinite, MoveNone)
		if w.stopped() && depth > 1 {
			break
		}
		bestMove := MoveNone
		if entry, ok := w.tt.Probe(pos.ZobristKey()); ok {
			bestMove = entry.Move
		}
		best = Result{BestMove: bestMove, Value: value, Depth: depth, Nodes: w.stats.Nodes()}
		if limits.Nodes > 0 && w.stats.Nodes() >= limits.Nodes {
			break
		}
		if value.IsCheckMateValue() {
			break
		}
	}
	return best
}

// extractPV walks the transposition table forward from pos following
// bestMove, collecting the principal variation the search actually found.
// It walks a clone, so the caller's position is left untouched.
func (s *Search) extractPV(pos *position.Position, bestMove Move) moveslice.MoveSlice {
	pv := moveslice.New(MaxPly)
	if !bestMove.IsValid() {
		return *pv
	}
	walker := pos.Clone()
	seen := map[uint64]bool{}
	m := bestMove
	for i := 0; i < MaxPly && m.IsValid(); i++ {
		if seen[walker.ZobristKey()] {
			break
		}
		seen[walker.ZobristKey()] = true
		pv.PushBack(m.MoveOf())
		walker.DoMove(m)
		entry, ok := s.tt.Probe(walker.ZobristKey())
		if !ok {
			break
		}
		m = entry.Move
	}
	return *pv
}
