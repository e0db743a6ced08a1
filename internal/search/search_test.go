package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fkopp/vchess/internal/position"
	. "github.com/fkopp/vchess/internal/types"
	"github.com/fkopp/vchess/internal/variant"
)

func standardStart(t *testing.T) *position.Position {
	t.Helper()
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	return position.NewFromStart(desc)
}

func TestGetBestMoveFindsALegalMoveAtLowDepth(t *testing.T) {
	s := New()
	pos := standardStart(t)
	limits := &Limits{Depth: 3}

	result, ok := s.GetBestMove(context.Background(), pos, limits)
	assert.True(t, ok)
	assert.True(t, result.BestMove.IsValid())
	assert.GreaterOrEqual(t, result.Depth, 1)
	assert.Greater(t, result.Nodes, uint64(0))
}

func TestGetBestMoveRejectsReentrantCalls(t *testing.T) {
	s := New()
	assert.NoError(t, s.running.Acquire(context.Background(), 1))
	defer s.running.Release(1)

	assert.True(t, s.IsSearching())
	_, ok := s.GetBestMove(context.Background(), standardStart(t), &Limits{Depth: 1})
	assert.False(t, ok)
}

func TestIsSearchingReflectsIdleState(t *testing.T) {
	s := New()
	assert.False(t, s.IsSearching())
}

func TestGetBestMoveHonorsContextTimeout(t *testing.T) {
	s := New()
	pos := standardStart(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	result, ok := s.GetBestMove(ctx, pos, &Limits{Depth: MaxPly - 1})
	assert.True(t, ok)
	assert.True(t, result.BestMove.IsValid())
}

func TestStopCausesAnInFlightSearchToReturnPromptly(t *testing.T) {
	s := New()
	pos := standardStart(t)
	done := make(chan struct{})
	go func() {
		_, _ = s.GetBestMove(context.Background(), pos, &Limits{Depth: MaxPly - 1})
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	s.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop after Stop() was called")
	}
}

func TestNewGameClearsTheTranspositionTable(t *testing.T) {
	s := New()
	pos := standardStart(t)
	_, ok := s.GetBestMove(context.Background(), pos, &Limits{Depth: 2})
	assert.True(t, ok)
	assert.Greater(t, s.tt.Snapshot().Puts, uint64(0))

	s.NewGame()
	assert.Equal(t, uint64(0), s.tt.Snapshot().Puts)
}

func TestLimitsTimeBudgetUsesMoveTimeWhenSet(t *testing.T) {
	l := &Limits{MoveTime: 500 * time.Millisecond}
	assert.Equal(t, 500*time.Millisecond, l.timeBudget(White))
}

func TestLimitsTimeBudgetIsZeroWithoutTimeControl(t *testing.T) {
	l := &Limits{}
	assert.Equal(t, time.Duration(0), l.timeBudget(White))
}

func TestLimitsTimeBudgetSplitsRemainingClockAcrossMovesToGo(t *testing.T) {
	l := &Limits{TimeControl: true, WhiteTime: 60 * time.Second, MovesToGo: 10}
	assert.Equal(t, 6*time.Second, l.timeBudget(White))
}

func TestLimitsTimeBudgetNeverExceedsHalfTheRemainingClock(t *testing.T) {
	l := &Limits{TimeControl: true, WhiteTime: 10 * time.Second, MovesToGo: 1}
	assert.Equal(t, 5*time.Second, l.timeBudget(White))
}

func TestStatisticsResetZeroesEveryCounter(t *testing.T) {
	var st Statistics
	st.incNodes()
	st.incBetaCuts()
	st.Reset()
	snap := st.Snapshot()
	assert.Equal(t, StatSnapshot{}, snap)
}

func TestStatisticsSnapshotReflectsIncrements(t *testing.T) {
	var st Statistics
	st.incNodes()
	st.incNodes()
	st.incTTHits()
	snap := st.Snapshot()
	assert.Equal(t, uint64(2), snap.Nodes)
	assert.Equal(t, uint64(1), snap.TTHits)
}
