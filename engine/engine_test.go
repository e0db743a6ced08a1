package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fkopp/vchess/internal/variant"
)

func TestNewUnknownVariantErrors(t *testing.T) {
	_, err := New("not-a-real-variant")
	assert.Error(t, err)
}

func TestNewStartsAtTheStandardOpeningPosition(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	assert.Len(t, e.LegalMoves(), 20)
	diff := e.StateDiff()
	assert.False(t, diff.InCheck)
}

func TestLoadFENThenToFENRoundTrips(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b (a1,h1,a8,h8) - 0 1"
	assert.NoError(t, e.LoadFEN(fen))
	assert.Equal(t, fen, e.ToFEN())
}

func TestLoadFENRejectsGarbageAndKeepsThePriorPosition(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	before := e.ToFEN()

	err = e.LoadFEN("not a fen at all")
	assert.ErrorIs(t, err, ErrFenParse)
	assert.Equal(t, before, e.ToFEN())
}

func TestMakeMoveAdvancesTheSideToMove(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	before := e.StateDiff().PlayerToMove
	result, err := e.MakeMove(MoveInfo{FromFile: 4, FromRank: 1, ToFile: 4, ToRank: 3})
	assert.NoError(t, err)
	assert.Equal(t, Ok, result.Flag)
	assert.NotEqual(t, before, e.StateDiff().PlayerToMove)
}

func TestMakeMoveRejectsAnIllegalMove(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	_, err = e.MakeMove(MoveInfo{FromFile: 4, FromRank: 1, ToFile: 4, ToRank: 5})
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestMakeMoveStrAcceptsLongAlgebraicNotation(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	result, err := e.MakeMoveStr("e2e4")
	assert.NoError(t, err)
	assert.Equal(t, Ok, result.Flag)

	_, err = e.MakeMoveStr("e4e5")
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestMakeMoveStrHandlesPromotion(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	assert.NoError(t, e.LoadFEN("8/4P1k1/8/8/8/8/6K1/8 w - - 0 1"))

	result, err := e.MakeMoveStr("e7e8q")
	assert.NoError(t, err)
	assert.Equal(t, Ok, result.Flag)
}

func TestUndoRevertsTheLastMove(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	before := e.ToFEN()

	_, err = e.MakeMoveStr("e2e4")
	assert.NoError(t, err)
	assert.NotEqual(t, before, e.ToFEN())

	assert.NoError(t, e.Undo())
	assert.Equal(t, before, e.ToFEN())
}

func TestUndoWithNoHistoryErrors(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	err = e.Undo()
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestMakeMoveDetectsCheckmate(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	// Fool's mate: 1.f3 e5 2.g4 Qh4#
	var last MakeResult
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		result, err := e.MakeMoveStr(mv)
		assert.NoError(t, err, "move %s", mv)
		last = result
	}
	assert.Equal(t, Checkmate, last.Flag)
	assert.Equal(t, variant.BlackWins, last.Winner)
	assert.True(t, e.StateDiff().InCheck)
}

func TestMakeMoveReportsAtomicExplosion(t *testing.T) {
	e, err := New("atomic")
	assert.NoError(t, err)
	// White pawn c4 takes Black's pawn on d5; Black's knight on e6 sits in
	// the blast radius and should be cleared along with the capture square.
	assert.NoError(t, e.LoadFEN("7k/8/4n3/3p4/2P5/8/8/K7 w - - 0 1"))

	result, err := e.MakeMoveStr("c4d5")
	assert.NoError(t, err)
	assert.Len(t, result.Exploded, 2)
}

func TestMakeMoveExplodingBothKingsEndsTheGame(t *testing.T) {
	e, err := New("atomic")
	assert.NoError(t, err)
	// White king d5 and Black king d3 both sit adjacent to d4, where a
	// White queen takes Black's knight; the chain reaction clears d4 and
	// every non-pawn neighbor, including both kings at once.
	assert.NoError(t, e.LoadFEN("8/8/8/3K4/3n4/3k4/1Q6/8 w - - 0 1"))

	result, err := e.MakeMoveStr("b2d4")
	assert.NoError(t, err)
	assert.Equal(t, AtomicWin, result.Flag)
	assert.Len(t, result.Exploded, 3)

	seen := make(map[string]bool, len(result.Exploded))
	for _, sq := range result.Exploded {
		seen[sq.StringFor(8)] = true
	}
	assert.True(t, seen["d5"], "white king's square should have exploded")
	assert.True(t, seen["d3"], "black king's square should have exploded")
}

func TestMakeMoveSetsEnPassantFENField(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	assert.NoError(t, e.LoadFEN("4k3/8/8/8/8/8/4P3/4K3 w (ALL) -"))

	_, err = e.MakeMoveStr("e2e4")
	assert.NoError(t, err)
	assert.Contains(t, e.ToFEN(), "e3(e4)")
}

func TestGetBestMoveFindsTheKingOfTheHillWin(t *testing.T) {
	e, err := New("kingofthehill")
	assert.NoError(t, err)
	// White king on d3 is one step from any of the four center squares
	// that win King of the Hill outright.
	assert.NoError(t, e.LoadFEN("k7/8/8/8/8/3K4/8/8 w - - 0 1"))

	best, err := e.GetBestMove(4)
	assert.NoError(t, err)
	assert.Equal(t, MoveInfo{FromFile: 3, FromRank: 2, ToFile: 3, ToRank: 3}, best.Move)

	result, err := e.MakeMove(best.Move)
	assert.NoError(t, err)
	assert.Equal(t, KingOfTheHill, result.Flag)
	assert.Equal(t, variant.WhiteWins, result.Winner)
}

func TestMakeMoveDetectsTheThirdCheckWin(t *testing.T) {
	e, err := New("threecheck")
	assert.NoError(t, err)
	// Black has already been checked twice; one more check from White's
	// queen ends the game immediately, regardless of Black's replies.
	assert.NoError(t, e.LoadFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1 +0+2"))

	result, err := e.MakeMoveStr("d1d8")
	assert.NoError(t, err)
	assert.Equal(t, NCheck, result.Flag)
	assert.Equal(t, variant.WhiteWins, result.Winner)
}

func TestAntichessLegalMovesEnforceMandatoryCapture(t *testing.T) {
	e, err := New("antichess")
	assert.NoError(t, err)
	// White's e-pawn can capture Black's d-pawn; the knight's quiet moves
	// and the pawn's own quiet advance must all be filtered out.
	assert.NoError(t, e.LoadFEN("8/8/8/3p4/4P3/8/8/1N6 w - - 0 1"))

	moves := e.LegalMoves()
	assert.Equal(t, []MoveInfo{{FromFile: 4, FromRank: 3, ToFile: 3, ToRank: 4}}, moves)
}

func TestGetBestMoveReturnsALegalChoice(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	result, err := e.GetBestMove(2)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, result.Depth, 1)
}

func TestGetBestMoveTimeoutReturnsWithinABudget(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	start := time.Now()
	_, err = e.GetBestMoveTimeout(20 * time.Millisecond)
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGetBestMoveReportsBusyOnReentrantCall(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_, _ = e.GetBestMove(60)
		close(done)
	}()

	// Give the first call a moment to acquire the searcher before probing
	// for the busy error; a deep, unbounded search keeps it held.
	deadline := time.Now().Add(2 * time.Second)
	var searchErr error
	for time.Now().Before(deadline) {
		if e.searcher.IsSearching() {
			_, searchErr = e.GetBestMove(1)
			break
		}
		time.Sleep(time.Millisecond)
	}
	e.searcher.Stop()
	<-done
	assert.ErrorIs(t, searchErr, ErrEngineBusy)
}

func TestSetNumThreadsClampsToAtLeastOne(t *testing.T) {
	e, err := New("standard")
	assert.NoError(t, err)
	e.SetNumThreads(0)
	// SetNumThreads writes a package-level config value; just make sure it
	// doesn't panic and a subsequent search still runs.
	_, err = e.GetBestMove(1)
	assert.NoError(t, err)
}
