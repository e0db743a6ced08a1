package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkopp/vchess/internal/position"
	. "github.com/fkopp/vchess/internal/types"
	"github.com/fkopp/vchess/internal/variant"
)

func TestIsCaptureDetectsOrdinaryAndEnPassantCaptures(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	pos, err := position.LoadFEN(desc, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1")
	assert.NoError(t, err)

	epCapture := CreateMove(SquareOf(4, 4, 8), SquareOf(3, 5, 8), EnPassant, PieceTypeNone)
	assert.True(t, isCapture(pos, epCapture))

	quiet := CreateMove(SquareOf(0, 1, 8), SquareOf(0, 2, 8), Normal, PieceTypeNone)
	assert.False(t, isCapture(pos, quiet))
}

func TestOutcomeToScoreIsRelativeToSideToMove(t *testing.T) {
	whiteWin := variant.Outcome{Winner: variant.WhiteWins}
	assert.Equal(t, ValueCheckMate-Value(3), outcomeToScore(whiteWin, White, 3))
	assert.Equal(t, -(ValueCheckMate - Value(3)), outcomeToScore(whiteWin, Black, 3))

	draw := variant.Outcome{Winner: variant.Draw}
	assert.Equal(t, ValueDraw, outcomeToScore(draw, White, 0))
}

func TestPieceValueIsZeroForAnEmptySquare(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	assert.Equal(t, Value(0), pieceValue(desc, PieceNone))
}

func TestLmrReductionGrowsWithDepthAndMoveIndex(t *testing.T) {
	shallow := lmrReduction(4, 10)
	deep := lmrReduction(20, 40)
	assert.GreaterOrEqual(t, deep, shallow)
	assert.GreaterOrEqual(t, lmrReduction(2, 2), 1)
}

func TestLmrReductionClampsOutOfRangeInputs(t *testing.T) {
	assert.NotPanics(t, func() {
		lmrReduction(1000, 1000)
	})
}

func TestNullMoveReductionIsDeeperAtHighDepth(t *testing.T) {
	assert.Equal(t, 2, nullMoveReduction(5))
	assert.Equal(t, 3, nullMoveReduction(7))
}

func TestNegamaxReturnsCheckmateScoreWhenMated(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	// Black to move, back-rank mated by the white rook on a8.
	pos, err := position.LoadFEN(desc, "R3k3/8/4K3/8/8/8/8/8 b - - 0 1")
	assert.NoError(t, err)

	s := New()
	result, ok := s.GetBestMove(context.Background(), pos, &Limits{Depth: 1})
	assert.True(t, ok)
	assert.True(t, result.Value.IsCheckMateValue())
}
