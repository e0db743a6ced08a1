package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/fkopp/vchess/internal/types"
)

func TestUpdateAccumulatesDepthSquared(t *testing.T) {
	tb := New()
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	tb.Update(White, m, 3)
	assert.Equal(t, int64(9), tb.Score(White, m))
	tb.Update(White, m, 3)
	assert.Equal(t, int64(18), tb.Score(White, m))
}

func TestScoresAreColorSpecific(t *testing.T) {
	tb := New()
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	tb.Update(White, m, 4)
	assert.Equal(t, int64(16), tb.Score(White, m))
	assert.Equal(t, int64(0), tb.Score(Black, m))
}

func TestClearResetsEverything(t *testing.T) {
	tb := New()
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	tb.Update(White, m, 4)
	tb.SetCounterMove(m, CreateMove(Square(1), Square(2), Normal, PieceTypeNone))
	tb.Clear()
	assert.Equal(t, int64(0), tb.Score(White, m))
	assert.Equal(t, MoveNone, tb.CounterMove(m))
}

func TestCounterMoveRoundTrip(t *testing.T) {
	tb := New()
	last := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	reply := CreateMove(Square(1), Square(2), Normal, PieceTypeNone)
	tb.SetCounterMove(last, reply)
	assert.Equal(t, reply.MoveOf(), tb.CounterMove(last))
}

func TestCounterMoveForInvalidLastMoveIsNone(t *testing.T) {
	tb := New()
	assert.Equal(t, MoveNone, tb.CounterMove(MoveNone))
	tb.SetCounterMove(MoveNone, CreateMove(Square(1), Square(2), Normal, PieceTypeNone))
	assert.Equal(t, MoveNone, tb.CounterMove(MoveNone))
}
