package movegen

import (
	"testing"

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

func TestGenerateLegalStartingPositionHasTwentyMoves(t *testing.T) {
	pos := standardStart(t)
	g := New()
	moves := g.GenerateLegal(pos, GenAll)
	assert.Equal(t, 20, moves.Len())
}

func TestGenerateLegalCapturesOnlyFindsThePawnCapture(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	// White pawn on e4 can take Black's pawn on d5; nothing else can capture.
	pos, err := position.LoadFEN(desc, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")
	assert.NoError(t, err)

	g := New()
	moves := g.GenerateLegal(pos, GenCaptures)
	assert.Equal(t, 1, moves.Len())
	m := moves.At(0).MoveOf()
	assert.Equal(t, SquareOf(4, 3, 8), m.From())
	assert.Equal(t, SquareOf(3, 4, 8), m.To())
}

func TestGenerateLegalExcludesMovesThatLeaveKingInCheck(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	// White king on e1, White rook on e2 pinned by a Black rook on e8: the
	// rook may still slide along the e-file but must not step sideways,
	// which it could do freely if it weren't pinned.
	pos, err := position.LoadFEN(desc, "4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.NoError(t, err)

	g := New()
	moves := g.GenerateLegal(pos, GenAll)
	rookFrom := SquareOf(4, 1, 8)
	sawOffFileMove := false
	sawOnFileMove := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		if m.From() != rookFrom {
			continue
		}
		if m.To().FileOf(8) != rookFrom.FileOf(8) {
			sawOffFileMove = true
		} else {
			sawOnFileMove = true
		}
	}
	assert.False(t, sawOffFileMove, "a pinned rook must not be able to step off the pin line")
	assert.True(t, sawOnFileMove, "a pinned rook can still slide along the pin line")
}

func TestGenerateLegalOffersBothCastlesWhenPathsAreClear(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	pos, err := position.LoadFEN(desc, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	g := New()
	moves := g.GenerateLegal(pos, GenQuiets)
	found := map[Square]bool{}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		if m.From() == SquareOf(4, 0, 8) && m.MoveType() == Castling {
			found[m.To()] = true
		}
	}
	assert.True(t, found[SquareOf(6, 0, 8)], "kingside castle to g1")
	assert.True(t, found[SquareOf(2, 0, 8)], "queenside castle to c1")
}

func TestGenerateLegalDeniesCastlingThroughCheck(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	// Black rook on f8 attacks f1, the square the White king must cross to
	// castle kingside.
	pos, err := position.LoadFEN(desc, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	assert.NoError(t, err)

	g := New()
	moves := g.GenerateLegal(pos, GenQuiets)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		if m.MoveType() == Castling {
			assert.NotEqual(t, SquareOf(6, 0, 8), m.To(), "must not castle kingside through an attacked square")
		}
	}
}

func TestStoreKillerKeepsTwoMostRecentDistinctMoves(t *testing.T) {
	g := New()
	m1 := CreateMove(SquareOf(4, 1, 8), SquareOf(4, 3, 8), Normal, PieceTypeNone)
	m2 := CreateMove(SquareOf(3, 1, 8), SquareOf(3, 3, 8), Normal, PieceTypeNone)
	m3 := CreateMove(SquareOf(2, 1, 8), SquareOf(2, 3, 8), Normal, PieceTypeNone)

	g.StoreKiller(5, m1)
	first, second := g.Killers(5)
	assert.Equal(t, m1.MoveOf(), first)
	assert.Equal(t, MoveNone, second)

	g.StoreKiller(5, m2)
	first, second = g.Killers(5)
	assert.Equal(t, m2.MoveOf(), first)
	assert.Equal(t, m1.MoveOf(), second)

	g.StoreKiller(5, m2)
	first, second = g.Killers(5)
	assert.Equal(t, m2.MoveOf(), first, "storing the current top killer again must not duplicate it")
	assert.Equal(t, m1.MoveOf(), second)

	g.StoreKiller(5, m3)
	first, second = g.Killers(5)
	assert.Equal(t, m3.MoveOf(), first)
	assert.Equal(t, m2.MoveOf(), second)
}

func TestKillersOutOfRangePlyReturnsNone(t *testing.T) {
	g := New()
	first, second := g.Killers(-1)
	assert.Equal(t, MoveNone, first)
	assert.Equal(t, MoveNone, second)
	first, second = g.Killers(MaxPly)
	assert.Equal(t, MoveNone, first)
	assert.Equal(t, MoveNone, second)
}
