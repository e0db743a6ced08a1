package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkopp/vchess/internal/movegen"
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

func firstLegalMove(t *testing.T, pos *position.Position) Move {
	t.Helper()
	gen := movegen.New()
	moves := gen.GenerateLegal(pos, movegen.GenAll)
	assert.Greater(t, moves.Len(), 0)
	return moves.At(0).MoveOf()
}

func TestLookupMissOnEmptyBook(t *testing.T) {
	b := New(1)
	pos := standardStart(t)
	_, ok := b.Lookup(pos)
	assert.False(t, ok)
}

func TestAddLineMakesItsFirstMoveLookupable(t *testing.T) {
	start := standardStart(t)
	m := firstLegalMove(t, start)

	b := New(1)
	b.AddLine(start, []Move{m})
	assert.Equal(t, 1, b.Len())

	got, ok := b.Lookup(start)
	assert.True(t, ok)
	assert.Equal(t, m, got.MoveOf())
}

func TestAddLineTwiceIncrementsCountInsteadOfDuplicating(t *testing.T) {
	start := standardStart(t)
	m := firstLegalMove(t, start)

	b := New(1)
	b.AddLine(start, []Move{m})
	b.AddLine(start, []Move{m})
	assert.Equal(t, 1, b.Len())
	assert.Len(t, b.entries[start.ZobristKey()], 1)
	assert.Equal(t, 2, b.entries[start.ZobristKey()][0].count)
}

func TestLookupOnlyReturnsKnownSuccessors(t *testing.T) {
	start := standardStart(t)
	gen := movegen.New()
	moves := gen.GenerateLegal(start, movegen.GenAll)
	assert.GreaterOrEqual(t, moves.Len(), 2)
	m1 := moves.At(0).MoveOf()
	m2 := moves.At(1).MoveOf()

	b := New(1)
	b.AddLine(start, []Move{m1})

	for i := 0; i < 20; i++ {
		got, ok := b.Lookup(start)
		assert.True(t, ok)
		assert.Equal(t, m1, got.MoveOf())
		assert.NotEqual(t, m2, got.MoveOf())
	}
}
