package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/fkopp/vchess/internal/types"
)

func TestPushBackAndAt(t *testing.T) {
	ms := New(4)
	m1 := CreateMove(Square(1), Square(2), Normal, PieceTypeNone)
	m2 := CreateMove(Square(3), Square(4), Normal, PieceTypeNone)
	ms.PushBack(m1)
	ms.PushBack(m2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, m1, ms.At(0))
	assert.Equal(t, m2, ms.At(1))
}

func TestPopBack(t *testing.T) {
	ms := New(2)
	m1 := CreateMove(Square(1), Square(2), Normal, PieceTypeNone)
	ms.PushBack(m1)
	assert.Equal(t, m1, ms.PopBack())
	assert.Equal(t, 0, ms.Len())
}

func TestClearRetainsCapacity(t *testing.T) {
	ms := New(8)
	ms.PushBack(CreateMove(Square(0), Square(1), Normal, PieceTypeNone))
	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	ms.PushBack(CreateMove(Square(0), Square(1), Normal, PieceTypeNone))
	assert.Equal(t, 1, ms.Len())
}

func TestFilterKeepsOnlyMatching(t *testing.T) {
	ms := New(4)
	for i := 0; i < 4; i++ {
		ms.PushBack(CreateMove(Square(i), Square(i+1), Normal, PieceTypeNone))
	}
	ms.Filter(func(m Move) bool { return m.From()%2 == 0 })
	assert.Equal(t, 2, ms.Len())
	for i := 0; i < ms.Len(); i++ {
		assert.Equal(t, Square(0), ms.At(i).From()%2)
	}
}

func TestSortOrdersDescendingByValue(t *testing.T) {
	ms := New(3)
	low := CreateMove(Square(0), Square(1), Normal, PieceTypeNone).SetValue(Value(10))
	high := CreateMove(Square(2), Square(3), Normal, PieceTypeNone).SetValue(Value(900))
	mid := CreateMove(Square(4), Square(5), Normal, PieceTypeNone).SetValue(Value(400))
	ms.PushBack(low)
	ms.PushBack(high)
	ms.PushBack(mid)
	ms.Sort()
	assert.Equal(t, Value(900), ms.At(0).ValueOf())
	assert.Equal(t, Value(400), ms.At(1).ValueOf())
	assert.Equal(t, Value(10), ms.At(2).ValueOf())
}

func TestCloneIsIndependent(t *testing.T) {
	ms := New(2)
	ms.PushBack(CreateMove(Square(0), Square(1), Normal, PieceTypeNone))
	clone := ms.Clone()
	clone.PushBack(CreateMove(Square(2), Square(3), Normal, PieceTypeNone))
	assert.Equal(t, 1, ms.Len())
	assert.Equal(t, 2, clone.Len())
}
