package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMoveRoundTrip(t *testing.T) {
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	assert.Equal(t, Square(12), m.From())
	assert.Equal(t, Square(28), m.To())
	assert.Equal(t, Normal, m.MoveType())
}

func TestMovePromotion(t *testing.T) {
	m := CreateMove(Square(200), Square(216), Promotion, Queen)
	assert.Equal(t, Promotion, m.MoveType())
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "a26a28q", m.String(8))
}

func TestMoveValueDoesNotAffectMoveOf(t *testing.T) {
	m := CreateMove(Square(1), Square(2), Normal, PieceTypeNone)
	withValue := m.SetValue(Value(-150))
	assert.Equal(t, m, withValue.MoveOf())
	assert.Equal(t, Value(-150), withValue.ValueOf())
	assert.Equal(t, Square(1), withValue.From())
	assert.Equal(t, Square(2), withValue.To())
}

func TestMoveNoneIsInvalid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	valued := MoveNone.SetValue(0)
	assert.Equal(t, MoveNone, valued.MoveOf())
}
