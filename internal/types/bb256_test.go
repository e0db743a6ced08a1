package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBB256SetClearTest(t *testing.T) {
	var b BB256
	b.Set(130)
	assert.True(t, b.Test(130))
	assert.False(t, b.Test(129))
	b.Clear(130)
	assert.False(t, b.Test(130))
}

func TestBB256PopCountAndLsb(t *testing.T) {
	var b BB256
	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(200)
	assert.Equal(t, 4, b.PopCount())
	assert.Equal(t, Square(0), b.Lsb())
	assert.Equal(t, Square(200), b.Msb())
}

func TestBB256PopLsbDrainsAllBits(t *testing.T) {
	var b BB256
	squares := []Square{3, 70, 129, 255}
	for _, sq := range squares {
		b.Set(sq)
	}
	var drained []Square
	for !b.IsEmpty() {
		drained = append(drained, b.PopLsb())
	}
	assert.Equal(t, squares, drained)
}

func TestBB256ShiftRawCrossesLimbBoundary(t *testing.T) {
	var b BB256
	b.Set(60) // near the limb-0/limb-1 boundary
	shifted := b.ShiftRaw(North, 8)
	assert.True(t, shifted.Test(68))
}

func TestBB256AlgebraIsConsistent(t *testing.T) {
	a := BBSquare(5).Or(BBSquare(9))
	b := BBSquare(9).Or(BBSquare(12))

	and := a.And(b)
	assert.Equal(t, 1, and.PopCount())
	assert.True(t, and.Test(9))

	xor := a.Xor(b)
	assert.Equal(t, 2, xor.PopCount())
	assert.True(t, xor.Test(5))
	assert.True(t, xor.Test(12))
}
