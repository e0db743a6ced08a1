package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkopp/vchess/internal/position"
	"github.com/fkopp/vchess/internal/variant"
)

// Perft results from https://www.chessprogramming.org/Perft_Results.

func TestStandardPerft(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)

	type want struct {
		nodes, captures, enpassant, checks, mates uint64
	}
	results := map[int]want{
		1: {20, 0, 0, 0, 0},
		2: {400, 0, 0, 0, 0},
		3: {8_902, 34, 0, 12, 0},
		4: {197_281, 1_576, 0, 469, 8},
		5: {4_865_609, 82_719, 258, 27_351, 347},
	}

	for depth := 1; depth <= 5; depth++ {
		pos := position.NewFromStart(desc)
		var perft Perft
		nodes := perft.Run(pos, depth)
		w := results[depth]
		assert.Equal(t, w.nodes, nodes, "depth %d nodes", depth)
		assert.Equal(t, w.captures, perft.CaptureCounter, "depth %d captures", depth)
		assert.Equal(t, w.enpassant, perft.EnpassantCounter, "depth %d en passant", depth)
		assert.Equal(t, w.checks, perft.CheckCounter, "depth %d checks", depth)
		assert.Equal(t, w.mates, perft.CheckMateCounter, "depth %d mates", depth)
	}
}

func TestKiwipetePerft(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	pos, err := position.LoadFEN(desc, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	type want struct {
		nodes, captures, enpassant, checks, castles, promotions uint64
	}
	results := map[int]want{
		1: {48, 8, 0, 0, 2, 0},
		2: {2_039, 351, 1, 3, 91, 0},
		3: {97_862, 17_102, 45, 993, 3_162, 0},
	}

	for depth := 1; depth <= 3; depth++ {
		p := pos.Clone()
		var perft Perft
		nodes := perft.Run(p, depth)
		w := results[depth]
		assert.Equal(t, w.nodes, nodes, "depth %d nodes", depth)
		assert.Equal(t, w.captures, perft.CaptureCounter, "depth %d captures", depth)
		assert.Equal(t, w.enpassant, perft.EnpassantCounter, "depth %d en passant", depth)
		assert.Equal(t, w.checks, perft.CheckCounter, "depth %d checks", depth)
		assert.Equal(t, w.castles, perft.CastleCounter, "depth %d castles", depth)
		assert.Equal(t, w.promotions, perft.PromotionCounter, "depth %d promotions", depth)
	}
}

// TestPromotionHeavyPerft uses a position where both sides have pawns one
// step from promoting, a case the capture/promotion bookkeeping above
// can't otherwise exercise.
func TestPromotionHeavyPerft(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	pos, err := position.LoadFEN(desc, "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1")
	assert.NoError(t, err)

	results := map[int]uint64{1: 24, 2: 496, 3: 9_483}

	for depth := 1; depth <= 3; depth++ {
		p := pos.Clone()
		var perft Perft
		nodes := perft.Run(p, depth)
		assert.Equal(t, results[depth], nodes, "depth %d nodes", depth)
		assert.Greater(t, perft.PromotionCounter, uint64(0), "depth %d should see promotions", depth)
	}
}

func TestRunWithNonPositiveDepthCountsNothing(t *testing.T) {
	desc, err := variant.StandardChess()
	assert.NoError(t, err)
	pos := position.NewFromStart(desc)

	var perft Perft
	assert.Equal(t, uint64(0), perft.Run(pos, 0))
}
