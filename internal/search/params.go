package search

import (
	"math"

	. "github.com/fkopp/vchess/internal/types"
)

// lmr[depth][movesSearched] is a precomputed late-move-reduction table: how
// many plies to shave off a quiet move searched deep into an already-well-
// ordered move list.
var lmr [32][64]int

func init() {
	for i := 0; i < 32; i++ {
		for j := 0; j < 64; j++ {
			switch {
			case i <= 3, j <= 3:
				lmr[i][j] = 1
			default:
				lmr[i][j] = int(math.Round((float64(i)*0.7)*(float64(j)*0.005) + 1.0))
			}
		}
	}
}

// lmrReduction returns the depth reduction for a quiet move at the given
// remaining depth and move index.
func lmrReduction(depth, movesSearched int) int {
	if depth >= 32 {
		depth = 31
	}
	if movesSearched >= 64 {
		movesSearched = 63
	}
	return lmr[depth][movesSearched]
}

// futilityMargin grows with remaining depth: at shallow depths a quiet move
// that can't plausibly close a large eval gap is skipped outright.
var futilityMargin = [7]Value{0, 100, 200, 300, 500, 900, 1200}

// reverseFutilityMargin bounds static-eval beta cutoffs near the leaves.
var reverseFutilityMargin = [4]Value{0, 200, 400, 800}

// nullMoveReduction returns the null-move-pruning reduction for a position
// searched at depth.
func nullMoveReduction(depth int) int {
	r := 2
	if depth > 6 {
		r = 3
	}
	return r
}
