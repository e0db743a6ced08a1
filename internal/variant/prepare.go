package variant

import (
	"github.com/fkopp/vchess/internal/config"
	. "github.com/fkopp/vchess/internal/types"
)

// generatePieceValues computes, once per loaded variant, each piece type's
// material value (base + α·mobility fan-out) and its piece-square table
// (β·centrality + γ·center-visibility + δ·promotion-proximity), per
// spec.md §4.3. This is intentionally the slow, once-per-load step the
// spec calls out (O(W·H·attacks)).
func generatePieceValues(d *Descriptor) {
	w, h := d.Width, d.Height
	n := d.Squares()
	centerFile, centerRank := float64(w)/2, float64(h)/2
	centerSquares := centralSquares(d)

	for pt, pr := range d.Pieces {
		if pr.IsLeader || pr.IsAntiKing {
			pr.MaterialValue = ValueMaxMaterial
		} else {
			pr.MaterialValue = materialValue(d, pt, pr, centerSquares)
		}

		pst := make([]Value, n)
		for sq := 0; sq < n; sq++ {
			if d.Walls.Test(Square(sq)) {
				continue
			}
			file := float64(sq % w)
			rank := float64(sq / w)
			centrality := (centerFile - absF(file-centerFile)) * (centerRank - absF(rank-centerRank))
			visibility := float64(visibilityOfCenter(d, pt, Square(sq), centerSquares))
			proximity := promotionProximity(d, pr, Square(sq), White)

			score := config.Settings.Variant.Centrality*centrality +
				config.Settings.Variant.CenterVisibility*visibility +
				config.Settings.Variant.PromotionProximity*proximity
			pst[sq] = clampValue(score)
		}
		pr.PST = pst
	}
}

func centralSquares(d *Descriptor) []Square {
	w, h := d.Width, d.Height
	loF, hiF := w/4, w-1-w/4
	loR, hiR := h/4, h-1-h/4
	var out []Square
	for r := loR; r <= hiR; r++ {
		for f := loF; f <= hiF; f++ {
			sq := SquareOf(f, r, w)
			if !d.Walls.Test(sq) {
				out = append(out, sq)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, SquareOf(w/2, h/2, w))
	}
	return out
}

// materialValue averages mobility fan-out over the center squares: for
// jumpers, the popcount of the jump-attack bitmap; for sliders, the
// popcount of their (unobstructed) sliding attacks weighted by ray count.
func materialValue(d *Descriptor, pt PieceType, pr *PieceRule, centerSquares []Square) Value {
	if len(centerSquares) == 0 {
		return ValueZero
	}
	total := 0.0
	rayCount := float64(len(d.Tables[White].SlideDirections(pt)))
	for _, sq := range centerSquares {
		fanout := d.Tables[White].JumpAttacksFor(pt, sq).PopCount()
		if rayCount > 0 {
			fanout += d.Tables[White].AllSlidingAttacks(pt, sq, BBEmpty).PopCount()
		}
		total += float64(fanout)
	}
	avg := total / float64(len(centerSquares))
	base := 100.0
	if rayCount > 0 {
		avg *= 1.0 + 0.15*rayCount
	}
	return Value(base + config.Settings.Variant.MobilityWeight*avg)
}

func visibilityOfCenter(d *Descriptor, pt PieceType, sq Square, centerSquares []Square) int {
	reach := d.Tables[White].JumpAttacksFor(pt, sq).Or(d.Tables[White].AllSlidingAttacks(pt, sq, BBEmpty))
	count := 0
	for _, c := range centerSquares {
		if reach.Test(c) {
			count++
		}
	}
	return count
}

// promotionProximity measures closeness to this piece's mandatory/optional
// promotion rank for the given color, 0 when the piece never promotes.
func promotionProximity(d *Descriptor, pr *PieceRule, sq Square, c Color) float64 {
	mask, ok := pr.MandatoryPromotionSquares[c]
	if !ok || mask.IsEmpty() {
		mask, ok = pr.OptionalPromotionSquares[c]
		if !ok || mask.IsEmpty() {
			return 0
		}
	}
	rank := sq.RankOf(d.Width)
	best := -1
	for s := 0; s < d.Squares(); s++ {
		if !mask.Test(Square(s)) {
			continue
		}
		r := Square(s).RankOf(d.Width)
		dist := r - rank
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < best {
			best = dist
		}
	}
	if best <= 0 {
		return float64(d.Height)
	}
	return float64(d.Height-best) / float64(d.Height) * float64(d.Height)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampValue(v float64) Value {
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return Value(v)
}
