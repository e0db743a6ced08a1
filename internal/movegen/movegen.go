// Package movegen turns a Position's piece dictionary into move lists: a
// pseudo-legal pass over every piece (captures and/or quiets per GenMode)
// followed by castling, then a legality filter that makes each candidate,
// tests whether it leaves the mover's own leader attacked, and unmakes it.
// Because PieceRule is data rather than per-piece-type code, one pair of
// jump/slide loops handles every leaper and slider a variant defines, and
// genPawnLike handles every piece with a double-step origin; there is no
// knight-shaped or bishop-shaped function here.
package movegen

import (
	"github.com/fkopp/vchess/internal/attacks"
	"github.com/fkopp/vchess/internal/moveslice"
	"github.com/fkopp/vchess/internal/position"
	"github.com/fkopp/vchess/internal/variant"
	. "github.com/fkopp/vchess/internal/types"
)

// GenMode selects which pass(es) of pseudo-legal generation to run.
type GenMode int

const (
	GenCaptures GenMode = 1 << iota
	GenQuiets
	GenAll = GenCaptures | GenQuiets
)

// Generator holds the reusable buffers move generation needs so a deep
// search tree does not allocate a fresh slice per node.
type Generator struct {
	pseudo *moveslice.MoveSlice
	legal  *moveslice.MoveSlice

	// killers[ply][0..1] are the two most recent quiet moves that caused a
	// beta cutoff at that ply, tried early regardless of static ordering.
	killers [MaxPly][2]Move
	pvMove  Move
}

// New creates a generator with pre-sized buffers.
func New() *Generator {
	return &Generator{
		pseudo: moveslice.New(MaxMoves),
		legal:  moveslice.New(MaxMoves),
	}
}

// SetPVMove tells the generator which move to sort first in the next
// GeneratePseudoLegal/GenerateLegal call.
func (g *Generator) SetPVMove(m Move) { g.pvMove = m }

// StoreKiller records a killer move for ply (a quiet move that caused a
// beta cutoff), keeping the two most recent distinct killers.
func (g *Generator) StoreKiller(ply int, m Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if g.killers[ply][0].MoveOf() == m.MoveOf() {
		return
	}
	g.killers[ply][1] = g.killers[ply][0]
	g.killers[ply][0] = m.MoveOf()
}

// Killers returns the two killer moves recorded for ply, for search to mix
// into its own ordering pass over GenerateLegal's output.
func (g *Generator) Killers(ply int) (Move, Move) {
	if ply < 0 || ply >= MaxPly {
		return MoveNone, MoveNone
	}
	return g.killers[ply][0], g.killers[ply][1]
}

func orientedOffset(off attacks.Offset, c Color) attacks.Offset {
	if c == Black {
		return attacks.Offset{DFile: off.DFile, DRank: -off.DRank}
	}
	return off
}

// GeneratePseudoLegal fills and returns the generator's pseudo-legal move
// buffer for the side to move: captures/promotions/en passant, quiets, and
// castling, per mode. The move generator never checks whether the mover's
// leader ends up attacked; that is GenerateLegal's job.
func (g *Generator) GeneratePseudoLegal(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	g.pseudo.Clear()
	d := pos.Descriptor()
	us := pos.SideToMove()

	for pt, pr := range d.Pieces {
		bb := pos.BitboardOf(us, pt)
		for !bb.IsEmpty() {
			from := bb.PopLsb()
			if pr.DoubleJumpOrigin != nil {
				g.genPawnLike(pos, pt, pr, us, from, mode)
				continue
			}
			g.genJumpsAndSlides(pos, pt, pr, us, from, mode)
		}
	}
	if mode&GenQuiets != 0 {
		g.genCastling(pos, us)
	}

	g.applyOrdering()
	return g.pseudo
}

// genJumpsAndSlides handles every non-pawn piece: knights/kings/fairy
// leapers via pr.Jumps, bishops/rooks/queens/fairy sliders via pr.Slides.
func (g *Generator) genJumpsAndSlides(pos *position.Position, pt PieceType, pr *variant.PieceRule, us Color, from Square, mode GenMode) {
	d := pos.Descriptor()
	w, h := d.Width, d.Height
	ff, fr := from.FileOf(w), from.RankOf(w)

	for _, j := range pr.Jumps {
		off := orientedOffset(j.Offset, us)
		tf, tr := ff+off.DFile, fr+off.DRank
		if tf < 0 || tf >= w || tr < 0 || tr >= h {
			continue
		}
		to := SquareOf(tf, tr, w)
		if d.Walls.Test(to) {
			continue
		}
		occ := pos.PieceAt(to)
		switch {
		case occ.IsNone():
			if mode&GenQuiets != 0 && j.Flags&variant.MoveOnly != 0 {
				g.pushWithPromotion(pos, pr, us, from, to, mode)
			}
		case occ.Color != us:
			if mode&GenCaptures != 0 && j.Flags&variant.CaptureOnly != 0 {
				g.pushWithPromotion(pos, pr, us, from, to, mode)
			}
		}
	}

	for _, dirSet := range uniqueDirs(pr) {
		g.slideDir(pos, pr, us, from, dirSet, mode)
	}
}

func uniqueDirs(pr *variant.PieceRule) []Direction {
	seen := map[Direction]bool{}
	var out []Direction
	for _, s := range pr.Slides {
		if !seen[s.Dir] {
			seen[s.Dir] = true
			out = append(out, s.Dir)
		}
	}
	return out
}

func (g *Generator) slideDir(pos *position.Position, pr *variant.PieceRule, us Color, from Square, dir Direction, mode GenMode) {
	d := pos.Descriptor()
	w, h := d.Width, d.Height
	orientedDir := dir
	if us == Black {
		orientedDir = dir.MirrorVertical()
	}
	df, dr := orientedDir.DeltaFileRank()
	ff, fr := from.FileOf(w), from.RankOf(w)
	maxDist := pr.MaxSlideDistance
	for step := 1; maxDist == 0 || step <= maxDist; step++ {
		tf, tr := ff+df*step, fr+dr*step
		if tf < 0 || tf >= w || tr < 0 || tr >= h {
			return
		}
		to := SquareOf(tf, tr, w)
		if d.Walls.Test(to) {
			return
		}
		occ := pos.PieceAt(to)
		if occ.IsNone() {
			if mode&GenQuiets != 0 {
				g.pushWithPromotion(pos, pr, us, from, to, mode)
			}
			continue
		}
		if occ.Color != us && mode&GenCaptures != 0 {
			g.pushWithPromotion(pos, pr, us, from, to, mode)
		}
		return
	}
}

// pushWithPromotion appends one move for (from,to), expanding into one
// move per promotion target when the destination forces or allows
// promotion for this piece/color.
func (g *Generator) pushWithPromotion(pos *position.Position, pr *variant.PieceRule, us Color, from, to Square, mode GenMode) {
	if len(pr.PromotionTargets) == 0 {
		g.pseudo.PushBack(CreateMove(from, to, Normal, PieceTypeNone))
		return
	}
	mandatory := pr.MandatoryPromotionSquares[us]
	optional := pr.OptionalPromotionSquares[us]
	if !mandatory.IsEmpty() && mandatory.Test(to) {
		for _, pt := range pr.PromotionTargets {
			g.pseudo.PushBack(CreateMove(from, to, Promotion, pt))
		}
		return
	}
	if !optional.IsEmpty() && optional.Test(to) {
		g.pseudo.PushBack(CreateMove(from, to, Normal, PieceTypeNone))
		for _, pt := range pr.PromotionTargets {
			g.pseudo.PushBack(CreateMove(from, to, Promotion, pt))
		}
		return
	}
	g.pseudo.PushBack(CreateMove(from, to, Normal, PieceTypeNone))
}

// genPawnLike handles any piece with a DoubleJumpOrigin set: forward
// step(s), diagonal captures, the double step from its home rank, en
// passant, and promotion, generalized "pawn" behaviour for fairy pieces
// too (e.g. Horde's wide pawn wall).
func (g *Generator) genPawnLike(pos *position.Position, pt PieceType, pr *variant.PieceRule, us Color, from Square, mode GenMode) {
	d := pos.Descriptor()
	w, h := d.Width, d.Height
	ff, fr := from.FileOf(w), from.RankOf(w)

	for _, j := range pr.Jumps {
		off := orientedOffset(j.Offset, us)
		tf, tr := ff+off.DFile, fr+off.DRank
		if tf < 0 || tf >= w || tr < 0 || tr >= h {
			continue
		}
		to := SquareOf(tf, tr, w)
		if d.Walls.Test(to) {
			continue
		}
		occ := pos.PieceAt(to)
		switch {
		case occ.IsNone():
			if mode&GenQuiets != 0 && j.Flags&variant.MoveOnly != 0 {
				g.pushWithPromotion(pos, pr, us, from, to, mode)
			}
			if mode&GenCaptures != 0 && j.Flags&variant.CaptureOnly != 0 {
				if target, _ := pos.EnPassant(); target != SquareNone && target == to {
					g.pseudo.PushBack(CreateMove(from, to, EnPassant, PieceTypeNone))
				}
			}
		case occ.Color != us:
			if mode&GenCaptures != 0 && j.Flags&variant.CaptureOnly != 0 {
				g.pushWithPromotion(pos, pr, us, from, to, mode)
			}
		}
	}

	if mode&GenQuiets == 0 {
		return
	}
	mask, ok := pr.DoubleJumpOrigin[us]
	if !ok || !mask.Test(from) {
		return
	}
	off := orientedOffset(pr.DoubleJumpDelta, us)
	tf, tr := ff+off.DFile, fr+off.DRank
	if tf < 0 || tf >= w || tr < 0 || tr >= h {
		return
	}
	to := SquareOf(tf, tr, w)
	if d.Walls.Test(to) || !pos.PieceAt(to).IsNone() {
		return
	}
	// The double step's delta is by definition twice the single forward
	// step, so the halfway point (which must also be empty) is at half
	// the delta from the origin.
	mid := SquareOf(ff+off.DFile/2, fr+off.DRank/2, w)
	if !pos.PieceAt(mid).IsNone() {
		return
	}
	g.pseudo.PushBack(CreateMove(from, to, Normal, PieceTypeNone))
}

// genCastling appends both castling candidates for us when the
// corresponding rook still holds its right, the squares between king and
// rook are clear, and the king is not currently in check, does not pass
// over, and does not land on an attacked square.
func (g *Generator) genCastling(pos *position.Position, us Color) {
	d := pos.Descriptor()
	w := d.Width
	var kingPt PieceType = PieceTypeNone
	for pt, pr := range d.Pieces {
		if pr.IsKing {
			kingPt = pt
		}
	}
	if kingPt == PieceTypeNone {
		return
	}
	kingSq := pos.BitboardOf(us, kingPt).Lsb()
	if kingSq == SquareNone {
		return
	}
	opp := us.Opponent()
	if pos.IsAttacked(kingSq, opp) {
		return
	}
	rights := pos.CastlingRights().And(pos.Occupancy(us))
	for !rights.IsEmpty() {
		rookSq := rights.PopLsb()
		if rookSq == kingSq {
			continue
		}
		rank := kingSq.RankOf(w)
		kingside := rookSq.FileOf(w) > kingSq.FileOf(w)
		var kingTo Square
		if kingside {
			kingTo = SquareOf(min(6, w-1), rank, w)
		} else {
			kingTo = SquareOf(min(2, w-1), rank, w)
		}
		if !g.castlingPathClear(pos, us, kingSq, rookSq, kingTo, opp) {
			continue
		}
		g.pseudo.PushBack(CreateMove(kingSq, kingTo, Castling, PieceTypeNone))
	}
}

// castlingPathClear checks the Chess960-safe superset of what standard
// castling requires: every square between the king's and rook's current
// and destination files (other than the king's and rook's own current
// squares) must be empty, and every square the king itself passes through
// (including its start and destination) must not be attacked. This is a
// stricter-than-necessary clearance test on boards where the rook starts
// further out than its standard corner (it also demands the squares beyond
// the king's actual path be empty), which only matters for exotic Chess960
// placements search will simply never offer as a pseudo-legal castle.
func (g *Generator) castlingPathClear(pos *position.Position, us Color, kingSq, rookSq, kingTo Square, opp Color) bool {
	d := pos.Descriptor()
	w := d.Width
	rank := kingSq.RankOf(w)
	rookTo := kingTo.FileOf(w) - 1
	if kingTo.FileOf(w) < kingSq.FileOf(w) {
		rookTo = kingTo.FileOf(w) + 1
	}
	lo := min(kingSq.FileOf(w), rookSq.FileOf(w), kingTo.FileOf(w), rookTo)
	hi := max(kingSq.FileOf(w), rookSq.FileOf(w), kingTo.FileOf(w), rookTo)
	for f := lo; f <= hi; f++ {
		sq := SquareOf(f, rank, w)
		if sq == kingSq || sq == rookSq {
			continue
		}
		if !pos.PieceAt(sq).IsNone() {
			return false
		}
	}
	step := 1
	if kingTo.FileOf(w) < kingSq.FileOf(w) {
		step = -1
	}
	for f := kingSq.FileOf(w); ; f += step {
		sq := SquareOf(f, rank, w)
		if pos.IsAttacked(sq, opp) {
			return false
		}
		if f == kingTo.FileOf(w) {
			break
		}
	}
	return true
}

// applyOrdering sorts the PV move first, leaving the rest in generation
// order (piece by piece, captures and quiets interleaved); killers,
// MVV-LVA and history ordering are layered on by internal/search, which
// has access to eval values this package intentionally does not.
func (g *Generator) applyOrdering() {
	for i := 0; i < g.pseudo.Len(); i++ {
		m := g.pseudo.At(i)
		switch {
		case g.pvMove != MoveNone && m.MoveOf() == g.pvMove.MoveOf():
			g.pseudo.Set(i, m.SetValue(ValueInfinite))
		default:
			g.pseudo.Set(i, m.SetValue(ValueZero))
		}
	}
	g.pseudo.Sort()
	for i := 0; i < g.pseudo.Len(); i++ {
		g.pseudo.Set(i, g.pseudo.At(i).MoveOf())
	}
}

// GenerateLegal returns only the moves from GeneratePseudoLegal that do not
// leave the mover's own leader attacked, further narrowed by the variant's
// LegalFilter hook (e.g. antichess's mandatory capture).
func (g *Generator) GenerateLegal(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	g.GeneratePseudoLegal(pos, mode)
	g.legal.Clear()
	d := pos.Descriptor()
	us := pos.SideToMove()
	leaderExists := false
	for _, pr := range d.Pieces {
		if pr.IsLeader {
			leaderExists = true
		}
	}
	for i := 0; i < g.pseudo.Len(); i++ {
		m := g.pseudo.At(i)
		pos.DoMove(m)
		safe := true
		if leaderExists {
			ksq := pos.KingSquare(us)
			safe = ksq == SquareNone || !pos.IsAttacked(ksq, us.Opponent())
		}
		pos.UndoMove()
		if safe {
			g.legal.PushBack(m)
		}
	}
	filtered := d.LegalFilter(pos, []Move(*g.legal))
	*g.legal = moveslice.MoveSlice(filtered)
	return g.legal
}
