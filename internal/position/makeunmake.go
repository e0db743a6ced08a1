package position

import (
	"github.com/fkopp/vchess/internal/assert"
	. "github.com/fkopp/vchess/internal/types"
)

// castlingRookSquares derives the rook's origin and destination for a
// castling move purely from the king's travel and the Descriptor's
// CastlingInitial table, so Chess960 starting placements (where the rook
// need not start on the corner file) work the same way standard chess
// does: the rook on the same side as the king's destination slides to sit
// directly beside the king's arrival square.
func (p *Position) castlingRookSquares(c Color, kingFrom, kingTo Square) (from, to Square) {
	w := p.desc.Width
	kingsideRook, queensideRook := SquareNone, SquareNone
	for pt, pr := range p.desc.Pieces {
		if !pr.IsCastlingRook {
			continue
		}
		if sq, ok := pr.CastlingInitial[c]; ok && p.bb[c][pt].Test(sq) {
			if sq.FileOf(w) > kingFrom.FileOf(w) {
				kingsideRook = sq
			} else {
				queensideRook = sq
			}
		}
	}
	rank := kingFrom.RankOf(w)
	if kingTo.FileOf(w) > kingFrom.FileOf(w) {
		return kingsideRook, SquareOf(kingTo.FileOf(w)-1, rank, w)
	}
	return queensideRook, SquareOf(kingTo.FileOf(w)+1, rank, w)
}

// DoMove applies m to the position, pushing an undo frame. Callers are
// responsible for only calling this with pseudo-legal moves; legality
// (not leaving one's own leader attacked) is checked by movegen after the
// fact via IsAttacked: it makes each candidate, tests it, and always
// unmakes it again.
func (p *Position) DoMove(m Move) {
	from, to := m.From(), m.To()
	moving := p.board[from]
	assert.Assert(!moving.IsNone(), "DoMove: no piece on from-square")

	frame := undoFrame{
		move:             m,
		movingPiece:      moving,
		capturedSquare:   SquareNone,
		rookFrom:         SquareNone,
		rookTo:           SquareNone,
		castlingBefore:   p.castlingRights,
		epTargetBefore:   p.epTarget,
		epVictimBefore:   p.epVictim,
		halfMoveBefore:   p.halfMoveClock,
		checkCountBefore: p.checkCount,
		zobristBefore:    p.zobrist,
	}

	p.zobrist ^= p.pieceKey(moving, from)
	if p.epTarget != SquareNone {
		p.zobrist ^= p.zk.epFile[p.epTarget.FileOf(p.desc.Width)]
	}

	captureSq := to
	if m.MoveType() == EnPassant {
		captureSq = p.epVictim
	}
	captured := PieceNone
	if m.MoveType() != Castling {
		captured = p.board[captureSq]
		if !captured.IsNone() {
			p.zobrist ^= p.pieceKey(captured, captureSq)
			p.clearPiece(captureSq)
			frame.capturedPiece = captured
			frame.capturedSquare = captureSq
			p.clearCastlingRight(captureSq, &frame)
		}
	}

	p.clearPiece(from)
	placed := moving
	if m.MoveType() == Promotion {
		placed = MakePiece(moving.Color, m.PromotionType())
	}
	p.setPiece(to, placed)
	p.zobrist ^= p.pieceKey(placed, to)

	if m.MoveType() == Castling {
		rookFrom, rookTo := p.castlingRookSquares(moving.Color, from, to)
		frame.rookFrom, frame.rookTo = rookFrom, rookTo
		if rookFrom != SquareNone {
			rook := p.clearPiece(rookFrom)
			p.zobrist ^= p.pieceKey(rook, rookFrom)
			p.setPiece(rookTo, rook)
			p.zobrist ^= p.pieceKey(rook, rookTo)
		}
	}

	p.clearCastlingRight(from, &frame)
	if pr, ok := p.desc.Pieces[moving.Type]; ok && pr.IsKing {
		p.clearAllCastlingRightsFor(moving.Color, &frame)
	}

	if !captured.IsNone() {
		// The to-square is excluded from the recorded undo list: if the
		// hook reports it (atomic's self-destructing capture), the piece
		// sitting there is cleared but not saved, because UndoMove already
		// restores whatever occupied the capture square (frame.capturedSquare)
		// independently — recording it twice would have the exploded-square
		// restore clobber that with the wrong piece.
		for _, sq := range p.desc.OnCapture(p, from, to, captured) {
			if sq == to {
				if pc := p.board[sq]; !pc.IsNone() {
					p.zobrist ^= p.pieceKey(pc, sq)
					p.clearPiece(sq)
					p.clearCastlingRight(sq, &frame)
				}
				continue
			}
			pc := p.board[sq]
			if !pc.IsNone() {
				p.zobrist ^= p.pieceKey(pc, sq)
				p.clearPiece(sq)
				p.clearCastlingRight(sq, &frame)
			}
			frame.explodedSquares = append(frame.explodedSquares, sq)
			frame.explodedPieces = append(frame.explodedPieces, pc)
		}
	}

	p.epTarget, p.epVictim = SquareNone, SquareNone
	isDoubleJumper := false
	if pr, ok := p.desc.Pieces[moving.Type]; ok && pr.DoubleJumpOrigin != nil {
		if mask, ok := pr.DoubleJumpOrigin[moving.Color]; ok && mask.Test(from) {
			isDoubleJumper = true
			dr := to.RankOf(p.desc.Width) - from.RankOf(p.desc.Width)
			if dr == 2 || dr == -2 {
				p.epTarget = SquareOf(from.FileOf(p.desc.Width), (from.RankOf(p.desc.Width)+to.RankOf(p.desc.Width))/2, p.desc.Width)
				p.epVictim = to
			}
		}
	}
	if p.epTarget != SquareNone {
		p.zobrist ^= p.zk.epFile[p.epTarget.FileOf(p.desc.Width)]
	}

	if moving.Color == Black {
		p.fullMoveNumber++
	}
	// The 50-move counter resets on a capture or a move by a piece that can
	// take a double step from its starting rank (the generalized "pawn"
	// marker — any other identifying field would miss fairy pawns that
	// can't promote, e.g. a grand-shogi-style non-promoting foot soldier).
	if !captured.IsNone() || isDoubleJumper {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	p.sideToMove = p.sideToMove.Opponent()
	p.zobrist ^= p.zk.sideToMove

	if p.InCheck(p.sideToMove) {
		p.checkCount[p.sideToMove]++
	}

	p.repetitions = append(p.repetitions, p.zobrist)
	if !captured.IsNone() || isDoubleJumper || m.MoveType() == Castling {
		p.repetitions = p.repetitions[len(p.repetitions)-1:]
	}

	p.history = append(p.history, frame)
}

func (p *Position) clearCastlingRight(sq Square, frame *undoFrame) {
	if p.castlingRights.Test(sq) {
		p.zobrist ^= p.zk.castling[sq]
		p.castlingRights.Clear(sq)
	}
}

func (p *Position) clearAllCastlingRightsFor(c Color, frame *undoFrame) {
	var rights BB256 = p.castlingRights
	for !rights.IsEmpty() {
		sq := rights.PopLsb()
		if p.occ[c].Test(sq) {
			p.clearCastlingRight(sq, frame)
		}
	}
}

// UndoMove reverts the most recent DoMove.
func (p *Position) UndoMove() {
	n := len(p.history)
	assert.Assert(n > 0, "UndoMove: empty history")
	frame := p.history[n-1]
	p.history = p.history[:n-1]
	if len(p.repetitions) > 0 {
		p.repetitions = p.repetitions[:len(p.repetitions)-1]
	}

	p.sideToMove = p.sideToMove.Opponent()
	m := frame.move
	from, to := m.From(), m.To()

	moved := p.clearPiece(to)
	restored := frame.movingPiece
	_ = moved
	p.setPiece(from, restored)

	if m.MoveType() == Castling {
		if frame.rookFrom != SquareNone {
			rook := p.clearPiece(frame.rookTo)
			p.setPiece(frame.rookFrom, rook)
		}
	} else if frame.capturedSquare != SquareNone {
		p.setPiece(frame.capturedSquare, frame.capturedPiece)
	}

	for i, sq := range frame.explodedSquares {
		pc := frame.explodedPieces[i]
		if !pc.IsNone() {
			p.setPiece(sq, pc)
		}
	}

	p.castlingRights = frame.castlingBefore
	p.epTarget = frame.epTargetBefore
	p.epVictim = frame.epVictimBefore
	p.halfMoveClock = frame.halfMoveBefore
	p.checkCount = frame.checkCountBefore
	p.zobrist = frame.zobristBefore

	if p.sideToMove == Black {
		p.fullMoveNumber--
	}
}

// DoNullMove flips the side to move without moving a piece, used by
// search's null-move pruning. UndoNullMove restores it.
func (p *Position) DoNullMove() (prevEP, prevEPVictim Square) {
	prevEP, prevEPVictim = p.epTarget, p.epVictim
	if p.epTarget != SquareNone {
		p.zobrist ^= p.zk.epFile[p.epTarget.FileOf(p.desc.Width)]
	}
	p.epTarget, p.epVictim = SquareNone, SquareNone
	p.sideToMove = p.sideToMove.Opponent()
	p.zobrist ^= p.zk.sideToMove
	return
}

func (p *Position) UndoNullMove(prevEP, prevEPVictim Square) {
	p.sideToMove = p.sideToMove.Opponent()
	p.zobrist ^= p.zk.sideToMove
	if prevEP != SquareNone {
		p.zobrist ^= p.zk.epFile[prevEP.FileOf(p.desc.Width)]
	}
	p.epTarget, p.epVictim = prevEP, prevEPVictim
}
