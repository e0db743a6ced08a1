package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fkopp/vchess/internal/variant"
	. "github.com/fkopp/vchess/internal/types"
)

// LoadFEN parses the extended FEN dialect described for this engine:
// placement side castling ep halfmove fullmove check, where placement may
// use '*' for a permanently empty wall square, castling may be a legacy
// "KQkq", a coordinate list "(a1,h1,a8,h8)"/"(ALL)", or "-", ep is either
// "-" or "<target>(<victim>)", and an optional trailing "+W+B" field
// records N-check counters. Only the placement field is mandatory; a
// missing side defaults to White, castling to no rights, ep to none, the
// clocks to 0 and 1, and the check counters to 0.
func LoadFEN(desc *variant.Descriptor, fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 1 {
		return nil, fmt.Errorf("position: empty FEN")
	}
	p := New(desc)
	if err := p.loadPlacement(fields[0]); err != nil {
		return nil, err
	}

	p.sideToMove = White
	if len(fields) >= 2 {
		switch fields[1] {
		case "w":
			p.sideToMove = White
		case "b":
			p.sideToMove = Black
		default:
			return nil, fmt.Errorf("position: bad side-to-move field %q", fields[1])
		}
	}

	p.castlingRights = BBEmpty
	if len(fields) >= 3 {
		cr, err := p.parseCastling(fields[2])
		if err != nil {
			return nil, err
		}
		p.castlingRights = cr
	}

	p.epTarget, p.epVictim = SquareNone, SquareNone
	if len(fields) >= 4 && fields[3] != "-" {
		target, victim, err := p.parseEP(fields[3])
		if err != nil {
			return nil, err
		}
		p.epTarget, p.epVictim = target, victim
	}

	p.halfMoveClock = 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("position: bad halfmove clock %q: %w", fields[4], err)
		}
		p.halfMoveClock = n
	}

	p.fullMoveNumber = 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("position: bad fullmove number %q: %w", fields[5], err)
		}
		p.fullMoveNumber = n
	}

	if len(fields) >= 7 {
		w, b, err := parseCheckCount(fields[6])
		if err != nil {
			return nil, err
		}
		p.checkCount[White], p.checkCount[Black] = w, b
	}

	p.zobrist = p.computeZobristFromScratch()
	return p, nil
}

func (p *Position) loadPlacement(field string) error {
	ranks := strings.Split(field, "/")
	h := p.desc.Height
	if len(ranks) != h {
		return fmt.Errorf("position: placement has %d ranks, want %d", len(ranks), h)
	}
	for i, rankStr := range ranks {
		r := h - 1 - i
		f := 0
		for _, ch := range rankStr {
			if f >= p.desc.Width {
				return fmt.Errorf("position: rank %d overflows board width %d", r, p.desc.Width)
			}
			switch {
			case ch == '*':
				f++
			case ch >= '1' && ch <= '9':
				f += int(ch - '0')
			default:
				pc, ok := charToPiece(p.desc, ch)
				if !ok {
					return fmt.Errorf("position: unknown piece letter %q", ch)
				}
				p.setPiece(SquareOf(f, r, p.desc.Width), pc)
				f++
			}
		}
	}
	return nil
}

func charToPiece(d *variant.Descriptor, ch rune) (Piece, bool) {
	for pt, pr := range d.Pieces {
		if pr.Char[White] == ch {
			return MakePiece(White, pt), true
		}
		if pr.Char[Black] == ch {
			return MakePiece(Black, pt), true
		}
	}
	return PieceNone, false
}

// parseCastling accepts "-", "(ALL)", a parenthesized square-coordinate
// list "(a1,h1,a8,h8)", or the legacy "KQkq" shorthand (mapped onto
// whichever castling-rook squares this variant actually starts with).
func (p *Position) parseCastling(field string) (BB256, error) {
	if field == "-" {
		return BBEmpty, nil
	}
	if field == "(ALL)" {
		return p.desc.StartCastlingRights, nil
	}
	if strings.HasPrefix(field, "(") && strings.HasSuffix(field, ")") {
		inner := strings.Trim(field, "()")
		var bb BB256
		if inner != "" {
			for _, tok := range strings.Split(inner, ",") {
				sq, err := parseAlgebraic(tok, p.desc.Width)
				if err != nil {
					return BBEmpty, fmt.Errorf("position: bad castling square %q: %w", tok, err)
				}
				bb.Set(sq)
			}
		}
		return bb, nil
	}
	// Legacy KQkq: map each letter to the outermost rook on that side/color
	// still present among the variant's declared castling-rook squares.
	var bb BB256
	for _, ch := range field {
		var c Color
		switch {
		case ch == 'K' || ch == 'Q':
			c = White
		case ch == 'k' || ch == 'q':
			c = Black
		default:
			return BBEmpty, fmt.Errorf("position: bad castling field %q", field)
		}
		kingside := ch == 'K' || ch == 'k'
		sq := p.findCastlingRookSquare(c, kingside)
		if sq != SquareNone {
			bb.Set(sq)
		}
	}
	return bb, nil
}

func (p *Position) findCastlingRookSquare(c Color, kingside bool) Square {
	var best Square = SquareNone
	for _, pr := range p.desc.Pieces {
		if !pr.IsCastlingRook {
			continue
		}
		sq, ok := pr.CastlingInitial[c]
		if !ok || !p.occ[c].Test(sq) {
			continue
		}
		if best == SquareNone {
			best = sq
			continue
		}
		if kingside && sq.FileOf(p.desc.Width) > best.FileOf(p.desc.Width) {
			best = sq
		}
		if !kingside && sq.FileOf(p.desc.Width) < best.FileOf(p.desc.Width) {
			best = sq
		}
	}
	return best
}

func (p *Position) parseEP(field string) (target, victim Square, err error) {
	open := strings.IndexByte(field, '(')
	targetStr := field
	victimStr := ""
	if open >= 0 {
		if !strings.HasSuffix(field, ")") {
			return SquareNone, SquareNone, fmt.Errorf("position: malformed en-passant field %q", field)
		}
		targetStr = field[:open]
		victimStr = field[open+1 : len(field)-1]
	}
	target, err = parseAlgebraic(targetStr, p.desc.Width)
	if err != nil {
		return SquareNone, SquareNone, fmt.Errorf("position: bad en-passant target %q: %w", targetStr, err)
	}
	if victimStr != "" {
		victim, err = parseAlgebraic(victimStr, p.desc.Width)
		if err != nil {
			return SquareNone, SquareNone, fmt.Errorf("position: bad en-passant victim %q: %w", victimStr, err)
		}
		return target, victim, nil
	}
	// No explicit victim: standard chess convention, the victim sits one
	// rank behind the target from the mover's perspective. We don't know
	// the mover's color from this field alone, so infer it from which rank
	// the target sits on relative to board height (it must be the rank a
	// double-jump lands a pawn on).
	r := target.RankOf(p.desc.Width)
	if r >= p.desc.Height/2 {
		victim = SquareOf(target.FileOf(p.desc.Width), r-1, p.desc.Width)
	} else {
		victim = SquareOf(target.FileOf(p.desc.Width), r+1, p.desc.Width)
	}
	return target, victim, nil
}

func parseCheckCount(field string) (white, black int, err error) {
	parts := strings.FieldsFunc(field, func(r rune) bool { return r == '+' })
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("position: bad check-count field %q", field)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("position: bad check-count field %q: %w", field, err)
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("position: bad check-count field %q: %w", field, err)
	}
	return w, b, nil
}

func parseAlgebraic(s string, width int) (Square, error) {
	if len(s) < 2 {
		return SquareNone, fmt.Errorf("too short")
	}
	f := int(s[0] - 'a')
	r, err := strconv.Atoi(s[1:])
	if err != nil {
		return SquareNone, err
	}
	if f < 0 || f >= width {
		return SquareNone, fmt.Errorf("file out of range")
	}
	return SquareOf(f, r-1, width), nil
}

// ToFEN serializes the position back to the same extended dialect.
func (p *Position) ToFEN() string {
	var b strings.Builder
	b.WriteString(p.String())
	b.WriteByte(' ')
	b.WriteString(p.sideToMove.String())
	b.WriteByte(' ')
	b.WriteString(p.castlingFEN())
	b.WriteByte(' ')
	b.WriteString(p.epFEN())
	fmt.Fprintf(&b, " %d %d", p.halfMoveClock, p.fullMoveNumber)
	if p.desc.CheckCounting {
		fmt.Fprintf(&b, " +%d+%d", p.checkCount[White], p.checkCount[Black])
	}
	return b.String()
}

func (p *Position) castlingFEN() string {
	if p.castlingRights.IsEmpty() {
		return "-"
	}
	var squares []string
	var bb BB256 = p.castlingRights
	for !bb.IsEmpty() {
		sq := bb.PopLsb()
		squares = append(squares, sq.StringFor(p.desc.Width))
	}
	return "(" + strings.Join(squares, ",") + ")"
}

func (p *Position) epFEN() string {
	if p.epTarget == SquareNone {
		return "-"
	}
	return fmt.Sprintf("%s(%s)", p.epTarget.StringFor(p.desc.Width), p.epVictim.StringFor(p.desc.Width))
}
