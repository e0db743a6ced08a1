package variant

import (
	"fmt"

	"github.com/fkopp/vchess/internal/attacks"
	. "github.com/fkopp/vchess/internal/types"
)

var knightJumps = []attacks.Offset{
	{DFile: 1, DRank: 2}, {DFile: 2, DRank: 1}, {DFile: -1, DRank: 2}, {DFile: -2, DRank: 1},
	{DFile: 1, DRank: -2}, {DFile: 2, DRank: -1}, {DFile: -1, DRank: -2}, {DFile: -2, DRank: -1},
}

var diagonalDirs = []Direction{Northeast, Northwest, Southeast, Southwest}
var orthogonalDirs = []Direction{North, South, East, West}
var allDirs = append(append([]Direction{}, orthogonalDirs...), diagonalDirs...)

func slidePatterns(dirs []Direction, flag MoveFlag) []SlidePattern {
	out := make([]SlidePattern, len(dirs))
	for i, d := range dirs {
		out[i] = SlidePattern{Dir: d, Flags: flag}
	}
	return out
}

func jumpPatterns(offsets []attacks.Offset, flag MoveFlag) []JumpPattern {
	out := make([]JumpPattern, len(offsets))
	for i, o := range offsets {
		out[i] = JumpPattern{Offset: o, Flags: flag}
	}
	return out
}

func rankMask(w, h, rank int) BB256 {
	var bb BB256
	for f := 0; f < w; f++ {
		bb.Set(SquareOf(f, rank, w))
	}
	return bb
}

// standardPieceSet builds the six FIDE piece types on a w x h board, with
// pawns oriented for White (Black gets the mirrored geometry automatically
// via Descriptor.Prepare).
func standardPieceSet(w, h int) map[PieceType]*PieceRule {
	lastRank := h - 1
	secondRank := 1
	return map[PieceType]*PieceRule{
		Pawn: {
			Char: map[Color]rune{White: 'P', Black: 'p'},
			Jumps: append(
				jumpPatterns([]attacks.Offset{{DFile: 0, DRank: 1}}, MoveOnly),
				jumpPatterns([]attacks.Offset{{DFile: 1, DRank: 1}, {DFile: -1, DRank: 1}}, CaptureOnly)...,
			),
			PromotionTargets: []PieceType{Queen, Rook, Bishop, Knight},
			MandatoryPromotionSquares: map[Color]BB256{
				White: rankMask(w, h, lastRank),
				Black: rankMask(w, h, 0),
			},
			DoubleJumpOrigin: map[Color]BB256{
				White: rankMask(w, h, secondRank),
				Black: rankMask(w, h, h-1-secondRank),
			},
			DoubleJumpDelta: attacks.Offset{DFile: 0, DRank: 2},
		},
		Knight: {
			Char:  map[Color]rune{White: 'N', Black: 'n'},
			Jumps: jumpPatterns(knightJumps, MoveAndCapture),
		},
		Bishop: {
			Char:   map[Color]rune{White: 'B', Black: 'b'},
			Slides: slidePatterns(diagonalDirs, MoveAndCapture),
		},
		Rook: {
			Char:           map[Color]rune{White: 'R', Black: 'r'},
			Slides:         slidePatterns(orthogonalDirs, MoveAndCapture),
			IsCastlingRook: true,
			CastlingInitial: map[Color]Square{
				White: SquareOf(0, 0, w),
				Black: SquareOf(0, h-1, w),
			},
		},
		Queen: {
			Char:   map[Color]rune{White: 'Q', Black: 'q'},
			Slides: slidePatterns(allDirs, MoveAndCapture),
		},
		King: {
			Char:  map[Color]rune{White: 'K', Black: 'k'},
			Jumps: jumpPatterns(offsetsFromDirs(allDirs), MoveAndCapture),
			IsKing:   true,
			IsLeader: true,
			CastlingInitial: map[Color]Square{
				White: SquareOf(4, 0, w),
				Black: SquareOf(4, h-1, w),
			},
		},
	}
}

func offsetsFromDirs(dirs []Direction) []attacks.Offset {
	out := make([]attacks.Offset, len(dirs))
	for i, d := range dirs {
		f, r := d.DeltaFileRank()
		out[i] = attacks.Offset{DFile: f, DRank: r}
	}
	return out
}

func standardStartPlacement(w, h int) []PlacedPiece {
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	var out []PlacedPiece
	for f := 0; f < w && f < len(backRank); f++ {
		out = append(out, PlacedPiece{Square: SquareOf(f, 0, w), Piece: MakePiece(White, backRank[f])})
		out = append(out, PlacedPiece{Square: SquareOf(f, 1, w), Piece: MakePiece(White, Pawn)})
		out = append(out, PlacedPiece{Square: SquareOf(f, h-2, w), Piece: MakePiece(Black, Pawn)})
		out = append(out, PlacedPiece{Square: SquareOf(f, h-1, w), Piece: MakePiece(Black, backRank[f])})
	}
	return out
}

func baseDescriptor(name string, w, h int) *Descriptor {
	return &Descriptor{
		Name:   name,
		Width:  w,
		Height: h,
		Pieces: standardPieceSet(w, h),
		Forward: map[Color]Direction{
			White: North,
			Black: South,
		},
		StartPlacement:  standardStartPlacement(w, h),
		StartSideToMove: White,
		Hooks:           Hooks{Terminal: standardTerminal},
	}
}

func allCastlingRights(w, h int) BB256 {
	var bb BB256
	bb.Set(SquareOf(0, 0, w))
	bb.Set(SquareOf(w-1, 0, w))
	bb.Set(SquareOf(4, 0, w))
	bb.Set(SquareOf(0, h-1, w))
	bb.Set(SquareOf(w-1, h-1, w))
	bb.Set(SquareOf(4, h-1, w))
	return bb
}

// StandardChess builds and prepares classic FIDE chess on an 8x8 board.
func StandardChess() (*Descriptor, error) {
	d := baseDescriptor("standard", 8, 8)
	d.StartCastlingRights = allCastlingRights(8, 8)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

// Chess960 builds Fischer Random chess: identical rules to standard chess,
// a randomized back rank is the caller's responsibility (set via
// StartPlacement before Prepare, or by editing the prepared descriptor's
// StartPlacement and letting the FEN loader place pieces): the engine
// core treats it exactly like standard chess once the pieces are placed.
func Chess960() (*Descriptor, error) {
	d := baseDescriptor("chess960", 8, 8)
	d.Name = "chess960"
	d.StartCastlingRights = allCastlingRights(8, 8)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

// Atomic builds the Atomic variant: capturing explodes every non-pawn piece
// (including the capturer and both sides' leaders) in the 3x3 neighborhood
// of the capture square.
func Atomic() (*Descriptor, error) {
	d := baseDescriptor("atomic", 8, 8)
	d.StartCastlingRights = allCastlingRights(8, 8)
	d.Hooks.OnCapture = atomicExplosion
	d.Hooks.Terminal = atomicTerminal(d)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

// atomicExplosion implements atomic chess's blast rule: a capture detonates
// on the to-square, removing the capturing piece itself (regardless of
// type) plus every non-pawn piece in the surrounding 3x3 neighborhood.
// Pawns caught in the blast survive unless they are the capturing piece.
func atomicExplosion(pos BoardView, from, to Square, captured Piece) []Square {
	w, h := pos.Width(), pos.Height()
	cf, cr := to.FileOf(w), to.RankOf(w)
	cleared := []Square{to}
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			f, r := cf+df, cr+dr
			if f < 0 || f >= w || r < 0 || r >= h {
				continue
			}
			sq := SquareOf(f, r, w)
			p := pos.PieceAt(sq)
			if p.IsNone() || p.Type == Pawn {
				continue
			}
			cleared = append(cleared, sq)
		}
	}
	return cleared
}

func atomicTerminal(d *Descriptor) func(BoardView, []Move) (Outcome, bool) {
	return func(pos BoardView, legalMoves []Move) (Outcome, bool) {
		whiteKing := pos.KingSquare(White)
		blackKing := pos.KingSquare(Black)
		if whiteKing == SquareNone {
			return Outcome{Result: AtomicWin, Winner: BlackWins}, true
		}
		if blackKing == SquareNone {
			return Outcome{Result: AtomicWin, Winner: WhiteWins}, true
		}
		return standardTerminal(pos, legalMoves)
	}
}

func standardTerminal(pos BoardView, legalMoves []Move) (Outcome, bool) {
	if len(legalMoves) > 0 {
		return Outcome{}, false
	}
	us := pos.SideToMove()
	if pos.IsAttacked(pos.KingSquare(us), us.Opponent()) {
		winner := WhiteWins
		if us == White {
			winner = BlackWins
		}
		return Outcome{Result: Checkmate, Winner: winner}, true
	}
	return Outcome{Result: Stalemate, Winner: Draw}, true
}

// Antichess builds the Antichess (losing chess) variant: captures are
// mandatory when available, there is no check/checkmate, and a player
// with no legal moves (including having been captured down to nothing)
// wins.
func Antichess() (*Descriptor, error) {
	d := baseDescriptor("antichess", 8, 8)
	for _, pr := range d.Pieces {
		if pr.IsLeader {
			pr.IsLeader = false
			pr.IsAntiKing = true
		}
	}
	d.Hooks.LegalFilter = antichessLegalFilter
	d.Hooks.Terminal = antichessTerminal
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

func antichessLegalFilter(pos BoardView, moves []Move) []Move {
	hasCapture := false
	for _, m := range moves {
		if !pos.PieceAt(m.To()).IsNone() || m.MoveType() == EnPassant {
			hasCapture = true
			break
		}
	}
	if !hasCapture {
		return moves
	}
	out := moves[:0:0]
	for _, m := range moves {
		if !pos.PieceAt(m.To()).IsNone() || m.MoveType() == EnPassant {
			out = append(out, m)
		}
	}
	return out
}

func antichessTerminal(pos BoardView, legalMoves []Move) (Outcome, bool) {
	us := pos.SideToMove()
	ourPieces := pos.Occupancy(us)
	if ourPieces.IsEmpty() || len(legalMoves) == 0 {
		winner := WhiteWins
		if us == White {
			winner = BlackWins
		}
		return Outcome{Result: AntichessWin, Winner: winner}, true
	}
	return Outcome{}, false
}

// Horde builds the Horde variant: White has a mass of pawns and no leader
// (cannot be checkmated), Black has a standard army; Black wins by
// checkmating White's king (absent); in practice White loses when it has
// no pieces left, Black loses normally by checkmate.
func Horde() (*Descriptor, error) {
	w, h := 8, 8
	d := baseDescriptor("horde", w, h)
	var placement []PlacedPiece
	for _, pp := range standardStartPlacement(w, h) {
		if pp.Piece.Color == Black {
			placement = append(placement, pp)
		}
	}
	for f := 0; f < w; f++ {
		for r := 0; r < 4; r++ {
			placement = append(placement, PlacedPiece{Square: SquareOf(f, r, w), Piece: MakePiece(White, Pawn)})
		}
	}
	d.StartPlacement = placement
	d.Hooks.Terminal = hordeTerminal
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

func hordeTerminal(pos BoardView, legalMoves []Move) (Outcome, bool) {
	if pos.Occupancy(White).IsEmpty() {
		return Outcome{Result: InsufficientMaterial, Winner: BlackWins}, true
	}
	return standardTerminal(pos, legalMoves)
}

// RacingKings builds the Racing Kings variant: the first side to march its
// king to the last rank wins. Legality is standard chess's: a move may not
// leave the mover's own king attacked, and moves that give check are
// generated and played like any other (nothing forbids giving check).
func RacingKings() (*Descriptor, error) {
	w, h := 8, 8
	d := baseDescriptor("racingkings", w, h)
	goal := rankMask(w, h, h-1)
	d.Pieces[King].WinOnSquare = goal
	d.StartPlacement = racingKingsPlacement(w, h)
	// spec.md's MakeResult enum has no dedicated "reached the goal rank"
	// flag distinct from king-of-the-hill's "reached the center"; both are
	// "king stepped onto a WinOnSquare mask", so Racing Kings reuses the
	// KingOfTheHill result kind; the winner/outcome semantics are identical,
	// only the mask differs.
	d.Hooks.Terminal = winOnSquareTerminal(goal, KingOfTheHill)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

func racingKingsPlacement(w, h int) []PlacedPiece {
	row1 := []PieceType{King, Bishop, Bishop, Rook}
	row2 := []PieceType{Queen, Knight, Knight, Rook}
	var out []PlacedPiece
	for i, pt := range row1 {
		out = append(out, PlacedPiece{Square: SquareOf(i, 0, w), Piece: MakePiece(White, pt)})
		out = append(out, PlacedPiece{Square: SquareOf(i, 1, w), Piece: MakePiece(Black, pt)})
	}
	for i, pt := range row2 {
		out = append(out, PlacedPiece{Square: SquareOf(i+4, 0, w), Piece: MakePiece(White, pt)})
		out = append(out, PlacedPiece{Square: SquareOf(i+4, 1, w), Piece: MakePiece(Black, pt)})
	}
	return out
}

// KingOfTheHill builds the King of the Hill variant: reaching any of the
// four center squares with the king wins immediately, otherwise identical
// to standard chess.
func KingOfTheHill() (*Descriptor, error) {
	w, h := 8, 8
	d := baseDescriptor("kingofthehill", w, h)
	d.StartCastlingRights = allCastlingRights(w, h)
	var hill BB256
	hill.Set(SquareOf(w/2-1, h/2-1, w))
	hill.Set(SquareOf(w/2, h/2-1, w))
	hill.Set(SquareOf(w/2-1, h/2, w))
	hill.Set(SquareOf(w/2, h/2, w))
	d.Pieces[King].WinOnSquare = hill
	d.Hooks.Terminal = winOnSquareTerminal(hill, KingOfTheHill)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

// winOnSquareTerminal builds a Terminal hook that declares an immediate win
// for whichever side has a king sitting on goal, tagging the Outcome with
// result (both KotH and Racing Kings pass KingOfTheHill).
func winOnSquareTerminal(goal BB256, result ResultKind) func(BoardView, []Move) (Outcome, bool) {
	return func(pos BoardView, legalMoves []Move) (Outcome, bool) {
		for _, c := range []Color{White, Black} {
			ksq := pos.KingSquare(c)
			if ksq != SquareNone && goal.Test(ksq) {
				winner := WhiteWins
				if c == Black {
					winner = BlackWins
				}
				return Outcome{Result: result, Winner: winner}, true
			}
		}
		return standardTerminal(pos, legalMoves)
	}
}

// NCheck builds an N-check variant (limit=3 is "Three-check"): delivering
// `limit` checks to the opponent wins outright, otherwise identical to
// standard chess.
func NCheck(limit int) (*Descriptor, error) {
	w, h := 8, 8
	d := baseDescriptor("ncheck", w, h)
	d.StartCastlingRights = allCastlingRights(w, h)
	d.CheckCounting = true
	d.CheckLimit = limit
	d.Hooks.Terminal = nCheckTerminal(limit)
	if err := d.Prepare(); err != nil {
		return nil, err
	}
	return d, nil
}

// ThreeCheck is NCheck(3), spelled out since it is the named variant in
// spec.md's scenario list.
func ThreeCheck() (*Descriptor, error) {
	d, err := NCheck(3)
	if err != nil {
		return nil, err
	}
	d.Name = "threecheck"
	return d, nil
}

func nCheckTerminal(limit int) func(BoardView, []Move) (Outcome, bool) {
	return func(pos BoardView, legalMoves []Move) (Outcome, bool) {
		for _, c := range []Color{White, Black} {
			if pos.CheckCount(c) >= limit {
				winner := WhiteWins
				if c == White {
					winner = BlackWins // the side that HAS been checked limit times loses
				}
				return Outcome{Result: NCheck, Winner: winner}, true
			}
		}
		return standardTerminal(pos, legalMoves)
	}
}

// Presets maps every built-in variant's name (as used in config files and
// the engine's New) to its builder function.
var Presets = map[string]func() (*Descriptor, error){
	"standard":      StandardChess,
	"chess960":      Chess960,
	"atomic":        Atomic,
	"antichess":     Antichess,
	"horde":         Horde,
	"racingkings":   RacingKings,
	"kingofthehill": KingOfTheHill,
	"threecheck":    ThreeCheck,
}

// ByName looks up a preset builder by name, building a fresh Descriptor.
func ByName(name string) (*Descriptor, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("variant: unknown preset %q", name)
	}
	return build()
}
