// Package engine is the one surface the rest of the world is meant to call:
// a single mutable Engine handle wrapping a loaded variant, the current
// Position, and a Lazy SMP search, exposing FEN load/store, legal move
// enumeration, make/undo and best-move search behind typed errors instead
// of panics.
package engine

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/movegen"
	"github.com/fkopp/vchess/internal/position"
	"github.com/fkopp/vchess/internal/search"
	. "github.com/fkopp/vchess/internal/types"
	"github.com/fkopp/vchess/internal/variant"
)

// MoveInfo is the wire form of a move: 0-indexed (file, rank) pairs plus an
// optional promotion piece letter (lowercase, e.g. 'q'), matching the move
// structure callers outside this module exchange with the engine.
type MoveInfo struct {
	FromFile, FromRank int
	ToFile, ToRank     int
	Promotion          rune // 0 if none
}

// ResultFlag classifies how a move ended the game, Ok meaning it didn't.
type ResultFlag uint8

const (
	Ok ResultFlag = iota
	Checkmate
	Stalemate
	Repetition
	FiftyMove
	InsufficientMaterial
	AntichessWin
	KingOfTheHill
	NCheck
	AtomicWin
)

var resultKindToFlag = map[variant.ResultKind]ResultFlag{
	variant.Checkmate:            Checkmate,
	variant.Stalemate:            Stalemate,
	variant.InsufficientMaterial: InsufficientMaterial,
	variant.AntichessWin:         AntichessWin,
	variant.KingOfTheHill:        KingOfTheHill,
	variant.NCheck:               NCheck,
	variant.AtomicWin:            AtomicWin,
}

// MakeResult reports how MakeMove/MakeMoveStr left the game: Flag is Ok for
// a move that didn't end the game, Winner is meaningless when Flag is Ok,
// and Exploded lists every square atomic's chain-reaction cleared, the
// move's own destination first.
type MakeResult struct {
	Flag     ResultFlag
	Winner   variant.Winner
	Exploded []Square
}

// SearchResult is the move the search settled on, the score it assigned
// (centipawns, side-to-move relative), and the depth that result came from.
type SearchResult struct {
	Move  MoveInfo
	Score int
	Depth int
}

// StateDiff summarizes a position for callers that only need the facts that
// change move to move.
type StateDiff struct {
	FEN          string
	InCheck      bool
	PlayerToMove Color
}

// Engine bundles one loaded variant with its current position, move
// generator and searcher. Not safe for concurrent use by multiple
// goroutines beyond what Search itself already serializes (GetBestMove
// rejects a second concurrent call with ErrEngineBusy).
type Engine struct {
	desc     *variant.Descriptor
	pos      *position.Position
	gen      *movegen.Generator
	searcher *search.Search
}

// New builds an Engine for the named variant preset (see variant.Presets),
// starting from that variant's standard opening position.
func New(variantName string) (*Engine, error) {
	desc, err := variant.ByName(variantName)
	if err != nil {
		return nil, err
	}
	return &Engine{
		desc:     desc,
		pos:      position.NewFromStart(desc),
		gen:      movegen.New(),
		searcher: search.New(),
	}, nil
}

// LoadFEN replaces the current position with the one fen describes,
// leaving the previous position untouched on parse failure.
func (e *Engine) LoadFEN(fen string) error {
	pos, err := position.LoadFEN(e.desc, fen)
	if err != nil {
		return ErrFenParse
	}
	e.pos = pos
	return nil
}

// ToFEN renders the current position in this engine's FEN dialect.
func (e *Engine) ToFEN() string { return e.pos.ToFEN() }

// SetNumThreads clamps n into [1, runtime.NumCPU()] and applies it to the
// next GetBestMove/GetBestMoveTimeout call's Lazy SMP worker count.
func (e *Engine) SetNumThreads(n int) {
	if n < 1 {
		n = 1
	}
	if max := runtime.NumCPU(); n > max {
		n = max
	}
	config.Settings.Search.MaxThreads = n
}

// LegalMoves returns every legal move from the current position in wire
// form.
func (e *Engine) LegalMoves() []MoveInfo {
	moves := e.gen.GenerateLegal(e.pos, movegen.GenAll)
	w := e.desc.Width
	out := make([]MoveInfo, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		out = append(out, moveInfoOf(moves.At(i), w))
	}
	return out
}

func moveInfoOf(m Move, width int) MoveInfo {
	info := MoveInfo{
		FromFile: m.From().FileOf(width),
		FromRank: m.From().RankOf(width),
		ToFile:   m.To().FileOf(width),
		ToRank:   m.To().RankOf(width),
	}
	if m.MoveType() == Promotion {
		info.Promotion = promotionRune(m.PromotionType())
	}
	return info
}

func promotionRune(pt PieceType) rune {
	switch pt {
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	default:
		return 0
	}
}

// findMove looks for a legal move matching info, returning it and whether
// one was found.
func (e *Engine) findMove(info MoveInfo) (Move, bool) {
	moves := e.gen.GenerateLegal(e.pos, movegen.GenAll)
	w := e.desc.Width
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From().FileOf(w) != info.FromFile || m.From().RankOf(w) != info.FromRank {
			continue
		}
		if m.To().FileOf(w) != info.ToFile || m.To().RankOf(w) != info.ToRank {
			continue
		}
		if m.MoveType() == Promotion && promotionRune(m.PromotionType()) != info.Promotion {
			continue
		}
		return m.MoveOf(), true
	}
	return MoveNone, false
}

// findMoveStr looks up a legal move by its long-algebraic rendering (the
// same "e2e4"/"e7e8q" form Move.String produces), rather than parsing the
// string into fields itself.
func (e *Engine) findMoveStr(s string) (Move, bool) {
	moves := e.gen.GenerateLegal(e.pos, movegen.GenAll)
	w := e.desc.Width
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.MoveOf().String(w) == s {
			return m.MoveOf(), true
		}
	}
	return MoveNone, false
}

// MakeMove plays the move described by info if it is legal, reporting how
// the game ended (if it did).
func (e *Engine) MakeMove(info MoveInfo) (MakeResult, error) {
	m, ok := e.findMove(info)
	if !ok {
		return MakeResult{}, ErrIllegalMove
	}
	return e.applyMove(m), nil
}

// MakeMoveStr is MakeMove taking a long-algebraic string ("e2e4", "e7e8q")
// instead of a structured MoveInfo.
func (e *Engine) MakeMoveStr(s string) (MakeResult, error) {
	m, ok := e.findMoveStr(s)
	if !ok {
		return MakeResult{}, ErrIllegalMove
	}
	return e.applyMove(m), nil
}

func (e *Engine) applyMove(m Move) MakeResult {
	e.pos.DoMove(m)
	exploded := append([]Square(nil), e.pos.LastExplodedSquares()...)
	if e.pos.PieceAt(m.To()).IsNone() {
		// The blast also destroyed the capturing piece on its destination.
		exploded = append([]Square{m.To()}, exploded...)
	}

	result := MakeResult{Flag: Ok, Exploded: exploded}

	if e.pos.HalfMoveClock() >= 100 {
		result.Flag, result.Winner = FiftyMove, variant.Draw
		return result
	}
	if e.pos.IsRepetition(3) {
		result.Flag, result.Winner = Repetition, variant.Draw
		return result
	}

	moves := e.gen.GenerateLegal(e.pos, movegen.GenAll)
	if outcome, terminal := e.desc.Terminal(e.pos, []Move(*moves)); terminal {
		result.Flag = resultKindToFlag[outcome.Result]
		result.Winner = outcome.Winner
	}
	return result
}

// Undo reverts the most recent MakeMove/MakeMoveStr call.
func (e *Engine) Undo() error {
	if !e.pos.CanUndo() {
		return ErrInvalidPosition
	}
	e.pos.UndoMove()
	return nil
}

// GetBestMove runs a depth-limited search and returns its choice. Search
// never fails outright: per the fixed-depth contract, it returns the best
// move found at whatever depth it reached before the limit, or an error
// only when a search is already in flight.
func (e *Engine) GetBestMove(depth int) (SearchResult, error) {
	limits := search.NewLimits()
	limits.Depth = depth
	return e.runSearch(context.Background(), limits)
}

// GetBestMoveTimeout is GetBestMove bounded by wall-clock time instead of
// depth.
func (e *Engine) GetBestMoveTimeout(timeout time.Duration) (SearchResult, error) {
	limits := search.NewLimits()
	limits.MoveTime = timeout
	return e.runSearch(context.Background(), limits)
}

func (e *Engine) runSearch(ctx context.Context, limits *search.Limits) (SearchResult, error) {
	result, ok := e.searcher.GetBestMove(ctx, e.pos, limits)
	if !ok {
		return SearchResult{}, ErrEngineBusy
	}
	return SearchResult{
		Move:  moveInfoOf(result.BestMove, e.desc.Width),
		Score: int(result.Value),
		Depth: result.Depth,
	}, nil
}

// StateDiff summarizes the current position.
func (e *Engine) StateDiff() StateDiff {
	return StateDiff{
		FEN:          e.pos.ToFEN(),
		InCheck:      e.pos.InCheck(e.pos.SideToMove()),
		PlayerToMove: e.pos.SideToMove(),
	}
}
