package variant

import (
	. "github.com/fkopp/vchess/internal/types"
)

// BoardView is the narrow read surface Hooks are given. It is an interface
// (not a concrete *position.Position) so this package never imports
// internal/position — position imports variant, not the other way around.
type BoardView interface {
	Width() int
	Height() int
	PieceAt(sq Square) Piece
	Occupancy(c Color) BB256
	AllOccupancy() BB256
	SideToMove() Color
	KingSquare(c Color) Square
	CheckCount(c Color) int
	IsAttacked(sq Square, by Color) bool
}

// ResultKind enumerates every way a game can end, per spec.md §6 MakeResult.
type ResultKind uint8

const (
	NoResult ResultKind = iota
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

// Winner identifies who won, or that the game drew.
type Winner uint8

const (
	NoWinner Winner = iota
	WhiteWins
	BlackWins
	Draw
)

// Outcome is the result of a terminal-detection hook call.
type Outcome struct {
	Result ResultKind
	Winner Winner
}

// Hooks is the small, closed set of variant-specific extension points
// called from make/unmake, legality, evaluation and terminal detection
// (spec.md §4.9). All four are optional; a nil field means "this variant
// has no special behaviour here" and callers must treat that as a no-op /
// always-false, never as an error — hooks are required to be total
// functions (spec.md §7).
type Hooks struct {
	// OnCapture runs after a capture is made on the board and returns the
	// squares that must be cleared (e.g. atomic explosion's 3x3
	// neighborhood). The capture's own to-square, where the capturing piece
	// now stands, is cleared only if the hook lists it.
	OnCapture func(pos BoardView, from, to Square, captured Piece) []Square

	// Terminal reports whether pos is a terminal position given the
	// already-computed legal move list (empty when checkmate/stalemate is
	// being considered) and, if so, how the game ended.
	Terminal func(pos BoardView, legalMoves []Move) (Outcome, bool)

	// LegalFilter narrows a pseudo-legal, check-filtered move list further
	// (antichess: drop every non-capture when any capture exists).
	LegalFilter func(pos BoardView, moves []Move) []Move

	// EvalBonus adds a variant-specific centipawn term to the evaluator's
	// leaf score, relative to the side to move.
	EvalBonus func(pos BoardView) Value
}

func (h Hooks) onCapture(pos BoardView, from, to Square, captured Piece) []Square {
	if h.OnCapture == nil {
		return nil
	}
	return h.OnCapture(pos, from, to, captured)
}

func (h Hooks) terminal(pos BoardView, legalMoves []Move) (Outcome, bool) {
	if h.Terminal == nil {
		return Outcome{}, false
	}
	return h.Terminal(pos, legalMoves)
}

func (h Hooks) legalFilter(pos BoardView, moves []Move) []Move {
	if h.LegalFilter == nil {
		return moves
	}
	return h.LegalFilter(pos, moves)
}

func (h Hooks) evalBonus(pos BoardView) Value {
	if h.EvalBonus == nil {
		return ValueZero
	}
	return h.EvalBonus(pos)
}
