package variant

import (
	"fmt"

	"github.com/fkopp/vchess/internal/attacks"
	. "github.com/fkopp/vchess/internal/types"
)

// PlacedPiece is one starting-position entry.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// Descriptor is the immutable, shared description of one chess-like game:
// board geometry, piece dictionary, starting setup and variant hooks. A
// Descriptor is built once (by a preset in presets.go, or by an embedder
// composing one by hand) and then Prepared before use.
type Descriptor struct {
	Name   string
	Width  int
	Height int
	Walls  BB256

	Pieces map[PieceType]*PieceRule

	// Forward is the per-color "pawn forward" direction, used to orient
	// DoubleJumpDelta and promotion-rank geometry for Black by mirroring
	// White's.
	Forward map[Color]Direction

	StartPlacement      []PlacedPiece
	StartCastlingRights BB256 // squares of pieces that may still castle
	StartSideToMove     Color

	CheckCounting bool
	CheckLimit    int

	Hooks Hooks

	// Tables holds one attack-table set per color, built by Prepare and
	// shared read-only by every Position created from this Descriptor.
	// Two sets are needed (rather than one shared set) because forward-only
	// pieces like pawns move/capture in opposite absolute directions for
	// White and Black; symmetric pieces simply get two identical tables.
	Tables map[Color]*attacks.Tables
}

// TablesFor returns the attack tables for color c.
func (d *Descriptor) TablesFor(c Color) *attacks.Tables {
	return d.Tables[c]
}

// BoardGeom returns the attacks package's geometry view of this descriptor.
func (d *Descriptor) BoardGeom() attacks.BoardGeom {
	return attacks.BoardGeom{Width: d.Width, Height: d.Height, Walls: d.Walls}
}

// Squares returns the number of addressable squares on the board.
func (d *Descriptor) Squares() int { return d.Width * d.Height }

// Prepare builds attack tables and generates material values and
// piece-square tables for every piece type. Must be called exactly once
// before the descriptor is used to construct a Position; presets call it
// themselves.
func (d *Descriptor) Prepare() error {
	if d.Width < 2 || d.Width > 16 || d.Height < 2 || d.Height > 16 {
		return fmt.Errorf("variant %q: board size %dx%d out of [2,16] range", d.Name, d.Width, d.Height)
	}
	whiteGeom := make(map[PieceType]attacks.PieceGeometry, len(d.Pieces))
	blackGeom := make(map[PieceType]attacks.PieceGeometry, len(d.Pieces))
	for pt, pr := range d.Pieces {
		whiteGeom[pt] = pr.geometry()
		blackGeom[pt] = pr.mirroredGeometry()
	}
	d.Tables = map[Color]*attacks.Tables{
		White: attacks.Build(d.BoardGeom(), whiteGeom),
		Black: attacks.Build(d.BoardGeom(), blackGeom),
	}
	generatePieceValues(d)
	return nil
}

func (d *Descriptor) OnCapture(pos BoardView, from, to Square, captured Piece) []Square {
	return d.Hooks.onCapture(pos, from, to, captured)
}

func (d *Descriptor) Terminal(pos BoardView, legalMoves []Move) (Outcome, bool) {
	return d.Hooks.terminal(pos, legalMoves)
}

func (d *Descriptor) LegalFilter(pos BoardView, moves []Move) []Move {
	return d.Hooks.legalFilter(pos, moves)
}

func (d *Descriptor) EvalBonus(pos BoardView) Value {
	return d.Hooks.evalBonus(pos)
}
