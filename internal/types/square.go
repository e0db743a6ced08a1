package types

import "fmt"

// Square is an index into a rectangular board of width W and height H
// (2 <= W,H <= 16), numbered 0..W*H-1 in row-major order starting at the
// bottom-left corner (file a, rank 1). Unlike a fixed 8x8 engine, geometry
// helpers take the board width explicitly since it varies per variant.
type Square int16

// SquareNone is the sentinel for "no square" (e.g. absent en-passant target).
const SquareNone Square = -1

// MaxBoardSquares is the largest supported board: 16x16.
const MaxBoardSquares = 16 * 16

// SquareOf returns the square at (file, rank) on a board of the given width.
func SquareOf(file, rank, width int) Square {
	return Square(rank*width + file)
}

// FileOf returns the 0-based file of sq on a board of the given width.
func (sq Square) FileOf(width int) int {
	return int(sq) % width
}

// RankOf returns the 0-based rank of sq on a board of the given width.
func (sq Square) RankOf(width int) int {
	return int(sq) / width
}

// IsValid reports whether sq addresses a square on a width x height board.
func (sq Square) IsValid(width, height int) bool {
	return sq >= 0 && int(sq) < width*height
}

// StringFor renders sq in algebraic notation given the board width.
func (sq Square) StringFor(width int) string {
	if sq == SquareNone {
		return "-"
	}
	f := sq.FileOf(width)
	r := sq.RankOf(width)
	return fmt.Sprintf("%c%d", 'a'+f, r+1)
}
