// Package moveslice provides a non-allocating, reusable container for
// Move values, shared by move generation and search so a deep search tree
// doesn't allocate a fresh slice per node.
package moveslice

import (
	"fmt"
	"strings"

	. "github.com/fkopp/vchess/internal/types"
)

// MoveSlice is a move list backed by a plain Go slice.
type MoveSlice []Move

// New creates an empty move slice with the given capacity pre-allocated.
func New(capacity int) *MoveSlice {
	ms := make(MoveSlice, 0, capacity)
	return &ms
}

// Len returns the number of moves currently stored.
func (ms *MoveSlice) Len() int { return len(*ms) }

// PushBack appends a move at the end of the slice.
func (ms *MoveSlice) PushBack(m Move) { *ms = append(*ms, m) }

// PopBack removes and returns the last move. Panics if empty.
func (ms *MoveSlice) PopBack() Move {
	n := len(*ms)
	if n == 0 {
		panic("moveslice: PopBack on empty slice")
	}
	m := (*ms)[n-1]
	*ms = (*ms)[:n-1]
	return m
}

// At returns the move at index i. Panics if out of bounds.
func (ms *MoveSlice) At(i int) Move { return (*ms)[i] }

// Set overwrites the move at index i. Panics if out of bounds.
func (ms *MoveSlice) Set(i int, m Move) { (*ms)[i] = m }

// Clear empties the slice while retaining its backing array, so the next
// generation round reuses the same allocation.
func (ms *MoveSlice) Clear() { *ms = (*ms)[:0] }

// Filter rebuilds the slice in place, keeping only moves for which keep
// returns true, reusing the underlying array.
func (ms *MoveSlice) Filter(keep func(m Move) bool) {
	b := (*ms)[:0]
	for _, m := range *ms {
		if keep(m) {
			b = append(b, m)
		}
	}
	*ms = b
}

// Clone returns an independent copy.
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make(MoveSlice, len(*ms))
	copy(dest, *ms)
	return &dest
}

// Sort orders moves from highest ordering value to lowest, using a stable
// insertion sort: generated move lists are short (a handful of captures
// plus a few dozen quiets), so insertion sort beats a general-purpose sort
// here.
func (ms *MoveSlice) Sort() {
	s := *ms
	for i := 1; i < len(s); i++ {
		tmp := s[i]
		j := i
		for j > 0 && s[j-1].ValueOf() < tmp.ValueOf() {
			s[j] = s[j-1]
			j--
		}
		s[j] = tmp
	}
}

// String renders the slice in long algebraic notation for a board of the
// given width, for logging.
func (ms *MoveSlice) String(width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MoveSlice[%d]{ ", len(*ms))
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String(width))
	}
	b.WriteString(" }")
	return b.String()
}
