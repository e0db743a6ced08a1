// Package book holds a small in-memory table of known opening lines,
// keyed by Zobrist hash, modeled on the teacher's BookEntry/Successor
// structure but without any of its PGN/SAN/Simple file-format readers:
// lines are added programmatically (or generated by an embedder at
// startup) rather than parsed from a game database.
package book

import (
	"math/rand"

	"github.com/fkopp/vchess/internal/position"
	. "github.com/fkopp/vchess/internal/types"
)

// successor is one known reply from a book position, with how many times
// it was recorded (used to weight random move choice).
type successor struct {
	move  Move
	count int
}

// Book maps a position's Zobrist key to the moves known to be played from
// it. A Book is specific to one variant's Descriptor (its entries are only
// meaningful replayed against positions built from that Descriptor).
type Book struct {
	entries map[uint64][]successor
	rng     *rand.Rand
}

// New creates an empty book. seed fixes the random move choice for
// reproducible testing; pass time-derived entropy in production use.
func New(seed int64) *Book {
	return &Book{
		entries: make(map[uint64][]successor),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// AddLine replays moves from start (a fresh copy, left untouched) and
// records every prefix position's next move, incrementing the count if
// that move from that position was already known.
func (b *Book) AddLine(start *position.Position, moves []Move) {
	walker := start.Clone()
	for _, m := range moves {
		key := walker.ZobristKey()
		b.record(key, m.MoveOf())
		walker.DoMove(m)
	}
}

func (b *Book) record(key uint64, m Move) {
	for i, s := range b.entries[key] {
		if s.move.MoveOf() == m.MoveOf() {
			b.entries[key][i].count++
			return
		}
	}
	b.entries[key] = append(b.entries[key], successor{move: m, count: 1})
}

// Len returns the number of distinct positions the book has an entry for.
func (b *Book) Len() int { return len(b.entries) }

// Lookup returns a book move for pos's current Zobrist key, weighted
// randomly by how often each successor was recorded, and whether one was
// found at all.
func (b *Book) Lookup(pos *position.Position) (Move, bool) {
	succs := b.entries[pos.ZobristKey()]
	if len(succs) == 0 {
		return MoveNone, false
	}
	total := 0
	for _, s := range succs {
		total += s.count
	}
	pick := b.rng.Intn(total)
	for _, s := range succs {
		if pick < s.count {
			return s.move, true
		}
		pick -= s.count
	}
	return succs[len(succs)-1].move, true
}
