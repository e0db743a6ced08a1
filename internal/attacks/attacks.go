// Package attacks precomputes the jump and sliding attack tables used by
// move generation: jump masks for leaper pieces (knights, kings, custom
// fairy pieces) and ray/kindergarten-style sliding masks for rook/bishop/
// queen-like pieces, generalized to BB256 and to boards of arbitrary width
// and height (2..16). Tables are built once per loaded variant.Descriptor
// and are immutable and safely shared across search worker goroutines
// afterwards.
package attacks

import (
	. "github.com/fkopp/vchess/internal/types"
)

// Offset is a single (Δfile, Δrank) leaper jump, e.g. a knight's (1,2).
type Offset struct {
	DFile, DRank int
}

// PieceGeometry describes how one piece type moves, in the minimal terms
// the attack-table builder needs (the full rule set, including promotion
// and castling participation, lives in variant.PieceRule — kept separate so
// this package never has to import variant, which itself imports attacks).
type PieceGeometry struct {
	Jumps      []Offset
	SlideDirs  []Direction
	MaxSlide   int // 0 means unlimited (to board edge)
}

// BoardGeom is the geometric shape tables are built for.
type BoardGeom struct {
	Width, Height int
	Walls         BB256 // permanently empty/inaccessible squares
}

// squares returns the number of addressable squares on the board.
func (g BoardGeom) squares() int { return g.Width * g.Height }

func (g BoardGeom) onBoard(file, rank int) bool {
	return file >= 0 && file < g.Width && rank >= 0 && rank < g.Height
}

// Tables holds every precomputed attack/ray mask for one variant.
type Tables struct {
	Geom BoardGeom

	// rays[dir][sq] is the ray from sq to the board edge along dir,
	// exclusive of sq, ignoring walls (walls are handled like any other
	// occupant when probing blockers).
	rays [8][]BB256

	// jumpAttacks[pt][sq] is the jump-attack bitmask for piece type pt
	// starting at sq.
	jumpAttacks map[PieceType][]BB256

	// slideDirs[pt] are the directions piece type pt slides along, and
	// slideRay[pt][dir][sq] is that piece's (possibly distance-limited) ray,
	// which may be shorter than rays[dir][sq] when the piece has MaxSlide>0.
	slideDirs map[PieceType][]Direction
	slideRay  map[PieceType]map[Direction][]BB256
}

// Build precomputes all tables for a board geometry and a piece dictionary.
func Build(geom BoardGeom, pieces map[PieceType]PieceGeometry) *Tables {
	t := &Tables{
		Geom:        geom,
		jumpAttacks: make(map[PieceType][]BB256),
		slideDirs:   make(map[PieceType][]Direction),
		slideRay:    make(map[PieceType]map[Direction][]BB256),
	}
	n := geom.squares()
	for _, d := range Directions {
		t.rays[d] = buildRays(geom, d, n, 0)
	}
	for pt, pg := range pieces {
		t.jumpAttacks[pt] = buildJumps(geom, pg.Jumps, n)
		if len(pg.SlideDirs) > 0 {
			t.slideDirs[pt] = pg.SlideDirs
			perDir := make(map[Direction][]BB256, len(pg.SlideDirs))
			for _, d := range pg.SlideDirs {
				perDir[d] = buildRays(geom, d, n, pg.MaxSlide)
			}
			t.slideRay[pt] = perDir
		}
	}
	return t
}

func buildRays(geom BoardGeom, d Direction, n, maxDist int) []BB256 {
	out := make([]BB256, n)
	df, dr := d.DeltaFileRank()
	for sq := 0; sq < n; sq++ {
		file := sq % geom.Width
		rank := sq / geom.Width
		var ray BB256
		f, r := file+df, rank+dr
		steps := 0
		for geom.onBoard(f, r) {
			s := SquareOf(f, r, geom.Width)
			if !geom.Walls.Test(s) {
				ray.Set(s)
			} else {
				break
			}
			steps++
			if maxDist > 0 && steps >= maxDist {
				break
			}
			f += df
			r += dr
		}
		out[sq] = ray
	}
	return out
}

func buildJumps(geom BoardGeom, jumps []Offset, n int) []BB256 {
	out := make([]BB256, n)
	for sq := 0; sq < n; sq++ {
		file := sq % geom.Width
		rank := sq / geom.Width
		var bb BB256
		for _, j := range jumps {
			f, r := file+j.DFile, rank+j.DRank
			if geom.onBoard(f, r) {
				s := SquareOf(f, r, geom.Width)
				if !geom.Walls.Test(s) {
					bb.Set(s)
				}
			}
		}
		out[sq] = bb
	}
	return out
}

// JumpAttacksFor returns the jump-attack bitboard for pt from sq.
func (t *Tables) JumpAttacksFor(pt PieceType, sq Square) BB256 {
	tbl := t.jumpAttacks[pt]
	if tbl == nil || int(sq) >= len(tbl) {
		return BBEmpty
	}
	return tbl[sq]
}

// Ray returns the geometric ray from sq along dir, to the board edge,
// exclusive of sq and independent of any particular piece's MaxSlide.
func (t *Tables) Ray(dir Direction, sq Square) BB256 {
	tbl := t.rays[dir]
	if int(sq) >= len(tbl) {
		return BBEmpty
	}
	return tbl[sq]
}

// SlideDirections returns the directions piece type pt slides along.
func (t *Tables) SlideDirections(pt PieceType) []Direction {
	return t.slideDirs[pt]
}

// SlidingAttacks returns the reachable-and-blocker squares for a slider of
// type pt at sq along dir given the current occupancy, using the
// kindergarten-style "ray minus ray-from-nearest-blocker" trick generalized
// to BB256: the piece's ray is precomputed; at query time we find the
// nearest blocker along the ray (via Lsb for ascending directions, Msb for
// descending ones, per Direction.Ascending) and mask away the blocker's own
// geometric Ray, which both stops the slide at the first blocker and includes that
// blocker's square (so captures are produced for free — callers mask the
// result against enemy/empty occupancy afterwards to split captures from
// quiet moves).
func (t *Tables) SlidingAttacks(pt PieceType, dir Direction, sq Square, occupied BB256) BB256 {
	perDir := t.slideRay[pt]
	if perDir == nil {
		return BBEmpty
	}
	rayTbl := perDir[dir]
	if rayTbl == nil || int(sq) >= len(rayTbl) {
		return BBEmpty
	}
	ray := rayTbl[sq]
	blockers := ray.And(occupied)
	if blockers.IsEmpty() {
		return ray
	}
	var nearest Square
	if dir.Ascending() {
		nearest = blockers.Lsb()
	} else {
		nearest = blockers.Msb()
	}
	return ray.AndNot(t.Ray(dir, nearest))
}

// AllSlidingAttacks unions SlidingAttacks over every direction pt slides
// along — the form move generation actually calls.
func (t *Tables) AllSlidingAttacks(pt PieceType, sq Square, occupied BB256) BB256 {
	var acc BB256
	for _, d := range t.SlideDirections(pt) {
		acc = acc.Or(t.SlidingAttacks(pt, d, sq, occupied))
	}
	return acc
}
