package position

import (
	"math/rand"
	"sync"

	"github.com/fkopp/vchess/internal/variant"
)

// zobristKeys is the set of random keys used to compute a Position's
// incremental hash. Keys must be identical for every Position built from
// the same variant.Descriptor (otherwise two equal positions would hash
// differently and the transposition table and repetition detection would
// be useless), so they are generated once per descriptor and cached by
// pointer identity — Descriptors are built once per variant load and
// shared from then on.
type zobristKeys struct {
	pieceSquare [2][]uint64 // [color][pieceType*squares+square]
	sideToMove  uint64
	castling    []uint64 // per square
	epFile      []uint64 // per file
	squares     int
}

var (
	zobristMu    sync.Mutex
	zobristCache = map[*variant.Descriptor]*zobristKeys{}
)

func zobristFor(d *variant.Descriptor) *zobristKeys {
	zobristMu.Lock()
	defer zobristMu.Unlock()
	if k, ok := zobristCache[d]; ok {
		return k
	}
	// Deterministic per-descriptor seed: spec.md requires determinism given
	// (position, seed, thread count, search budget); a fixed seed derived
	// from the board geometry keeps repeated loads of the same variant
	// bit-identical across processes.
	seed := int64(d.Width)*1_000_003 + int64(d.Height)*1009 + int64(len(d.Pieces))
	r := rand.New(rand.NewSource(seed))

	n := d.Squares()
	k := &zobristKeys{squares: n}
	for c := 0; c < 2; c++ {
		k.pieceSquare[c] = make([]uint64, 64*n) // headroom for up to 64 piece types
		for i := range k.pieceSquare[c] {
			k.pieceSquare[c][i] = r.Uint64()
		}
	}
	k.sideToMove = r.Uint64()
	k.castling = make([]uint64, n)
	for i := range k.castling {
		k.castling[i] = r.Uint64()
	}
	k.epFile = make([]uint64, d.Width)
	for i := range k.epFile {
		k.epFile[i] = r.Uint64()
	}

	zobristCache[d] = k
	return k
}
