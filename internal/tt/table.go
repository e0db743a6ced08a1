// Package tt implements a lockless transposition table shared by every
// Lazy SMP search worker. Unlike a table guarded by a mutex (the shape the
// distilled spec's teacher reference uses, and explicitly documents as
// NOT thread-safe), every slot here is two machine words updated with
// atomic loads/stores and the classic "XOR trick": the stored key is
// hash^data rather than hash itself, so a probe that reads a key and a
// data word torn across two different concurrent writers almost certainly
// fails the hash^data==probeHash check and is treated as a miss rather
// than as corrupted data. No locks, no false sharing beyond the slot
// itself, and workers never block each other.
package tt

import (
	"math/bits"
	"sync/atomic"

	"github.com/fkopp/vchess/internal/util"
	. "github.com/fkopp/vchess/internal/types"
)

// entrySize is the size in bytes of one slot (two uint64 words).
const entrySize = 16

// MaxSizeMB bounds how large a table callers may request.
const MaxSizeMB = 65_536

type slot struct {
	storedKey uint64 // hash ^ data
	data      uint64
}

// Table is a fixed-capacity, power-of-two-sized hash table of slots.
type Table struct {
	slots       []slot
	mask        uint64
	generation  uint8
	stats       Stats
}

// Stats counts table activity, read with Snapshot (a stats struct with
// plain, non-atomic counters would race under Lazy SMP, so every counter
// here is a dedicated atomic word).
type Stats struct {
	probes     uint64
	hits       uint64
	misses     uint64
	puts       uint64
	collisions uint64
}

// Snapshot is a point-in-time copy of Stats for reporting.
type Snapshot struct {
	Probes, Hits, Misses, Puts, Collisions uint64
}

// New creates a table sized to the largest power-of-two slot count that
// fits within sizeMB megabytes.
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table to a new size, discarding all entries.
// Like the reference table this is generalized from, Resize must not be
// called concurrently with search.
func (t *Table) Resize(sizeMB int) {
	if sizeMB > MaxSizeMB {
		sizeMB = MaxSizeMB
	}
	if sizeMB < 1 {
		t.slots = nil
		t.mask = 0
		return
	}
	totalBytes := uint64(sizeMB) * 1024 * 1024
	numEntries := totalBytes / entrySize
	if numEntries == 0 {
		t.slots = nil
		t.mask = 0
		return
	}
	pow := 1 << uint(bits.Len64(numEntries)-1)
	t.slots = make([]slot, pow)
	t.mask = uint64(pow - 1)
}

// Clear zeroes every slot without reallocating.
func (t *Table) Clear() {
	for i := range t.slots {
		atomic.StoreUint64(&t.slots[i].storedKey, 0)
		atomic.StoreUint64(&t.slots[i].data, 0)
	}
	t.stats = Stats{}
}

// NewSearch bumps the generation counter so Put's replacement policy
// prefers entries from the search that's now starting over stale ones
// from a previous GetBestMove call at the same hash.
func (t *Table) NewSearch() {
	t.generation++
}

func (t *Table) index(key uint64) uint64 {
	if t.mask == 0 {
		return 0
	}
	return key & t.mask
}

// Probe looks up key and returns the decoded entry and whether it was
// found (and not corrupted by a concurrent torn write).
func (t *Table) Probe(key uint64) (Entry, bool) {
	atomic.AddUint64(&t.stats.probes, 1)
	if len(t.slots) == 0 {
		return Entry{}, false
	}
	s := &t.slots[t.index(key)]
	storedKey := atomic.LoadUint64(&s.storedKey)
	data := atomic.LoadUint64(&s.data)
	if storedKey^data != key {
		atomic.AddUint64(&t.stats.misses, 1)
		return Entry{}, false
	}
	atomic.AddUint64(&t.stats.hits, 1)
	return Entry{
		Move:  unpackMove(data),
		Value: unpackValue(data),
		Depth: unpackDepth(data),
		Type:  unpackVType(data),
		Age:   unpackAge(data),
	}, true
}

// Put stores an entry for key, replacing the current occupant unless it
// holds the same key, is from the current generation and was searched
// strictly deeper. An occupant with a different key is always replaced,
// whatever its depth or age.
func (t *Table) Put(key uint64, move Move, value Value, depth int, vt ValueType) {
	if len(t.slots) == 0 {
		return
	}
	atomic.AddUint64(&t.stats.puts, 1)
	s := &t.slots[t.index(key)]
	oldStoredKey := atomic.LoadUint64(&s.storedKey)
	oldData := atomic.LoadUint64(&s.data)
	if oldStoredKey^oldData == key {
		if unpackAge(oldData) == t.generation && unpackDepth(oldData) > depth {
			return
		}
	} else if oldStoredKey != 0 || oldData != 0 {
		atomic.AddUint64(&t.stats.collisions, 1)
	}
	data := packData(move, value, depth, vt, t.generation)
	atomic.StoreUint64(&s.data, data)
	atomic.StoreUint64(&s.storedKey, key^data)
}

// Hashfull returns the permille of slots occupied in generation-order
// samples, following the UCI "hashfull" convention.
func (t *Table) Hashfull() int {
	if len(t.slots) == 0 {
		return 0
	}
	sampleSize := 1000
	if sampleSize > len(t.slots) {
		sampleSize = len(t.slots)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if atomic.LoadUint64(&t.slots[i].storedKey) != 0 || atomic.LoadUint64(&t.slots[i].data) != 0 {
			used++
		}
	}
	return used * 1000 / sampleSize
}

// Snapshot returns a point-in-time copy of the table's usage counters.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		Probes:     atomic.LoadUint64(&t.stats.probes),
		Hits:       atomic.LoadUint64(&t.stats.hits),
		Misses:     atomic.LoadUint64(&t.stats.misses),
		Puts:       atomic.LoadUint64(&t.stats.puts),
		Collisions: atomic.LoadUint64(&t.stats.collisions),
	}
}

// MemStat returns util.MemStat()'s summary of the process's memory usage
// (it logs nothing itself), mirroring the teacher's post-resize
// util.MemStat() call.
func (t *Table) MemStat() string {
	return util.MemStat()
}
