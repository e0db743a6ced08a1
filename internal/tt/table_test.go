package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/fkopp/vchess/internal/types"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := New(1)
	_, ok := table.Probe(0x1234)
	assert.False(t, ok)
}

func TestPutThenProbeRoundTrips(t *testing.T) {
	table := New(1)
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	table.Put(0xABCDEF, m, Value(123), 5, Exact)

	entry, ok := table.Probe(0xABCDEF)
	assert.True(t, ok)
	assert.Equal(t, m.MoveOf(), entry.Move)
	assert.Equal(t, Value(123), entry.Value)
	assert.Equal(t, 5, entry.Depth)
	assert.Equal(t, Exact, entry.Type)
}

func TestProbeWrongKeyMisses(t *testing.T) {
	table := New(1)
	m := CreateMove(Square(12), Square(28), Normal, PieceTypeNone)
	table.Put(0xAAAA, m, Value(1), 1, Exact)

	// A different key that happens to collide on the same slot (same low
	// bits as the mask) must not be reported as a hit: the XOR-trick key
	// check should reject it even though index() collides.
	_, ok := table.Probe(0xAAAA ^ 0xFF00000000000000)
	assert.False(t, ok)
}

func TestSameGenerationKeepsDeeperEntry(t *testing.T) {
	table := New(1)
	m1 := CreateMove(Square(0), Square(1), Normal, PieceTypeNone)
	m2 := CreateMove(Square(2), Square(3), Normal, PieceTypeNone)
	table.Put(0x77, m1, Value(10), 8, Exact)
	table.Put(0x77, m2, Value(20), 3, Exact)

	entry, ok := table.Probe(0x77)
	assert.True(t, ok)
	assert.Equal(t, m1.MoveOf(), entry.Move)
	assert.Equal(t, 8, entry.Depth)
}

func TestNewSearchAllowsShallowerReplacement(t *testing.T) {
	table := New(1)
	m1 := CreateMove(Square(0), Square(1), Normal, PieceTypeNone)
	m2 := CreateMove(Square(2), Square(3), Normal, PieceTypeNone)
	table.Put(0x77, m1, Value(10), 8, Exact)
	table.NewSearch()
	table.Put(0x77, m2, Value(20), 1, Exact)

	entry, ok := table.Probe(0x77)
	assert.True(t, ok)
	assert.Equal(t, m2.MoveOf(), entry.Move)
	assert.Equal(t, 1, entry.Depth)
}

func TestClearEmptiesTable(t *testing.T) {
	table := New(1)
	m := CreateMove(Square(0), Square(1), Normal, PieceTypeNone)
	table.Put(0x77, m, Value(10), 8, Exact)
	table.Clear()
	_, ok := table.Probe(0x77)
	assert.False(t, ok)
}

func TestSnapshotCountsActivity(t *testing.T) {
	table := New(1)
	m := CreateMove(Square(0), Square(1), Normal, PieceTypeNone)
	table.Put(0x77, m, Value(10), 8, Exact)
	table.Probe(0x77)
	table.Probe(0x88)

	snap := table.Snapshot()
	assert.Equal(t, uint64(1), snap.Puts)
	assert.Equal(t, uint64(2), snap.Probes)
	assert.Equal(t, uint64(1), snap.Hits)
	assert.Equal(t, uint64(1), snap.Misses)
}

func TestResizeToZeroDisablesTable(t *testing.T) {
	table := New(1)
	table.Resize(0)
	m := CreateMove(Square(0), Square(1), Normal, PieceTypeNone)
	table.Put(0x77, m, Value(10), 8, Exact)
	_, ok := table.Probe(0x77)
	assert.False(t, ok)
}
