package search

import "sync/atomic"

// Statistics accumulates counters over one GetBestMove call, read by the
// UCI/engine layer for "info" lines. Every counter is atomic because Lazy
// SMP workers update the same Statistics concurrently.
type Statistics struct {
	nodes          uint64
	leafNodes      uint64
	ttHits         uint64
	ttCuts         uint64
	nullMoveCuts   uint64
	betaCuts       uint64
	futilityPrunes uint64
	lmrReductions  uint64
}

func (s *Statistics) incNodes()          { atomic.AddUint64(&s.nodes, 1) }
func (s *Statistics) incLeafNodes()      { atomic.AddUint64(&s.leafNodes, 1) }
func (s *Statistics) incTTHits()         { atomic.AddUint64(&s.ttHits, 1) }
func (s *Statistics) incTTCuts()         { atomic.AddUint64(&s.ttCuts, 1) }
func (s *Statistics) incNullMoveCuts()   { atomic.AddUint64(&s.nullMoveCuts, 1) }
func (s *Statistics) incBetaCuts()       { atomic.AddUint64(&s.betaCuts, 1) }
func (s *Statistics) incFutilityPrunes() { atomic.AddUint64(&s.futilityPrunes, 1) }
func (s *Statistics) incLmrReductions()  { atomic.AddUint64(&s.lmrReductions, 1) }

// Nodes returns the total node count visited so far.
func (s *Statistics) Nodes() uint64 { return atomic.LoadUint64(&s.nodes) }

// Snapshot is a point-in-time, non-atomic copy for reporting.
type StatSnapshot struct {
	Nodes, LeafNodes, TTHits, TTCuts, NullMoveCuts, BetaCuts, FutilityPrunes, LmrReductions uint64
}

// Snapshot copies every counter out for display.
func (s *Statistics) Snapshot() StatSnapshot {
	return StatSnapshot{
		Nodes:          atomic.LoadUint64(&s.nodes),
		LeafNodes:      atomic.LoadUint64(&s.leafNodes),
		TTHits:         atomic.LoadUint64(&s.ttHits),
		TTCuts:         atomic.LoadUint64(&s.ttCuts),
		NullMoveCuts:   atomic.LoadUint64(&s.nullMoveCuts),
		BetaCuts:       atomic.LoadUint64(&s.betaCuts),
		FutilityPrunes: atomic.LoadUint64(&s.futilityPrunes),
		LmrReductions:  atomic.LoadUint64(&s.lmrReductions),
	}
}

// Reset zeroes every counter, called at the start of a new GetBestMove.
func (s *Statistics) Reset() { *s = Statistics{} }
