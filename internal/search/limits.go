package search

import (
	"time"

	"github.com/fkopp/vchess/internal/moveslice"
	. "github.com/fkopp/vchess/internal/types"
)

// Limits controls how a single search is bounded: depth, node count, wall
// clock, or "search until told to stop". A caller fills in whichever
// fields apply and leaves the rest zero.
type Limits struct {
	Infinite bool
	Depth    int
	Nodes    uint64
	Moves    moveslice.MoveSlice // restrict the root to these moves only

	TimeControl bool
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration
	MovesToGo   int
}

// NewLimits returns an empty Limits, equivalent to Infinite search until
// Stop is called.
func NewLimits() *Limits {
	return &Limits{}
}

// timeBudget estimates how long to spend on this move given us's clock,
// following the teacher's simple "remaining time over an estimated number
// of moves left" allocation rather than anything adaptive.
func (l *Limits) timeBudget(us Color) time.Duration {
	if l.MoveTime > 0 {
		return l.MoveTime
	}
	if !l.TimeControl {
		return 0
	}
	var remaining, inc time.Duration
	if us == White {
		remaining, inc = l.WhiteTime, l.WhiteInc
	} else {
		remaining, inc = l.BlackTime, l.BlackInc
	}
	movesToGo := l.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	budget := remaining/time.Duration(movesToGo) + inc
	// never plan to use more than half the clock on one move
	if budget > remaining/2 {
		budget = remaining / 2
	}
	return budget
}
