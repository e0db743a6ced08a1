package search

import (
	"sync"
	"sync/atomic"

	"github.com/fkopp/vchess/internal/config"
	"github.com/fkopp/vchess/internal/position"
)

// runLazySMP spawns config.Settings.Search.MaxThreads-1 helper workers
// alongside the main worker, every one of them running its own
// independent iterativeDeepening call against its own cloned Position, all
// sharing one Search.tt. There is no work division: every worker searches
// the same root, and the shared table's replacement policy is what lets
// the deepest/most-recent result win, the "lazy" in Lazy SMP. Only the
// main worker's (id 0) result is authoritative; helpers exist purely to
// seed the shared table with deeper entries sooner.
func (s *Search) runLazySMP(pos *position.Position, limits *Limits) Result {
	numThreads := config.Settings.Search.MaxThreads
	if numThreads < 1 {
		numThreads = 1
	}

	var helpers sync.WaitGroup
	for id := 1; id < numThreads; id++ {
		helpers.Add(1)
		go func(id int) {
			defer helpers.Done()
			w := newWorker(id, s.tt, &s.stopFlag, &s.stats)
			s.iterativeDeepening(w, pos.Clone(), limits)
		}(id)
	}

	main := newWorker(0, s.tt, &s.stopFlag, &s.stats)
	result := s.iterativeDeepening(main, pos, limits)

	// the main worker reached its stopping condition; helpers have no
	// independent reason to keep searching once the authoritative result
	// is in hand.
	atomic.StoreInt32(&s.stopFlag, 1)
	helpers.Wait()
	return result
}
