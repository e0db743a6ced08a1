package config

// searchConfiguration holds all tunables controlling the search algorithm.
type searchConfiguration struct {
	// Opening book
	UseBook bool

	// Quiescence
	UseQuiescence bool
	UseQSStandpat bool
	QSDeltaMargin int

	// Move ordering
	UsePVS    bool
	UseKiller bool

	// Transposition table
	UseTT  bool
	TTSize int // MB

	// Pruning
	UseMDP      bool
	UseNullMove bool
	NmpDepth    int
	NmpReduction int
	UseFP       bool
	FpDepth     int
	UseRFP      bool
	RfpDepth    int

	// Late move reductions
	UseLmr           bool
	LmrDepth         int
	LmrMovesSearched int

	// Lazy SMP
	MaxThreads int
}

func init() {
	Settings.Search.UseBook = false

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.QSDeltaMargin = 200

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true

	Settings.Search.UseTT = true
	Settings.Search.TTSize = 64

	Settings.Search.UseMDP = true
	Settings.Search.UseNullMove = true
	Settings.Search.NmpDepth = 3
	Settings.Search.NmpReduction = 2
	Settings.Search.UseFP = true
	Settings.Search.FpDepth = 6
	Settings.Search.UseRFP = true
	Settings.Search.RfpDepth = 3

	Settings.Search.UseLmr = true
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrMovesSearched = 3

	Settings.Search.MaxThreads = 1
}
