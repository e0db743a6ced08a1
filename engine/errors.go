package engine

import "errors"

// ErrFenParse is returned when LoadFEN is given a string that doesn't
// parse as a valid position for the engine's variant.
var ErrFenParse = errors.New("engine: invalid FEN")

// ErrInvalidPosition is returned by Undo when there is no move to take
// back.
var ErrInvalidPosition = errors.New("engine: no move to undo")

// ErrIllegalMove is returned by MakeMove/MakeMoveStr when the move is not
// in the current position's legal move list.
var ErrIllegalMove = errors.New("engine: illegal move")

// ErrEngineBusy is returned when a search is requested while one is
// already running.
var ErrEngineBusy = errors.New("engine: search already in progress")
