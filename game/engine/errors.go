package engine

import "errors"

var (
	// ErrInsufficientStartCards means the requested seat count exceeds the
	// supply of distinct-suit Aces for the grid. A generation precondition:
	// the caller should adjust parameters, not retry blindly.
	ErrInsufficientStartCards = errors.New("not enough starting ace cards for requested seats")

	// ErrIllegalMove means a move attempt did not match the legal-move set
	// at apply time. Recoverable: re-fetch legal moves and retry.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPathFound means no walk of the exact step count exists. If the
	// destination came from the reachability solver this indicates an
	// engine bug and must be surfaced, never swallowed.
	ErrNoPathFound = errors.New("no path found")

	// ErrVersionConflict means a caller's expected state version did not
	// match the session, i.e. a concurrent move won the race.
	ErrVersionConflict = errors.New("state version conflict")

	// ErrGameFinished means a mutation was attempted on a finished session.
	ErrGameFinished = errors.New("game already finished")
)
