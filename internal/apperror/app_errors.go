package apperror

import "errors"

// ErrInvalidMove is the single rejection kind the board reports: every
// refused placement wraps it, with the narrower sentinels below carried
// alongside for callers that care which precondition failed.
var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrGameConcluded = errors.New("game has already concluded")

	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
)
