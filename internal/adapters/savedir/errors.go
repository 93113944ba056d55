package savedir

import "errors"

// Sentinel kinds for folder lookups.
var (
	ErrProfileNotFound    = errors.New("user profile folder could not be found")
	ErrSavedGamesNotFound = errors.New("saved games folder could not be found")
)
