package state

import "errors"

var (
	// ErrStage indicates a cache entry was computed before the state
	// reached its required realization stage. Programmer error.
	ErrStage = errors.New("state: stage not realized")

	// ErrCacheInvalid indicates a cache entry was read without a prior
	// successful EnsureLazy.
	ErrCacheInvalid = errors.New("state: cache entry not valid")
)
