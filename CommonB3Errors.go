package box3d

import "errors"

// Usage errors. These are returned to the caller, who can recover from them.
// Broken tree invariants are not errors, they panic (see Validate).
var (
	ErrLeafIndexOutOfRange = errors.New("leaf index is not in [0, leafCount)")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
	ErrInvalidWidth        = errors.New("tree width must be in [2, B3_maxChildren]")
	ErrInvalidWorkers      = errors.New("worker count must be positive")
	ErrInvalidBudget       = errors.New("refinement budget must not be negative")
	ErrInvalidFallback     = errors.New("streaming fallback group count must not be negative")
	ErrProxyNotFound       = errors.New("proxy id is not registered in the broad phase")
)
