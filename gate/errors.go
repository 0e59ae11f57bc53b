package gate

import "errors"

// Sentinel errors returned by Gate.Authorize and table loading.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoRule       = errors.New("no rule defined for role/resource/action")
	ErrInvalidTable = errors.New("invalid permission table")
)
