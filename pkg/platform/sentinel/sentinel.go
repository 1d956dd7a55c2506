package sentinel

import "errors"

// Sentinel errors for store facts. Stores return these (optionally wrapped)
// and services decide what they mean for the caller:
//   - ErrNotFound: no record with the requested identity or key
//   - ErrAlreadyUsed: a unique key (country name) is already taken
//
// For bad input, use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
)
