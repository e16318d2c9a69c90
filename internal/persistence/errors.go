package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrInvalidSnapshot is returned when a snapshot fails structural validation.
	ErrInvalidSnapshot = errors.New("persistence: invalid snapshot")
	// ErrEmptyStore is returned when a store holds no snapshot to load.
	ErrEmptyStore = errors.New("persistence: store is empty")
)
