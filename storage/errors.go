package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no record exists for a project id.
	ErrNotFound = errors.New("record not found")
)
