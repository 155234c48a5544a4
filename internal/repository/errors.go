package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	// or a guarded update finds the row already changed.
	ErrConflict = errors.New("conflict")
)
