package storage

import "errors"

// Storage errors for the ranking archive.
var (
	// ErrNotFound is returned when a requested run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a run that already
	// exists. Archived runs are append-only.
	ErrDuplicateKey = errors.New("duplicate key: ranking runs are append-only")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
