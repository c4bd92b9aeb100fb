package services

import "errors"

// Export service errors
var (
	// ErrNoBooks signals the caller-visible "nothing to export" condition.
	// No document is built and no file is written when it is returned.
	ErrNoBooks = errors.New("no books to export")

	// ErrGenreNotFound is returned when a genre filter matches nothing.
	ErrGenreNotFound = errors.New("genre not found")
)
