package repositories

import "errors"

// Error variables shared by the repositories.
var (
	// ErrNotFound is returned when no row matches both the id and the owner.
	// An existing row owned by someone else is indistinguishable from a
	// missing one.
	ErrNotFound = errors.New("record not found")
	// ErrUniqueViolation is returned when an insert hits a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")
)
