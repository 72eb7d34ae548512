package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	// Callers of get-or-create operations should treat it as the expected
	// outcome of losing a benign race and retry.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a write violates a check
	// constraint, such as a negative room capacity or an unknown role tag.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a write references a person or
	// room that does not exist.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
