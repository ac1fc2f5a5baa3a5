package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a second review for the same word).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrSessionConflict is returned when a session save carries a stale
	// version, meaning another transition committed since the state was read.
	ErrSessionConflict = errors.New("session state version conflict")

	// Entity-specific "not found" errors

	// ErrWordNotFound indicates that the requested catalog word does not exist.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrReviewNotFound indicates that the requested review does not exist.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// ErrSessionNotFound indicates that no session state is stored for the
	// (user, kind) pair.
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrReviewExists indicates that a review already exists for the word.
	ErrReviewExists = fmt.Errorf("%w: review", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
