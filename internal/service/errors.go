// Package service implements the application services over the store layer.
package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the orchestrator boundary. NotFound, Conflict
// and Validation errors are recoverable: the session state machine stays in
// its prior state and the user sees a notice, so a retry is safe.
// Anything else is treated as transient/IO and propagated.
var (
	// ErrNotFound is returned when a referenced review, word or session no
	// longer exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an action collides with existing state,
	// e.g. a duplicate enrollment or an action against an ended session.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when an action carries invalid data.
	ErrValidation = errors.New("validation failed")

	// Specific errors

	// ErrReviewNotFound indicates the referenced review does not exist.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// ErrWordNotFound indicates the referenced word does not exist.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrInvalidQuality indicates a quality rating outside 1..5.
	ErrInvalidQuality = fmt.Errorf("%w: quality must be between 1 and 5", ErrValidation)

	// ErrInvalidOutcome indicates an outcome action the current exercise kind
	// or phase does not accept.
	ErrInvalidOutcome = fmt.Errorf("%w: outcome not valid here", ErrValidation)

	// ErrNoCurrentItem indicates an outcome arrived while no item is current.
	ErrNoCurrentItem = fmt.Errorf("%w: no current item", ErrValidation)
)

// IsRecoverable reports whether the error belongs to the user-recoverable
// taxonomy (NotFound, Conflict, Validation) rather than transient/IO.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation)
}
