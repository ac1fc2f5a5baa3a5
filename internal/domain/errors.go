// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidQuality is returned when a review quality rating is outside 1..5.
	ErrInvalidQuality = errors.New("quality must be between 1 and 5")

	// ErrInvalidRating is returned when a pronunciation rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidExerciseKind is returned when an exercise kind is not one of
	// learning, review, or pronunciation.
	ErrInvalidExerciseKind = errors.New("invalid exercise kind")

	// ErrEmptyText is returned when required text content is empty.
	ErrEmptyText = errors.New("text cannot be empty")
)
