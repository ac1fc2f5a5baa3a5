package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// SessionStore defines the interface for session state persistence.
// State is keyed by (user, exercise kind); at most one session exists per
// pair. Each (user, kind) pair is logically single-writer, but saves are
// still guarded by an optimistic version check so a redelivered transition
// cannot silently overwrite a newer state.
type SessionStore interface {
	// Get retrieves the session state for the (user, kind) pair.
	// Returns ErrSessionNotFound if no session is stored.
	Get(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) (*domain.SessionState, error)

	// Save persists the session state. A state with Version 0 is a fresh
	// start and unconditionally supersedes whatever is stored; otherwise the
	// stored version must match state.Version or ErrSessionConflict is
	// returned. On success the state's Version is bumped in place.
	Save(ctx context.Context, state *domain.SessionState) error

	// Delete removes the session state for the (user, kind) pair.
	// Deleting a missing session is not an error.
	Delete(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) error
}
