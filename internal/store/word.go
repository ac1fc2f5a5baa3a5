package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// WordStore defines the read-mostly interface onto the user's word catalog.
// The catalog is owned by an external collaborator; this core lists eligible
// words for batches and flips the learned flag on enrollment.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListUnlearned returns the user's not-yet-learned words, optionally
	// filtered by source language, in creation order, capped at limit.
	ListUnlearned(ctx context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error)

	// ListLearned returns the user's learned words, optionally filtered by
	// source language, in creation order, capped at limit. Learned words are
	// the candidates for pronunciation practice.
	ListLearned(ctx context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error)

	// MarkLearned sets the learned flag on a word.
	// Returns ErrWordNotFound if the word does not exist.
	MarkLearned(ctx context.Context, id uuid.UUID) error

	// WithTx returns a WordStore bound to the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}
