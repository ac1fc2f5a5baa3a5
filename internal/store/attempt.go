package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// AttemptStore defines the interface for the append-only pronunciation
// attempt history.
type AttemptStore interface {
	// Append writes a new attempt entry. Entries are never updated or deleted.
	Append(ctx context.Context, attempt *domain.PronunciationAttempt) error

	// RatingAverage returns the mean rating over the given attempt ids.
	// Every listed attempt counts, including retries of the same word.
	// Returns 0 for an empty id list.
	RatingAverage(ctx context.Context, attemptIDs []uuid.UUID) (float64, error)

	// WithTx returns an AttemptStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AttemptStore
}
