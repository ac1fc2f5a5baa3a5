package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// DueFilter narrows a due-review query. A nil Language matches all languages.
type DueFilter struct {
	Language *domain.Language
}

// DueReview is a review joined with the catalog data needed to display it.
type DueReview struct {
	Review domain.Review
	Word   domain.Word
}

// ReviewStore defines the interface for review scheduling-state persistence.
type ReviewStore interface {
	// GetOrCreate returns the review for the given word, creating one with
	// default scheduling state if none exists. It is idempotent under
	// concurrent calls: the unique constraint on word_id is authoritative,
	// and a losing concurrent creator re-fetches the winner's row instead of
	// producing a duplicate.
	GetOrCreate(ctx context.Context, wordID uuid.UUID) (*domain.Review, error)

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// ListDue returns the user's reviews due at or before now, joined with
	// word display data, ordered by next_review_at ascending then creation
	// order, capped at limit. The ordering is stable across repeated calls
	// absent intervening writes.
	ListDue(ctx context.Context, userID uuid.UUID, filter DueFilter, limit int, now time.Time) ([]*DueReview, error)

	// CountDue counts the user's reviews due at or before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// Update overwrites the scheduling state of an existing review.
	// Returns ErrReviewNotFound if the review does not exist.
	Update(ctx context.Context, review *domain.Review) error

	// WithTx returns a ReviewStore bound to the provided transaction, so
	// multiple operations can share one transactional boundary.
	WithTx(tx *sql.Tx) ReviewStore
}

// ReviewLogStore defines the interface for the append-only review history.
type ReviewLogStore interface {
	// Append writes a new log entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *domain.ReviewLog) error

	// LatestQualityAverage returns the mean quality over the most recent log
	// entry of each given review. Earlier entries for the same review do not
	// count. Returns 0 for an empty id list.
	LatestQualityAverage(ctx context.Context, reviewIDs []uuid.UUID) (float64, error)

	// WithTx returns a ReviewLogStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
