package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// ReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type ReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStore creates a new PostgreSQL implementation of the ReviewStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewReviewStore(db store.DBTX, log *slog.Logger) *ReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewStore{
		db:     db,
		logger: log.With(slog.String("component", "review_store")),
	}
}

// Ensure ReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*ReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &ReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

const reviewColumns = `id, word_id, easiness, interval, repetitions, next_review_at, last_reviewed_at, created_at`

// GetOrCreate implements store.ReviewStore.GetOrCreate
// It returns the existing review for the word or creates one with default
// scheduling state. The unique constraint on word_id is authoritative under
// concurrency: a losing creator's insert affects no rows and the winner's
// row is re-fetched.
func (s *ReviewStore) GetOrCreate(ctx context.Context, wordID uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.getByWordID(ctx, wordID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrReviewNotFound) {
		return nil, err
	}

	review, err := domain.NewReview(wordID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// ON CONFLICT DO NOTHING keeps a lost create race from raising an error,
	// which matters inside a transaction: a raised unique violation would
	// abort the enclosing transaction and make the re-fetch impossible.
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (word_id) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.WordID,
		review.Easiness,
		review.Interval,
		review.Repetitions,
		review.NextReviewAt,
		review.LastReviewedAt,
		review.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during review creation",
				slog.String("error", err.Error()),
				slog.String("word_id", wordID.String()))
			return nil, fmt.Errorf("%w: word with ID %s not found",
				store.ErrInvalidEntity, wordID)
		}

		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost a concurrent create race; the winner's row is the truth.
		log.Debug("concurrent review creation detected, re-fetching",
			slog.String("word_id", wordID.String()))
		return s.getByWordID(ctx, wordID)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("word_id", wordID.String()))
	return review, nil
}

// GetByID implements store.ReviewStore.GetByID
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *ReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1
	`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, err
	}

	return review, nil
}

// getByWordID fetches the review attached to a catalog word.
func (s *ReviewStore) getByWordID(ctx context.Context, wordID uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE word_id = $1
	`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, wordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewNotFound
		}
		return nil, err
	}

	return review, nil
}

// ListDue implements store.ReviewStore.ListDue
// It joins due reviews with word display data, ordered oldest-overdue first
// with creation order as a stable tiebreaker.
func (s *ReviewStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	filter store.DueFilter,
	limit int,
	now time.Time,
) ([]*store.DueReview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.word_id, r.easiness, r.interval, r.repetitions,
		       r.next_review_at, r.last_reviewed_at, r.created_at,
		       w.id, w.user_id, w.text, w.translation, w.phonetic,
		       w.example_sentence, w.language, w.learned, w.created_at
		FROM reviews r
		JOIN user_words w ON w.id = r.word_id
		WHERE w.user_id = $1
		  AND w.learned
		  AND r.next_review_at <= $2
	`
	args := []any{userID, now}

	if filter.Language != nil {
		query += ` AND w.language = $3`
		args = append(args, *filter.Language)
	}

	query += `
		ORDER BY r.next_review_at ASC, r.created_at ASC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var due []*store.DueReview
	for rows.Next() {
		var d store.DueReview
		err := rows.Scan(
			&d.Review.ID,
			&d.Review.WordID,
			&d.Review.Easiness,
			&d.Review.Interval,
			&d.Review.Repetitions,
			&d.Review.NextReviewAt,
			&d.Review.LastReviewedAt,
			&d.Review.CreatedAt,
			&d.Word.ID,
			&d.Word.UserID,
			&d.Word.Text,
			&d.Word.Translation,
			&d.Word.Phonetic,
			&d.Word.ExampleSentence,
			&d.Word.Language,
			&d.Word.Learned,
			&d.Word.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due review: %w", err)
		}
		due = append(due, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("listed due reviews",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(due)))
	return due, nil
}

// CountDue implements store.ReviewStore.CountDue
func (s *ReviewStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM reviews r
		JOIN user_words w ON w.id = r.word_id
		WHERE w.user_id = $1
		  AND w.learned
		  AND r.next_review_at <= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		log.Error("failed to count due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// Update implements store.ReviewStore.Update
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *ReviewStore) Update(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during update",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE reviews
		SET easiness = $2,
		    interval = $3,
		    repetitions = $4,
		    next_review_at = $5,
		    last_reviewed_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.Easiness,
		review.Interval,
		review.Repetitions,
		review.NextReviewAt,
		review.LastReviewedAt,
	)
	if err != nil {
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrReviewNotFound
	}

	log.Debug("review updated",
		slog.String("review_id", review.ID.String()),
		slog.Float64("easiness", review.Easiness),
		slog.Int("interval", review.Interval))
	return nil
}

// rowScanner covers *sql.Row for single-row scans.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.WordID,
		&review.Easiness,
		&review.Interval,
		&review.Repetitions,
		&review.NextReviewAt,
		&review.LastReviewedAt,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
