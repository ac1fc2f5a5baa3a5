package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// AttemptStore implements the store.AttemptStore interface
// using a PostgreSQL database as the storage backend.
type AttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAttemptStore creates a new PostgreSQL implementation of the AttemptStore
// interface. If logger is nil, a default logger will be used.
func NewAttemptStore(db store.DBTX, log *slog.Logger) *AttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AttemptStore{
		db:     db,
		logger: log.With(slog.String("component", "attempt_store")),
	}
}

// Ensure AttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*AttemptStore)(nil)

// WithTx implements store.AttemptStore.WithTx
func (s *AttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &AttemptStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.AttemptStore.Append
func (s *AttemptStore) Append(ctx context.Context, attempt *domain.PronunciationAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed during append",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO pronunciation_attempts
			(id, user_id, word_id, expected_text, transcribed_text, language, rating, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.WordID,
		attempt.ExpectedText,
		attempt.TranscribedText,
		attempt.Language,
		attempt.Rating,
		attempt.Feedback,
		attempt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate attempt id during append",
				slog.String("error", err.Error()),
				slog.String("attempt_id", attempt.ID.String()))
			return fmt.Errorf("%w: attempt with ID %s", store.ErrDuplicate, attempt.ID)
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during attempt append",
				slog.String("error", err.Error()),
				slog.String("word_id", attempt.WordID.String()))
			return fmt.Errorf("%w: word with ID %s not found",
				store.ErrInvalidEntity, attempt.WordID)
		}
		log.Error("failed to append pronunciation attempt",
			slog.String("error", err.Error()),
			slog.String("word_id", attempt.WordID.String()))
		return err
	}

	log.Debug("pronunciation attempt appended",
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("word_id", attempt.WordID.String()),
		slog.Int("rating", attempt.Rating))
	return nil
}

// RatingAverage implements store.AttemptStore.RatingAverage
// Every listed attempt counts, including retries of the same word.
func (s *AttemptStore) RatingAverage(ctx context.Context, attemptIDs []uuid.UUID) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(attemptIDs) == 0 {
		return 0, nil
	}

	placeholders, args := inArgs(attemptIDs)
	query := `
		SELECT COALESCE(AVG(rating), 0)
		FROM pronunciation_attempts
		WHERE id IN (` + placeholders + `)
	`

	var avg float64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		log.Error("failed to compute attempt rating average",
			slog.String("error", err.Error()),
			slog.Int("attempt_count", len(attemptIDs)))
		return 0, err
	}

	return avg, nil
}
