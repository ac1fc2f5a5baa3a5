package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// ReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend.
type ReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. If logger is nil, a default logger will be used.
func NewReviewLogStore(db store.DBTX, log *slog.Logger) *ReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewLogStore{
		db:     db,
		logger: log.With(slog.String("component", "review_log_store")),
	}
}

// Ensure ReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// WithTx implements store.ReviewLogStore.WithTx
func (s *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &ReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.ReviewLogStore.Append
// Log entries are append-only; there is no update or delete.
func (s *ReviewLogStore) Append(ctx context.Context, entry *domain.ReviewLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO review_logs (id, review_id, quality, response_time_ms, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.ReviewID,
		entry.Quality,
		entry.ResponseTimeMs,
		entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate log entry id during append",
				slog.String("error", err.Error()),
				slog.String("log_id", entry.ID.String()))
			return fmt.Errorf("%w: log entry with ID %s", store.ErrDuplicate, entry.ID)
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during log append",
				slog.String("error", err.Error()),
				slog.String("review_id", entry.ReviewID.String()))
			return fmt.Errorf("%w: review with ID %s not found",
				store.ErrInvalidEntity, entry.ReviewID)
		}
		log.Error("failed to append review log",
			slog.String("error", err.Error()),
			slog.String("review_id", entry.ReviewID.String()))
		return err
	}

	log.Debug("review log appended",
		slog.String("log_id", entry.ID.String()),
		slog.String("review_id", entry.ReviewID.String()),
		slog.Int("quality", entry.Quality))
	return nil
}

// LatestQualityAverage implements store.ReviewLogStore.LatestQualityAverage
// Only the most recent log entry of each review counts: a word rated twice in
// quick succession contributes its final rating, not both. DISTINCT ON with
// the id tiebreaker guarantees exactly one row per review even when two
// entries share a created_at timestamp.
func (s *ReviewLogStore) LatestQualityAverage(ctx context.Context, reviewIDs []uuid.UUID) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(reviewIDs) == 0 {
		return 0, nil
	}

	placeholders, args := inArgs(reviewIDs)
	query := `
		SELECT COALESCE(AVG(quality), 0)
		FROM (
			SELECT DISTINCT ON (review_id) quality
			FROM review_logs
			WHERE review_id IN (` + placeholders + `)
			ORDER BY review_id, created_at DESC, id DESC
		) latest
	`

	var avg float64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		log.Error("failed to compute latest quality average",
			slog.String("error", err.Error()),
			slog.Int("review_count", len(reviewIDs)))
		return 0, err
	}

	return avg, nil
}

// inArgs renders a positional placeholder list ($1,$2,...) with the matching
// argument slice for an IN clause.
func inArgs(ids []uuid.UUID) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}
