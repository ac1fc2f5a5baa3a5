package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/domain/srs"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// ReviewService owns the spaced repetition operations: enrolling words,
// recording graded reviews, and querying what is due.
type ReviewService struct {
	tx        store.TxRunner
	reviews   store.ReviewStore
	logs      store.ReviewLogStore
	words     store.WordStore
	scheduler srs.Scheduler
	logger    *slog.Logger
	now       func() time.Time
}

// NewReviewService creates a ReviewService with its dependencies injected.
// If log is nil, a default logger will be used.
func NewReviewService(
	tx store.TxRunner,
	reviews store.ReviewStore,
	logs store.ReviewLogStore,
	words store.WordStore,
	scheduler srs.Scheduler,
	log *slog.Logger,
) *ReviewService {
	if tx == nil {
		panic("tx runner cannot be nil")
	}
	if reviews == nil {
		panic("review store cannot be nil")
	}
	if logs == nil {
		panic("review log store cannot be nil")
	}
	if words == nil {
		panic("word store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewService{
		tx:        tx,
		reviews:   reviews,
		logs:      logs,
		words:     words,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Enroll marks a word learned and creates its review scheduling state, making
// it due immediately. Both writes share one transaction. Enrolling an already
// enrolled word is idempotent and returns the existing review.
func (s *ReviewService) Enroll(ctx context.Context, wordID uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var review *domain.Review
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		words := s.words.WithTx(tx)
		reviews := s.reviews.WithTx(tx)

		if err := words.MarkLearned(ctx, wordID); err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return ErrWordNotFound
			}
			return fmt.Errorf("failed to mark word learned: %w", err)
		}

		var err error
		review, err = reviews.GetOrCreate(ctx, wordID)
		if err != nil {
			return fmt.Errorf("failed to get or create review: %w", err)
		}
		return nil
	})
	if err != nil {
		if !IsRecoverable(err) {
			log.Error("failed to enroll word",
				slog.String("error", err.Error()),
				slog.String("word_id", wordID.String()))
		}
		return nil, err
	}

	log.Info("word enrolled",
		slog.String("word_id", wordID.String()),
		slog.String("review_id", review.ID.String()))
	return review, nil
}

// RecordReview advances the review's scheduling state from a graded response
// and appends the history log entry. The state update and the log append are
// one logical unit: both become visible or neither does.
func (s *ReviewService) RecordReview(
	ctx context.Context,
	reviewID uuid.UUID,
	quality int,
	responseTimeMs *int,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if quality < domain.MinQuality || quality > domain.MaxQuality {
		return nil, ErrInvalidQuality
	}

	now := s.now()
	var updated *domain.Review
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		reviews := s.reviews.WithTx(tx)
		logs := s.logs.WithTx(tx)

		review, err := reviews.GetByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, store.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			return fmt.Errorf("failed to get review: %w", err)
		}

		updated, err = s.scheduler.NextReview(review, quality, now)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if err := reviews.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		entry, err := domain.NewReviewLog(reviewID, quality, responseTimeMs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if err := logs.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}
		return nil
	})
	if err != nil {
		if !IsRecoverable(err) {
			log.Error("failed to record review",
				slog.String("error", err.Error()),
				slog.String("review_id", reviewID.String()))
		}
		return nil, err
	}

	log.Debug("review recorded",
		slog.String("review_id", reviewID.String()),
		slog.Int("quality", quality),
		slog.Float64("easiness", updated.Easiness),
		slog.Int("interval", updated.Interval),
		slog.Time("next_review_at", updated.NextReviewAt))
	return updated, nil
}

// DueReviews returns the user's due reviews joined with display data,
// oldest overdue first, capped at limit.
func (s *ReviewService) DueReviews(
	ctx context.Context,
	userID uuid.UUID,
	filter store.DueFilter,
	limit int,
) ([]*store.DueReview, error) {
	return s.reviews.ListDue(ctx, userID, filter, limit, s.now())
}

// CountDue counts the user's currently due reviews.
func (s *ReviewService) CountDue(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.reviews.CountDue(ctx, userID, s.now())
}

// SessionStats computes completion statistics for a review session: the mean
// of each reviewed item's most recent rating, rounded to one decimal place,
// and the elapsed time since the session started.
func (s *ReviewService) SessionStats(
	ctx context.Context,
	reviewIDs []uuid.UUID,
	startedAt time.Time,
	now time.Time,
) (*SessionStats, error) {
	avg, err := s.logs.LatestQualityAverage(ctx, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute quality average: %w", err)
	}
	return newSessionStats(len(reviewIDs), avg, startedAt, now), nil
}
