package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// Evaluator scores a pronunciation attempt. It is an external collaborator
// (typically a speech model behind the transport); this core only consumes
// its rating and feedback.
type Evaluator interface {
	// Evaluate compares the transcribed attempt against the expected text and
	// returns a 1-5 rating with human-readable feedback.
	Evaluate(ctx context.Context, expected, transcribed string, language domain.Language) (rating int, feedback string, err error)
}

// PracticeService records pronunciation attempts scored by the evaluator.
type PracticeService struct {
	attempts  store.AttemptStore
	evaluator Evaluator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPracticeService creates a PracticeService. The timeout bounds each
// evaluator call so a stuck collaborator cannot hold a transition open;
// pass 0 to rely on the caller's context alone. If log is nil, a default
// logger will be used.
func NewPracticeService(
	attempts store.AttemptStore,
	evaluator Evaluator,
	timeout time.Duration,
	log *slog.Logger,
) *PracticeService {
	if attempts == nil {
		panic("attempt store cannot be nil")
	}
	if evaluator == nil {
		panic("evaluator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PracticeService{
		attempts:  attempts,
		evaluator: evaluator,
		timeout:   timeout,
		logger:    log.With(slog.String("component", "practice_service")),
	}
}

// RecordAttempt scores a pronunciation attempt through the evaluator and
// appends it to the attempt history. No scheduling state is touched.
func (s *PracticeService) RecordAttempt(
	ctx context.Context,
	userID, wordID uuid.UUID,
	expected, transcribed string,
	language domain.Language,
) (*domain.PronunciationAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	evalCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rating, feedback, err := s.evaluator.Evaluate(evalCtx, expected, transcribed, language)
	if err != nil {
		log.Error("evaluator call failed",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, fmt.Errorf("failed to evaluate pronunciation: %w", err)
	}

	attempt, err := domain.NewPronunciationAttempt(
		userID, wordID, expected, transcribed, language, rating, feedback,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.attempts.Append(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to append attempt: %w", err)
	}

	log.Debug("pronunciation attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("rating", rating))
	return attempt, nil
}

// SessionStats computes completion statistics for a pronunciation session.
// Every attempt counts, including retries of the same word.
func (s *PracticeService) SessionStats(
	ctx context.Context,
	attemptIDs []uuid.UUID,
	startedAt time.Time,
	now time.Time,
) (*SessionStats, error) {
	avg, err := s.attempts.RatingAverage(ctx, attemptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating average: %w", err)
	}
	return newSessionStats(len(attemptIDs), avg, startedAt, now), nil
}
